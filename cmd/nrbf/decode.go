// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/CrispStrobe/nrbf/lib/nrbfx"
)

func runDecode(args []string) error {
	flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	asJSON := flagSet.Bool("json", false, "export as the flat JSON interop document")
	asCBOR := flagSet.Bool("cbor", false, "export as canonical CBOR (binary, written as-is)")
	out := flagSet.StringP("output", "o", "", "output file (default: stdout)")
	flagSet.BoolP("help", "h", false, "show help")
	usage := "Usage: nrbf decode <file> [--json|--cbor] [-o <out>]\n"
	if ok, err := parseFlags(flagSet, args, usage); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("%s", usage)
	}
	if *asJSON && *asCBOR {
		return fmt.Errorf("--json and --cbor are mutually exclusive")
	}

	root, table, libraries, err := loadGraph(rest[0])
	if err != nil {
		return err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	theme := cfg.resolveTheme()
	if !*asJSON && !*asCBOR {
		switch cfg.ExportFormat {
		case "json":
			*asJSON = true
		case "cbor":
			*asCBOR = true
		}
	}

	switch {
	case *asCBOR:
		data, err := nrbfx.ExportCBOR(root, table, libraries)
		if err != nil {
			return fmt.Errorf("exporting CBOR: %w", err)
		}
		return writeOutput(*out, data)
	case *asJSON:
		data, err := nrbfx.ExportJSON(root, table, libraries)
		if err != nil {
			return fmt.Errorf("exporting JSON: %w", err)
		}
		if *out != "" {
			return writeOutput(*out, data)
		}
		return writeHighlighted(os.Stdout, data, "json")
	default:
		w := os.Stdout
		if *out != "" {
			f, err := os.Create(*out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", *out, err)
			}
			defer f.Close()
			newTreePrinter(f, table, theme).Print(root)
			return nil
		}
		newTreePrinter(w, table, theme).Print(root)
		return nil
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
