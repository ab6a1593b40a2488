// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
	"github.com/CrispStrobe/nrbf/lib/nrbfx"
	"github.com/CrispStrobe/nrbf/lib/secret"
)

func runHash(args []string) error {
	flagSet := pflag.NewFlagSet("hash", pflag.ContinueOnError)
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf hash <file>\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: nrbf hash <file>")
	}

	root, table, libraries, err := loadGraph(rest[0])
	if err != nil {
		return err
	}
	hash, err := nrbfx.ContentHash(root, table, libraries)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", rest[0], err)
	}
	fmt.Println(hash.String())
	return nil
}

func runSeal(args []string) error {
	flagSet := pflag.NewFlagSet("seal", pflag.ContinueOnError)
	out := flagSet.StringP("output", "o", "", "output file (required)")
	flagSet.String("passphrase", "", "passphrase (prompted interactively if omitted)")
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf seal <file> -o <out> [--passphrase <p>]\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: nrbf seal <file> -o <out> [--passphrase <p>]")
	}
	if *out == "" {
		return fmt.Errorf("-o/--output is required")
	}

	root, table, libraries, err := loadGraph(rest[0])
	if err != nil {
		return err
	}
	exported, err := nrbfx.ExportJSON(root, table, libraries)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", rest[0], err)
	}

	passphrase, err := readPassphrase(flagSet, "Passphrase: ")
	if err != nil {
		return err
	}
	defer passphrase.Close()

	ciphertext, err := nrbfx.Seal(passphrase, exported)
	if err != nil {
		return fmt.Errorf("sealing: %w", err)
	}
	if err := os.WriteFile(*out, ciphertext, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	logger.Info("sealed export", "input", rest[0], "output", *out, "ciphertext_bytes", len(ciphertext))
	fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
	return nil
}

func runUnseal(args []string) error {
	flagSet := pflag.NewFlagSet("unseal", pflag.ContinueOnError)
	out := flagSet.StringP("output", "o", "", "output file (required)")
	flagSet.String("passphrase", "", "passphrase (prompted interactively if omitted)")
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf unseal <file> -o <out> [--passphrase <p>]\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: nrbf unseal <file> -o <out> [--passphrase <p>]")
	}
	if *out == "" {
		return fmt.Errorf("-o/--output is required")
	}

	ciphertext, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", rest[0], err)
	}

	passphrase, err := readPassphrase(flagSet, "Passphrase: ")
	if err != nil {
		return err
	}
	defer passphrase.Close()

	plaintext, err := nrbfx.Unseal(passphrase, ciphertext)
	if err != nil {
		return fmt.Errorf("unsealing %s: %w", rest[0], err)
	}
	defer plaintext.Close()

	root, _, _, err := nrbfx.ImportJSON(plaintext.Bytes())
	if err != nil {
		return fmt.Errorf("parsing unsealed export: %w", err)
	}
	if err := writeGraph(*out, root, nrbf.LibraryTable{}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
	return nil
}

// readPassphrase returns the --passphrase flag value if set, else
// prompts interactively with echo disabled.
func readPassphrase(flagSet *pflag.FlagSet, prompt string) (*secret.Buffer, error) {
	if given, _ := flagSet.GetString("passphrase"); given != "" {
		return secret.NewFromBytes([]byte(given))
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("no terminal available for an interactive passphrase prompt (use --passphrase)")
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	defer secret.Zero(raw)
	return secret.NewFromBytes(raw)
}
