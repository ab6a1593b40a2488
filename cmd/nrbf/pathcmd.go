// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func runGet(args []string) error {
	flagSet := pflag.NewFlagSet("get", pflag.ContinueOnError)
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf get <file> <path>\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: nrbf get <file> <path>")
	}
	file, path := rest[0], rest[1]

	root, table, _, err := loadGraph(file)
	if err != nil {
		return err
	}
	val, err := nrbf.PathGet(root, table, path)
	if err != nil {
		return err
	}
	fmt.Println(summarizeValue(val))
	return nil
}

func runSet(args []string) error {
	flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
	out := flagSet.StringP("output", "o", "", "output file (required)")
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf set <file> <path> <value> -o <out>\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 3 {
		return fmt.Errorf("usage: nrbf set <file> <path> <value> -o <out>")
	}
	if *out == "" {
		return fmt.Errorf("-o/--output is required")
	}
	file, path, literal := rest[0], rest[1], rest[2]

	root, table, libraries, err := loadGraph(file)
	if err != nil {
		return err
	}
	val, err := nrbf.PathGet(root, table, path)
	if err != nil {
		return err
	}
	if err := setScalar(root, table, path, val, literal); err != nil {
		return err
	}
	if err := writeGraph(*out, root, libraries); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
	return nil
}

// summarizeValue renders a Value as a single line: scalars print their
// Go value directly, records print a short tag plus distinguishing
// detail instead of the full subtree (use "decode" for that).
func summarizeValue(val nrbf.Value) string {
	if val.IsNull {
		return "null"
	}
	if val.Record == nil {
		return fmt.Sprintf("%v", val.Primitive)
	}
	switch rec := val.Record.(type) {
	case *nrbf.BinaryObjectStringRecord:
		return fmt.Sprintf("%q", rec.Value)
	case *nrbf.MemberPrimitiveTypedRecord:
		return fmt.Sprintf("%v (%s)", rec.Value, rec.PrimitiveType)
	case *nrbf.ClassRecord:
		id, _ := rec.ObjectID()
		return fmt.Sprintf("<%s #%d, %d members>", rec.TypeName(), id, len(rec.MemberNames()))
	case *nrbf.MemberReferenceRecord:
		return fmt.Sprintf("-> #%d", rec.IDRef)
	default:
		id, hasID := rec.ObjectID()
		if hasID {
			return fmt.Sprintf("<%s #%d>", rec.RecordKind(), id)
		}
		return fmt.Sprintf("<%s>", rec.RecordKind())
	}
}
