// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func runGUID(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: nrbf guid <find|replace> <file> [args...]")
	}
	switch args[0] {
	case "find":
		return runGUIDFind(args[1:])
	case "replace":
		return runGUIDReplace(args[1:])
	default:
		return fmt.Errorf("unknown guid subcommand: %q (want find or replace)", args[0])
	}
}

func runGUIDFind(args []string) error {
	flagSet := pflag.NewFlagSet("guid find", pflag.ContinueOnError)
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf guid find <file>\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: nrbf guid find <file>")
	}

	_, table, _, err := loadGraph(rest[0])
	if err != nil {
		return err
	}
	ids := nrbf.FindGUIDs(table)
	if len(ids) == 0 {
		fmt.Println("no System.Guid records found")
		return nil
	}
	for _, id := range ids {
		guid, err := nrbf.ParseGUID(table[id])
		if err != nil {
			return err
		}
		fmt.Printf("#%d  %s\n", id, guid)
	}
	return nil
}

func runGUIDReplace(args []string) error {
	flagSet := pflag.NewFlagSet("guid replace", pflag.ContinueOnError)
	out := flagSet.StringP("output", "o", "", "output file (default: overwrite input)")
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf guid replace <file> <old-guid> <new-guid> [-o <out>]\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 3 {
		return fmt.Errorf("usage: nrbf guid replace <file> <old-guid> <new-guid> [-o <out>]")
	}
	file, oldGUID, newGUID := rest[0], rest[1], rest[2]

	root, table, libraries, err := loadGraph(file)
	if err != nil {
		return err
	}

	var target nrbf.Record
	for _, id := range nrbf.FindGUIDs(table) {
		guid, err := nrbf.ParseGUID(table[id])
		if err != nil {
			return err
		}
		if guid == oldGUID {
			target = table[id]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no System.Guid record matching %s found in %s", oldGUID, file)
	}
	if err := nrbf.ReplaceGUID(target, newGUID); err != nil {
		return err
	}

	destination := *out
	if destination == "" {
		destination = file
	}
	if err := writeGraph(destination, root, libraries); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "replaced %s -> %s, wrote %s\n", oldGUID, newGUID, destination)
	return nil
}
