// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// nrbf is a command-line shell over the NRBF codec: hex dump, decode,
// dotted-path get/set, GUID search-and-replace, content hashing,
// passphrase-sealed export, and an interactive REPL. Every subcommand
// is a thin client of lib/nrbf and lib/nrbfx — the shell holds no codec
// state of its own beyond the one decoded graph it has open.
package main

import (
	"fmt"
	"os"

	"github.com/CrispStrobe/nrbf/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "nrbf: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := args[0]
	rest := args[1:]
	logger.Debug("dispatch", "subcommand", subcommand, "args", rest)

	switch subcommand {
	case "dump":
		return runDump(rest)
	case "decode":
		return runDecode(rest)
	case "get":
		return runGet(rest)
	case "set":
		return runSet(rest)
	case "guid":
		return runGUID(rest)
	case "hash":
		return runHash(rest)
	case "seal":
		return runSeal(rest)
	case "unseal":
		return runUnseal(rest)
	case "repl":
		return runREPL(rest)
	case "version", "--version":
		fmt.Printf("nrbf %s\n", version.Info())
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: nrbf <subcommand> [flags]

Subcommands:
  dump <file>                        Hex dump with a record-boundary gutter
  decode <file> [--json|--cbor]      Decode and print the graph
  get <file> <path>                  Read a value at a dotted path
  set <file> <path> <value> -o out   Write a value at a dotted path
  guid find <file>                   List System.Guid records
  guid replace <file> <old> <new>    Patch a System.Guid record in place
  hash <file>                        Content hash for save-file dedup
  seal <file> --passphrase -o out    Encrypt a decoded export
  unseal <file> --passphrase -o out  Decrypt a sealed export
  repl <file>                        Interactive path-navigation shell
  version                            Print version information

Run 'nrbf <subcommand> --help' for subcommand flags.
`)
}
