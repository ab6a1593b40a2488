// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// parseFlags parses args with flagSet, printing usage followed by the
// flag defaults on --help (returning ok=false, err=nil so the caller
// exits cleanly), or usage alone on a genuine parse error (ok=false,
// err set).
func parseFlags(flagSet *pflag.FlagSet, args []string, usage string) (ok bool, err error) {
	if parseErr := flagSet.Parse(args); parseErr != nil {
		fmt.Fprint(os.Stderr, usage)
		if parseErr == pflag.ErrHelp {
			flagSet.SetOutput(os.Stderr)
			flagSet.PrintDefaults()
			return false, nil
		}
		return false, parseErr
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprint(os.Stderr, usage)
		flagSet.SetOutput(os.Stderr)
		flagSet.PrintDefaults()
		return false, nil
	}
	return true, nil
}
