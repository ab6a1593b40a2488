// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func runDump(args []string) error {
	flagSet := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	flagSet.BoolP("help", "h", false, "show help")
	if ok, err := parseFlags(flagSet, args, "Usage: nrbf dump <file>\n"); !ok {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: nrbf dump <file>")
	}

	data, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", rest[0], err)
	}
	if !nrbf.LooksLikeNRBF(data) {
		return fmt.Errorf("%s does not look like an NRBF stream", rest[0])
	}
	bounds, err := nrbf.Boundaries(data)
	if err != nil {
		return fmt.Errorf("walking record boundaries in %s: %w", rest[0], err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	theme := cfg.resolveTheme()
	gutterStyle := lipgloss.NewStyle().Foreground(theme.ObjectID)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ClassName)

	next := 0
	const width = 16
	for row := 0; row < len(data); row += width {
		end := row + width
		if end > len(data) {
			end = len(data)
		}
		line := data[row:end]

		for next < len(bounds) && bounds[next].Offset < end {
			b := bounds[next]
			label := b.Kind.String()
			if b.HasID {
				label = fmt.Sprintf("%s #%d", label, b.ID)
			}
			fmt.Println(labelStyle.Render(fmt.Sprintf("  @%08x %s", b.Offset, label)))
			next++
		}

		hex := make([]string, width)
		ascii := make([]byte, width)
		for i := 0; i < width; i++ {
			if i < len(line) {
				hex[i] = fmt.Sprintf("%02x", line[i])
				if line[i] >= 0x20 && line[i] < 0x7f {
					ascii[i] = line[i]
				} else {
					ascii[i] = '.'
				}
			} else {
				hex[i] = "  "
				ascii[i] = ' '
			}
		}
		fmt.Printf("%s  %s  %s\n",
			gutterStyle.Render(fmt.Sprintf("%08x", row)),
			strings.Join(hex, " "),
			string(ascii))
	}
	return nil
}
