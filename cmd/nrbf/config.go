// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI's user preferences: which built-in theme to use
// for the tree printer and REPL, and which format "decode" exports to
// when neither --json nor --cbor is given explicitly.
//
// Loaded from $NRBF_CONFIG if set, else ~/.config/nrbf/config.yaml if it
// exists. A missing file is not an error — Default() applies silently.
type Config struct {
	Theme        string `yaml:"theme"`
	ExportFormat string `yaml:"export_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Theme: "dark", ExportFormat: "tree"}
}

// LoadConfig reads the user's config file, falling back to Default for
// any field the file omits.
func LoadConfig() (Config, error) {
	cfg := Default()

	path := os.Getenv("NRBF_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "nrbf", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// resolveTheme resolves the configured theme name to a Theme value. An
// unrecognized name falls back to DefaultTheme rather than erroring —
// a cosmetic preference should never block the command it decorates.
func (c Config) resolveTheme() Theme {
	switch c.Theme {
	case "light":
		return lightTheme
	default:
		return DefaultTheme
	}
}

// lightTheme is a palette tuned for light-background terminals.
var lightTheme = Theme{
	ClassName:      "54",
	MemberName:     "25",
	StringValue:    "22",
	NumberValue:    "94",
	NullValue:      "244",
	ReferenceArrow: "166",
	ObjectID:       "248",
	ArrayBracket:   "244",
	HelpText:       "246",
	ErrorText:      "160",
}
