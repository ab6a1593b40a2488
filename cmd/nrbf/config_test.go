// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestConfigResolveThemeFallsBackToDefault(t *testing.T) {
	cfg := Config{Theme: "some-unknown-theme"}
	if got := cfg.resolveTheme(); got != DefaultTheme {
		t.Fatalf("unknown theme name should fall back to DefaultTheme, got %+v", got)
	}
}

func TestConfigResolveThemeLight(t *testing.T) {
	cfg := Config{Theme: "light"}
	if got := cfg.resolveTheme(); got != lightTheme {
		t.Fatalf("theme %q should resolve to lightTheme, got %+v", cfg.Theme, got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Theme == "" || cfg.ExportFormat == "" {
		t.Fatalf("Default() left a field empty: %+v", cfg)
	}
}
