// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"
)

// logger is shared by every subcommand for structured diagnostics —
// file reads/writes, sizes, and record counts. It never writes to
// stdout, so it cannot interleave with a subcommand's actual output
// (a decoded tree, an exported document, hex bytes).
var logger = newLogger()

// newLogger builds the default text-handler logger, level controlled
// by NRBF_LOG_LEVEL (debug, info, warn, error; defaults to warn so a
// plain invocation stays quiet).
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch os.Getenv("NRBF_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
