// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// loadGraph reads path and decodes it as an NRBF stream.
func loadGraph(path string) (nrbf.Record, nrbf.RecordTable, nrbf.LibraryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	logger.Debug("read file", "path", path, "bytes", len(data))
	if !nrbf.LooksLikeNRBF(data) {
		return nil, nil, nil, fmt.Errorf("%s does not look like an NRBF stream", path)
	}
	root, table, libraries, err := nrbf.Decode(data)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	logger.Info("decoded stream", "path", path, "records", len(table), "libraries", len(libraries))
	return root, table, libraries, nil
}

// writeGraph re-encodes root and writes it to path, creating or
// truncating the file.
func writeGraph(path string, root nrbf.Record, libraries nrbf.LibraryTable) error {
	out, err := nrbf.Encode(root, libraries, nrbf.EncodeOptions{})
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Debug("wrote file", "path", path, "bytes", len(out))
	return nil
}
