// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
)

// writeHighlighted writes data to w, syntax-highlighted for lexer
// ("json" or a CBOR diagnostic notation rendered as JSON-like text)
// when w is a color-capable terminal, or verbatim otherwise.
func writeHighlighted(w io.Writer, data []byte, lexer string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := w.Write(data)
		return err
	}

	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, string(data), lexer, "terminal256", "monokai"); err != nil {
		_, err := w.Write(data)
		return err
	}
	_, err := w.Write(buffer.Bytes())
	return err
}
