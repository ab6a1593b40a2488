// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 200))

	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			blob, err := Compress(tag, data)
			if err != nil {
				t.Fatalf("Compress(%s): %v", tag, err)
			}
			got, err := Decompress(blob)
			if err != nil {
				t.Fatalf("Decompress(%s): %v", tag, err)
			}
			if !bytes.Equal(got, data) {
				t.Fatalf("round trip mismatch for %s: got %d bytes, want %d", tag, len(got), len(data))
			}
		})
	}
}

func TestCompressFallsBackToNoneForIncompressibleData(t *testing.T) {
	data := []byte{0x01}

	blob, err := Compress(CompressionZstd, data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if CompressionTag(blob[0]) != CompressionNone {
		t.Fatalf("tiny input compressed with tag %d, want CompressionNone fallback", blob[0])
	}
	got, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, data)
	}
}

func TestDecompressRejectsShortBlob(t *testing.T) {
	if _, err := Decompress([]byte{0, 1, 2}); err == nil {
		t.Fatal("expected error for a blob shorter than the header")
	}
}
