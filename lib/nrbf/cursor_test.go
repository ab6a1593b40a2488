// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"encoding/hex"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []int32{0, 1, 127, 128, 300, 16384, 1 << 20, 1<<31 - 1}
	for _, n := range cases {
		w := newWriter()
		w.writeVarint(n)
		c := newCursor(w.bytes())
		got, err := c.readVarint()
		if err != nil {
			t.Fatalf("readVarint(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("readVarint round trip: got %d, want %d", got, n)
		}
		if !c.atEnd() {
			t.Fatalf("readVarint(%d) left %d unread bytes", n, c.remaining())
		}
	}
}

func TestMalformedVarintExceedsFiveBytes(t *testing.T) {
	c := newCursor([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err := c.readVarint()
	if !IsMalformedVarint(err) {
		t.Fatalf("expected MalformedVarintError, got %v (%T)", err, err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "a", "hello, world", "unicode: éè中文"}
	for _, s := range cases {
		w := newWriter()
		w.writeString(s)
		c := newCursor(w.bytes())
		got, err := c.readString()
		if err != nil {
			t.Fatalf("readString(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("readString round trip: got %q, want %q", got, s)
		}
	}
}

func TestReadStringNegativeLength(t *testing.T) {
	w := newWriter()
	w.writeVarint(-1)
	c := newCursor(w.bytes())
	_, err := c.readString()
	if !IsNegativeStringLength(err) {
		t.Fatalf("expected NegativeStringLengthError, got %v (%T)", err, err)
	}
}

func TestTruncatedReadIsFatal(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02})
	_, err := c.readI32()
	if !IsTruncatedStream(err) {
		t.Fatalf("expected TruncatedStreamError, got %v (%T)", err, err)
	}
}

func TestDecimalHexRoundTrip(t *testing.T) {
	raw := make([]byte, 16)
	for i := range raw {
		raw[i] = byte(i * 17)
	}
	w := newWriter()
	if err := w.writeDecimalHex(hex.EncodeToString(raw)); err != nil {
		t.Fatalf("writeDecimalHex: %v", err)
	}
	c := newCursor(w.bytes())
	got, err := c.readDecimalHex()
	if err != nil {
		t.Fatalf("readDecimalHex: %v", err)
	}
	if got != hex.EncodeToString(raw) {
		t.Fatalf("decimal hex round trip: got %q, want %q", got, hex.EncodeToString(raw))
	}
}
