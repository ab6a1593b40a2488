// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"unicode/utf8"
)

// contextWindow is the number of bytes surrounding a bad tag offset
// captured for BadRecordTagError.
const contextWindow = 32

// cursor reads little-endian primitives from a fixed byte buffer. It is
// purely positional and never seeks across record boundaries — every
// read advances pos by exactly the number of bytes consumed.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) offset() int {
	return c.pos
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.buf)
}

// peekByte returns the next byte without advancing, for lead-byte
// dispatch. Fails if the cursor is at the end of the buffer.
func (c *cursor) peekByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, &TruncatedStreamError{Offset: c.pos, Wanted: 1, Available: 0}
	}
	return c.buf[c.pos], nil
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, &TruncatedStreamError{Offset: c.pos, Wanted: n, Available: c.remaining()}
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) contextAround(offset int) []byte {
	start := offset - contextWindow/2
	if start < 0 {
		start = 0
	}
	end := start + contextWindow
	if end > len(c.buf) {
		end = len(c.buf)
	}
	window := make([]byte, end-start)
	copy(window, c.buf[start:end])
	return window
}

func (c *cursor) readU8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readI8() (int8, error) {
	b, err := c.readU8()
	return int8(b), err
}

func (c *cursor) readBool() (bool, error) {
	b, err := c.readU8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// readChar reads .NET's on-wire single-byte Char representation. This
// is correct only for the ASCII subset — see DESIGN.md's Open Question
// entry for the UTF-16 case.
func (c *cursor) readChar() (byte, error) {
	return c.readU8()
}

func (c *cursor) readU16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) readI16() (int16, error) {
	v, err := c.readU16()
	return int16(v), err
}

func (c *cursor) readU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readI32() (int32, error) {
	v, err := c.readU32()
	return int32(v), err
}

func (c *cursor) readU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readI64() (int64, error) {
	v, err := c.readU64()
	return int64(v), err
}

func (c *cursor) readF32() (float32, error) {
	v, err := c.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *cursor) readF64() (float64, error) {
	v, err := c.readU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// readDecimalHex reads the 16 raw bytes .NET uses for System.Decimal and
// returns them as a 32-character lowercase hex string. No arithmetic is
// performed — the bit pattern is preserved for a later write-back.
func (c *cursor) readDecimalHex() (string, error) {
	b, err := c.take(16)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// readVarint reads a 7-bit continuation-encoded unsigned integer,
// little-endian bit order, MSB of each byte set meaning "more bytes
// follow". At most 5 bytes are consumed (covers 0..2^31-1); a 6th
// continuation byte is a MalformedVarintError.
func (c *cursor) readVarint() (int32, error) {
	start := c.pos
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b, err := c.readU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return int32(result), nil
		}
		shift += 7
	}
	return 0, &MalformedVarintError{Offset: start}
}

// readString reads a variable-length-integer-prefixed length followed by
// that many bytes of UTF-8. A prefix of 0 yields the empty string. A
// negative decoded prefix (bit 31 set) is a NegativeStringLengthError.
func (c *cursor) readString() (string, error) {
	start := c.pos
	length, err := c.readVarint()
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", &NegativeStringLengthError{Length: length, Offset: start}
	}
	if length == 0 {
		return "", nil
	}
	b, err := c.take(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &InvalidUTF8Error{Offset: start}
	}
	return string(b), nil
}

// writer accumulates little-endian primitive writes and produces a
// single contiguous buffer on bytes(). It never seeks; each call
// appends.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{}
}

func (w *writer) bytes() []byte {
	return w.buf
}

func (w *writer) writeRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) writeU8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) writeI8(v int8) {
	w.writeU8(uint8(v))
}

func (w *writer) writeBool(v bool) {
	if v {
		w.writeU8(1)
	} else {
		w.writeU8(0)
	}
}

func (w *writer) writeChar(v byte) {
	w.writeU8(v)
}

func (w *writer) writeU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.writeRaw(b[:])
}

func (w *writer) writeI16(v int16) {
	w.writeU16(uint16(v))
}

func (w *writer) writeU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.writeRaw(b[:])
}

func (w *writer) writeI32(v int32) {
	w.writeU32(uint32(v))
}

func (w *writer) writeU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.writeRaw(b[:])
}

func (w *writer) writeI64(v int64) {
	w.writeU64(uint64(v))
}

func (w *writer) writeF32(v float32) {
	w.writeU32(math.Float32bits(v))
}

func (w *writer) writeF64(v float64) {
	w.writeU64(math.Float64bits(v))
}

// writeDecimalHex writes the 16 raw bytes represented by a 32-character
// hex string (as produced by readDecimalHex).
func (w *writer) writeDecimalHex(h string) error {
	b, err := hex.DecodeString(h)
	if err != nil {
		return fmt.Errorf("nrbf: invalid decimal hex %q: %w", h, err)
	}
	if len(b) != 16 {
		return fmt.Errorf("nrbf: decimal hex %q decodes to %d bytes, want 16", h, len(b))
	}
	w.writeRaw(b)
	return nil
}

// writeVarint writes n using 7-bit continuation encoding, matching
// readVarint. n must be in 0..2^31-1; the format has no representation
// for negative values.
func (w *writer) writeVarint(n int32) {
	v := uint32(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			w.writeU8(b | 0x80)
		} else {
			w.writeU8(b)
			return
		}
	}
}

func (w *writer) writeString(s string) {
	w.writeVarint(int32(len(s)))
	w.writeRaw([]byte(s))
}
