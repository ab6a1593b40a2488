// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

// headerMinLength is the smallest a well-formed stream's header can be:
// one tag byte plus four int32 fields.
const headerMinLength = 1 + 4*4

// LooksLikeNRBF reports whether data's first few bytes are consistent
// with an NRBF header (lead byte 0, enough bytes for the four header
// fields, and major version 1, minor version 0). It is a cheap sniff for
// routing input, not a substitute for Decode — a buffer that passes this
// check can still fail to decode.
func LooksLikeNRBF(data []byte) bool {
	if len(data) < headerMinLength {
		return false
	}
	if data[0] != byte(RecordHeader) {
		return false
	}
	c := newCursor(data)
	header, err := readHeader(c)
	if err != nil {
		return false
	}
	return header.MajorVersion == 1 && header.MinorVersion == 0
}
