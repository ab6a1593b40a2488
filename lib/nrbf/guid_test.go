// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"bytes"
	"testing"
)

func TestGUIDRoundTrip(t *testing.T) {
	const want = "01234567-89ab-cdef-0123-456789abcdef"
	rec, err := BuildGUIDRecord(1, want)
	if err != nil {
		t.Fatalf("BuildGUIDRecord: %v", err)
	}
	if !IsGUIDRecord(rec) {
		t.Fatalf("built record is not recognized as a GUID")
	}
	got, err := ParseGUID(rec)
	if err != nil {
		t.Fatalf("ParseGUID: %v", err)
	}
	if got != want {
		t.Fatalf("ParseGUID round trip: got %q, want %q", got, want)
	}
}

func TestGUIDRejectsMalformedInput(t *testing.T) {
	cases := []string{"", "not-a-guid", "01234567-89ab-cdef-0123", "zzzzzzzz-89ab-cdef-0123-456789abcdef"}
	for _, c := range cases {
		if _, err := BuildGUIDRecord(1, c); err == nil {
			t.Fatalf("BuildGUIDRecord(%q) succeeded, want error", c)
		}
	}
}

func TestGUIDSurvivesEncodeDecode(t *testing.T) {
	const want = "fedcba98-7654-3210-fedc-ba9876543210"
	rec, err := BuildGUIDRecord(1, want)
	if err != nil {
		t.Fatalf("BuildGUIDRecord: %v", err)
	}

	out, err := Encode(rec, LibraryTable{}, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	root, _, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := ParseGUID(root)
	if err != nil {
		t.Fatalf("ParseGUID: %v", err)
	}
	if got != want {
		t.Fatalf("GUID after encode/decode = %q, want %q", got, want)
	}
}

func TestReplaceGUIDPreservesObjectID(t *testing.T) {
	original, err := BuildGUIDRecord(7, "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("BuildGUIDRecord: %v", err)
	}
	if err := ReplaceGUID(original, "ffffffff-ffff-ffff-ffff-ffffffffffff"); err != nil {
		t.Fatalf("ReplaceGUID: %v", err)
	}
	id, _ := original.ObjectID()
	if id != 7 {
		t.Fatalf("ReplaceGUID changed object id to %d, want 7", id)
	}
	got, err := ParseGUID(original)
	if err != nil {
		t.Fatalf("ParseGUID: %v", err)
	}
	if got != "ffffffff-ffff-ffff-ffff-ffffffffffff" {
		t.Fatalf("ParseGUID after replace = %q", got)
	}
}

func TestLooksLikeNRBF(t *testing.T) {
	valid := newStreamBuilder(1).binaryObjectString(1, "x").messageEnd()
	if !LooksLikeNRBF(valid) {
		t.Fatalf("LooksLikeNRBF(valid stream) = false, want true")
	}
	if LooksLikeNRBF([]byte{0x01, 0x02, 0x03}) {
		t.Fatalf("LooksLikeNRBF(garbage) = true, want false")
	}
	if LooksLikeNRBF(nil) {
		t.Fatalf("LooksLikeNRBF(nil) = true, want false")
	}
	if !bytes.HasPrefix(valid, []byte{byte(RecordHeader)}) {
		t.Fatalf("sanity check: fixture does not start with the header tag")
	}
}
