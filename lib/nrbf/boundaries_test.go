// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "testing"

func TestBoundariesMatchesDecodeOrderAndKinds(t *testing.T) {
	data := newStreamBuilder(1).
		classWithMembersAndTypesInt32(1, "Root", "Value", 42).
		messageEnd()

	bounds, err := Boundaries(data)
	if err != nil {
		t.Fatalf("Boundaries: %v", err)
	}
	if len(bounds) != 2 {
		t.Fatalf("got %d boundaries, want 2 (class, message end)", len(bounds))
	}

	if bounds[0].Kind != RecordSystemClassWithMembersAndTypes {
		t.Fatalf("bounds[0].Kind = %s, want SystemClassWithMembersAndTypes", bounds[0].Kind)
	}
	if !bounds[0].HasID || bounds[0].ID != 1 {
		t.Fatalf("bounds[0] = %+v, want HasID=true ID=1", bounds[0])
	}
	if bounds[0].Offset != headerMinLength {
		t.Fatalf("bounds[0].Offset = %d, want %d (immediately after the header)", bounds[0].Offset, headerMinLength)
	}

	if bounds[1].Kind != RecordMessageEnd {
		t.Fatalf("bounds[1].Kind = %s, want MessageEnd", bounds[1].Kind)
	}
	if bounds[1].HasID {
		t.Fatal("MessageEnd boundary should not carry an object ID")
	}
	if bounds[1].Offset <= bounds[0].Offset {
		t.Fatalf("bounds[1].Offset = %d, want > bounds[0].Offset = %d", bounds[1].Offset, bounds[0].Offset)
	}

	root, table, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := root.(*ClassRecord); !ok {
		t.Fatalf("root is %T, want *ClassRecord", root)
	}
	if len(table) != 1 {
		t.Fatalf("decoded table has %d entries, want 1", len(table))
	}
}

func TestBoundariesRejectsTruncatedStream(t *testing.T) {
	data := newStreamBuilder(1).binaryObjectString(1, "hi").messageEnd()
	if _, err := Boundaries(data[:len(data)-2]); err == nil {
		t.Fatal("expected an error decoding a truncated stream")
	}
}
