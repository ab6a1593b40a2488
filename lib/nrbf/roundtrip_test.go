// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "testing"

func TestDuplicateObjectIDIsFatal(t *testing.T) {
	b := newStreamBuilder(1).binaryObjectString(1, "a")
	w := b.w
	w.writeU8(byte(RecordBinaryObjectString))
	w.writeI32(1) // same id again
	w.writeString("b")
	data := b.messageEnd()

	_, _, _, err := Decode(data)
	if _, ok := err.(*DuplicateObjectIDError); !ok {
		t.Fatalf("expected *DuplicateObjectIDError, got %v (%T)", err, err)
	}
}

// TestEditThenEncodeThenDecodeIsIdempotent exercises the full
// decode -> PathSet -> encode -> decode -> PathGet loop against a graph
// with nested classes, a reference, and an array, confirming a mutation
// survives a round trip intact even though the rewritten array no longer
// matches the original token layout byte-for-byte.
func TestEditThenEncodeThenDecodeIsIdempotent(t *testing.T) {
	root, table := buildNestedGraph(t)

	replacement := &BinaryObjectStringRecord{ID: 100, Value: "edited"}
	if err := PathSet(root, table, "Inner.Items[1]", recordValue(replacement)); err != nil {
		t.Fatalf("PathSet: %v", err)
	}

	out, err := Encode(root, LibraryTable{}, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	root2, table2, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode after edit: %v", err)
	}
	v, err := PathGet(root2, table2, "Inner.Items[1]")
	if err != nil {
		t.Fatalf("PathGet after edit round trip: %v", err)
	}
	if v.Record.(*BinaryObjectStringRecord).Value != "edited" {
		t.Fatalf("edited value after round trip = %+v, want \"edited\"", v)
	}

	v0, err := PathGet(root2, table2, "Inner.Items[0]")
	if err != nil {
		t.Fatalf("PathGet Inner.Items[0]: %v", err)
	}
	if v0.Record.(*BinaryObjectStringRecord).Value != "a" {
		t.Fatalf("unedited sibling element changed: %+v", v0)
	}
}

func TestSafetyCapExceeded(t *testing.T) {
	w := newStreamBuilder(1).w
	for i := 0; i < maxRecordsPerStream+10; i++ {
		w.writeU8(byte(RecordBinaryObjectString))
		w.writeI32(int32(i + 1))
		w.writeString("x")
	}
	w.writeU8(byte(RecordMessageEnd))

	_, _, _, err := Decode(w.bytes())
	if err != errSafetyCapExceeded {
		t.Fatalf("expected errSafetyCapExceeded, got %v", err)
	}
}
