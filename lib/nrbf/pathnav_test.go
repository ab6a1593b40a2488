// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "testing"

func buildNestedGraph(t *testing.T) (Record, RecordTable) {
	t.Helper()
	b := newStreamBuilder(1)
	w := b.w
	// Outer (id 1): member "Inner" -> Object referencing Foo (id 2).
	w.writeU8(byte(RecordSystemClassWithMembersAndTypes))
	w.writeI32(1)
	w.writeString("Outer")
	w.writeI32(1)
	w.writeString("Inner")
	w.writeU8(byte(BinaryTypeObject))
	// Foo (id 2): member "Items" -> ArraySingleString (id 3).
	w.writeU8(byte(RecordSystemClassWithMembersAndTypes))
	w.writeI32(2)
	w.writeString("Foo")
	w.writeI32(1)
	w.writeString("Items")
	w.writeU8(byte(BinaryTypeStringArray))
	w.writeU8(byte(RecordArraySingleString))
	w.writeI32(3)
	w.writeI32(3)
	w.writeU8(byte(RecordBinaryObjectString))
	w.writeI32(4)
	w.writeString("a")
	w.writeU8(byte(RecordObjectNull))
	w.writeU8(byte(RecordBinaryObjectString))
	w.writeI32(5)
	w.writeString("c")
	w.writeU8(byte(RecordMessageEnd))

	root, table, _, err := Decode(w.bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return root, table
}

func TestPathGetNestedMemberAndIndex(t *testing.T) {
	root, table := buildNestedGraph(t)

	v, err := PathGet(root, table, "Inner.Items[0]")
	if err != nil {
		t.Fatalf("PathGet: %v", err)
	}
	s, ok := v.Record.(*BinaryObjectStringRecord)
	if !ok || s.Value != "a" {
		t.Fatalf("Inner.Items[0] = %+v, want \"a\"", v)
	}

	v, err = PathGet(root, table, "Inner.Items[1]")
	if err != nil {
		t.Fatalf("PathGet: %v", err)
	}
	if !v.IsNull {
		t.Fatalf("Inner.Items[1] = %+v, want null", v)
	}
}

func TestPathGetUnknownMember(t *testing.T) {
	root, table := buildNestedGraph(t)
	_, err := PathGet(root, table, "Nope")
	if !IsUnknownMember(err) {
		t.Fatalf("expected UnknownMemberError, got %v (%T)", err, err)
	}
}

func TestPathGetIndexOutOfRange(t *testing.T) {
	root, table := buildNestedGraph(t)
	_, err := PathGet(root, table, "Inner.Items[99]")
	if err == nil {
		t.Fatalf("expected an out-of-range error, got nil")
	}
}

func TestPathSetThenGetIsIdempotent(t *testing.T) {
	root, table := buildNestedGraph(t)

	newString := &BinaryObjectStringRecord{ID: 42, Value: "z"}
	if err := PathSet(root, table, "Inner.Items[1]", recordValue(newString)); err != nil {
		t.Fatalf("PathSet: %v", err)
	}

	got, err := PathGet(root, table, "Inner.Items[1]")
	if err != nil {
		t.Fatalf("PathGet after PathSet: %v", err)
	}
	if got.Record.(*BinaryObjectStringRecord).Value != "z" {
		t.Fatalf("Inner.Items[1] after set = %+v, want \"z\"", got)
	}

	// Setting the same path twice in a row with the same value is a no-op
	// from the caller's perspective: a second Get returns the same thing.
	if err := PathSet(root, table, "Inner.Items[1]", recordValue(newString)); err != nil {
		t.Fatalf("second PathSet: %v", err)
	}
	got2, err := PathGet(root, table, "Inner.Items[1]")
	if err != nil {
		t.Fatalf("PathGet after second PathSet: %v", err)
	}
	if got2.Record.(*BinaryObjectStringRecord).Value != got.Record.(*BinaryObjectStringRecord).Value {
		t.Fatalf("PathSet is not idempotent: first get %+v, second get %+v", got, got2)
	}
}

func TestPathSetOnClassMember(t *testing.T) {
	root, table := buildNestedGraph(t)
	foo, err := PathGet(root, table, "Inner")
	if err != nil {
		t.Fatalf("PathGet Inner: %v", err)
	}
	if foo.Record.(*ClassRecord).TypeName() != "Foo" {
		t.Fatalf("Inner = %+v, want class Foo", foo)
	}

	if err := PathSet(root, table, "Inner", nullValue()); err != nil {
		t.Fatalf("PathSet Inner: %v", err)
	}
	got, err := PathGet(root, table, "Inner")
	if err != nil {
		t.Fatalf("PathGet after PathSet: %v", err)
	}
	if !got.IsNull {
		t.Fatalf("Inner after set to null = %+v, want null", got)
	}
}

func TestArrayNullRunResyncsAfterSet(t *testing.T) {
	_, table := buildNestedGraph(t)
	arr := table[3].(*ArraySingleStringRecord)
	if err := setElement(arr, 1, recordValue(&BinaryObjectStringRecord{ID: 50, Value: "b"})); err != nil {
		t.Fatalf("setElement: %v", err)
	}
	if len(arr.tokens) != 3 {
		t.Fatalf("tokens after resync = %d, want 3 (no more null run)", len(arr.tokens))
	}
	for _, tok := range arr.tokens {
		if tok.Kind != tokenValue {
			t.Fatalf("token %+v should be a value after resync, array has no nulls left", tok)
		}
	}
}
