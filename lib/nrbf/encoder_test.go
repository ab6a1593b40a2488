// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"bytes"
	"testing"
)

func decodeEncodeRoundTrip(t *testing.T, data []byte) []byte {
	t.Helper()
	root, table, libraries, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := Encode(root, libraries, EncodeOptions{HeaderID: -1, MajorVersion: 1, MinorVersion: 0})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_ = table
	return out
}

func TestEncodeBinaryObjectStringIsPristine(t *testing.T) {
	data := newStreamBuilder(1).binaryObjectString(1, "hello").messageEnd()
	out := decodeEncodeRoundTrip(t, data)
	if !bytes.Equal(out, data) {
		t.Fatalf("round trip not byte-identical:\n got  % x\n want % x", out, data)
	}
}

func TestEncodeClassWithLibraryIsPristine(t *testing.T) {
	data := newStreamBuilder(1).
		binaryLibrary(10, "MyLib").
		classWithMembersAndTypesLibrary(1, "Foo", "X", 42, 10).
		messageEnd()
	out := decodeEncodeRoundTrip(t, data)
	if !bytes.Equal(out, data) {
		t.Fatalf("round trip not byte-identical:\n got  % x\n want % x", out, data)
	}
}

func TestEncodeClassWithIdIsPristine(t *testing.T) {
	data := newStreamBuilder(1).
		classWithMembersAndTypesInt32(1, "Foo", "X", 42).
		classWithId(2, 1, 7).
		messageEnd()
	out := decodeEncodeRoundTrip(t, data)
	if !bytes.Equal(out, data) {
		t.Fatalf("round trip not byte-identical:\n got  % x\n want % x", out, data)
	}
}

func TestEncodeNullRunIsPristine(t *testing.T) {
	b := newStreamBuilder(1)
	w := b.w
	w.writeU8(byte(RecordBinaryArray))
	w.writeI32(1)
	w.writeU8(byte(ArrayKindSingle))
	w.writeI32(1)
	w.writeI32(5)
	w.writeU8(byte(BinaryTypeString))
	w.writeU8(byte(RecordBinaryObjectString))
	w.writeI32(2)
	w.writeString("a")
	w.writeU8(byte(RecordObjectNullMultiple256))
	w.writeU8(3)
	w.writeU8(byte(RecordBinaryObjectString))
	w.writeI32(3)
	w.writeString("b")
	data := b.messageEnd()

	out := decodeEncodeRoundTrip(t, data)
	if !bytes.Equal(out, data) {
		t.Fatalf("null-run round trip not byte-identical:\n got  % x\n want % x", out, data)
	}
}

func TestEncodeUnambiguousUntypedPrimitiveWrapsAsMemberPrimitiveTyped(t *testing.T) {
	// A ClassWithMembers (untyped) record whose member is a
	// MemberPrimitiveTyped Int32. The decoded record is replaced by the
	// bare int32 it carries, so the encoder has to wrap that primitive
	// itself; the result must match the original bytes. The library
	// declaration must precede the class that references it, matching
	// the order the encoder itself produces.
	b := newStreamBuilder(1).binaryLibrary(10, "MyLib")
	w := b.w
	w.writeU8(byte(RecordClassWithMembers))
	w.writeI32(1)
	w.writeString("Foo")
	w.writeI32(1)
	w.writeString("X")
	w.writeI32(10)
	w.writeU8(byte(RecordMemberPrimitiveTyped))
	w.writeU8(byte(PrimitiveInt32))
	w.writeI32(7)
	data := b.messageEnd()

	root, _, libraries, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := root.(*ClassRecord).SetValue("X", Value{Primitive: int32(7)}); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	out, err := Encode(root, libraries, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round trip not byte-identical:\n got  % x\n want % x", out, data)
	}
}

// classWithMembersAndTypesLibrary emits a ClassWithMembersAndTypes record
// (kind 5) with a single Int32 member and an explicit library reference,
// which sits between the member type info and the member value.
func (b *streamBuilder) classWithMembersAndTypesLibrary(id int32, name, member string, value, libraryID int32) *streamBuilder {
	b.w.writeU8(byte(RecordClassWithMembersAndTypes))
	b.w.writeI32(id)
	b.w.writeString(name)
	b.w.writeI32(1)
	b.w.writeString(member)
	b.w.writeU8(byte(BinaryTypePrimitive))
	b.w.writeU8(byte(PrimitiveInt32))
	b.w.writeI32(libraryID)
	b.w.writeI32(value)
	return b
}
