// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

// streamBuilder accumulates raw NRBF bytes for hand-built test fixtures.
// It is a thin wrapper over writer that also tracks whether the header
// and trailer have been written, so tests read as a sequence of
// records rather than a flat byte dump.
type streamBuilder struct {
	w *writer
}

func newStreamBuilder(rootID int32) *streamBuilder {
	w := newWriter()
	w.writeU8(byte(RecordHeader))
	w.writeI32(rootID)
	w.writeI32(-1)
	w.writeI32(1)
	w.writeI32(0)
	return &streamBuilder{w: w}
}

func (b *streamBuilder) binaryLibrary(id int32, name string) *streamBuilder {
	b.w.writeU8(byte(RecordBinaryLibrary))
	b.w.writeI32(id)
	b.w.writeString(name)
	return b
}

func (b *streamBuilder) binaryObjectString(id int32, value string) *streamBuilder {
	b.w.writeU8(byte(RecordBinaryObjectString))
	b.w.writeI32(id)
	b.w.writeString(value)
	return b
}

func (b *streamBuilder) memberReference(idRef int32) *streamBuilder {
	b.w.writeU8(byte(RecordMemberReference))
	b.w.writeI32(idRef)
	return b
}

func (b *streamBuilder) objectNull() *streamBuilder {
	b.w.writeU8(byte(RecordObjectNull))
	return b
}

func (b *streamBuilder) objectNullMultiple256(count uint8) *streamBuilder {
	b.w.writeU8(byte(RecordObjectNullMultiple256))
	b.w.writeU8(count)
	return b
}

// classWithId emits a ClassWithId record re-using metadataID's class
// info and member types, followed by the member value(s) it inherits
// from that metadata — here a single Int32, matching
// classWithMembersAndTypesInt32's shape.
func (b *streamBuilder) classWithId(id, metadataID, value int32) *streamBuilder {
	b.w.writeU8(byte(RecordClassWithId))
	b.w.writeI32(id)
	b.w.writeI32(metadataID)
	b.w.writeI32(value)
	return b
}

// classWithMembersAndTypesInt32 emits a SystemClassWithMembersAndTypes
// record with a single Int32 member, the shape used by most scenario
// tests below.
func (b *streamBuilder) classWithMembersAndTypesInt32(id int32, name, member string, value int32) *streamBuilder {
	b.w.writeU8(byte(RecordSystemClassWithMembersAndTypes))
	b.w.writeI32(id)
	b.w.writeString(name)
	b.w.writeI32(1)
	b.w.writeString(member)
	b.w.writeU8(byte(BinaryTypePrimitive))
	b.w.writeU8(byte(PrimitiveInt32))
	b.w.writeI32(value)
	return b
}

func (b *streamBuilder) messageEnd() []byte {
	b.w.writeU8(byte(RecordMessageEnd))
	return b.w.bytes()
}

func (b *streamBuilder) bytes() []byte {
	return b.w.bytes()
}
