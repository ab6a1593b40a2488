// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "fmt"

// EncodeOptions controls header fields the encoder can't derive from the
// record graph alone. The zero value selects major version 1, minor
// version 0, header id -1.
type EncodeOptions struct {
	HeaderID     int32
	MajorVersion int32
	MinorVersion int32
}

func defaultEncodeOptions() EncodeOptions {
	return EncodeOptions{HeaderID: -1, MajorVersion: 1, MinorVersion: 0}
}

type encoder struct {
	w                *writer
	libraries        LibraryTable
	emittedRecords   map[int32]bool
	emittedLibraries map[int32]bool
}

// Encode serializes root back to NRBF bytes. libraries must be the
// LibraryTable Decode returned alongside root (or an equivalent table
// for a graph built by hand) — class records carry only a LibraryID,
// and the encoder needs the corresponding name to emit a BinaryLibrary
// record the first time that library is referenced.
//
// This is a deliberate departure from a bare encode(root) signature:
// the library name is not reachable from the record graph any other
// way, so making the table an explicit parameter avoids a hidden global
// or a second lookup pass over the tree.
func Encode(root Record, libraries LibraryTable, opts EncodeOptions) ([]byte, error) {
	if opts == (EncodeOptions{}) {
		opts = defaultEncodeOptions()
	}
	rootID, ok := root.ObjectID()
	if !ok {
		return nil, fmt.Errorf("nrbf: root record of kind %s has no object id", root.RecordKind())
	}

	w := newWriter()
	w.writeU8(byte(RecordHeader))
	w.writeI32(rootID)
	w.writeI32(opts.HeaderID)
	w.writeI32(opts.MajorVersion)
	w.writeI32(opts.MinorVersion)

	e := &encoder{
		w:                w,
		libraries:        libraries,
		emittedRecords:   map[int32]bool{},
		emittedLibraries: map[int32]bool{},
	}
	if err := e.encodeRecord(root); err != nil {
		return nil, err
	}
	w.writeU8(byte(RecordMessageEnd))
	return w.bytes(), nil
}

// ensureLibraryEmitted writes a BinaryLibrary record ahead of a class
// record the first time that library is referenced, matching how real
// NRBF streams interleave library declarations immediately before the
// class that needs them.
func (e *encoder) ensureLibraryEmitted(libraryID int32) error {
	if e.emittedLibraries[libraryID] {
		return nil
	}
	lib, ok := e.libraries[libraryID]
	if !ok {
		return fmt.Errorf("nrbf: class references unknown library id %d", libraryID)
	}
	e.w.writeU8(byte(RecordBinaryLibrary))
	e.w.writeI32(lib.LibraryID)
	e.w.writeString(lib.LibraryName)
	e.emittedLibraries[libraryID] = true
	return nil
}

// encodeRecord writes rec's full wire form, skipping records whose
// object ID has already been emitted once in this stream. In a
// well-formed graph every ID-bearing record is owned by exactly one
// slot and reached by MemberReference everywhere else, so this guard
// rarely fires — it exists to keep an accidental double-owned pointer
// from producing a stream with a duplicate object id.
func (e *encoder) encodeRecord(rec Record) error {
	if id, hasID := rec.ObjectID(); hasID {
		if e.emittedRecords[id] {
			return nil
		}
		defer func() { e.emittedRecords[id] = true }()
	}

	switch r := rec.(type) {
	case *ClassRecord:
		return e.encodeClassRecord(r)
	case *BinaryArrayRecord:
		return e.encodeBinaryArray(r)
	case *ArraySinglePrimitiveRecord:
		return e.encodeArraySinglePrimitive(r)
	case *ArraySingleObjectRecord:
		return e.encodeArraySingleObject(r)
	case *ArraySingleStringRecord:
		return e.encodeArraySingleString(r)
	case *BinaryObjectStringRecord:
		e.w.writeU8(byte(RecordBinaryObjectString))
		e.w.writeI32(r.ID)
		e.w.writeString(r.Value)
		return nil
	case *BinaryLibraryRecord:
		e.w.writeU8(byte(RecordBinaryLibrary))
		e.w.writeI32(r.LibraryID)
		e.w.writeString(r.LibraryName)
		return nil
	case *MemberReferenceRecord:
		e.w.writeU8(byte(RecordMemberReference))
		e.w.writeI32(r.IDRef)
		return nil
	case *ObjectNullRecord:
		e.w.writeU8(byte(RecordObjectNull))
		return nil
	case *ObjectNullMultipleRecord:
		e.w.writeU8(byte(RecordObjectNullMultiple))
		e.w.writeI32(r.Count)
		return nil
	case *ObjectNullMultiple256Record:
		e.w.writeU8(byte(RecordObjectNullMultiple256))
		e.w.writeU8(r.Count)
		return nil
	case *MemberPrimitiveTypedRecord:
		e.w.writeU8(byte(RecordMemberPrimitiveTyped))
		e.w.writeU8(byte(r.PrimitiveType))
		return writePrimitiveByType(e.w, r.PrimitiveType, r.Value)
	case *MessageEndRecord:
		e.w.writeU8(byte(RecordMessageEnd))
		return nil
	default:
		return fmt.Errorf("nrbf: encoder does not know how to emit record kind %s", rec.RecordKind())
	}
}

func (e *encoder) encodeClassRecord(r *ClassRecord) error {
	if r.OriginalKind == RecordClassWithMembers || r.OriginalKind == RecordClassWithMembersAndTypes {
		if err := e.ensureLibraryEmitted(r.LibraryID); err != nil {
			return err
		}
	}

	e.w.writeU8(byte(r.OriginalKind))
	switch r.OriginalKind {
	case RecordClassWithId:
		e.w.writeI32(r.Info.ObjectID)
		e.w.writeI32(r.MetadataID)
	case RecordSystemClassWithMembers, RecordClassWithMembers:
		writeClassInfo(e.w, r.Info)
		if r.OriginalKind == RecordClassWithMembers {
			e.w.writeI32(r.LibraryID)
		}
	case RecordSystemClassWithMembersAndTypes, RecordClassWithMembersAndTypes:
		writeClassInfo(e.w, r.Info)
		writeMemberTypeInfo(e.w, *r.MemberTypeInfo)
		if r.OriginalKind == RecordClassWithMembersAndTypes {
			e.w.writeI32(r.LibraryID)
		}
	default:
		return fmt.Errorf("nrbf: class record has invalid original kind %s", r.OriginalKind)
	}

	for i, name := range r.Info.MemberNames {
		val := r.MemberValues[name]
		if r.MemberTypeInfo != nil {
			if err := e.encodeTypedSlot(val, r.MemberTypeInfo.BinaryTypes[i], r.MemberTypeInfo.AdditionalInfos[i]); err != nil {
				return err
			}
			continue
		}
		if err := e.encodeUntypedSlot(val, fmt.Sprintf("member %q of class %q", name, r.Info.Name)); err != nil {
			return err
		}
	}
	return nil
}

// encodeTypedSlot writes a member or array-element value whose
// BinaryType/AdditionalTypeInfo is known: a Primitive slot is written
// inline with no lead byte, matching how the decoder reads it; every
// other BinaryType falls back to record-or-null-or-wrapped-primitive
// handling identical to the untyped path.
func (e *encoder) encodeTypedSlot(val Value, bt BinaryType, info AdditionalTypeInfo) error {
	if bt == BinaryTypePrimitive {
		return writePrimitiveByType(e.w, info.Primitive, val.Primitive)
	}
	return e.encodeUntypedSlot(val, "typed array/member slot")
}

// encodeUntypedSlot writes a value with no declared BinaryType: null
// becomes ObjectNull, a Record is emitted recursively, and a bare
// primitive is wrapped in a MemberPrimitiveTyped record using the one
// PrimitiveType its Go type unambiguously maps to.
func (e *encoder) encodeUntypedSlot(val Value, context string) error {
	if val.IsNull {
		e.w.writeU8(byte(RecordObjectNull))
		return nil
	}
	if val.Record != nil {
		return e.encodeRecord(val.Record)
	}
	pt, ok := inferPrimitiveType(val.Primitive)
	if !ok {
		return &EncodeTypeAmbiguousError{Context: context}
	}
	e.w.writeU8(byte(RecordMemberPrimitiveTyped))
	e.w.writeU8(byte(pt))
	return writePrimitiveByType(e.w, pt, val.Primitive)
}

func (e *encoder) encodeBinaryArray(r *BinaryArrayRecord) error {
	e.w.writeU8(byte(RecordBinaryArray))
	e.w.writeI32(r.ID)
	e.w.writeU8(byte(r.Kind))
	e.w.writeI32(r.Rank)
	for _, l := range r.Lengths {
		e.w.writeI32(l)
	}
	if r.Kind.hasLowerBounds() {
		for _, lb := range r.LowerBounds {
			e.w.writeI32(lb)
		}
	}
	e.w.writeU8(byte(r.ElementType))
	writeAdditionalTypeInfo(e.w, r.ElementAdditionalInfo)
	return e.encodeArrayTokens(r.tokens, r.ElementType, r.ElementAdditionalInfo)
}

func (e *encoder) encodeArraySingleObject(r *ArraySingleObjectRecord) error {
	e.w.writeU8(byte(RecordArraySingleObject))
	e.w.writeI32(r.ID)
	e.w.writeI32(int32(len(r.Elements)))
	return e.encodeArrayTokens(r.tokens, BinaryTypeObject, AdditionalTypeInfo{})
}

func (e *encoder) encodeArraySingleString(r *ArraySingleStringRecord) error {
	e.w.writeU8(byte(RecordArraySingleString))
	e.w.writeI32(r.ID)
	e.w.writeI32(int32(len(r.Elements)))
	return e.encodeArrayTokens(r.tokens, BinaryTypeString, AdditionalTypeInfo{})
}

func (e *encoder) encodeArraySinglePrimitive(r *ArraySinglePrimitiveRecord) error {
	e.w.writeU8(byte(RecordArraySinglePrimitive))
	e.w.writeI32(r.ID)
	e.w.writeI32(int32(len(r.Elements)))
	e.w.writeU8(byte(r.PrimitiveType))
	for _, v := range r.Elements {
		if err := writePrimitiveByType(e.w, r.PrimitiveType, v); err != nil {
			return err
		}
	}
	return nil
}

// encodeArrayTokens replays an array's original wire-level token
// sequence (see arraytokens.go), so a decoded null run re-encodes as
// the same run rather than as individual ObjectNull records.
func (e *encoder) encodeArrayTokens(tokens []arrayToken, elementType BinaryType, elementInfo AdditionalTypeInfo) error {
	for _, tok := range tokens {
		switch tok.Kind {
		case tokenNull:
			e.w.writeU8(byte(RecordObjectNull))
		case tokenNullRun8:
			e.w.writeU8(byte(RecordObjectNullMultiple256))
			e.w.writeU8(byte(tok.Count))
		case tokenNullRun32:
			e.w.writeU8(byte(RecordObjectNullMultiple))
			e.w.writeI32(tok.Count)
		default:
			if err := e.encodeTypedSlot(tok.Value, elementType, elementInfo); err != nil {
				return err
			}
		}
	}
	return nil
}
