// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

// Record is the tagged-union interface every decoded NRBF frame
// implements. RecordKind returns the wire tag (preserved verbatim for
// re-encoding); ObjectID returns the record's identity for the 9
// ID-bearing kinds, or (0, false) otherwise.
type Record interface {
	RecordKind() RecordKind
	ObjectID() (int32, bool)
}

// Value is a member or array-element slot: either an inline primitive,
// a null, or a nested Record reached by recursive decode or by
// reference. Exactly one of the three states applies; IsNull and Record
// are mutually exclusive, and a non-nil Record implies !IsNull.
type Value struct {
	Primitive any // one of bool, byte, int8, int16, int32, int64, uint16, uint32, uint64, float32, float64, string, or a decimal/DateTime/TimeSpan carrier (see primitives.go)
	Record    Record
	IsNull    bool
}

func primitiveValue(v any) Value { return Value{Primitive: v} }
func recordValue(r Record) Value { return Value{Record: r} }
func nullValue() Value           { return Value{IsNull: true} }

// HeaderRecord is the mandatory first record of every stream (kind 0).
type HeaderRecord struct {
	RootID       int32
	HeaderID     int32
	MajorVersion int32
	MinorVersion int32
}

func (r *HeaderRecord) RecordKind() RecordKind  { return RecordHeader }
func (r *HeaderRecord) ObjectID() (int32, bool) { return 0, false }

// BinaryLibraryRecord (kind 12) names an assembly referenced by class
// records. Registered in the library table, never in the record table.
type BinaryLibraryRecord struct {
	LibraryID   int32
	LibraryName string
}

func (r *BinaryLibraryRecord) RecordKind() RecordKind  { return RecordBinaryLibrary }
func (r *BinaryLibraryRecord) ObjectID() (int32, bool) { return 0, false }

// ClassRecord covers wire kinds 1 through 5. OriginalKind records which
// of the five wire shapes produced this record so the encoder can
// replay it exactly — a ClassWithId is never "upgraded" to a full class
// record on re-encode.
type ClassRecord struct {
	Info           ClassInfo
	MemberTypeInfo *MemberTypeInfo // present only for OriginalKind 4, 5
	LibraryID      int32           // present only for OriginalKind 1 (inherited), 3, 5
	HasLibraryID   bool
	MetadataID     int32 // meaningful only for OriginalKind == RecordClassWithId
	OriginalKind   RecordKind
	MemberValues   map[string]Value
}

func (r *ClassRecord) RecordKind() RecordKind  { return r.OriginalKind }
func (r *ClassRecord) ObjectID() (int32, bool) { return r.Info.ObjectID, true }

// TypeName returns the class's .NET type name.
func (r *ClassRecord) TypeName() string { return r.Info.Name }

// MemberNames returns the ordered member names, matching the order of
// value slots on the wire.
func (r *ClassRecord) MemberNames() []string { return r.Info.MemberNames }

// GetValue returns the value stored for member name, or false if name
// is not one of this class's members.
func (r *ClassRecord) GetValue(name string) (Value, bool) {
	v, ok := r.MemberValues[name]
	return v, ok
}

// SetValue stores value for member name. It fails with UnknownMemberError
// if name is not in MemberNames — it does not type-check value against
// MemberTypeInfo; the caller is responsible for supplying a value
// compatible with the encoded BinaryType (§4.2).
func (r *ClassRecord) SetValue(name string, value Value) error {
	if _, ok := r.MemberValues[name]; !ok {
		return &UnknownMemberError{Class: r.Info.Name, Name: name}
	}
	r.MemberValues[name] = value
	return nil
}

// hasMember reports whether name is a declared member.
func (r *ClassRecord) hasMember(name string) bool {
	for _, n := range r.Info.MemberNames {
		if n == name {
			return true
		}
	}
	return false
}

// BinaryArrayRecord (kind 7) is the general N-dimensional array shape:
// single, jagged, or rectangular, with optional per-dimension lower
// bounds.
type BinaryArrayRecord struct {
	ID                    int32
	Kind                  BinaryArrayKind
	Rank                  int32
	Lengths               []int32
	LowerBounds           []int32 // len(LowerBounds) == 0 unless Kind.hasLowerBounds()
	ElementType           BinaryType
	ElementAdditionalInfo AdditionalTypeInfo
	Elements              []Value

	// tokens is the pre-expansion wire token sequence backing Elements,
	// used by the encoder to replay null runs exactly (see arraytokens.go).
	tokens []arrayToken
}

func (r *BinaryArrayRecord) RecordKind() RecordKind  { return RecordBinaryArray }
func (r *BinaryArrayRecord) ObjectID() (int32, bool) { return r.ID, true }

// NewBinaryArrayRecord builds a BinaryArrayRecord from a logical element
// slice, deriving the wire-level null-run token sequence automatically.
// Use this rather than constructing the struct literal directly when
// elements did not come from Decode — the token sequence backing
// Elements is private, and Encode reads it rather than Elements.
func NewBinaryArrayRecord(id int32, kind BinaryArrayKind, lengths, lowerBounds []int32, elementType BinaryType, elementInfo AdditionalTypeInfo, elements []Value) *BinaryArrayRecord {
	return &BinaryArrayRecord{
		ID:                    id,
		Kind:                  kind,
		Rank:                  int32(len(lengths)),
		Lengths:               lengths,
		LowerBounds:           lowerBounds,
		ElementType:           elementType,
		ElementAdditionalInfo: elementInfo,
		Elements:              elements,
		tokens:                rebuildArrayTokens(elements),
	}
}

// ArraySinglePrimitiveRecord (kind 15) is a flat array of one primitive
// type. Primitives cannot be null, so there is no null-run expansion
// here.
type ArraySinglePrimitiveRecord struct {
	ID            int32
	PrimitiveType PrimitiveType
	Elements      []any
}

func (r *ArraySinglePrimitiveRecord) RecordKind() RecordKind  { return RecordArraySinglePrimitive }
func (r *ArraySinglePrimitiveRecord) ObjectID() (int32, bool) { return r.ID, true }

// ArraySingleObjectRecord (kind 16) is a flat array of Object-typed
// slots, each decoded via the typed value path; null-run expansion
// applies.
type ArraySingleObjectRecord struct {
	ID       int32
	Elements []Value

	tokens []arrayToken
}

func (r *ArraySingleObjectRecord) RecordKind() RecordKind  { return RecordArraySingleObject }
func (r *ArraySingleObjectRecord) ObjectID() (int32, bool) { return r.ID, true }

// NewArraySingleObjectRecord builds an ArraySingleObjectRecord from a
// logical element slice, deriving the null-run token sequence. See
// NewBinaryArrayRecord.
func NewArraySingleObjectRecord(id int32, elements []Value) *ArraySingleObjectRecord {
	return &ArraySingleObjectRecord{ID: id, Elements: elements, tokens: rebuildArrayTokens(elements)}
}

// ArraySingleStringRecord (kind 17) is a flat array of String-typed
// slots; null-run expansion applies.
type ArraySingleStringRecord struct {
	ID       int32
	Elements []Value

	tokens []arrayToken
}

func (r *ArraySingleStringRecord) RecordKind() RecordKind  { return RecordArraySingleString }
func (r *ArraySingleStringRecord) ObjectID() (int32, bool) { return r.ID, true }

// NewArraySingleStringRecord builds an ArraySingleStringRecord from a
// logical element slice, deriving the null-run token sequence. See
// NewBinaryArrayRecord.
func NewArraySingleStringRecord(id int32, elements []Value) *ArraySingleStringRecord {
	return &ArraySingleStringRecord{ID: id, Elements: elements, tokens: rebuildArrayTokens(elements)}
}

// BinaryObjectStringRecord (kind 6) is a standalone interned string.
type BinaryObjectStringRecord struct {
	ID    int32
	Value string
}

func (r *BinaryObjectStringRecord) RecordKind() RecordKind  { return RecordBinaryObjectString }
func (r *BinaryObjectStringRecord) ObjectID() (int32, bool) { return r.ID, true }

// MemberPrimitiveTypedRecord (kind 8) wraps a single primitive value
// with an explicit wire type. It is emitted for a slot outside a typed
// class/array context, where the type cannot be inferred from
// surrounding metadata.
type MemberPrimitiveTypedRecord struct {
	PrimitiveType PrimitiveType
	Value         any
}

func (r *MemberPrimitiveTypedRecord) RecordKind() RecordKind  { return RecordMemberPrimitiveTyped }
func (r *MemberPrimitiveTypedRecord) ObjectID() (int32, bool) { return 0, false }

// MemberReferenceRecord (kind 9) points at another record by object ID.
// Forward references are legal; resolution happens lazily via the
// record table (see resolveReference in pathnav.go).
type MemberReferenceRecord struct {
	IDRef int32
}

func (r *MemberReferenceRecord) RecordKind() RecordKind  { return RecordMemberReference }
func (r *MemberReferenceRecord) ObjectID() (int32, bool) { return 0, false }

// ObjectNullRecord (kind 10) is the null singleton. There is exactly
// one logical value; NullRecord is shared to keep decode allocation-free
// for the (common) case of many nulls.
type ObjectNullRecord struct{}

func (r *ObjectNullRecord) RecordKind() RecordKind  { return RecordObjectNull }
func (r *ObjectNullRecord) ObjectID() (int32, bool) { return 0, false }

// NullRecord is the shared ObjectNullRecord singleton.
var NullRecord = &ObjectNullRecord{}

// ObjectNullMultipleRecord (kind 14) expands to Count consecutive null
// array slots, Count encoded as a 4-byte signed integer on the wire.
type ObjectNullMultipleRecord struct {
	Count int32
}

func (r *ObjectNullMultipleRecord) RecordKind() RecordKind  { return RecordObjectNullMultiple }
func (r *ObjectNullMultipleRecord) ObjectID() (int32, bool) { return 0, false }

// ObjectNullMultiple256Record (kind 13) is the same run-length null
// token with Count encoded as a single unsigned byte (1..255; 0 is
// legal on the wire and represents no expansion).
type ObjectNullMultiple256Record struct {
	Count uint8
}

func (r *ObjectNullMultiple256Record) RecordKind() RecordKind  { return RecordObjectNullMultiple256 }
func (r *ObjectNullMultiple256Record) ObjectID() (int32, bool) { return 0, false }

// MessageEndRecord (kind 11) is the mandatory stream trailer.
type MessageEndRecord struct{}

func (r *MessageEndRecord) RecordKind() RecordKind  { return RecordMessageEnd }
func (r *MessageEndRecord) ObjectID() (int32, bool) { return 0, false }

// MessageEnd is the shared MessageEndRecord singleton.
var MessageEnd = &MessageEndRecord{}
