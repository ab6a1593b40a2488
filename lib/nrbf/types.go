// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "fmt"

// RecordKind is the wire tag identifying one of the 18 NRBF record
// shapes. The numeric value is the lead byte on the wire and must be
// preserved across a round trip — the encoder replays a record's
// original kind rather than picking a canonical one (e.g. it never
// upgrades a ClassWithId back into a full class record).
type RecordKind byte

const (
	RecordHeader                       RecordKind = 0
	RecordClassWithId                  RecordKind = 1
	RecordSystemClassWithMembers       RecordKind = 2
	RecordClassWithMembers             RecordKind = 3
	RecordSystemClassWithMembersAndTypes RecordKind = 4
	RecordClassWithMembersAndTypes     RecordKind = 5
	RecordBinaryObjectString           RecordKind = 6
	RecordBinaryArray                  RecordKind = 7
	RecordMemberPrimitiveTyped         RecordKind = 8
	RecordMemberReference              RecordKind = 9
	RecordObjectNull                   RecordKind = 10
	RecordMessageEnd                   RecordKind = 11
	RecordBinaryLibrary                RecordKind = 12
	RecordObjectNullMultiple256        RecordKind = 13
	RecordObjectNullMultiple           RecordKind = 14
	RecordArraySinglePrimitive         RecordKind = 15
	RecordArraySingleObject            RecordKind = 16
	RecordArraySingleString            RecordKind = 17
)

func (k RecordKind) String() string {
	switch k {
	case RecordHeader:
		return "Header"
	case RecordClassWithId:
		return "ClassWithId"
	case RecordSystemClassWithMembers:
		return "SystemClassWithMembers"
	case RecordClassWithMembers:
		return "ClassWithMembers"
	case RecordSystemClassWithMembersAndTypes:
		return "SystemClassWithMembersAndTypes"
	case RecordClassWithMembersAndTypes:
		return "ClassWithMembersAndTypes"
	case RecordBinaryObjectString:
		return "BinaryObjectString"
	case RecordBinaryArray:
		return "BinaryArray"
	case RecordMemberPrimitiveTyped:
		return "MemberPrimitiveTyped"
	case RecordMemberReference:
		return "MemberReference"
	case RecordObjectNull:
		return "ObjectNull"
	case RecordMessageEnd:
		return "MessageEnd"
	case RecordBinaryLibrary:
		return "BinaryLibrary"
	case RecordObjectNullMultiple256:
		return "ObjectNullMultiple256"
	case RecordObjectNullMultiple:
		return "ObjectNullMultiple"
	case RecordArraySinglePrimitive:
		return "ArraySinglePrimitive"
	case RecordArraySingleObject:
		return "ArraySingleObject"
	case RecordArraySingleString:
		return "ArraySingleString"
	default:
		return fmt.Sprintf("RecordKind(%d)", byte(k))
	}
}

// isValidRecordKind reports whether b is a lead byte in the 0..17
// range the decoder knows how to dispatch.
func isValidRecordKind(b byte) bool {
	return b <= byte(RecordArraySingleString)
}

// BinaryType describes how a class member slot or array element is
// typed on the wire.
type BinaryType byte

const (
	BinaryTypePrimitive BinaryType = iota
	BinaryTypeString
	BinaryTypeObject
	BinaryTypeSystemClass
	BinaryTypeClass
	BinaryTypeObjectArray
	BinaryTypeStringArray
	BinaryTypePrimitiveArray
)

func (t BinaryType) String() string {
	switch t {
	case BinaryTypePrimitive:
		return "Primitive"
	case BinaryTypeString:
		return "String"
	case BinaryTypeObject:
		return "Object"
	case BinaryTypeSystemClass:
		return "SystemClass"
	case BinaryTypeClass:
		return "Class"
	case BinaryTypeObjectArray:
		return "ObjectArray"
	case BinaryTypeStringArray:
		return "StringArray"
	case BinaryTypePrimitiveArray:
		return "PrimitiveArray"
	default:
		return fmt.Sprintf("BinaryType(%d)", byte(t))
	}
}

// PrimitiveType enumerates the 17 primitive wire kinds. Numeric values
// match MS-NRBF.
type PrimitiveType byte

const (
	PrimitiveBoolean PrimitiveType = iota + 1
	PrimitiveByte
	PrimitiveChar
	PrimitiveUnused // 4 is reserved/unused in MS-NRBF; kept for numeric alignment.
	PrimitiveDecimal
	PrimitiveDouble
	PrimitiveInt16
	PrimitiveInt32
	PrimitiveInt64
	PrimitiveSByte
	PrimitiveSingle
	PrimitiveTimeSpan
	PrimitiveDateTime
	PrimitiveUInt16
	PrimitiveUInt32
	PrimitiveUInt64
	PrimitiveNull
	PrimitiveString
)

func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveByte:
		return "Byte"
	case PrimitiveChar:
		return "Char"
	case PrimitiveDecimal:
		return "Decimal"
	case PrimitiveDouble:
		return "Double"
	case PrimitiveInt16:
		return "Int16"
	case PrimitiveInt32:
		return "Int32"
	case PrimitiveInt64:
		return "Int64"
	case PrimitiveSByte:
		return "SByte"
	case PrimitiveSingle:
		return "Single"
	case PrimitiveTimeSpan:
		return "TimeSpan"
	case PrimitiveDateTime:
		return "DateTime"
	case PrimitiveUInt16:
		return "UInt16"
	case PrimitiveUInt32:
		return "UInt32"
	case PrimitiveUInt64:
		return "UInt64"
	case PrimitiveNull:
		return "Null"
	case PrimitiveString:
		return "String"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", byte(t))
	}
}

// BinaryArrayKind identifies the shape of a BinaryArray record: whether
// it is single-dimensional, jagged, or rectangular, and whether
// non-zero lower bounds are present on the wire.
type BinaryArrayKind byte

const (
	ArrayKindSingle BinaryArrayKind = iota
	ArrayKindJagged
	ArrayKindRectangular
	ArrayKindSingleOffset
	ArrayKindJaggedOffset
	ArrayKindRectangularOffset
)

func (k BinaryArrayKind) String() string {
	switch k {
	case ArrayKindSingle:
		return "Single"
	case ArrayKindJagged:
		return "Jagged"
	case ArrayKindRectangular:
		return "Rectangular"
	case ArrayKindSingleOffset:
		return "SingleOffset"
	case ArrayKindJaggedOffset:
		return "JaggedOffset"
	case ArrayKindRectangularOffset:
		return "RectangularOffset"
	default:
		return fmt.Sprintf("BinaryArrayKind(%d)", byte(k))
	}
}

// hasLowerBounds reports whether this array kind carries a per-dimension
// lower-bound array on the wire (the three "Offset" variants).
func (k BinaryArrayKind) hasLowerBounds() bool {
	switch k {
	case ArrayKindSingleOffset, ArrayKindJaggedOffset, ArrayKindRectangularOffset:
		return true
	default:
		return false
	}
}

// AdditionalTypeInfoKind discriminates the AdditionalTypeInfo union.
type AdditionalTypeInfoKind byte

const (
	AdditionalInfoNone AdditionalTypeInfoKind = iota
	AdditionalInfoPrimitive
	AdditionalInfoSystemClass
	AdditionalInfoClass
)

// AdditionalTypeInfo carries the extra per-member (or per-element) type
// detail that accompanies a BinaryType. Exactly one field is meaningful,
// selected by Kind.
type AdditionalTypeInfo struct {
	Kind      AdditionalTypeInfoKind
	Primitive PrimitiveType // meaningful iff Kind == AdditionalInfoPrimitive
	ClassName string        // meaningful iff Kind == AdditionalInfoSystemClass or AdditionalInfoClass
	LibraryID int32         // meaningful iff Kind == AdditionalInfoClass
}

// readAdditionalTypeInfo reads the AdditionalTypeInfo that follows a
// BinaryType byte, per §4.3's "Class-record decoding" step 2.
func readAdditionalTypeInfo(c *cursor, bt BinaryType) (AdditionalTypeInfo, error) {
	switch bt {
	case BinaryTypePrimitive, BinaryTypePrimitiveArray:
		b, err := c.readU8()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		return AdditionalTypeInfo{Kind: AdditionalInfoPrimitive, Primitive: PrimitiveType(b)}, nil
	case BinaryTypeSystemClass:
		name, err := c.readString()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		return AdditionalTypeInfo{Kind: AdditionalInfoSystemClass, ClassName: name}, nil
	case BinaryTypeClass:
		name, err := c.readString()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		libraryID, err := c.readI32()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		return AdditionalTypeInfo{Kind: AdditionalInfoClass, ClassName: name, LibraryID: libraryID}, nil
	default:
		return AdditionalTypeInfo{Kind: AdditionalInfoNone}, nil
	}
}

func writeAdditionalTypeInfo(w *writer, info AdditionalTypeInfo) {
	switch info.Kind {
	case AdditionalInfoPrimitive:
		w.writeU8(byte(info.Primitive))
	case AdditionalInfoSystemClass:
		w.writeString(info.ClassName)
	case AdditionalInfoClass:
		w.writeString(info.ClassName)
		w.writeI32(info.LibraryID)
	}
}

// ClassInfo names a class and its ordered member list, shared by every
// full class record (kinds 2-5) and fabricated for ClassWithId (kind 1)
// from the metadata table.
type ClassInfo struct {
	ObjectID    int32
	Name        string
	MemberNames []string
}

// MemberTypeInfo carries the per-member BinaryType and AdditionalTypeInfo
// for the typed class kinds (4, 5). Parallel to ClassInfo.MemberNames —
// index i in both describes the same member.
type MemberTypeInfo struct {
	BinaryTypes     []BinaryType
	AdditionalInfos []AdditionalTypeInfo
}

func readClassInfo(c *cursor) (ClassInfo, error) {
	objectID, err := c.readI32()
	if err != nil {
		return ClassInfo{}, err
	}
	name, err := c.readString()
	if err != nil {
		return ClassInfo{}, err
	}
	memberCount, err := c.readI32()
	if err != nil {
		return ClassInfo{}, err
	}
	names := make([]string, memberCount)
	for i := range names {
		names[i], err = c.readString()
		if err != nil {
			return ClassInfo{}, err
		}
	}
	return ClassInfo{ObjectID: objectID, Name: name, MemberNames: names}, nil
}

func writeClassInfo(w *writer, info ClassInfo) {
	w.writeI32(info.ObjectID)
	w.writeString(info.Name)
	w.writeI32(int32(len(info.MemberNames)))
	for _, name := range info.MemberNames {
		w.writeString(name)
	}
}

func readMemberTypeInfo(c *cursor, memberCount int) (MemberTypeInfo, error) {
	types := make([]BinaryType, memberCount)
	for i := range types {
		b, err := c.readU8()
		if err != nil {
			return MemberTypeInfo{}, err
		}
		types[i] = BinaryType(b)
	}
	infos := make([]AdditionalTypeInfo, memberCount)
	for i := range infos {
		info, err := readAdditionalTypeInfo(c, types[i])
		if err != nil {
			return MemberTypeInfo{}, err
		}
		infos[i] = info
	}
	return MemberTypeInfo{BinaryTypes: types, AdditionalInfos: infos}, nil
}

func writeMemberTypeInfo(w *writer, info MemberTypeInfo) {
	for _, bt := range info.BinaryTypes {
		w.writeU8(byte(bt))
	}
	for _, ai := range info.AdditionalInfos {
		writeAdditionalTypeInfo(w, ai)
	}
}
