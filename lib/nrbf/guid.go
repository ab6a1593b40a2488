// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// guidTypeName is the .NET type name a System.Guid struct is serialized
// under — a SystemClassWithMembersAndTypes record whose eleven members
// match System.Guid's private field layout.
const guidTypeName = "System.Guid"

// guidMemberNames is the canonical member order System.Guid serializes
// in: one int32, two int16, and eight bytes, matching the field layout
// RFC 4122 calls time_low/time_mid/time_hi_and_version/clock_seq/node.
var guidMemberNames = []string{"_a", "_b", "_c", "_d", "_e", "_f", "_g", "_h", "_i", "_j", "_k"}

// IsGUIDRecord reports whether rec is a System.Guid class record.
func IsGUIDRecord(rec Record) bool {
	class, ok := rec.(*ClassRecord)
	return ok && class.Info.Name == guidTypeName
}

// ParseGUID extracts the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// string form of a decoded System.Guid class record.
func ParseGUID(rec Record) (string, error) {
	class, ok := rec.(*ClassRecord)
	if !ok || class.Info.Name != guidTypeName {
		return "", fmt.Errorf("nrbf: record is not a System.Guid class")
	}

	a, err := guidMemberInt32(class, "_a")
	if err != nil {
		return "", err
	}
	b, err := guidMemberInt16(class, "_b")
	if err != nil {
		return "", err
	}
	c, err := guidMemberInt16(class, "_c")
	if err != nil {
		return "", err
	}
	tail := make([]byte, 8)
	for i, name := range guidMemberNames[3:] {
		v, err := guidMemberByte(class, name)
		if err != nil {
			return "", err
		}
		tail[i] = v
	}

	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(a))
	binary.BigEndian.PutUint16(buf[4:6], uint16(b))
	binary.BigEndian.PutUint16(buf[6:8], uint16(c))
	copy(buf[8:16], tail)

	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hex.EncodeToString(buf[0:4]),
		hex.EncodeToString(buf[4:6]),
		hex.EncodeToString(buf[6:8]),
		hex.EncodeToString(buf[8:10]),
		hex.EncodeToString(buf[10:16]),
	), nil
}

// BuildGUIDRecord constructs a System.Guid class record for guid (in
// canonical hyphenated form) with the given object ID, ready to be
// inserted into a record graph via PathSet or direct assignment.
func BuildGUIDRecord(objectID int32, guid string) (*ClassRecord, error) {
	raw, err := parseGUIDHex(guid)
	if err != nil {
		return nil, err
	}

	a := int32(binary.BigEndian.Uint32(raw[0:4]))
	b := int16(binary.BigEndian.Uint16(raw[4:6]))
	c := int16(binary.BigEndian.Uint16(raw[6:8]))

	binaryTypes := make([]BinaryType, 11)
	additionalInfos := make([]AdditionalTypeInfo, 11)
	values := map[string]Value{
		"_a": primitiveValue(a),
		"_b": primitiveValue(b),
		"_c": primitiveValue(c),
	}
	primitiveTypes := map[string]PrimitiveType{"_a": PrimitiveInt32, "_b": PrimitiveInt16, "_c": PrimitiveInt16}
	for i, name := range guidMemberNames[3:] {
		values[name] = primitiveValue(raw[8+i])
		primitiveTypes[name] = PrimitiveByte
	}
	for i, name := range guidMemberNames {
		binaryTypes[i] = BinaryTypePrimitive
		additionalInfos[i] = AdditionalTypeInfo{Kind: AdditionalInfoPrimitive, Primitive: primitiveTypes[name]}
	}

	return &ClassRecord{
		Info: ClassInfo{
			ObjectID:    objectID,
			Name:        guidTypeName,
			MemberNames: append([]string(nil), guidMemberNames...),
		},
		MemberTypeInfo: &MemberTypeInfo{BinaryTypes: binaryTypes, AdditionalInfos: additionalInfos},
		OriginalKind:   RecordSystemClassWithMembersAndTypes,
		MemberValues:   values,
	}, nil
}

func parseGUIDHex(guid string) ([16]byte, error) {
	var out [16]byte
	groups := []struct {
		start, end int
		bufStart   int
	}{
		{0, 8, 0}, {9, 13, 4}, {14, 18, 6}, {19, 23, 8}, {24, 36, 10},
	}
	if len(guid) != 36 || guid[8] != '-' || guid[13] != '-' || guid[18] != '-' || guid[23] != '-' {
		return out, fmt.Errorf("nrbf: %q is not a canonical GUID string", guid)
	}
	for _, g := range groups {
		b, err := hex.DecodeString(guid[g.start:g.end])
		if err != nil {
			return out, fmt.Errorf("nrbf: %q is not a canonical GUID string: %w", guid, err)
		}
		copy(out[g.bufStart:], b)
	}
	return out, nil
}

func guidMemberInt32(class *ClassRecord, name string) (int32, error) {
	v, ok := class.GetValue(name)
	if !ok {
		return 0, &UnknownMemberError{Class: class.Info.Name, Name: name}
	}
	n, ok := v.Primitive.(int32)
	if !ok {
		return 0, fmt.Errorf("nrbf: System.Guid member %q is not an Int32", name)
	}
	return n, nil
}

func guidMemberInt16(class *ClassRecord, name string) (int16, error) {
	v, ok := class.GetValue(name)
	if !ok {
		return 0, &UnknownMemberError{Class: class.Info.Name, Name: name}
	}
	n, ok := v.Primitive.(int16)
	if !ok {
		return 0, fmt.Errorf("nrbf: System.Guid member %q is not an Int16", name)
	}
	return n, nil
}

func guidMemberByte(class *ClassRecord, name string) (byte, error) {
	v, ok := class.GetValue(name)
	if !ok {
		return 0, &UnknownMemberError{Class: class.Info.Name, Name: name}
	}
	b, ok := v.Primitive.(byte)
	if !ok {
		return 0, fmt.Errorf("nrbf: System.Guid member %q is not a Byte", name)
	}
	return b, nil
}

// FindGUIDs walks the record table and returns the object IDs of every
// System.Guid class record, for the CLI's "guid find" subcommand.
func FindGUIDs(table RecordTable) []int32 {
	var ids []int32
	for id, rec := range table {
		if IsGUIDRecord(rec) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ReplaceGUID overwrites the member values of an existing System.Guid
// class record in place with the bytes of a new GUID, preserving its
// object ID and every reference to it elsewhere in the graph.
func ReplaceGUID(rec Record, guid string) error {
	class, ok := rec.(*ClassRecord)
	if !ok || class.Info.Name != guidTypeName {
		return fmt.Errorf("nrbf: record is not a System.Guid class")
	}
	replacement, err := BuildGUIDRecord(class.Info.ObjectID, guid)
	if err != nil {
		return err
	}
	class.MemberValues = replacement.MemberValues
	return nil
}
