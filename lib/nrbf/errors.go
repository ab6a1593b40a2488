// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"errors"
	"fmt"
)

// TruncatedStreamError reports that a read crossed the end of the
// buffer. The decoder never truncates, coerces, or skips partial data —
// any short read is fatal to the decode.
type TruncatedStreamError struct {
	// Offset is the byte offset at which the read was attempted.
	Offset int
	// Wanted is the number of bytes the read needed.
	Wanted int
	// Available is the number of bytes actually left in the buffer.
	Available int
}

func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf("nrbf: truncated stream at offset %d: wanted %d bytes, %d available",
		err.Offset, err.Wanted, err.Available)
}

// BadRecordTagError reports a lead byte outside the 0..17 record kind
// range. Context is a bounded window of bytes surrounding the offset,
// useful for diagnosing where a stream went off the rails.
type BadRecordTagError struct {
	Byte    byte
	Offset  int
	Context []byte
}

func (err *BadRecordTagError) Error() string {
	return fmt.Sprintf("nrbf: unrecognized record tag 0x%02x at offset %d (context: % x)",
		err.Byte, err.Offset, err.Context)
}

// MalformedVarintError reports a 7-bit-continuation integer that did not
// terminate within 5 bytes (the maximum needed to cover 0..2^31-1).
type MalformedVarintError struct {
	Offset int
}

func (err *MalformedVarintError) Error() string {
	return fmt.Sprintf("nrbf: malformed variable-length integer at offset %d: exceeds 5 continuation bytes", err.Offset)
}

// NegativeStringLengthError reports a length-prefixed string whose
// decoded prefix is negative.
type NegativeStringLengthError struct {
	Length int32
	Offset int
}

func (err *NegativeStringLengthError) Error() string {
	return fmt.Sprintf("nrbf: negative string length %d at offset %d", err.Length, err.Offset)
}

// InvalidUTF8Error reports that a length-prefixed string's bytes are not
// valid UTF-8.
type InvalidUTF8Error struct {
	Offset int
}

func (err *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("nrbf: invalid UTF-8 in string at offset %d", err.Offset)
}

// UnknownMetadataError reports that a ClassWithId record's metadataId
// does not match any full class record (kinds 2-5) decoded so far.
type UnknownMetadataError struct {
	MetadataID int32
}

func (err *UnknownMetadataError) Error() string {
	return fmt.Sprintf("nrbf: ClassWithId references unknown metadata id %d", err.MetadataID)
}

// DuplicateObjectIDError reports that two records in the same stream
// claim the same object ID.
type DuplicateObjectIDError struct {
	ID int32
}

func (err *DuplicateObjectIDError) Error() string {
	return fmt.Sprintf("nrbf: duplicate object id %d", err.ID)
}

// RootNotFoundError reports that the header's rootId is not present in
// the record table after a full decode.
type RootNotFoundError struct {
	RootID int32
}

func (err *RootNotFoundError) Error() string {
	return fmt.Sprintf("nrbf: root record id %d not found in record table", err.RootID)
}

// UnknownMemberError reports a SetValue/GetValue call against a member
// name that is not in the class's member list.
type UnknownMemberError struct {
	Class string
	Name  string
}

func (err *UnknownMemberError) Error() string {
	return fmt.Sprintf("nrbf: class %q has no member %q", err.Class, err.Name)
}

// UnresolvedReferenceError reports that a MemberReference's idRef could
// not be resolved against the record table. Decode never raises this —
// forward references are legal on the wire — it is raised lazily, only
// when a consumer (PathGet or a client) dereferences the reference.
type UnresolvedReferenceError struct {
	IDRef int32
}

func (err *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("nrbf: unresolved reference to object id %d", err.IDRef)
}

// EncodeTypeAmbiguousError reports that the encoder was asked to write
// an untyped primitive slot (a member or array element with no
// MemberTypeInfo) whose Go value type does not map unambiguously onto
// exactly one PrimitiveType.
type EncodeTypeAmbiguousError struct {
	Context string
}

func (err *EncodeTypeAmbiguousError) Error() string {
	return fmt.Sprintf("nrbf: cannot infer primitive wire type for %s outside a typed context", err.Context)
}

// errSafetyCapExceeded reports that the decoder's hard per-stream
// record count guard tripped. Not part of the typed error set exposed
// by the package surface (§7); it exists purely to bound pathological
// inputs and is a plain sentinel error, returned unwrapped.
var errSafetyCapExceeded = errors.New("nrbf: exceeded maximum record count per stream")

// IsUnresolvedReference reports whether err is an UnresolvedReferenceError.
func IsUnresolvedReference(err error) bool {
	var target *UnresolvedReferenceError
	return errors.As(err, &target)
}

// IsUnknownMetadata reports whether err is an UnknownMetadataError.
func IsUnknownMetadata(err error) bool {
	var target *UnknownMetadataError
	return errors.As(err, &target)
}

// IsUnknownMember reports whether err is an UnknownMemberError.
func IsUnknownMember(err error) bool {
	var target *UnknownMemberError
	return errors.As(err, &target)
}

// IsTruncatedStream reports whether err is a TruncatedStreamError.
func IsTruncatedStream(err error) bool {
	var target *TruncatedStreamError
	return errors.As(err, &target)
}

// IsBadRecordTag reports whether err is a BadRecordTagError.
func IsBadRecordTag(err error) bool {
	var target *BadRecordTagError
	return errors.As(err, &target)
}

// IsMalformedVarint reports whether err is a MalformedVarintError.
func IsMalformedVarint(err error) bool {
	var target *MalformedVarintError
	return errors.As(err, &target)
}

// IsNegativeStringLength reports whether err is a NegativeStringLengthError.
func IsNegativeStringLength(err error) bool {
	var target *NegativeStringLengthError
	return errors.As(err, &target)
}
