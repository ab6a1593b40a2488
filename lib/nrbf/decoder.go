// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "fmt"

// RecordTable maps every ID-bearing record decoded from a stream to its
// object ID. It is the second return value of Decode and the structure
// PathNav walks to resolve MemberReferenceRecord slots.
type RecordTable map[int32]Record

// LibraryTable maps every BinaryLibrary record decoded from a stream to
// its library ID. Libraries are never registered into RecordTable —
// they are addressed only through ClassRecord.LibraryID.
type LibraryTable map[int32]*BinaryLibraryRecord

// maxRecordsPerStream bounds how many records a single Decode call will
// read before giving up. It guards against a pathological or hostile
// stream driving unbounded work with no forward progress signal (a
// stream that never emits MessageEnd).
const maxRecordsPerStream = 100_000

type classMetadata struct {
	Info           ClassInfo
	MemberTypeInfo *MemberTypeInfo
	LibraryID      int32
	HasLibraryID   bool
}

type decoder struct {
	c           *cursor
	records     RecordTable
	libraries   LibraryTable
	metadata    map[int32]classMetadata
	recordCount int
}

// Decode parses a complete NRBF byte stream and returns its root record,
// the full record table, and the library table. The header's headerId,
// majorVersion, and minorVersion are not returned separately, and
// Decode does not check them: a stream with any version numbers is
// accepted.
func Decode(data []byte) (Record, RecordTable, LibraryTable, error) {
	c := newCursor(data)
	header, err := readHeader(c)
	if err != nil {
		return nil, nil, nil, err
	}

	d := &decoder{
		c:         c,
		records:   RecordTable{},
		libraries: LibraryTable{},
		metadata:  map[int32]classMetadata{},
	}

	for {
		if d.recordCount >= maxRecordsPerStream {
			return nil, nil, nil, errSafetyCapExceeded
		}
		rec, err := d.readRecord()
		if err != nil {
			return nil, nil, nil, err
		}
		d.recordCount++
		if _, ok := rec.(*MessageEndRecord); ok {
			break
		}
	}

	root, ok := d.records[header.RootID]
	if !ok {
		return nil, nil, nil, &RootNotFoundError{RootID: header.RootID}
	}
	return root, d.records, d.libraries, nil
}

func readHeader(c *cursor) (*HeaderRecord, error) {
	tag, err := c.readU8()
	if err != nil {
		return nil, err
	}
	if RecordKind(tag) != RecordHeader {
		return nil, &BadRecordTagError{Byte: tag, Offset: 0, Context: c.contextAround(0)}
	}
	rootID, err := c.readI32()
	if err != nil {
		return nil, err
	}
	headerID, err := c.readI32()
	if err != nil {
		return nil, err
	}
	major, err := c.readI32()
	if err != nil {
		return nil, err
	}
	minor, err := c.readI32()
	if err != nil {
		return nil, err
	}
	return &HeaderRecord{RootID: rootID, HeaderID: headerID, MajorVersion: major, MinorVersion: minor}, nil
}

// register records rec under id, failing if id has already been claimed
// by another record in this stream. Registration must happen before a
// record's member values are decoded — a class or array can legally
// contain a reference back to its own ID (a direct cycle).
func (d *decoder) register(id int32, rec Record) error {
	if _, exists := d.records[id]; exists {
		return &DuplicateObjectIDError{ID: id}
	}
	d.records[id] = rec
	return nil
}

// readRecord dispatches on the next lead byte and decodes exactly one
// record. It is called both from the stream's main loop and recursively
// wherever a member slot or array element embeds another record.
func (d *decoder) readRecord() (Record, error) {
	offset := d.c.offset()
	tag, err := d.c.readU8()
	if err != nil {
		return nil, err
	}
	if !isValidRecordKind(tag) {
		return nil, &BadRecordTagError{Byte: tag, Offset: offset, Context: d.c.contextAround(offset)}
	}

	switch RecordKind(tag) {
	case RecordClassWithId:
		return d.decodeClassWithId()
	case RecordSystemClassWithMembers, RecordClassWithMembers,
		RecordSystemClassWithMembersAndTypes, RecordClassWithMembersAndTypes:
		return d.decodeClassRecord(RecordKind(tag))
	case RecordBinaryObjectString:
		return d.decodeBinaryObjectString()
	case RecordBinaryArray:
		return d.decodeBinaryArray()
	case RecordMemberPrimitiveTyped:
		return d.decodeMemberPrimitiveTyped()
	case RecordMemberReference:
		idRef, err := d.c.readI32()
		if err != nil {
			return nil, err
		}
		return &MemberReferenceRecord{IDRef: idRef}, nil
	case RecordObjectNull:
		return NullRecord, nil
	case RecordMessageEnd:
		return MessageEnd, nil
	case RecordBinaryLibrary:
		return d.decodeBinaryLibrary()
	case RecordObjectNullMultiple256:
		count, err := d.c.readU8()
		if err != nil {
			return nil, err
		}
		return &ObjectNullMultiple256Record{Count: count}, nil
	case RecordObjectNullMultiple:
		count, err := d.c.readI32()
		if err != nil {
			return nil, err
		}
		return &ObjectNullMultipleRecord{Count: count}, nil
	case RecordArraySinglePrimitive:
		return d.decodeArraySinglePrimitive()
	case RecordArraySingleObject:
		return d.decodeArraySingleObject()
	case RecordArraySingleString:
		return d.decodeArraySingleString()
	default:
		return nil, &BadRecordTagError{Byte: tag, Offset: offset, Context: d.c.contextAround(offset)}
	}
}

// readTypedValue decodes one member or array-element slot given its
// declared BinaryType and AdditionalTypeInfo — the "typed value path"
// shared by typed class records (kinds 4, 5) and every array kind.
func (d *decoder) readTypedValue(bt BinaryType, info AdditionalTypeInfo) (Value, error) {
	if bt == BinaryTypePrimitive {
		v, err := readPrimitiveByType(d.c, info.Primitive)
		if err != nil {
			return Value{}, err
		}
		return primitiveValue(v), nil
	}
	rec, err := d.readRecord()
	if err != nil {
		return Value{}, err
	}
	return valueFromRecord(rec), nil
}

// valueFromRecord folds a decoded record into a Value, collapsing the
// ObjectNull singleton into the null state so callers never need to
// type-switch on *ObjectNullRecord themselves.
func valueFromRecord(rec Record) Value {
	if _, ok := rec.(*ObjectNullRecord); ok {
		return nullValue()
	}
	return recordValue(rec)
}

func (d *decoder) decodeClassWithId() (Record, error) {
	id, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	metadataID, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	meta, ok := d.metadata[metadataID]
	if !ok {
		return nil, &UnknownMetadataError{MetadataID: metadataID}
	}

	rec := &ClassRecord{
		Info:           ClassInfo{ObjectID: id, Name: meta.Info.Name, MemberNames: meta.Info.MemberNames},
		MemberTypeInfo: meta.MemberTypeInfo,
		LibraryID:      meta.LibraryID,
		HasLibraryID:   meta.HasLibraryID,
		MetadataID:     metadataID,
		OriginalKind:   RecordClassWithId,
		MemberValues:   map[string]Value{},
	}
	if err := d.register(id, rec); err != nil {
		return nil, err
	}
	if err := d.readMemberValues(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *decoder) decodeClassRecord(kind RecordKind) (Record, error) {
	info, err := readClassInfo(d.c)
	if err != nil {
		return nil, err
	}

	var memberTypeInfo *MemberTypeInfo
	if kind == RecordSystemClassWithMembersAndTypes || kind == RecordClassWithMembersAndTypes {
		mti, err := readMemberTypeInfo(d.c, len(info.MemberNames))
		if err != nil {
			return nil, err
		}
		memberTypeInfo = &mti
	}

	var libraryID int32
	var hasLibraryID bool
	if kind == RecordClassWithMembers || kind == RecordClassWithMembersAndTypes {
		libraryID, err = d.c.readI32()
		if err != nil {
			return nil, err
		}
		hasLibraryID = true
	}

	d.metadata[info.ObjectID] = classMetadata{
		Info:           info,
		MemberTypeInfo: memberTypeInfo,
		LibraryID:      libraryID,
		HasLibraryID:   hasLibraryID,
	}

	rec := &ClassRecord{
		Info:           info,
		MemberTypeInfo: memberTypeInfo,
		LibraryID:      libraryID,
		HasLibraryID:   hasLibraryID,
		OriginalKind:   kind,
		MemberValues:   map[string]Value{},
	}
	if err := d.register(info.ObjectID, rec); err != nil {
		return nil, err
	}
	if err := d.readMemberValues(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// readMemberValues fills rec.MemberValues in declared order, using the
// typed value path when memberTypeInfo is present and one full recursive
// record decode per member otherwise.
func (d *decoder) readMemberValues(rec *ClassRecord) error {
	if rec.MemberTypeInfo != nil {
		for i, name := range rec.Info.MemberNames {
			v, err := d.readTypedValue(rec.MemberTypeInfo.BinaryTypes[i], rec.MemberTypeInfo.AdditionalInfos[i])
			if err != nil {
				return err
			}
			rec.MemberValues[name] = v
		}
		return nil
	}
	for _, name := range rec.Info.MemberNames {
		nested, err := d.readRecord()
		if err != nil {
			return err
		}
		rec.MemberValues[name] = valueFromRecord(nested)
	}
	return nil
}

func (d *decoder) decodeBinaryObjectString() (Record, error) {
	id, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	rec := &BinaryObjectStringRecord{ID: id}
	if err := d.register(id, rec); err != nil {
		return nil, err
	}
	value, err := d.c.readString()
	if err != nil {
		return nil, err
	}
	rec.Value = value
	return rec, nil
}

func (d *decoder) decodeBinaryLibrary() (Record, error) {
	id, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	name, err := d.c.readString()
	if err != nil {
		return nil, err
	}
	rec := &BinaryLibraryRecord{LibraryID: id, LibraryName: name}
	d.libraries[id] = rec
	return rec, nil
}

func (d *decoder) decodeMemberPrimitiveTyped() (Record, error) {
	ptByte, err := d.c.readU8()
	if err != nil {
		return nil, err
	}
	pt := PrimitiveType(ptByte)
	value, err := readPrimitiveByType(d.c, pt)
	if err != nil {
		return nil, err
	}
	return &MemberPrimitiveTypedRecord{PrimitiveType: pt, Value: value}, nil
}

func (d *decoder) decodeBinaryArray() (Record, error) {
	id, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	kindByte, err := d.c.readU8()
	if err != nil {
		return nil, err
	}
	kind := BinaryArrayKind(kindByte)

	rank, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	lengths := make([]int32, rank)
	for i := range lengths {
		lengths[i], err = d.c.readI32()
		if err != nil {
			return nil, err
		}
	}
	var lowerBounds []int32
	if kind.hasLowerBounds() {
		lowerBounds = make([]int32, rank)
		for i := range lowerBounds {
			lowerBounds[i], err = d.c.readI32()
			if err != nil {
				return nil, err
			}
		}
	}

	elementTypeByte, err := d.c.readU8()
	if err != nil {
		return nil, err
	}
	elementType := BinaryType(elementTypeByte)
	elementInfo, err := readAdditionalTypeInfo(d.c, elementType)
	if err != nil {
		return nil, err
	}

	rec := &BinaryArrayRecord{
		ID:                    id,
		Kind:                  kind,
		Rank:                  rank,
		Lengths:               lengths,
		LowerBounds:           lowerBounds,
		ElementType:           elementType,
		ElementAdditionalInfo: elementInfo,
	}
	if err := d.register(id, rec); err != nil {
		return nil, err
	}

	total := int32(1)
	for _, l := range lengths {
		total *= l
	}
	elements, tokens, err := d.readArrayElements(total, elementType, elementInfo)
	if err != nil {
		return nil, err
	}
	rec.Elements = elements
	rec.tokens = tokens
	return rec, nil
}

func (d *decoder) decodeArraySinglePrimitive() (Record, error) {
	id, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	length, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	ptByte, err := d.c.readU8()
	if err != nil {
		return nil, err
	}
	pt := PrimitiveType(ptByte)
	rec := &ArraySinglePrimitiveRecord{ID: id, PrimitiveType: pt}
	if err := d.register(id, rec); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("nrbf: array single primitive record %d has negative length %d", id, length)
	}
	elements := make([]any, 0, clampCapacityHint(length))
	for int32(len(elements)) < length {
		v, err := readPrimitiveByType(d.c, pt)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	rec.Elements = elements
	return rec, nil
}

func (d *decoder) decodeArraySingleObject() (Record, error) {
	id, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	length, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	rec := &ArraySingleObjectRecord{ID: id}
	if err := d.register(id, rec); err != nil {
		return nil, err
	}
	elements, tokens, err := d.readArrayElements(length, BinaryTypeObject, AdditionalTypeInfo{})
	if err != nil {
		return nil, err
	}
	rec.Elements = elements
	rec.tokens = tokens
	return rec, nil
}

func (d *decoder) decodeArraySingleString() (Record, error) {
	id, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	length, err := d.c.readI32()
	if err != nil {
		return nil, err
	}
	rec := &ArraySingleStringRecord{ID: id}
	if err := d.register(id, rec); err != nil {
		return nil, err
	}
	elements, tokens, err := d.readArrayElements(length, BinaryTypeString, AdditionalTypeInfo{})
	if err != nil {
		return nil, err
	}
	rec.Elements = elements
	rec.tokens = tokens
	return rec, nil
}

// readArrayElements fills total logical slots using the typed value
// path, expanding any null-run token it encounters along the way into
// the number of null slots it represents. The parallel token slice
// records the pre-expansion sequence so the encoder can replay it
// exactly (see arraytokens.go).
func (d *decoder) readArrayElements(total int32, elementType BinaryType, info AdditionalTypeInfo) ([]Value, []arrayToken, error) {
	elements := make([]Value, 0, clampCapacityHint(total))
	var tokens []arrayToken
	for int32(len(elements)) < total {
		v, err := d.readTypedValue(elementType, info)
		if err != nil {
			return nil, nil, err
		}
		switch rec := v.Record.(type) {
		case *ObjectNullMultiple256Record:
			elements = expandToken(elements, arrayToken{Kind: tokenNullRun8, Count: int32(rec.Count)})
			tokens = append(tokens, arrayToken{Kind: tokenNullRun8, Count: int32(rec.Count)})
		case *ObjectNullMultipleRecord:
			elements = expandToken(elements, arrayToken{Kind: tokenNullRun32, Count: rec.Count})
			tokens = append(tokens, arrayToken{Kind: tokenNullRun32, Count: rec.Count})
		default:
			if v.IsNull {
				elements = append(elements, nullValue())
				tokens = append(tokens, arrayToken{Kind: tokenNull})
			} else {
				elements = append(elements, v)
				tokens = append(tokens, arrayToken{Kind: tokenValue, Value: v})
			}
		}
	}
	return elements, tokens, nil
}

// clampCapacityHint bounds a wire-supplied length used only as a slice
// capacity hint, so a corrupt or hostile total can't force a large
// up-front allocation before the corresponding read fails naturally.
func clampCapacityHint(n int32) int32 {
	const maxHint = 4096
	if n < 0 || n > maxHint {
		return maxHint
	}
	return n
}
