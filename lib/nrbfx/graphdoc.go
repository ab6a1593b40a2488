// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"fmt"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// Record shapes a recordDoc can take. Only the six record kinds that
// carry an object ID and appear as owned graph nodes get a shape —
// MemberPrimitiveTyped, MemberReference, ObjectNull(Multiple...),
// BinaryLibrary, Header, and MessageEnd are all represented inline on
// the referencing wireValue instead (see wirevalue.go).
const (
	shapeClass                = "class"
	shapeBinaryArray          = "binaryArray"
	shapeArraySinglePrimitive = "arraySinglePrimitive"
	shapeArraySingleObject    = "arraySingleObject"
	shapeArraySingleString    = "arraySingleString"
	shapeBinaryObjectString   = "binaryObjectString"
)

// typeInfoDoc is the projection of nrbf.AdditionalTypeInfo.
type typeInfoDoc struct {
	Kind      string `json:"kind" cbor:"kind"`
	Primitive string `json:"primitive,omitempty" cbor:"primitive,omitempty"`
	ClassName string `json:"className,omitempty" cbor:"className,omitempty"`
	LibraryID int32  `json:"libraryId,omitempty" cbor:"libraryId,omitempty"`
}

// memberTypeDoc is one entry of a typed class's per-member type list,
// parallel to recordDoc.MemberNames by index.
type memberTypeDoc struct {
	BinaryType string       `json:"binaryType" cbor:"binaryType"`
	Info       typeInfoDoc  `json:"info" cbor:"info"`
}

// recordDoc is the projection of one owned graph node, keyed by object
// ID in graphDoc.Records. Only the fields relevant to Shape are
// populated; the rest are left at their zero value and omitted.
type recordDoc struct {
	Shape string `json:"shape" cbor:"shape"`

	// shapeClass
	ClassKind    string               `json:"classKind,omitempty" cbor:"classKind,omitempty"`
	Name         string               `json:"name,omitempty" cbor:"name,omitempty"`
	MemberNames  []string             `json:"memberNames,omitempty" cbor:"memberNames,omitempty"`
	MemberTypes  []memberTypeDoc      `json:"memberTypes,omitempty" cbor:"memberTypes,omitempty"`
	LibraryID    int32                `json:"libraryId,omitempty" cbor:"libraryId,omitempty"`
	HasLibraryID bool                 `json:"hasLibraryId,omitempty" cbor:"hasLibraryId,omitempty"`
	MetadataID   int32                `json:"metadataId,omitempty" cbor:"metadataId,omitempty"`
	Members      map[string]wireValue `json:"members,omitempty" cbor:"members,omitempty"`

	// shapeBinaryArray / shapeArraySingleObject / shapeArraySingleString
	ArrayKind   string       `json:"arrayKind,omitempty" cbor:"arrayKind,omitempty"`
	Rank        int32        `json:"rank,omitempty" cbor:"rank,omitempty"`
	Lengths     []int32      `json:"lengths,omitempty" cbor:"lengths,omitempty"`
	LowerBounds []int32      `json:"lowerBounds,omitempty" cbor:"lowerBounds,omitempty"`
	ElementType string       `json:"elementType,omitempty" cbor:"elementType,omitempty"`
	ElementInfo *typeInfoDoc `json:"elementInfo,omitempty" cbor:"elementInfo,omitempty"`
	Elements    []wireValue  `json:"elements,omitempty" cbor:"elements,omitempty"`

	// shapeArraySinglePrimitive
	PrimitiveType string `json:"primitiveType,omitempty" cbor:"primitiveType,omitempty"`
	Primitives    []any  `json:"primitives,omitempty" cbor:"primitives,omitempty"`

	// shapeBinaryObjectString
	String string `json:"string,omitempty" cbor:"string,omitempty"`
}

// graphDoc is the flat, ID-keyed projection of a decoded record graph.
// Every value slot anywhere in Records (a class member or an array
// element) is a wireValue: null, a bare schema-typed scalar, an inline
// MemberPrimitiveTyped wrapper, a null run, or a {"$ref": id} pointing
// back into this same table. There is no nesting — a referenced
// record's content lives once, under its own ID, regardless of how
// many slots point at it.
type graphDoc struct {
	Root      int32                `json:"root" cbor:"root"`
	Libraries map[int32]string     `json:"libraries,omitempty" cbor:"libraries,omitempty"`
	Records   map[int32]*recordDoc `json:"records" cbor:"records"`
}

// buildGraphDoc walks root's reachable graph and projects it into a
// graphDoc. Ownership in the projection mirrors ownership in the
// decoded graph: a Value whose Record is the real object (as opposed
// to a MemberReferenceRecord) is the slot that gets to "own" that
// object's one entry in Records; every other occurrence is a $ref.
func buildGraphDoc(root nrbf.Record, libraries nrbf.LibraryTable) (*graphDoc, error) {
	rootID, ok := root.ObjectID()
	if !ok {
		return nil, fmt.Errorf("nrbfx: root record of kind %s has no object id", root.RecordKind())
	}
	doc := &graphDoc{Root: rootID, Records: map[int32]*recordDoc{}}
	if len(libraries) > 0 {
		doc.Libraries = map[int32]string{}
		for id, lib := range libraries {
			doc.Libraries[id] = lib.LibraryName
		}
	}
	b := &graphBuilder{doc: doc}
	if err := b.visit(root); err != nil {
		return nil, err
	}
	return doc, nil
}

type graphBuilder struct {
	doc *graphDoc
}

// visit ensures rec's owning entry exists in doc.Records, building it
// if this is the first time rec's object ID has been reached. The slot
// is reserved with an empty placeholder before recursing into members,
// the same register-before-read order the decoder uses (decoder.go) so
// a self-cycle sees its own ID as already claimed.
func (b *graphBuilder) visit(rec nrbf.Record) error {
	id, ok := rec.ObjectID()
	if !ok {
		return fmt.Errorf("nrbfx: cannot project a record of kind %s without an object id", rec.RecordKind())
	}
	if _, exists := b.doc.Records[id]; exists {
		return nil
	}
	b.doc.Records[id] = &recordDoc{}
	rd, err := b.buildRecordDoc(rec)
	if err != nil {
		return err
	}
	b.doc.Records[id] = rd
	return nil
}

func (b *graphBuilder) buildRecordDoc(rec nrbf.Record) (*recordDoc, error) {
	switch r := rec.(type) {
	case *nrbf.ClassRecord:
		return b.buildClassDoc(r)
	case *nrbf.BinaryArrayRecord:
		return b.buildBinaryArrayDoc(r)
	case *nrbf.ArraySinglePrimitiveRecord:
		primitives := make([]any, len(r.Elements))
		copy(primitives, r.Elements)
		return &recordDoc{Shape: shapeArraySinglePrimitive, PrimitiveType: r.PrimitiveType.String(), Primitives: primitives}, nil
	case *nrbf.ArraySingleObjectRecord:
		elements, err := b.buildElementsDoc(r.Elements, nil)
		if err != nil {
			return nil, err
		}
		return &recordDoc{Shape: shapeArraySingleObject, Elements: elements}, nil
	case *nrbf.ArraySingleStringRecord:
		elements, err := b.buildElementsDoc(r.Elements, nil)
		if err != nil {
			return nil, err
		}
		return &recordDoc{Shape: shapeArraySingleString, Elements: elements}, nil
	case *nrbf.BinaryObjectStringRecord:
		return &recordDoc{Shape: shapeBinaryObjectString, String: r.Value}, nil
	default:
		return nil, fmt.Errorf("nrbfx: cannot project record kind %s", rec.RecordKind())
	}
}

func (b *graphBuilder) buildClassDoc(r *nrbf.ClassRecord) (*recordDoc, error) {
	rd := &recordDoc{
		Shape:        shapeClass,
		ClassKind:    r.OriginalKind.String(),
		Name:         r.Info.Name,
		MemberNames:  r.Info.MemberNames,
		LibraryID:    r.LibraryID,
		HasLibraryID: r.HasLibraryID,
		MetadataID:   r.MetadataID,
		Members:      map[string]wireValue{},
	}
	if r.MemberTypeInfo != nil {
		rd.MemberTypes = make([]memberTypeDoc, len(r.MemberTypeInfo.BinaryTypes))
		for i, bt := range r.MemberTypeInfo.BinaryTypes {
			rd.MemberTypes[i] = memberTypeDoc{BinaryType: bt.String(), Info: typeInfoDocFrom(r.MemberTypeInfo.AdditionalInfos[i])}
		}
	}
	for i, name := range r.Info.MemberNames {
		wv, err := b.valueToWire(r.MemberValues[name], b.memberPrimitiveType(r, i))
		if err != nil {
			return nil, fmt.Errorf("member %q of class %q: %w", name, r.Info.Name, err)
		}
		rd.Members[name] = wv
	}
	return rd, nil
}

// memberPrimitiveType returns the declared PrimitiveType for member i
// if the class is typed and that member's slot is Primitive, or nil if
// the member's type must come from the value itself (untyped class) or
// cannot be a bare scalar (a typed non-Primitive slot).
func (b *graphBuilder) memberPrimitiveType(r *nrbf.ClassRecord, i int) *nrbf.PrimitiveType {
	if r.MemberTypeInfo == nil || r.MemberTypeInfo.BinaryTypes[i] != nrbf.BinaryTypePrimitive {
		return nil
	}
	p := r.MemberTypeInfo.AdditionalInfos[i].Primitive
	return &p
}

func (b *graphBuilder) buildBinaryArrayDoc(r *nrbf.BinaryArrayRecord) (*recordDoc, error) {
	var pt *nrbf.PrimitiveType
	if r.ElementType == nrbf.BinaryTypePrimitive {
		p := r.ElementAdditionalInfo.Primitive
		pt = &p
	}
	elements, err := b.buildElementsDoc(r.Elements, pt)
	if err != nil {
		return nil, err
	}
	info := typeInfoDocFrom(r.ElementAdditionalInfo)
	return &recordDoc{
		Shape:       shapeBinaryArray,
		ArrayKind:   r.Kind.String(),
		Rank:        r.Rank,
		Lengths:     r.Lengths,
		LowerBounds: r.LowerBounds,
		ElementType: r.ElementType.String(),
		ElementInfo: &info,
		Elements:    elements,
	}, nil
}

// buildElementsDoc projects an array's logical Elements slice,
// collapsing runs of two or more consecutive nulls into a single
// $nullRun token. This is a fresh projection from the public Elements
// slice, not a replay of the original wire token boundaries (those
// live in nrbf's private arrayToken sequence) — it preserves null-run
// semantics, not byte-for-byte run width.
func (b *graphBuilder) buildElementsDoc(elements []nrbf.Value, pt *nrbf.PrimitiveType) ([]wireValue, error) {
	out := make([]wireValue, 0, len(elements))
	i := 0
	for i < len(elements) {
		if elements[i].IsNull {
			run := 1
			for i+run < len(elements) && elements[i+run].IsNull {
				run++
			}
			switch {
			case run == 1:
				out = append(out, wireValue{kind: wvNull})
			case run <= 255:
				out = append(out, wireValue{kind: wvNullRun8, runCount: int32(run)})
			default:
				out = append(out, wireValue{kind: wvNullRun32, runCount: int32(run)})
			}
			i += run
			continue
		}
		wv, err := b.valueToWire(elements[i], pt)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, wv)
		i++
	}
	return out, nil
}

// valueToWire projects one member or array-element value. pt is the
// slot's declared PrimitiveType when known (nil for untyped/non-
// Primitive slots, where a bare primitive is impossible — see
// decoder.go's typed-value-path note in SPEC_FULL.md §4.3).
func (b *graphBuilder) valueToWire(v nrbf.Value, pt *nrbf.PrimitiveType) (wireValue, error) {
	if v.IsNull {
		return wireValue{kind: wvNull}, nil
	}
	if v.Record != nil {
		switch rec := v.Record.(type) {
		case *nrbf.MemberReferenceRecord:
			return wireValue{kind: wvRef, ref: rec.IDRef}, nil
		case *nrbf.MemberPrimitiveTypedRecord:
			return wireValue{kind: wvInlineTyped, typedKind: rec.PrimitiveType.String(), scalar: rec.Value}, nil
		default:
			if err := b.visit(rec); err != nil {
				return wireValue{}, err
			}
			id, _ := rec.ObjectID()
			return wireValue{kind: wvRef, ref: id}, nil
		}
	}
	if pt == nil {
		return wireValue{}, fmt.Errorf("nrbfx: bare primitive value with no declared primitive type")
	}
	return wireValue{kind: wvScalar, scalar: v.Primitive}, nil
}

func typeInfoDocFrom(info nrbf.AdditionalTypeInfo) typeInfoDoc {
	switch info.Kind {
	case nrbf.AdditionalInfoPrimitive:
		return typeInfoDoc{Kind: "primitive", Primitive: info.Primitive.String()}
	case nrbf.AdditionalInfoSystemClass:
		return typeInfoDoc{Kind: "systemClass", ClassName: info.ClassName}
	case nrbf.AdditionalInfoClass:
		return typeInfoDoc{Kind: "class", ClassName: info.ClassName, LibraryID: info.LibraryID}
	default:
		return typeInfoDoc{Kind: "none"}
	}
}

func typeInfoFromDoc(d typeInfoDoc) (nrbf.AdditionalTypeInfo, error) {
	switch d.Kind {
	case "", "none":
		return nrbf.AdditionalTypeInfo{Kind: nrbf.AdditionalInfoNone}, nil
	case "primitive":
		pt, ok := primitiveTypeByName[d.Primitive]
		if !ok {
			return nrbf.AdditionalTypeInfo{}, fmt.Errorf("nrbfx: unknown primitive type %q", d.Primitive)
		}
		return nrbf.AdditionalTypeInfo{Kind: nrbf.AdditionalInfoPrimitive, Primitive: pt}, nil
	case "systemClass":
		return nrbf.AdditionalTypeInfo{Kind: nrbf.AdditionalInfoSystemClass, ClassName: d.ClassName}, nil
	case "class":
		return nrbf.AdditionalTypeInfo{Kind: nrbf.AdditionalInfoClass, ClassName: d.ClassName, LibraryID: d.LibraryID}, nil
	default:
		return nrbf.AdditionalTypeInfo{}, fmt.Errorf("nrbfx: unknown type info kind %q", d.Kind)
	}
}

// --- reverse lookups from RecordKind/BinaryType/BinaryArrayKind/PrimitiveType.String() ---

var classKindByName = map[string]nrbf.RecordKind{
	nrbf.RecordClassWithId.String():                    nrbf.RecordClassWithId,
	nrbf.RecordSystemClassWithMembers.String():         nrbf.RecordSystemClassWithMembers,
	nrbf.RecordClassWithMembers.String():                nrbf.RecordClassWithMembers,
	nrbf.RecordSystemClassWithMembersAndTypes.String(): nrbf.RecordSystemClassWithMembersAndTypes,
	nrbf.RecordClassWithMembersAndTypes.String():       nrbf.RecordClassWithMembersAndTypes,
}

var binaryTypeByName = map[string]nrbf.BinaryType{
	nrbf.BinaryTypePrimitive.String():      nrbf.BinaryTypePrimitive,
	nrbf.BinaryTypeString.String():         nrbf.BinaryTypeString,
	nrbf.BinaryTypeObject.String():         nrbf.BinaryTypeObject,
	nrbf.BinaryTypeSystemClass.String():    nrbf.BinaryTypeSystemClass,
	nrbf.BinaryTypeClass.String():          nrbf.BinaryTypeClass,
	nrbf.BinaryTypeObjectArray.String():    nrbf.BinaryTypeObjectArray,
	nrbf.BinaryTypeStringArray.String():    nrbf.BinaryTypeStringArray,
	nrbf.BinaryTypePrimitiveArray.String(): nrbf.BinaryTypePrimitiveArray,
}

var arrayKindByName = map[string]nrbf.BinaryArrayKind{
	nrbf.ArrayKindSingle.String():            nrbf.ArrayKindSingle,
	nrbf.ArrayKindJagged.String():            nrbf.ArrayKindJagged,
	nrbf.ArrayKindRectangular.String():       nrbf.ArrayKindRectangular,
	nrbf.ArrayKindSingleOffset.String():      nrbf.ArrayKindSingleOffset,
	nrbf.ArrayKindJaggedOffset.String():      nrbf.ArrayKindJaggedOffset,
	nrbf.ArrayKindRectangularOffset.String(): nrbf.ArrayKindRectangularOffset,
}

var primitiveTypeByName = buildPrimitiveTypeNames()

func buildPrimitiveTypeNames() map[string]nrbf.PrimitiveType {
	all := []nrbf.PrimitiveType{
		nrbf.PrimitiveBoolean, nrbf.PrimitiveByte, nrbf.PrimitiveChar, nrbf.PrimitiveDecimal,
		nrbf.PrimitiveDouble, nrbf.PrimitiveInt16, nrbf.PrimitiveInt32, nrbf.PrimitiveInt64,
		nrbf.PrimitiveSByte, nrbf.PrimitiveSingle, nrbf.PrimitiveTimeSpan, nrbf.PrimitiveDateTime,
		nrbf.PrimitiveUInt16, nrbf.PrimitiveUInt32, nrbf.PrimitiveUInt64, nrbf.PrimitiveNull, nrbf.PrimitiveString,
	}
	m := make(map[string]nrbf.PrimitiveType, len(all))
	for _, pt := range all {
		m[pt.String()] = pt
	}
	return m
}

// toGraph reconstructs a record graph from a graphDoc. Every object ID
// is assigned exactly one owning occurrence — the first one reached by
// a depth-first walk starting at Root — and every other occurrence
// becomes a MemberReferenceRecord. This mirrors how ownership is
// determined in a decoded stream (first appearance on the wire owns
// the bytes, every later appearance is a reference) well enough that
// the result can be handed to Encode, even though the JSON projection
// itself carries no wire order to replay.
func (doc *graphDoc) toGraph() (nrbf.Record, nrbf.RecordTable, nrbf.LibraryTable, error) {
	imp := &importer{doc: doc, owned: map[int32]bool{}, table: nrbf.RecordTable{}}
	root, err := imp.resolveRef(doc.Root)
	if err != nil {
		return nil, nil, nil, err
	}
	libraries := nrbf.LibraryTable{}
	for id, name := range doc.Libraries {
		libraries[id] = &nrbf.BinaryLibraryRecord{LibraryID: id, LibraryName: name}
	}
	return root, imp.table, libraries, nil
}

type importer struct {
	doc   *graphDoc
	owned map[int32]bool
	table nrbf.RecordTable
}

func (imp *importer) resolveRef(id int32) (nrbf.Record, error) {
	if imp.owned[id] {
		return &nrbf.MemberReferenceRecord{IDRef: id}, nil
	}
	rd, ok := imp.doc.Records[id]
	if !ok {
		return nil, fmt.Errorf("nrbfx: reference to unknown object id %d", id)
	}
	imp.owned[id] = true
	rec, err := imp.buildRecord(id, rd)
	if err != nil {
		return nil, err
	}
	imp.table[id] = rec
	return rec, nil
}

func (imp *importer) buildRecord(id int32, rd *recordDoc) (nrbf.Record, error) {
	switch rd.Shape {
	case shapeClass:
		return imp.buildClass(id, rd)
	case shapeBinaryArray:
		return imp.buildBinaryArray(id, rd)
	case shapeArraySinglePrimitive:
		return imp.buildArraySinglePrimitive(id, rd)
	case shapeArraySingleObject:
		elements, err := imp.buildElements(rd.Elements, nil)
		if err != nil {
			return nil, err
		}
		return nrbf.NewArraySingleObjectRecord(id, elements), nil
	case shapeArraySingleString:
		elements, err := imp.buildElements(rd.Elements, nil)
		if err != nil {
			return nil, err
		}
		return nrbf.NewArraySingleStringRecord(id, elements), nil
	case shapeBinaryObjectString:
		return &nrbf.BinaryObjectStringRecord{ID: id, Value: rd.String}, nil
	default:
		return nil, fmt.Errorf("nrbfx: unknown record shape %q for object id %d", rd.Shape, id)
	}
}

func (imp *importer) buildClass(id int32, rd *recordDoc) (*nrbf.ClassRecord, error) {
	kind, ok := classKindByName[rd.ClassKind]
	if !ok {
		return nil, fmt.Errorf("nrbfx: unknown class kind %q", rd.ClassKind)
	}
	rec := &nrbf.ClassRecord{
		Info:         nrbf.ClassInfo{ObjectID: id, Name: rd.Name, MemberNames: rd.MemberNames},
		LibraryID:    rd.LibraryID,
		HasLibraryID: rd.HasLibraryID,
		MetadataID:   rd.MetadataID,
		OriginalKind: kind,
		MemberValues: map[string]nrbf.Value{},
	}
	if len(rd.MemberTypes) > 0 {
		mti := nrbf.MemberTypeInfo{
			BinaryTypes:     make([]nrbf.BinaryType, len(rd.MemberTypes)),
			AdditionalInfos: make([]nrbf.AdditionalTypeInfo, len(rd.MemberTypes)),
		}
		for i, mt := range rd.MemberTypes {
			bt, ok := binaryTypeByName[mt.BinaryType]
			if !ok {
				return nil, fmt.Errorf("nrbfx: unknown binary type %q", mt.BinaryType)
			}
			info, err := typeInfoFromDoc(mt.Info)
			if err != nil {
				return nil, err
			}
			mti.BinaryTypes[i] = bt
			mti.AdditionalInfos[i] = info
		}
		rec.MemberTypeInfo = &mti
	}
	for i, name := range rd.MemberNames {
		wv, ok := rd.Members[name]
		if !ok {
			return nil, fmt.Errorf("nrbfx: class %q missing member %q", rd.Name, name)
		}
		v, err := imp.wireToValue(wv, imp.classMemberPrimitiveType(rec, i))
		if err != nil {
			return nil, fmt.Errorf("nrbfx: member %q of class %q: %w", name, rd.Name, err)
		}
		rec.MemberValues[name] = v
	}
	return rec, nil
}

func (imp *importer) classMemberPrimitiveType(rec *nrbf.ClassRecord, i int) *nrbf.PrimitiveType {
	if rec.MemberTypeInfo == nil || rec.MemberTypeInfo.BinaryTypes[i] != nrbf.BinaryTypePrimitive {
		return nil
	}
	p := rec.MemberTypeInfo.AdditionalInfos[i].Primitive
	return &p
}

func (imp *importer) buildBinaryArray(id int32, rd *recordDoc) (*nrbf.BinaryArrayRecord, error) {
	kind, ok := arrayKindByName[rd.ArrayKind]
	if !ok {
		return nil, fmt.Errorf("nrbfx: unknown array kind %q", rd.ArrayKind)
	}
	elementType, ok := binaryTypeByName[rd.ElementType]
	if !ok {
		return nil, fmt.Errorf("nrbfx: unknown element type %q", rd.ElementType)
	}
	var elementInfo nrbf.AdditionalTypeInfo
	if rd.ElementInfo != nil {
		info, err := typeInfoFromDoc(*rd.ElementInfo)
		if err != nil {
			return nil, err
		}
		elementInfo = info
	}
	var pt *nrbf.PrimitiveType
	if elementType == nrbf.BinaryTypePrimitive {
		p := elementInfo.Primitive
		pt = &p
	}
	elements, err := imp.buildElements(rd.Elements, pt)
	if err != nil {
		return nil, err
	}
	return nrbf.NewBinaryArrayRecord(id, kind, rd.Lengths, rd.LowerBounds, elementType, elementInfo, elements), nil
}

func (imp *importer) buildArraySinglePrimitive(id int32, rd *recordDoc) (*nrbf.ArraySinglePrimitiveRecord, error) {
	pt, ok := primitiveTypeByName[rd.PrimitiveType]
	if !ok {
		return nil, fmt.Errorf("nrbfx: unknown primitive type %q", rd.PrimitiveType)
	}
	elements := make([]any, len(rd.Primitives))
	for i, raw := range rd.Primitives {
		v, err := scalarToPrimitive(pt, raw)
		if err != nil {
			return nil, fmt.Errorf("nrbfx: element %d: %w", i, err)
		}
		elements[i] = v
	}
	return &nrbf.ArraySinglePrimitiveRecord{ID: id, PrimitiveType: pt, Elements: elements}, nil
}

func (imp *importer) buildElements(tokens []wireValue, pt *nrbf.PrimitiveType) ([]nrbf.Value, error) {
	out := make([]nrbf.Value, 0, len(tokens))
	for i, tok := range tokens {
		switch tok.kind {
		case wvNull:
			out = append(out, nrbf.Value{IsNull: true})
		case wvNullRun8, wvNullRun32:
			for n := int32(0); n < tok.runCount; n++ {
				out = append(out, nrbf.Value{IsNull: true})
			}
		default:
			v, err := imp.wireToValue(tok, pt)
			if err != nil {
				return nil, fmt.Errorf("nrbfx: element %d: %w", i, err)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func (imp *importer) wireToValue(wv wireValue, pt *nrbf.PrimitiveType) (nrbf.Value, error) {
	switch wv.kind {
	case wvNull:
		return nrbf.Value{IsNull: true}, nil
	case wvRef:
		rec, err := imp.resolveRef(wv.ref)
		if err != nil {
			return nrbf.Value{}, err
		}
		return nrbf.Value{Record: rec}, nil
	case wvInlineTyped:
		tpt, ok := primitiveTypeByName[wv.typedKind]
		if !ok {
			return nrbf.Value{}, fmt.Errorf("nrbfx: unknown primitive type %q", wv.typedKind)
		}
		v, err := scalarToPrimitive(tpt, wv.scalar)
		if err != nil {
			return nrbf.Value{}, err
		}
		return nrbf.Value{Record: &nrbf.MemberPrimitiveTypedRecord{PrimitiveType: tpt, Value: v}}, nil
	case wvScalar:
		if pt == nil {
			return nrbf.Value{}, fmt.Errorf("nrbfx: scalar value has no declared primitive type")
		}
		v, err := scalarToPrimitive(*pt, wv.scalar)
		if err != nil {
			return nrbf.Value{}, err
		}
		return nrbf.Value{Primitive: v}, nil
	default:
		return nrbf.Value{}, fmt.Errorf("nrbfx: unknown wire value kind")
	}
}
