// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"testing"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// buildSampleGraph returns a small graph exercising a shared reference
// (id 2, owned by Root.Name, referenced again by Child.Value), a
// self-cycle (Root.Self -> Root), and an inline typed primitive
// (Root.Tag). idOffset shifts every object ID by a constant, used to
// check that ContentHash ignores the original ID assignment.
func buildSampleGraph(idOffset int32) (*nrbf.ClassRecord, nrbf.LibraryTable) {
	rootID, sharedID, childID := 1+idOffset, 2+idOffset, 3+idOffset

	shared := &nrbf.BinaryObjectStringRecord{ID: sharedID, Value: "hello"}

	child := &nrbf.ClassRecord{
		Info:         nrbf.ClassInfo{ObjectID: childID, Name: "Child", MemberNames: []string{"Value"}},
		OriginalKind: nrbf.RecordSystemClassWithMembers,
		MemberValues: map[string]nrbf.Value{
			"Value": {Record: &nrbf.MemberReferenceRecord{IDRef: sharedID}},
		},
	}

	root := &nrbf.ClassRecord{
		Info:         nrbf.ClassInfo{ObjectID: rootID, Name: "Root", MemberNames: []string{"Name", "Tag", "Self", "Child"}},
		OriginalKind: nrbf.RecordSystemClassWithMembers,
		MemberValues: map[string]nrbf.Value{
			"Name":  {Record: shared},
			"Tag":   {Record: &nrbf.MemberPrimitiveTypedRecord{PrimitiveType: nrbf.PrimitiveInt32, Value: int32(42)}},
			"Self":  {Record: &nrbf.MemberReferenceRecord{IDRef: rootID}},
			"Child": {Record: child},
		},
	}

	return root, nrbf.LibraryTable{}
}

func TestExportImportJSONRoundTrip(t *testing.T) {
	root, libraries := buildSampleGraph(0)

	data, err := ExportJSON(root, nil, libraries)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	gotRoot, table, _, err := ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	rootClass, ok := gotRoot.(*nrbf.ClassRecord)
	if !ok {
		t.Fatalf("root is %T, want *nrbf.ClassRecord", gotRoot)
	}

	nameVal, ok := rootClass.GetValue("Name")
	if !ok {
		t.Fatal("Root missing Name member")
	}
	nameStr, ok := nameVal.Record.(*nrbf.BinaryObjectStringRecord)
	if !ok {
		t.Fatalf("Name is %T, want *nrbf.BinaryObjectStringRecord", nameVal.Record)
	}
	if nameStr.Value != "hello" {
		t.Fatalf("Name.Value = %q, want %q", nameStr.Value, "hello")
	}

	tagVal, _ := rootClass.GetValue("Tag")
	tagRec, ok := tagVal.Record.(*nrbf.MemberPrimitiveTypedRecord)
	if !ok {
		t.Fatalf("Tag is %T, want *nrbf.MemberPrimitiveTypedRecord", tagVal.Record)
	}
	if tagRec.PrimitiveType != nrbf.PrimitiveInt32 || tagRec.Value.(int32) != 42 {
		t.Fatalf("Tag = %+v, want Int32(42)", tagRec)
	}

	selfVal, _ := rootClass.GetValue("Self")
	selfRef, ok := selfVal.Record.(*nrbf.MemberReferenceRecord)
	if !ok {
		t.Fatalf("Self is %T, want *nrbf.MemberReferenceRecord", selfVal.Record)
	}
	rootID, _ := rootClass.ObjectID()
	if selfRef.IDRef != rootID {
		t.Fatalf("Self.IDRef = %d, want %d", selfRef.IDRef, rootID)
	}

	childVal, _ := rootClass.GetValue("Child")
	childClass, ok := childVal.Record.(*nrbf.ClassRecord)
	if !ok {
		t.Fatalf("Child is %T, want *nrbf.ClassRecord", childVal.Record)
	}
	childValueVal, _ := childClass.GetValue("Value")
	childRef, ok := childValueVal.Record.(*nrbf.MemberReferenceRecord)
	if !ok {
		t.Fatalf("Child.Value is %T, want *nrbf.MemberReferenceRecord (a reference back to the owned string)", childValueVal.Record)
	}
	sharedID, _ := nameStr.ObjectID()
	if childRef.IDRef != sharedID {
		t.Fatalf("Child.Value.IDRef = %d, want %d", childRef.IDRef, sharedID)
	}

	if len(table) != 3 {
		t.Fatalf("imported table has %d entries, want 3 (root, shared string, child)", len(table))
	}

	// The re-encoded stream must be producible without silently dropping
	// the shared string's second occurrence.
	if _, err := nrbf.Encode(gotRoot, nrbf.LibraryTable{}, nrbf.EncodeOptions{}); err != nil {
		t.Fatalf("Encode(imported graph): %v", err)
	}
}

func TestExportJSONNullRunCollapsing(t *testing.T) {
	elements := []nrbf.Value{
		{IsNull: true}, {IsNull: true}, {IsNull: true},
		{Record: &nrbf.BinaryObjectStringRecord{ID: 2, Value: "x"}},
		{IsNull: true},
	}
	root := nrbf.NewArraySingleObjectRecord(1, elements)

	data, err := ExportJSON(root, nil, nrbf.LibraryTable{})
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	gotRoot, _, _, err := ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	arr, ok := gotRoot.(*nrbf.ArraySingleObjectRecord)
	if !ok {
		t.Fatalf("root is %T, want *nrbf.ArraySingleObjectRecord", gotRoot)
	}
	if len(arr.Elements) != 5 {
		t.Fatalf("got %d elements, want 5", len(arr.Elements))
	}
	for i, want := range []bool{true, true, true, false, true} {
		if arr.Elements[i].IsNull != want {
			t.Fatalf("element %d IsNull = %v, want %v", i, arr.Elements[i].IsNull, want)
		}
	}
	if arr.Elements[3].Record.(*nrbf.BinaryObjectStringRecord).Value != "x" {
		t.Fatalf("element 3 = %+v, want string \"x\"", arr.Elements[3])
	}
}
