// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func newFixtureRoot() (*nrbf.ClassRecord, nrbf.RecordTable) {
	name := &nrbf.BinaryObjectStringRecord{ID: 2, Value: "hi"}
	root := &nrbf.ClassRecord{
		Info:         nrbf.ClassInfo{ObjectID: 1, Name: "Root", MemberNames: []string{"Name", "Count"}},
		OriginalKind: nrbf.RecordSystemClassWithMembersAndTypes,
		MemberValues: map[string]nrbf.Value{
			"Name":  {Record: name},
			"Count": {Primitive: int32(5)},
		},
	}
	return root, nrbf.RecordTable{1: root, 2: name}
}

func TestSetScalarMutatesSharedStringRecordInPlace(t *testing.T) {
	root, table := newFixtureRoot()

	val, err := nrbf.PathGet(root, table, "Name")
	if err != nil {
		t.Fatalf("PathGet: %v", err)
	}
	if err := setScalar(root, table, "Name", val, "bye"); err != nil {
		t.Fatalf("setScalar: %v", err)
	}

	rec := table[2].(*nrbf.BinaryObjectStringRecord)
	if rec.Value != "bye" {
		t.Fatalf("shared string record not mutated in place, got %q", rec.Value)
	}

	again, err := nrbf.PathGet(root, table, "Name")
	if err != nil {
		t.Fatalf("PathGet after set: %v", err)
	}
	if got := summarizeValue(again); got != `"bye"` {
		t.Fatalf("summarizeValue after set = %q, want %q", got, `"bye"`)
	}
}

func TestSetScalarOnInlinePrimitiveGoesThroughPathSet(t *testing.T) {
	root, table := newFixtureRoot()

	val, err := nrbf.PathGet(root, table, "Count")
	if err != nil {
		t.Fatalf("PathGet: %v", err)
	}
	if err := setScalar(root, table, "Count", val, "42"); err != nil {
		t.Fatalf("setScalar: %v", err)
	}

	got, ok := root.GetValue("Count")
	if !ok {
		t.Fatal("Count member disappeared")
	}
	if got.Primitive != int32(42) {
		t.Fatalf("Count = %v (%T), want int32(42)", got.Primitive, got.Primitive)
	}
}

func TestSetScalarRejectsNullWithoutKnownType(t *testing.T) {
	root, table := newFixtureRoot()
	if err := setScalar(root, table, "Count", nrbf.Value{IsNull: true}, "1"); err == nil {
		t.Fatal("expected an error setting a null value with no type to infer from")
	}
}

func TestParsePrimitiveType(t *testing.T) {
	cases := []struct {
		pt      nrbf.PrimitiveType
		literal string
		want    any
	}{
		{nrbf.PrimitiveBoolean, "true", true},
		{nrbf.PrimitiveByte, "200", byte(200)},
		{nrbf.PrimitiveSByte, "-5", int8(-5)},
		{nrbf.PrimitiveInt16, "-30000", int16(-30000)},
		{nrbf.PrimitiveUInt16, "60000", uint16(60000)},
		{nrbf.PrimitiveInt32, "-100000", int32(-100000)},
		{nrbf.PrimitiveUInt32, "100000", uint32(100000)},
		{nrbf.PrimitiveInt64, "-9000000000", int64(-9000000000)},
		{nrbf.PrimitiveUInt64, "9000000000", uint64(9000000000)},
		{nrbf.PrimitiveSingle, "1.5", float32(1.5)},
		{nrbf.PrimitiveDouble, "2.25", float64(2.25)},
		{nrbf.PrimitiveString, "hello", "hello"},
	}
	for _, c := range cases {
		got, err := parsePrimitiveType(c.pt, c.literal)
		if err != nil {
			t.Errorf("%s %q: unexpected error: %v", c.pt, c.literal, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s %q = %v (%T), want %v (%T)", c.pt, c.literal, got, got, c.want, c.want)
		}
	}
}

func TestParsePrimitiveTypeRejectsUnsupportedKind(t *testing.T) {
	if _, err := parsePrimitiveType(nrbf.PrimitiveDecimal, "1.0"); err == nil {
		t.Fatal("expected an error for a primitive type with no command-line literal support")
	}
}

func TestParseLikeGoValue(t *testing.T) {
	if v, err := parseLikeGoValue(int32(0), "7"); err != nil || v != int32(7) {
		t.Fatalf("parseLikeGoValue(int32, \"7\") = %v, %v", v, err)
	}
	if v, err := parseLikeGoValue("", "new value"); err != nil || v != "new value" {
		t.Fatalf("parseLikeGoValue(string, ...) = %v, %v", v, err)
	}
	if _, err := parseLikeGoValue(nil, "x"); err == nil {
		t.Fatal("expected an error inferring a type from a nil existing value")
	}
}
