// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func TestSummarizeValue(t *testing.T) {
	cases := []struct {
		name string
		val  nrbf.Value
		want string
	}{
		{"null", nrbf.Value{IsNull: true}, "null"},
		{"bare primitive", nrbf.Value{Primitive: int32(42)}, "42"},
		{"string record", nrbf.Value{Record: &nrbf.BinaryObjectStringRecord{ID: 1, Value: "hi"}}, `"hi"`},
		{"reference", nrbf.Value{Record: &nrbf.MemberReferenceRecord{IDRef: 7}}, "-> #7"},
	}
	for _, c := range cases {
		if got := summarizeValue(c.val); got != c.want {
			t.Errorf("%s: summarizeValue = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestSummarizeValueClassRecord(t *testing.T) {
	class := &nrbf.ClassRecord{
		Info:         nrbf.ClassInfo{ObjectID: 3, Name: "Widget", MemberNames: []string{"A", "B"}},
		OriginalKind: nrbf.RecordSystemClassWithMembersAndTypes,
		MemberValues: map[string]nrbf.Value{"A": {Primitive: int32(1)}, "B": {Primitive: int32(2)}},
	}
	got := summarizeValue(nrbf.Value{Record: class})
	want := "<Widget #3, 2 members>"
	if got != want {
		t.Fatalf("summarizeValue(class) = %q, want %q", got, want)
	}
}
