// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"testing"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func TestContentHashIgnoresObjectIDAssignment(t *testing.T) {
	rootA, libsA := buildSampleGraph(0)
	rootB, libsB := buildSampleGraph(1000)

	hashA, err := ContentHash(rootA, nil, libsA)
	if err != nil {
		t.Fatalf("ContentHash(A): %v", err)
	}
	hashB, err := ContentHash(rootB, nil, libsB)
	if err != nil {
		t.Fatalf("ContentHash(B): %v", err)
	}
	if hashA != hashB {
		t.Fatalf("hashes differ across object ID assignments: %s vs %s", hashA, hashB)
	}
}

func TestContentHashDetectsValueChange(t *testing.T) {
	root, libs := buildSampleGraph(0)
	before, err := ContentHash(root, nil, libs)
	if err != nil {
		t.Fatalf("ContentHash: %v", err)
	}

	root.MemberValues["Tag"] = nrbf.Value{Record: &nrbf.MemberPrimitiveTypedRecord{PrimitiveType: nrbf.PrimitiveInt32, Value: int32(43)}}

	after, err := ContentHash(root, nil, libs)
	if err != nil {
		t.Fatalf("ContentHash after mutation: %v", err)
	}
	if before == after {
		t.Fatal("content hash did not change after mutating a member value")
	}
}

func TestParseHashRejectsWrongLength(t *testing.T) {
	if _, err := ParseHash("deadbeef"); err == nil {
		t.Fatal("expected error for short hash string")
	}
}
