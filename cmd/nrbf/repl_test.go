// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

func TestJoinAndParentPath(t *testing.T) {
	if got := joinPath("", "Name"); got != "Name" {
		t.Fatalf("joinPath(\"\", Name) = %q", got)
	}
	if got := joinPath("Fields", "Items"); got != "Fields.Items" {
		t.Fatalf("joinPath(Fields, Items) = %q", got)
	}
	if got := parentPath(""); got != "" {
		t.Fatalf("parentPath(\"\") = %q", got)
	}
	if got := parentPath("Fields.Items"); got != "Fields" {
		t.Fatalf("parentPath(Fields.Items) = %q", got)
	}
	if got := parentPath("Name"); got != "" {
		t.Fatalf("parentPath(Name) = %q", got)
	}
}

func TestChildrenOfClassRecord(t *testing.T) {
	root, table := newFixtureRoot()
	children := childrenOf("", nrbf.Value{Record: root}, table)
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	byLabel := map[string]childEntry{}
	for _, c := range children {
		byLabel[c.label] = c
	}
	if c, ok := byLabel["Name"]; !ok || c.path != "Name" {
		t.Fatalf("Name child = %+v, ok=%v", c, ok)
	}
	if c, ok := byLabel["Count"]; !ok || c.path != "Count" {
		t.Fatalf("Count child = %+v, ok=%v", c, ok)
	}
}

func TestChildrenOfResolvesReference(t *testing.T) {
	root, table := newFixtureRoot()
	rootID, _ := root.ObjectID()
	ref := nrbf.Value{Record: &nrbf.MemberReferenceRecord{IDRef: rootID}}
	children := childrenOf("Alias", ref, table)
	if len(children) != 2 {
		t.Fatalf("expected the reference to resolve to the root class and list its 2 members, got %d", len(children))
	}
}

func TestReplModelCurrentLeafFallsBackToCurrentNode(t *testing.T) {
	root, table := newFixtureRoot()
	m := newReplModel("fixture.bin", root, table, nrbf.LibraryTable{}, DefaultTheme)
	m.setPath("Count")

	leaf := m.currentLeaf()
	if leaf.path != "Count" {
		t.Fatalf("currentLeaf().path = %q, want Count (no children, should fall back to current node)", leaf.path)
	}
}

func TestReplModelCurrentLeafUsesHighlightedChild(t *testing.T) {
	root, table := newFixtureRoot()
	m := newReplModel("fixture.bin", root, table, nrbf.LibraryTable{}, DefaultTheme)
	m.setPath("")
	if len(m.children) == 0 {
		t.Fatal("expected root to have children")
	}
	m.cursor = 0
	leaf := m.currentLeaf()
	if leaf.path != m.children[0].path {
		t.Fatalf("currentLeaf() = %q, want the highlighted child %q", leaf.path, m.children[0].path)
	}
}

func TestReplModelEditSubmitMutatesGraph(t *testing.T) {
	root, table := newFixtureRoot()
	m := newReplModel("fixture.bin", root, table, nrbf.LibraryTable{}, DefaultTheme)
	m.setPath("Name")
	m.cursor = 0 // "Name" has no children; currentLeaf falls back to m.path/m.current

	m.submit(modeEdit, "updated")
	if m.err != nil {
		t.Fatalf("submit(modeEdit): %v", m.err)
	}
	if !m.dirty {
		t.Fatal("expected the session to be marked modified after an edit")
	}

	again, err := nrbf.PathGet(root, table, "Name")
	if err != nil {
		t.Fatalf("PathGet after edit: %v", err)
	}
	if got := summarizeValue(again); got != `"updated"` {
		t.Fatalf("summarizeValue after edit = %q, want %q", got, `"updated"`)
	}
}

func TestReplModelEditSubmitBlankIsNoOp(t *testing.T) {
	root, table := newFixtureRoot()
	m := newReplModel("fixture.bin", root, table, nrbf.LibraryTable{}, DefaultTheme)
	m.setPath("Name")
	m.submit(modeEdit, "   ")
	if m.dirty {
		t.Fatal("a blank edit submission should not mark the session modified")
	}
}

func TestPathOrRoot(t *testing.T) {
	if got := pathOrRoot(""); got != "." {
		t.Fatalf("pathOrRoot(\"\") = %q, want \".\"", got)
	}
	if got := pathOrRoot("Fields.Items"); got != "Fields.Items" {
		t.Fatalf("pathOrRoot(Fields.Items) = %q", got)
	}
}
