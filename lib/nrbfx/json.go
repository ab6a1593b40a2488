// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"encoding/json"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// ExportJSON projects root's reachable graph (as returned by
// nrbf.Decode, or assembled by hand) into a flat, human-readable JSON
// document keyed by object ID. The table argument is accepted for
// symmetry with nrbf.Decode's return signature but unused: the
// projection is derived by walking from root, not from the table,
// since the table may contain unreachable entries Decode registered
// but root never references.
func ExportJSON(root nrbf.Record, _ nrbf.RecordTable, libraries nrbf.LibraryTable) ([]byte, error) {
	doc, err := buildGraphDoc(root, libraries)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportJSON parses a document produced by ExportJSON back into a
// record graph suitable for nrbf.Encode. Every object ID is given
// exactly one owning record — the first occurrence reached by a
// depth-first walk from the document's root — and every later
// occurrence of that same ID becomes a MemberReferenceRecord, mirroring
// how a decoded stream's first appearance of an ID owns the bytes and
// every later appearance is a reference.
func ImportJSON(data []byte) (nrbf.Record, nrbf.RecordTable, nrbf.LibraryTable, error) {
	var doc graphDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, err
	}
	return doc.toGraph()
}
