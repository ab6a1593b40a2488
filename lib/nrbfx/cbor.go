// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// cborEncMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer encoding,
// no indefinite-length items. Same logical graph always produces
// identical bytes, which is what ContentHash depends on.
var cborEncMode cbor.EncMode

func init() {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("nrbfx: CBOR encoder initialization failed: " + err.Error())
	}
	cborEncMode = mode
}

// ExportCBOR projects root's reachable graph into the same flat,
// ID-keyed document ExportJSON produces, encoded as a single Core
// Deterministic Encoding CBOR item. There is no ImportCBOR — this
// direction is for canonical hashing (see ContentHash) and compact
// interop with tooling that has no NRBF support, not for round trips;
// ExportJSON/ImportJSON is the round-trip path.
func ExportCBOR(root nrbf.Record, _ nrbf.RecordTable, libraries nrbf.LibraryTable) ([]byte, error) {
	doc, err := buildGraphDoc(root, libraries)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(doc)
}
