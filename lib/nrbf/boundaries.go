// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

// RecordBoundary locates one decoded record's lead byte within the
// original stream, for tooling that annotates a raw byte dump (the CLI's
// "dump" subcommand) rather than navigating the decoded graph.
type RecordBoundary struct {
	Offset int
	Kind   RecordKind
	ID     int32   // object ID if the record carries one, else 0
	HasID  bool
}

// Boundaries decodes data exactly as Decode does, but returns the byte
// offset and kind of each top-level record's lead tag in stream order
// instead of the graph. A record nested inside another one (a class
// member value or an array element) is decoded as part of its parent
// and gets no entry of its own. Decode and Boundaries agree on where
// each top-level record starts because both drive the same readRecord
// loop.
func Boundaries(data []byte) ([]RecordBoundary, error) {
	c := newCursor(data)
	if _, err := readHeader(c); err != nil {
		return nil, err
	}

	d := &decoder{
		c:         c,
		records:   RecordTable{},
		libraries: LibraryTable{},
		metadata:  map[int32]classMetadata{},
	}

	var bounds []RecordBoundary
	for {
		if d.recordCount >= maxRecordsPerStream {
			return nil, errSafetyCapExceeded
		}
		offset := c.offset()
		rec, err := d.readRecord()
		if err != nil {
			return nil, err
		}
		d.recordCount++
		b := RecordBoundary{Offset: offset, Kind: rec.RecordKind()}
		if id, ok := rec.ObjectID(); ok {
			b.ID, b.HasID = id, true
		}
		bounds = append(bounds, b)
		if _, ok := rec.(*MessageEndRecord); ok {
			break
		}
	}
	return bounds, nil
}
