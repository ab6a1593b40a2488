// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// graphDomainKey domain-separates ContentHash from any other BLAKE3
// keyed hash in this module. Changing it invalidates every previously
// computed content hash.
var graphDomainKey = [32]byte{
	'n', 'r', 'b', 'f', '.', 'e', 'x', 'p', 'o', 'r', 't', '.', 'g', 'r', 'a', 'p',
	'h', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// ContentHash derives a stable digest from root's reachable graph: the
// same logical content hashes identically regardless of what object
// IDs happened to be assigned when it was decoded. It does this by
// renumbering every reachable object to a canonical ID — depth-first
// traversal order from root, starting at 1 — before taking the Core
// Deterministic CBOR encoding of the result and hashing that with a
// domain-separated BLAKE3 key. Two graphs differing only in their
// original object ID assignment produce the same hash; two graphs
// differing in shape, values, or reference structure do not.
func ContentHash(root nrbf.Record, _ nrbf.RecordTable, libraries nrbf.LibraryTable) (Hash, error) {
	doc, err := buildGraphDoc(root, libraries)
	if err != nil {
		return Hash{}, err
	}
	canonical, err := canonicalizeIDs(doc)
	if err != nil {
		return Hash{}, err
	}
	encoded, err := cborEncMode.Marshal(canonical)
	if err != nil {
		return Hash{}, fmt.Errorf("nrbfx: encoding canonical graph for hashing: %w", err)
	}
	hasher, err := blake3.NewKeyed(graphDomainKey[:])
	if err != nil {
		panic("nrbfx: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h, nil
}

// canonicalizeIDs rebuilds doc with every object ID replaced by its
// rank in a depth-first walk starting at the root (root itself becomes
// 1). Walk order follows a record's own field order — class members in
// declaration order, array elements in index order — so two documents
// describing the same graph shape always renumber the same way
// regardless of the ID values the original decode happened to assign.
func canonicalizeIDs(doc *graphDoc) (*graphDoc, error) {
	c := &canonicalizer{src: doc, remap: map[int32]int32{}, out: map[int32]*recordDoc{}}
	if err := c.visit(doc.Root); err != nil {
		return nil, err
	}
	renumbered := &graphDoc{Root: c.remap[doc.Root], Records: c.out}
	if len(doc.Libraries) > 0 {
		renumbered.Libraries = doc.Libraries
	}
	return renumbered, nil
}

type canonicalizer struct {
	src   *graphDoc
	remap map[int32]int32
	out   map[int32]*recordDoc
	next  int32
}

func (c *canonicalizer) assign(id int32) (int32, bool) {
	if newID, ok := c.remap[id]; ok {
		return newID, false
	}
	c.next++
	c.remap[id] = c.next
	return c.next, true
}

func (c *canonicalizer) visit(id int32) error {
	newID, fresh := c.assign(id)
	if !fresh {
		return nil
	}
	rd, ok := c.src.Records[id]
	if !ok {
		return fmt.Errorf("nrbfx: reference to unknown object id %d", id)
	}
	renamed := *rd
	if rd.Members != nil {
		renamed.Members = make(map[string]wireValue, len(rd.Members))
		for _, name := range rd.MemberNames {
			wv, ok := rd.Members[name]
			if !ok {
				continue
			}
			rewired, err := c.rewire(wv)
			if err != nil {
				return err
			}
			renamed.Members[name] = rewired
		}
	}
	if rd.Elements != nil {
		renamed.Elements = make([]wireValue, len(rd.Elements))
		for i, wv := range rd.Elements {
			rewired, err := c.rewire(wv)
			if err != nil {
				return err
			}
			renamed.Elements[i] = rewired
		}
	}
	c.out[newID] = &renamed
	return nil
}

func (c *canonicalizer) rewire(wv wireValue) (wireValue, error) {
	if wv.kind != wvRef {
		return wv, nil
	}
	if err := c.visit(wv.ref); err != nil {
		return wireValue{}, err
	}
	return wireValue{kind: wvRef, ref: c.remap[wv.ref]}, nil
}

// String returns the hex-encoded digest.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return h, fmt.Errorf("nrbfx: parsing content hash: %w", err)
	}
	if len(decoded) != 32 {
		return h, fmt.Errorf("nrbfx: content hash is %d bytes, want 32", len(decoded))
	}
	copy(h[:], decoded)
	return h, nil
}
