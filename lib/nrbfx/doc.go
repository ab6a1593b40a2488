// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nrbfx provides peripheral export, interop, and at-rest
// protection helpers built around a decoded [nrbf.Record] graph. None of
// this is part of the wire codec itself — everything here is a
// consumer of lib/nrbf's public surface (Decode/Encode/RecordTable/
// LibraryTable), not an extension of it.
//
// [ExportJSON] and [ImportJSON] project a graph to and from a flat,
// human-readable JSON document keyed by object ID, suitable for diffing
// save files in a text editor or feeding into tooling that has no NRBF
// support. [ExportCBOR] does the same in Core Deterministic Encoding
// (RFC 8949 §4.2) for compact, canonical binary interop. [ContentHash]
// derives a stable BLAKE3 digest from the CBOR projection after
// renumbering object IDs canonically, so two save files with the same
// logical content hash identically regardless of how their IDs were
// originally assigned. [Compress]/[Decompress] and [Seal]/[Unseal] wrap
// an exported blob for storage: optional zstd/lz4 framing, and optional
// age passphrase encryption.
package nrbfx
