// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nrbf implements a round-trip codec for the .NET Remoting Binary
// Format (MS-NRBF): the self-describing, record-oriented binary
// serialization format emitted by legacy .NET BinaryFormatter and still
// found in Unity game save files and other persisted object graphs.
//
// [Decode] parses a byte buffer into an in-memory graph of tagged
// [Record] values rooted at one entry point, resolving forward and
// backward references through a per-stream record table. [Encode] walks
// that graph back into bytes that reproduce the wire layout the original
// producer emitted: record kind, metadata identity, and ordering are
// preserved rather than normalized.
//
// The package is single-threaded and allocation-only: decode consumes a
// fully materialized buffer, encode produces one, and there are no I/O,
// timers, or cancellation points. A decoded graph may be shared for
// concurrent read-only traversal once Decode returns, but must not be
// mutated concurrently with an in-flight Encode.
//
// Use [PathGet] and [PathSet] to navigate and mutate the graph by dotted
// path (e.g. "Header.Items[0].Name"), and [ParseGUID]/[BuildGUIDRecord] to
// round-trip embedded System.Guid values. [LooksLikeNRBF] offers a cheap
// header sniff for file-type dispatch without a full decode.
//
// This package does not validate decoded values against .NET type
// definitions, does not execute deserialization callbacks, does not
// interpret Decimal/DateTime/TimeSpan beyond preserving their bits, and
// does not canonicalize the graph (a ClassWithId record is never inlined
// into a full class record).
package nrbf
