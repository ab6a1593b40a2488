// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireValueKind discriminates the shape a member or array-element slot
// takes in the exported projection.
type wireValueKind int

const (
	wvScalar      wireValueKind = iota // a bare, schema-typed primitive
	wvNull                             // a single null slot
	wvRef                              // {"$ref": id} — points into the document's records table
	wvNullRun8                         // {"$nullRun8": n} — n consecutive null slots
	wvNullRun32                        // {"$nullRun32": n} — n consecutive null slots, wide count
	wvInlineTyped                      // {"$typed": {"type": ..., "value": ...}} — a MemberPrimitiveTyped wrapper
)

// wireValue is one member or array-element slot in the exported
// projection. It implements json.Marshaler/Unmarshaler and
// cbor.Marshaler by funneling through a single canonical map/scalar
// shape (toAny), so the JSON and CBOR projections agree on field names
// and nesting without duplicating the shape logic.
type wireValue struct {
	kind      wireValueKind
	ref       int32
	runCount  int32
	typedKind string
	scalar    any
}

func (v wireValue) toAny() any {
	switch v.kind {
	case wvNull:
		return nil
	case wvRef:
		return map[string]any{"$ref": v.ref}
	case wvNullRun8:
		return map[string]any{"$nullRun8": v.runCount}
	case wvNullRun32:
		return map[string]any{"$nullRun32": v.runCount}
	case wvInlineTyped:
		return map[string]any{"$typed": map[string]any{"type": v.typedKind, "value": v.scalar}}
	default:
		return v.scalar
	}
}

func wireValueFromAny(raw any) (wireValue, error) {
	if raw == nil {
		return wireValue{kind: wvNull}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return wireValue{kind: wvScalar, scalar: raw}, nil
	}
	if ref, ok := m["$ref"]; ok {
		n, err := scalarInt64(ref)
		if err != nil {
			return wireValue{}, fmt.Errorf("nrbfx: malformed $ref: %w", err)
		}
		return wireValue{kind: wvRef, ref: int32(n)}, nil
	}
	if run, ok := m["$nullRun8"]; ok {
		n, err := scalarInt64(run)
		if err != nil {
			return wireValue{}, fmt.Errorf("nrbfx: malformed $nullRun8: %w", err)
		}
		return wireValue{kind: wvNullRun8, runCount: int32(n)}, nil
	}
	if run, ok := m["$nullRun32"]; ok {
		n, err := scalarInt64(run)
		if err != nil {
			return wireValue{}, fmt.Errorf("nrbfx: malformed $nullRun32: %w", err)
		}
		return wireValue{kind: wvNullRun32, runCount: int32(n)}, nil
	}
	if typed, ok := m["$typed"]; ok {
		tm, ok := typed.(map[string]any)
		if !ok {
			return wireValue{}, fmt.Errorf("nrbfx: malformed $typed value")
		}
		typeName, _ := tm["type"].(string)
		return wireValue{kind: wvInlineTyped, typedKind: typeName, scalar: tm["value"]}, nil
	}
	return wireValue{}, fmt.Errorf("nrbfx: unrecognized object shape in value position: %v", m)
}

// MarshalJSON renders the value's canonical shape.
func (v wireValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toAny())
}

// UnmarshalJSON decodes with UseNumber so 64-bit integers (Int64,
// UInt64, DateTime, TimeSpan) survive without float64 precision loss —
// scalarToPrimitive reconverts the resulting json.Number against the
// slot's declared PrimitiveType.
func (v *wireValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := wireValueFromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalCBOR renders the same canonical shape through the package's
// Core Deterministic Encoding mode. There is no UnmarshalCBOR: CBOR
// export is one-way interop (see ExportCBOR); ContentHash and
// diffing tools are the intended consumers, not round-trip import.
func (v wireValue) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(v.toAny())
}
