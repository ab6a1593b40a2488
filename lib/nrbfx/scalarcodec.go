// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// scalarToPrimitive converts a value decoded from a wire projection
// (a JSON number via json.Number, or a plain Go scalar) into the exact
// Go type nrbf expects for pt. Every scalar slot in the exported
// projection carries its PrimitiveType in its surrounding context (a
// class member's declared type, an array's element type, or an inline
// MemberPrimitiveTyped wrapper) rather than on the value itself, so
// this is always called with the right pt already known.
func scalarToPrimitive(pt nrbf.PrimitiveType, raw any) (any, error) {
	switch pt {
	case nrbf.PrimitiveBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, scalarTypeError(pt, raw)
		}
		return b, nil
	case nrbf.PrimitiveByte, nrbf.PrimitiveChar:
		n, err := scalarInt64(raw)
		if err != nil || n < 0 || n > math.MaxUint8 {
			return nil, scalarTypeError(pt, raw)
		}
		return byte(n), nil
	case nrbf.PrimitiveSByte:
		n, err := scalarInt64(raw)
		if err != nil || n < math.MinInt8 || n > math.MaxInt8 {
			return nil, scalarTypeError(pt, raw)
		}
		return int8(n), nil
	case nrbf.PrimitiveInt16:
		n, err := scalarInt64(raw)
		if err != nil || n < math.MinInt16 || n > math.MaxInt16 {
			return nil, scalarTypeError(pt, raw)
		}
		return int16(n), nil
	case nrbf.PrimitiveInt32:
		n, err := scalarInt64(raw)
		if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
			return nil, scalarTypeError(pt, raw)
		}
		return int32(n), nil
	case nrbf.PrimitiveInt64:
		n, err := scalarInt64(raw)
		if err != nil {
			return nil, scalarTypeError(pt, raw)
		}
		return n, nil
	case nrbf.PrimitiveUInt16:
		n, err := scalarUint64(raw)
		if err != nil || n > math.MaxUint16 {
			return nil, scalarTypeError(pt, raw)
		}
		return uint16(n), nil
	case nrbf.PrimitiveUInt32:
		n, err := scalarUint64(raw)
		if err != nil || n > math.MaxUint32 {
			return nil, scalarTypeError(pt, raw)
		}
		return uint32(n), nil
	case nrbf.PrimitiveUInt64:
		n, err := scalarUint64(raw)
		if err != nil {
			return nil, scalarTypeError(pt, raw)
		}
		return n, nil
	case nrbf.PrimitiveSingle:
		f, err := scalarFloat64(raw)
		if err != nil {
			return nil, scalarTypeError(pt, raw)
		}
		return float32(f), nil
	case nrbf.PrimitiveDouble:
		f, err := scalarFloat64(raw)
		if err != nil {
			return nil, scalarTypeError(pt, raw)
		}
		return f, nil
	case nrbf.PrimitiveTimeSpan:
		n, err := scalarInt64(raw)
		if err != nil {
			return nil, scalarTypeError(pt, raw)
		}
		return nrbf.TimeSpan(n), nil
	case nrbf.PrimitiveDateTime:
		n, err := scalarInt64(raw)
		if err != nil {
			return nil, scalarTypeError(pt, raw)
		}
		return nrbf.DateTime(n), nil
	case nrbf.PrimitiveDecimal, nrbf.PrimitiveString:
		s, ok := raw.(string)
		if !ok {
			return nil, scalarTypeError(pt, raw)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("nrbfx: unsupported primitive type %s in export projection", pt)
	}
}

func scalarTypeError(pt nrbf.PrimitiveType, raw any) error {
	return fmt.Errorf("nrbfx: value %#v is not a valid %s", raw, pt)
}

func scalarInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		return v.Int64()
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("nrbfx: %#v is not a number", raw)
	}
}

func scalarUint64(raw any) (uint64, error) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil && n >= 0 {
			return uint64(n), nil
		}
		// json.Number.Int64 rejects the upper half of the uint64 range
		// (anything beyond math.MaxInt64); parse the decimal text
		// directly for those values.
		var u uint64
		if _, err := fmt.Sscan(v.String(), &u); err != nil {
			return 0, fmt.Errorf("nrbfx: %q is not a uint64", v.String())
		}
		return u, nil
	case uint64:
		return v, nil
	case float64:
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("nrbfx: %#v is not a number", raw)
	}
}

func scalarFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		return v.Float64()
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("nrbfx: %#v is not a number", raw)
	}
}
