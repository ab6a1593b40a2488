// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import "fmt"

// DateTime is .NET's 8-byte DateTime tick count, preserved bit-for-bit.
// The source narrows this into a float64 on read; this type keeps it a
// 64-bit integer end-to-end to avoid precision loss beyond 2^53 (§9).
type DateTime int64

// TimeSpan is .NET's 8-byte TimeSpan tick count, preserved bit-for-bit.
type TimeSpan int64

// readPrimitiveByType reads one value of the given PrimitiveType from c.
// Decimal is returned as a 32-character hex string (§4.1); DateTime and
// TimeSpan as their named int64 wrapper types.
func readPrimitiveByType(c *cursor, pt PrimitiveType) (any, error) {
	switch pt {
	case PrimitiveBoolean:
		return c.readBool()
	case PrimitiveByte:
		return c.readU8()
	case PrimitiveChar:
		return c.readChar()
	case PrimitiveDecimal:
		return c.readDecimalHex()
	case PrimitiveDouble:
		return c.readF64()
	case PrimitiveInt16:
		return c.readI16()
	case PrimitiveInt32:
		return c.readI32()
	case PrimitiveInt64:
		return c.readI64()
	case PrimitiveSByte:
		return c.readI8()
	case PrimitiveSingle:
		return c.readF32()
	case PrimitiveTimeSpan:
		v, err := c.readI64()
		return TimeSpan(v), err
	case PrimitiveDateTime:
		v, err := c.readI64()
		return DateTime(v), err
	case PrimitiveUInt16:
		return c.readU16()
	case PrimitiveUInt32:
		return c.readU32()
	case PrimitiveUInt64:
		return c.readU64()
	case PrimitiveNull:
		return nil, nil
	case PrimitiveString:
		return c.readString()
	default:
		return nil, fmt.Errorf("nrbf: unknown primitive type %d", byte(pt))
	}
}

// writePrimitiveByType writes v, which must be the Go type
// readPrimitiveByType returns for pt, using the matching wire layout.
func writePrimitiveByType(w *writer, pt PrimitiveType, v any) error {
	switch pt {
	case PrimitiveBoolean:
		b, ok := v.(bool)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeBool(b)
	case PrimitiveByte:
		b, ok := v.(byte)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeU8(b)
	case PrimitiveChar:
		b, ok := v.(byte)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeChar(b)
	case PrimitiveDecimal:
		h, ok := v.(string)
		if !ok {
			return typeMismatch(pt, v)
		}
		return w.writeDecimalHex(h)
	case PrimitiveDouble:
		f, ok := v.(float64)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeF64(f)
	case PrimitiveInt16:
		n, ok := v.(int16)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeI16(n)
	case PrimitiveInt32:
		n, ok := v.(int32)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeI32(n)
	case PrimitiveInt64:
		n, ok := v.(int64)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeI64(n)
	case PrimitiveSByte:
		n, ok := v.(int8)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeI8(n)
	case PrimitiveSingle:
		f, ok := v.(float32)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeF32(f)
	case PrimitiveTimeSpan:
		n, ok := v.(TimeSpan)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeI64(int64(n))
	case PrimitiveDateTime:
		n, ok := v.(DateTime)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeI64(int64(n))
	case PrimitiveUInt16:
		n, ok := v.(uint16)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeU16(n)
	case PrimitiveUInt32:
		n, ok := v.(uint32)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeU32(n)
	case PrimitiveUInt64:
		n, ok := v.(uint64)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeU64(n)
	case PrimitiveNull:
		// no bytes on the wire
	case PrimitiveString:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(pt, v)
		}
		w.writeString(s)
	default:
		return fmt.Errorf("nrbf: unknown primitive type %d", byte(pt))
	}
	return nil
}

func typeMismatch(pt PrimitiveType, v any) error {
	return fmt.Errorf("nrbf: value %#v does not match declared primitive type %s", v, pt)
}

// inferPrimitiveType maps a bare Go value to the one PrimitiveType it
// unambiguously corresponds to, for encoding a primitive slot outside a
// typed context (§9 "Encoder inference of primitive widths"). Each
// supported Go type maps to exactly one PrimitiveType, so the mapping
// is never itself ambiguous — "ambiguous" here means "not in this set".
func inferPrimitiveType(v any) (PrimitiveType, bool) {
	switch v.(type) {
	case bool:
		return PrimitiveBoolean, true
	case byte: // identical underlying type to uint8
		return PrimitiveByte, true
	case int8:
		return PrimitiveSByte, true
	case string:
		return PrimitiveString, true
	case float32:
		return PrimitiveSingle, true
	case float64:
		return PrimitiveDouble, true
	case int16:
		return PrimitiveInt16, true
	case int32:
		return PrimitiveInt32, true
	case int64:
		return PrimitiveInt64, true
	case uint16:
		return PrimitiveUInt16, true
	case uint32:
		return PrimitiveUInt32, true
	case uint64:
		return PrimitiveUInt64, true
	case DateTime:
		return PrimitiveDateTime, true
	case TimeSpan:
		return PrimitiveTimeSpan, true
	default:
		return 0, false
	}
}
