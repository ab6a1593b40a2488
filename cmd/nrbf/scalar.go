// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/CrispStrobe/nrbf/lib/nrbf"
)

// setScalar parses literal against the Go or wire type already present
// at val and mutates the graph in place. A shared BinaryObjectString or
// MemberPrimitiveTyped record is edited through its pointer so every
// other reference to the same object ID observes the change; a bare
// inline primitive slot (stored by value in a ClassRecord's member map)
// goes through PathSet instead, since there is no pointer to mutate.
func setScalar(root nrbf.Record, table nrbf.RecordTable, path string, val nrbf.Value, literal string) error {
	switch rec := val.Record.(type) {
	case *nrbf.BinaryObjectStringRecord:
		rec.Value = literal
		return nil
	case *nrbf.MemberPrimitiveTypedRecord:
		parsed, err := parsePrimitiveType(rec.PrimitiveType, literal)
		if err != nil {
			return err
		}
		rec.Value = parsed
		return nil
	case nil:
		if val.IsNull {
			return fmt.Errorf("%s is null; cannot infer a type for %q (replace with a value of known type first)", path, literal)
		}
		parsed, err := parseLikeGoValue(val.Primitive, literal)
		if err != nil {
			return err
		}
		return nrbf.PathSet(root, table, path, nrbf.Value{Primitive: parsed})
	default:
		return fmt.Errorf("%s resolves to a %s record; only scalar leaf values can be set directly", path, val.Record.RecordKind())
	}
}

// parsePrimitiveType parses literal as the Go type matching pt, the
// same mapping writePrimitiveByType expects on encode.
func parsePrimitiveType(pt nrbf.PrimitiveType, literal string) (any, error) {
	switch pt {
	case nrbf.PrimitiveBoolean:
		return strconv.ParseBool(literal)
	case nrbf.PrimitiveByte:
		v, err := strconv.ParseUint(literal, 10, 8)
		return byte(v), err
	case nrbf.PrimitiveSByte:
		v, err := strconv.ParseInt(literal, 10, 8)
		return int8(v), err
	case nrbf.PrimitiveChar:
		v, err := strconv.ParseUint(literal, 10, 8)
		return byte(v), err
	case nrbf.PrimitiveInt16:
		v, err := strconv.ParseInt(literal, 10, 16)
		return int16(v), err
	case nrbf.PrimitiveUInt16:
		v, err := strconv.ParseUint(literal, 10, 16)
		return uint16(v), err
	case nrbf.PrimitiveInt32:
		v, err := strconv.ParseInt(literal, 10, 32)
		return int32(v), err
	case nrbf.PrimitiveUInt32:
		v, err := strconv.ParseUint(literal, 10, 32)
		return uint32(v), err
	case nrbf.PrimitiveInt64:
		return strconv.ParseInt(literal, 10, 64)
	case nrbf.PrimitiveUInt64:
		return strconv.ParseUint(literal, 10, 64)
	case nrbf.PrimitiveSingle:
		v, err := strconv.ParseFloat(literal, 32)
		return float32(v), err
	case nrbf.PrimitiveDouble:
		return strconv.ParseFloat(literal, 64)
	case nrbf.PrimitiveString:
		return literal, nil
	default:
		return nil, fmt.Errorf("nrbf: setting a %s value from the command line is not supported", pt)
	}
}

// parseLikeGoValue parses literal as whatever concrete Go type existing
// already holds, for the inline-primitive member slots that carry no
// PrimitiveType tag of their own beyond the Go type itself.
func parseLikeGoValue(existing any, literal string) (any, error) {
	switch existing.(type) {
	case bool:
		return strconv.ParseBool(literal)
	case byte:
		v, err := strconv.ParseUint(literal, 10, 8)
		return byte(v), err
	case int8:
		v, err := strconv.ParseInt(literal, 10, 8)
		return int8(v), err
	case int16:
		v, err := strconv.ParseInt(literal, 10, 16)
		return int16(v), err
	case uint16:
		v, err := strconv.ParseUint(literal, 10, 16)
		return uint16(v), err
	case int32:
		v, err := strconv.ParseInt(literal, 10, 32)
		return int32(v), err
	case uint32:
		v, err := strconv.ParseUint(literal, 10, 32)
		return uint32(v), err
	case int64:
		return strconv.ParseInt(literal, 10, 64)
	case uint64:
		return strconv.ParseUint(literal, 10, 64)
	case float32:
		v, err := strconv.ParseFloat(literal, 32)
		return float32(v), err
	case float64:
		return strconv.ParseFloat(literal, 64)
	case string:
		return literal, nil
	default:
		return nil, fmt.Errorf("nrbf: cannot infer a settable type from existing value %v (%T)", existing, existing)
	}
}
