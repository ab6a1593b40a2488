// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"fmt"
	"strconv"
	"strings"
)

// pathSegment is one hop in a dotted path: either a class member name
// or a bracketed array index. "Fields.Items[3].Name" parses into
// [{name Fields} {name Items} {index 3} {name Name}].
type pathSegment struct {
	isIndex bool
	name    string
	index   int32
}

// parsePath splits a dotted path with optional bracketed indices into
// its segments. An empty path yields no segments (PathGet/PathSet on
// the root value itself).
func parsePath(path string) ([]pathSegment, error) {
	if path == "" {
		return nil, nil
	}
	var segments []pathSegment
	for _, part := range strings.Split(path, ".") {
		name, indices, err := splitIndices(part)
		if err != nil {
			return nil, err
		}
		if name != "" {
			segments = append(segments, pathSegment{name: name})
		}
		for _, idx := range indices {
			segments = append(segments, pathSegment{isIndex: true, index: idx})
		}
	}
	return segments, nil
}

// splitIndices pulls the trailing "[n][m]..." run off a path component,
// returning the bare name and the parsed indices in order.
func splitIndices(part string) (string, []int32, error) {
	bracket := strings.IndexByte(part, '[')
	if bracket < 0 {
		return part, nil, nil
	}
	name := part[:bracket]
	rest := part[bracket:]
	var indices []int32
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("nrbf: malformed path segment %q", part)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, fmt.Errorf("nrbf: unterminated index in path segment %q", part)
		}
		n, err := strconv.ParseInt(rest[1:end], 10, 32)
		if err != nil {
			return "", nil, fmt.Errorf("nrbf: invalid index in path segment %q: %w", part, err)
		}
		indices = append(indices, int32(n))
		rest = rest[end+1:]
	}
	return name, indices, nil
}

// maxReferenceHops bounds chained MemberReference resolution, guarding
// against a reference cycle expressed entirely through the record table
// (A refers to B, B refers to A) rather than through owned structure.
const maxReferenceHops = 10_000

// resolveReference follows v.Record through the record table while it
// is a MemberReferenceRecord, returning the first non-reference value.
func resolveReference(v Value, table RecordTable) (Value, error) {
	for hops := 0; ; hops++ {
		ref, ok := v.Record.(*MemberReferenceRecord)
		if !ok {
			return v, nil
		}
		if hops >= maxReferenceHops {
			return Value{}, &UnresolvedReferenceError{IDRef: ref.IDRef}
		}
		target, ok := table[ref.IDRef]
		if !ok {
			return Value{}, &UnresolvedReferenceError{IDRef: ref.IDRef}
		}
		v = valueFromRecord(target)
	}
}

// elementsOf returns the logical element slots of any array-shaped
// record, materializing ArraySinglePrimitive's raw Go values as Values.
func elementsOf(rec Record) ([]Value, bool) {
	switch r := rec.(type) {
	case *BinaryArrayRecord:
		return r.Elements, true
	case *ArraySingleObjectRecord:
		return r.Elements, true
	case *ArraySingleStringRecord:
		return r.Elements, true
	case *ArraySinglePrimitiveRecord:
		elements := make([]Value, len(r.Elements))
		for i, v := range r.Elements {
			elements[i] = primitiveValue(v)
		}
		return elements, true
	default:
		return nil, false
	}
}

// PathGet navigates root using a dotted path such as "Header.Items[2].Name",
// resolving MemberReference slots transparently at every hop, and returns
// the value found at the end of the path. An empty path returns root itself.
func PathGet(root Record, table RecordTable, path string) (Value, error) {
	segments, err := parsePath(path)
	if err != nil {
		return Value{}, err
	}
	current := recordValue(root)
	for _, seg := range segments {
		current, err = resolveReference(current, table)
		if err != nil {
			return Value{}, err
		}
		if current.Record == nil {
			return Value{}, fmt.Errorf("nrbf: path segment %s applied to a non-record value", seg.describe())
		}
		if seg.isIndex {
			elements, ok := elementsOf(current.Record)
			if !ok {
				return Value{}, fmt.Errorf("nrbf: index [%d] applied to non-array record kind %s", seg.index, current.Record.RecordKind())
			}
			if seg.index < 0 || int(seg.index) >= len(elements) {
				return Value{}, fmt.Errorf("nrbf: index %d out of range (length %d)", seg.index, len(elements))
			}
			current = elements[seg.index]
			continue
		}
		class, ok := current.Record.(*ClassRecord)
		if !ok {
			return Value{}, fmt.Errorf("nrbf: member %q applied to non-class record kind %s", seg.name, current.Record.RecordKind())
		}
		v, ok := class.GetValue(seg.name)
		if !ok {
			return Value{}, &UnknownMemberError{Class: class.Info.Name, Name: seg.name}
		}
		current = v
	}
	return resolveReference(current, table)
}

// PathSet navigates root to the parent of the path's final segment and
// stores value there. The path must have at least one segment — setting
// the root itself is not supported, matching how PathGet's empty-path
// case is read-only by construction.
func PathSet(root Record, table RecordTable, path string, value Value) error {
	segments, err := parsePath(path)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("nrbf: PathSet requires a non-empty path")
	}
	last := segments[len(segments)-1]
	parent := recordValue(root)
	for _, seg := range segments[:len(segments)-1] {
		parent, err = resolveReference(parent, table)
		if err != nil {
			return err
		}
		if parent.Record == nil {
			return fmt.Errorf("nrbf: path segment %s applied to a non-record value", seg.describe())
		}
		if seg.isIndex {
			elements, ok := elementsOf(parent.Record)
			if !ok {
				return fmt.Errorf("nrbf: index [%d] applied to non-array record kind %s", seg.index, parent.Record.RecordKind())
			}
			if seg.index < 0 || int(seg.index) >= len(elements) {
				return fmt.Errorf("nrbf: index %d out of range (length %d)", seg.index, len(elements))
			}
			parent = elements[seg.index]
			continue
		}
		class, ok := parent.Record.(*ClassRecord)
		if !ok {
			return fmt.Errorf("nrbf: member %q applied to non-class record kind %s", seg.name, parent.Record.RecordKind())
		}
		v, ok := class.GetValue(seg.name)
		if !ok {
			return &UnknownMemberError{Class: class.Info.Name, Name: seg.name}
		}
		parent = v
	}

	parent, err = resolveReference(parent, table)
	if err != nil {
		return err
	}
	if parent.Record == nil {
		return fmt.Errorf("nrbf: path segment %s applied to a non-record value", last.describe())
	}
	if last.isIndex {
		return setElement(parent.Record, last.index, value)
	}
	class, ok := parent.Record.(*ClassRecord)
	if !ok {
		return fmt.Errorf("nrbf: member %q applied to non-class record kind %s", last.name, parent.Record.RecordKind())
	}
	return class.SetValue(last.name, value)
}

// setElement mutates a single array slot in place and, for the kinds
// that carry a null-run token sequence, resynchronizes it so a later
// Encode reflects the edit. ArraySinglePrimitive requires value.Primitive
// to be set; it has no null representation on the wire.
func setElement(rec Record, index int32, value Value) error {
	switch r := rec.(type) {
	case *BinaryArrayRecord:
		if index < 0 || int(index) >= len(r.Elements) {
			return fmt.Errorf("nrbf: index %d out of range (length %d)", index, len(r.Elements))
		}
		r.Elements[index] = value
		r.tokens = rebuildArrayTokens(r.Elements)
		return nil
	case *ArraySingleObjectRecord:
		if index < 0 || int(index) >= len(r.Elements) {
			return fmt.Errorf("nrbf: index %d out of range (length %d)", index, len(r.Elements))
		}
		r.Elements[index] = value
		r.tokens = rebuildArrayTokens(r.Elements)
		return nil
	case *ArraySingleStringRecord:
		if index < 0 || int(index) >= len(r.Elements) {
			return fmt.Errorf("nrbf: index %d out of range (length %d)", index, len(r.Elements))
		}
		r.Elements[index] = value
		r.tokens = rebuildArrayTokens(r.Elements)
		return nil
	case *ArraySinglePrimitiveRecord:
		if index < 0 || int(index) >= len(r.Elements) {
			return fmt.Errorf("nrbf: index %d out of range (length %d)", index, len(r.Elements))
		}
		if value.IsNull || value.Record != nil {
			return fmt.Errorf("nrbf: array of primitive type %s cannot hold a null or record element", r.PrimitiveType)
		}
		r.Elements[index] = value.Primitive
		return nil
	default:
		return fmt.Errorf("nrbf: index [%d] applied to non-array record kind %s", index, rec.RecordKind())
	}
}

func (s pathSegment) describe() string {
	if s.isIndex {
		return fmt.Sprintf("[%d]", s.index)
	}
	return strconv.Quote(s.name)
}
