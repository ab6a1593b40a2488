// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

// arrayTokenKind discriminates one element of the original wire-level
// token sequence backing an array record's Elements slice.
type arrayTokenKind int

const (
	tokenValue arrayTokenKind = iota
	tokenNull
	tokenNullRun8  // ObjectNullMultiple256, count is a single byte
	tokenNullRun32 // ObjectNullMultiple, count is a 4-byte signed integer
)

// arrayToken is one entry as it appeared on the wire, before null-run
// expansion. A single token can account for more than one logical slot
// in Elements (tokenNullRun8/32). Keeping this alongside the expanded
// Elements slice is what lets the encoder reproduce a decoded array's
// null runs exactly (§8's null-run fidelity property) while still
// giving callers plain index-based access through Elements.
type arrayToken struct {
	Kind  arrayTokenKind
	Value Value // meaningful iff Kind == tokenValue
	Count int32 // meaningful iff Kind == tokenNullRun8 or tokenNullRun32
}

// expandToken appends the logical slots one token contributes to elements.
func expandToken(elements []Value, tok arrayToken) []Value {
	switch tok.Kind {
	case tokenNull:
		return append(elements, nullValue())
	case tokenNullRun8, tokenNullRun32:
		for i := int32(0); i < tok.Count; i++ {
			elements = append(elements, nullValue())
		}
		return elements
	default:
		return append(elements, tok.Value)
	}
}

// rebuildArrayTokens collapses a possibly-edited Elements slice back into
// a token sequence, run-length-encoding consecutive nulls. This is used
// after a PathNav mutation touches an array slot; it does not attempt to
// reproduce the original token boundaries, only a valid equivalent
// encoding (mutated arrays are not covered by the pristine round-trip
// guarantee, only by the idempotent-path property).
func rebuildArrayTokens(elements []Value) []arrayToken {
	tokens := make([]arrayToken, 0, len(elements))
	i := 0
	for i < len(elements) {
		if !elements[i].IsNull {
			tokens = append(tokens, arrayToken{Kind: tokenValue, Value: elements[i]})
			i++
			continue
		}
		run := 0
		for i+run < len(elements) && elements[i+run].IsNull {
			run++
		}
		if run == 1 {
			tokens = append(tokens, arrayToken{Kind: tokenNull})
		} else if run <= 255 {
			tokens = append(tokens, arrayToken{Kind: tokenNullRun8, Count: int32(run)})
		} else {
			tokens = append(tokens, arrayToken{Kind: tokenNullRun32, Count: int32(run)})
		}
		i += run
	}
	return tokens
}
