// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestFuzzyRankEmptyPatternPreservesOrder(t *testing.T) {
	in := []string{"Header.Name", "Header.Count", "Items[0]"}
	out := fuzzyRank(in, "")
	if len(out) != len(in) {
		t.Fatalf("got %d results, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %q, want %q (order should be unchanged for an empty pattern)", i, out[i], in[i])
		}
	}
}

func TestFuzzyRankFiltersNonMatches(t *testing.T) {
	candidates := []string{"Header.Name", "Header.Count", "Items[0].Value"}
	out := fuzzyRank(candidates, "hcnt")
	found := false
	for _, s := range out {
		if s == "Header.Count" {
			found = true
		}
		if s == "Items[0].Value" {
			t.Fatalf("Items[0].Value should not fuzzy-match pattern %q", "hcnt")
		}
	}
	if !found {
		t.Fatal("expected Header.Count to fuzzy-match \"hcnt\"")
	}
}
