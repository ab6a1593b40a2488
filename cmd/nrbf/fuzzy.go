// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"sort"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fuzzyRank scores each candidate against pattern using fzf's V2
// algorithm and returns the candidates that matched at all, ordered
// best match first. An empty pattern matches everything in its
// original order.
func fuzzyRank(candidates []string, pattern string) []string {
	if pattern == "" {
		return candidates
	}

	runes := []rune(pattern)
	slab := util.MakeSlab(slabSize16, slabSize32)

	type scored struct {
		text  string
		score int
	}
	var matches []scored
	for _, candidate := range candidates {
		chars := util.RunesToChars([]rune(candidate))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, runes, false, slab)
		if result.Start < 0 {
			continue
		}
		matches = append(matches, scored{text: candidate, score: result.Score})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.text
	}
	return out
}

// slabSize16 and slabSize32 mirror fzf's own default scratch-buffer
// sizes for the algorithm's internal dynamic-programming table.
const (
	slabSize16 = 100 * 1024
	slabSize32 = 2048
)
