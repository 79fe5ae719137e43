// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package textmatch

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a token-order-insensitive similarity ratio between two
// strings on a 0-100 scale. Both inputs are normalized, tokenized, and the
// tokens sorted before a Levenshtein ratio is computed, so
// "the weeknd" vs "weeknd the" scores 100.
//
// 100 means identical after normalization; 0 means nothing in common.
func Similarity(a, b string) float64 {
	sa := tokenSort(Normalize(a))
	sb := tokenSort(Normalize(b))

	if sa == sb {
		return 100.0
	}
	if sa == "" || sb == "" {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(sa, sb)
	longest := len([]rune(sa))
	if l := len([]rune(sb)); l > longest {
		longest = l
	}

	return 100.0 * (1.0 - float64(dist)/float64(longest))
}

// tokenSort sorts the whitespace-separated tokens of an already-normalized
// string, making the comparison insensitive to word order.
func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
