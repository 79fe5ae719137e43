// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

// interleave merges per-source item lists round-robin: one item from each
// non-exhausted source per pass, in source order, until all are drained.
// Relative order within each source is preserved.
func interleave(sources [][]Item) []Item {
	total := 0
	for _, s := range sources {
		total += len(s)
	}
	out := make([]Item, 0, total)
	for i := 0; len(out) < total; i++ {
		for _, s := range sources {
			if i < len(s) {
				out = append(out, s[i])
			}
		}
	}
	return out
}

// alternateMerge zips two lists starting with a, appending the remainder of
// the longer list.
func alternateMerge(a, b []Item) []Item {
	out := make([]Item, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}

// dedupeItems drops items whose label matches an earlier one, compared
// trimmed and case-folded. First occurrence wins.
func dedupeItems(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, it := range items {
		k := itemKey(it.Label)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// capItems truncates to at most n items; n <= 0 means no cap.
func capItems(items []Item, n int) []Item {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
