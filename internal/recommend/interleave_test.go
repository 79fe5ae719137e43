// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"reflect"
	"testing"
)

func items(labels ...string) []Item {
	out := make([]Item, len(labels))
	for i, l := range labels {
		out[i] = Item{Label: l, URL: "https://example.com/" + l}
	}
	return out
}

func labels(its []Item) []string {
	out := make([]string, len(its))
	for i, it := range its {
		out[i] = it.Label
	}
	return out
}

func TestInterleave(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sources [][]Item
		want    []string
	}{
		{
			name:    "equal lengths round-robin",
			sources: [][]Item{items("a1", "a2"), items("b1", "b2")},
			want:    []string{"a1", "b1", "a2", "b2"},
		},
		{
			name:    "uneven lengths drain longer",
			sources: [][]Item{items("a1"), items("b1", "b2", "b3")},
			want:    []string{"a1", "b1", "b2", "b3"},
		},
		{
			name:    "empty source skipped",
			sources: [][]Item{items("a1", "a2"), nil, items("c1")},
			want:    []string{"a1", "c1", "a2"},
		},
		{
			name:    "no sources",
			sources: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := labels(interleave(tt.sources))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("interleave() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlternateMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []Item
		want []string
	}{
		{
			name: "a leads",
			a:    items("a1", "a2"),
			b:    items("b1", "b2"),
			want: []string{"a1", "b1", "a2", "b2"},
		},
		{
			name: "b longer",
			a:    items("a1"),
			b:    items("b1", "b2", "b3"),
			want: []string{"a1", "b1", "b2", "b3"},
		},
		{
			name: "a empty",
			a:    nil,
			b:    items("b1"),
			want: []string{"b1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := labels(alternateMerge(tt.a, tt.b))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("alternateMerge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupeItems(t *testing.T) {
	t.Parallel()

	in := []Item{
		{Label: "Halo — Beyoncé", URL: "u1"},
		{Label: "halo — beyoncé", URL: "u2"},
		{Label: "  Halo — Beyoncé  ", URL: "u3"},
		{Label: "Other", URL: "u4"},
	}
	got := dedupeItems(in)
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2: %v", len(got), got)
	}
	// First occurrence wins.
	if got[0].URL != "u1" || got[1].URL != "u4" {
		t.Errorf("unexpected survivors: %v", got)
	}
}

func TestCapItems(t *testing.T) {
	t.Parallel()

	in := items("a", "b", "c")
	if got := capItems(in, 2); len(got) != 2 {
		t.Errorf("capItems(3, 2) len = %d, want 2", len(got))
	}
	if got := capItems(in, 5); len(got) != 3 {
		t.Errorf("capItems(3, 5) len = %d, want 3", len(got))
	}
	if got := capItems(in, 0); len(got) != 3 {
		t.Errorf("capItems(3, 0) len = %d, want 3 (no cap)", len(got))
	}
}
