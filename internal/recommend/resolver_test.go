// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/resonata/resonata/internal/catalog"
)

func newResolver(fc *fakeCatalog) *resolver {
	return &resolver{catalog: fc, cfg: DefaultConfig(), logger: zerolog.Nop()}
}

func TestResolveQualifiedSearch(t *testing.T) {
	t.Parallel()

	fc := &fakeCatalog{
		searchTracks: func(title, artist string, _ int) ([]catalog.Track, error) {
			if title == "Halo" && artist == "Beyonce" {
				return []catalog.Track{
					track("t2", "Halo (Live)", "a9", "Tribute Band", 10),
					track("t1", "Halo", "a1", "Beyoncé", 80),
				}, nil
			}
			return nil, nil
		},
		getArtist: func(id string) (catalog.Artist, error) {
			if id != "a1" {
				t.Errorf("GetArtist(%q), want a1", id)
			}
			return artist("a1", "Beyoncé", 90, "pop", "r&b"), nil
		},
	}

	got, ok := newResolver(fc).resolve(context.Background(), Favorite{Title: "Halo", Artist: "Beyonce"})
	if !ok {
		t.Fatal("resolve() reported no match")
	}
	if got.ID != "a1" || got.TrackID != "t1" {
		t.Errorf("matched %+v, want artist a1 track t1", got)
	}
	if got.Name != "Beyoncé" {
		t.Errorf("Name = %q, want canonical Beyoncé", got.Name)
	}
	if !reflect.DeepEqual(got.Genres, []string{"pop", "r&b"}) {
		t.Errorf("Genres = %v", got.Genres)
	}
}

func TestResolveFallsThroughToFreeText(t *testing.T) {
	t.Parallel()

	var freeQueries []string
	fc := &fakeCatalog{
		searchTracksFree: func(query string, _ int) ([]catalog.Track, error) {
			freeQueries = append(freeQueries, query)
			return []catalog.Track{track("t1", "Oblivion", "a1", "Grimes", 60)}, nil
		},
	}

	got, ok := newResolver(fc).resolve(context.Background(), Favorite{Title: "Oblivion", Artist: "Grimes"})
	if !ok {
		t.Fatal("resolve() reported no match")
	}
	if got.TrackID != "t1" {
		t.Errorf("matched track %q, want t1", got.TrackID)
	}
	if len(freeQueries) == 0 || freeQueries[0] != "Oblivion Grimes" {
		t.Errorf("free-text queries = %v, want first \"Oblivion Grimes\"", freeQueries)
	}
}

func TestResolveRejectsBelowThreshold(t *testing.T) {
	t.Parallel()

	// Every stage returns only a completely unrelated track.
	junk := []catalog.Track{track("tX", "Something Else Entirely", "aX", "Nobody Here", 50)}
	fc := &fakeCatalog{
		searchTracks:       func(string, string, int) ([]catalog.Track, error) { return junk, nil },
		searchTracksPhrase: func(string, string, int) ([]catalog.Track, error) { return junk, nil },
		searchTracksFree:   func(string, int) ([]catalog.Track, error) { return junk, nil },
	}

	if _, ok := newResolver(fc).resolve(context.Background(), Favorite{Title: "Halo", Artist: "Beyonce"}); ok {
		t.Error("resolve() accepted a match far below the threshold")
	}
}

func TestResolveSurvivesStageErrors(t *testing.T) {
	t.Parallel()

	fc := &fakeCatalog{
		searchTracks: func(string, string, int) ([]catalog.Track, error) {
			return nil, errors.New("upstream unavailable")
		},
		searchTracksFree: func(string, int) ([]catalog.Track, error) {
			return []catalog.Track{track("t1", "Halo", "a1", "Beyonce", 80)}, nil
		},
	}

	got, ok := newResolver(fc).resolve(context.Background(), Favorite{Title: "Halo", Artist: "Beyonce"})
	if !ok {
		t.Fatal("resolve() gave up after a recoverable stage error")
	}
	if got.TrackID != "t1" {
		t.Errorf("matched track %q, want t1", got.TrackID)
	}
}

func TestResolveArtistNameFallback(t *testing.T) {
	t.Parallel()

	// Every track search comes up empty, so no cascade stage can clear the
	// threshold. A direct artist-name search still resolves the favorite,
	// and the result carries no matched track.
	fc := &fakeCatalog{
		searchArtistsByName: func(name string, _ int) ([]catalog.Artist, error) {
			if name != "The Weeknd" {
				t.Errorf("SearchArtistsByName(%q), want The Weeknd", name)
			}
			return []catalog.Artist{artist("a9", "The Weeknd", 95, "pop")}, nil
		},
		getArtist: func(id string) (catalog.Artist, error) {
			return artist("a9", "The Weeknd", 95, "pop"), nil
		},
	}

	got, ok := newResolver(fc).resolve(context.Background(), Favorite{
		Title:  "totallymisspelledtitlezzz",
		Artist: "The Weeknd",
	})
	if !ok {
		t.Fatal("resolve() reported no match")
	}
	if got.ID != "a9" || got.Name != "The Weeknd" {
		t.Errorf("matched %+v, want artist a9 The Weeknd", got)
	}
	if got.TrackID != "" || got.TrackName != "" {
		t.Errorf("TrackID = %q TrackName = %q, want empty on the artist path", got.TrackID, got.TrackName)
	}
}

func TestResolveArtistNameFallbackTakesTopHit(t *testing.T) {
	t.Parallel()

	// The fallback takes the catalog's first hit as is, even when a later
	// hit matches the query text more closely.
	fc := &fakeCatalog{
		searchArtistsByName: func(string, int) ([]catalog.Artist, error) {
			return []catalog.Artist{
				artist("a2", "Grimes Tribute Act", 20),
				artist("a1", "Grimes", 75, "art pop"),
			}, nil
		},
		getArtist: func(id string) (catalog.Artist, error) {
			if id == "a2" {
				return artist("a2", "Grimes Tribute Act", 20), nil
			}
			return artist("a1", "Grimes", 75, "art pop"), nil
		},
	}

	got, ok := newResolver(fc).resolve(context.Background(), Favorite{Title: "Genesis", Artist: "Grimes"})
	if !ok {
		t.Fatal("resolve() reported no match")
	}
	if got.ID != "a2" {
		t.Errorf("matched %q, want the first hit a2", got.ID)
	}
}

func TestResolveTitleOnlyFallback(t *testing.T) {
	t.Parallel()

	// No artist was supplied, so every candidate scores below the
	// threshold. The lead artist of the first title hit is taken anyway.
	fc := &fakeCatalog{
		searchTracks: func(title, artistFilter string, _ int) ([]catalog.Track, error) {
			if title == "Oblivion" && artistFilter == "" {
				return []catalog.Track{track("t2", "Oblivion", "a2", "Grimes", 70)}, nil
			}
			return nil, nil
		},
		getArtist: func(string) (catalog.Artist, error) {
			return artist("a2", "Grimes", 75, "art pop"), nil
		},
	}

	got, ok := newResolver(fc).resolve(context.Background(), Favorite{Title: "Oblivion"})
	if !ok {
		t.Fatal("resolve() reported no match")
	}
	if got.ID != "a2" || got.Name != "Grimes" {
		t.Errorf("matched %+v, want the title hit's lead artist", got)
	}
	if got.TrackID != "t2" {
		t.Errorf("TrackID = %q, want t2", got.TrackID)
	}
}

func TestResolveKeepsTrackFieldsWhenArtistLookupFails(t *testing.T) {
	t.Parallel()

	fc := &fakeCatalog{
		searchTracks: func(string, string, int) ([]catalog.Track, error) {
			return []catalog.Track{track("t1", "Halo", "a1", "Beyonce", 80)}, nil
		},
		getArtist: func(string) (catalog.Artist, error) {
			return catalog.Artist{}, errors.New("not found")
		},
	}

	got, ok := newResolver(fc).resolve(context.Background(), Favorite{Title: "Halo", Artist: "Beyonce"})
	if !ok {
		t.Fatal("resolve() reported no match")
	}
	if got.Name != "Beyonce" {
		t.Errorf("Name = %q, want track artist name", got.Name)
	}
	if got.Genres != nil {
		t.Errorf("Genres = %v, want nil", got.Genres)
	}
}

func TestValidateFavorites(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		in          []Favorite
		wantValid   int
		wantDropped []string
	}{
		{
			name:      "all valid",
			in:        []Favorite{{Title: "A", Artist: "X"}, {Title: "B", Artist: "Y"}},
			wantValid: 2,
		},
		{
			name:        "blank dropped",
			in:          []Favorite{{Title: "  ", Artist: ""}, {Title: "A", Artist: "X"}},
			wantValid:   1,
			wantDropped: []string{"empty title and artist"},
		},
		{
			name:        "missing artist dropped",
			in:          []Favorite{{Title: "A"}, {Artist: "X"}},
			wantValid:   0,
			wantDropped: []string{"missing artist", "missing title"},
		},
		{
			name: "over limit dropped",
			in: []Favorite{
				{Title: "A", Artist: "W"}, {Title: "B", Artist: "X"},
				{Title: "C", Artist: "Y"}, {Title: "D", Artist: "Z"},
			},
			wantValid:   3,
			wantDropped: []string{"too many favorites"},
		},
		{
			name:      "repeated pair kept",
			in:        []Favorite{{Title: "Halo", Artist: "Beyoncé"}, {Title: "Halo", Artist: "Beyoncé"}},
			wantValid: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, dropped := ValidateFavorites(tt.in, MaxFavorites)
			if len(valid) != tt.wantValid {
				t.Errorf("valid = %d, want %d", len(valid), tt.wantValid)
			}
			var reasons []string
			for _, d := range dropped {
				reasons = append(reasons, d.Reason)
			}
			if !reflect.DeepEqual(reasons, tt.wantDropped) {
				t.Errorf("dropped reasons = %v, want %v", reasons, tt.wantDropped)
			}
		})
	}
}
