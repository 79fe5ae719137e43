// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import "fmt"

// Config holds the engine's tuning parameters.
type Config struct {
	// AcceptThreshold is the minimum combined similarity score for a search
	// candidate to be accepted as a favorite's match.
	AcceptThreshold float64 `koanf:"accept_threshold" validate:"gte=0,lte=100"`

	// ArtistWeight and TitleWeight combine the per-field similarity scores.
	// They must sum to 1.
	ArtistWeight float64 `koanf:"artist_weight" validate:"gte=0,lte=1"`
	TitleWeight  float64 `koanf:"title_weight" validate:"gte=0,lte=1"`

	// ResolveSearchLimit is how many candidates each resolver search pulls.
	ResolveSearchLimit int `koanf:"resolve_search_limit" validate:"min=1,max=50"`

	// TopTracksPerArtist is how many top tracks to consider per favorite
	// artist in standard mode and hidden gems.
	TopTracksPerArtist int `koanf:"top_tracks_per_artist" validate:"min=1,max=10"`

	// RelatedArtistsPerFavorite is how many related artists to sample per
	// favorite artist.
	RelatedArtistsPerFavorite int `koanf:"related_artists_per_favorite" validate:"min=1,max=20"`

	// RelatedTopTracks is how many top tracks to pull per related artist.
	RelatedTopTracks int `koanf:"related_top_tracks" validate:"min=1,max=10"`

	// FallbackMarket is retried when an artist has no top tracks in the
	// request market.
	FallbackMarket string `koanf:"fallback_market" validate:"len=2,alpha"`

	// Request defaults, applied when the request leaves a field zero.
	DefaultMaxResults  int `koanf:"default_max_results" validate:"min=1"`
	DefaultTrackPopMax int `koanf:"default_track_pop_max" validate:"min=0,max=100"`
	DefaultPerBucket   int `koanf:"default_per_bucket" validate:"min=1"`
	DefaultMinArtists  int `koanf:"default_min_artists" validate:"min=1"`

	// MaxGenres caps how many genres the genre-driven buckets scan.
	MaxGenres int `koanf:"max_genres" validate:"min=1,max=10"`

	// GenreTrackCap bounds tracks taken from a single genre; GenreScanCap
	// bounds the total gathered before interleaving.
	GenreTrackCap int `koanf:"genre_track_cap" validate:"min=1"`
	GenreScanCap  int `koanf:"genre_scan_cap" validate:"min=1"`

	// DefaultGenres seeds standard-mode backfill when favorite artists carry
	// no genre tags. FallbackGenrePool does the same for the niche buckets.
	DefaultGenres     []string `koanf:"default_genres"`
	FallbackGenrePool []string `koanf:"fallback_genre_pool"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		AcceptThreshold:           72.0,
		ArtistWeight:              0.6,
		TitleWeight:               0.4,
		ResolveSearchLimit:        10,
		TopTracksPerArtist:        10,
		RelatedArtistsPerFavorite: 3,
		RelatedTopTracks:          5,
		FallbackMarket:            "US",
		DefaultMaxResults:         3,
		DefaultTrackPopMax:        35,
		DefaultPerBucket:          5,
		DefaultMinArtists:         2,
		MaxGenres:                 3,
		GenreTrackCap:             8,
		GenreScanCap:              12,
		DefaultGenres:             []string{"indie", "electronic", "hip hop", "latin", "pop"},
		FallbackGenrePool: []string{
			"indie", "alternative", "singer-songwriter", "electronic",
			"hip hop", "afrobeats", "latin",
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.AcceptThreshold < 0 || c.AcceptThreshold > 100 {
		return fmt.Errorf("accept_threshold must be in [0,100], got %v", c.AcceptThreshold)
	}
	if sum := c.ArtistWeight + c.TitleWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("artist_weight and title_weight must sum to 1, got %v", sum)
	}
	if c.ResolveSearchLimit < 1 {
		return fmt.Errorf("resolve_search_limit must be positive, got %d", c.ResolveSearchLimit)
	}
	if c.TopTracksPerArtist < 1 {
		return fmt.Errorf("top_tracks_per_artist must be positive, got %d", c.TopTracksPerArtist)
	}
	if len(c.FallbackMarket) != 2 {
		return fmt.Errorf("fallback_market must be a two-letter code, got %q", c.FallbackMarket)
	}
	if c.DefaultMaxResults < 1 || c.DefaultPerBucket < 1 || c.DefaultMinArtists < 1 {
		return fmt.Errorf("request defaults must be positive")
	}
	if c.MaxGenres < 1 {
		return fmt.Errorf("max_genres must be positive, got %d", c.MaxGenres)
	}
	return nil
}
