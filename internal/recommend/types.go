// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import "strings"

// Favorite is one user-provided song: a free-text title and artist pair.
type Favorite struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// DroppedFavorite records an input favorite that could not be used, with a
// human-readable reason surfaced in API responses.
type DroppedFavorite struct {
	Favorite Favorite `json:"favorite"`
	Reason   string   `json:"reason"`
}

// ResolvedArtist is the catalog identity a favorite resolved to: the
// canonical artist record plus the matched track.
type ResolvedArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	TrackID    string   `json:"track_id"`
	TrackName  string   `json:"track_name"`
	TrackURL   string   `json:"track_url"`
	Popularity int      `json:"popularity"`
}

// Item is one recommendation: a display label and a deep link. Track items
// are labeled "Name — Artist"; artist items carry the artist name, with a
// "(genre)" suffix where the genre motivated the pick.
type Item struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// itemKey is the identity used for deduplication: the label, trimmed and
// case-folded.
func itemKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Niche bucket names, in presentation order.
const (
	BucketHiddenGems  = "Hidden gems from your favorite artists"
	BucketMayKnow     = "Artists you may know"
	BucketDiscover    = "Discover"
	BucketGenreTracks = "Songs from your genres (not your input artists)"
	BucketRisingStars = "Rising stars in your genres"
)

// BucketNames returns the niche bucket names in presentation order.
func BucketNames() []string {
	return []string{
		BucketHiddenGems,
		BucketMayKnow,
		BucketDiscover,
		BucketGenreTracks,
		BucketRisingStars,
	}
}

// Request is one recommendation invocation. Zero-valued tuning fields fall
// back to the engine's configured defaults.
type Request struct {
	// Favorites are the seed songs, at most MaxFavorites after validation.
	Favorites []Favorite `json:"favorites" validate:"required,min=1,max=3"`

	// Market overrides the catalog client's region for this request.
	Market string `json:"market,omitempty" validate:"omitempty,len=2,alpha"`

	// MaxResults caps the standard-mode list. Default 3.
	MaxResults int `json:"max_results,omitempty" validate:"omitempty,min=1,max=50"`

	// TrackPopMax is the hidden-gems popularity ceiling. Default 35.
	TrackPopMax int `json:"track_pop_max,omitempty" validate:"omitempty,min=0,max=100"`

	// PerBucket caps each niche bucket. Default 5; effective floor 2.
	PerBucket int `json:"per_bucket,omitempty" validate:"omitempty,min=1,max=25"`

	// MinArtists is the minimum artist pool for the may-know and discover
	// split. Default 2.
	MinArtists int `json:"min_artists,omitempty" validate:"omitempty,min=1,max=20"`

	// RegenNonce varies the deterministic shuffle so a user can ask for a
	// different arrangement of the same day's results.
	RegenNonce uint32 `json:"regenerate,omitempty"`
}

// Result is a standard-mode recommendation response.
type Result struct {
	Items    []Item            `json:"items"`
	Resolved []ResolvedArtist  `json:"resolved"`
	Dropped  []DroppedFavorite `json:"dropped,omitempty"`
	Market   string            `json:"market"`
}

// BucketResult is a niche-mode recommendation response: named buckets in
// presentation order.
type BucketResult struct {
	Buckets  map[string][]Item `json:"buckets"`
	Order    []string          `json:"order"`
	Resolved []ResolvedArtist  `json:"resolved"`
	Dropped  []DroppedFavorite `json:"dropped,omitempty"`
	Market   string            `json:"market"`
}

// GenresResult is the genre-collection response.
type GenresResult struct {
	Genres   []string          `json:"genres"`
	Resolved []ResolvedArtist  `json:"resolved"`
	Dropped  []DroppedFavorite `json:"dropped,omitempty"`
}
