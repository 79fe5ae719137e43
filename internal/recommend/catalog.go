// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"context"

	"github.com/resonata/resonata/internal/catalog"
)

// Catalog is the music-catalog surface the engine depends on. The production
// implementation is catalog.Client; tests substitute an in-memory fake.
type Catalog interface {
	// SearchTracks runs a field-qualified track search (quoted, then loose
	// on empty).
	SearchTracks(ctx context.Context, title, artist string, limit int) ([]catalog.Track, error)

	// SearchTracksPhrase runs the strict quoted form only.
	SearchTracksPhrase(ctx context.Context, title, artist string, limit int) ([]catalog.Track, error)

	// SearchTracksFree runs a free-text track search.
	SearchTracksFree(ctx context.Context, query string, limit int) ([]catalog.Track, error)

	// SearchArtistsByName runs a free-text artist search.
	SearchArtistsByName(ctx context.Context, name string, limit int) ([]catalog.Artist, error)

	// SearchArtistsByGenre searches artists carrying a genre tag.
	SearchArtistsByGenre(ctx context.Context, genre string, limit, offset int) ([]catalog.Artist, error)

	// GetArtist fetches an artist's canonical record.
	GetArtist(ctx context.Context, id string) (catalog.Artist, error)

	// GetArtistTopTracks fetches top tracks in the default market;
	// GetArtistTopTracksIn in an explicit one.
	GetArtistTopTracks(ctx context.Context, id string, limit int) ([]catalog.Track, error)
	GetArtistTopTracksIn(ctx context.Context, market, id string, limit int) ([]catalog.Track, error)

	// GetRelatedArtists fetches artists related to the given one.
	GetRelatedArtists(ctx context.Context, id string) ([]catalog.Artist, error)
}
