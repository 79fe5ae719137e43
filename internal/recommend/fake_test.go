// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"context"

	"github.com/resonata/resonata/internal/catalog"
)

// fakeCatalog implements Catalog from function fields. Unset fields return
// empty results, matching a catalog that has nothing to offer.
type fakeCatalog struct {
	searchTracks        func(title, artist string, limit int) ([]catalog.Track, error)
	searchTracksPhrase  func(title, artist string, limit int) ([]catalog.Track, error)
	searchTracksFree    func(query string, limit int) ([]catalog.Track, error)
	searchArtistsByName func(name string, limit int) ([]catalog.Artist, error)
	searchArtistsGenre  func(genre string, limit, offset int) ([]catalog.Artist, error)
	getArtist           func(id string) (catalog.Artist, error)
	getTopTracks        func(market, id string, limit int) ([]catalog.Track, error)
	getRelatedArtists   func(id string) ([]catalog.Artist, error)
}

func (f *fakeCatalog) SearchTracks(_ context.Context, title, artist string, limit int) ([]catalog.Track, error) {
	if f.searchTracks == nil {
		return nil, nil
	}
	return f.searchTracks(title, artist, limit)
}

func (f *fakeCatalog) SearchTracksPhrase(_ context.Context, title, artist string, limit int) ([]catalog.Track, error) {
	if f.searchTracksPhrase == nil {
		return nil, nil
	}
	return f.searchTracksPhrase(title, artist, limit)
}

func (f *fakeCatalog) SearchTracksFree(_ context.Context, query string, limit int) ([]catalog.Track, error) {
	if f.searchTracksFree == nil {
		return nil, nil
	}
	return f.searchTracksFree(query, limit)
}

func (f *fakeCatalog) SearchArtistsByName(_ context.Context, name string, limit int) ([]catalog.Artist, error) {
	if f.searchArtistsByName == nil {
		return nil, nil
	}
	return f.searchArtistsByName(name, limit)
}

func (f *fakeCatalog) SearchArtistsByGenre(_ context.Context, genre string, limit, offset int) ([]catalog.Artist, error) {
	if f.searchArtistsGenre == nil {
		return nil, nil
	}
	return f.searchArtistsGenre(genre, limit, offset)
}

func (f *fakeCatalog) GetArtist(_ context.Context, id string) (catalog.Artist, error) {
	if f.getArtist == nil {
		return catalog.Artist{}, nil
	}
	return f.getArtist(id)
}

func (f *fakeCatalog) GetArtistTopTracks(ctx context.Context, id string, limit int) ([]catalog.Track, error) {
	return f.GetArtistTopTracksIn(ctx, "US", id, limit)
}

func (f *fakeCatalog) GetArtistTopTracksIn(_ context.Context, market, id string, limit int) ([]catalog.Track, error) {
	if f.getTopTracks == nil {
		return nil, nil
	}
	return f.getTopTracks(market, id, limit)
}

func (f *fakeCatalog) GetRelatedArtists(_ context.Context, id string) ([]catalog.Artist, error) {
	if f.getRelatedArtists == nil {
		return nil, nil
	}
	return f.getRelatedArtists(id)
}

// track builds a test track with a deterministic deep link.
func track(id, name, artistID, artistName string, popularity int) catalog.Track {
	return catalog.Track{
		ID:         id,
		Name:       name,
		ArtistID:   artistID,
		ArtistName: artistName,
		URL:        "https://open.spotify.com/track/" + id,
		Popularity: popularity,
	}
}

// artist builds a test artist with a deterministic deep link.
func artist(id, name string, popularity int, genres ...string) catalog.Artist {
	return catalog.Artist{
		ID:         id,
		Name:       name,
		Genres:     genres,
		Popularity: popularity,
		URL:        "https://open.spotify.com/artist/" + id,
	}
}
