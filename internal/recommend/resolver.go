// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/resonata/resonata/internal/catalog"
	"github.com/resonata/resonata/internal/textmatch"
)

// resolver maps a free-text favorite to a catalog track and artist identity.
// It runs a cascade of progressively looser searches and accepts the first
// stage yielding a candidate whose combined similarity clears the threshold.
type resolver struct {
	catalog Catalog
	cfg     Config
	logger  zerolog.Logger
}

// fallbackLimit is how many results the post-cascade fallback searches pull;
// only the first is taken.
const fallbackLimit = 3

// score combines per-field similarity into the acceptance score.
func (r *resolver) score(fav Favorite, t catalog.Track) float64 {
	artistSim := textmatch.Similarity(fav.Artist, t.ArtistName)
	titleSim := textmatch.Similarity(fav.Title, t.Name)
	return r.cfg.ArtistWeight*artistSim + r.cfg.TitleWeight*titleSim
}

// best returns the highest-scoring candidate at or above the threshold.
func (r *resolver) best(fav Favorite, candidates []catalog.Track) (catalog.Track, bool) {
	var (
		top      catalog.Track
		topScore = -1.0
	)
	for _, c := range candidates {
		if s := r.score(fav, c); s > topScore {
			top, topScore = c, s
		}
	}
	return top, topScore >= r.cfg.AcceptThreshold
}

// firstWord returns the first whitespace-separated token of s.
func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// resolve runs the cascade. A stage that errors is logged and skipped; the
// favorite is only reported unmatched when every stage is exhausted.
func (r *resolver) resolve(ctx context.Context, fav Favorite) (ResolvedArtist, bool) {
	limit := r.cfg.ResolveSearchLimit

	stages := []struct {
		name string
		run  func(context.Context) ([]catalog.Track, error)
	}{
		{"qualified", func(ctx context.Context) ([]catalog.Track, error) {
			return r.catalog.SearchTracks(ctx, fav.Title, fav.Artist, limit)
		}},
		{"free text", func(ctx context.Context) ([]catalog.Track, error) {
			return r.catalog.SearchTracksFree(ctx, strings.TrimSpace(fav.Title+" "+fav.Artist), limit)
		}},
		{"quoted phrase", func(ctx context.Context) ([]catalog.Track, error) {
			return r.catalog.SearchTracksPhrase(ctx, fav.Title, fav.Artist, limit)
		}},
		{"title only", func(ctx context.Context) ([]catalog.Track, error) {
			return r.catalog.SearchTracks(ctx, fav.Title, "", limit)
		}},
		{"artist only", func(ctx context.Context) ([]catalog.Track, error) {
			return r.catalog.SearchTracks(ctx, "", fav.Artist, limit)
		}},
		{"first words", func(ctx context.Context) ([]catalog.Track, error) {
			q := strings.TrimSpace(firstWord(fav.Title) + " " + firstWord(fav.Artist))
			return r.catalog.SearchTracksFree(ctx, q, limit)
		}},
	}

	for _, stage := range stages {
		candidates, err := stage.run(ctx)
		if err != nil {
			r.logger.Debug().Err(err).
				Str("stage", stage.name).
				Str("title", fav.Title).
				Str("artist", fav.Artist).
				Msg("resolver stage failed, trying next")
			continue
		}
		track, ok := r.best(fav, candidates)
		if !ok {
			continue
		}
		r.logger.Debug().
			Str("stage", stage.name).
			Str("title", fav.Title).
			Str("artist", fav.Artist).
			Str("matched", track.Name+" / "+track.ArtistName).
			Msg("favorite resolved")
		return r.enrich(ctx, track), true
	}

	// The scored cascade found nothing; fall back to a direct artist-name
	// search when an artist was supplied, taking the catalog's top hit
	// unconditionally.
	if strings.TrimSpace(fav.Artist) != "" {
		artists, err := r.catalog.SearchArtistsByName(ctx, fav.Artist, fallbackLimit)
		if err == nil && len(artists) > 0 {
			r.logger.Debug().
				Str("title", fav.Title).
				Str("artist", fav.Artist).
				Str("matched", artists[0].Name).
				Msg("favorite resolved via artist-name fallback")
			return r.enrichArtist(ctx, artists[0]), true
		}
	}

	// Title without artist: take the lead artist of the first title-only hit.
	if strings.TrimSpace(fav.Artist) == "" && strings.TrimSpace(fav.Title) != "" {
		tracks, err := r.catalog.SearchTracks(ctx, fav.Title, "", fallbackLimit)
		if err == nil && len(tracks) > 0 && tracks[0].ArtistID != "" {
			return r.enrich(ctx, tracks[0]), true
		}
	}

	r.logger.Info().
		Str("title", fav.Title).
		Str("artist", fav.Artist).
		Msg("favorite did not resolve")
	return ResolvedArtist{}, false
}

// enrich builds the resolved identity, fetching the artist's canonical
// record for its name and genre tags. A lookup failure falls back to the
// track's own artist fields.
func (r *resolver) enrich(ctx context.Context, track catalog.Track) ResolvedArtist {
	resolved := ResolvedArtist{
		ID:        track.ArtistID,
		Name:      track.ArtistName,
		TrackID:   track.ID,
		TrackName: track.Name,
		TrackURL:  track.URL,
	}

	artist, err := r.catalog.GetArtist(ctx, track.ArtistID)
	if err != nil {
		r.logger.Debug().Err(err).
			Str("artist_id", track.ArtistID).
			Msg("artist lookup failed, keeping track fields")
		return resolved
	}
	if artist.Name != "" {
		resolved.Name = artist.Name
	}
	resolved.Genres = artist.Genres
	resolved.Popularity = artist.Popularity
	return resolved
}

// enrichArtist builds the resolved identity from an artist search hit,
// refreshing it from the canonical record when the lookup succeeds. There is
// no matched track on this path.
func (r *resolver) enrichArtist(ctx context.Context, a catalog.Artist) ResolvedArtist {
	resolved := ResolvedArtist{
		ID:         a.ID,
		Name:       a.Name,
		Genres:     a.Genres,
		Popularity: a.Popularity,
	}

	full, err := r.catalog.GetArtist(ctx, a.ID)
	if err != nil {
		return resolved
	}
	if full.Name != "" {
		resolved.Name = full.Name
	}
	resolved.Genres = full.Genres
	resolved.Popularity = full.Popularity
	return resolved
}

// ValidateFavorites trims and filters the raw favorites: entries missing a
// title or artist and entries beyond the maximum are dropped with reasons.
// Each favorite is judged on its own; repeated pairs are kept, and the
// survivors keep their input order.
func ValidateFavorites(favorites []Favorite, max int) ([]Favorite, []DroppedFavorite) {
	var (
		valid   []Favorite
		dropped []DroppedFavorite
	)
	for _, f := range favorites {
		f.Title = strings.TrimSpace(f.Title)
		f.Artist = strings.TrimSpace(f.Artist)

		switch {
		case f.Title == "" && f.Artist == "":
			dropped = append(dropped, DroppedFavorite{Favorite: f, Reason: "empty title and artist"})
		case f.Title == "":
			dropped = append(dropped, DroppedFavorite{Favorite: f, Reason: "missing title"})
		case f.Artist == "":
			dropped = append(dropped, DroppedFavorite{Favorite: f, Reason: "missing artist"})
		case len(valid) >= max:
			dropped = append(dropped, DroppedFavorite{Favorite: f, Reason: "too many favorites"})
		default:
			valid = append(valid, f)
		}
	}
	return valid, dropped
}
