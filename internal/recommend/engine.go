// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/resonata/resonata/internal/catalog"
)

// MaxFavorites is the most seed songs one request may carry.
const MaxFavorites = 3

// ErrNoFavorites indicates every input favorite was dropped by validation.
var ErrNoFavorites = errors.New("recommend: no usable favorites")

// Placeholder destinations returned when a list would otherwise be empty.
const (
	exploreURL      = "https://open.spotify.com/explore"
	genreExploreURL = "https://open.spotify.com/genre"
)

func standardPlaceholder() Item {
	return Item{Label: "Explore Spotify", URL: exploreURL}
}

// Engine produces recommendations from resolved favorites. It is stateless
// across requests; all sampling is derived from the request itself so a
// repeated request reproduces its results within a UTC day.
type Engine struct {
	catalog Catalog
	cfg     Config
	logger  zerolog.Logger
	now     func() time.Time
}

// NewEngine validates cfg and builds an engine.
func NewEngine(cat Catalog, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if cat == nil {
		return nil, errors.New("recommend: nil catalog")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: config: %w", err)
	}
	return &Engine{
		catalog: cat,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// request is a Request with defaults applied and the market normalized.
type request struct {
	Request
	market string
}

func (e *Engine) normalize(req Request) request {
	out := request{Request: req}
	out.market = strings.ToUpper(strings.TrimSpace(req.Market))
	if out.market == "" {
		out.market = e.cfg.FallbackMarket
	}
	if out.MaxResults <= 0 {
		out.MaxResults = e.cfg.DefaultMaxResults
	}
	if out.TrackPopMax <= 0 {
		out.TrackPopMax = e.cfg.DefaultTrackPopMax
	}
	if out.PerBucket <= 0 {
		out.PerBucket = e.cfg.DefaultPerBucket
	}
	if out.MinArtists <= 0 {
		out.MinArtists = e.cfg.DefaultMinArtists
	}
	return out
}

// resolveAll validates and resolves the request's favorites. Favorites that
// fail validation or resolution are reported in dropped, never silently
// discarded.
func (e *Engine) resolveAll(ctx context.Context, req request) ([]Favorite, []ResolvedArtist, []DroppedFavorite, error) {
	favorites, dropped := ValidateFavorites(req.Favorites, MaxFavorites)
	if len(favorites) == 0 {
		return nil, nil, dropped, ErrNoFavorites
	}

	res := &resolver{catalog: e.catalog, cfg: e.cfg, logger: e.logger}
	resolved := make([]ResolvedArtist, 0, len(favorites))
	for _, f := range favorites {
		if ctx.Err() != nil {
			return nil, nil, nil, ctx.Err()
		}
		ra, ok := res.resolve(ctx, f)
		if !ok {
			dropped = append(dropped, DroppedFavorite{Favorite: f, Reason: "no confident catalog match"})
			continue
		}
		resolved = append(resolved, ra)
	}
	return favorites, resolved, dropped, nil
}

// topTracks fetches an artist's top tracks in the request market, retrying
// the fallback market when that market has none listed.
func (e *Engine) topTracks(ctx context.Context, market, id string, limit int) []catalog.Track {
	tracks, err := e.catalog.GetArtistTopTracksIn(ctx, market, id, limit)
	if err != nil {
		e.logger.Debug().Err(err).Str("artist_id", id).Msg("top tracks fetch failed")
		return nil
	}
	if len(tracks) == 0 && !strings.EqualFold(market, e.cfg.FallbackMarket) {
		tracks, err = e.catalog.GetArtistTopTracksIn(ctx, e.cfg.FallbackMarket, id, limit)
		if err != nil {
			e.logger.Debug().Err(err).Str("artist_id", id).Msg("fallback-market top tracks fetch failed")
			return nil
		}
	}
	return tracks
}

// trackItem formats a track recommendation.
func trackItem(t catalog.Track) Item {
	return Item{Label: t.Name + " — " + t.ArtistName, URL: t.URL}
}

// artistItem formats an artist recommendation, with an optional genre tag.
func artistItem(a catalog.Artist, genre string) Item {
	label := a.Name
	if genre != "" {
		label = fmt.Sprintf("%s (%s)", a.Name, genre)
	}
	return Item{Label: label, URL: a.URL}
}

// pairKey identifies a (title, artist) pair for exclusion checks.
func pairKey(title, artist string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x00" + strings.ToLower(strings.TrimSpace(artist))
}

// excludedPairs builds the set of (title, artist) pairs that must never be
// recommended back: the raw inputs and the tracks they resolved to.
func excludedPairs(favorites []Favorite, resolved []ResolvedArtist) map[string]struct{} {
	out := make(map[string]struct{}, len(favorites)+len(resolved))
	for _, f := range favorites {
		out[pairKey(f.Title, f.Artist)] = struct{}{}
	}
	for _, r := range resolved {
		out[pairKey(r.TrackName, r.Name)] = struct{}{}
	}
	return out
}

func isExcluded(excluded map[string]struct{}, t catalog.Track) bool {
	_, ok := excluded[pairKey(t.Name, t.ArtistName)]
	return ok
}

// shuffleTracks permutes a copy of tracks with the shared sampling rng.
func shuffleTracks(rng *rand.Rand, tracks []catalog.Track) []catalog.Track {
	out := make([]catalog.Track, len(tracks))
	copy(out, tracks)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func shuffleArtists(rng *rand.Rand, artists []catalog.Artist) []catalog.Artist {
	out := make([]catalog.Artist, len(artists))
	copy(out, artists)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// genreUnion collects the resolved artists' genre tags, deduplicated in
// first-appearance order.
func genreUnion(resolved []ResolvedArtist) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range resolved {
		for _, g := range r.Genres {
			g = strings.ToLower(strings.TrimSpace(g))
			if g == "" {
				continue
			}
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}

// Standard produces the standard-mode recommendation list: favorites' own
// top tracks interleaved with related-artist picks, genre backfill when the
// list runs short, then a date-stable shuffle, dedup, and cap.
func (e *Engine) Standard(ctx context.Context, raw Request) (*Result, error) {
	req := e.normalize(raw)
	favorites, resolved, dropped, err := e.resolveAll(ctx, req)
	if err != nil {
		return nil, err
	}

	rng := samplingRNG(req.RegenNonce)
	excluded := excludedPairs(favorites, resolved)

	// One list per favorite artist, from its own top tracks.
	var favLists [][]Item
	for _, r := range resolved {
		var items []Item
		for _, t := range e.topTracks(ctx, req.market, r.ID, e.cfg.TopTracksPerArtist) {
			if isExcluded(excluded, t) {
				continue
			}
			items = append(items, trackItem(t))
		}
		favLists = append(favLists, items)
	}

	// One list per sampled related artist.
	var relatedLists [][]Item
	for _, r := range resolved {
		related, err := e.catalog.GetRelatedArtists(ctx, r.ID)
		if err != nil {
			e.logger.Debug().Err(err).Str("artist", r.Name).Msg("related artists fetch failed")
			continue
		}
		related = shuffleArtists(rng, related)
		if n := e.cfg.RelatedArtistsPerFavorite; len(related) > n {
			related = related[:n]
		}
		for _, rel := range related {
			tracks := e.topTracks(ctx, req.market, rel.ID, e.cfg.RelatedTopTracks)
			var items []Item
			for _, t := range tracks {
				if isExcluded(excluded, t) {
					continue
				}
				items = append(items, trackItem(t))
			}
			if len(items) == 0 {
				items = []Item{artistItem(rel, "")}
			}
			relatedLists = append(relatedLists, items)
		}
	}

	merged := alternateMerge(interleave(favLists), interleave(relatedLists))

	// Genre backfill only steps in when the merge produced nothing at all;
	// a sparse-but-real result is returned as is.
	if len(merged) == 0 {
		merged = e.genreBackfill(ctx, rng, resolved, req.MaxResults)
	}

	salt := shuffleSalt(req.market, e.now(), favorites, req.RegenNonce)
	items := capItems(dedupeItems(stableShuffle(merged, salt)), req.MaxResults)
	if len(items) == 0 {
		items = []Item{standardPlaceholder()}
	}

	return &Result{
		Items:    items,
		Resolved: resolved,
		Dropped:  dropped,
		Market:   req.market,
	}, nil
}

// genreBackfill pads a short list with artists from the favorites' genres,
// or the default genre set when no favorite carries tags. Each genre
// contributes two or three artists, labeled with the genre.
func (e *Engine) genreBackfill(ctx context.Context, rng *rand.Rand, resolved []ResolvedArtist, want int) []Item {
	genres := genreUnion(resolved)
	if len(genres) == 0 {
		genres = e.cfg.DefaultGenres
	}

	var out []Item
	for _, genre := range genres {
		if len(out) >= want {
			break
		}
		artists, err := e.catalog.SearchArtistsByGenre(ctx, genre, e.cfg.ResolveSearchLimit, 0)
		if err != nil {
			e.logger.Debug().Err(err).Str("genre", genre).Msg("genre backfill search failed")
			continue
		}
		artists = shuffleArtists(rng, artists)
		take := 2 + rng.Intn(2)
		if take > len(artists) {
			take = len(artists)
		}
		for _, a := range artists[:take] {
			out = append(out, artistItem(a, genre))
		}
	}
	return out
}

// CollectGenres reports the genre tags behind a set of favorites: the
// resolved artists' own tags, backfilled from their related artists, then
// the default set when nothing else surfaces any.
func (e *Engine) CollectGenres(ctx context.Context, raw Request) (*GenresResult, error) {
	req := e.normalize(raw)
	_, resolved, dropped, err := e.resolveAll(ctx, req)
	if err != nil {
		return nil, err
	}

	genres := genreUnion(resolved)
	if len(genres) == 0 {
		genres = e.relatedGenres(ctx, resolved)
	}
	if len(genres) == 0 {
		genres = append([]string(nil), e.cfg.DefaultGenres...)
	}

	return &GenresResult{Genres: genres, Resolved: resolved, Dropped: dropped}, nil
}

// relatedGenres gathers genre tags from the resolved artists' related
// artists, deduplicated in first-appearance order.
func (e *Engine) relatedGenres(ctx context.Context, resolved []ResolvedArtist) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range resolved {
		related, err := e.catalog.GetRelatedArtists(ctx, r.ID)
		if err != nil {
			continue
		}
		for _, rel := range related {
			for _, g := range rel.Genres {
				g = strings.ToLower(strings.TrimSpace(g))
				if g == "" {
					continue
				}
				if _, ok := seen[g]; ok {
					continue
				}
				seen[g] = struct{}{}
				out = append(out, g)
			}
		}
	}
	return out
}
