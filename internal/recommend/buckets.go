// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"context"
	"math/rand"
	"strings"

	"github.com/resonata/resonata/internal/catalog"
)

// Popularity at or above this splits "Artists you may know" from "Discover".
const mayKnowPopularity = 60

// discoverFloor is the minimum number of entries the Discover bucket is
// padded to before capping.
const discoverFloor = 2

func trackPlaceholder() Item {
	return Item{Label: "Discover on Spotify", URL: exploreURL}
}

func artistPlaceholder() Item {
	return Item{Label: "Explore artists", URL: genreExploreURL}
}

// orPlaceholder substitutes a placeholder entry for an empty bucket.
func orPlaceholder(items []Item, placeholder Item) []Item {
	if len(items) == 0 {
		return []Item{placeholder}
	}
	return items
}

// NicheBuckets produces the niche-mode response: five named buckets built
// from one shared sampling generator so the whole response is reproducible
// for a given nonce.
func (e *Engine) NicheBuckets(ctx context.Context, raw Request) (*BucketResult, error) {
	req := e.normalize(raw)
	favorites, resolved, dropped, err := e.resolveAll(ctx, req)
	if err != nil {
		return nil, err
	}

	rng := samplingRNG(req.RegenNonce)
	excluded := excludedPairs(favorites, resolved)
	bucketCap := req.PerBucket
	if bucketCap < 2 {
		bucketCap = 2
	}

	genres := e.bucketGenres(ctx, resolved)

	buckets := map[string][]Item{
		BucketHiddenGems: orPlaceholder(
			e.hiddenGems(ctx, rng, req, resolved, excluded, bucketCap), trackPlaceholder()),
	}

	mayKnow, discover := e.artistSplit(ctx, rng, req, resolved, genres)
	buckets[BucketMayKnow] = orPlaceholder(capItems(mayKnow, bucketCap), artistPlaceholder())
	buckets[BucketDiscover] = orPlaceholder(capItems(discover, bucketCap), artistPlaceholder())

	buckets[BucketGenreTracks] = orPlaceholder(
		e.genreTracks(ctx, rng, req, resolved, excluded, genres, bucketCap), trackPlaceholder())

	risingCap := req.PerBucket
	if risingCap < req.MinArtists {
		risingCap = req.MinArtists
	}
	buckets[BucketRisingStars] = orPlaceholder(
		e.risingStars(ctx, rng, resolved, genres, risingCap), artistPlaceholder())

	return &BucketResult{
		Buckets:  buckets,
		Order:    BucketNames(),
		Resolved: resolved,
		Dropped:  dropped,
		Market:   req.market,
	}, nil
}

// bucketGenres picks the genres the genre-driven buckets scan: the
// favorites' own tags, backfilled from related artists, then the fixed
// fallback pool, capped at the configured maximum.
func (e *Engine) bucketGenres(ctx context.Context, resolved []ResolvedArtist) []string {
	genres := genreUnion(resolved)
	if len(genres) == 0 {
		genres = e.relatedGenres(ctx, resolved)
	}
	if len(genres) == 0 {
		genres = append([]string(nil), e.cfg.FallbackGenrePool...)
	}
	if len(genres) > e.cfg.MaxGenres {
		genres = genres[:e.cfg.MaxGenres]
	}
	return genres
}

// hiddenGems collects each favorite artist's least-popular top tracks:
// tracks at or under the popularity ceiling, falling back to the full top
// list when an artist has nothing under it. Per-artist lists are
// interleaved so every favorite is represented before any repeats.
func (e *Engine) hiddenGems(ctx context.Context, rng *rand.Rand, req request, resolved []ResolvedArtist, excluded map[string]struct{}, bucketCap int) []Item {
	var lists [][]Item
	for _, r := range resolved {
		top := shuffleTracks(rng, e.topTracks(ctx, req.market, r.ID, e.cfg.TopTracksPerArtist))

		var quiet, all []Item
		for _, t := range top {
			if isExcluded(excluded, t) {
				continue
			}
			it := trackItem(t)
			all = append(all, it)
			if t.Popularity <= req.TrackPopMax {
				quiet = append(quiet, it)
			}
		}
		if len(quiet) == 0 {
			quiet = all
		}
		lists = append(lists, quiet)
	}
	return capItems(dedupeItems(interleave(lists)), bucketCap)
}

// artistSplit builds the may-know and discover pools from related artists,
// backfilling from genre searches when the pool is thin, then splits on
// popularity. Input artists never appear in either bucket.
func (e *Engine) artistSplit(ctx context.Context, rng *rand.Rand, req request, resolved []ResolvedArtist, genres []string) (mayKnow, discover []Item) {
	inputNames := make(map[string]struct{}, len(resolved))
	for _, r := range resolved {
		inputNames[strings.ToLower(r.Name)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var pool []catalog.Artist
	add := func(a catalog.Artist) {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if key == "" {
			return
		}
		if _, ok := inputNames[key]; ok {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		pool = append(pool, a)
	}

	for _, r := range resolved {
		related, err := e.catalog.GetRelatedArtists(ctx, r.ID)
		if err != nil {
			e.logger.Debug().Err(err).Str("artist", r.Name).Msg("related artists fetch failed")
			continue
		}
		// Shuffled per favorite so the regenerate counter varies which
		// artists survive the bucket caps.
		for _, a := range shuffleArtists(rng, related) {
			add(a)
		}
	}

	if len(pool) < req.MinArtists {
		searchGenres := genres
		if len(searchGenres) == 0 {
			searchGenres = e.cfg.FallbackGenrePool
		}
		if len(searchGenres) > 5 {
			searchGenres = searchGenres[:5]
		}
		for _, genre := range searchGenres {
			found, err := e.catalog.SearchArtistsByGenre(ctx, genre, 20, 0)
			if err != nil {
				continue
			}
			found = shuffleArtists(rng, found)
			if len(found) > 8 {
				found = found[:8]
			}
			for _, a := range found {
				add(a)
			}
		}
	}

	for _, a := range pool {
		if a.Popularity >= mayKnowPopularity {
			mayKnow = append(mayKnow, artistItem(a, ""))
		} else {
			discover = append(discover, artistItem(a, ""))
		}
	}

	if len(discover) < discoverFloor {
		discover = e.padDiscover(ctx, rng, discover, genres, seen, inputNames)
	}
	return mayKnow, discover
}

// padDiscover tops the discover bucket up to its floor with fresh
// lower-popularity artists from the scan genres.
func (e *Engine) padDiscover(ctx context.Context, rng *rand.Rand, discover []Item, genres []string, seen, inputNames map[string]struct{}) []Item {
	searchGenres := genres
	if len(searchGenres) == 0 {
		searchGenres = e.cfg.FallbackGenrePool
	}
	for _, genre := range searchGenres {
		if len(discover) >= discoverFloor {
			break
		}
		found, err := e.catalog.SearchArtistsByGenre(ctx, genre, 20, 0)
		if err != nil {
			continue
		}
		for _, a := range shuffleArtists(rng, found) {
			if len(discover) >= discoverFloor {
				break
			}
			key := strings.ToLower(strings.TrimSpace(a.Name))
			if key == "" {
				continue
			}
			if _, ok := inputNames[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			if a.Popularity >= mayKnowPopularity {
				continue
			}
			seen[key] = struct{}{}
			discover = append(discover, artistItem(a, ""))
		}
	}
	return discover
}

// genreTracks gathers tracks from artists in the scan genres, skipping the
// input artists and anything already recommended as a favorite. Each genre
// contributes a bounded share, and only tracks with a playable link are
// kept.
func (e *Engine) genreTracks(ctx context.Context, rng *rand.Rand, req request, resolved []ResolvedArtist, excluded map[string]struct{}, genres []string, bucketCap int) []Item {
	inputIDs := make(map[string]struct{}, len(resolved))
	inputNames := make(map[string]struct{}, len(resolved))
	for _, r := range resolved {
		inputIDs[r.ID] = struct{}{}
		inputNames[strings.ToLower(r.Name)] = struct{}{}
	}

	var lists [][]Item
	for _, genre := range genres {
		artists, err := e.catalog.SearchArtistsByGenre(ctx, genre, 30, 0)
		if err != nil {
			e.logger.Debug().Err(err).Str("genre", genre).Msg("genre track search failed")
			continue
		}

		// Each genre's scan is bounded on its own: a single artist stops
		// contributing at GenreTrackCap, and the genre's whole artist scan
		// stops at GenreScanCap accepted tracks.
		var items []Item
		for _, a := range shuffleArtists(rng, artists) {
			if len(items) >= e.cfg.GenreScanCap {
				break
			}
			if _, ok := inputIDs[a.ID]; ok {
				continue
			}
			if _, ok := inputNames[strings.ToLower(a.Name)]; ok {
				continue
			}
			tracks := shuffleTracks(rng, e.topTracks(ctx, req.market, a.ID, e.cfg.RelatedTopTracks))
			for _, t := range tracks {
				if t.URL == "" || isExcluded(excluded, t) {
					continue
				}
				items = append(items, trackItem(t))
				if len(items) >= e.cfg.GenreTrackCap {
					break
				}
			}
		}
		lists = append(lists, items)
	}

	return capItems(dedupeItems(interleave(lists)), bucketCap)
}

// risingStars samples artists from the scan genres and labels each with the
// genre that surfaced it.
func (e *Engine) risingStars(ctx context.Context, rng *rand.Rand, resolved []ResolvedArtist, genres []string, bucketCap int) []Item {
	inputNames := make(map[string]struct{}, len(resolved))
	for _, r := range resolved {
		inputNames[strings.ToLower(r.Name)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var lists [][]Item
	for _, genre := range genres {
		artists, err := e.catalog.SearchArtistsByGenre(ctx, genre, 30, 0)
		if err != nil {
			e.logger.Debug().Err(err).Str("genre", genre).Msg("rising stars search failed")
			continue
		}
		artists = shuffleArtists(rng, artists)
		if len(artists) > 10 {
			artists = artists[:10]
		}
		var items []Item
		for _, a := range artists {
			key := strings.ToLower(strings.TrimSpace(a.Name))
			if key == "" {
				continue
			}
			if _, ok := inputNames[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, artistItem(a, genre))
		}
		lists = append(lists, items)
	}
	return capItems(interleave(lists), bucketCap)
}
