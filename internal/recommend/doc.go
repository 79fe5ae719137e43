// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

// Package recommend implements the recommendation engine: favorites resolve
// to catalog artists through a cascade of progressively looser searches,
// then feed two presentation modes.
//
// Standard mode interleaves the favorite artists' own top tracks with picks
// from related artists, backfills from genre searches when the list runs
// short, and arranges the result with a shuffle that is stable for a given
// market, UTC day, favorite set, and regeneration counter.
//
// Niche mode builds five named buckets (hidden gems, artists you may know,
// discover, genre tracks, rising stars) from one sampling generator seeded
// by the regeneration counter, so the whole response reproduces for the same
// request.
//
// The engine talks to the catalog through the Catalog interface and treats
// individual fetch failures as soft: a failed lookup shrinks the result
// rather than failing the request, and empty lists fall back to placeholder
// entries pointing at the catalog's browse pages.
package recommend
