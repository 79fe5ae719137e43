// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

// Package catalog wraps the Spotify Web API behind the small surface the
// recommendation core needs: track and artist search, artist lookup, artist
// top tracks, and related artists.
//
// Authentication uses the client-credentials flow; no user-scoped data is
// ever requested. Requests are paced with a token-bucket limiter, rate-limit
// responses are retried after the server-indicated delay, and a rejected
// bearer token triggers exactly one refresh-and-retry. All other failures
// propagate to the caller wrapped with operation context.
//
// Results are converted into the package's own Track and Artist types so the
// rest of the system never depends on wire-format details. Conversion is
// defensive: missing external URLs fall back to constructed open.spotify.com
// deep links, and tracks without a listed artist keep an empty artist name
// rather than failing.
package catalog
