// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

// Package cache provides a small thread-safe TTL cache used to memoize
// recommendation responses. Results are stable for a given request within a
// UTC day, so short-lived caching saves repeated catalog round trips without
// changing what a client sees.
package cache
