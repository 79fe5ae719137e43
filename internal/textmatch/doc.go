// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

// Package textmatch provides text normalization and fuzzy similarity scoring
// for matching user-typed titles and artist names against catalog data.
//
// Normalize strips diacritics, lowercases, and collapses punctuation so that
// misspelled or differently-accented inputs compare cleanly. Similarity
// computes a token-order-insensitive Levenshtein ratio on a 0-100 scale;
// resolver acceptance thresholds are tuned to this scale.
package textmatch
