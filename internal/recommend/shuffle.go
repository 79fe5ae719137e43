// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package recommend

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// shuffleSalt composes the deterministic shuffle salt from the request
// market, the UTC date, the resolved favorites in input order, and the
// regeneration counter. Identical inputs on the same day produce the same
// salt, so the same arrangement; bumping the counter gives a fresh one.
func shuffleSalt(market string, day time.Time, favorites []Favorite, nonce uint32) string {
	parts := make([]string, 0, len(favorites))
	for _, f := range favorites {
		parts = append(parts, f.Title+"—"+f.Artist)
	}
	return fmt.Sprintf("%s|%s|%s|%d",
		market, day.UTC().Format("20060102"), strings.Join(parts, "|"), nonce)
}

// stableShuffle returns a new slice holding items permuted by a generator
// seeded from the SHA-256 digest of salt. The input is never mutated.
func stableShuffle(items []Item, salt string) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	sum := sha256.Sum256([]byte(salt))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// samplingRNG is the generator shared by all sampling steps of one
// invocation, seeded from the regeneration counter so sampled subsets are
// reproducible per request.
func samplingRNG(nonce uint32) *rand.Rand {
	return rand.New(rand.NewSource(int64(nonce)))
}
