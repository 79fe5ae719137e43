// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get(k) = %v, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1, 1", hits, misses)
	}
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	c := New(10 * time.Millisecond)
	c.Set("k", 42)

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry still returned")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired read, want 0", c.Len())
	}
}

func TestOverwrite(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("k", 1)
	c.Set("k", 2)

	got, _ := c.Get("k")
	if got != 2 {
		t.Errorf("Get(k) = %v, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestKeyStable(t *testing.T) {
	t.Parallel()

	type req struct {
		A string
		B int
	}

	k1 := Key("std", req{A: "x", B: 1})
	k2 := Key("std", req{A: "x", B: 1})
	k3 := Key("std", req{A: "x", B: 2})
	k4 := Key("niche", req{A: "x", B: 1})

	if k1 != k2 {
		t.Errorf("identical values hashed differently: %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Error("different values hashed identically")
	}
	if k1 == k4 {
		t.Error("different prefixes hashed identically")
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := Key("k", n*100+j)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
