// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

// Package api exposes the recommendation engine over HTTP with a chi
// router. Every endpoint returns the same JSON envelope (success flag,
// payload or error, tracing metadata), request bodies are validated before
// they reach the engine, and the middleware stack covers request IDs,
// structured request logging, panic recovery, CORS, and IP rate limiting.
package api
