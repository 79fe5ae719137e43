// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/resonata/resonata/internal/cache"
	"github.com/resonata/resonata/internal/recommend"
)

// Recommender is the engine surface the handlers depend on.
type Recommender interface {
	Standard(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	NicheBuckets(ctx context.Context, req recommend.Request) (*recommend.BucketResult, error)
	CollectGenres(ctx context.Context, req recommend.Request) (*recommend.GenresResult, error)
}

// Handler serves the recommendation endpoints.
type Handler struct {
	engine    Recommender
	responses *cache.Cache
	version   string
	started   time.Time
}

// NewHandler creates the API handler. responses may be nil to disable
// response caching.
func NewHandler(engine Recommender, responses *cache.Cache, version string) *Handler {
	return &Handler{
		engine:    engine,
		responses: responses,
		version:   version,
		started:   time.Now(),
	}
}

// cacheKey scopes a request key to its mode and the current UTC day, since
// recommendation output is only stable within a day.
func cacheKey(mode string, req recommend.Request) string {
	return cache.Key(mode+"|"+time.Now().UTC().Format("20060102"), req)
}

// cached returns the memoized response for key, if caching is on.
func (h *Handler) cached(key string) (interface{}, bool) {
	if h.responses == nil {
		return nil, false
	}
	return h.responses.Get(key)
}

func (h *Handler) remember(key string, result interface{}) {
	if h.responses != nil {
		h.responses.Set(key, result)
	}
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommend.Request
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	key := cacheKey("standard", req)
	if hit, ok := h.cached(key); ok {
		rw.Success(hit)
		return
	}

	result, err := h.engine.Standard(r.Context(), req)
	if err != nil {
		h.writeEngineError(rw, err)
		return
	}
	h.remember(key, result)
	rw.Success(result)
}

// NicheRecommendations handles POST /api/v1/recommendations/niche.
func (h *Handler) NicheRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommend.Request
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	key := cacheKey("niche", req)
	if hit, ok := h.cached(key); ok {
		rw.Success(hit)
		return
	}

	result, err := h.engine.NicheBuckets(r.Context(), req)
	if err != nil {
		h.writeEngineError(rw, err)
		return
	}
	h.remember(key, result)
	rw.Success(result)
}

// Genres handles POST /api/v1/recommendations/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommend.Request
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	key := cacheKey("genres", req)
	if hit, ok := h.cached(key); ok {
		rw.Success(hit)
		return
	}

	result, err := h.engine.CollectGenres(r.Context(), req)
	if err != nil {
		h.writeEngineError(rw, err)
		return
	}
	h.remember(key, result)
	rw.Success(result)
}

// healthStatus is the health endpoint payload.
type healthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(healthStatus{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	})
}

func (h *Handler) writeEngineError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNoFavorites):
		rw.BadRequest("no usable favorites in request")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeExternalServiceFail, "catalog request timed out")
	default:
		rw.ExternalServiceError(err)
	}
}
