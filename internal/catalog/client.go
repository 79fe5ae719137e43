// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// ErrMissingCredentials indicates the client was constructed without an
// application ID or secret. This is a fatal configuration error; callers
// must surface it before any recommendation work is attempted.
var ErrMissingCredentials = errors.New("catalog: missing client credentials")

// DefaultMarket is the region used when no market is configured.
const DefaultMarket = "US"

// Config holds catalog client configuration.
type Config struct {
	// ClientID and ClientSecret are the application identity for the
	// client-credentials token exchange. Both are required.
	ClientID     string
	ClientSecret string

	// Market is the two-letter region code scoping search and top-tracks
	// availability. Defaults to "US"; always uppercased.
	Market string

	// Timeout is the per-request HTTP timeout. Default: 20s.
	Timeout time.Duration

	// RequestsPerSecond paces outgoing API calls. Default: 8.
	RequestsPerSecond float64

	// HTTPClient overrides the authenticated transport entirely.
	// Intended for tests; when set, no token exchange is performed.
	HTTPClient *http.Client

	// Logger is the component logger. Defaults to a disabled logger.
	Logger zerolog.Logger
}

// Client is a Spotify Web API client for the non-user endpoints the
// recommendation core needs: search, artist lookup, artist top tracks, and
// related artists. It authenticates with the client-credentials flow, caches
// the bearer token until expiry, retries once on rate limiting (after the
// server-indicated delay) and once on token invalidation (with a fresh
// token). Any failure beyond those retries propagates to the caller.
//
// A Client is safe for concurrent use, but callers should prefer one Client
// per request pipeline so token refreshes are never shared across flows.
type Client struct {
	market  string
	auth    *clientcredentials.Config
	timeout time.Duration
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu sync.Mutex
	sp *spotify.Client
}

// New creates a catalog client. Empty credentials are a hard precondition
// failure and return ErrMissingCredentials.
func New(cfg Config) (*Client, error) {
	id := strings.TrimSpace(cfg.ClientID)
	secret := strings.TrimSpace(cfg.ClientSecret)
	if cfg.HTTPClient == nil && (id == "" || secret == "") {
		return nil, ErrMissingCredentials
	}

	market := strings.ToUpper(strings.TrimSpace(cfg.Market))
	if market == "" {
		market = DefaultMarket
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 8
	}

	c := &Client{
		market: market,
		auth: &clientcredentials.Config{
			ClientID:     id,
			ClientSecret: secret,
			TokenURL:     spotifyauth.TokenURL,
		},
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  cfg.Logger,
	}

	if cfg.HTTPClient != nil {
		c.sp = spotify.New(cfg.HTTPClient, spotify.WithRetry(true))
	} else {
		c.sp = c.newSession(context.Background())
	}

	return c, nil
}

// Market returns the configured region code.
func (c *Client) Market() string {
	return c.market
}

// newSession builds an authenticated API client with a fresh token source.
func (c *Client) newSession(ctx context.Context) *spotify.Client {
	httpClient := c.auth.Client(ctx)
	httpClient.Timeout = c.timeout
	return spotify.New(httpClient, spotify.WithRetry(true))
}

// session returns the current API client.
func (c *Client) session() *spotify.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sp
}

// resetSession discards the cached token source so the next call fetches a
// fresh token. Used when the server signals the current token is invalid.
func (c *Client) resetSession(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sp = c.newSession(ctx)
}

// isAuthError reports whether err is the server rejecting the bearer token.
func isAuthError(err error) bool {
	var se spotify.Error
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}

// call paces the request and retries exactly once with a fresh token when
// the server rejects the current one mid-lifetime. Rate-limit (429) retries
// are handled inside the underlying client.
func (c *Client) call(ctx context.Context, fn func(sp *spotify.Client) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("catalog: request pacing: %w", err)
	}

	err := fn(c.session())
	if err == nil || !isAuthError(err) {
		return err
	}

	c.logger.Debug().Msg("token rejected, refreshing and retrying once")
	c.resetSession(ctx)
	return fn(c.session())
}

// fieldQuery builds a field-qualified track search query. When quoted is
// true the field values are wrapped in double quotes (exact-phrase form).
func fieldQuery(title, artist string, quoted bool) string {
	var parts []string
	if title != "" {
		if quoted {
			parts = append(parts, fmt.Sprintf("track:%q", title))
		} else {
			parts = append(parts, "track:"+title)
		}
	}
	if artist != "" {
		if quoted {
			parts = append(parts, fmt.Sprintf("artist:%q", artist))
		} else {
			parts = append(parts, "artist:"+artist)
		}
	}
	return strings.Join(parts, " ")
}

// searchTracks runs a raw track search query.
func (c *Client) searchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	var out []Track
	err := c.call(ctx, func(sp *spotify.Client) error {
		results, err := sp.Search(ctx, query, spotify.SearchTypeTrack,
			spotify.Limit(limit), spotify.Market(c.market))
		if err != nil {
			return err
		}
		if results.Tracks != nil {
			out = tracksFromFull(results.Tracks.Tracks)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: search tracks %q: %w", query, err)
	}
	return out, nil
}

// SearchTracks searches for tracks with a field-qualified query built from
// title and/or artist. If the exact-phrase form returns nothing, the search
// is retried with a looser unquoted form. Empty inputs return an empty
// result, never an error.
func (c *Client) SearchTracks(ctx context.Context, title, artist string, limit int) ([]Track, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" && artist == "" {
		return nil, nil
	}

	tracks, err := c.searchTracks(ctx, fieldQuery(title, artist, true), limit)
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		return tracks, nil
	}
	return c.searchTracks(ctx, fieldQuery(title, artist, false), limit)
}

// SearchTracksPhrase searches with the strict exact-phrase form only.
func (c *Client) SearchTracksPhrase(ctx context.Context, title, artist string, limit int) ([]Track, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" && artist == "" {
		return nil, nil
	}
	return c.searchTracks(ctx, fieldQuery(title, artist, true), limit)
}

// SearchTracksFree searches with a free-text query.
func (c *Client) SearchTracksFree(ctx context.Context, query string, limit int) ([]Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return c.searchTracks(ctx, query, limit)
}

// SearchArtistsByName searches artists by free-text name.
func (c *Client) SearchArtistsByName(ctx context.Context, name string, limit int) ([]Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	return c.searchArtists(ctx, name, limit, 0)
}

// SearchArtistsByGenre searches artists matching a genre tag.
func (c *Client) SearchArtistsByGenre(ctx context.Context, genre string, limit, offset int) ([]Artist, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, nil
	}
	return c.searchArtists(ctx, fmt.Sprintf("genre:%q", genre), limit, offset)
}

// searchArtists runs a raw artist search query.
func (c *Client) searchArtists(ctx context.Context, query string, limit, offset int) ([]Artist, error) {
	var out []Artist
	err := c.call(ctx, func(sp *spotify.Client) error {
		results, err := sp.Search(ctx, query, spotify.SearchTypeArtist,
			spotify.Limit(limit), spotify.Offset(offset), spotify.Market(c.market))
		if err != nil {
			return err
		}
		if results.Artists != nil {
			out = artistsFromFull(results.Artists.Artists)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: search artists %q: %w", query, err)
	}
	return out, nil
}

// GetArtist fetches one artist's full record (canonical name, genre list).
func (c *Client) GetArtist(ctx context.Context, id string) (Artist, error) {
	if id == "" {
		return Artist{}, nil
	}
	var out Artist
	err := c.call(ctx, func(sp *spotify.Client) error {
		artist, err := sp.GetArtist(ctx, spotify.ID(id))
		if err != nil {
			return err
		}
		out = artistFromFull(artist)
		return nil
	})
	if err != nil {
		return Artist{}, fmt.Errorf("catalog: get artist %s: %w", id, err)
	}
	return out, nil
}

// GetArtistTopTracks fetches an artist's top tracks in the client's market.
// Top-tracks availability is market-scoped; callers that get an empty result
// may retry in another market via GetArtistTopTracksIn.
func (c *Client) GetArtistTopTracks(ctx context.Context, id string, limit int) ([]Track, error) {
	return c.GetArtistTopTracksIn(ctx, c.market, id, limit)
}

// GetArtistTopTracksIn fetches an artist's top tracks in a specific market.
func (c *Client) GetArtistTopTracksIn(ctx context.Context, market, id string, limit int) ([]Track, error) {
	if id == "" {
		return nil, nil
	}
	market = strings.ToUpper(strings.TrimSpace(market))
	if market == "" {
		market = DefaultMarket
	}

	var out []Track
	err := c.call(ctx, func(sp *spotify.Client) error {
		tracks, err := sp.GetArtistsTopTracks(ctx, spotify.ID(id), market)
		if err != nil {
			return err
		}
		if limit > 0 && len(tracks) > limit {
			tracks = tracks[:limit]
		}
		out = tracksFromFull(tracks)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: top tracks for %s in %s: %w", id, market, err)
	}
	return out, nil
}

// GetRelatedArtists fetches artists related to the given artist.
func (c *Client) GetRelatedArtists(ctx context.Context, id string) ([]Artist, error) {
	if id == "" {
		return nil, nil
	}
	var out []Artist
	err := c.call(ctx, func(sp *spotify.Client) error {
		artists, err := sp.GetRelatedArtists(ctx, spotify.ID(id))
		if err != nil {
			return err
		}
		out = artistsFromFull(artists)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: related artists for %s: %w", id, err)
	}
	return out, nil
}
