// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/resonata/resonata/internal/recommend"
)

// Config is the complete service configuration.
type Config struct {
	Spotify SpotifyConfig    `koanf:"spotify"`
	Server  ServerConfig     `koanf:"server"`
	API     APIConfig        `koanf:"api"`
	Engine  recommend.Config `koanf:"engine"`
	Logging LoggingConfig    `koanf:"logging"`
}

// SpotifyConfig holds the catalog credentials and client tuning.
type SpotifyConfig struct {
	ClientID          string        `koanf:"client_id"`
	ClientSecret      string        `koanf:"client_secret"`
	Market            string        `koanf:"market"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listener address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds the HTTP API surface settings.
type APIConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`

	// CacheTTL bounds response memoization. Zero disables the cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds the log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before the optional
// config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			ClientID:          "",
			ClientSecret:      "",
			Market:            "US",
			Timeout:           20 * time.Second,
			RequestsPerSecond: 8,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		API: APIConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
			RequestTimeout:  55 * time.Second,
			CacheTTL:        10 * time.Minute,
		},
		Engine: recommend.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration. Missing catalog credentials are a hard
// failure; the service cannot do anything without them.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Spotify.ClientID) == "" {
		return fmt.Errorf("spotify.client_id is required (set SPOTIFY_CLIENT_ID)")
	}
	if strings.TrimSpace(c.Spotify.ClientSecret) == "" {
		return fmt.Errorf("spotify.client_secret is required (set SPOTIFY_CLIENT_SECRET)")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_requests must be positive, got %d", c.API.RateLimitReqs)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
