// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where a config file is searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/resonata/config.yaml",
	"/etc/resonata/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from layered sources, lowest to highest
// precedence: built-in defaults, an optional YAML file, environment
// variables. The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are the keys parsed as comma-separated lists when they
// arrive as strings from the environment.
var sliceConfigPaths = []string{
	"api.cors_origins",
	"engine.default_genres",
	"engine.fallback_genre_pool",
}

// processSliceFields converts comma-separated string values into slices for
// the known slice keys. YAML-sourced values are already slices and are left
// alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names onto config paths.
// A RESONATA_ prefix is accepted and ignored. Unknown variables map to ""
// so unrelated environment entries never pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, "resonata_")

	envMappings := map[string]string{
		"spotify_client_id":     "spotify.client_id",
		"spotify_client_secret": "spotify.client_secret",
		"spotify_market":        "spotify.market",
		"spotify_timeout":       "spotify.timeout",
		"spotify_rps":           "spotify.requests_per_second",

		"http_host":             "server.host",
		"http_port":             "server.port",
		"http_read_timeout":     "server.read_timeout",
		"http_write_timeout":    "server.write_timeout",
		"http_idle_timeout":     "server.idle_timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",

		"cors_origins":        "api.cors_origins",
		"rate_limit_requests": "api.rate_limit_requests",
		"rate_limit_window":   "api.rate_limit_window",
		"request_timeout":     "api.request_timeout",
		"cache_ttl":           "api.cache_ttl",

		"engine_accept_threshold":      "engine.accept_threshold",
		"engine_artist_weight":         "engine.artist_weight",
		"engine_title_weight":          "engine.title_weight",
		"engine_resolve_search_limit":  "engine.resolve_search_limit",
		"engine_top_tracks_per_artist": "engine.top_tracks_per_artist",
		"engine_related_per_favorite":  "engine.related_artists_per_favorite",
		"engine_related_top_tracks":    "engine.related_top_tracks",
		"engine_fallback_market":       "engine.fallback_market",
		"engine_max_results":           "engine.default_max_results",
		"engine_track_pop_max":         "engine.default_track_pop_max",
		"engine_per_bucket":            "engine.default_per_bucket",
		"engine_min_artists":           "engine.default_min_artists",
		"engine_max_genres":            "engine.max_genres",
		"engine_genre_track_cap":       "engine.genre_track_cap",
		"engine_genre_scan_cap":        "engine.genre_scan_cap",
		"engine_default_genres":        "engine.default_genres",
		"engine_fallback_genre_pool":   "engine.fallback_genre_pool",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
