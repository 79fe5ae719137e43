// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

// Package config loads service configuration from layered sources with
// Koanf: built-in defaults, then an optional YAML file, then environment
// variables, each layer overriding the one below. Only explicitly mapped
// environment variables are read.
package config
