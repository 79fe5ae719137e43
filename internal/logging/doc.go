// Resonata - Music Recommendation Service
// Copyright 2026 Resonata Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/resonata/resonata

// Package logging provides centralized zerolog-based structured logging.
//
// The package exposes a global logger configured once at startup plus
// helpers for component child loggers and request-scoped logging.
//
// # Quick Start
//
//	import "github.com/resonata/resonata/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("market", "US").Msg("Engine ready")
//	logging.Error().Err(err).Msg("Catalog request failed")
//
//	// Request-scoped logging (request_id from context)
//	logging.Ctx(ctx).Debug().Msg("Resolving favorite")
//
// # Configuration
//
// Environment variables are mapped onto Config by the config package:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
package logging
