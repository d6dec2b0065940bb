// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("businesses", n).Msg("Dataset loaded")
//	logging.Ctx(ctx).Warn().Str("business_id", id).Msg("Unknown business")
//
// Components take a zerolog.Logger by value and derive their own child with
// a component field:
//
//	builder := graph.NewBuilder(4, logging.WithComponent("graph"))
//
// # Configuration
//
// Level and format come from the logging section of the application config
// (LOG_LEVEL, LOG_FORMAT, LOG_CALLER in the environment).
//
// # Request IDs
//
// The API middleware stores a request ID in the request context. Ctx attaches
// it to every event logged through the returned logger.
//
// # Auxiliary Files
//
// NewFileLogger opens an append-only JSON log file. Ingest uses it for the
// data integrity log, which records reviews that reference unknown businesses.
//
// # slog Adapter
//
// SlogHandler bridges log/slog to zerolog for libraries that only accept an
// *slog.Logger, notably the sutureslog supervisor event hook.
package logging
