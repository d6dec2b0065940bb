// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

// Package main is the entry point for the Locus server.
//
// Locus links businesses into a k-nearest-neighbor proximity graph and
// answers "find related" queries over it: similar businesses by review text
// and category overlap, shortest geographic paths, category clusters and
// radius lookups.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and config file (Koanf v2)
//  2. Snapshot store (optional): BadgerDB directory at LOCUS_STORE_PATH
//  3. Supervisor tree: data layer (graph build, snapshot writer) and API layer (HTTP)
//  4. HTTP Server: REST API under /api/v1 and Prometheus metrics at /metrics
//
// The HTTP server starts immediately. Until the graph build finishes,
// /api/v1/health/ready and every query endpoint answer 503.
//
//	locus (root)
//	├── data-layer
//	│   ├── graph-build      one-shot, retried with backoff on failure
//	│   └── snapshot-writer  when SNAPSHOT_ENABLED=true
//	└── api-layer
//	    └── http-server
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// Dataset:
//   - LOCUS_BUSINESSES_PATH, LOCUS_REVIEWS_PATH: JSON lines input files
//   - LOCUS_MAX_RECORDS: records read per file (default 10000)
//   - LOCUS_STORE_PATH: BadgerDB snapshot directory
//   - LOCUS_LOAD_FROM_STORE: read the dataset from the store instead of the files
//   - LOCUS_INTEGRITY_LOG: file receiving reviews of unknown businesses
//
// Graph and similarity:
//   - LOCUS_NEIGHBORS: neighbors per business (default 4)
//   - LOCUS_TOP_K, LOCUS_TEXT_WEIGHT, LOCUS_CATEGORY_WEIGHT
//   - LOCUS_CACHE_ENABLED, LOCUS_CACHE_SIZE, LOCUS_CACHE_TTL
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests up to HTTP_SHUTDOWN_TIMEOUT
//   - Closes the snapshot store and integrity log
//
// # Example Usage
//
//	export LOCUS_BUSINESSES_PATH=data/business.json
//	export LOCUS_REVIEWS_PATH=data/review.json
//	export LOCUS_STORE_PATH=data/locus.db
//	export SNAPSHOT_ENABLED=true
//	./locus-server
//
// Restarting from the snapshot without the raw files:
//
//	export LOCUS_STORE_PATH=data/locus.db
//	export LOCUS_LOAD_FROM_STORE=true
//	./locus-server
package main
