// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package store persists dataset snapshots in BadgerDB so the server can start
without re-reading the raw JSON lines files.

# Key Layout

	business:<position>   JSON business record, position zero padded
	review:<position>     JSON review record
	index:<name>          business id stored under a lowercased name
	cluster:<label>       JSON list of business ids
	meta:manifest         JSON Manifest, written last

Positions keep arena order, so a loaded dataset builds the same graph as the
one that was saved. The manifest is the commit marker: SaveSnapshot deletes
it before anything else and writes it after the records, the name index and
the clusters, so LoadSnapshot returns ErrNoSnapshot until a save has
completed. Manifest counts catch a snapshot whose keys were lost.

# Writes

SaveSnapshot replaces the previous snapshot. Records are committed in batches
of Config.BatchSize, and Config.WritesPerSecond caps how often a batch is
committed.

Guarded wraps SaveSnapshot in a circuit breaker. Once open, snapshot attempts
fail fast with gobreaker.ErrOpenState instead of retrying.
*/
package store
