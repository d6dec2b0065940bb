// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package models defines data structures shared across Locus.

Key Components:

  - Business: geolocated business record, the graph entity. Businesses live in
    a slice (the arena) and are addressed by Index everywhere inside the graph
    and path finder, so neighbor tables are map[int]float64 rather than maps
    keyed by pointer.
  - Review: free-text document owned by a business through BusinessID.
  - Dataset: the loaded businesses and reviews handed from ingestion to the
    build phase.
  - APIResponse: standardized HTTP response wrapper.

Lifecycle:

Businesses are created by ingestion (or loaded from the snapshot store),
receive their Index and neighbor table exactly once during the graph build, and
are read-only afterwards. Reviews are read-only from creation.
*/
package models
