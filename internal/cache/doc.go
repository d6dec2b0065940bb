// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package cache provides the in-memory lookup structures that sit beside the
proximity graph.

# Components

  - SpatialHashGrid: a cell grid over latitude/longitude for radius queries
    ("businesses within 2 km of here") without an O(n) scan. It is independent
    of the k-nearest proximity graph, which answers path queries.
  - ResultCache: a generic size-bounded LRU with TTL, backed by
    hashicorp/golang-lru/v2/expirable, used to memoize similarity rankings.

# Thread Safety

Both types are safe for concurrent use.

# Usage Example

	grid := cache.NewSpatialHashGrid[int](2)
	for _, b := range businesses {
	    grid.Insert(b.ID, b.Latitude, b.Longitude, b.Index)
	}
	hits := grid.QueryNearby(33.45, -112.07, 1.5)

	results := cache.NewResultCache[string, []string](1024, 10*time.Minute)
	results.Add("biz-1", []string{"biz-7", "biz-9"})
*/
package cache
