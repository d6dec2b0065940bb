// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package graph builds and queries the proximity graph over businesses.

The graph is built once, by brute force: every unordered pair is measured with
the haversine formula, each business keeps its k closest others in a bounded
max-heap, and every kept edge is installed in both neighbor tables with the
same distance. Because the reciprocal edge is installed regardless of the other
side's own choice, a neighbor table may hold more than k entries.

Every installed edge is also unioned into a disjoint-set forest (Connectivity),
so the number of connected components is known without a traversal, and a
path query between two components can be answered without running Dijkstra.

Usage:

	g := graph.NewBuilder(4, logger).Build(businesses)
	fmt.Println(g.ComponentCount())
	path := g.ShortestPath(from.Index, to.Index)

The O(n^2) scan targets hundreds to low thousands of businesses. For radius
queries over larger sets use cache.SpatialHashGrid.

Thread Safety:

Build mutates the businesses (Index and Neighbors) and must complete before any
reader starts. Afterwards Graph, the arena and ShortestPath are safe for
concurrent use.
*/
package graph
