// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package graph

import (
	"container/heap"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/locus/internal/models"
)

// DefaultNeighbors is the neighbor count k used when none is configured.
const DefaultNeighbors = 4

// candidate is a neighbor held in a bounded top-k heap.
type candidate struct {
	index    int
	distance float64
}

// farthestFirst is a max-heap on distance, so the root is the worst neighbor
// currently held.
type farthestFirst []candidate

func (h farthestFirst) Len() int           { return len(h) }
func (h farthestFirst) Less(i, j int) bool { return h[i].distance > h[j].distance }
func (h farthestFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *farthestFirst) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *farthestFirst) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// offer inserts c while fewer than k are held, otherwise replaces the worst
// held neighbor only if c is strictly closer.
func (h *farthestFirst) offer(c candidate, k int) {
	if h.Len() < k {
		heap.Push(h, c)
		return
	}
	if c.distance < (*h)[0].distance {
		(*h)[0] = c
		heap.Fix(h, 0)
	}
}

// Graph is the proximity graph built over an arena of businesses.
// It is read-only once Build returns.
type Graph struct {
	businesses   []*models.Business
	connectivity *Connectivity
	k            int
	edges        int
}

// Builder links every business to its k closest others.
type Builder struct {
	k      int
	logger zerolog.Logger
}

// NewBuilder creates a builder with neighbor count k (DefaultNeighbors if k <= 0).
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuilder(k int, logger zerolog.Logger) *Builder {
	if k <= 0 {
		k = DefaultNeighbors
	}
	return &Builder{
		k:      k,
		logger: logger.With().Str("component", "graph").Logger(),
	}
}

// Build is shorthand for NewBuilder(k, zerolog.Nop()).Build(businesses).
func Build(businesses []*models.Business, k int) *Graph {
	return NewBuilder(k, zerolog.Nop()).Build(businesses)
}

// Build assigns arena indices, scans every unordered pair once, keeps each
// business's k closest others and installs every kept edge in both neighbor
// tables with the same distance. Each installed edge is unioned in the
// connectivity tracker.
//
// Existing neighbor tables are discarded, so calling Build again on the same
// slice produces the same graph. Build must not run while readers use the
// slice.
func (b *Builder) Build(businesses []*models.Business) *Graph {
	start := time.Now()
	n := len(businesses)

	for i, biz := range businesses {
		biz.Index = i
		biz.Neighbors = make(map[int]float64, b.k)
	}

	nearest := make([]farthestFirst, n)
	for i := range nearest {
		nearest[i] = make(farthestFirst, 0, b.k)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Distance(businesses[i], businesses[j])
			nearest[i].offer(candidate{index: j, distance: d}, b.k)
			nearest[j].offer(candidate{index: i, distance: d}, b.k)
		}
	}

	g := &Graph{
		businesses:   businesses,
		connectivity: NewConnectivity(n),
		k:            b.k,
	}
	for i := range nearest {
		for _, c := range nearest[i] {
			g.link(i, c.index, c.distance)
		}
	}

	b.logger.Info().
		Int("businesses", n).
		Int("edges", g.edges).
		Int("components", g.connectivity.Count()).
		Dur("duration", time.Since(start)).
		Msg("Proximity graph built")

	return g
}

// link installs the undirected edge i-j with distance d.
func (g *Graph) link(i, j int, d float64) {
	if _, exists := g.businesses[i].Neighbors[j]; !exists {
		g.edges++
	}
	g.businesses[i].Neighbors[j] = d
	g.businesses[j].Neighbors[i] = d
	g.connectivity.Union(i, j)
}

// ComponentCount returns the number of independently reachable clusters.
func (g *Graph) ComponentCount() int {
	return g.connectivity.Count()
}

// Connected reports whether a path exists between two arena indices.
func (g *Graph) Connected(a, b int) bool {
	return g.connectivity.Connected(a, b)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Neighbors returns the configured neighbor count k.
func (g *Graph) Neighbors() int {
	return g.k
}

// Businesses returns the arena the graph was built over.
func (g *Graph) Businesses() []*models.Business {
	return g.businesses
}

// Len returns the number of businesses in the graph.
func (g *Graph) Len() int {
	return len(g.businesses)
}

// ShortestPath runs ShortestPath over the graph's arena.
func (g *Graph) ShortestPath(source, target int) []*models.Business {
	return ShortestPath(source, target, g.businesses)
}
