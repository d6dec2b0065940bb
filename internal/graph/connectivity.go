// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package graph

// Connectivity is a disjoint-set forest over arena indices [0, n).
//
// Indices outside the range panic. That is a caller bug, not a runtime
// condition, and is never recovered here.
type Connectivity struct {
	parent []int
	rank   []int
	count  int
}

// NewConnectivity returns n singleton sets.
func NewConnectivity(n int) *Connectivity {
	c := &Connectivity{
		parent: make([]int, n),
		rank:   make([]int, n),
		count:  n,
	}
	for i := range c.parent {
		c.parent[i] = i
	}
	return c
}

// Find returns the representative of x's set, repointing every node on the
// walk directly at the root.
func (c *Connectivity) Find(x int) int {
	root := x
	for c.parent[root] != root {
		root = c.parent[root]
	}
	for c.parent[x] != root {
		next := c.parent[x]
		c.parent[x] = root
		x = next
	}
	return root
}

// Union merges the sets containing x and y by rank. On a rank tie the root of
// x becomes the parent. Returns true if two distinct sets were merged.
func (c *Connectivity) Union(x, y int) bool {
	rootX := c.Find(x)
	rootY := c.Find(y)
	if rootX == rootY {
		return false
	}

	switch {
	case c.rank[rootX] > c.rank[rootY]:
		c.parent[rootY] = rootX
	case c.rank[rootX] < c.rank[rootY]:
		c.parent[rootX] = rootY
	default:
		c.parent[rootY] = rootX
		c.rank[rootX]++
	}
	c.count--
	return true
}

// Connected reports whether x and y share a set.
func (c *Connectivity) Connected(x, y int) bool {
	return c.Find(x) == c.Find(y)
}

// Count returns the number of disjoint sets.
func (c *Connectivity) Count() int {
	return c.count
}

// Len returns the number of elements tracked.
func (c *Connectivity) Len() int {
	return len(c.parent)
}
