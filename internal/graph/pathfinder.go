// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package graph

import (
	"container/heap"
	"math"

	"github.com/tomtom215/locus/internal/models"
)

// queued is one priority queue entry. The queue may hold several entries for
// the same business; only the one matching its current distance is live.
type queued struct {
	index    int
	distance float64
}

type closestFirst []queued

func (q closestFirst) Len() int           { return len(q) }
func (q closestFirst) Less(i, j int) bool { return q[i].distance < q[j].distance }
func (q closestFirst) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *closestFirst) Push(x any) { *q = append(*q, x.(queued)) }

func (q *closestFirst) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPath returns the businesses on the shortest path from source to
// target (arena indices), both inclusive, using neighbor table distances as
// edge weights.
//
// Every business is seeded into the queue at +Inf except the source. A
// relaxation pushes a fresh entry instead of decreasing a key; settled
// businesses are skipped when their stale entries surface.
//
// Returns nil when target is unreachable or either index is out of range.
func ShortestPath(source, target int, businesses []*models.Business) []*models.Business {
	n := len(businesses)
	if source < 0 || source >= n || target < 0 || target >= n {
		return nil
	}

	dist := make([]float64, n)
	prev := make([]int, n)
	settled := make([]bool, n)

	queue := make(closestFirst, 0, n)
	for i := range businesses {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[source] = 0
	for i := range businesses {
		queue = append(queue, queued{index: i, distance: dist[i]})
	}
	heap.Init(&queue)

	for queue.Len() > 0 {
		current := heap.Pop(&queue).(queued)
		u := current.index
		if settled[u] {
			continue
		}
		// Everything left is at +Inf, so target cannot be reached.
		if math.IsInf(dist[u], 1) {
			return nil
		}
		settled[u] = true

		if u == target {
			return walkBack(prev, target, businesses)
		}

		for v, weight := range businesses[u].Neighbors {
			candidate := dist[u] + weight
			if candidate < dist[v] {
				dist[v] = candidate
				prev[v] = u
				heap.Push(&queue, queued{index: v, distance: candidate})
			}
		}
	}

	return nil
}

func walkBack(prev []int, target int, businesses []*models.Business) []*models.Business {
	var path []*models.Business
	for at := target; at != -1; at = prev[at] {
		path = append(path, businesses[at])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathDistance sums the neighbor table distances along path in km.
// A hop with no installed edge contributes +Inf.
func PathDistance(path []*models.Business) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		d, ok := path[i-1].Neighbors[path[i].Index]
		if !ok {
			return math.Inf(1)
		}
		total += d
	}
	return total
}
