// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package cache

import (
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/locus/internal/graph"
)

// kmPerDegree is the length of one degree of latitude.
const kmPerDegree = 111.0

// SpatialHashGrid divides geographic space into cells for radius queries.
// Instead of measuring every entry, a query only visits the cells that
// overlap the search circle's bounding box.
//
// Time Complexity:
//   - Insert: O(1)
//   - QueryNearby: O(k) where k = entries in the visited cells
//   - Remove: O(cell size)
type SpatialHashGrid[T any] struct {
	mu       sync.RWMutex
	cells    map[CellKey][]*SpatialEntry[T]
	cellSize float64 // degrees
	entries  map[string]*SpatialEntry[T]
}

// CellKey represents a grid cell coordinate.
type CellKey struct {
	X, Y int
}

// SpatialEntry is one point stored in the grid.
type SpatialEntry[T any] struct {
	ID    string
	Lat   float64
	Lon   float64
	Value T

	cellKey CellKey
}

// Nearby is a query hit with its distance from the query point.
type Nearby[T any] struct {
	Entry      SpatialEntry[T]
	DistanceKm float64
}

// NewSpatialHashGrid creates a grid with cells of roughly cellSizeKm
// (100km if cellSizeKm <= 0).
func NewSpatialHashGrid[T any](cellSizeKm float64) *SpatialHashGrid[T] {
	if cellSizeKm <= 0 {
		cellSizeKm = 100
	}
	return &SpatialHashGrid[T]{
		cells:    make(map[CellKey][]*SpatialEntry[T]),
		cellSize: cellSizeKm / kmPerDegree,
		entries:  make(map[string]*SpatialEntry[T]),
	}
}

func (g *SpatialHashGrid[T]) cellKey(lat, lon float64) CellKey {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return CellKey{
		X: int(math.Floor(lon / g.cellSize)),
		Y: int(math.Floor(lat / g.cellSize)),
	}
}

// Insert adds an entry, replacing any entry with the same id.
func (g *SpatialHashGrid[T]) Insert(id string, lat, lon float64, value T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.entries[id]; ok {
		g.removeFromCellUnlocked(existing)
	}

	key := g.cellKey(lat, lon)
	entry := &SpatialEntry[T]{ID: id, Lat: lat, Lon: lon, Value: value, cellKey: key}
	g.cells[key] = append(g.cells[key], entry)
	g.entries[id] = entry
}

// Remove deletes an entry by id.
func (g *SpatialHashGrid[T]) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[id]
	if !ok {
		return false
	}
	g.removeFromCellUnlocked(entry)
	delete(g.entries, id)
	return true
}

// removeFromCellUnlocked removes an entry from its cell (caller must hold lock).
func (g *SpatialHashGrid[T]) removeFromCellUnlocked(entry *SpatialEntry[T]) {
	cell := g.cells[entry.cellKey]
	for i, e := range cell {
		if e.ID == entry.ID {
			cell[i] = cell[len(cell)-1]
			cell = cell[:len(cell)-1]
			break
		}
	}
	if len(cell) == 0 {
		delete(g.cells, entry.cellKey)
		return
	}
	g.cells[entry.cellKey] = cell
}

// Get returns a copy of the entry with the given id.
func (g *SpatialHashGrid[T]) Get(id string) (SpatialEntry[T], bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	entry, ok := g.entries[id]
	if !ok {
		return SpatialEntry[T]{}, false
	}
	return *entry, true
}

// QueryNearby returns the entries within radiusKm of the point, closest first.
// Entries at equal distance are ordered by id.
func (g *SpatialHashGrid[T]) QueryNearby(lat, lon, radiusKm float64) []Nearby[T] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if radiusKm < 0 {
		return nil
	}

	var results []Nearby[T]
	collect := func(cell []*SpatialEntry[T]) {
		for _, entry := range cell {
			d := graph.Haversine(lat, lon, entry.Lat, entry.Lon)
			if d <= radiusKm {
				results = append(results, Nearby[T]{Entry: *entry, DistanceKm: d})
			}
		}
	}

	ys, xs := g.coveringCells(lat, lon, radiusKm)
	if len(ys)*len(xs) > len(g.cells) {
		// Fewer occupied cells than covering cells: scan them all.
		for _, cell := range g.cells {
			collect(cell)
		}
	} else {
		for _, x := range xs {
			for _, y := range ys {
				collect(g.cells[CellKey{X: x, Y: y}])
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].Entry.ID < results[j].Entry.ID
	})
	return results
}

// coveringCells returns the cell rows and columns of the bounding box of the
// spherical cap of radiusKm around the point. Columns wrap at the
// antimeridian; a cap containing a pole spans every column.
func (g *SpatialHashGrid[T]) coveringCells(lat, lon, radiusKm float64) (ys, xs []int) {
	angular := radiusKm / graph.EarthRadiusKm
	angularDeg := angular * 180 / math.Pi

	latMin := math.Max(lat-angularDeg, -90)
	latMax := math.Min(lat+angularDeg, 90)
	for y := g.cellKey(latMin, 0).Y; y <= g.cellKey(latMax, 0).Y; y++ {
		ys = append(ys, y)
	}

	minX := g.cellKey(0, -180).X
	maxX := g.cellKey(0, 180).X
	allColumns := func() []int {
		out := make([]int, 0, maxX-minX+1)
		for x := minX; x <= maxX; x++ {
			out = append(out, x)
		}
		return out
	}

	if latMin <= -90 || latMax >= 90 {
		return ys, allColumns()
	}
	ratio := math.Sin(angular) / math.Cos(lat*math.Pi/180)
	if ratio >= 1 {
		return ys, allColumns()
	}
	spanDeg := math.Asin(ratio) * 180 / math.Pi

	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	lo, hi := lon-spanDeg, lon+spanDeg

	seen := make(map[int]struct{})
	addRange := func(from, to float64) {
		for x := g.cellKey(0, from).X; x <= g.cellKey(0, to).X; x++ {
			if _, ok := seen[x]; !ok {
				seen[x] = struct{}{}
				xs = append(xs, x)
			}
		}
	}
	switch {
	case lo < -180:
		addRange(lo+360, 180)
		addRange(-180, hi)
	case hi > 180:
		addRange(lo, 180)
		addRange(-180, hi-360)
	default:
		addRange(lo, hi)
	}
	return ys, xs
}

// Size returns the total number of entries.
func (g *SpatialHashGrid[T]) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// NumCells returns the number of non-empty cells.
func (g *SpatialHashGrid[T]) NumCells() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cells)
}

// Clear removes all entries.
func (g *SpatialHashGrid[T]) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cells = make(map[CellKey][]*SpatialEntry[T])
	g.entries = make(map[string]*SpatialEntry[T])
}
