// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/locus/internal/cache"
	"github.com/tomtom215/locus/internal/config"
	"github.com/tomtom215/locus/internal/graph"
	"github.com/tomtom215/locus/internal/index"
	"github.com/tomtom215/locus/internal/ingest"
	"github.com/tomtom215/locus/internal/metrics"
	"github.com/tomtom215/locus/internal/models"
	"github.com/tomtom215/locus/internal/recommend"
)

// DefaultGridCellKm is the spatial grid cell size.
const DefaultGridCellKm = 2.0

// ErrBusinessNotFound is returned when a business id is not in the dataset.
var ErrBusinessNotFound = errors.New("business not found")

// Controller answers queries over one built dataset.
type Controller struct {
	dataset  *models.Dataset
	graph    *graph.Graph
	names    *index.NameIndex
	engine   *recommend.Engine
	clusters map[string][]string
	labels   []string
	grid     *cache.SpatialHashGrid[*models.Business]
	byID     map[string]*models.Business
	builtAt  time.Time
	logger   zerolog.Logger
}

// SimilarResult is the outcome of SimilarByName.
type SimilarResult struct {
	Query string

	// Target is the business the name resolved to, nil if the name is unknown.
	Target *models.Business

	Similar []recommend.ScoredBusiness
	Cached  bool
}

// Found reports whether the queried name resolved to a business.
func (r *SimilarResult) Found() bool {
	return r.Target != nil
}

// PathResult is the outcome of Path.
type PathResult struct {
	From       *models.Business
	To         *models.Business
	Path       []*models.Business
	DistanceKm float64
}

// Reachable reports whether a path was found.
func (r *PathResult) Reachable() bool {
	return len(r.Path) > 0
}

// Hops returns the number of edges on the path.
func (r *PathResult) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// MaxNearbyRadiusKm bounds radius lookups.
const MaxNearbyRadiusKm = 100.0

// NearbyBusiness is one hit of a radius lookup.
type NearbyBusiness struct {
	Business   *models.Business
	DistanceKm float64
}

// Connectivity describes the shape of the proximity graph.
type Connectivity struct {
	Businesses int
	Edges      int
	Components int
	Neighbors  int
}

// Prebuilt holds query structures restored from a snapshot. A nil field is
// derived from the dataset instead.
type Prebuilt struct {
	Names    *index.NameIndex
	Clusters map[string][]string
}

// Build constructs every query structure over ds. The businesses of ds are
// modified in place (arena index and neighbor table) and must not be shared
// with another Controller.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(ds *models.Dataset, cfg *config.RecommendConfig, logger zerolog.Logger) (*Controller, error) {
	return BuildWith(ds, Prebuilt{}, cfg, logger)
}

// BuildWith is Build reusing the name index and clusters of pre. The graph,
// similarity engine and spatial grid are always built from ds.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func BuildWith(ds *models.Dataset, pre Prebuilt, cfg *config.RecommendConfig, logger zerolog.Logger) (*Controller, error) {
	if ds == nil {
		return nil, errors.New("dataset is required")
	}
	if cfg == nil {
		return nil, errors.New("recommend config is required")
	}
	start := time.Now()

	g := graph.NewBuilder(cfg.Neighbors, logger).Build(ds.Businesses)
	metrics.RecordGraphBuild(time.Since(start), g.Len(), g.EdgeCount(), g.ComponentCount())

	engine, err := recommend.NewEngine(cfg.EngineConfig(), ds.Businesses, ds.Reviews, logger)
	if err != nil {
		return nil, fmt.Errorf("create similarity engine: %w", err)
	}

	c := &Controller{
		dataset:  ds,
		graph:    g,
		names:    pre.Names,
		engine:   engine,
		clusters: pre.Clusters,
		grid:     cache.NewSpatialHashGrid[*models.Business](DefaultGridCellKm),
		byID:     make(map[string]*models.Business, len(ds.Businesses)),
		logger:   logger.With().Str("component", "search").Logger(),
	}
	restoredNames := c.names != nil
	if !restoredNames {
		c.names = index.New(cfg.IndexBuckets)
	}
	restoredClusters := c.clusters != nil
	if !restoredClusters {
		c.clusters = ingest.ClusterByPrimaryCategory(ds.Businesses)
	}

	for _, b := range ds.Businesses {
		if !restoredNames {
			c.names.Put(b.Name, b.ID)
		}
		if _, dup := c.byID[b.ID]; !dup {
			c.byID[b.ID] = b
		}
		c.grid.Insert(strconv.Itoa(b.Index), b.Latitude, b.Longitude, b)
	}

	c.labels = make([]string, 0, len(c.clusters))
	for label := range c.clusters {
		c.labels = append(c.labels, label)
	}
	sort.Strings(c.labels)

	c.builtAt = time.Now()
	c.logger.Info().
		Int("businesses", len(ds.Businesses)).
		Int("reviews", len(ds.Reviews)).
		Int("names", c.names.Len()).
		Int("clusters", len(c.labels)).
		Bool("restored_names", restoredNames).
		Bool("restored_clusters", restoredClusters).
		Dur("duration", c.builtAt.Sub(start)).
		Msg("Search controller built")

	return c, nil
}

// SimilarByName resolves name through the name index and ranks the dataset
// against the matching business. Results sharing the searched name
// (case-insensitive) are dropped, as are repeated ids.
func (c *Controller) SimilarByName(ctx context.Context, name string) (*SimilarResult, error) {
	result := &SimilarResult{Query: name}

	id, ok := c.names.Get(name)
	if !ok {
		return result, nil
	}

	res, err := c.engine.FindSimilar(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Target = res.Target
	result.Cached = res.Cached

	seen := make(map[string]struct{}, len(res.Similar))
	for _, s := range res.Similar {
		if strings.EqualFold(s.Business.Name, name) {
			continue
		}
		if _, dup := seen[s.Business.ID]; dup {
			continue
		}
		seen[s.Business.ID] = struct{}{}
		result.Similar = append(result.Similar, s)
	}
	return result, nil
}

// Business returns the business with the given id.
func (c *Controller) Business(id string) (*models.Business, error) {
	b, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBusinessNotFound, id)
	}
	return b, nil
}

// Path finds the shortest path between two businesses. A disconnected pair
// is not an error; the result has an empty Path.
func (c *Controller) Path(ctx context.Context, fromID, toID string) (*PathResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from, err := c.Business(fromID)
	if err != nil {
		metrics.RecordPathQuery("not_found")
		return nil, err
	}
	to, err := c.Business(toID)
	if err != nil {
		metrics.RecordPathQuery("not_found")
		return nil, err
	}

	result := &PathResult{From: from, To: to}
	if c.graph.Connected(from.Index, to.Index) {
		result.Path = c.graph.ShortestPath(from.Index, to.Index)
		result.DistanceKm = graph.PathDistance(result.Path)
	}

	if result.Reachable() {
		metrics.RecordPathQuery("reachable")
	} else {
		metrics.RecordPathQuery("unreachable")
	}
	return result, nil
}

// Connectivity reports the proximity graph's counts.
func (c *Controller) Connectivity() Connectivity {
	return Connectivity{
		Businesses: c.graph.Len(),
		Edges:      c.graph.EdgeCount(),
		Components: c.graph.ComponentCount(),
		Neighbors:  c.graph.Neighbors(),
	}
}

// Clusters returns the primary-category labels, sorted.
func (c *Controller) Clusters() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// ClusterMap returns a copy of the label to business id mapping.
func (c *Controller) ClusterMap() map[string][]string {
	out := make(map[string][]string, len(c.clusters))
	for label, ids := range c.clusters {
		out[label] = append([]string(nil), ids...)
	}
	return out
}

// BusinessesInCluster returns the businesses whose primary category is
// label, in dataset order. An unknown label yields nil.
func (c *Controller) BusinessesInCluster(label string) []*models.Business {
	ids := c.clusters[label]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*models.Business, 0, len(ids))
	for _, id := range ids {
		if b, ok := c.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// AllBusinesses returns a copy of the business slice in arena order.
func (c *Controller) AllBusinesses() []*models.Business {
	out := make([]*models.Business, len(c.dataset.Businesses))
	copy(out, c.dataset.Businesses)
	return out
}

// Nearby returns the businesses within radiusKm of a point, closest first.
// A limit of zero or less returns every hit.
func (c *Controller) Nearby(lat, lon, radiusKm float64, limit int) []NearbyBusiness {
	hits := c.grid.QueryNearby(lat, lon, radiusKm)
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]NearbyBusiness, len(hits))
	for i, h := range hits {
		out[i] = NearbyBusiness{Business: h.Entry.Value, DistanceKm: h.DistanceKm}
	}
	return out
}

// Dataset returns the dataset the controller was built from.
func (c *Controller) Dataset() *models.Dataset {
	return c.dataset
}

// Names returns the name index.
func (c *Controller) Names() *index.NameIndex {
	return c.names
}

// Engine returns the similarity engine.
func (c *Controller) Engine() *recommend.Engine {
	return c.engine
}

// BuiltAt returns when Build finished.
func (c *Controller) BuiltAt() time.Time {
	return c.builtAt
}
