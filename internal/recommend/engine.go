// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/locus/internal/cache"
	"github.com/tomtom215/locus/internal/metrics"
	"github.com/tomtom215/locus/internal/models"
)

// Engine answers similarity queries over a fixed dataset. Reviews are grouped
// once at construction and rankings are memoized per target.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	ranker *Ranker
	logger zerolog.Logger

	businesses []*models.Business
	byID       map[string]*models.Business
	corpus     Corpus

	// nil when caching is disabled
	cache *cache.ResultCache[string, []ScoredBusiness]

	requestCount atomic.Int64
}

// Result is the outcome of a similarity query.
type Result struct {
	// Target is the queried business, nil if unknown.
	Target *models.Business

	// Similar holds the ranked candidates, best first.
	Similar []ScoredBusiness

	// Cached reports whether Similar came from the result cache.
	Cached bool
}

// Stats summarizes engine activity.
type Stats struct {
	Requests   int64            `json:"requests"`
	Businesses int              `json:"businesses"`
	Reviewed   int              `json:"reviewed_businesses"`
	Cache      cache.CacheStats `json:"cache"`
}

// NewEngine creates an engine over businesses and reviews.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, businesses []*models.Business, reviews []models.Review, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	byID := make(map[string]*models.Business, len(businesses))
	for _, b := range businesses {
		if _, dup := byID[b.ID]; !dup {
			byID[b.ID] = b
		}
	}

	e := &Engine{
		config:     cfg,
		ranker:     NewRanker(cfg, logger),
		logger:     logger.With().Str("component", "recommend").Logger(),
		businesses: businesses,
		byID:       byID,
		corpus:     NewCorpus(reviews),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewResultCache[string, []ScoredBusiness](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	e.logger.Info().
		Int("businesses", len(businesses)).
		Int("reviews", len(reviews)).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("similarity engine ready")

	return e, nil
}

// FindSimilar ranks the dataset against the business with id targetID.
// An unknown target or one without reviews yields an empty result, not an error.
func (e *Engine) FindSimilar(ctx context.Context, targetID string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.requestCount.Add(1)
	start := time.Now()

	target, ok := e.byID[targetID]
	if !ok {
		metrics.RecordSimilarityQuery("not_found", time.Since(start))
		return &Result{}, nil
	}

	if e.cache != nil {
		if similar, hit := e.cache.Get(targetID); hit {
			metrics.RecordResultCache(true)
			metrics.RecordSimilarityQuery("cached", time.Since(start))
			return &Result{Target: target, Similar: similar, Cached: true}, nil
		}
		metrics.RecordResultCache(false)
	}

	similar := e.ranker.Rank(targetID, e.businesses, e.corpus)
	if e.cache != nil {
		e.cache.Add(targetID, similar)
	}

	result := "found"
	if len(similar) == 0 {
		result = "empty"
	}
	metrics.RecordSimilarityQuery(result, time.Since(start))

	return &Result{Target: target, Similar: similar}, nil
}

// Purge drops all cached rankings.
func (e *Engine) Purge() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// GetStats returns current engine statistics.
func (e *Engine) GetStats() Stats {
	s := Stats{
		Requests:   e.requestCount.Load(),
		Businesses: len(e.businesses),
		Reviewed:   len(e.corpus),
	}
	if e.cache != nil {
		s.Cache = e.cache.Stats()
	}
	return s
}
