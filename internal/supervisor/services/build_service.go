// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/locus/internal/config"
	"github.com/tomtom215/locus/internal/search"
	"github.com/tomtom215/locus/internal/store"
)

// DatasetLoader produces a fresh snapshot. Each call must return businesses
// not shared with an earlier result, since building mutates them. The name
// index and clusters are optional and are rebuilt when nil.
type DatasetLoader func(ctx context.Context) (*store.Snapshot, error)

// BuildService loads the dataset and builds the search controller once.
// On success every registered callback receives the controller and the
// service exits with suture.ErrDoNotRestart. A failed load or build is
// returned to the supervisor, which retries with backoff.
type BuildService struct {
	load    DatasetLoader
	cfg     *config.RecommendConfig
	logger  zerolog.Logger
	name    string
	mu      sync.Mutex
	onBuilt []func(*search.Controller)
	built   chan struct{}
	result  *search.Controller
}

// NewBuildService creates a build service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuildService(load DatasetLoader, cfg *config.RecommendConfig, logger zerolog.Logger) *BuildService {
	return &BuildService{
		load:   load,
		cfg:    cfg,
		logger: logger.With().Str("service", "graph-build").Logger(),
		name:   "graph-build",
		built:  make(chan struct{}),
	}
}

// OnBuilt registers fn to receive the controller once it is built. It must
// be called before the service is started.
func (s *BuildService) OnBuilt(fn func(*search.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBuilt = append(s.onBuilt, fn)
}

// Built is closed once the controller is available.
func (s *BuildService) Built() <-chan struct{} {
	return s.built
}

// Controller returns the built controller, or nil before the build completes.
func (s *BuildService) Controller() *search.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Serve implements suture.Service.
func (s *BuildService) Serve(ctx context.Context) error {
	if s.Controller() != nil {
		return suture.ErrDoNotRestart
	}

	start := time.Now()
	s.logger.Info().Msg("Loading dataset")

	snap, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("load dataset: %w", err)
	}
	ds := snap.Dataset

	c, err := search.BuildWith(ds, search.Prebuilt{Names: snap.Names, Clusters: snap.Clusters}, s.cfg, s.logger)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	conn := c.Connectivity()
	s.logger.Info().
		Int("businesses", conn.Businesses).
		Int("reviews", len(ds.Reviews)).
		Int("edges", conn.Edges).
		Int("components", conn.Components).
		Dur("duration", time.Since(start)).
		Msg("Graph ready")

	s.mu.Lock()
	s.result = c
	callbacks := append([]func(*search.Controller){}, s.onBuilt...)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(c)
	}
	close(s.built)

	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer for suture's logs.
func (s *BuildService) String() string {
	return s.name
}
