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

	"github.com/tomtom215/locus/internal/search"
	"github.com/tomtom215/locus/internal/store"
)

// ErrNotBuilt is returned by SnapshotOnce before the graph is built.
var ErrNotBuilt = errors.New("graph not built")

// ControllerSource yields the built controller. BuildService implements it.
type ControllerSource interface {
	Built() <-chan struct{}
	Controller() *search.Controller
}

// SnapshotStore is the write side of the snapshot store. *store.Guarded
// implements it.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap *store.Snapshot) (*store.Manifest, error)
	Manifest(ctx context.Context) (*store.Manifest, error)
}

// SnapshotServiceConfig holds configuration for the snapshot service.
type SnapshotServiceConfig struct {
	// Interval is how often the stored snapshot is checked.
	// Default: 1h
	Interval time.Duration

	// Timeout bounds a single snapshot write.
	// Default: 10m
	Timeout time.Duration
}

// SnapshotService persists the built dataset, its name index and clusters.
// It writes once as soon as the graph is built. On every interval it checks
// the stored manifest and rewrites the snapshot only if it is missing or
// was replaced by another writer. The dataset never changes after the build.
type SnapshotService struct {
	source ControllerSource
	store  SnapshotStore
	config SnapshotServiceConfig
	logger zerolog.Logger
	name   string

	mu     sync.Mutex
	lastID string
}

// NewSnapshotService creates a snapshot service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSnapshotService(source ControllerSource, st SnapshotStore, cfg SnapshotServiceConfig, logger zerolog.Logger) *SnapshotService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &SnapshotService{
		source: source,
		store:  st,
		config: cfg,
		logger: logger.With().Str("service", "snapshot").Logger(),
		name:   "snapshot-writer",
	}
}

// Serve implements suture.Service. Write failures are logged, never
// returned; the store's circuit breaker decides when to stop trying.
func (s *SnapshotService) Serve(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.source.Built():
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("Snapshot service running")
	if _, err := s.SnapshotOnce(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Initial snapshot failed (will retry on schedule)")
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Snapshot service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Scheduled snapshot failed")
			}
		}
	}
}

// refresh rewrites the snapshot if the stored manifest is not the one this
// service last wrote.
func (s *SnapshotService) refresh(ctx context.Context) error {
	current, err := s.store.Manifest(ctx)
	switch {
	case errors.Is(err, store.ErrNoSnapshot):
		s.logger.Info().Msg("Snapshot missing from store, rewriting")
	case err != nil:
		return fmt.Errorf("read manifest: %w", err)
	case current.SnapshotID == s.LastSnapshotID():
		s.logger.Debug().Str("snapshot_id", current.SnapshotID).Msg("Snapshot current")
		return nil
	default:
		s.logger.Info().Str("snapshot_id", current.SnapshotID).Msg("Snapshot replaced externally, rewriting")
	}

	_, err = s.SnapshotOnce(ctx)
	return err
}

// SnapshotOnce writes the dataset, name index and clusters of the built
// controller as one snapshot.
func (s *SnapshotService) SnapshotOnce(ctx context.Context) (*store.Manifest, error) {
	c := s.source.Controller()
	if c == nil {
		return nil, ErrNotBuilt
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	manifest, err := s.store.SaveSnapshot(writeCtx, &store.Snapshot{
		Dataset:  c.Dataset(),
		Names:    c.Names(),
		Clusters: c.ClusterMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	s.mu.Lock()
	s.lastID = manifest.SnapshotID
	s.mu.Unlock()

	s.logger.Info().
		Str("snapshot_id", manifest.SnapshotID).
		Int("businesses", manifest.Businesses).
		Int("reviews", manifest.Reviews).
		Dur("duration", time.Since(start)).
		Msg("Snapshot written")

	return manifest, nil
}

// LastSnapshotID returns the id of the last snapshot this service wrote.
func (s *SnapshotService) LastSnapshotID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID
}

// String implements fmt.Stringer for suture's logs.
func (s *SnapshotService) String() string {
	return s.name
}
