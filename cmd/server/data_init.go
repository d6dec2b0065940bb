// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/locus/internal/config"
	"github.com/tomtom215/locus/internal/ingest"
	"github.com/tomtom215/locus/internal/logging"
	"github.com/tomtom215/locus/internal/store"
	"github.com/tomtom215/locus/internal/supervisor/services"
)

// openStore opens the snapshot store, or returns nil when none is configured.
func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Data.StorePath == "" {
		logging.Info().Msg("Snapshot store disabled (LOCUS_STORE_PATH not set)")
		return nil, nil
	}

	st, err := store.Open(store.Config{
		Path:            cfg.Data.StorePath,
		BatchSize:       cfg.Snapshot.BatchSize,
		WritesPerSecond: cfg.Snapshot.WritesPerSecond,
		Compression:     true,
	}, logging.WithComponent("store"))
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	logging.Info().Str("path", cfg.Data.StorePath).Msg("Snapshot store opened")
	return st, nil
}

// newIngestLoader creates the file loader. The returned closer releases the
// integrity log and is never nil.
func newIngestLoader(cfg *config.Config) (*ingest.Loader, io.Closer, error) {
	loader := ingest.NewLoader(cfg.Data.MaxRecords, logging.WithComponent("ingest"))
	if cfg.Ingest.IntegrityLog == "" {
		return loader, nopCloser{}, nil
	}

	integrity, closer, err := logging.NewFileLogger(cfg.Ingest.IntegrityLog)
	if err != nil {
		return nil, nil, fmt.Errorf("integrity log: %w", err)
	}
	loader.SetIntegrityLogger(integrity)
	logging.Info().Str("path", cfg.Ingest.IntegrityLog).Msg("Integrity log enabled")
	return loader, closer, nil
}

// newDatasetLoader returns the loader the build service calls. Every call
// reads the source again, so a retried build never reuses mutated businesses.
func newDatasetLoader(cfg *config.Config, loader *ingest.Loader, st *store.Store) services.DatasetLoader {
	if cfg.Data.LoadFromStore {
		return func(ctx context.Context) (*store.Snapshot, error) {
			snap, manifest, err := st.LoadSnapshot(ctx, cfg.Recommend.IndexBuckets)
			if err != nil {
				return nil, fmt.Errorf("load snapshot: %w", err)
			}
			logging.Info().
				Str("snapshot_id", manifest.SnapshotID).
				Time("created_at", manifest.CreatedAt).
				Bool("derived", manifest.Derived).
				Msg("Dataset loaded from snapshot")
			return snap, nil
		}
	}

	return func(ctx context.Context) (*store.Snapshot, error) {
		ds, summary, err := loader.LoadFiles(ctx, cfg.Data.BusinessesPath, cfg.Data.ReviewsPath)
		if err != nil {
			return nil, err
		}
		logging.Info().
			Int("businesses", summary.Businesses.Loaded).
			Int("duplicate_businesses", summary.Businesses.Duplicates).
			Int("reviews", len(ds.Reviews)).
			Int("orphaned_reviews", summary.Integrity.Orphaned).
			Msg("Dataset loaded from files")
		return &store.Snapshot{Dataset: ds}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
