// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/locus/internal/index"
	"github.com/tomtom215/locus/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	businessKeyPrefix = "business:"
	reviewKeyPrefix   = "review:"
	indexKeyPrefix    = "index:"
	clusterKeyPrefix  = "cluster:"
	manifestKey       = "meta:manifest"
)

// DefaultBatchSize is the number of records per write transaction.
const DefaultBatchSize = 500

var (
	// ErrNoSnapshot is returned when the store holds no completed snapshot.
	ErrNoSnapshot = errors.New("no snapshot in store")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store closed")
)

// Config holds store settings.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in memory. Used by tests and dry runs.
	InMemory bool

	// BatchSize is the number of records committed per transaction.
	BatchSize int

	// WritesPerSecond limits batch commits. Zero means unlimited.
	WritesPerSecond float64

	SyncWrites  bool
	Compression bool
}

// Manifest describes a completed snapshot.
type Manifest struct {
	SnapshotID string    `json:"snapshot_id"`
	CreatedAt  time.Time `json:"created_at"`
	Businesses int       `json:"businesses"`
	Reviews    int       `json:"reviews"`

	// Derived is set when the snapshot carries the name index and clusters.
	Derived      bool `json:"derived"`
	IndexEntries int  `json:"index_entries"`
	Clusters     int  `json:"clusters"`
}

// Snapshot is the unit the store saves and loads. Names and Clusters are
// optional; a snapshot saved without them loads with both nil.
type Snapshot struct {
	Dataset  *models.Dataset
	Names    *index.NameIndex
	Clusters map[string][]string
}

// Store is a BadgerDB-backed snapshot store. It is safe for concurrent use;
// concurrent SaveSnapshot calls are not serialized and should be avoided.
type Store struct {
	db        *badger.DB
	batchSize int
	limiter   *rate.Limiter
	logger    zerolog.Logger
	closed    atomic.Bool
}

// Open opens (or creates) the store described by cfg.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store path is required")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	s := &Store{
		db:        db,
		batchSize: batch,
		logger:    logger.With().Str("component", "store").Logger(),
	}
	if cfg.WritesPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.WritesPerSecond), 1)
	}
	return s, nil
}

// Close closes the underlying database. Further calls return ErrStoreClosed.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrStoreClosed
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}

func (s *Store) checkOpen() error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot and returns its manifest. The
// manifest is removed first and written after every record, index entry
// and cluster, so an interrupted save leaves the store without a snapshot
// rather than with a partial one.
func (s *Store) SaveSnapshot(ctx context.Context, snap *Snapshot) (*Manifest, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if snap == nil || snap.Dataset == nil {
		return nil, errors.New("snapshot dataset is required")
	}
	if (snap.Names == nil) != (snap.Clusters == nil) {
		return nil, errors.New("snapshot needs both the name index and clusters, or neither")
	}
	start := time.Now()
	ds := snap.Dataset

	if err := s.db.DropPrefix([]byte(manifestKey)); err != nil {
		return nil, fmt.Errorf("drop previous manifest: %w", err)
	}
	if err := s.db.DropPrefix(
		[]byte(businessKeyPrefix), []byte(reviewKeyPrefix),
		[]byte(indexKeyPrefix), []byte(clusterKeyPrefix),
	); err != nil {
		return nil, fmt.Errorf("drop previous snapshot: %w", err)
	}

	entries := make([]kv, 0, len(ds.Businesses))
	for i, b := range ds.Businesses {
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal business %s: %w", b.ID, err)
		}
		entries = append(entries, kv{key: positionKey(businessKeyPrefix, i), value: data})
	}
	if err := s.writeBatches(ctx, entries); err != nil {
		return nil, fmt.Errorf("write businesses: %w", err)
	}

	entries = entries[:0]
	for i := range ds.Reviews {
		data, err := json.Marshal(&ds.Reviews[i])
		if err != nil {
			return nil, fmt.Errorf("marshal review %s: %w", ds.Reviews[i].ReviewID, err)
		}
		entries = append(entries, kv{key: positionKey(reviewKeyPrefix, i), value: data})
	}
	if err := s.writeBatches(ctx, entries); err != nil {
		return nil, fmt.Errorf("write reviews: %w", err)
	}

	manifest := &Manifest{
		SnapshotID: uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Businesses: len(ds.Businesses),
		Reviews:    len(ds.Reviews),
	}

	if snap.Names != nil {
		n, err := s.saveIndex(ctx, snap.Names)
		if err != nil {
			return nil, err
		}
		if err := s.saveClusters(ctx, snap.Clusters); err != nil {
			return nil, err
		}
		manifest.Derived = true
		manifest.IndexEntries = n
		manifest.Clusters = len(snap.Clusters)
	}

	if err := s.putJSON(manifestKey, manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	s.logger.Info().
		Str("snapshot_id", manifest.SnapshotID).
		Int("businesses", manifest.Businesses).
		Int("reviews", manifest.Reviews).
		Bool("derived", manifest.Derived).
		Dur("duration", time.Since(start)).
		Msg("Snapshot saved")

	return manifest, nil
}

// LoadSnapshot reads the stored snapshot. Businesses come back in saved
// order with Index reset to -1. When the snapshot carries a name index it is
// restored into an index with indexBuckets buckets.
func (s *Store) LoadSnapshot(ctx context.Context, indexBuckets int) (*Snapshot, *Manifest, error) {
	if err := s.checkOpen(); err != nil {
		return nil, nil, err
	}

	manifest, err := s.Manifest(ctx)
	if err != nil {
		return nil, nil, err
	}

	ds, err := s.loadDataset(ctx, manifest)
	if err != nil {
		return nil, nil, err
	}
	snap := &Snapshot{Dataset: ds}
	if !manifest.Derived {
		return snap, manifest, nil
	}

	snap.Names = index.New(indexBuckets)
	n, err := s.loadIndex(ctx, snap.Names)
	if err != nil {
		return nil, nil, err
	}
	snap.Clusters, err = s.loadClusters(ctx)
	if err != nil {
		return nil, nil, err
	}
	if n != manifest.IndexEntries || len(snap.Clusters) != manifest.Clusters {
		return nil, nil, fmt.Errorf("snapshot %s incomplete: have %d index entries and %d clusters, manifest lists %d and %d",
			manifest.SnapshotID, n, len(snap.Clusters), manifest.IndexEntries, manifest.Clusters)
	}
	return snap, manifest, nil
}

func (s *Store) loadDataset(ctx context.Context, manifest *Manifest) (*models.Dataset, error) {
	ds := &models.Dataset{
		Businesses: make([]*models.Business, 0, manifest.Businesses),
		Reviews:    make([]models.Review, 0, manifest.Reviews),
	}

	err := s.scan(ctx, businessKeyPrefix, func(_ string, val []byte) error {
		var b models.Business
		if err := json.Unmarshal(val, &b); err != nil {
			return fmt.Errorf("unmarshal business: %w", err)
		}
		b.Index = -1
		ds.Businesses = append(ds.Businesses, &b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.scan(ctx, reviewKeyPrefix, func(_ string, val []byte) error {
		var r models.Review
		if err := json.Unmarshal(val, &r); err != nil {
			return fmt.Errorf("unmarshal review: %w", err)
		}
		ds.Reviews = append(ds.Reviews, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(ds.Businesses) != manifest.Businesses || len(ds.Reviews) != manifest.Reviews {
		return nil, fmt.Errorf("snapshot %s incomplete: have %d businesses and %d reviews, manifest lists %d and %d",
			manifest.SnapshotID, len(ds.Businesses), len(ds.Reviews), manifest.Businesses, manifest.Reviews)
	}
	return ds, nil
}

// Manifest returns the manifest of the stored snapshot.
func (s *Store) Manifest(ctx context.Context) (*Manifest, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var m Manifest
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(manifestKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSnapshot
		}
		if err != nil {
			return fmt.Errorf("get manifest: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		})
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Clear removes every key from the store.
func (s *Store) Clear() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	return nil
}
