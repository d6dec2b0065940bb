// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/locus/internal/config"
	"github.com/tomtom215/locus/internal/ingest"
	"github.com/tomtom215/locus/internal/logging"
	"github.com/tomtom215/locus/internal/models"
	"github.com/tomtom215/locus/internal/search"
	"github.com/tomtom215/locus/internal/store"
)

var errNoDataset = errors.New("no dataset: pass --businesses, or --store with an imported snapshot")

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	storePath  string
	businesses string
	reviews    string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "locus",
		Short: "Locus - geographic business linking and similarity search",
		Long: `Locus links businesses into a nearest-neighbor proximity graph and
answers "find related" queries over it.

The dataset is read from JSON lines files (--businesses, --reviews) or from a
snapshot previously written by "locus import" or the server (--store). When
both are given the files win.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&opts.storePath, "store", "", "snapshot store directory (overrides LOCUS_STORE_PATH)")
	flags.StringVar(&opts.businesses, "businesses", "", "businesses JSON lines file (overrides LOCUS_BUSINESSES_PATH)")
	flags.StringVar(&opts.reviews, "reviews", "", "reviews JSON lines file (overrides LOCUS_REVIEWS_PATH)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		newImportCmd(opts),
		newSimilarCmd(opts),
		newPathCmd(opts),
		newConnectivityCmd(opts),
		newClustersCmd(opts),
		newNearbyCmd(opts),
	)
	return root
}

// loadConfig reads the configuration and applies the flag overrides. It
// also routes logs to the command's stderr.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.storePath != "" {
		cfg.Data.StorePath = o.storePath
		cfg.Data.LoadFromStore = true
	}
	if o.businesses != "" {
		cfg.Data.BusinessesPath = o.businesses
		cfg.Data.ReviewsPath = o.reviews
		cfg.Data.LoadFromStore = false
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	return cfg, nil
}

// openStore opens the configured snapshot store.
func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Data.StorePath == "" {
		return nil, errors.New("no snapshot store: pass --store or set LOCUS_STORE_PATH")
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
	return st, nil
}

// readFiles loads the dataset from the configured JSON lines files.
func readFiles(ctx context.Context, cfg *config.Config) (*models.Dataset, *ingest.Summary, error) {
	if cfg.Data.BusinessesPath == "" {
		return nil, nil, errNoDataset
	}

	loader := ingest.NewLoader(cfg.Data.MaxRecords, logging.WithComponent("ingest"))
	if cfg.Ingest.IntegrityLog != "" {
		integrity, closer, err := logging.NewFileLogger(cfg.Ingest.IntegrityLog)
		if err != nil {
			return nil, nil, fmt.Errorf("integrity log: %w", err)
		}
		defer closer.Close()
		loader.SetIntegrityLogger(integrity)
	}
	return loader.LoadFiles(ctx, cfg.Data.BusinessesPath, cfg.Data.ReviewsPath)
}

// readSnapshot loads the dataset from the store or the files, whichever
// the configuration selects. Only a stored snapshot carries the name index
// and clusters.
func readSnapshot(ctx context.Context, cfg *config.Config) (*store.Snapshot, error) {
	if !cfg.Data.LoadFromStore {
		ds, _, err := readFiles(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &store.Snapshot{Dataset: ds}, nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	snap, _, err := st.LoadSnapshot(ctx, cfg.Recommend.IndexBuckets)
	if errors.Is(err, store.ErrNoSnapshot) {
		return nil, fmt.Errorf("%s holds no snapshot; run \"locus import\" first", cfg.Data.StorePath)
	}
	return snap, err
}

// controller loads the configured dataset and builds the query structures.
func (o *options) controller(cmd *cobra.Command) (*search.Controller, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	snap, err := readSnapshot(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	pre := search.Prebuilt{Names: snap.Names, Clusters: snap.Clusters}
	return search.BuildWith(snap.Dataset, pre, &cfg.Recommend, logging.WithComponent("search"))
}
