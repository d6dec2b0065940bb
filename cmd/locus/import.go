// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/locus/internal/ingest"
	"github.com/tomtom215/locus/internal/logging"
	"github.com/tomtom215/locus/internal/store"
	"github.com/tomtom215/locus/internal/supervisor/services"
)

// importResult is the JSON output of the import command.
type importResult struct {
	Manifest  *store.Manifest        `json:"manifest"`
	Integrity ingest.IntegrityReport `json:"integrity"`
	Skipped   int                    `json:"skipped_records"`
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the JSON lines files and write a snapshot to the store",
		Long: `Import reads --businesses and --reviews, builds the proximity graph to
validate the dataset, and writes the businesses, reviews, name index and
clusters to the snapshot store. An existing snapshot is replaced.

Example:
  locus import --businesses business.json --reviews review.json --store data/locus.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts)
		},
	}
}

func runImport(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	// Import always reads the files, even when the config selects the store.
	cfg.Data.LoadFromStore = false

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var summary *ingest.Summary
	build := services.NewBuildService(func(ctx context.Context) (*store.Snapshot, error) {
		ds, s, err := readFiles(ctx, cfg)
		if err != nil {
			return nil, err
		}
		summary = s
		return &store.Snapshot{Dataset: ds}, nil
	}, &cfg.Recommend, logging.WithComponent("search"))

	start := time.Now()
	if err := build.Serve(cmd.Context()); !errors.Is(err, suture.ErrDoNotRestart) {
		return err
	}

	writer := services.NewSnapshotService(build,
		store.NewGuarded(st, store.DefaultGuardSettings(), logging.WithComponent("store")),
		services.SnapshotServiceConfig{}, logging.WithComponent("snapshot"))
	manifest, err := writer.SnapshotOnce(cmd.Context())
	if err != nil {
		return err
	}

	result := importResult{Manifest: manifest, Integrity: summary.Integrity}
	if summary.Businesses != nil {
		result.Skipped += summary.Businesses.Skipped()
	}
	if summary.Reviews != nil {
		result.Skipped += summary.Reviews.Skipped()
	}

	return render(cmd, opts, result, func(p *printer) {
		p.line("Imported %d businesses and %d reviews into %s", manifest.Businesses, manifest.Reviews, cfg.Data.StorePath)
		p.line("Snapshot %s written in %s", manifest.SnapshotID, time.Since(start).Round(time.Millisecond))
		if result.Skipped > 0 {
			p.line("Skipped %d malformed, invalid or duplicate records", result.Skipped)
		}
		if summary.Integrity.Orphaned > 0 {
			p.line("Dropped %d reviews of %d unknown businesses",
				summary.Integrity.Orphaned, len(summary.Integrity.UnknownBusinesses))
		}
	})
}
