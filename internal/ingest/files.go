// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/tomtom215/locus/internal/models"
)

// Summary collects the stats of a LoadFiles run.
type Summary struct {
	Businesses *LoadStats
	Reviews    *LoadStats
	Integrity  IntegrityReport
}

// LoadFiles reads both input files and returns a dataset whose reviews all
// reference a loaded business. An empty reviewsPath loads no reviews.
func (l *Loader) LoadFiles(ctx context.Context, businessesPath, reviewsPath string) (*models.Dataset, *Summary, error) {
	summary := &Summary{}

	businesses, stats, err := l.loadBusinessFile(ctx, businessesPath)
	if err != nil {
		return nil, summary, err
	}
	summary.Businesses = stats

	var reviews []models.Review
	if reviewsPath != "" {
		all, rstats, err := l.loadReviewFile(ctx, reviewsPath)
		if err != nil {
			return nil, summary, err
		}
		summary.Reviews = rstats
		reviews, summary.Integrity = l.ValidateReviews(businesses, all)
	}

	if summary.Integrity.Orphaned > 0 {
		l.logger.Warn().
			Int("orphaned", summary.Integrity.Orphaned).
			Int("unknown_businesses", len(summary.Integrity.UnknownBusinesses)).
			Msg("Some reviews reference unknown businesses")
	}

	return &models.Dataset{Businesses: businesses, Reviews: reviews}, summary, nil
}

func (l *Loader) loadBusinessFile(ctx context.Context, path string) ([]*models.Business, *LoadStats, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open businesses file: %w", err)
	}
	defer func() { _ = f.Close() }()

	businesses, stats, err := l.LoadBusinesses(ctx, f)
	if err != nil {
		return nil, stats, fmt.Errorf("load businesses from %s: %w", path, err)
	}
	return businesses, stats, nil
}

func (l *Loader) loadReviewFile(ctx context.Context, path string) ([]models.Review, *LoadStats, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open reviews file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reviews, stats, err := l.LoadReviews(ctx, f)
	if err != nil {
		return nil, stats, fmt.Errorf("load reviews from %s: %w", path, err)
	}
	return reviews, stats, nil
}
