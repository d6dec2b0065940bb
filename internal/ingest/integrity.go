// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package ingest

import (
	"time"

	"github.com/tomtom215/locus/internal/metrics"
	"github.com/tomtom215/locus/internal/models"
)

// IntegrityReport summarizes a review linkage check.
type IntegrityReport struct {
	Checked  int `json:"checked"`
	Valid    int `json:"valid"`
	Orphaned int `json:"orphaned"`

	// UnknownBusinesses holds each unknown business id once, in first-seen order.
	UnknownBusinesses []string `json:"unknown_businesses,omitempty"`
}

// ValidateReviews keeps the reviews whose business id belongs to businesses.
// Every other review is logged with a timestamp and dropped.
func (l *Loader) ValidateReviews(businesses []*models.Business, reviews []models.Review) ([]models.Review, IntegrityReport) {
	known := make(map[string]struct{}, len(businesses))
	for _, b := range businesses {
		known[b.ID] = struct{}{}
	}

	report := IntegrityReport{Checked: len(reviews)}
	seen := make(map[string]struct{})
	valid := make([]models.Review, 0, len(reviews))

	for i := range reviews {
		rev := &reviews[i]
		if _, ok := known[rev.BusinessID]; ok {
			valid = append(valid, *rev)
			continue
		}

		report.Orphaned++
		if _, dup := seen[rev.BusinessID]; !dup {
			seen[rev.BusinessID] = struct{}{}
			report.UnknownBusinesses = append(report.UnknownBusinesses, rev.BusinessID)
		}

		at := time.Now()
		l.logger.Warn().
			Time("at", at).
			Str("review_id", rev.ReviewID).
			Str("business_id", rev.BusinessID).
			Msg("Dropping review for unknown business")
		l.integrity.Warn().
			Time("at", at).
			Str("review_id", rev.ReviewID).
			Str("business_id", rev.BusinessID).
			Msg("failed to link review to business")
	}
	report.Valid = len(valid)

	metrics.RecordIngest(kindReview, "orphaned", report.Orphaned)
	return valid, report
}
