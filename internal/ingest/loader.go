// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/locus/internal/metrics"
	"github.com/tomtom215/locus/internal/models"
	"github.com/tomtom215/locus/internal/validation"
)

const (
	// DefaultMaxRecords caps the records read from one file.
	DefaultMaxRecords = 10000

	// maxLineBytes bounds a single JSON line. Review texts run to a few KB,
	// business lines with hours and attributes stay well below this.
	maxLineBytes = 4 * 1024 * 1024

	kindBusiness = "business"
	kindReview   = "review"
)

// LoadStats describes one pass over an input file.
type LoadStats struct {
	// Kind is "business" or "review".
	Kind string

	// Lines is the number of non-blank lines read.
	Lines int

	// Loaded is the number of records returned.
	Loaded int

	// Malformed counts lines that did not decode.
	Malformed int

	// Invalid counts records that decoded but failed validation.
	Invalid int

	// Duplicates counts business records whose id was already loaded.
	Duplicates int

	// Truncated is set when the record cap stopped reading before EOF.
	Truncated bool

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns how long the pass took.
func (s *LoadStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Skipped returns the number of lines that produced no record.
func (s *LoadStats) Skipped() int {
	return s.Malformed + s.Invalid + s.Duplicates
}

// Loader decodes JSON lines input into model records.
type Loader struct {
	maxRecords int
	logger     zerolog.Logger

	// integrity receives one entry per orphaned review.
	integrity zerolog.Logger
}

// NewLoader creates a loader reading at most maxRecords records per file
// (DefaultMaxRecords if maxRecords <= 0).
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(maxRecords int, logger zerolog.Logger) *Loader {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Loader{
		maxRecords: maxRecords,
		logger:     logger.With().Str("component", "ingest").Logger(),
		integrity:  zerolog.Nop(),
	}
}

// SetIntegrityLogger directs orphaned review entries to l in addition to the
// application log.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (l *Loader) SetIntegrityLogger(logger zerolog.Logger) {
	l.integrity = logger
}

// MaxRecords returns the per-file record cap.
func (l *Loader) MaxRecords() int {
	return l.maxRecords
}

// LoadBusinesses reads business records from r. The first record of each
// business id wins; later ones are skipped.
func (l *Loader) LoadBusinesses(ctx context.Context, r io.Reader) ([]*models.Business, *LoadStats, error) {
	var businesses []*models.Business
	firstLine := make(map[string]int)
	stats, err := l.scan(ctx, r, kindBusiness, func(line []byte, lineNo int, stats *LoadStats) {
		var raw rawBusiness
		if err := json.Unmarshal(line, &raw); err != nil {
			stats.Malformed++
			l.logger.Warn().Err(err).Int("line", lineNo).Msg("Skipping malformed business record")
			return
		}
		biz := raw.toModel()
		if verr := validation.ValidateStruct(biz); verr != nil {
			stats.Invalid++
			l.logger.Warn().
				Str("business_id", raw.BusinessID).
				Int("line", lineNo).
				Str("reason", verr.Error()).
				Msg("Skipping invalid business record")
			return
		}
		if first, dup := firstLine[biz.ID]; dup {
			stats.Duplicates++
			l.logger.Warn().
				Str("business_id", biz.ID).
				Int("line", lineNo).
				Int("first_line", first).
				Msg("Skipping duplicate business record")
			return
		}
		firstLine[biz.ID] = lineNo
		businesses = append(businesses, biz)
		stats.Loaded++
	})
	if err != nil {
		return nil, stats, err
	}
	return businesses, stats, nil
}

// LoadReviews reads review records from r. Business ids are not checked
// here; see ValidateReviews.
func (l *Loader) LoadReviews(ctx context.Context, r io.Reader) ([]models.Review, *LoadStats, error) {
	var reviews []models.Review
	stats, err := l.scan(ctx, r, kindReview, func(line []byte, lineNo int, stats *LoadStats) {
		var raw rawReview
		if err := json.Unmarshal(line, &raw); err != nil {
			stats.Malformed++
			l.logger.Warn().Err(err).Int("line", lineNo).Msg("Skipping malformed review record")
			return
		}
		reviews = append(reviews, raw.toModel())
		stats.Loaded++
	})
	if err != nil {
		return nil, stats, err
	}
	return reviews, stats, nil
}

// scan feeds each non-blank line to handle until EOF or the record cap.
func (l *Loader) scan(ctx context.Context, r io.Reader, kind string, handle func(line []byte, lineNo int, stats *LoadStats)) (*LoadStats, error) {
	stats := &LoadStats{Kind: kind, StartTime: time.Now()}
	defer func() {
		stats.EndTime = time.Now()
		metrics.RecordIngest(kind, "loaded", stats.Loaded)
		metrics.RecordIngest(kind, "malformed", stats.Malformed)
		metrics.RecordIngest(kind, "invalid", stats.Invalid)
		metrics.RecordIngest(kind, "duplicate", stats.Duplicates)
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if stats.Lines == l.maxRecords {
			stats.Truncated = true
			metrics.RecordIngest(kind, "truncated", 1)
			break
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		handle(line, lineNo, stats)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read %s records: %w", kind, err)
	}

	l.logger.Info().
		Str("kind", kind).
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped()).
		Bool("truncated", stats.Truncated).
		Dur("duration", stats.Duration()).
		Msg("Records loaded")

	return stats, nil
}
