// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"github.com/tomtom215/locus/internal/models"
)

// ScoredBusiness is a ranked candidate with its score components.
type ScoredBusiness struct {
	// Business is the candidate.
	Business *models.Business `json:"-"`

	// Score is the blended score used for ranking.
	Score float64 `json:"score"`

	// Text is the cosine similarity of review tf-idf vectors.
	Text float64 `json:"text"`

	// Category is the category overlap ratio.
	Category float64 `json:"category"`
}

// Corpus groups review documents by the business they belong to.
// It is read-only after construction.
type Corpus map[string][]models.Review

// NewCorpus groups reviews by BusinessID, preserving input order.
func NewCorpus(reviews []models.Review) Corpus {
	c := make(Corpus)
	for i := range reviews {
		id := reviews[i].BusinessID
		c[id] = append(c[id], reviews[i])
	}
	return c
}

// Documents returns the reviews of businessID.
func (c Corpus) Documents(businessID string) []models.Review {
	return c[businessID]
}

// Businesses returns the businesses of scored, in order.
func Businesses(scored []ScoredBusiness) []*models.Business {
	out := make([]*models.Business, len(scored))
	for i := range scored {
		out[i] = scored[i].Business
	}
	return out
}
