// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/locus/internal/models"
)

// Ranker scores every business against a target by blending review text
// similarity with category overlap. It holds no per-query state; every call
// builds its own frequency tables, so a Ranker is safe for concurrent use.
type Ranker struct {
	weights BlendWeights
	topK    int
	logger  zerolog.Logger
}

// NewRanker creates a ranker from cfg (DefaultConfig if nil).
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRanker(cfg *Config, logger zerolog.Logger) *Ranker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Ranker{
		weights: cfg.Weights,
		topK:    cfg.TopK,
		logger:  logger.With().Str("component", "ranker").Logger(),
	}
}

// FindSimilar returns up to TopK businesses most similar to the business with
// id targetID. Returns nil if the target is unknown or has no reviews.
func (r *Ranker) FindSimilar(targetID string, businesses []*models.Business, reviews []models.Review) []*models.Business {
	return Businesses(r.Rank(targetID, businesses, NewCorpus(reviews)))
}

// Rank scores every business other than the target and returns the best TopK,
// highest score first. Equal scores keep the order of businesses.
func (r *Ranker) Rank(targetID string, businesses []*models.Business, corpus Corpus) []ScoredBusiness {
	var target *models.Business
	for _, b := range businesses {
		if b.ID == targetID {
			target = b
			break
		}
	}
	if target == nil {
		r.logger.Debug().Str("business_id", targetID).Msg("target business not found")
		return nil
	}

	targetDocs := corpus.Documents(target.ID)
	if len(targetDocs) == 0 {
		r.logger.Info().
			Str("business_id", target.ID).
			Str("name", target.Name).
			Msg("no reviews found for target business")
		return nil
	}
	targetVec := Profile(target, targetDocs)

	scored := make([]ScoredBusiness, 0, len(businesses))
	for _, b := range businesses {
		if b.ID == target.ID {
			continue
		}
		text := CosineSimilarity(targetVec, Profile(b, corpus.Documents(b.ID)))
		category := CategorySimilarity(target.Categories, b.Categories)
		scored = append(scored, ScoredBusiness{
			Business: b,
			Score:    r.weights.Text*text + r.weights.Category*category,
			Text:     text,
			Category: category,
		})
	}

	candidates := len(scored)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > r.topK {
		scored = scored[:r.topK]
	}

	r.logger.Debug().
		Str("business_id", target.ID).
		Int("target_reviews", len(targetDocs)).
		Int("candidates", candidates).
		Int("returned", len(scored)).
		Msg("similarity ranking complete")

	return scored
}
