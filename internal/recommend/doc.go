// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

// Package recommend ranks businesses by similarity to a target business.
//
// # Scoring
//
// Each business is profiled from its own reviews. Review text is lowercased,
// stripped of everything but letters, digits and whitespace, filtered of
// English stopwords, and then extended with the business's category labels
// and the names of its true attributes. Terms are accumulated in a
// FrequencyTable built fresh for every profile.
//
// With D the number of reviews of the business being profiled:
//
//	tf(t)  = count(t) / D
//	idf(t) = ln(D / df(t))
//
// D is per business, not corpus-wide, so a term present in every review of a
// business carries zero weight for that business.
//
// The blended score of a candidate is
//
//	score = 0.3 * cosine(target, candidate) + 0.7 * categoryOverlap
//
// where categoryOverlap = common / (|A| + |B| - common). Candidates are
// sorted by score descending with a stable sort and the first TopK returned.
//
// # Components
//
//   - Ranker: stateless scoring; safe for concurrent use
//   - Engine: owns the dataset, a review Corpus and a result cache
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), businesses, reviews, logger)
//	if err != nil {
//	    return err
//	}
//	res, err := engine.FindSimilar(ctx, "biz-42")
//	for _, s := range res.Similar {
//	    fmt.Println(s.Business.Name, s.Score)
//	}
//
// # Edge Cases
//
// An unknown target, or a target with no reviews, produces an empty result.
// The second case is logged at info level. Candidates without reviews still
// score on category overlap.
package recommend
