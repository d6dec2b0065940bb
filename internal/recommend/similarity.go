// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"math"
	"sort"
)

// CosineSimilarity computes the cosine of the angle between two vectors over
// the union of their terms. Returns 0 if either norm is 0.
//
// Terms are visited in sorted order so equal inputs always produce the same
// bits; ranking ties depend on it.
func CosineSimilarity(a, b Vector) float64 {
	var dot, normA, normB float64

	for _, term := range sortedTerms(a) {
		wa := a[term]
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, term := range sortedTerms(b) {
		wb := b[term]
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func sortedTerms(v Vector) []string {
	terms := make([]string, 0, len(v))
	for t := range v {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// CategorySimilarity is common / (len(a) + len(b) - common), where common
// counts the labels of a that also appear in b. Duplicates are not removed
// first. Returns 0 when both lists are empty.
func CategorySimilarity(a, b []string) float64 {
	common := 0
	for _, label := range a {
		for _, other := range b {
			if label == other {
				common++
				break
			}
		}
	}

	denominator := len(a) + len(b) - common
	if denominator <= 0 {
		return 0
	}
	return float64(common) / float64(denominator)
}
