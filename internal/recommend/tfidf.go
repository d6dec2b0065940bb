// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"math"
	"strconv"

	"github.com/tomtom215/locus/internal/models"
)

// Vector maps a term to its tf-idf weight.
type Vector map[string]float64

// Accumulate tokenizes every document of b (preprocessed, then enhanced with
// b's categories and true attributes) into a fresh FrequencyTable.
func Accumulate(b *models.Business, docs []models.Review) *FrequencyTable {
	table := NewFrequencyTable()
	for i := range docs {
		docID := docs[i].ReviewID
		if docID == "" {
			docID = "#" + strconv.Itoa(i)
		}
		for _, term := range Terms(Enhance(Preprocess(docs[i].Text), b)) {
			table.Add(term, docID)
		}
	}
	return table
}

// TFIDF weights every term in table against the business's own document
// count D: tf = count/D and idf = ln(D/df). A term found in every document
// has idf 0.
func TFIDF(table *FrequencyTable, docCount int) Vector {
	v := make(Vector, table.Len())
	if docCount <= 0 {
		return v
	}
	d := float64(docCount)
	table.Range(func(s *TermStats) {
		tf := float64(s.Count) / d
		idf := math.Log(d / float64(s.DocumentFrequency()))
		v[s.Term] = tf * idf
	})
	return v
}

// Profile returns the tf-idf vector of b over its documents.
func Profile(b *models.Business, docs []models.Review) Vector {
	return TFIDF(Accumulate(b, docs), len(docs))
}
