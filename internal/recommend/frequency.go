// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"hash/fnv"
	"sort"
)

const (
	initialFrequencyBuckets = 8
	maxFrequencyLoad        = 0.75
)

// TermStats is the accumulated state for one term across one business's
// documents.
type TermStats struct {
	Term string

	// Count is the cumulative number of occurrences.
	Count int

	// Documents is the set of distinct document ids containing the term.
	Documents map[string]struct{}
}

// DocumentFrequency returns the number of distinct documents containing the term.
func (s *TermStats) DocumentFrequency() int {
	return len(s.Documents)
}

type frequencyNode struct {
	stats TermStats
	next  *frequencyNode
}

// FrequencyTable is a chained hash table accumulating term statistics for a
// single business. Create one per computation; it is not safe for concurrent
// use and is never shared between queries.
type FrequencyTable struct {
	buckets []*frequencyNode
	size    int
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{buckets: make([]*frequencyNode, initialFrequencyBuckets)}
}

func bucketIndex(term string, buckets int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return int(h.Sum32() & uint32(buckets-1))
}

// Add records one occurrence of term in document docID.
func (t *FrequencyTable) Add(term, docID string) {
	i := bucketIndex(term, len(t.buckets))
	for n := t.buckets[i]; n != nil; n = n.next {
		if n.stats.Term == term {
			n.stats.Count++
			n.stats.Documents[docID] = struct{}{}
			return
		}
	}

	t.buckets[i] = &frequencyNode{
		stats: TermStats{
			Term:      term,
			Count:     1,
			Documents: map[string]struct{}{docID: {}},
		},
		next: t.buckets[i],
	}
	t.size++

	if float64(t.size) > maxFrequencyLoad*float64(len(t.buckets)) {
		t.grow()
	}
}

// grow doubles the bucket array. Bucket counts stay powers of two.
func (t *FrequencyTable) grow() {
	old := t.buckets
	t.buckets = make([]*frequencyNode, len(old)*2)
	for _, head := range old {
		for n := head; n != nil; {
			next := n.next
			i := bucketIndex(n.stats.Term, len(t.buckets))
			n.next = t.buckets[i]
			t.buckets[i] = n
			n = next
		}
	}
}

// Get returns the statistics for term.
func (t *FrequencyTable) Get(term string) (*TermStats, bool) {
	for n := t.buckets[bucketIndex(term, len(t.buckets))]; n != nil; n = n.next {
		if n.stats.Term == term {
			return &n.stats, true
		}
	}
	return nil, false
}

// Len returns the number of distinct terms.
func (t *FrequencyTable) Len() int {
	return t.size
}

// Range calls fn for every term in an unspecified order.
func (t *FrequencyTable) Range(fn func(stats *TermStats)) {
	for _, head := range t.buckets {
		for n := head; n != nil; n = n.next {
			fn(&n.stats)
		}
	}
}

// Terms returns all terms in sorted order.
func (t *FrequencyTable) Terms() []string {
	terms := make([]string, 0, t.size)
	t.Range(func(s *TermStats) {
		terms = append(terms, s.Term)
	})
	sort.Strings(terms)
	return terms
}
