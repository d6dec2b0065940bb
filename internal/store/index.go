// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/locus/internal/index"
)

// saveIndex writes the entries of idx and returns how many were written.
// The caller drops the previous entries.
func (s *Store) saveIndex(ctx context.Context, idx *index.NameIndex) (int, error) {
	entries := make([]kv, 0, idx.Len())
	idx.Range(func(name, id string) bool {
		entries = append(entries, kv{key: []byte(indexKeyPrefix + name), value: []byte(id)})
		return true
	})
	if err := s.writeBatches(ctx, entries); err != nil {
		return 0, fmt.Errorf("write index: %w", err)
	}
	return len(entries), nil
}

// loadIndex puts every stored name index entry into idx and returns the
// number of entries read.
func (s *Store) loadIndex(ctx context.Context, idx *index.NameIndex) (int, error) {
	n := 0
	err := s.scan(ctx, indexKeyPrefix, func(name string, val []byte) error {
		idx.Put(name, string(val))
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("read index: %w", err)
	}
	return n, nil
}

// saveClusters writes the label to business id mapping.
func (s *Store) saveClusters(ctx context.Context, clusters map[string][]string) error {
	labels := make([]string, 0, len(clusters))
	for label := range clusters {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	entries := make([]kv, 0, len(labels))
	for _, label := range labels {
		data, err := json.Marshal(clusters[label])
		if err != nil {
			return fmt.Errorf("marshal cluster %q: %w", label, err)
		}
		entries = append(entries, kv{key: []byte(clusterKeyPrefix + label), value: data})
	}
	if err := s.writeBatches(ctx, entries); err != nil {
		return fmt.Errorf("write clusters: %w", err)
	}
	return nil
}

func (s *Store) loadClusters(ctx context.Context) (map[string][]string, error) {
	clusters := make(map[string][]string)
	err := s.scan(ctx, clusterKeyPrefix, func(label string, val []byte) error {
		var ids []string
		if err := json.Unmarshal(val, &ids); err != nil {
			return fmt.Errorf("unmarshal cluster %q: %w", label, err)
		}
		clusters[label] = ids
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read clusters: %w", err)
	}
	return clusters, nil
}
