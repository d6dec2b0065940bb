// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

// Package index provides the fixed-bucket name lookup that resolves a
// human-entered business name to a business id.
package index

import (
	"hash/fnv"
	"strings"
	"sync"
)

// DefaultBuckets is the bucket count used when none is configured.
const DefaultBuckets = 1024

// NameIndex maps lowercased names to business ids. The bucket count is fixed
// at construction; buckets are plain maps, so collisions only cost lookup time.
type NameIndex struct {
	mu      sync.RWMutex
	buckets []map[string]string
	size    int
}

// New creates an index with the given number of buckets (DefaultBuckets if
// buckets <= 0).
func New(buckets int) *NameIndex {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	idx := &NameIndex{buckets: make([]map[string]string, buckets)}
	for i := range idx.buckets {
		idx.buckets[i] = make(map[string]string)
	}
	return idx
}

// normalize is the key form shared by Put and Get.
func normalize(name string) string {
	return strings.ToLower(name)
}

// bucketFor returns the bucket position of an already normalized key.
func (idx *NameIndex) bucketFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	hash := int64(int32(h.Sum32()))
	if hash < 0 {
		hash = -hash
	}
	return int(hash % int64(len(idx.buckets)))
}

// Put stores id under name, overwriting any previous id.
func (idx *NameIndex) Put(name, id string) {
	key := normalize(name)
	b := idx.bucketFor(key)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.buckets[b][key]; !exists {
		idx.size++
	}
	idx.buckets[b][key] = id
}

// Get returns the id stored under name.
func (idx *NameIndex) Get(name string) (string, bool) {
	key := normalize(name)
	b := idx.bucketFor(key)

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, ok := idx.buckets[b][key]
	return id, ok
}

// Len returns the number of distinct names stored.
func (idx *NameIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// Buckets returns the fixed bucket count.
func (idx *NameIndex) Buckets() int {
	return len(idx.buckets)
}

// Range calls fn for every stored entry until fn returns false.
// Keys are passed in normalized form. fn must not call Put.
func (idx *NameIndex) Range(fn func(name, id string) bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, bucket := range idx.buckets {
		for name, id := range bucket {
			if !fn(name, id) {
				return
			}
		}
	}
}
