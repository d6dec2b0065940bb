// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ResultCache is a size-bounded LRU with per-entry TTL for query results.
// It is safe for concurrent use.
type ResultCache[K comparable, V any] struct {
	lru    *expirable.LRU[K, V]
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats holds cache hit/miss counters.
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// NewResultCache creates a cache holding at most size entries, each expiring
// after ttl. A ttl of zero disables expiry.
func NewResultCache[K comparable, V any](size int, ttl time.Duration) *ResultCache[K, V] {
	if size <= 0 {
		size = 1024
	}
	return &ResultCache[K, V]{
		lru: expirable.NewLRU[K, V](size, nil, ttl),
	}
}

// Get returns the cached value for key.
func (c *ResultCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Add stores value under key, evicting the least recently used entry if full.
func (c *ResultCache[K, V]) Add(key K, value V) {
	c.lru.Add(key, value)
}

// Len returns the number of live entries.
func (c *ResultCache[K, V]) Len() int {
	return c.lru.Len()
}

// Purge removes all entries.
func (c *ResultCache[K, V]) Purge() {
	c.lru.Purge()
}

// Stats returns the current counters.
func (c *ResultCache[K, V]) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.lru.Len(),
	}
}
