// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the similarity engine.
type Config struct {
	// Weights defines how text and category similarity are blended.
	Weights BlendWeights `json:"weights"`

	// TopK is the maximum number of similar businesses returned.
	// Default: 10.
	TopK int `json:"top_k"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// BlendWeights are the coefficients of the blended score. They must sum to 1.
type BlendWeights struct {
	// Text weights cosine similarity of review tf-idf vectors.
	// Default: 0.3.
	Text float64 `json:"text"`

	// Category weights category overlap.
	// Default: 0.7.
	Category float64 `json:"category"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// MaxEntries is the maximum number of cached target businesses.
	// Default: 1024.
	MaxEntries int `json:"max_entries"`

	// TTL is the cache entry time-to-live. Zero disables expiry.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with the standard blend.
func DefaultConfig() *Config {
	return &Config{
		Weights: BlendWeights{
			Text:     0.3,
			Category: 0.7,
		},
		TopK: 10,
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 1024,
			TTL:        10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Text < 0 || c.Weights.Category < 0 {
		return fmt.Errorf("weights must be non-negative, got text=%f category=%f", c.Weights.Text, c.Weights.Category)
	}
	if sum := c.Weights.Text + c.Weights.Category; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1, got %f", sum)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive when caching is enabled, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
