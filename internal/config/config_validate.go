// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/locus/internal/validation"
)

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateData()
}

func (c *Config) validateRecommend() error {
	sum := c.Recommend.TextWeight + c.Recommend.CategoryWeight
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("LOCUS_TEXT_WEIGHT + LOCUS_CATEGORY_WEIGHT must equal 1, got %g", sum)
	}
	if c.Recommend.CacheEnabled && c.Recommend.CacheSize < 1 {
		return errors.New("LOCUS_CACHE_SIZE must be positive when the result cache is enabled")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.LoadFromStore && c.Data.StorePath == "" {
		return errors.New("LOCUS_STORE_PATH is required when LOCUS_LOAD_FROM_STORE=true")
	}
	if c.Snapshot.Enabled && c.Data.StorePath == "" {
		return errors.New("LOCUS_STORE_PATH is required when SNAPSHOT_ENABLED=true")
	}
	return nil
}

// RequireDataFiles reports an error unless both input files are configured.
// Needed whenever the dataset is not read from the store.
func (c *Config) RequireDataFiles() error {
	if c.Data.LoadFromStore {
		return nil
	}
	if c.Data.BusinessesPath == "" || c.Data.ReviewsPath == "" {
		return errors.New("LOCUS_BUSINESSES_PATH and LOCUS_REVIEWS_PATH are required unless LOCUS_LOAD_FROM_STORE=true")
	}
	return nil
}
