// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/locus/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Recommend RecommendConfig `koanf:"recommend"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DataConfig locates the input dataset and the snapshot store.
type DataConfig struct {
	// BusinessesPath and ReviewsPath are JSON lines files.
	BusinessesPath string `koanf:"businesses_path"`
	ReviewsPath    string `koanf:"reviews_path"`

	// MaxRecords caps how many records are read from each file.
	// Default: 10000
	MaxRecords int `koanf:"max_records" validate:"min=1"`

	// StorePath is the badger directory for snapshots. Empty disables the store.
	StorePath string `koanf:"store_path"`

	// LoadFromStore reads the dataset from the store instead of the files.
	LoadFromStore bool `koanf:"load_from_store"`
}

// IngestConfig holds ingest settings
type IngestConfig struct {
	// IntegrityLog is a file receiving one entry per review that references
	// an unknown business. Empty disables the file; entries still go to the
	// application log.
	IntegrityLog string `koanf:"integrity_log"`
}

// RecommendConfig holds graph and similarity settings
type RecommendConfig struct {
	// Neighbors is k, the number of nearest neighbors each business keeps.
	Neighbors int `koanf:"neighbors" validate:"min=1"`

	TopK           int     `koanf:"top_k" validate:"min=1"`
	TextWeight     float64 `koanf:"text_weight" validate:"gte=0,lte=1"`
	CategoryWeight float64 `koanf:"category_weight" validate:"gte=0,lte=1"`

	// IndexBuckets is the bucket count of the name index.
	IndexBuckets int `koanf:"index_buckets" validate:"min=1"`

	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheSize    int           `koanf:"cache_size" validate:"min=0"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// SnapshotConfig controls periodic persistence of the dataset.
type SnapshotConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval" validate:"gt=0"`

	// BatchSize is the number of records committed per badger transaction.
	BatchSize int `koanf:"batch_size" validate:"min=1"`

	// WritesPerSecond limits batch commits. Zero means unlimited.
	WritesPerSecond float64 `koanf:"writes_per_second" validate:"gte=0"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// EngineConfig converts the recommend section to a similarity engine config.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.BlendWeights{
			Text:     r.TextWeight,
			Category: r.CategoryWeight,
		},
		TopK: r.TopK,
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			MaxEntries: r.CacheSize,
			TTL:        r.CacheTTL,
		},
	}
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
