// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package config loads application configuration with koanf.

# Layers

Later layers override earlier ones:

 1. Struct defaults (defaultConfig)
 2. YAML file: CONFIG_PATH, else the first of config.yaml, config.yml,
    /etc/locus/config.yaml, /etc/locus/config.yml
 3. Environment variables, through an explicit name map. Unknown
    variables are ignored.

# Sections

	server:     HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT,
	            HTTP_SHUTDOWN_TIMEOUT, CORS_ORIGINS (comma-separated),
	            RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	data:       LOCUS_BUSINESSES_PATH, LOCUS_REVIEWS_PATH, LOCUS_MAX_RECORDS,
	            LOCUS_STORE_PATH, LOCUS_LOAD_FROM_STORE
	ingest:     LOCUS_INTEGRITY_LOG
	recommend:  LOCUS_NEIGHBORS, LOCUS_TOP_K, LOCUS_TEXT_WEIGHT,
	            LOCUS_CATEGORY_WEIGHT, LOCUS_INDEX_BUCKETS, LOCUS_CACHE_ENABLED,
	            LOCUS_CACHE_SIZE, LOCUS_CACHE_TTL
	snapshot:   SNAPSHOT_ENABLED, SNAPSHOT_INTERVAL, SNAPSHOT_BATCH_SIZE,
	            SNAPSHOT_RATE_LIMIT
	logging:    LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Field ranges are declared as validator tags and checked through
internal/validation. Validate adds the cross-field rules: the two blend
weights must sum to 1, and snapshotting or loading from the store requires
a store path.

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
