// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package metrics provides Prometheus metrics for the proximity graph, the
similarity engine, ingest, snapshots, and the HTTP API.

All metrics are registered on the default registry via promauto and exposed
at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

Graph:
  - locus_graph_build_duration_seconds (histogram)
  - locus_graph_businesses, locus_graph_edges, locus_graph_components (gauges)

Queries:
  - locus_similarity_queries_total{result} (counter)
  - locus_similarity_duration_seconds (histogram)
  - locus_path_queries_total{result} (counter)
  - locus_result_cache_hits_total, locus_result_cache_misses_total (counters)

Ingest and storage:
  - locus_ingest_records_total{kind,outcome} (counter)
  - locus_snapshot_writes_total{outcome} (counter)
  - locus_snapshot_last_success_timestamp (gauge)
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name,result},
    circuit_breaker_state_transitions_total{name,from_state,to_state}

API:
  - locus_api_requests_total{method,endpoint,status_code} (counter)
  - locus_api_request_duration_seconds{method,endpoint} (histogram)
  - locus_api_active_requests (gauge)

# Usage

	start := time.Now()
	g := builder.Build(businesses)
	metrics.RecordGraphBuild(time.Since(start), g.Len(), g.EdgeCount(), g.ComponentCount())

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
