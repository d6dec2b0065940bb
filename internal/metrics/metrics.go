// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Graph Metrics
	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "locus_graph_build_duration_seconds",
			Help:    "Duration of proximity graph construction in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	GraphComponents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "locus_graph_components",
			Help: "Number of connected components in the proximity graph",
		},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "locus_graph_edges",
			Help: "Number of undirected edges in the proximity graph",
		},
	)

	GraphBusinesses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "locus_graph_businesses",
			Help: "Number of businesses in the proximity graph",
		},
	)

	// Query Metrics
	SimilarityQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_similarity_queries_total",
			Help: "Total number of similarity queries",
		},
		[]string{"result"}, // "found", "empty", "not_found", "cached"
	)

	SimilarityDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "locus_similarity_duration_seconds",
			Help:    "Duration of similarity ranking in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PathQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_path_queries_total",
			Help: "Total number of shortest path queries",
		},
		[]string{"result"}, // "reachable", "unreachable", "not_found"
	)

	// Ingest Metrics
	IngestRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_ingest_records_total",
			Help: "Total number of ingested records",
		},
		[]string{"kind", "outcome"}, // kind: "business", "review"; outcome: "loaded", "malformed", "invalid", "duplicate", "orphaned", "truncated"
	)

	// Snapshot Metrics
	SnapshotWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_snapshot_writes_total",
			Help: "Total number of snapshot writes to the store",
		},
		[]string{"outcome"}, // "success", "failure", "skipped"
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "locus_snapshot_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot write",
		},
	)

	// Result Cache Metrics
	ResultCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "locus_result_cache_hits_total",
			Help: "Total number of similarity result cache hits",
		},
	)

	ResultCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "locus_result_cache_misses_total",
			Help: "Total number of similarity result cache misses",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "locus_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "locus_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordGraphBuild records the outcome of a proximity graph build.
func RecordGraphBuild(duration time.Duration, businesses, edges, components int) {
	GraphBuildDuration.Observe(duration.Seconds())
	GraphBusinesses.Set(float64(businesses))
	GraphEdges.Set(float64(edges))
	GraphComponents.Set(float64(components))
}

// RecordSimilarityQuery records a similarity query and its latency.
func RecordSimilarityQuery(result string, duration time.Duration) {
	SimilarityQueries.WithLabelValues(result).Inc()
	SimilarityDuration.Observe(duration.Seconds())
}

// RecordPathQuery records a shortest path query
func RecordPathQuery(result string) {
	PathQueries.WithLabelValues(result).Inc()
}

// RecordIngest adds n records of kind with the given outcome.
func RecordIngest(kind, outcome string, n int) {
	if n <= 0 {
		return
	}
	IngestRecords.WithLabelValues(kind, outcome).Add(float64(n))
}

// RecordSnapshotWrite records a snapshot write attempt.
func RecordSnapshotWrite(err error) {
	if err != nil {
		SnapshotWrites.WithLabelValues("failure").Inc()
		return
	}
	SnapshotWrites.WithLabelValues("success").Inc()
	SnapshotLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordResultCache records a result cache lookup.
func RecordResultCache(hit bool) {
	if hit {
		ResultCacheHits.Inc()
	} else {
		ResultCacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
