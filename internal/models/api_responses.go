// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"query": "joe's diner", "results": [...]},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// SimilarResponse is the payload of a similar-by-name search.
type SimilarResponse struct {
	Query   string           `json:"query"`
	Found   bool             `json:"found"`
	Target  *BusinessSummary `json:"target,omitempty"`
	Results []ScoredSummary  `json:"results"`
}

// ScoredSummary is a similar business with its blended score and the two
// components it was blended from.
type ScoredSummary struct {
	BusinessSummary
	Score         float64 `json:"score"`
	TextScore     float64 `json:"text_score"`
	CategoryScore float64 `json:"category_score"`
}

// PathResponse is the payload of a shortest-path query.
type PathResponse struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Reachable  bool              `json:"reachable"`
	DistanceKm float64           `json:"distance_km"`
	Hops       int               `json:"hops"`
	Path       []BusinessSummary `json:"path"`
}

// ConnectivityResponse reports the shape of the proximity graph.
type ConnectivityResponse struct {
	Businesses int `json:"businesses"`
	Edges      int `json:"edges"`
	Components int `json:"components"`
	Neighbors  int `json:"neighbors_per_business"`
}

// NearbyResult is one entry of a nearby lookup.
type NearbyResult struct {
	Business   BusinessSummary `json:"business"`
	DistanceKm float64         `json:"distance_km"`
}

// ClusterResponse lists the members of one primary-category cluster.
type ClusterResponse struct {
	Category   string            `json:"category"`
	Businesses []BusinessSummary `json:"businesses"`
}

// ClusterInfo names a cluster and its size.
type ClusterInfo struct {
	Category string `json:"category"`
	Size     int    `json:"size"`
}

// ClusterListResponse lists every cluster, sorted by label.
type ClusterListResponse struct {
	Clusters []ClusterInfo `json:"clusters"`
}
