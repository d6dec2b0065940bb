// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package models

import (
	"time"
)

// Stats summarizes the loaded dataset and the graph built over it.
type Stats struct {
	Businesses int       `json:"businesses"`
	Reviews    int       `json:"reviews"`
	Clusters   int       `json:"clusters"`
	Components int       `json:"components"`
	Edges      int       `json:"edges"`
	BuiltAt    time.Time `json:"built_at"`
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string     `json:"status"` // "ready" or "not_ready"
	Version    string     `json:"version"`
	GraphBuilt bool       `json:"graph_built"`
	BuiltAt    *time.Time `json:"built_at,omitempty"`
	Stats      *Stats     `json:"stats,omitempty"`
	Uptime     float64    `json:"uptime_seconds"`
}
