// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/locus/internal/models"
)

// HealthLive handles liveness checks. It answers 200 as long as the
// process is serving, whether or not the graph is built.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness checks. It answers 503 until a
// controller is installed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	health := models.HealthStatus{
		Status:  "not_ready",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	c := h.controller.Load()
	if c == nil {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Graph is still being built", health)
		return
	}

	builtAt := c.BuiltAt()
	conn := c.Connectivity()
	ds := c.Dataset()
	health.Status = "ready"
	health.GraphBuilt = true
	health.BuiltAt = &builtAt
	health.Stats = &models.Stats{
		Businesses: conn.Businesses,
		Reviews:    len(ds.Reviews),
		Clusters:   len(c.Clusters()),
		Components: conn.Components,
		Edges:      conn.Edges,
		BuiltAt:    builtAt,
	}
	rw.Success(health)
}
