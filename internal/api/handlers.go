// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tomtom215/locus/internal/search"
)

// Handler serves the HTTP endpoints over a search.Controller. The
// controller may be installed after the server starts; until then data
// endpoints answer 503.
type Handler struct {
	controller atomic.Pointer[search.Controller]
	startTime  time.Time
	version    string
}

// NewHandler creates a handler with no controller installed.
func NewHandler(version string) *Handler {
	return &Handler{
		startTime: time.Now(),
		version:   version,
	}
}

// SetController installs c. It is safe to call while requests are served.
func (h *Handler) SetController(c *search.Controller) {
	h.controller.Store(c)
}

// Controller returns the installed controller, or nil.
func (h *Handler) Controller() *search.Controller {
	return h.controller.Load()
}

// ready returns the controller, writing a 503 when none is installed.
func (h *Handler) ready(rw *ResponseWriter) (*search.Controller, bool) {
	c := h.controller.Load()
	if c == nil {
		rw.ServiceUnavailable("Graph is still being built")
		return nil, false
	}
	return c, true
}

// NotFound answers unknown routes with the error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).NotFound("Route not found")
}

// MethodNotAllowed answers a known route called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).MethodNotAllowed()
}
