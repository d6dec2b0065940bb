// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/locus/internal/models"
	"github.com/tomtom215/locus/internal/search"
)

// ShortestPath handles GET /path?from=&to=. A pair in different components
// is answered with reachable=false and an empty path.
func (h *Handler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := r.URL.Query()
	req := PathRequest{
		From: strings.TrimSpace(q.Get("from")),
		To:   strings.TrimSpace(q.Get("to")),
	}
	if !validateRequest(rw, &req) {
		return
	}
	c, ok := h.ready(rw)
	if !ok {
		return
	}

	result, err := c.Path(r.Context(), req.From, req.To)
	if err != nil {
		if errors.Is(err, search.ErrBusinessNotFound) {
			rw.NotFound(err.Error())
			return
		}
		rw.InternalError(err)
		return
	}

	rw.Success(result.Response())
}

// Connectivity handles GET /graph/connectivity.
func (h *Handler) Connectivity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := h.ready(rw)
	if !ok {
		return
	}

	rw.Success(c.Connectivity().Response())
}

// Clusters handles GET /clusters.
func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := h.ready(rw)
	if !ok {
		return
	}

	rw.Success(c.ClusterList())
}

// ClusterMembers handles GET /clusters/{category}. An unknown category is a 404.
func (h *Handler) ClusterMembers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := ClusterRequest{Category: pathParam(r, "category")}
	if !validateRequest(rw, &req) {
		return
	}
	c, ok := h.ready(rw)
	if !ok {
		return
	}

	members := c.BusinessesInCluster(req.Category)
	if len(members) == 0 {
		rw.NotFound("Cluster not found")
		return
	}
	rw.Success(models.ClusterResponse{
		Category:   req.Category,
		Businesses: search.Summaries(members),
	})
}
