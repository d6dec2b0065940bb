// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/locus/internal/logging"
	"github.com/tomtom215/locus/internal/search"
)

// SimilarBusinesses handles GET /businesses/similar?name=. An unknown name
// is answered with found=false and an empty result list.
func (h *Handler) SimilarBusinesses(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := SimilarRequest{Name: strings.TrimSpace(r.URL.Query().Get("name"))}
	if !validateRequest(rw, &req) {
		return
	}
	c, ok := h.ready(rw)
	if !ok {
		return
	}

	result, err := c.SimilarByName(r.Context(), req.Name)
	if err != nil {
		rw.InternalError(err)
		return
	}

	resp := result.Response()

	logging.Ctx(r.Context()).Debug().
		Str("name", sanitizeLogValue(req.Name)).
		Bool("found", resp.Found).
		Int("results", len(resp.Results)).
		Msg("Similar businesses query")

	rw.SuccessCached(resp, result.Cached)
}

// GetBusiness handles GET /businesses/{id}.
func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := BusinessRequest{ID: pathParam(r, "id")}
	if !validateRequest(rw, &req) {
		return
	}
	c, ok := h.ready(rw)
	if !ok {
		return
	}

	b, err := c.Business(req.ID)
	if err != nil {
		if errors.Is(err, search.ErrBusinessNotFound) {
			rw.NotFound("Business not found")
			return
		}
		rw.InternalError(err)
		return
	}
	rw.Success(b)
}

// NearbyBusinesses handles GET /businesses/nearby. radius_km defaults to 1
// and limit to 50.
func (h *Handler) NearbyBusinesses(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseNearbyRequest(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, req) {
		return
	}
	c, ok := h.ready(rw)
	if !ok {
		return
	}

	hits := c.Nearby(*req.Latitude, *req.Longitude, req.RadiusKm, req.Limit)
	rw.Success(search.NearbyResults(hits))
}

func parseNearbyRequest(r *http.Request) (*NearbyRequest, error) {
	lat, err := getFloatParam(r, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := getFloatParam(r, "lon")
	if err != nil {
		return nil, err
	}
	radius, err := getFloatParam(r, "radius_km")
	if err != nil {
		return nil, err
	}
	limit, err := getIntParam(r, "limit", defaultNearbyLimit)
	if err != nil {
		return nil, err
	}

	req := &NearbyRequest{
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  defaultNearbyRadiusKm,
		Limit:     limit,
	}
	if radius != nil {
		req.RadiusKm = *radius
	}
	return req, nil
}
