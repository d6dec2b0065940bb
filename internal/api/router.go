// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/locus/internal/middleware"
)

// compressionLevel is the gzip level used for JSON responses.
const compressionLevel = 5

// Router wires the handler into a chi route tree.
type Router struct {
	handler    *Handler
	middleware *ChiMiddleware
	logger     zerolog.Logger
}

// NewRouter creates a router. A nil middleware config uses the defaults.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(handler *Handler, cfg *ChiMiddlewareConfig, logger zerolog.Logger) *Router {
	return &Router{
		handler:    handler,
		middleware: NewChiMiddleware(cfg),
		logger:     logger.With().Str("component", "api").Logger(),
	}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(router.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())
	r.Use(chimiddleware.Compress(compressionLevel, "application/json"))
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Route("/api/v1", func(r chi.Router) {
		// Probes are never rate limited.
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(router.middleware.RateLimit())

			r.Get("/businesses/similar", h.SimilarBusinesses)
			r.Get("/businesses/nearby", h.NearbyBusinesses)
			r.Get("/businesses/{id}", h.GetBusiness)
			r.Get("/path", h.ShortestPath)
			r.Get("/graph/connectivity", h.Connectivity)
			r.Get("/clusters", h.Clusters)
			r.Get("/clusters/{category}", h.ClusterMembers)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
