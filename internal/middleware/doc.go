// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package middleware provides the HTTP middleware shared by the API router.

Key Components:

  - RequestID: reuses or generates an X-Request-ID and stores it in the
    request context through the logging package
  - AccessLog: one structured log line per request, tagged with the request id
  - PrometheusMetrics: request count, latency and in-flight gauge

All three are plain func(http.Handler) http.Handler values, so they plug
straight into chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests with the chi route pattern
("/api/v1/businesses/{id}") rather than the raw path, so ids in URLs do not
create new time series.
*/
package middleware
