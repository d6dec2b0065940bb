// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package api serves the search controller over HTTP.

Every endpoint answers with the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 2, "request_id": "..."}
	}

Errors carry a machine-readable code, a message and the request id:

	{
	  "status": "error",
	  "data": null,
	  "metadata": {...},
	  "error": {"code": "NOT_FOUND", "message": "business not found", "request_id": "..."}
	}

# Routes

	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /api/v1/businesses/similar?name=
	GET /api/v1/businesses/nearby?lat=&lon=&radius_km=&limit=
	GET /api/v1/businesses/{id}
	GET /api/v1/path?from=&to=
	GET /api/v1/graph/connectivity
	GET /api/v1/clusters
	GET /api/v1/clusters/{category}
	GET /metrics

Data endpoints answer 503 until a controller has been installed with
Handler.SetController. An unknown name is not an error: the similar
endpoint returns an empty result list. A pair of businesses in different
components yields reachable=false with an empty path.

# Middleware

Global middleware, outermost first: request id, real IP, access log,
panic recovery, CORS, gzip compression and Prometheus metrics. Data
routes are additionally rate limited per client IP with go-chi/httprate.
*/
package api
