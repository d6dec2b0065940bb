// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package api

// Request structs carry the query and path parameters of each endpoint.
// Field names in validation errors come from the query tags.

// SimilarRequest is the input of GET /businesses/similar.
type SimilarRequest struct {
	Name string `query:"name" validate:"required,max=200"`
}

// BusinessRequest is the input of GET /businesses/{id}.
type BusinessRequest struct {
	ID string `query:"id" validate:"required,max=64"`
}

// NearbyRequest is the input of GET /businesses/nearby. Latitude and
// longitude are pointers so that zero is distinguishable from missing.
type NearbyRequest struct {
	Latitude  *float64 `query:"lat" validate:"required,latitude"`
	Longitude *float64 `query:"lon" validate:"required,longitude"`
	RadiusKm  float64  `query:"radius_km" validate:"gt=0,lte=100"`
	Limit     int      `query:"limit" validate:"min=0,max=1000"`
}

// PathRequest is the input of GET /path.
type PathRequest struct {
	From string `query:"from" validate:"required,max=64"`
	To   string `query:"to" validate:"required,max=64"`
}

// ClusterRequest is the input of GET /clusters/{category}.
type ClusterRequest struct {
	Category string `query:"category" validate:"required,max=200"`
}

// Defaults applied when the optional nearby parameters are absent.
const (
	defaultNearbyRadiusKm = 1.0
	defaultNearbyLimit    = 50
)
