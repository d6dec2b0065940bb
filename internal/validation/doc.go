// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created lazily and shared; it caches struct
// metadata and is safe for concurrent use. It checks configuration sections,
// HTTP query parameters, and ingested business records:
//
//	type NearbyQuery struct {
//	    Lat      float64 `query:"lat" validate:"latitude"`
//	    Lon      float64 `query:"lon" validate:"longitude"`
//	    RadiusKm float64 `query:"radius_km" validate:"gt=0,lte=50"`
//	}
//
// Failures are returned as *Error, whose messages name fields by their query,
// json or koanf tag so they match what the caller actually sent.
package validation
