// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package models

import "sort"

// Business is a geolocated business record and the entity of the proximity graph.
type Business struct {
	// Index is the arena position assigned by the graph builder.
	// It is -1 (or stale) until the build phase runs.
	Index int `json:"-"`

	// ID is the stable business identifier.
	ID string `json:"business_id" validate:"required"`

	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty"`

	// Latitude and Longitude are in degrees.
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`

	Stars       float64 `json:"stars"`
	ReviewCount int     `json:"review_count"`
	IsOpen      bool    `json:"is_open"`

	// Categories keeps source order; duplicates are permitted.
	Categories []string `json:"categories"`

	// Attributes holds known boolean flags. Only true flags are used for ranking.
	Attributes map[string]bool `json:"attributes,omitempty"`

	Hours map[string]string `json:"hours,omitempty"`

	// Neighbors maps a neighbor's arena index to the distance in km.
	// Written once by the graph builder.
	Neighbors map[int]float64 `json:"-"`
}

// PrimaryCategory returns the first category label, or "" if there is none.
func (b *Business) PrimaryCategory() string {
	if len(b.Categories) == 0 {
		return ""
	}
	return b.Categories[0]
}

// TrueAttributes returns the names of attributes set to true, sorted.
func (b *Business) TrueAttributes() []string {
	names := make([]string, 0, len(b.Attributes))
	for name, set := range b.Attributes {
		if set {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasCategory reports whether label appears in the category list.
func (b *Business) HasCategory(label string) bool {
	for _, c := range b.Categories {
		if c == label {
			return true
		}
	}
	return false
}

// BusinessSummary is the compact form of a business returned by the API.
type BusinessSummary struct {
	ID         string   `json:"business_id"`
	Name       string   `json:"name"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Stars      float64  `json:"stars"`
	Categories []string `json:"categories"`
}

// Summary converts b to its API summary.
func (b *Business) Summary() BusinessSummary {
	return BusinessSummary{
		ID:         b.ID,
		Name:       b.Name,
		City:       b.City,
		State:      b.State,
		Latitude:   b.Latitude,
		Longitude:  b.Longitude,
		Stars:      b.Stars,
		Categories: b.Categories,
	}
}
