// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package models

// Review is a free-text document about a business.
// BusinessID may reference an unknown business; ingestion drops those.
type Review struct {
	ReviewID   string  `json:"review_id"`
	UserID     string  `json:"user_id,omitempty"`
	BusinessID string  `json:"business_id"`
	Stars      float64 `json:"stars"`
	Useful     int     `json:"useful,omitempty"`
	Funny      int     `json:"funny,omitempty"`
	Cool       int     `json:"cool,omitempty"`
	Text       string  `json:"text"`
	Date       string  `json:"date,omitempty"`
}

// Dataset is the typed input of the build phase.
type Dataset struct {
	Businesses []*Business
	Reviews    []Review
}

// BusinessByID returns the first business with the given id.
func (d *Dataset) BusinessByID(id string) (*Business, bool) {
	for _, b := range d.Businesses {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}
