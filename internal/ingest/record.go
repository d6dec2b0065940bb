// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package ingest

import (
	"regexp"
	"strings"

	"github.com/tomtom215/locus/internal/models"
)

// categorySeparator splits the categories string, absorbing the space that
// usually follows each comma.
var categorySeparator = regexp.MustCompile(`,\s*`)

// rawBusiness is the on-disk form of a business record.
type rawBusiness struct {
	BusinessID  string                 `json:"business_id"`
	Name        string                 `json:"name"`
	Address     string                 `json:"address"`
	City        string                 `json:"city"`
	State       string                 `json:"state"`
	PostalCode  string                 `json:"postal_code"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	Stars       float64                `json:"stars"`
	ReviewCount int                    `json:"review_count"`
	IsOpen      int                    `json:"is_open"`
	Categories  *string                `json:"categories"`
	Attributes  map[string]interface{} `json:"attributes"`
	Hours       map[string]string      `json:"hours"`
}

// rawReview is the on-disk form of a review record.
type rawReview struct {
	ReviewID   string  `json:"review_id"`
	UserID     string  `json:"user_id"`
	BusinessID string  `json:"business_id"`
	Stars      float64 `json:"stars"`
	Useful     int     `json:"useful"`
	Funny      int     `json:"funny"`
	Cool       int     `json:"cool"`
	Text       string  `json:"text"`
	Date       string  `json:"date"`
}

// toModel converts the record. Index is left at -1 until the graph build.
func (r *rawBusiness) toModel() *models.Business {
	return &models.Business{
		Index:       -1,
		ID:          r.BusinessID,
		Name:        r.Name,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		PostalCode:  r.PostalCode,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Stars:       r.Stars,
		ReviewCount: r.ReviewCount,
		IsOpen:      r.IsOpen == 1,
		Categories:  splitCategories(r.Categories),
		Attributes:  trueAttributes(r.Attributes),
		Hours:       r.Hours,
	}
}

func (r *rawReview) toModel() models.Review {
	return models.Review{
		ReviewID:   r.ReviewID,
		UserID:     r.UserID,
		BusinessID: r.BusinessID,
		Stars:      r.Stars,
		Useful:     r.Useful,
		Funny:      r.Funny,
		Cool:       r.Cool,
		Text:       r.Text,
		Date:       r.Date,
	}
}

// splitCategories returns the category labels in source order.
// A missing or empty string yields nil.
func splitCategories(s *string) []string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	parts := categorySeparator.Split(trimmed, -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// trueAttributes keeps the attributes that are set. Nested objects and
// quoted enum values ("u'free'") are not flags and are dropped.
func trueAttributes(attrs map[string]interface{}) map[string]bool {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]bool)
	for name, v := range attrs {
		switch val := v.(type) {
		case bool:
			if val {
				out[name] = true
			}
		case string:
			if val == "True" {
				out[name] = true
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
