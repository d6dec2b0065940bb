// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/locus/internal/models"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation and stopwords", "The FOOD was Amazing!!! Best tacos in town.", "food amazing best tacos town"},
		{"contraction becomes stopword", "It's 5 stars", "5 stars"},
		{"non ascii letters stripped", "  Café   au lait  ", "caf au lait"},
		{"tabs and newlines collapse", "spicy\tsalsa\n\nfresh", "spicy salsa fresh"},
		{"only stopwords", "and the of it", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsStopword(t *testing.T) {
	tests := map[string]bool{
		"the":   true,
		"and":   true,
		"not":   true,
		"tacos": false,
		"The":   false,
		"":      false,
	}
	for term, want := range tests {
		if got := IsStopword(term); got != want {
			t.Errorf("IsStopword(%q) = %v, want %v", term, got, want)
		}
	}
}

func TestEnhanceAndTerms(t *testing.T) {
	b := &models.Business{
		ID:         "b1",
		Categories: []string{"Mexican", "Fast Food"},
		Attributes: map[string]bool{"WiFi": true, "Parking": false, "Delivery": true},
	}

	enhanced := Enhance("food", b)
	if enhanced != "food Mexican Fast Food Delivery WiFi" {
		t.Errorf("Enhance() = %q", enhanced)
	}

	want := []string{"food", "mexican", "fast", "food", "delivery", "wifi"}
	if got := Terms(enhanced); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestEnhance_NoMetadata(t *testing.T) {
	b := &models.Business{ID: "b1"}
	if got := Enhance("spicy salsa", b); got != "spicy salsa" {
		t.Errorf("Enhance() = %q, want %q", got, "spicy salsa")
	}
}
