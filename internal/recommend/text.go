// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package recommend

import (
	"strings"
	"unicode"

	"github.com/tomtom215/locus/internal/models"
)

// Preprocess lowercases text, strips every character that is not an ASCII
// letter, digit or whitespace, drops stopwords and collapses whitespace.
func Preprocess(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if !IsStopword(f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// Enhance appends the business's category labels and the names of its true
// attributes to preprocessed review text, so structured metadata lands in
// the same bag of words.
func Enhance(text string, b *models.Business) string {
	var sb strings.Builder
	sb.WriteString(text)
	for _, c := range b.Categories {
		sb.WriteByte(' ')
		sb.WriteString(c)
	}
	for _, attr := range b.TrueAttributes() {
		sb.WriteByte(' ')
		sb.WriteString(attr)
	}
	return sb.String()
}

// Terms splits enhanced text into lowercase whitespace-separated tokens.
func Terms(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
