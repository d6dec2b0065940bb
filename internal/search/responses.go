// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package search

import (
	"github.com/tomtom215/locus/internal/models"
	"github.com/tomtom215/locus/internal/recommend"
)

// Response converts r to its wire form. Results is never nil.
func (r *SimilarResult) Response() models.SimilarResponse {
	resp := models.SimilarResponse{
		Query:   r.Query,
		Found:   r.Found(),
		Results: ScoredSummaries(r.Similar),
	}
	if r.Target != nil {
		target := r.Target.Summary()
		resp.Target = &target
	}
	return resp
}

// Response converts r to its wire form. Path is never nil.
func (r *PathResult) Response() models.PathResponse {
	return models.PathResponse{
		From:       r.From.ID,
		To:         r.To.ID,
		Reachable:  r.Reachable(),
		DistanceKm: r.DistanceKm,
		Hops:       r.Hops(),
		Path:       Summaries(r.Path),
	}
}

// Response converts c to its wire form.
func (c Connectivity) Response() models.ConnectivityResponse {
	return models.ConnectivityResponse{
		Businesses: c.Businesses,
		Edges:      c.Edges,
		Components: c.Components,
		Neighbors:  c.Neighbors,
	}
}

// ClusterList returns every cluster label with its size, sorted by label.
func (c *Controller) ClusterList() models.ClusterListResponse {
	labels := c.Clusters()
	resp := models.ClusterListResponse{Clusters: make([]models.ClusterInfo, len(labels))}
	for i, label := range labels {
		resp.Clusters[i] = models.ClusterInfo{Category: label, Size: len(c.clusters[label])}
	}
	return resp
}

// NearbyResults converts radius hits to their wire form.
func NearbyResults(hits []NearbyBusiness) []models.NearbyResult {
	out := make([]models.NearbyResult, len(hits))
	for i, hit := range hits {
		out[i] = models.NearbyResult{
			Business:   hit.Business.Summary(),
			DistanceKm: hit.DistanceKm,
		}
	}
	return out
}

// Summaries converts businesses to summaries, preserving order.
func Summaries(businesses []*models.Business) []models.BusinessSummary {
	out := make([]models.BusinessSummary, len(businesses))
	for i, b := range businesses {
		out[i] = b.Summary()
	}
	return out
}

// ScoredSummaries converts ranked candidates to summaries, preserving rank.
func ScoredSummaries(scored []recommend.ScoredBusiness) []models.ScoredSummary {
	out := make([]models.ScoredSummary, len(scored))
	for i, s := range scored {
		out[i] = models.ScoredSummary{
			BusinessSummary: s.Business.Summary(),
			Score:           s.Score,
			TextScore:       s.Text,
			CategoryScore:   s.Category,
		}
	}
	return out
}
