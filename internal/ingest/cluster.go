// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package ingest

import "github.com/tomtom215/locus/internal/models"

// ClusterByPrimaryCategory groups business ids under their first category.
// Businesses without categories are left out. Ids keep input order.
func ClusterByPrimaryCategory(businesses []*models.Business) map[string][]string {
	clusters := make(map[string][]string)
	for _, b := range businesses {
		label := b.PrimaryCategory()
		if label == "" {
			continue
		}
		clusters[label] = append(clusters[label], b.ID)
	}
	return clusters
}
