// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package search ties the build-phase structures together behind one query
surface used by both the HTTP API and the CLI.

Build runs once per dataset:

 1. the proximity graph is built (arena indices assigned, k nearest linked)
 2. every business name is put into the name index
 3. the similarity engine groups reviews by business
 4. businesses are clustered by primary category
 5. a spatial hash grid is filled for radius lookups

BuildWith skips steps 2 and 4 when a snapshot already carries the name
index and clusters.

After Build returns the Controller is read-only and safe for concurrent use.

Not-found conditions are reported the same way throughout: an unknown name
yields an empty result, an unknown business id yields ErrBusinessNotFound,
and a disconnected pair yields a result with Reachable set to false.
*/
package search
