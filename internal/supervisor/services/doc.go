// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package services provides suture.Service wrappers for the server's components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in logs.

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine and
context cancellation triggers Shutdown with a bounded drain.

BuildService loads the dataset through a DatasetLoader, builds the search
controller and hands it to the registered callbacks, typically
api.Handler.SetController. It then exits with suture.ErrDoNotRestart. Load
and build failures are returned so the supervisor retries with backoff.

SnapshotService waits for BuildService, writes the dataset with its name
index and clusters to the BadgerDB store through the circuit-breaker
wrapper, and rechecks the stored manifest on an interval.
*/
package services
