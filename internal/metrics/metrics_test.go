// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordGraphBuild(t *testing.T) {
	RecordGraphBuild(25*time.Millisecond, 120, 300, 3)

	if got := testutil.ToFloat64(GraphComponents); got != 3 {
		t.Errorf("GraphComponents = %v, want 3", got)
	}
	if got := testutil.ToFloat64(GraphEdges); got != 300 {
		t.Errorf("GraphEdges = %v, want 300", got)
	}
	if got := testutil.ToFloat64(GraphBusinesses); got != 120 {
		t.Errorf("GraphBusinesses = %v, want 120", got)
	}
}

func TestRecordSimilarityQuery(t *testing.T) {
	tests := []string{"found", "empty", "not_found", "cached"}

	for _, result := range tests {
		t.Run(result, func(t *testing.T) {
			before := testutil.ToFloat64(SimilarityQueries.WithLabelValues(result))
			RecordSimilarityQuery(result, time.Millisecond)
			after := testutil.ToFloat64(SimilarityQueries.WithLabelValues(result))
			if after != before+1 {
				t.Errorf("SimilarityQueries{%s} = %v, want %v", result, after, before+1)
			}
		})
	}
}

func TestRecordPathQuery(t *testing.T) {
	before := testutil.ToFloat64(PathQueries.WithLabelValues("unreachable"))
	RecordPathQuery("unreachable")
	if got := testutil.ToFloat64(PathQueries.WithLabelValues("unreachable")); got != before+1 {
		t.Errorf("PathQueries{unreachable} = %v, want %v", got, before+1)
	}
}

func TestRecordIngest(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantAdd float64
	}{
		{"positive count", 5, 5},
		{"zero count ignored", 0, 0},
		{"negative count ignored", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := IngestRecords.WithLabelValues("review", "malformed")
			before := testutil.ToFloat64(c)
			RecordIngest("review", "malformed", tt.n)
			if got := testutil.ToFloat64(c) - before; got != tt.wantAdd {
				t.Errorf("IngestRecords delta = %v, want %v", got, tt.wantAdd)
			}
		})
	}
}

func TestRecordSnapshotWrite(t *testing.T) {
	failures := testutil.ToFloat64(SnapshotWrites.WithLabelValues("failure"))
	successes := testutil.ToFloat64(SnapshotWrites.WithLabelValues("success"))

	RecordSnapshotWrite(errors.New("disk full"))
	RecordSnapshotWrite(nil)

	if got := testutil.ToFloat64(SnapshotWrites.WithLabelValues("failure")); got != failures+1 {
		t.Errorf("SnapshotWrites{failure} = %v, want %v", got, failures+1)
	}
	if got := testutil.ToFloat64(SnapshotWrites.WithLabelValues("success")); got != successes+1 {
		t.Errorf("SnapshotWrites{success} = %v, want %v", got, successes+1)
	}
	if testutil.ToFloat64(SnapshotLastSuccess) == 0 {
		t.Error("SnapshotLastSuccess should be set after a successful write")
	}
}

func TestRecordResultCache(t *testing.T) {
	hits := testutil.ToFloat64(ResultCacheHits)
	misses := testutil.ToFloat64(ResultCacheMisses)

	RecordResultCache(true)
	RecordResultCache(false)
	RecordResultCache(false)

	if got := testutil.ToFloat64(ResultCacheHits); got != hits+1 {
		t.Errorf("ResultCacheHits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(ResultCacheMisses); got != misses+2 {
		t.Errorf("ResultCacheMisses = %v, want %v", got, misses+2)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/path", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/v1/path", "200", 3*time.Millisecond)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("APIActiveRequests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordGraphBuild(time.Millisecond, 1, 0, 1)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
