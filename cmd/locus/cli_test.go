// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/locus/internal/models"
)

const testBusinesses = `{"business_id":"a","name":"Alpha Tacos","latitude":33.450,"longitude":-112.070,"stars":4.5,"categories":"Mexican, Tacos"}
{"business_id":"b","name":"Beta Tacos","latitude":33.451,"longitude":-112.070,"stars":4.0,"categories":"Mexican"}
{"business_id":"c","name":"Gamma Sushi","latitude":33.452,"longitude":-112.070,"stars":3.5,"categories":"Sushi"}
{"business_id":"d","name":"Delta Cafe","latitude":33.453,"longitude":-112.070,"stars":5.0,"categories":"Cafes"}
`

const testReviews = `{"review_id":"r1","business_id":"a","stars":5,"text":"spicy tacos and fresh salsa"}
{"review_id":"r2","business_id":"b","stars":4,"text":"tacos with salsa verde"}
{"review_id":"r3","business_id":"c","stars":3,"text":"tuna rolls"}
{"review_id":"r4","business_id":"ghost","stars":1,"text":"closed forever"}
`

type testEnv struct {
	config     string
	businesses string
	reviews    string
	store      string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		config:     filepath.Join(dir, "config.yaml"),
		businesses: filepath.Join(dir, "business.json"),
		reviews:    filepath.Join(dir, "review.json"),
		store:      filepath.Join(dir, "locus.db"),
	}
	files := map[string]string{
		env.config:     "recommend:\n  neighbors: 2\nlogging:\n  level: error\n",
		env.businesses: testBusinesses,
		env.reviews:    testReviews,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", path, err)
		}
	}
	return env
}

func (e testEnv) fileArgs(args ...string) []string {
	return append(args, "--config", e.config, "--businesses", e.businesses, "--reviews", e.reviews)
}

func (e testEnv) storeArgs(args ...string) []string {
	return append(args, "--config", e.config, "--store", e.store)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportThenQueryStore(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, append(env.fileArgs("import"), "--store", env.store)...)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "Imported 4 businesses and 3 reviews") {
		t.Errorf("import output = %q, want 4 businesses and 3 reviews", out)
	}
	if !strings.Contains(out, "Dropped 1 reviews of 1 unknown businesses") {
		t.Errorf("import output = %q, want the orphaned review reported", out)
	}

	out, err = execute(t, env.storeArgs("connectivity", "--json")...)
	if err != nil {
		t.Fatalf("connectivity error = %v", err)
	}
	var conn models.ConnectivityResponse
	if err := json.Unmarshal([]byte(out), &conn); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if conn.Businesses != 4 || conn.Components != 1 || conn.Neighbors != 2 {
		t.Errorf("connectivity = %+v, want 4 businesses in 1 component with k=2", conn)
	}

	// Name lookups and clusters come from the stored index and clusters.
	out, err = execute(t, env.storeArgs("similar", "ALPHA TACOS")...)
	if err != nil {
		t.Fatalf("similar error = %v", err)
	}
	if !strings.Contains(out, "Similar to Alpha Tacos (a)") || !strings.Contains(out, "Beta Tacos (b)") {
		t.Errorf("similar output = %q, want Alpha Tacos resolved and Beta Tacos ranked", out)
	}

	out, err = execute(t, env.storeArgs("clusters", "Mexican")...)
	if err != nil {
		t.Fatalf("clusters Mexican error = %v", err)
	}
	if !strings.Contains(out, "Alpha Tacos (a)") || !strings.Contains(out, "Beta Tacos (b)") || strings.Contains(out, "Gamma Sushi") {
		t.Errorf("clusters Mexican output = %q", out)
	}
}

func TestImportJSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, append(env.fileArgs("import", "--json"), "--store", env.store)...)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	var res importResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Manifest == nil || res.Manifest.SnapshotID == "" {
		t.Fatalf("manifest = %+v, want a snapshot id", res.Manifest)
	}
	if res.Integrity.Orphaned != 1 || len(res.Integrity.UnknownBusinesses) != 1 || res.Integrity.UnknownBusinesses[0] != "ghost" {
		t.Errorf("integrity = %+v, want one orphaned review of ghost", res.Integrity)
	}
}

func TestImportRequiresStore(t *testing.T) {
	env := newTestEnv(t)

	if _, err := execute(t, env.fileArgs("import")...); err == nil || !strings.Contains(err.Error(), "--store") {
		t.Errorf("import without store error = %v, want a --store hint", err)
	}
}

func TestSimilar(t *testing.T) {
	env := newTestEnv(t)

	t.Run("known name", func(t *testing.T) {
		out, err := execute(t, env.fileArgs("similar", "alpha", "tacos")...)
		if err != nil {
			t.Fatalf("similar error = %v", err)
		}
		if !strings.Contains(out, "Similar to Alpha Tacos (a)") {
			t.Errorf("output = %q, want the resolved target", out)
		}
		if !strings.Contains(out, "Beta Tacos (b)") {
			t.Errorf("output = %q, want Beta Tacos ranked", out)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		out, err := execute(t, env.fileArgs("similar", "Nobody's Bistro")...)
		if err != nil {
			t.Fatalf("similar error = %v", err)
		}
		if !strings.Contains(out, `No business named "Nobody's Bistro"`) {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, env.fileArgs("similar", "Gamma Sushi", "--json")...)
		if err != nil {
			t.Fatalf("similar error = %v", err)
		}
		var resp models.SimilarResponse
		if err := json.Unmarshal([]byte(out), &resp); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if !resp.Found || resp.Target.ID != "c" {
			t.Errorf("target = %+v, want c", resp.Target)
		}
		for _, r := range resp.Results {
			if r.ID == "c" {
				t.Error("results include the target itself")
			}
		}
	})

	t.Run("missing name", func(t *testing.T) {
		if _, err := execute(t, env.fileArgs("similar")...); err == nil {
			t.Error("similar without a name error = nil")
		}
	})
}

func TestPath(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, env.fileArgs("path", "a", "d", "--json")...)
	if err != nil {
		t.Fatalf("path error = %v", err)
	}
	var resp models.PathResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !resp.Reachable || resp.Path[0].ID != "a" || resp.Path[len(resp.Path)-1].ID != "d" {
		t.Errorf("path = %+v, want a..d", resp)
	}

	if _, err := execute(t, env.fileArgs("path", "a", "ghost")...); err == nil {
		t.Error("path to an unknown id error = nil")
	}
}

func TestClusters(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, env.fileArgs("clusters")...)
	if err != nil {
		t.Fatalf("clusters error = %v", err)
	}
	for _, label := range []string{"Cafes", "Mexican", "Sushi"} {
		if !strings.Contains(out, label) {
			t.Errorf("clusters output = %q, missing %s", out, label)
		}
	}

	out, err = execute(t, env.fileArgs("clusters", "Mexican")...)
	if err != nil {
		t.Fatalf("clusters Mexican error = %v", err)
	}
	if !strings.Contains(out, "Alpha Tacos (a)") || !strings.Contains(out, "Beta Tacos (b)") || strings.Contains(out, "Gamma Sushi") {
		t.Errorf("clusters Mexican output = %q", out)
	}

	if _, err := execute(t, env.fileArgs("clusters", "Tacos")...); err == nil {
		t.Error("clusters for a secondary category error = nil")
	}
}

func TestNearby(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, env.fileArgs("nearby", "--lat", "33.45", "--lon=-112.07", "--radius", "0.15", "--json")...)
	if err != nil {
		t.Fatalf("nearby error = %v", err)
	}
	var hits []models.NearbyResult
	if err := json.Unmarshal([]byte(out), &hits); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(hits) != 2 || hits[0].Business.ID != "a" || hits[1].Business.ID != "b" {
		t.Errorf("nearby = %+v, want a then b", hits)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing lon", []string{"nearby", "--lat", "33.45"}},
		{"bad latitude", []string{"nearby", "--lat", "91", "--lon", "0"}},
		{"zero radius", []string{"nearby", "--lat", "33.45", "--lon=-112.07", "--radius", "0"}},
		{"radius over cap", []string{"nearby", "--lat", "33.45", "--lon=-112.07", "--radius", "100.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, env.fileArgs(tt.args...)...); err == nil {
				t.Errorf("%v error = nil", tt.args)
			}
		})
	}
}

func TestDatasetSelection(t *testing.T) {
	env := newTestEnv(t)

	t.Run("no source", func(t *testing.T) {
		_, err := execute(t, "connectivity", "--config", env.config)
		if !errors.Is(err, errNoDataset) {
			t.Errorf("error = %v, want errNoDataset", err)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		_, err := execute(t, env.storeArgs("connectivity")...)
		if err == nil || !strings.Contains(err.Error(), "holds no snapshot") {
			t.Errorf("error = %v, want a missing snapshot hint", err)
		}
	})

	t.Run("files win over store", func(t *testing.T) {
		args := append(env.storeArgs("connectivity", "--json"), "--businesses", env.businesses)
		out, err := execute(t, args...)
		if err != nil {
			t.Fatalf("connectivity error = %v", err)
		}
		if !strings.Contains(out, `"businesses": 4`) {
			t.Errorf("output = %q, want 4 businesses", out)
		}
	})
}
