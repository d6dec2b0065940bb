// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/locus/internal/config"
	"github.com/tomtom215/locus/internal/middleware"
	"github.com/tomtom215/locus/internal/models"
	"github.com/tomtom215/locus/internal/search"
)

// envelope mirrors models.APIResponse with the payload left undecoded.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func place(id, name string, lat, lon float64, cats ...string) *models.Business {
	return &models.Business{ID: id, Name: name, Latitude: lat, Longitude: lon, Categories: cats}
}

// testDataset places five businesses along a meridian in Phoenix and three
// in Pittsburgh; with two neighbors each the groups stay disconnected.
func testDataset() *models.Dataset {
	return &models.Dataset{
		Businesses: []*models.Business{
			place("t", "Taco Town", 33.450, -112.070, "Mexican", "Tacos"),
			place("c1", "Taco Town", 33.451, -112.070, "Mexican", "Tacos"),
			place("c4", "Burrito Barn", 33.452, -112.070, "Mexican", "Tacos"),
			place("c2", "Casa Mole", 33.460, -112.070, "Mexican"),
			place("c3", "Sushi Bar", 33.470, -112.070, "Sushi"),
			place("far1", "Lonely Diner", 40.000, -80.000, "Diners"),
			place("far2", "Lonely Cafe", 40.001, -80.000, "Cafes"),
			place("far3", "Far Pub", 40.002, -80.000, "Pubs"),
		},
		Reviews: []models.Review{
			{ReviewID: "r1", BusinessID: "t", Text: "Great tacos with spicy salsa"},
			{ReviewID: "r2", BusinessID: "c1", Text: "Tacos were spicy"},
			{ReviewID: "r3", BusinessID: "c4", Text: "Huge burritos"},
			{ReviewID: "r4", BusinessID: "c2", Text: "Enchiladas mole"},
			{ReviewID: "r5", BusinessID: "c3", Text: "Spicy tuna roll"},
		},
	}
}

func testController(t *testing.T) *search.Controller {
	t.Helper()
	c, err := search.Build(testDataset(), &config.RecommendConfig{
		Neighbors:      2,
		TopK:           10,
		TextWeight:     0.3,
		CategoryWeight: 0.7,
		IndexBuckets:   64,
		CacheEnabled:   true,
		CacheSize:      16,
		CacheTTL:       time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("search.Build() error = %v", err)
	}
	return c
}

func setupTestRouter(t *testing.T, withController bool, cfg *ChiMiddlewareConfig) (*Handler, http.Handler) {
	t.Helper()
	h := NewHandler("test")
	if withController {
		h.SetController(testController(t))
	}
	return h, NewRouter(h, cfg, zerolog.Nop()).SetupChi()
}

func doRequest(t *testing.T, router http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode body %q: %v", method, target, rec.Body.String(), err)
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("live without controller", func(t *testing.T) {
		_, router := setupTestRouter(t, false, nil)
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/health/live")
		if rec.Code != http.StatusOK || env.Status != "success" {
			t.Errorf("live = %d %q, want 200 success", rec.Code, env.Status)
		}
	})

	t.Run("ready before build", func(t *testing.T) {
		_, router := setupTestRouter(t, false, nil)
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		if env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
			t.Errorf("error = %+v, want %s", env.Error, ErrCodeServiceUnavailable)
		}
	})

	t.Run("ready after SetController", func(t *testing.T) {
		h, router := setupTestRouter(t, false, nil)
		h.SetController(testController(t))

		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/health/ready")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var health models.HealthStatus
		decodeData(t, env, &health)
		if health.Status != "ready" || !health.GraphBuilt {
			t.Errorf("health = %+v, want ready with graph built", health)
		}
		if health.Stats == nil || health.Stats.Businesses != 8 || health.Stats.Components != 2 {
			t.Errorf("stats = %+v, want 8 businesses in 2 components", health.Stats)
		}
	})
}

func TestDataEndpoints_Unavailable(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, false, nil)

	for _, target := range []string{
		"/api/v1/businesses/similar?name=Taco%20Town",
		"/api/v1/businesses/c1",
		"/api/v1/path?from=t&to=c3",
		"/api/v1/graph/connectivity",
		"/api/v1/clusters",
	} {
		rec, _ := doRequest(t, router, http.MethodGet, target)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s = %d, want 503", target, rec.Code)
		}
	}
}

func TestSimilarBusinesses(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, true, nil)

	t.Run("known name", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/businesses/similar?name=taco%20town")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp models.SimilarResponse
		decodeData(t, env, &resp)
		if !resp.Found || resp.Target == nil {
			t.Fatalf("found = %v target = %v, want a resolved target", resp.Found, resp.Target)
		}
		if len(resp.Results) == 0 {
			t.Fatal("results are empty")
		}
		if resp.Results[0].ID != "c4" {
			t.Errorf("first result = %s, want c4", resp.Results[0].ID)
		}
		seen := map[string]bool{}
		for _, r := range resp.Results {
			if r.Name == "Taco Town" {
				t.Errorf("result %s shares the searched name", r.ID)
			}
			if seen[r.ID] {
				t.Errorf("result %s repeated", r.ID)
			}
			seen[r.ID] = true
		}
	})

	t.Run("unknown name is empty not 404", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/businesses/similar?name=Nowhere")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(string(env.Data), `"results":[]`) {
			t.Errorf("data = %s, want an empty results list", env.Data)
		}
		var resp models.SimilarResponse
		decodeData(t, env, &resp)
		if resp.Found || len(resp.Results) != 0 {
			t.Errorf("resp = %+v, want found=false with an empty list", resp)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/businesses/similar")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
			t.Errorf("error = %+v, want %s", env.Error, ErrCodeValidationFailed)
		}
	})
}

func TestGetBusiness(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, true, nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/businesses/c2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var b models.Business
	decodeData(t, env, &b)
	if b.ID != "c2" || b.Name != "Casa Mole" {
		t.Errorf("business = %s %q, want c2 Casa Mole", b.ID, b.Name)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/missing", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-me")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error == nil || env.Error.Code != ErrCodeNotFound || env.Error.RequestID != "trace-me" {
		t.Errorf("error = %+v, want NOT_FOUND with request_id trace-me", env.Error)
	}
}

func TestNearbyBusinesses(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, true, nil)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantErr   string
		wantIDs   []string
		wantEmpty bool
	}{
		{
			name:     "one kilometre around t",
			query:    "lat=33.450&lon=-112.070&radius_km=1",
			wantCode: http.StatusOK,
			wantIDs:  []string{"t", "c1", "c4"},
		},
		{
			name:     "limit",
			query:    "lat=33.450&lon=-112.070&radius_km=1&limit=1",
			wantCode: http.StatusOK,
			wantIDs:  []string{"t"},
		},
		{
			name:      "zero coordinates are valid",
			query:     "lat=0&lon=0",
			wantCode:  http.StatusOK,
			wantEmpty: true,
		},
		{name: "missing lat", query: "lon=-112.070", wantCode: http.StatusBadRequest, wantErr: ErrCodeValidationFailed},
		{name: "latitude out of range", query: "lat=91&lon=0", wantCode: http.StatusBadRequest, wantErr: ErrCodeValidationFailed},
		{name: "radius too large", query: "lat=0&lon=0&radius_km=500", wantCode: http.StatusBadRequest, wantErr: ErrCodeValidationFailed},
		{name: "not a number", query: "lat=abc&lon=0", wantCode: http.StatusBadRequest, wantErr: ErrCodeBadRequest},
		{name: "bad limit", query: "lat=0&lon=0&limit=x", wantCode: http.StatusBadRequest, wantErr: ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodGet, "/api/v1/businesses/nearby?"+tt.query)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantErr != "" {
				if env.Error == nil || env.Error.Code != tt.wantErr {
					t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
				}
				return
			}

			var results []models.NearbyResult
			decodeData(t, env, &results)
			if tt.wantEmpty {
				if len(results) != 0 {
					t.Errorf("results = %d, want 0", len(results))
				}
				return
			}
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("results = %d, want %d", len(results), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if results[i].Business.ID != id {
					t.Errorf("results[%d] = %s, want %s", i, results[i].Business.ID, id)
				}
			}
		})
	}
}

func TestShortestPath(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, true, nil)

	t.Run("reachable", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/path?from=t&to=c3")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp models.PathResponse
		decodeData(t, env, &resp)
		if !resp.Reachable || resp.Path[0].ID != "t" || resp.Path[len(resp.Path)-1].ID != "c3" {
			t.Errorf("path = %+v, want t ... c3", resp.Path)
		}
		if resp.Hops != len(resp.Path)-1 || resp.DistanceKm <= 0 {
			t.Errorf("hops = %d distance = %v", resp.Hops, resp.DistanceKm)
		}
	})

	t.Run("disconnected", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/path?from=t&to=far1")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(string(env.Data), `"path":[]`) {
			t.Errorf("data = %s, want an empty path list", env.Data)
		}
		var resp models.PathResponse
		decodeData(t, env, &resp)
		if resp.Reachable || len(resp.Path) != 0 || resp.Hops != 0 {
			t.Errorf("resp = %+v, want unreachable with an empty path", resp)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/path?from=t&to=nope")
		if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
			t.Errorf("status = %d error = %+v, want 404 NOT_FOUND", rec.Code, env.Error)
		}
	})

	t.Run("missing to", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/path?from=t")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestConnectivity(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, true, nil)

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/graph/connectivity")
	var resp models.ConnectivityResponse
	decodeData(t, env, &resp)
	want := models.ConnectivityResponse{Businesses: 8, Edges: 10, Components: 2, Neighbors: 2}
	if resp != want {
		t.Errorf("connectivity = %+v, want %+v", resp, want)
	}
}

func TestClusters(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, true, nil)

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/clusters")
	var list models.ClusterListResponse
	decodeData(t, env, &list)
	wantLabels := []string{"Cafes", "Diners", "Mexican", "Pubs", "Sushi"}
	if len(list.Clusters) != len(wantLabels) {
		t.Fatalf("clusters = %+v, want %v", list.Clusters, wantLabels)
	}
	for i, label := range wantLabels {
		if list.Clusters[i].Category != label {
			t.Errorf("clusters[%d] = %s, want %s", i, list.Clusters[i].Category, label)
		}
	}
	if list.Clusters[2].Size != 4 {
		t.Errorf("Mexican size = %d, want 4", list.Clusters[2].Size)
	}

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/clusters/Mexican")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var members models.ClusterResponse
	decodeData(t, env, &members)
	if members.Category != "Mexican" || len(members.Businesses) != 4 {
		t.Errorf("members = %s with %d businesses, want Mexican with 4", members.Category, len(members.Businesses))
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/clusters/Nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown cluster status = %d, want 404", rec.Code)
	}
}

func TestRouter_Fallbacks(t *testing.T) {
	t.Parallel()
	_, router := setupTestRouter(t, true, nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/unknown")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route = %d %+v, want 404 NOT_FOUND", rec.Code, env.Error)
	}

	rec, env = doRequest(t, router, http.MethodPost, "/api/v1/clusters")
	if rec.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("POST = %d %+v, want 405", rec.Code, env.Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("/metrics = %d, want 200", rec.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	_, router := setupTestRouter(t, true, cfg)

	for i := 0; i < 2; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/graph/connectivity")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, rec.Code)
		}
	}

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/graph/connectivity")
	if rec.Code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("third request = %d %+v, want 429", rec.Code, env.Error)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("health check = %d, want 200 regardless of the limit", rec.Code)
	}
}
