// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every mapped variable for the duration of the test so the
// host environment cannot leak into results.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv(ConfigPathEnvVar, "")
	os.Unsetenv(ConfigPathEnvVar)
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Data.MaxRecords != 10000 {
		t.Errorf("Data.MaxRecords = %d, want 10000", cfg.Data.MaxRecords)
	}
	if cfg.Recommend.Neighbors != 4 {
		t.Errorf("Recommend.Neighbors = %d, want 4", cfg.Recommend.Neighbors)
	}
	if cfg.Recommend.TopK != 10 {
		t.Errorf("Recommend.TopK = %d, want 10", cfg.Recommend.TopK)
	}
	if cfg.Recommend.TextWeight != 0.3 || cfg.Recommend.CategoryWeight != 0.7 {
		t.Errorf("weights = %v/%v, want 0.3/0.7", cfg.Recommend.TextWeight, cfg.Recommend.CategoryWeight)
	}
	if cfg.Recommend.IndexBuckets != 1024 {
		t.Errorf("Recommend.IndexBuckets = %d, want 1024", cfg.Recommend.IndexBuckets)
	}
	if cfg.Snapshot.Enabled {
		t.Error("Snapshot.Enabled should be false by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\") error = %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("LoadFile(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  cors_origins:
    - https://maps.example.com
data:
  businesses_path: /data/business.json
  reviews_path: /data/review.json
  max_records: 500
recommend:
  neighbors: 6
  cache_ttl: 30s
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"https://maps.example.com"}) {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Data.BusinessesPath != "/data/business.json" || cfg.Data.MaxRecords != 500 {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Recommend.Neighbors != 6 || cfg.Recommend.CacheTTL != 30*time.Second {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	// Untouched keys keep their defaults.
	if cfg.Recommend.TopK != 10 {
		t.Errorf("Recommend.TopK = %d, want default 10", cfg.Recommend.TopK)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LOCUS_BUSINESSES_PATH", "/env/business.json")
	t.Setenv("LOCUS_TEXT_WEIGHT", "0.5")
	t.Setenv("LOCUS_CATEGORY_WEIGHT", "0.5")
	t.Setenv("SNAPSHOT_INTERVAL", "15m")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("Server.CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	if cfg.Data.BusinessesPath != "/env/business.json" {
		t.Errorf("Data.BusinessesPath = %q", cfg.Data.BusinessesPath)
	}
	if cfg.Recommend.TextWeight != 0.5 {
		t.Errorf("Recommend.TextWeight = %v, want 0.5", cfg.Recommend.TextWeight)
	}
	if cfg.Snapshot.Interval != 15*time.Minute {
		t.Errorf("Snapshot.Interval = %v, want 15m", cfg.Snapshot.Interval)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{"missing file", nil, filepath.Join(t.TempDir(), "absent.yaml")},
		{"weights do not sum", map[string]string{"LOCUS_TEXT_WEIGHT": "0.9"}, ""},
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, ""},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, ""},
		{"store required", map[string]string{"SNAPSHOT_ENABLED": "true"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFile(tt.file); err == nil {
				t.Error("LoadFile() = nil error, want error")
			}
		})
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("recommend:\n  top_k: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recommend.TopK != 3 {
		t.Errorf("Recommend.TopK = %d, want 3", cfg.Recommend.TopK)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOCUS_NEIGHBORS", "recommend.neighbors"},
		{"log_level", "logging.level"},
		{"PATH", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
