// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/locus/internal/api"
	"github.com/tomtom215/locus/internal/config"
	"github.com/tomtom215/locus/internal/logging"
	"github.com/tomtom215/locus/internal/store"
	"github.com/tomtom215/locus/internal/supervisor"
	"github.com/tomtom215/locus/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().Str("version", version).Msg("Starting Locus with supervisor tree")

	if err := cfg.RequireDataFiles(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid data configuration")
	}

	logging.Info().
		Str("businesses_path", cfg.Data.BusinessesPath).
		Str("reviews_path", cfg.Data.ReviewsPath).
		Str("store_path", cfg.Data.StorePath).
		Bool("load_from_store", cfg.Data.LoadFromStore).
		Int("neighbors", cfg.Recommend.Neighbors).
		Msg("Configuration loaded")

	os.Exit(run(cfg))
}

// run wires and serves the application and returns the process exit code.
// It is split from main so deferred cleanup runs before os.Exit.
func run(cfg *config.Config) int {
	st, err := openStore(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize snapshot store")
		return 1
	}
	if st != nil {
		defer func() {
			if err := st.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing snapshot store")
			}
		}()
	}

	loader, integrityLog, err := newIngestLoader(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize ingest")
		return 1
	}
	defer func() {
		if err := integrityLog.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing integrity log")
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.DefaultTreeConfig(),
	)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}

	// === DATA LAYER ===

	handler := api.NewHandler(version)

	build := services.NewBuildService(newDatasetLoader(cfg, loader, st), &cfg.Recommend, logging.WithComponent("search"))
	build.OnBuilt(handler.SetController)
	tree.AddDataService(build)
	logging.Info().Msg("Graph build service added")

	if cfg.Snapshot.Enabled {
		guarded := store.NewGuarded(st, store.DefaultGuardSettings(), logging.WithComponent("store"))
		tree.AddDataService(services.NewSnapshotService(build, guarded, services.SnapshotServiceConfig{
			Interval: cfg.Snapshot.Interval,
		}, logging.WithComponent("snapshot")))
		logging.Info().Dur("interval", cfg.Snapshot.Interval).Msg("Snapshot service added")
	}

	// === API LAYER ===

	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server), logging.WithComponent("api"))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	exitCode := 0
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		// The channel delivers exactly one result and is never closed.
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
			exitCode = 1
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return exitCode
}
