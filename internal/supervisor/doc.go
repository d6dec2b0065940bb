// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package supervisor runs the server's long-lived services under suture v4.

	RootSupervisor ("locus")
	├── DataSupervisor ("data-layer")
	│   ├── BuildService       loads the dataset and builds the graph once
	│   └── SnapshotService    persists the dataset to BadgerDB (if enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog, which takes a *slog.Logger; logging.NewSlogLogger
bridges it to the zerolog output.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.WithComponent("supervisor")), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}
	tree.AddDataService(buildSvc)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

The service wrappers live in the services subpackage.
*/
package supervisor
