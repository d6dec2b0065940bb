// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

// Command locus imports business datasets into the snapshot store and runs
// one-off queries against them from the terminal.
//
//	locus import --businesses business.json --reviews review.json --store data/locus.db
//	locus similar "Joe's Diner" --store data/locus.db
//	locus path <from-id> <to-id> --store data/locus.db --json
//	locus connectivity --businesses business.json
//	locus clusters Mexican --store data/locus.db
//	locus nearby --lat 33.45 --lon -112.07 --radius 2 --store data/locus.db
//
// Flags override the server configuration (config.yaml and environment
// variables), so the CLI and the server read the same settings.
package main

import (
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
