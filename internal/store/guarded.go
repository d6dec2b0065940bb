// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/locus/internal/metrics"
)

// GuardSettings tunes the snapshot circuit breaker.
type GuardSettings struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// MaxFailures is the number of consecutive failed saves that opens the circuit.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before a trial save.
	Timeout time.Duration
}

// DefaultGuardSettings returns the settings used by the server.
func DefaultGuardSettings() GuardSettings {
	return GuardSettings{
		Name:        "snapshot-store",
		MaxFailures: 3,
		Timeout:     5 * time.Minute,
	}
}

// Guarded wraps a Store so that repeated snapshot failures open a circuit
// breaker. While open, SaveSnapshot returns gobreaker.ErrOpenState without
// touching the store.
type Guarded struct {
	store  *Store
	cb     *gobreaker.CircuitBreaker[*Manifest]
	name   string
	logger zerolog.Logger
}

// NewGuarded wraps s with a circuit breaker.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGuarded(s *Store, settings GuardSettings, logger zerolog.Logger) *Guarded {
	if settings.Name == "" {
		settings.Name = DefaultGuardSettings().Name
	}
	if settings.MaxFailures == 0 {
		settings.MaxFailures = DefaultGuardSettings().MaxFailures
	}

	g := &Guarded{
		store:  s,
		name:   settings.Name,
		logger: logger.With().Str("component", "store").Str("breaker", settings.Name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(g.name).Set(0) // 0 = closed

	g.cb = gobreaker.NewCircuitBreaker[*Manifest](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= settings.MaxFailures
			if shouldTrip {
				g.logger.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// Cancellation is the caller giving up, not the store failing.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			g.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return g
}

// Store returns the wrapped store.
func (g *Guarded) Store() *Store {
	return g.store
}

// State returns the current breaker state.
func (g *Guarded) State() gobreaker.State {
	return g.cb.State()
}

// SaveSnapshot saves snap through the circuit breaker.
func (g *Guarded) SaveSnapshot(ctx context.Context, snap *Snapshot) (*Manifest, error) {
	manifest, err := g.cb.Execute(func() (*Manifest, error) {
		return g.store.SaveSnapshot(ctx, snap)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
		metrics.RecordSnapshotWrite(nil)
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
		metrics.SnapshotWrites.WithLabelValues("skipped").Inc()
		g.logger.Warn().Err(err).Msg("[CIRCUIT BREAKER] Snapshot rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		metrics.RecordSnapshotWrite(err)
	}

	return manifest, err
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Manifest returns the manifest of the stored snapshot.
func (g *Guarded) Manifest(ctx context.Context) (*Manifest, error) {
	return g.store.Manifest(ctx)
}
