// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/locus/internal/api"
)

// stubServer blocks in ListenAndServe until Shutdown and records the
// shutdown deadline.
type stubServer struct {
	startErr    error
	shutdownErr error
	started     chan struct{}
	stopped     chan struct{}
	deadline    time.Duration
}

func newStubServer() *stubServer {
	return &stubServer{started: make(chan struct{}), stopped: make(chan struct{})}
}

func (s *stubServer) ListenAndServe() error {
	close(s.started)
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stopped
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	if d, ok := ctx.Deadline(); ok {
		s.deadline = time.Until(d)
	}
	close(s.stopped)
	return s.shutdownErr
}

// freeAddr returns a loopback address nothing is listening on.
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

// getStatus retries until the server accepts the connection.
func getStatus(t *testing.T, rawURL string) int {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		resp, err := http.Get(rawURL) //nolint:noctx // test helper
		if err == nil {
			_ = resp.Body.Close()
			return resp.StatusCode
		}
		if time.Now().After(deadline) {
			t.Fatalf("GET %s: %v", rawURL, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -5 * time.Second} {
		svc := NewHTTPServerService(newStubServer(), timeout, zerolog.Nop())
		if svc.shutdownTimeout != DefaultShutdownTimeout {
			t.Errorf("NewHTTPServerService(%v).shutdownTimeout = %v, want %v", timeout, svc.shutdownTimeout, DefaultShutdownTimeout)
		}
	}
	if got := NewHTTPServerService(newStubServer(), time.Second, zerolog.Nop()).String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
}

// The API answers 503 until the build service installs the controller and
// stops accepting connections once the supervisor context ends.
func TestHTTPServerService_ReadinessFollowsBuild(t *testing.T) {
	addr := freeAddr(t)
	handler := api.NewHandler("test")
	router := api.NewRouter(handler, api.DefaultChiMiddlewareConfig(), zerolog.Nop())
	server := &http.Server{Addr: addr, Handler: router.SetupChi(), ReadHeaderTimeout: time.Second}
	svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	base := "http://" + addr + "/api/v1"
	similar := base + "/businesses/similar?name=" + url.QueryEscape("Alpha Tacos")

	if got := getStatus(t, base+"/health/live"); got != http.StatusOK {
		t.Errorf("live before build = %d, want 200", got)
	}
	if got := getStatus(t, base+"/health/ready"); got != http.StatusServiceUnavailable {
		t.Errorf("ready before build = %d, want 503", got)
	}
	if got := getStatus(t, similar); got != http.StatusServiceUnavailable {
		t.Errorf("similar before build = %d, want 503", got)
	}

	build := NewBuildService(staticLoader, testRecommendConfig(), zerolog.Nop())
	build.OnBuilt(handler.SetController)
	if err := build.Serve(ctx); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Fatalf("build Serve() = %v, want suture.ErrDoNotRestart", err)
	}

	if got := getStatus(t, base+"/health/ready"); got != http.StatusOK {
		t.Errorf("ready after build = %d, want 200", got)
	}
	if got := getStatus(t, similar); got != http.StatusOK {
		t.Errorf("similar after build = %d, want 200", got)
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if _, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		t.Error("server still accepting connections after shutdown")
	}
}

func TestHTTPServerService_DrainsInFlightRequests(t *testing.T) {
	addr := freeAddr(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	server := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/slow" {
				close(entered)
				<-release
			}
			w.WriteHeader(http.StatusOK)
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, 2*time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	getStatus(t, "http://"+addr+"/up")

	statusCh := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + addr + "/slow") //nolint:noctx // test
		if err != nil {
			statusCh <- 0
			return
		}
		_ = resp.Body.Close()
		statusCh <- resp.StatusCode
	}()
	<-entered

	cancel()
	select {
	case err := <-errCh:
		t.Fatalf("Serve() returned %v with a request in flight", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	if got := <-statusCh; got != http.StatusOK {
		t.Errorf("in-flight request status = %d, want 200", got)
	}
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestHTTPServerService_Failures(t *testing.T) {
	t.Run("bind failure is returned", func(t *testing.T) {
		bindErr := errors.New("bind: address already in use")
		server := newStubServer()
		server.startErr = bindErr

		err := NewHTTPServerService(server, time.Second, zerolog.Nop()).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want wrapped %v", err, bindErr)
		}
	})

	t.Run("shutdown failure is returned", func(t *testing.T) {
		shutdownErr := errors.New("drain deadline exceeded")
		server := newStubServer()
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, 3*time.Second, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()
		<-server.started
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("Serve() = %v, want wrapped %v", err, shutdownErr)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
		if server.deadline <= 2*time.Second || server.deadline > 3*time.Second {
			t.Errorf("shutdown deadline = %v, want about 3s", server.deadline)
		}
	})
}
