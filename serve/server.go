// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reply"
)

// Server runs a filter as an HTTP server with graceful shutdown.
type Server struct {
	cfg     *config
	handler http.Handler
}

// New builds a server around the routes.
func New(routes filter.Filter[reply.Reply], opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var handler http.Handler = NewHandler(routes, opts...)
	if cfg.h2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	return &Server{cfg: cfg, handler: handler}
}

// Handler returns the dispatching handler, including the h2c layer
// when enabled. Useful for httptest servers and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves HTTP on addr until ctx is canceled, then drains
// gracefully. Signal handling belongs to the caller:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer cancel()
//
//	err := srv.Start(ctx, ":8080")
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := s.newHTTPServer(addr)

	return s.run(ctx, srv, srv.ListenAndServe, "HTTP")
}

// StartTLS serves HTTPS on addr until ctx is canceled, then drains
// gracefully.
func (s *Server) StartTLS(ctx context.Context, addr, certFile, keyFile string) error {
	srv := s.newHTTPServer(addr)

	return s.run(ctx, srv, func() error {
		return srv.ListenAndServeTLS(certFile, keyFile)
	}, "HTTPS")
}

func (s *Server) newHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       s.cfg.readTimeout,
		WriteTimeout:      s.cfg.writeTimeout,
		IdleTimeout:       s.cfg.idleTimeout,
		ReadHeaderTimeout: s.cfg.readHeaderTimeout,
		MaxHeaderBytes:    s.cfg.maxHeaderBytes,
	}
}

func (s *Server) run(ctx context.Context, srv *http.Server, start func() error, protocol string) error {
	if s.cfg.banner {
		printBanner(os.Stdout, s.cfg, srv.Addr, protocol)
	}
	s.cfg.logger.Log(ctx, slog.LevelInfo, "server starting",
		"address", srv.Addr, "protocol", protocol, "environment", s.cfg.environment)

	serverErr := make(chan error, 1)
	go func() {
		if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("%s server failed: %w", protocol, err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.cfg.logger.Log(ctx, slog.LevelInfo, "server shutting down",
			"protocol", protocol, "reason", ctx.Err())
	}

	// The parent context is already canceled at this point; the fresh
	// one bounds how long the drain may take.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s server forced to shutdown: %w", protocol, err)
	}

	s.cfg.logger.Log(shutdownCtx, slog.LevelInfo, "server exited", "protocol", protocol)

	return nil
}
