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

// Package accesslog logs one structured line per request.
//
// The wrap logs matched requests when their response has been written,
// so the line carries the real status and byte count, and rejected
// requests as soon as evaluation settles, with the status the rejection
// will render as.
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	routes = routes.With(accesslog.New(accesslog.WithLogger(logger)))
package accesslog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

type config struct {
	logger  *slog.Logger
	exclude map[string]struct{}
}

// Option configures the access log wrap.
type Option func(*config)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithExcludePaths disables logging for exact request paths, typically
// health and metrics endpoints:
//
//	accesslog.New(accesslog.WithExcludePaths("/healthz", "/metrics"))
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.exclude[p] = struct{}{}
		}
	}
}

// New builds the access log wrap.
func New(opts ...Option) filter.Wrap[reply.Reply] {
	cfg := &config{
		logger:  slog.Default(),
		exclude: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next filter.Filter[reply.Reply]) filter.Filter[reply.Reply] {
		return func(ctx context.Context, rt *filter.Route) (reply.Reply, error) {
			if _, skip := cfg.exclude[rt.Path()]; skip {
				return next(ctx, rt)
			}

			start := time.Now()
			rep, err := next(ctx, rt)
			if err != nil {
				rej := reject.From(err)
				cfg.logger.LogAttrs(ctx, slog.LevelInfo, "request",
					slog.String("method", rt.Method()),
					slog.String("path", rt.Path()),
					slog.Int("status", rej.Status()),
					slog.Duration("duration", time.Since(start)),
					slog.Bool("rejected", true),
				)

				return nil, err
			}

			return &logged{
				inner:  rep,
				logger: cfg.logger,
				start:  start,
				method: rt.Method(),
				path:   rt.Path(),
				route:  rt.MatchedPath(),
			}, nil
		}
	}
}

// logged defers the log line until the response is on the wire.
type logged struct {
	inner  reply.Reply
	logger *slog.Logger
	start  time.Time
	method string
	path   string
	route  string
}

func (l *logged) Respond(w http.ResponseWriter, r *http.Request) {
	cw := &countingWriter{ResponseWriter: w, status: http.StatusOK}
	l.inner.Respond(cw, r)

	l.logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
		slog.String("method", l.method),
		slog.String("path", l.path),
		slog.String("route", l.route),
		slog.Int("status", cw.status),
		slog.Int64("bytes", cw.bytes),
		slog.Duration("duration", time.Since(l.start)),
	)
}

type countingWriter struct {
	http.ResponseWriter
	status  int
	bytes   int64
	written bool
}

func (w *countingWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.written = true
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)

	return n, err
}
