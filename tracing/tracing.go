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

// Package tracing opens one OpenTelemetry span per request around the
// wrapped routes.
//
// The span starts before evaluation, so filters see the span context
// and can add events of their own. Once a route has matched, the span
// is renamed to the matched portion of the path. The span ends when
// the response has been written, carrying the final status code;
// rejected requests end it at evaluation time with the status the
// rejection resolves to.
//
//	routes = routes.With(tracing.New(
//		tracing.WithTracerProvider(provider),
//		tracing.WithExcludePaths("/healthz"),
//	))
package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

const scopeName = "rivaas.dev/filter/tracing"

// New builds the tracing wrap.
func New(opts ...Option) filter.Wrap[reply.Reply] {
	cfg := &config{exclude: make(map[string]struct{})}
	for _, opt := range opts {
		opt(cfg)
	}

	tracer := func() trace.Tracer {
		if cfg.provider != nil {
			return cfg.provider.Tracer(scopeName)
		}

		return otel.GetTracerProvider().Tracer(scopeName)
	}()
	propagator := func() propagation.TextMapPropagator {
		if cfg.propagator != nil {
			return cfg.propagator
		}

		return otel.GetTextMapPropagator()
	}()

	return func(next filter.Filter[reply.Reply]) filter.Filter[reply.Reply] {
		return func(ctx context.Context, rt *filter.Route) (reply.Reply, error) {
			if _, skip := cfg.exclude[rt.Path()]; skip {
				return next(ctx, rt)
			}

			req := rt.Request()
			ctx = propagator.Extract(ctx, propagation.HeaderCarrier(req.Header))

			ctx, span := tracer.Start(ctx, req.Method+" "+rt.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", req.Method),
					attribute.String("http.target", rt.Path()),
					attribute.String("http.host", req.Host),
				),
			)

			rep, err := next(ctx, rt)
			if err != nil {
				rej := reject.From(err)
				status := rej.Status()
				span.SetAttributes(attribute.Int("http.status_code", status))
				if status >= http.StatusInternalServerError {
					span.SetStatus(codes.Error, rej.Error())
					span.RecordError(rej.Preferred())
				}
				span.End()

				return nil, err
			}

			span.SetName(req.Method + " " + rt.MatchedPath())
			span.SetAttributes(attribute.String("http.route", rt.MatchedPath()))

			return &spanned{inner: rep, span: span}, nil
		}
	}
}

// spanned keeps the span open until the response is written so it can
// record the real status code.
type spanned struct {
	inner reply.Reply
	span  trace.Span
}

func (s *spanned) Respond(w http.ResponseWriter, r *http.Request) {
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	s.inner.Respond(sw, r)

	s.span.SetAttributes(attribute.Int("http.status_code", sw.status))
	if sw.status >= http.StatusInternalServerError {
		s.span.SetStatus(codes.Error, http.StatusText(sw.status))
	}
	s.span.End()
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	w.written = true

	return w.ResponseWriter.Write(p)
}
