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

// Package metrics records OpenTelemetry request metrics for the
// wrapped routes.
//
// Four instruments are recorded per request: a duration histogram, a
// request counter, an in-flight up-down counter, and a response size
// histogram. Matched requests are recorded when their response has
// been written, with attributes for method, matched route, status code
// and status class. Rejections are recorded with the status they
// resolve to.
//
// Pair it with [NewPrometheusProvider] and [Exposition] to serve the
// numbers in Prometheus text format:
//
//	registry := prometheus.NewRegistry()
//	provider, err := metrics.NewPrometheusProvider(registry)
//	wrap, err := metrics.New(metrics.WithMeterProvider(provider))
//
//	exposition := filter.Then(path.Join("metrics").And(method.Get()), metrics.Exposition(registry))
//	routes := api.With(wrap).Or(exposition)
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

const scopeName = "rivaas.dev/filter/metrics"

// instruments holds the per-wrap instrument set.
type instruments struct {
	duration     metric.Float64Histogram
	requests     metric.Int64Counter
	active       metric.Int64UpDownCounter
	responseSize metric.Int64Histogram
}

// New builds the metrics wrap. It fails only when an instrument cannot
// be created on the configured provider.
func New(opts ...Option) (filter.Wrap[reply.Reply], error) {
	cfg := &config{
		exclude: make(map[string]struct{}),
		durationBuckets: []float64{
			0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	provider := cfg.provider
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(scopeName)

	var (
		ins instruments
		err error
	)

	ins.duration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(cfg.durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("create request duration histogram: %w", err)
	}

	ins.requests, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}

	ins.active, err = meter.Int64UpDownCounter(
		"http_requests_active",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("create active requests counter: %w", err)
	}

	ins.responseSize, err = meter.Int64Histogram(
		"http_response_size_bytes",
		metric.WithDescription("Size of HTTP response bodies in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create response size histogram: %w", err)
	}

	return func(next filter.Filter[reply.Reply]) filter.Filter[reply.Reply] {
		return func(ctx context.Context, rt *filter.Route) (reply.Reply, error) {
			if _, skip := cfg.exclude[rt.Path()]; skip {
				return next(ctx, rt)
			}

			method := rt.Method()
			ins.active.Add(ctx, 1, metric.WithAttributes(attribute.String("http.method", method)))

			start := time.Now()
			rep, err := next(ctx, rt)
			if err != nil {
				status := reject.From(err).Status()
				ins.record(ctx, method, rt.MatchedPath(), status, 0, time.Since(start))

				return nil, err
			}

			return &measured{
				inner:  rep,
				ins:    &ins,
				start:  start,
				method: method,
				route:  rt.MatchedPath(),
			}, nil
		}
	}, nil
}

// MustNew is [New], panicking on error. Instrument creation only fails
// on misconfigured providers, so most callers use this form.
func MustNew(opts ...Option) filter.Wrap[reply.Reply] {
	wrap, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics: %v", err))
	}

	return wrap
}

func (ins *instruments) record(ctx context.Context, method, route string, status int, size int64, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
		attribute.String("http.status_class", statusClass(status)),
	)

	ins.duration.Record(ctx, elapsed.Seconds(), attrs)
	ins.requests.Add(ctx, 1, attrs)
	if size > 0 {
		ins.responseSize.Record(ctx, size, attrs)
	}
	ins.active.Add(ctx, -1, metric.WithAttributes(attribute.String("http.method", method)))
}

// measured defers recording until the response is on the wire so the
// real status and size are known.
type measured struct {
	inner  reply.Reply
	ins    *instruments
	start  time.Time
	method string
	route  string
}

func (m *measured) Respond(w http.ResponseWriter, r *http.Request) {
	cw := &countingWriter{ResponseWriter: w, status: http.StatusOK}
	m.inner.Respond(cw, r)

	m.ins.record(r.Context(), m.method, m.route, cw.status, cw.bytes, time.Since(m.start))
}

func statusClass(status int) string {
	switch status / 100 {
	case 2:
		return "2xx"
	case 3:
		return "3xx"
	case 4:
		return "4xx"
	case 5:
		return "5xx"
	default:
		return "unknown"
	}
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
