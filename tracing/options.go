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

package tracing

import (
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type config struct {
	provider   trace.TracerProvider
	propagator propagation.TextMapPropagator
	exclude    map[string]struct{}
}

// Option configures the tracing wrap.
type Option func(*config)

// WithTracerProvider sets the provider spans are started from.
//
// Default: the global provider registered with otel.SetTracerProvider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *config) {
		cfg.provider = provider
	}
}

// WithPropagator sets the propagator used to pick up a parent trace
// from the incoming request headers.
//
// Default: the global propagator registered with otel.SetTextMapPropagator.
func WithPropagator(propagator propagation.TextMapPropagator) Option {
	return func(cfg *config) {
		cfg.propagator = propagator
	}
}

// WithExcludePaths disables tracing for exact request paths, typically
// health checks and the metrics endpoint:
//
//	tracing.New(tracing.WithExcludePaths("/healthz", "/metrics"))
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.exclude[p] = struct{}{}
		}
	}
}
