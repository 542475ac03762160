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

package metrics

import "go.opentelemetry.io/otel/metric"

type config struct {
	provider        metric.MeterProvider
	exclude         map[string]struct{}
	durationBuckets []float64
}

// Option configures the metrics wrap.
type Option func(*config)

// WithMeterProvider sets the provider instruments are created from.
//
// Default: the global provider registered with otel.SetMeterProvider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) {
		cfg.provider = provider
	}
}

// WithExcludePaths disables recording for exact request paths, so the
// metrics endpoint does not measure itself:
//
//	metrics.New(metrics.WithExcludePaths("/metrics"))
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.exclude[p] = struct{}{}
		}
	}
}

// WithDurationBuckets sets the histogram bucket boundaries for request
// duration, in seconds.
//
// Default: 0.005 to 10 in the usual doubling steps.
func WithDurationBuckets(seconds ...float64) Option {
	return func(cfg *config) {
		cfg.durationBuckets = seconds
	}
}
