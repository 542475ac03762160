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

import (
	"fmt"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reply"
)

// NewPrometheusProvider builds a meter provider that exports into the
// given Prometheus registry. Everything recorded through the provider
// becomes scrapeable via [Exposition] over the same registry.
func NewPrometheusProvider(registry *promclient.Registry) (metric.MeterProvider, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}

// Exposition serves the registry in Prometheus text format. Mount it
// on a route of its own:
//
//	filter.Then(path.Join("metrics").And(method.Get()), metrics.Exposition(registry))
func Exposition(gatherer promclient.Gatherer) filter.Filter[reply.Reply] {
	handler := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})

	return filter.Map(filter.Any(), func(filter.Unit) reply.Reply {
		return reply.Handler(handler)
	})
}
