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
	"log/slog"
	"time"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
)

// Environment values accepted by [WithEnvironment].
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Defaults applied by [New] and [NewHandler].
const (
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20
	DefaultShutdownTimeout   = 30 * time.Second
)

type config struct {
	formatter   reject.Formatter
	logger      *slog.Logger
	setups      []func(*filter.Route)
	serviceName string
	environment string
	banner      bool
	h2c         bool

	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	readHeaderTimeout time.Duration
	maxHeaderBytes    int
	shutdownTimeout   time.Duration
}

func defaultConfig() *config {
	return &config{
		logger:            slog.Default(),
		serviceName:       "rivaas",
		environment:       EnvironmentDevelopment,
		banner:            true,
		readTimeout:       DefaultReadTimeout,
		writeTimeout:      DefaultWriteTimeout,
		idleTimeout:       DefaultIdleTimeout,
		readHeaderTimeout: DefaultReadHeaderTimeout,
		maxHeaderBytes:    DefaultMaxHeaderBytes,
		shutdownTimeout:   DefaultShutdownTimeout,
	}
}

// Option configures the handler and server.
type Option func(*config)

// WithFormatter sets the formatter rejections are rendered through.
//
// Default: RFC 9457 problem documents.
func WithFormatter(f reject.Formatter) Option {
	return func(cfg *config) {
		cfg.formatter = f
	}
}

// WithLogger sets the logger for lifecycle events.
//
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithRouteSetup registers fn to run on every route before evaluation.
// The usual use is seeding extensions with shared dependencies:
//
//	serve.WithRouteSetup(func(rt *filter.Route) {
//		ext.Store(rt, db)
//	})
func WithRouteSetup(fn func(*filter.Route)) Option {
	return func(cfg *config) {
		cfg.setups = append(cfg.setups, fn)
	}
}

// WithServiceName sets the name rendered in the startup banner.
//
// Default: "rivaas".
func WithServiceName(name string) Option {
	return func(cfg *config) {
		cfg.serviceName = name
	}
}

// WithEnvironment sets the environment mode. In production the banner
// is stripped of ANSI color.
//
// Default: "development".
func WithEnvironment(env string) Option {
	return func(cfg *config) {
		cfg.environment = env
	}
}

// WithoutBanner suppresses the startup banner.
func WithoutBanner() Option {
	return func(cfg *config) {
		cfg.banner = false
	}
}

// WithH2C serves HTTP/2 over cleartext connections alongside HTTP/1.1,
// for deployments behind a load balancer that terminates TLS.
func WithH2C() Option {
	return func(cfg *config) {
		cfg.h2c = true
	}
}

// WithReadTimeout bounds reading the entire request. Default: 10s.
func WithReadTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.readTimeout = d
	}
}

// WithWriteTimeout bounds writing the response. Default: 10s.
func WithWriteTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.writeTimeout = d
	}
}

// WithIdleTimeout bounds waiting for the next request on a keep-alive
// connection. Default: 60s.
func WithIdleTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.idleTimeout = d
	}
}

// WithReadHeaderTimeout bounds reading the request headers. Default: 2s.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.readHeaderTimeout = d
	}
}

// WithMaxHeaderBytes caps the size of request headers. Default: 1MB.
func WithMaxHeaderBytes(n int) Option {
	return func(cfg *config) {
		cfg.maxHeaderBytes = n
	}
}

// WithShutdownTimeout bounds the graceful drain after the context is
// canceled. Default: 30s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.shutdownTimeout = d
	}
}
