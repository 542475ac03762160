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

package cors

type config struct {
	allowedOrigins   []string
	allowAllOrigins  bool
	allowedMethods   []string
	allowedHeaders   []string
	exposedHeaders   []string
	allowCredentials bool
	maxAge           int
	allowOriginFunc  func(origin string) bool
}

// Option configures the CORS wrap.
type Option func(*config)

// WithAllowedOrigins restricts cross-origin requests to the listed
// origins. Origins are compared case-insensitively and must include the
// scheme:
//
//	cors.New(cors.WithAllowedOrigins("https://app.example.com"))
//
// Default: all origins are allowed.
func WithAllowedOrigins(origins ...string) Option {
	return func(cfg *config) {
		cfg.allowedOrigins = origins
		cfg.allowAllOrigins = false
	}
}

// WithAllowAllOrigins allows every origin. This is the default, so the
// option exists to state the intent explicitly.
func WithAllowAllOrigins() Option {
	return func(cfg *config) {
		cfg.allowAllOrigins = true
		cfg.allowedOrigins = nil
	}
}

// WithAllowOriginFunc decides per origin whether a cross-origin request
// is allowed. It overrides any configured origin list:
//
//	cors.New(cors.WithAllowOriginFunc(func(origin string) bool {
//		return strings.HasSuffix(origin, ".example.com")
//	}))
func WithAllowOriginFunc(fn func(origin string) bool) Option {
	return func(cfg *config) {
		cfg.allowOriginFunc = fn
		cfg.allowAllOrigins = false
	}
}

// WithAllowedMethods sets the methods a preflight may request.
//
// Default: GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS.
func WithAllowedMethods(methods ...string) Option {
	return func(cfg *config) {
		cfg.allowedMethods = methods
	}
}

// WithAllowedHeaders sets the request headers a preflight may request.
//
// Default: Origin, Content-Type, Content-Length, Accept, Authorization.
func WithAllowedHeaders(headers ...string) Option {
	return func(cfg *config) {
		cfg.allowedHeaders = headers
	}
}

// WithExposedHeaders lists response headers scripts may read from a
// cross-origin response. Default: none.
func WithExposedHeaders(headers ...string) Option {
	return func(cfg *config) {
		cfg.exposedHeaders = headers
	}
}

// WithAllowCredentials permits cookies and authorization headers on
// cross-origin requests. When combined with allowing all origins, the
// concrete request origin is echoed instead of the wildcard.
//
// Default: credentials are not allowed.
func WithAllowCredentials() Option {
	return func(cfg *config) {
		cfg.allowCredentials = true
	}
}

// WithMaxAge sets how long, in seconds, browsers may cache a preflight
// result. Default: 3600.
func WithMaxAge(seconds int) Option {
	return func(cfg *config) {
		cfg.maxAge = seconds
	}
}
