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

// Package auth matches requests carrying valid credentials.
//
// Basic extracts the username from HTTP basic authentication. Missing
// or invalid credentials produce a fatal rejection that renders a 401
// challenge with a WWW-Authenticate header. The rejection is fatal so
// an enclosing Or does not swallow the challenge by trying another
// branch:
//
// Match the path before the credentials so only the protected branch
// ever challenges:
//
//	user := auth.Basic(auth.WithUsers(map[string]string{
//		"admin": "s3cret",
//	}))
//
//	protected := filter.AndThen(
//		filter.Then(path.Join("admin"), user),
//		adminHandler,
//	)
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

type config struct {
	realm     string
	users     map[string]string
	validator func(username, password string) bool
}

// Option configures basic authentication.
type Option func(*config)

// WithRealm sets the realm announced in the challenge.
//
// Default: "Restricted".
func WithRealm(realm string) Option {
	return func(cfg *config) {
		cfg.realm = realm
	}
}

// WithUsers accepts the listed username to password pairs. Passwords
// are compared in constant time.
func WithUsers(users map[string]string) Option {
	return func(cfg *config) {
		cfg.users = users
	}
}

// WithValidator delegates the credential check. It runs after the user
// map, so the two can be combined:
//
//	auth.Basic(auth.WithValidator(func(username, password string) bool {
//		return directory.Check(username, password)
//	}))
func WithValidator(fn func(username, password string) bool) Option {
	return func(cfg *config) {
		cfg.validator = fn
	}
}

// Basic matches requests with valid basic-auth credentials and
// extracts the username.
func Basic(opts ...Option) filter.Filter[string] {
	cfg := &config{realm: "Restricted"}
	for _, opt := range opts {
		opt(cfg)
	}

	challenge := reject.Fatal(
		reply.WithHeader(
			reply.Status(http.StatusUnauthorized),
			"WWW-Authenticate", `Basic realm="`+cfg.realm+`", charset="UTF-8"`,
		),
		http.StatusUnauthorized,
	)

	return func(_ context.Context, rt *filter.Route) (string, error) {
		username, password, ok := rt.Request().BasicAuth()
		if !ok {
			return "", challenge
		}
		if !cfg.check(username, password) {
			return "", challenge
		}

		return username, nil
	}
}

func (cfg *config) check(username, password string) bool {
	if expected, ok := cfg.users[username]; ok && secureCompare(password, expected) {
		return true
	}
	if cfg.validator != nil {
		return cfg.validator(username, password)
	}

	return false
}

// secureCompare hashes both sides so the comparison neither leaks
// timing nor the length of the expected password.
func secureCompare(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))

	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}
