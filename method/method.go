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

// Package method constrains filters to an HTTP method.
//
// A method mismatch rejects with reject.MethodNotAllowedError, which
// resolution ranks just above not-found. Compose the path match before
// the method check so a branch reports the mismatch only on paths it
// owns; a table built that way answers 405 when some branch matched the
// path but not the method, and 404 for unknown paths.
package method

import (
	"context"
	"net/http"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
)

// Is matches requests with the given method.
func Is(m string) filter.Filter[filter.Unit] {
	return func(_ context.Context, rt *filter.Route) (filter.Unit, error) {
		if rt.Method() != m {
			return filter.Unit{}, reject.New(reject.MethodNotAllowedError{})
		}

		return filter.Unit{}, nil
	}
}

// Get matches GET requests.
func Get() filter.Filter[filter.Unit] { return Is(http.MethodGet) }

// Post matches POST requests.
func Post() filter.Filter[filter.Unit] { return Is(http.MethodPost) }

// Put matches PUT requests.
func Put() filter.Filter[filter.Unit] { return Is(http.MethodPut) }

// Delete matches DELETE requests.
func Delete() filter.Filter[filter.Unit] { return Is(http.MethodDelete) }

// Patch matches PATCH requests.
func Patch() filter.Filter[filter.Unit] { return Is(http.MethodPatch) }

// Head matches HEAD requests.
func Head() filter.Filter[filter.Unit] { return Is(http.MethodHead) }

// Options matches OPTIONS requests.
func Options() filter.Filter[filter.Unit] { return Is(http.MethodOptions) }

// Value extracts the request method. It always matches.
func Value() filter.Filter[string] {
	return func(_ context.Context, rt *filter.Route) (string, error) {
		return rt.Method(), nil
	}
}
