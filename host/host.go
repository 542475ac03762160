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

// Package host routes on the request's Host header.
package host

import (
	"context"
	"strings"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
)

// Exact matches requests whose host equals the given authority,
// compared case-insensitively and including any port:
//
//	admin := filter.Then(host.Exact("admin.example.com"), adminRoutes)
//
// A mismatch is a plain not-found, so virtual hosts chain with Or.
func Exact(authority string) filter.Filter[filter.Unit] {
	return func(_ context.Context, rt *filter.Route) (filter.Unit, error) {
		if !strings.EqualFold(rt.Request().Host, authority) {
			return filter.Unit{}, reject.NotFound()
		}

		return filter.Unit{}, nil
	}
}

// Value extracts the request host. It always matches.
func Value() filter.Filter[string] {
	return func(_ context.Context, rt *filter.Route) (string, error) {
		return rt.Request().Host, nil
	}
}
