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

package filter

import (
	"context"
	"net/http"
)

// Filter extracts a T from a request or rejects it. Evaluation reads
// the Route (advancing its path cursor, possibly taking its body) and
// returns either the extraction or an error, conventionally a
// *reject.Rejection. Errors of other types still work: combinators and
// adapters normalize them with reject.From, resolving their status
// through the HTTPStatus capability or falling back to a logged 500.
//
// A Filter must tolerate re-evaluation. Alternation evaluates the same
// filter again on other requests, and a single request may evaluate a
// branch that later loses, so filters hold no per-request state of
// their own; everything request-scoped lives on the Route.
//
// Same-type composition is available as methods ([Filter.And],
// [Filter.Or], [Filter.OrElse], [Filter.With]). Composition that
// changes the extracted type needs new type parameters, which methods
// cannot introduce, so it lives in package functions such as [Then],
// [Map], [AndThen], [Or] and the Join family.
type Filter[T any] func(ctx context.Context, rt *Route) (T, error)

// Unit is the empty extraction. Matchers such as method.Get or
// path.Segment produce it: they constrain the request without
// contributing a value, and sequencing drops it from the result.
type Unit struct{}

// Any matches every request, extracting nothing and consuming nothing.
// It is the identity for sequencing and a common root for building
// filters out of [Map] or [AndThen] alone.
func Any() Filter[Unit] {
	return func(context.Context, *Route) (Unit, error) {
		return Unit{}, nil
	}
}

// Value matches every request and extracts a fixed value. Handy for
// injecting configuration into a chain:
//
//	db := filter.Value(pool)
//	handler := filter.AndThen2(filter.Join2(db, path.Param[int]()), load)
func Value[T any](v T) Filter[T] {
	return func(context.Context, *Route) (T, error) {
		return v, nil
	}
}

// Request extracts the raw *http.Request. An escape hatch for the rare
// filter that needs parts of the request no dedicated filter exposes;
// the request is shared, so treat it as read-only.
func Request() Filter[*http.Request] {
	return func(_ context.Context, rt *Route) (*http.Request, error) {
		return rt.Request(), nil
	}
}
