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

// Package path matches and extracts request path segments.
//
// Matching is positional. Each filter consumes segments from the
// Route's cursor, so composition order is the route shape:
//
//	// GET /users/{id}
//	userID := filter.Then(path.Join("users"), path.Param[int]()).And(path.End())
//
// Every rejection here is a plain not-found. A segment that fails to
// parse as the parameter type is also not-found rather than a client
// error, so /users/alice falls through to a sibling route such as
// /users/me instead of answering 400.
package path

import (
	"context"

	"rivaas.dev/filter"
	"rivaas.dev/filter/internal/convert"
	"rivaas.dev/filter/reject"
)

// Segment matches one literal path segment and consumes it.
func Segment(name string) filter.Filter[filter.Unit] {
	return func(_ context.Context, rt *filter.Route) (filter.Unit, error) {
		if s, ok := rt.Take(); !ok || s != name {
			return filter.Unit{}, reject.NotFound()
		}

		return filter.Unit{}, nil
	}
}

// Join matches a run of literal segments, so Join("api", "v1") is
// Segment("api") followed by Segment("v1").
func Join(names ...string) filter.Filter[filter.Unit] {
	return func(_ context.Context, rt *filter.Route) (filter.Unit, error) {
		for _, name := range names {
			if s, ok := rt.Take(); !ok || s != name {
				return filter.Unit{}, reject.NotFound()
			}
		}

		return filter.Unit{}, nil
	}
}

// Param consumes one segment and converts it to T. Exhausted paths and
// unconvertible segments both reject as not-found. T may be any scalar
// type, time.Time, time.Duration, or a type whose pointer implements
// encoding.TextUnmarshaler.
func Param[T any]() filter.Filter[T] {
	return func(_ context.Context, rt *filter.Route) (T, error) {
		var zero T
		s, ok := rt.Take()
		if !ok {
			return zero, reject.NotFound()
		}
		v, err := convert.Value[T](s)
		if err != nil {
			return zero, reject.NotFound()
		}

		return v, nil
	}
}

// End matches only when the whole path has been consumed. Routes that
// should not match longer paths end with it.
func End() filter.Filter[filter.Unit] {
	return func(_ context.Context, rt *filter.Route) (filter.Unit, error) {
		if !rt.AtEnd() {
			return filter.Unit{}, reject.NotFound()
		}

		return filter.Unit{}, nil
	}
}

// Tail consumes the rest of the path and extracts it without a leading
// slash. It matches even when nothing remains, extracting "".
func Tail() filter.Filter[string] {
	return func(_ context.Context, rt *filter.Route) (string, error) {
		return rt.TakeTail(), nil
	}
}

// Peek extracts the unconsumed remainder of the path without consuming
// it. Useful for routing decisions that inspect but do not match.
func Peek() filter.Filter[string] {
	return func(_ context.Context, rt *filter.Route) (string, error) {
		return rt.Tail(), nil
	}
}

// Full extracts the complete request path as received, regardless of
// how much has been matched. It consumes nothing.
func Full() filter.Filter[string] {
	return func(_ context.Context, rt *filter.Route) (string, error) {
		return rt.Path(), nil
	}
}
