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

import "context"

// And runs matchers left to right, matching only when all of them do.
// With no arguments it behaves like [Any]. The first rejection stops
// the chain; the path cursor is left wherever the failure happened,
// since rewinding is the enclosing alternation's job.
func And(ms ...Filter[Unit]) Filter[Unit] {
	return func(ctx context.Context, rt *Route) (Unit, error) {
		for _, m := range ms {
			if _, err := m(ctx, rt); err != nil {
				return Unit{}, err
			}
		}

		return Unit{}, nil
	}
}

// And appends a matcher to an extraction: the receiver evaluates first,
// then m must match, and the receiver's value passes through.
//
//	// GET /users/{id}, where the trailing End guards full-path match.
//	f := filter.Then(
//	    filter.And(method.Get(), path.Segment("users")),
//	    path.Param[int](),
//	).And(path.End())
func (f Filter[T]) And(m Filter[Unit]) Filter[T] {
	return func(ctx context.Context, rt *Route) (T, error) {
		v, err := f(ctx, rt)
		if err != nil {
			var zero T
			return zero, err
		}
		if _, err := m(ctx, rt); err != nil {
			var zero T
			return zero, err
		}

		return v, nil
	}
}

// Then runs a matcher before an extraction, keeping only the extracted
// value. It is the usual way to put path and method constraints in
// front of the filter that produces data.
func Then[T any](m Filter[Unit], f Filter[T]) Filter[T] {
	return func(ctx context.Context, rt *Route) (T, error) {
		if _, err := m(ctx, rt); err != nil {
			var zero T
			return zero, err
		}

		return f(ctx, rt)
	}
}
