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

	"rivaas.dev/filter/reject"
)

// AndThen transforms an extraction with a function that can fail. A
// returned error becomes a rejection: a *reject.Rejection is used as
// is, any other error is wrapped as a single cause whose status comes
// from its HTTPStatus method when it has one. This is where business
// logic usually lives:
//
//	user := filter.AndThen(userID, func(ctx context.Context, id int) (reply.Reply, error) {
//	    u, err := store.User(ctx, id)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return reply.JSON(u), nil
//	})
func AndThen[T, U any](f Filter[T], fn func(context.Context, T) (U, error)) Filter[U] {
	return func(ctx context.Context, rt *Route) (U, error) {
		v, err := f(ctx, rt)
		if err != nil {
			var zero U
			return zero, err
		}
		u, err := fn(ctx, v)
		if err != nil {
			var zero U
			return zero, reject.From(err)
		}

		return u, nil
	}
}

// AndThen2 is [AndThen] with the tuple unpacked into separate arguments.
func AndThen2[A, B, U any](f Filter[Tuple2[A, B]], fn func(context.Context, A, B) (U, error)) Filter[U] {
	return AndThen(f, func(ctx context.Context, t Tuple2[A, B]) (U, error) {
		return fn(ctx, t.A, t.B)
	})
}

// AndThen3 is [AndThen] with the tuple unpacked into separate arguments.
func AndThen3[A, B, C, U any](f Filter[Tuple3[A, B, C]], fn func(context.Context, A, B, C) (U, error)) Filter[U] {
	return AndThen(f, func(ctx context.Context, t Tuple3[A, B, C]) (U, error) {
		return fn(ctx, t.A, t.B, t.C)
	})
}

// AndThen4 is [AndThen] with the tuple unpacked into separate arguments.
func AndThen4[A, B, C, D, U any](f Filter[Tuple4[A, B, C, D]], fn func(context.Context, A, B, C, D) (U, error)) Filter[U] {
	return AndThen(f, func(ctx context.Context, t Tuple4[A, B, C, D]) (U, error) {
		return fn(ctx, t.A, t.B, t.C, t.D)
	})
}

// AndThen5 is [AndThen] with the tuple unpacked into separate arguments.
func AndThen5[A, B, C, D, E, U any](f Filter[Tuple5[A, B, C, D, E]], fn func(context.Context, A, B, C, D, E) (U, error)) Filter[U] {
	return AndThen(f, func(ctx context.Context, t Tuple5[A, B, C, D, E]) (U, error) {
		return fn(ctx, t.A, t.B, t.C, t.D, t.E)
	})
}
