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
	"rivaas.dev/filter/reply"
)

// OrElse calls a handler when the receiver rejects, giving it the
// chance to produce a value anyway. The path cursor is rewound before
// the handler runs. The handler sees every rejection, fatal ones
// included; returning the rejection unchanged passes it through,
// returning any other error replaces it.
func (f Filter[T]) OrElse(fn func(context.Context, *reject.Rejection) (T, error)) Filter[T] {
	return func(ctx context.Context, rt *Route) (T, error) {
		idx := rt.PathIndex()
		v, err := f(ctx, rt)
		if err == nil {
			return v, nil
		}
		rt.ResetPathIndex(idx)

		v, err = fn(ctx, reject.From(err))
		if err != nil {
			var zero T
			return zero, reject.From(err)
		}

		return v, nil
	}
}

// Recover turns rejections into replies while keeping successful
// extractions intact: a match comes back as the left of the Either, a
// recovered rejection as the right. The handler may decline by
// returning an error, which continues as a rejection.
//
// Applied to a reply-typed filter and collapsed with [Unify], it is the
// standard way to install custom error pages:
//
//	site := filter.Unify(filter.Recover(routes, renderError))
func Recover[T any](f Filter[T], fn func(context.Context, *reject.Rejection) (reply.Reply, error)) Filter[Either[T, reply.Reply]] {
	return func(ctx context.Context, rt *Route) (Either[T, reply.Reply], error) {
		idx := rt.PathIndex()
		v, err := f(ctx, rt)
		if err == nil {
			return Left[T, reply.Reply](v), nil
		}
		rt.ResetPathIndex(idx)

		rep, err := fn(ctx, reject.From(err))
		if err != nil {
			return Either[T, reply.Reply]{}, reject.From(err)
		}

		return Right[T, reply.Reply](rep), nil
	}
}
