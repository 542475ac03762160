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

// Or tries fa and falls back to fb, reporting which branch matched. The
// path cursor is rewound to its starting position before fb runs, and
// once more when both branches reject, so alternation never leaks
// partial matches to its surroundings.
//
// When both branches reject, their rejections merge and the merged
// rejection resolves to the most specific reason regardless of branch
// order. A fatal rejection from fa is returned as is, without trying
// fb: it already carries a complete response.
func Or[A, B any](fa Filter[A], fb Filter[B]) Filter[Either[A, B]] {
	return func(ctx context.Context, rt *Route) (Either[A, B], error) {
		idx := rt.PathIndex()

		a, errA := fa(ctx, rt)
		if errA == nil {
			return Left[A, B](a), nil
		}
		rt.ResetPathIndex(idx)
		ra := reject.From(errA)
		if ra.IsFatal() {
			return Either[A, B]{}, ra
		}

		b, errB := fb(ctx, rt)
		if errB == nil {
			return Right[A, B](b), nil
		}
		rt.ResetPathIndex(idx)
		rb := reject.From(errB)
		if rb.IsFatal() {
			return Either[A, B]{}, rb
		}

		return Either[A, B]{}, reject.Combine(ra, rb)
	}
}

// Unify collapses an Either of equal types to the value of whichever
// branch matched.
func Unify[T any](f Filter[Either[T, T]]) Filter[T] {
	return func(ctx context.Context, rt *Route) (T, error) {
		e, err := f(ctx, rt)
		if err != nil {
			var zero T
			return zero, err
		}
		if v, ok := e.Right(); ok {
			return v, nil
		}
		v, _ := e.Left()

		return v, nil
	}
}

// Or tries the receiver and falls back to g. It behaves like [Or]
// followed by [Unify] for the common case where both branches extract
// the same type, which is how route tables are assembled:
//
//	api := listUsers.Or(getUser).Or(createUser)
//
// The body repeats the alternation logic rather than delegating to
// [Or]: routing through Filter[Either[T, T]] would instantiate this
// method at an ever deeper type, an instantiation cycle the compiler
// rejects.
func (f Filter[T]) Or(g Filter[T]) Filter[T] {
	return func(ctx context.Context, rt *Route) (T, error) {
		var zero T
		idx := rt.PathIndex()

		v, errF := f(ctx, rt)
		if errF == nil {
			return v, nil
		}
		rt.ResetPathIndex(idx)
		rf := reject.From(errF)
		if rf.IsFatal() {
			return zero, rf
		}

		v, errG := g(ctx, rt)
		if errG == nil {
			return v, nil
		}
		rt.ResetPathIndex(idx)
		rg := reject.From(errG)
		if rg.IsFatal() {
			return zero, rg
		}

		return zero, reject.Combine(rf, rg)
	}
}
