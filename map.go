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

// Map transforms an extraction with a pure function. The function runs
// only when f matches; rejections pass through untouched. Use [AndThen]
// when the transformation can fail.
func Map[T, U any](f Filter[T], fn func(T) U) Filter[U] {
	return func(ctx context.Context, rt *Route) (U, error) {
		v, err := f(ctx, rt)
		if err != nil {
			var zero U
			return zero, err
		}

		return fn(v), nil
	}
}

// Map2 is [Map] with the tuple unpacked into separate arguments.
func Map2[A, B, U any](f Filter[Tuple2[A, B]], fn func(A, B) U) Filter[U] {
	return Map(f, func(t Tuple2[A, B]) U { return fn(t.A, t.B) })
}

// Map3 is [Map] with the tuple unpacked into separate arguments.
func Map3[A, B, C, U any](f Filter[Tuple3[A, B, C]], fn func(A, B, C) U) Filter[U] {
	return Map(f, func(t Tuple3[A, B, C]) U { return fn(t.A, t.B, t.C) })
}

// Map4 is [Map] with the tuple unpacked into separate arguments.
func Map4[A, B, C, D, U any](f Filter[Tuple4[A, B, C, D]], fn func(A, B, C, D) U) Filter[U] {
	return Map(f, func(t Tuple4[A, B, C, D]) U { return fn(t.A, t.B, t.C, t.D) })
}

// Map5 is [Map] with the tuple unpacked into separate arguments.
func Map5[A, B, C, D, E, U any](f Filter[Tuple5[A, B, C, D, E]], fn func(A, B, C, D, E) U) Filter[U] {
	return Map(f, func(t Tuple5[A, B, C, D, E]) U { return fn(t.A, t.B, t.C, t.D, t.E) })
}
