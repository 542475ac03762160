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
	"reflect"

	"rivaas.dev/filter/reject"
)

// Boxed erases a filter's extraction type. Boxed filters can be stored
// in one slice or map regardless of what they extract, which is how
// route registries and plugin systems hold filters of mixed types.
// [Typed] restores the static type at the edge.
func Boxed[T any](f Filter[T]) Filter[any] {
	return func(ctx context.Context, rt *Route) (any, error) {
		v, err := f(ctx, rt)
		if err != nil {
			return nil, err
		}

		return v, nil
	}
}

// Typed asserts a boxed filter back to a concrete extraction type. A
// value of any other type rejects with reject.TypeMismatchError, which
// renders as a server error, since a wrong assertion is a wiring
// mistake rather than anything the client did.
func Typed[T any](f Filter[any]) Filter[T] {
	want := reflect.TypeOf((*T)(nil)).Elem()

	return func(ctx context.Context, rt *Route) (T, error) {
		var zero T
		v, err := f(ctx, rt)
		if err != nil {
			return zero, err
		}
		t, ok := v.(T)
		if !ok {
			return zero, reject.New(reject.TypeMismatchError{
				Want: want,
				Got:  reflect.TypeOf(v),
			})
		}

		return t, nil
	}
}
