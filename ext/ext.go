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

// Package ext reads and writes the Route's type-keyed extension store.
//
// Extensions carry request-scoped dependencies into filters without
// threading them through every signature: an adapter or an enclosing
// [Provide] wrap stores a value under its type, and [Get] extracts it
// further down the chain. Reading a type nothing provided is a wiring
// bug and rejects as a server error.
package ext

import (
	"context"
	"reflect"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
)

func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Get extracts the extension stored under T, rejecting with
// reject.MissingExtensionError when nothing was provided.
func Get[T any]() filter.Filter[T] {
	key := keyOf[T]()

	return func(_ context.Context, rt *filter.Route) (T, error) {
		var zero T
		v, ok := rt.Extension(key)
		if !ok {
			return zero, reject.New(reject.MissingExtensionError{Type: key})
		}

		return v.(T), nil
	}
}

// Optional extracts the extension stored under T, or nil when nothing
// was provided.
func Optional[T any]() filter.Filter[*T] {
	key := keyOf[T]()

	return func(_ context.Context, rt *filter.Route) (*T, error) {
		v, ok := rt.Extension(key)
		if !ok {
			return nil, nil
		}
		t := v.(T)

		return &t, nil
	}
}

// Provide wraps a filter so that every evaluation sees v stored under
// T. U is the wrapped filter's extraction type:
//
//	routes.With(ext.Provide[reply.Reply](store))
func Provide[U, T any](v T) filter.Wrap[U] {
	key := keyOf[T]()

	return func(next filter.Filter[U]) filter.Filter[U] {
		return func(ctx context.Context, rt *filter.Route) (U, error) {
			rt.StoreExtension(key, v)

			return next(ctx, rt)
		}
	}
}

// Store records v under T directly on a route. Adapters use it to seed
// dependencies before evaluation; inside a filter chain, prefer
// [Provide].
func Store[T any](rt *filter.Route, v T) {
	rt.StoreExtension(keyOf[T](), v)
}
