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

// Package cookie extracts typed values from request cookies.
package cookie

import (
	"context"
	"errors"
	"net/http"

	"rivaas.dev/filter"
	"rivaas.dev/filter/internal/convert"
	"rivaas.dev/filter/reject"
)

// Value extracts the named cookie converted to T. An absent cookie
// rejects with reject.MissingCookieError, an unconvertible one with
// reject.InvalidCookieError.
func Value[T any](name string) filter.Filter[T] {
	return func(_ context.Context, rt *filter.Route) (T, error) {
		var zero T
		c, err := rt.Request().Cookie(name)
		if errors.Is(err, http.ErrNoCookie) {
			return zero, reject.New(reject.MissingCookieError{Name: name})
		}
		if err != nil {
			return zero, reject.New(reject.InvalidCookieError{Name: name, Err: err})
		}
		v, err := convert.Value[T](c.Value)
		if err != nil {
			return zero, reject.New(reject.InvalidCookieError{Name: name, Err: err})
		}

		return v, nil
	}
}

// Optional extracts the named cookie converted to T, or nil when the
// cookie is absent. A cookie that is present but unconvertible still
// rejects.
func Optional[T any](name string) filter.Filter[*T] {
	return func(_ context.Context, rt *filter.Route) (*T, error) {
		c, err := rt.Request().Cookie(name)
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		if err != nil {
			return nil, reject.New(reject.InvalidCookieError{Name: name, Err: err})
		}
		v, err := convert.Value[T](c.Value)
		if err != nil {
			return nil, reject.New(reject.InvalidCookieError{Name: name, Err: err})
		}

		return &v, nil
	}
}
