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

// Package query extracts typed values from the request query string.
//
// Every failure here, a parameter that is missing, repeated when it
// should not be, or unparseable, rejects with reject.InvalidQueryError
// and renders as 400.
package query

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/filter"
	"rivaas.dev/filter/internal/convert"
	"rivaas.dev/filter/reject"
)

// Raw extracts the query string exactly as received, possibly empty.
func Raw() filter.Filter[string] {
	return func(_ context.Context, rt *filter.Route) (string, error) {
		return rt.Request().URL.RawQuery, nil
	}
}

// Values extracts the parsed query as url.Values. Unlike
// Request.URL.Query this rejects on malformed encodings instead of
// silently dropping them.
func Values() filter.Filter[url.Values] {
	return func(_ context.Context, rt *filter.Route) (url.Values, error) {
		vals, err := url.ParseQuery(rt.Request().URL.RawQuery)
		if err != nil {
			return nil, reject.New(reject.InvalidQueryError{Err: err})
		}

		return vals, nil
	}
}

// Value extracts the named parameter converted to T, rejecting when it
// is absent or unconvertible.
func Value[T any](name string) filter.Filter[T] {
	return func(_ context.Context, rt *filter.Route) (T, error) {
		var zero T
		vals, err := url.ParseQuery(rt.Request().URL.RawQuery)
		if err != nil {
			return zero, reject.New(reject.InvalidQueryError{Err: err})
		}
		raw := vals.Get(name)
		if raw == "" {
			return zero, reject.New(reject.InvalidQueryError{
				Err: fmt.Errorf("missing parameter %q", name),
			})
		}
		v, err := convert.Value[T](raw)
		if err != nil {
			return zero, reject.New(reject.InvalidQueryError{
				Err: fmt.Errorf("parameter %q: %w", name, err),
			})
		}

		return v, nil
	}
}

// Optional extracts the named parameter converted to T, or nil when it
// is absent. A present but unconvertible parameter still rejects.
func Optional[T any](name string) filter.Filter[*T] {
	return func(_ context.Context, rt *filter.Route) (*T, error) {
		vals, err := url.ParseQuery(rt.Request().URL.RawQuery)
		if err != nil {
			return nil, reject.New(reject.InvalidQueryError{Err: err})
		}
		raw := vals.Get(name)
		if raw == "" {
			return nil, nil
		}
		v, err := convert.Value[T](raw)
		if err != nil {
			return nil, reject.New(reject.InvalidQueryError{
				Err: fmt.Errorf("parameter %q: %w", name, err),
			})
		}

		return &v, nil
	}
}

// List extracts every occurrence of the named parameter converted to T.
// A parameter that never occurs extracts an empty slice.
func List[T any](name string) filter.Filter[[]T] {
	return func(_ context.Context, rt *filter.Route) ([]T, error) {
		vals, err := url.ParseQuery(rt.Request().URL.RawQuery)
		if err != nil {
			return nil, reject.New(reject.InvalidQueryError{Err: err})
		}
		out, err := convert.Slice[T](vals[name])
		if err != nil {
			return nil, reject.New(reject.InvalidQueryError{
				Err: fmt.Errorf("parameter %q: %w", name, err),
			})
		}

		return out, nil
	}
}

// Decode extracts the whole query string into a struct, matching
// fields through `query` tags:
//
//	type Page struct {
//	    Offset int      `query:"offset"`
//	    Limit  int      `query:"limit"`
//	    Sort   []string `query:"sort"`
//	}
//	page := query.Decode[Page]()
//
// Decoding is weakly typed; repeated parameters fill slice fields.
// Absent parameters leave their fields at zero, so defaults belong on
// the struct before serving or in a Map after extraction.
func Decode[T any]() filter.Filter[T] {
	return func(_ context.Context, rt *filter.Route) (T, error) {
		var out T
		vals, err := url.ParseQuery(rt.Request().URL.RawQuery)
		if err != nil {
			return out, reject.New(reject.InvalidQueryError{Err: err})
		}

		src := make(map[string]any, len(vals))
		for k, vs := range vals {
			if len(vs) == 1 {
				src[k] = vs[0]
			} else {
				src[k] = vs
			}
		}

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "query",
			WeaklyTypedInput: true,
			Result:           &out,
		})
		if err != nil {
			return out, reject.New(reject.InvalidQueryError{Err: err})
		}
		if err := dec.Decode(src); err != nil {
			return out, reject.New(reject.InvalidQueryError{Err: err})
		}

		return out, nil
	}
}
