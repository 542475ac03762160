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

// Package header extracts typed values from request headers.
//
// Missing and malformed headers reject with reject.MissingHeaderError
// and reject.InvalidHeaderError, both rendering as 400. Header filters
// consume no path segments, so they compose anywhere in a chain.
package header

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/filter"
	"rivaas.dev/filter/internal/convert"
	"rivaas.dev/filter/reject"
)

// Value extracts the named header converted to T. An absent header
// rejects as missing, an unconvertible one as invalid.
//
//	timeout := header.Value[time.Duration]("X-Request-Timeout")
func Value[T any](name string) filter.Filter[T] {
	return func(_ context.Context, rt *filter.Route) (T, error) {
		var zero T
		raw := rt.Request().Header.Get(name)
		if raw == "" {
			return zero, reject.New(reject.MissingHeaderError{Name: name})
		}
		v, err := convert.Value[T](raw)
		if err != nil {
			return zero, reject.New(reject.InvalidHeaderError{Name: name, Err: err})
		}

		return v, nil
	}
}

// Optional extracts the named header converted to T, or nil when the
// header is absent. A header that is present but unconvertible still
// rejects: optional means omittable, not ignorable.
func Optional[T any](name string) filter.Filter[*T] {
	return func(_ context.Context, rt *filter.Route) (*T, error) {
		raw := rt.Request().Header.Get(name)
		if raw == "" {
			return nil, nil
		}
		v, err := convert.Value[T](raw)
		if err != nil {
			return nil, reject.New(reject.InvalidHeaderError{Name: name, Err: err})
		}

		return &v, nil
	}
}

// Exact requires the named header to hold exactly the given value,
// compared case-sensitively.
func Exact(name, value string) filter.Filter[filter.Unit] {
	return exact(name, value, func(a, b string) bool { return a == b })
}

// ExactFold is [Exact] with case-insensitive comparison, for headers
// whose values are defined to be case-insensitive tokens.
func ExactFold(name, value string) filter.Filter[filter.Unit] {
	return exact(name, value, strings.EqualFold)
}

func exact(name, value string, eq func(a, b string) bool) filter.Filter[filter.Unit] {
	return func(_ context.Context, rt *filter.Route) (filter.Unit, error) {
		raw := rt.Request().Header.Get(name)
		if raw == "" {
			return filter.Unit{}, reject.New(reject.MissingHeaderError{Name: name})
		}
		if !eq(raw, value) {
			return filter.Unit{}, reject.New(reject.InvalidHeaderError{
				Name: name,
				Err:  fmt.Errorf("expected %q", value),
			})
		}

		return filter.Unit{}, nil
	}
}

// Decode extracts the whole header set into a struct, matching fields
// through `header` tags:
//
//	type Client struct {
//	    Agent string `header:"User-Agent"`
//	    Zone  int    `header:"X-Zone"`
//	}
//	client := header.Decode[Client]()
//
// Decoding is weakly typed, so numeric and boolean fields parse from
// their string form. Absent headers leave their fields at zero; use
// [Value] for headers that must be present.
func Decode[T any]() filter.Filter[T] {
	return func(_ context.Context, rt *filter.Route) (T, error) {
		var out T
		src := make(map[string]any, len(rt.Request().Header))
		for k, vs := range rt.Request().Header {
			if len(vs) == 1 {
				src[k] = vs[0]
			} else {
				src[k] = vs
			}
		}

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "header",
			WeaklyTypedInput: true,
			Result:           &out,
		})
		if err != nil {
			return out, reject.New(reject.InvalidHeaderError{Err: err})
		}
		if err := dec.Decode(src); err != nil {
			return out, reject.New(reject.InvalidHeaderError{Err: err})
		}

		return out, nil
	}
}
