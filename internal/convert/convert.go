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

// Package convert coerces request strings (path segments, header and
// query values, cookies) into the caller's extraction type.
package convert

import (
	"encoding"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Value converts s to T. The scalar types, time.Time and time.Duration
// go through cast; anything else must implement
// encoding.TextUnmarshaler on its pointer:
//
//	id, err := convert.Value[uuid.UUID]("b9f5...")
func Value[T any](s string) (T, error) {
	var zero T

	var v any
	var err error
	switch any(zero).(type) {
	case string:
		v = s
	case bool:
		v, err = cast.ToBoolE(s)
	case int:
		v, err = cast.ToIntE(s)
	case int8:
		v, err = cast.ToInt8E(s)
	case int16:
		v, err = cast.ToInt16E(s)
	case int32:
		v, err = cast.ToInt32E(s)
	case int64:
		v, err = cast.ToInt64E(s)
	case uint:
		v, err = cast.ToUintE(s)
	case uint8:
		v, err = cast.ToUint8E(s)
	case uint16:
		v, err = cast.ToUint16E(s)
	case uint32:
		v, err = cast.ToUint32E(s)
	case uint64:
		v, err = cast.ToUint64E(s)
	case float32:
		v, err = cast.ToFloat32E(s)
	case float64:
		v, err = cast.ToFloat64E(s)
	case time.Duration:
		v, err = cast.ToDurationE(s)
	case time.Time:
		v, err = cast.ToTimeE(s)
	default:
		if u, ok := any(&zero).(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(s)); err != nil {
				return zero, err
			}

			return zero, nil
		}

		return zero, fmt.Errorf("unsupported conversion target %T", zero)
	}
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

// Slice converts every element of vals to T, for repeated query
// parameters.
func Slice[T any](vals []string) ([]T, error) {
	out := make([]T, 0, len(vals))
	for _, s := range vals {
		v, err := Value[T](s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
