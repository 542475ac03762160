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

// Package body consumes and decodes the request body.
//
// The body is one-shot: the first body filter in a matched branch takes
// it, and composing two into the same branch rejects as a server error.
// Alternation between body filters is fine as long as only the matching
// branch reads.
//
// Content-Type checking is optimistic. A request that declares a
// mismatched type rejects with 415 before any read, but a request that
// declares nothing is assumed to mean the expected format and surfaces
// a 400 decode error if it does not parse. Size limits compose
// separately:
//
//	create := filter.Then(body.ContentLengthLimit(64<<10), body.JSON[CreateUser]())
package body

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
)

// ContentLengthLimit admits requests that declare a body no larger than
// limit bytes. Requests without a declared length (including chunked
// uploads) reject with 411, larger ones with 413. Compose it in front
// of any decoding filter.
func ContentLengthLimit(limit int64) filter.Filter[filter.Unit] {
	return func(_ context.Context, rt *filter.Route) (filter.Unit, error) {
		cl := rt.Request().ContentLength
		if cl < 0 {
			return filter.Unit{}, reject.New(reject.LengthRequiredError{})
		}
		if cl > limit {
			return filter.Unit{}, reject.New(reject.PayloadTooLargeError{Limit: limit})
		}

		return filter.Unit{}, nil
	}
}

// Reader takes the raw body stream. The caller owns the ReadCloser and
// must close it.
func Reader() filter.Filter[io.ReadCloser] {
	return func(_ context.Context, rt *filter.Route) (io.ReadCloser, error) {
		return rt.TakeBody()
	}
}

// Bytes takes the body and reads it fully. Reads stop early when the
// request context is canceled.
func Bytes() filter.Filter[[]byte] {
	return readAll
}

// JSON takes the body and decodes it as JSON into T.
func JSON[T any]() filter.Filter[T] {
	return decode[T]("json", json.Unmarshal, "application/json")
}

// YAML takes the body and decodes it as YAML into T.
func YAML[T any]() filter.Filter[T] {
	return decode[T]("yaml", yaml.Unmarshal, "application/yaml", "application/x-yaml", "text/yaml")
}

// Msgpack takes the body and decodes it as MessagePack into T.
func Msgpack[T any]() filter.Filter[T] {
	return decode[T]("msgpack", msgpack.Unmarshal, "application/msgpack", "application/x-msgpack")
}

// TOML takes the body and decodes it as TOML into T.
func TOML[T any]() filter.Filter[T] {
	return decode[T]("toml", toml.Unmarshal, "application/toml")
}

// Form takes the body and decodes a urlencoded form into T, matching
// fields through `form` tags. Decoding is weakly typed and repeated
// fields fill slices, as with query.Decode.
func Form[T any]() filter.Filter[T] {
	return func(ctx context.Context, rt *filter.Route) (T, error) {
		var out T
		if err := matchContentType(rt, "application/x-www-form-urlencoded"); err != nil {
			return out, err
		}
		data, err := readAll(ctx, rt)
		if err != nil {
			return out, err
		}
		vals, err := url.ParseQuery(string(data))
		if err != nil {
			return out, reject.New(reject.BodyDecodeError{Format: "form", Err: err})
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
			TagName:          "form",
			WeaklyTypedInput: true,
			Result:           &out,
		})
		if err != nil {
			return out, reject.New(reject.BodyDecodeError{Format: "form", Err: err})
		}
		if err := dec.Decode(src); err != nil {
			return out, reject.New(reject.BodyDecodeError{Format: "form", Err: err})
		}

		return out, nil
	}
}

// Proto takes the body and decodes it as a protobuf message. M is the
// generated pointer type:
//
//	event := body.Proto[*eventpb.Event]()
func Proto[M proto.Message]() filter.Filter[M] {
	return func(ctx context.Context, rt *filter.Route) (M, error) {
		var zero M
		if err := matchContentType(rt, "application/x-protobuf", "application/protobuf"); err != nil {
			return zero, err
		}
		data, err := readAll(ctx, rt)
		if err != nil {
			return zero, err
		}

		msg := zero.ProtoReflect().Type().New().Interface().(M)
		if err := proto.Unmarshal(data, msg); err != nil {
			return zero, reject.New(reject.BodyDecodeError{Format: "proto", Err: err})
		}

		return msg, nil
	}
}

// decode builds a filter around a bytes-to-value unmarshal function.
func decode[T any](format string, unmarshal func([]byte, any) error, mediaType string, alternates ...string) filter.Filter[T] {
	return func(ctx context.Context, rt *filter.Route) (T, error) {
		var out T
		if err := matchContentType(rt, mediaType, alternates...); err != nil {
			return out, err
		}
		data, err := readAll(ctx, rt)
		if err != nil {
			return out, err
		}
		if err := unmarshal(data, &out); err != nil {
			return out, reject.New(reject.BodyDecodeError{Format: format, Err: err})
		}

		return out, nil
	}
}

// matchContentType rejects with 415 when the request declares a media
// type other than the expected ones. An absent Content-Type passes. A
// structured syntax suffix also passes, so application/vnd.api+json
// counts as JSON.
func matchContentType(rt *filter.Route, want string, alternates ...string) error {
	raw := rt.Request().Header.Get("Content-Type")
	if raw == "" {
		return nil
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return reject.New(reject.UnsupportedMediaTypeError{Expected: want})
	}
	if mt == want {
		return nil
	}
	for _, alt := range alternates {
		if mt == alt {
			return nil
		}
	}
	if i := strings.IndexByte(mt, '+'); i >= 0 && "application/"+mt[i+1:] == want {
		return nil
	}

	return reject.New(reject.UnsupportedMediaTypeError{Expected: want})
}

func readAll(ctx context.Context, rt *filter.Route) ([]byte, error) {
	rc, err := rt.TakeBody()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(ctxReader{ctx: ctx, r: rc})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		return nil, reject.New(reject.BodyReadError{Err: err})
	}

	return data, nil
}

// ctxReader fails reads once the request context ends, so a canceled
// request stops consuming the wire.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
