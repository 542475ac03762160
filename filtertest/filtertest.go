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

// Package filtertest provides a request builder and evaluation helpers
// for testing filters without a server.
//
// Build a request fluently, then finish with one of the terminal
// helpers:
//
//	id, err := filtertest.Evaluate(
//		filtertest.Request().Path("/users/42"),
//		filter.Then(path.Join("users"), path.Param[int]()),
//	)
//
// [Matches] reports whether a filter accepts the request, [Reply] runs
// the full dispatch including rejection rendering:
//
//	rec := filtertest.Reply(
//		filtertest.Request().Method("POST").Path("/users").JSONBody(u),
//		routes,
//	)
//	assert.Equal(t, http.StatusCreated, rec.Code)
package filtertest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	filter "rivaas.dev/filter"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

// Builder accumulates request attributes. The zero value is not usable;
// start with [Request].
type Builder struct {
	method      string
	target      string
	query       url.Values
	headers     http.Header
	cookies     []*http.Cookie
	host        string
	remoteAddr  string
	body        []byte
	contentType string
	err         error
}

// Request starts a builder for a GET request to "/".
func Request() *Builder {
	return &Builder{
		method:  http.MethodGet,
		target:  "/",
		query:   url.Values{},
		headers: http.Header{},
	}
}

// Method sets the request method.
func (b *Builder) Method(m string) *Builder {
	b.method = m

	return b
}

// Path sets the request path.
func (b *Builder) Path(p string) *Builder {
	b.target = p

	return b
}

// Header adds a request header.
func (b *Builder) Header(key, value string) *Builder {
	b.headers.Add(key, value)

	return b
}

// Query adds a query parameter.
func (b *Builder) Query(key, value string) *Builder {
	b.query.Add(key, value)

	return b
}

// Cookie adds a request cookie.
func (b *Builder) Cookie(c *http.Cookie) *Builder {
	b.cookies = append(b.cookies, c)

	return b
}

// Host sets the request authority.
func (b *Builder) Host(h string) *Builder {
	b.host = h

	return b
}

// RemoteAddr overrides the peer address.
func (b *Builder) RemoteAddr(addr string) *Builder {
	b.remoteAddr = addr

	return b
}

// Body sets the request body and Content-Type.
func (b *Builder) Body(contentType string, body []byte) *Builder {
	b.contentType = contentType
	b.body = body

	return b
}

// JSONBody marshals v as the request body with Content-Type
// "application/json".
func (b *Builder) JSONBody(v any) *Builder {
	data, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("filtertest: encode JSON body: %w", err)

		return b
	}

	return b.Body("application/json", data)
}

// Build materializes the request. Build panics on builder errors such
// as an unencodable JSON body; test inputs are expected to be valid.
func (b *Builder) Build() *http.Request {
	if b.err != nil {
		panic(b.err)
	}

	target := b.target
	if len(b.query) > 0 {
		target += "?" + b.query.Encode()
	}

	var body *bytes.Reader
	if b.body != nil {
		body = bytes.NewReader(b.body)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(b.method, target, body)
	for key, values := range b.headers {
		req.Header[key] = append(req.Header[key], values...)
	}
	if b.contentType != "" {
		req.Header.Set("Content-Type", b.contentType)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	if b.host != "" {
		req.Host = b.host
	}
	if b.remoteAddr != "" {
		req.RemoteAddr = b.remoteAddr
	}

	return req
}

// Evaluate runs a filter against the built request and returns its
// extraction.
func Evaluate[T any](b *Builder, f filter.Filter[T]) (T, error) {
	req := b.Build()

	return f(req.Context(), filter.NewRoute(req))
}

// Matches reports whether the filter accepts the built request.
func Matches[T any](b *Builder, f filter.Filter[T]) bool {
	_, err := Evaluate(b, f)

	return err == nil
}

// Reply runs the full dispatch: the filter is evaluated once and the
// outcome, reply or rendered rejection, is written to a recorder.
func Reply(b *Builder, f filter.Filter[reply.Reply]) *httptest.ResponseRecorder {
	req := b.Build()
	rec := httptest.NewRecorder()

	rep, err := f(req.Context(), filter.NewRoute(req))
	if err != nil {
		reject.Write(rec, req, reject.From(err), nil)

		return rec
	}
	rep.Respond(rec, req)

	return rec
}
