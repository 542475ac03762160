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
	"io"
	"net/http"
	"reflect"
	"strings"

	"rivaas.dev/filter/reject"
)

// Route is the per-request state filters evaluate against. It wraps the
// request with a cursor over its path segments, a one-shot handle on the
// body, and a type-keyed extension store.
//
// A Route belongs to one request and one goroutine. The dispatch adapter
// creates (or recycles) one per request; tests can build one directly
// with [NewRoute] or through the filtertest package.
type Route struct {
	req       *http.Request
	segments  []string
	cursor    int
	bodyTaken bool
	ext       map[reflect.Type]any
}

// NewRoute returns a Route positioned at the start of the request path.
func NewRoute(r *http.Request) *Route {
	rt := &Route{}
	rt.Reset(r)

	return rt
}

// Reset rebinds the Route to a new request, clearing all per-request
// state. Adapters that pool routes call this between requests; the
// segment slice and extension map keep their capacity.
func (rt *Route) Reset(r *http.Request) {
	rt.req = r
	rt.segments = appendSegments(rt.segments[:0], r.URL.Path)
	rt.cursor = 0
	rt.bodyTaken = false
	clear(rt.ext)
}

// appendSegments splits path into segments on "/", reusing dst. A single
// trailing slash is ignored, so "/users/" and "/users" route the same.
// Interior empty segments are kept as empty strings.
func appendSegments(dst []string, path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return dst
	}
	for {
		i := strings.IndexByte(path, '/')
		if i < 0 {
			return append(dst, path)
		}
		dst = append(dst, path[:i])
		path = path[i+1:]
	}
}

// Request returns the underlying request.
func (rt *Route) Request() *http.Request { return rt.req }

// Method returns the request method.
func (rt *Route) Method() string { return rt.req.Method }

// Path returns the full request path as received, independent of how
// much of it has been matched.
func (rt *Route) Path() string { return rt.req.URL.Path }

// Peek returns the next unmatched path segment without consuming it.
// The second result is false when the path is exhausted.
func (rt *Route) Peek() (string, bool) {
	if rt.cursor >= len(rt.segments) {
		return "", false
	}

	return rt.segments[rt.cursor], true
}

// Take consumes and returns the next unmatched path segment. The second
// result is false when the path is exhausted.
func (rt *Route) Take() (string, bool) {
	s, ok := rt.Peek()
	if ok {
		rt.cursor++
	}

	return s, ok
}

// AtEnd reports whether every path segment has been matched.
func (rt *Route) AtEnd() bool { return rt.cursor >= len(rt.segments) }

// Tail returns the unmatched remainder of the path, segments joined by
// "/" with no leading slash. It does not consume anything.
func (rt *Route) Tail() string { return strings.Join(rt.segments[rt.cursor:], "/") }

// TakeTail consumes the remainder of the path and returns it in the
// same form as [Route.Tail]. After the call the Route is at its end.
func (rt *Route) TakeTail() string {
	tail := rt.Tail()
	rt.cursor = len(rt.segments)

	return tail
}

// MatchedPath returns the already-matched prefix of the path with a
// leading slash. Observability wraps use it as the route name.
func (rt *Route) MatchedPath() string {
	if rt.cursor == 0 {
		return "/"
	}

	return "/" + strings.Join(rt.segments[:rt.cursor], "/")
}

// PathIndex returns the cursor position for a later [Route.ResetPathIndex].
// Alternation snapshots the cursor with it before trying a branch.
func (rt *Route) PathIndex() int { return rt.cursor }

// ResetPathIndex rewinds the cursor to a position previously returned by
// [Route.PathIndex]. Out-of-range positions are clamped.
func (rt *Route) ResetPathIndex(idx int) {
	switch {
	case idx < 0:
		rt.cursor = 0
	case idx > len(rt.segments):
		rt.cursor = len(rt.segments)
	default:
		rt.cursor = idx
	}
}

// TakeBody hands out the request body exactly once. A second take
// rejects with reject.BodyConsumedError, which renders as a server
// error: two body filters in one branch is a composition mistake, not a
// client problem. A request without a body yields http.NoBody.
func (rt *Route) TakeBody() (io.ReadCloser, error) {
	if rt.bodyTaken {
		return nil, reject.New(reject.BodyConsumedError{})
	}
	rt.bodyTaken = true
	if rt.req.Body == nil {
		return http.NoBody, nil
	}

	return rt.req.Body, nil
}

// StoreExtension records a value under a type key. The ext package
// wraps this with a typed API; adapters use it to seed request-scoped
// dependencies before evaluation.
func (rt *Route) StoreExtension(key reflect.Type, v any) {
	if rt.ext == nil {
		rt.ext = make(map[reflect.Type]any, 4)
	}
	rt.ext[key] = v
}

// Extension returns the value stored under a type key, if any.
func (rt *Route) Extension(key reflect.Type) (any, bool) {
	v, ok := rt.ext[key]

	return v, ok
}
