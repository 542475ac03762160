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

package reply

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// Reply is implemented by anything that can write itself as an HTTP
// response. It is the success type of terminal filters; rejections
// implement it too, so dispatch never has to special-case failure.
//
// Implementations must write at most one response and must not retain w
// or r after Respond returns.
type Reply interface {
	Respond(w http.ResponseWriter, r *http.Request)
}

// Func adapts a plain function to a [Reply], in the manner of
// http.HandlerFunc.
type Func func(w http.ResponseWriter, r *http.Request)

// Respond calls f.
func (f Func) Respond(w http.ResponseWriter, r *http.Request) {
	f(w, r)
}

// Text replies with a 200 response carrying s as text/plain.
func Text(s string) Reply {
	return body{contentType: "text/plain; charset=utf-8", data: []byte(s)}
}

// HTML replies with a 200 response carrying s as text/html.
func HTML(s string) Reply {
	return body{contentType: "text/html; charset=utf-8", data: []byte(s)}
}

// Data replies with a 200 response carrying raw bytes with an explicit
// content type.
func Data(contentType string, data []byte) Reply {
	return body{contentType: contentType, data: data}
}

// JSON replies with v marshaled as application/json.
//
// Marshaling happens at write time. A value that cannot be marshaled
// degrades to a plain 500 response and the failure is logged; it never
// propagates as an error, keeping reply conversion infallible.
func JSON(v any) Reply {
	return jsonReply{v: v}
}

// Status replies with the given status code and an empty body.
func Status(code int) Reply {
	return statusReply(code)
}

// Empty replies with 204 No Content.
func Empty() Reply {
	return statusReply(http.StatusNoContent)
}

// Redirect replies with a redirect to location. The code should be a 3xx
// status; anything else is coerced to 302 so the response stays a
// well-formed redirect.
func Redirect(code int, location string) Reply {
	if code < 300 || code > 399 {
		code = http.StatusFound
	}

	return Func(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, location, code)
	})
}

// Handler adapts an http.Handler into a [Reply].
//
// Example:
//
//	rep := reply.Handler(http.FileServer(http.Dir("static")))
func Handler(h http.Handler) Reply {
	return Func(h.ServeHTTP)
}

// WithStatus returns a Reply identical to rep except that the response
// status is forced to code, whatever the inner reply writes.
func WithStatus(rep Reply, code int) Reply {
	return Func(func(w http.ResponseWriter, r *http.Request) {
		rep.Respond(&statusOverride{ResponseWriter: w, code: code}, r)
	})
}

// WithHeader returns a Reply identical to rep with the header key set to
// value before the inner reply runs. Because constructors leave an
// existing Content-Type alone, WithHeader can also override content types.
func WithHeader(rep Reply, key, value string) Reply {
	return Func(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(key, value)
		rep.Respond(w, r)
	})
}

// WithCookie returns a Reply identical to rep with a Set-Cookie header
// added for c.
func WithCookie(rep Reply, c *http.Cookie) Reply {
	return Func(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, c)
		rep.Respond(w, r)
	})
}

// body is a fixed-status, fixed-bytes reply.
type body struct {
	contentType string
	data        []byte
}

func (b body) Respond(w http.ResponseWriter, _ *http.Request) {
	h := w.Header()
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", b.contentType)
	}
	h.Set("Content-Length", strconv.Itoa(len(b.data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.data)
}

type jsonReply struct {
	v any
}

func (j jsonReply) Respond(w http.ResponseWriter, r *http.Request) {
	// Encode to a buffer first so a failure cannot leave a half-written
	// 200 response behind.
	var buf strings.Builder
	buf.Grow(256)
	if err := json.NewEncoder(&buf).Encode(j.v); err != nil {
		slog.Default().Error("reply: json encoding failed",
			slog.String("type", fmt.Sprintf("%T", j.v)),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	h := w.Header()
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(buf.String()))
}

type statusReply int

func (s statusReply) Respond(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(int(s))
}

// statusOverride swallows the inner reply's status code and writes its
// own. Only the first WriteHeader matters; net/http ignores the rest.
type statusOverride struct {
	http.ResponseWriter
	code    int
	written bool
}

func (s *statusOverride) WriteHeader(int) {
	if s.written {
		return
	}
	s.written = true
	s.ResponseWriter.WriteHeader(s.code)
}

func (s *statusOverride) Write(p []byte) (int, error) {
	if !s.written {
		s.WriteHeader(s.code)
	}

	return s.ResponseWriter.Write(p)
}
