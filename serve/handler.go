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

// Package serve dispatches HTTP requests into a filter and runs the
// result as a server.
//
// [NewHandler] is the boundary between net/http and the filter world:
// it evaluates the routes exactly once per request, writes the reply
// on success and renders the rejection on failure. [New] wraps the
// handler in an *http.Server with sane timeouts, a startup banner and
// graceful shutdown driven by context cancellation:
//
//	routes := users.Or(health).With(accesslog.New())
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer cancel()
//
//	if err := serve.New(routes).Start(ctx, ":8080"); err != nil {
//		log.Fatal(err)
//	}
package serve

import (
	"net/http"
	"sync"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

// Handler adapts a filter to http.Handler.
//
// Routes are pooled and reset between requests, so replies must not
// retain the *filter.Route they were built from beyond Respond.
type Handler struct {
	routes    filter.Filter[reply.Reply]
	formatter reject.Formatter
	setups    []func(*filter.Route)
	pool      sync.Pool
}

// NewHandler builds the dispatch handler. Server-only options are
// ignored.
func NewHandler(routes filter.Filter[reply.Reply], opts ...Option) *Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	h := &Handler{
		routes:    routes,
		formatter: cfg.formatter,
		setups:    cfg.setups,
	}
	h.pool.New = func() any { return new(filter.Route) }

	return h
}

// ServeHTTP evaluates the routes once and writes the outcome.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt := h.pool.Get().(*filter.Route)
	rt.Reset(r)
	for _, setup := range h.setups {
		setup(rt)
	}

	rep, err := h.routes(r.Context(), rt)
	if err != nil {
		reject.Write(w, r, reject.From(err), h.formatter)
	} else {
		rep.Respond(w, r)
	}

	h.pool.Put(rt)
}
