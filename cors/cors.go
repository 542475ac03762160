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

// Package cors answers cross-origin requests on behalf of the wrapped
// routes.
//
// Requests without an Origin header pass through untouched. Preflights
// (OPTIONS with Access-Control-Request-Method) are answered directly
// without evaluating the wrapped filter. Actual cross-origin requests
// are evaluated normally and their response gains the allow headers. A
// disallowed origin, method, or header rejects with a forbidden cause.
//
//	routes = routes.With(cors.New(
//		cors.WithAllowedOrigins("https://app.example.com"),
//		cors.WithAllowCredentials(),
//	))
package cors

import (
	"context"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

// New builds the CORS wrap.
func New(opts ...Option) filter.Wrap[reply.Reply] {
	cfg := &config{
		allowAllOrigins: true,
		allowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		allowedHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept", "Authorization",
		},
		maxAge: 3600,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := newPolicy(cfg)

	return func(next filter.Filter[reply.Reply]) filter.Filter[reply.Reply] {
		return func(ctx context.Context, rt *filter.Route) (reply.Reply, error) {
			origin := rt.Request().Header.Get("Origin")
			if origin == "" {
				return next(ctx, rt)
			}

			if !p.originAllowed(origin) {
				return nil, reject.New(reject.ForbiddenError{Reason: "origin not allowed"})
			}

			if rt.Method() == http.MethodOptions {
				if method := rt.Request().Header.Get("Access-Control-Request-Method"); method != "" {
					return p.preflight(rt.Request(), origin, method)
				}
			}

			rep, err := next(ctx, rt)
			if err != nil {
				return nil, err
			}

			return &decorated{inner: rep, policy: p, origin: origin}, nil
		}
	}
}

// policy is the precomputed form of a config: sets for the membership
// checks, joined lists for the response headers.
type policy struct {
	cfg        *config
	originSet  map[string]struct{}
	methodSet  map[string]struct{}
	headerSet  map[string]struct{}
	methodList string
	headerList string
	exposeList string
	maxAge     string
}

func newPolicy(cfg *config) *policy {
	p := &policy{
		cfg:        cfg,
		originSet:  make(map[string]struct{}, len(cfg.allowedOrigins)),
		methodSet:  make(map[string]struct{}, len(cfg.allowedMethods)),
		headerSet:  make(map[string]struct{}, len(cfg.allowedHeaders)),
		methodList: strings.Join(cfg.allowedMethods, ", "),
		headerList: strings.Join(cfg.allowedHeaders, ", "),
		exposeList: strings.Join(cfg.exposedHeaders, ", "),
		maxAge:     strconv.Itoa(cfg.maxAge),
	}
	for _, o := range cfg.allowedOrigins {
		p.originSet[strings.ToLower(o)] = struct{}{}
	}
	for _, m := range cfg.allowedMethods {
		p.methodSet[strings.ToUpper(m)] = struct{}{}
	}
	for _, h := range cfg.allowedHeaders {
		p.headerSet[textproto.CanonicalMIMEHeaderKey(h)] = struct{}{}
	}

	return p
}

func (p *policy) originAllowed(origin string) bool {
	if p.cfg.allowOriginFunc != nil {
		return p.cfg.allowOriginFunc(origin)
	}
	if p.cfg.allowAllOrigins {
		return true
	}

	_, ok := p.originSet[strings.ToLower(origin)]

	return ok
}

// allowValue is the Access-Control-Allow-Origin to send back. The
// wildcard is only valid without credentials and without a per-origin
// decision, otherwise the concrete origin is echoed.
func (p *policy) allowValue(origin string) string {
	if p.cfg.allowAllOrigins && !p.cfg.allowCredentials && p.cfg.allowOriginFunc == nil {
		return "*"
	}

	return origin
}

func (p *policy) preflight(r *http.Request, origin, method string) (reply.Reply, error) {
	if _, ok := p.methodSet[strings.ToUpper(method)]; !ok {
		return nil, reject.New(reject.ForbiddenError{Reason: "method not allowed in preflight"})
	}

	requested := r.Header.Get("Access-Control-Request-Headers")
	for _, name := range strings.Split(requested, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := p.headerSet[textproto.CanonicalMIMEHeaderKey(name)]; !ok {
			return nil, reject.New(reject.ForbiddenError{Reason: "header " + name + " not allowed in preflight"})
		}
	}

	allow := p.allowValue(origin)

	return reply.Func(func(w http.ResponseWriter, _ *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allow)
		h.Set("Access-Control-Allow-Methods", p.methodList)
		if p.headerList != "" {
			h.Set("Access-Control-Allow-Headers", p.headerList)
		}
		if p.cfg.allowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		h.Set("Access-Control-Max-Age", p.maxAge)
		h.Add("Vary", "Origin")
		h.Add("Vary", "Access-Control-Request-Method")
		h.Add("Vary", "Access-Control-Request-Headers")
		w.WriteHeader(http.StatusNoContent)
	}), nil
}

// decorated adds the cross-origin allow headers to an actual response.
type decorated struct {
	inner  reply.Reply
	policy *policy
	origin string
}

func (d *decorated) Respond(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", d.policy.allowValue(d.origin))
	if d.policy.cfg.allowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if d.policy.exposeList != "" {
		h.Set("Access-Control-Expose-Headers", d.policy.exposeList)
	}
	h.Add("Vary", "Origin")

	d.inner.Respond(w, r)
}
