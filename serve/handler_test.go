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

package serve_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	filter "rivaas.dev/filter"
	"rivaas.dev/filter/ext"
	"rivaas.dev/filter/method"
	"rivaas.dev/filter/path"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
	"rivaas.dev/filter/serve"
)

func pingRoutes() filter.Filter[reply.Reply] {
	return filter.Then(
		path.Join("ping").And(method.Get()).And(path.End()),
		filter.Value(reply.Text("pong")),
	)
}

func TestHandlerWritesReply(t *testing.T) {
	t.Parallel()

	h := serve.NewHandler(pingRoutes())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestHandlerRendersRejections(t *testing.T) {
	t.Parallel()

	h := serve.NewHandler(pingRoutes())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestHandlerEvaluatesOnce(t *testing.T) {
	t.Parallel()

	evaluations := 0
	routes := filter.Map(filter.Any(), func(filter.Unit) reply.Reply {
		evaluations++

		return reply.Text("ok")
	})
	h := serve.NewHandler(routes)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, 1, evaluations)
}

type testDB struct {
	name string
}

func TestWithRouteSetupSeedsExtensions(t *testing.T) {
	t.Parallel()

	routes := filter.Map(ext.Get[*testDB](), func(db *testDB) reply.Reply {
		return reply.Text(db.name)
	})
	h := serve.NewHandler(routes, serve.WithRouteSetup(func(rt *filter.Route) {
		ext.Store(rt, &testDB{name: "primary"})
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "primary", rec.Body.String())
}

// Pooled routes must come back clean: state seeded while serving one
// request may not leak into the next.
func TestPooledRouteIsReset(t *testing.T) {
	t.Parallel()

	seed := filter.Map(
		filter.Then(path.Join("seed"), filter.Any().With(ext.Provide[filter.Unit](&testDB{name: "stale"}))),
		func(filter.Unit) reply.Reply { return reply.Text("seeded") },
	)
	probe := filter.Then(
		path.Join("probe"),
		filter.Map(ext.Get[*testDB](), func(db *testDB) reply.Reply {
			return reply.Text(db.name)
		}).Or(filter.Value(reply.Text("clean"))),
	)
	h := serve.NewHandler(seed.Or(probe))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seed", nil))
	assert.Equal(t, "seeded", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, "clean", rec.Body.String())
}

func TestWithFormatter(t *testing.T) {
	t.Parallel()

	h := serve.NewHandler(pingRoutes(), serve.WithFormatter(reject.NewText()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}
