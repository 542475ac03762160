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

package filtertest_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	filter "rivaas.dev/filter"
	"rivaas.dev/filter/body"
	"rivaas.dev/filter/filtertest"
	"rivaas.dev/filter/header"
	"rivaas.dev/filter/method"
	"rivaas.dev/filter/path"
	"rivaas.dev/filter/query"
	"rivaas.dev/filter/reply"
)

func TestEvaluateExtracts(t *testing.T) {
	t.Parallel()

	id, err := filtertest.Evaluate(
		filtertest.Request().Path("/users/42"),
		filter.Then(path.Join("users"), path.Param[int]()),
	)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestEvaluateReturnsRejection(t *testing.T) {
	t.Parallel()

	_, err := filtertest.Evaluate(
		filtertest.Request().Path("/orders"),
		path.Join("users"),
	)
	require.Error(t, err)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	post := filtertest.Request().Method(http.MethodPost).Path("/users")

	assert.True(t, filtertest.Matches(post, method.Post()))
	assert.False(t, filtertest.Matches(post, method.Get()))
}

func TestQueryAndHeader(t *testing.T) {
	t.Parallel()

	b := filtertest.Request().
		Path("/search").
		Query("page", "3").
		Header("X-Trace", "abc")

	page, err := filtertest.Evaluate(b, query.Value[int]("page"))
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	trace, err := filtertest.Evaluate(b, header.Value[string]("X-Trace"))
	require.NoError(t, err)
	assert.Equal(t, "abc", trace)
}

func TestJSONBody(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	got, err := filtertest.Evaluate(
		filtertest.Request().Method(http.MethodPost).Path("/users").JSONBody(payload{Name: "ada"}),
		body.JSON[payload](),
	)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Name)
}

func TestCookieAndHost(t *testing.T) {
	t.Parallel()

	b := filtertest.Request().
		Host("api.example.com").
		Cookie(&http.Cookie{Name: "session", Value: "tok"})

	req := b.Build()
	assert.Equal(t, "api.example.com", req.Host)

	c, err := req.Cookie("session")
	require.NoError(t, err)
	assert.Equal(t, "tok", c.Value)
}

func TestReplyWritesSuccess(t *testing.T) {
	t.Parallel()

	routes := filter.Then(
		path.Join("ping").And(method.Get()),
		filter.Value(reply.Text("pong")),
	)

	rec := filtertest.Reply(filtertest.Request().Path("/ping"), routes)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestReplyRendersRejection(t *testing.T) {
	t.Parallel()

	routes := filter.Then(path.Join("ping"), filter.Value(reply.Text("pong")))

	rec := filtertest.Reply(filtertest.Request().Path("/nope"), routes)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestBuildPanicsOnBadJSONBody(t *testing.T) {
	t.Parallel()

	b := filtertest.Request().JSONBody(func() {})

	assert.Panics(t, func() { b.Build() })
}
