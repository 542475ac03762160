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

package accesslog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/filter"
	"rivaas.dev/filter/accesslog"
	"rivaas.dev/filter/path"
	"rivaas.dev/filter/reject"
	"rivaas.dev/filter/reply"
)

type logLine struct {
	Msg      string `json:"msg"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Route    string `json:"route"`
	Status   int    `json:"status"`
	Bytes    int64  `json:"bytes"`
	Rejected bool   `json:"rejected"`
}

func capture() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func decode(t *testing.T, buf *bytes.Buffer) logLine {
	t.Helper()

	var line logLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	return line
}

func TestLogsAfterWrite(t *testing.T) {
	logger, buf := capture()

	routes := filter.Map(path.Segment("ping"), func(filter.Unit) reply.Reply {
		return reply.Text("pong")
	}).With(accesslog.New(accesslog.WithLogger(logger)))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rep, err := routes(context.Background(), filter.NewRoute(req))
	require.NoError(t, err)

	assert.Empty(t, buf.Bytes(), "nothing should be logged before the response is written")

	rec := httptest.NewRecorder()
	rep.Respond(rec, req)

	line := decode(t, buf)
	assert.Equal(t, "request", line.Msg)
	assert.Equal(t, http.MethodGet, line.Method)
	assert.Equal(t, "/ping", line.Path)
	assert.Equal(t, "/ping", line.Route)
	assert.Equal(t, http.StatusOK, line.Status)
	assert.Equal(t, int64(len("pong")), line.Bytes)
	assert.False(t, line.Rejected)
}

func TestLogsDecoratedStatus(t *testing.T) {
	logger, buf := capture()

	routes := filter.Map(path.Segment("users"), func(filter.Unit) reply.Reply {
		return reply.WithStatus(reply.Text("created"), http.StatusCreated)
	}).With(accesslog.New(accesslog.WithLogger(logger)))

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	rep, err := routes(context.Background(), filter.NewRoute(req))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rep.Respond(rec, req)

	assert.Equal(t, http.StatusCreated, decode(t, buf).Status)
}

func TestLogsRejections(t *testing.T) {
	logger, buf := capture()

	routes := filter.Map(path.Segment("ping"), func(filter.Unit) reply.Reply {
		return reply.Text("pong")
	}).With(accesslog.New(accesslog.WithLogger(logger)))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	_, err := routes(context.Background(), filter.NewRoute(req))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, reject.From(err).Status())

	line := decode(t, buf)
	assert.True(t, line.Rejected)
	assert.Equal(t, http.StatusNotFound, line.Status)
	assert.Equal(t, "/missing", line.Path)
}

func TestExcludedPathsAreSilent(t *testing.T) {
	logger, buf := capture()

	routes := filter.Map(path.Segment("healthz"), func(filter.Unit) reply.Reply {
		return reply.Text("ok")
	}).With(accesslog.New(
		accesslog.WithLogger(logger),
		accesslog.WithExcludePaths("/healthz"),
	))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rep, err := routes(context.Background(), filter.NewRoute(req))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rep.Respond(rec, req)

	assert.Empty(t, buf.Bytes())
	assert.Equal(t, "ok", rec.Body.String())
}
