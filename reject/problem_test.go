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

package reject

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/filter/reply"
)

func TestRespondRendersProblemDocument(t *testing.T) {
	rej := New(MissingHeaderError{Name: "authorization"})

	w := httptest.NewRecorder()
	rej.Respond(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", w.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "missing_header", doc["type"])
	assert.Equal(t, "Bad Request", doc["title"])
	assert.EqualValues(t, http.StatusBadRequest, doc["status"])
	assert.Equal(t, `missing request header "authorization"`, doc["detail"])
	assert.Equal(t, "/users/42", doc["instance"])
	assert.Equal(t, "missing_header", doc["code"])
}

func TestRespondNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound().Respond(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "about:blank", doc["type"])
	assert.Equal(t, "Not Found", doc["title"])
}

func TestRespondFatalWritesCarriedReply(t *testing.T) {
	rep := reply.WithHeader(reply.Status(http.StatusUnauthorized), "WWW-Authenticate", `Basic realm="api"`)
	rej := Fatal(rep, http.StatusUnauthorized)

	w := httptest.NewRecorder()
	rej.Respond(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="api"`, w.Header().Get("WWW-Authenticate"))
	// The formatter must not have touched a fatal reply.
	assert.Empty(t, w.Body.String())
}

func TestRFC9457BaseURL(t *testing.T) {
	f := NewRFC9457("https://api.example.com/problems")

	resp := f.Format(httptest.NewRequest(http.MethodGet, "/", nil), New(LengthRequiredError{}))

	doc, ok := resp.Body.(Problem)
	require.True(t, ok)
	assert.Equal(t, "https://api.example.com/problems/length_required", doc.Type)
	assert.Equal(t, http.StatusLengthRequired, resp.Status)
}

func TestRFC9457WarnsOnUnhandledCause(t *testing.T) {
	var buf bytes.Buffer
	f := &RFC9457{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	resp := f.Format(httptest.NewRequest(http.MethodGet, "/", nil), New(divByZero{}))

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Contains(t, buf.String(), "unhandled rejection cause")
	assert.Contains(t, buf.String(), "division by zero")
}

func TestRFC9457NoWarnForKnownCause(t *testing.T) {
	var buf bytes.Buffer
	f := &RFC9457{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	f.Format(httptest.NewRequest(http.MethodGet, "/", nil), New(MethodNotAllowedError{}))

	assert.Empty(t, buf.String())
}

func TestTextFormatter(t *testing.T) {
	f := NewText()

	resp := f.Format(httptest.NewRequest(http.MethodGet, "/", nil), New(PayloadTooLargeError{Limit: 1024}))

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Status)
	assert.Equal(t, "text/plain; charset=utf-8", resp.ContentType)
	assert.Equal(t, "request payload exceeds the 1024 byte limit", resp.Body)
}

func TestWriteUsesFormatter(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, httptest.NewRequest(http.MethodGet, "/", nil), NotFound(), NewText())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
}

func TestProblemMarshalProtectsReservedMembers(t *testing.T) {
	p := Problem{
		Type:   "about:blank",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Extensions: map[string]any{
			"status": 999,
			"trace":  "abc",
		},
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.EqualValues(t, http.StatusBadRequest, doc["status"])
	assert.Equal(t, "abc", doc["trace"])
}
