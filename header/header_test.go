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

package header_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/filter"
	"rivaas.dev/filter/header"
	"rivaas.dev/filter/reject"
)

func routeWith(headers map[string]string) *filter.Route {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return filter.NewRoute(req)
}

func TestValue(t *testing.T) {
	rt := routeWith(map[string]string{"X-Request-Timeout": "2s", "X-Retries": "3"})

	d, err := header.Value[time.Duration]("X-Request-Timeout")(context.Background(), rt)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	n, err := header.Value[int]("X-Retries")(context.Background(), rt)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestValueMissing(t *testing.T) {
	_, err := header.Value[string]("X-Api-Key")(context.Background(), routeWith(nil))
	require.Error(t, err)

	var missing reject.MissingHeaderError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "X-Api-Key", missing.Name)
	assert.Equal(t, http.StatusBadRequest, reject.From(err).Status())
}

func TestValueInvalid(t *testing.T) {
	rt := routeWith(map[string]string{"X-Retries": "many"})

	_, err := header.Value[int]("X-Retries")(context.Background(), rt)
	require.Error(t, err)

	var invalid reject.InvalidHeaderError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "X-Retries", invalid.Name)
	assert.Error(t, invalid.Err)
	assert.Equal(t, http.StatusBadRequest, reject.From(err).Status())
}

func TestOptional(t *testing.T) {
	f := header.Optional[int]("X-Page")

	v, err := f(context.Background(), routeWith(nil))
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = f(context.Background(), routeWith(map[string]string{"X-Page": "4"}))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 4, *v)

	_, err = f(context.Background(), routeWith(map[string]string{"X-Page": "four"}))
	assert.Error(t, err, "present but malformed must still reject")
}

func TestExact(t *testing.T) {
	f := header.Exact("X-Env", "staging")

	_, err := f(context.Background(), routeWith(map[string]string{"X-Env": "staging"}))
	assert.NoError(t, err)

	_, err = f(context.Background(), routeWith(map[string]string{"X-Env": "Staging"}))
	assert.Error(t, err)

	_, err = f(context.Background(), routeWith(nil))
	assert.Error(t, err)
}

func TestExactFold(t *testing.T) {
	f := header.ExactFold("Connection", "keep-alive")

	_, err := f(context.Background(), routeWith(map[string]string{"Connection": "Keep-Alive"}))
	assert.NoError(t, err)
}

func TestDecode(t *testing.T) {
	type client struct {
		Agent  string `header:"User-Agent"`
		Zone   int    `header:"X-Zone"`
		Secure bool   `header:"X-Secure"`
	}

	rt := routeWith(map[string]string{
		"User-Agent": "filter-test/1.0",
		"X-Zone":     "7",
		"X-Secure":   "true",
	})

	c, err := header.Decode[client]()(context.Background(), rt)
	require.NoError(t, err)
	assert.Equal(t, client{Agent: "filter-test/1.0", Zone: 7, Secure: true}, c)
}

func TestDecodeAbsentLeavesZero(t *testing.T) {
	type client struct {
		Agent string `header:"User-Agent"`
		Zone  int    `header:"X-Zone"`
	}

	c, err := header.Decode[client]()(context.Background(), routeWith(map[string]string{"X-Zone": "2"}))
	require.NoError(t, err)
	assert.Equal(t, client{Zone: 2}, c)
}

func TestDecodeBadValue(t *testing.T) {
	type client struct {
		Zone int `header:"X-Zone"`
	}

	_, err := header.Decode[client]()(context.Background(), routeWith(map[string]string{"X-Zone": "north"}))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, reject.From(err).Status())
}
