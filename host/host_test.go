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

package host_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/filter"
	"rivaas.dev/filter/host"
	"rivaas.dev/filter/reject"
)

func routeFor(hostname string) *filter.Route {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = hostname

	return filter.NewRoute(req)
}

func TestExact(t *testing.T) {
	f := host.Exact("api.example.com")

	_, err := f(context.Background(), routeFor("api.example.com"))
	assert.NoError(t, err)

	_, err = f(context.Background(), routeFor("API.Example.COM"))
	assert.NoError(t, err, "host comparison is case-insensitive")

	_, err = f(context.Background(), routeFor("web.example.com"))
	require.Error(t, err)
	assert.True(t, reject.IsNotFound(err))
}

func TestVirtualHostsChain(t *testing.T) {
	f := filter.Then(host.Exact("a.example.com"), filter.Value("a")).
		Or(filter.Then(host.Exact("b.example.com"), filter.Value("b")))

	v, err := f(context.Background(), routeFor("b.example.com"))
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestValue(t *testing.T) {
	v, err := host.Value()(context.Background(), routeFor("internal:8443"))
	require.NoError(t, err)
	assert.Equal(t, "internal:8443", v)
}
