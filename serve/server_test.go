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
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/filter/serve"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServerHandler(t *testing.T) {
	t.Parallel()

	s := serve.New(pingRoutes(), serve.WithoutBanner(), serve.WithLogger(quietLogger()))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

// The h2c wrapper must stay transparent to plain HTTP/1.1 traffic.
func TestServerHandlerH2C(t *testing.T) {
	t.Parallel()

	s := serve.New(pingRoutes(), serve.WithH2C(), serve.WithoutBanner(), serve.WithLogger(quietLogger()))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestStartShutsDownOnContextCancel(t *testing.T) {
	t.Parallel()

	s := serve.New(pingRoutes(),
		serve.WithoutBanner(),
		serve.WithLogger(quietLogger()),
		serve.WithShutdownTimeout(time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, "127.0.0.1:0") }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartReturnsListenError(t *testing.T) {
	t.Parallel()

	s := serve.New(pingRoutes(), serve.WithoutBanner(), serve.WithLogger(quietLogger()))

	err := s.Start(context.Background(), "127.0.0.1:-1")
	require.Error(t, err)
}
