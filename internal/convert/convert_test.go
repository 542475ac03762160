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

package convert

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueScalars(t *testing.T) {
	s, err := Value[string]("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", s)

	n, err := Value[int]("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	u, err := Value[uint16]("8080")
	require.NoError(t, err)
	assert.Equal(t, uint16(8080), u)

	f, err := Value[float64]("2.5")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f, 1e-9)

	b, err := Value[bool]("true")
	require.NoError(t, err)
	assert.True(t, b)

	d, err := Value[time.Duration]("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestValueTextUnmarshaler(t *testing.T) {
	ip, err := Value[netip.Addr]("10.1.2.3")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.1.2.3"), ip)
}

func TestValueFailures(t *testing.T) {
	_, err := Value[int]("not-a-number")
	assert.Error(t, err)

	_, err = Value[netip.Addr]("999.999.1.1")
	assert.Error(t, err)

	type opaque struct{ x int }
	_, err = Value[opaque]("anything")
	assert.Error(t, err)
}

func TestSlice(t *testing.T) {
	ns, err := Slice[int]([]string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ns)

	_, err = Slice[int]([]string{"1", "x"})
	assert.Error(t, err)

	empty, err := Slice[string](nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
