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

// Package addr extracts the peer's network address.
package addr

import (
	"context"
	"net/netip"
	"strings"

	"rivaas.dev/filter"
)

// Remote extracts the immediate peer's address and port. It always
// matches; when the transport did not record a parseable address (as
// with some in-process tests) the extracted AddrPort is the zero value
// and its IsValid reports false.
func Remote() filter.Filter[netip.AddrPort] {
	return func(_ context.Context, rt *filter.Route) (netip.AddrPort, error) {
		ap, err := netip.ParseAddrPort(rt.Request().RemoteAddr)
		if err != nil {
			return netip.AddrPort{}, nil
		}

		return ap, nil
	}
}

// ForwardedFor extracts the first entry of the X-Forwarded-For header,
// or "" when the header is absent. The value is client-controlled;
// trust it only behind a proxy that overwrites the header.
func ForwardedFor() filter.Filter[string] {
	return func(_ context.Context, rt *filter.Route) (string, error) {
		v := rt.Request().Header.Get("X-Forwarded-For")
		if v == "" {
			return "", nil
		}
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}

		return strings.TrimSpace(v), nil
	}
}
