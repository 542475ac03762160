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

package filter

// Wrap decorates a filter with behavior around its evaluation. The
// middleware packages (accesslog, cors, auth, tracing, metrics) expose
// their functionality as wraps over reply-typed filters.
type Wrap[T any] func(Filter[T]) Filter[T]

// With applies a wrap, reading in composition order:
//
//	routes.With(accesslog.New()).With(cors.New())
//
// The last wrap applied is the outermost at evaluation time.
func (f Filter[T]) With(w Wrap[T]) Filter[T] {
	return w(f)
}
