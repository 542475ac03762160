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

// Package filter implements composable, typed request filters.
//
// A [Filter] inspects an in-flight request through a [Route] and either
// extracts a value or rejects the request with a reason. Filters compose:
// sequencing two filters yields a filter that extracts both values, and
// alternation tries a second filter when the first rejects. A fully
// composed filter ends in a reply.Reply, which the serve package turns
// into an http.Handler.
//
//	user := filter.Then(
//	    filter.And(method.Get(), path.Segment("users")),
//	    path.Param[int](),
//	)
//	route := filter.Map(user, func(id int) reply.Reply {
//	    return reply.JSON(store.User(id))
//	})
//	http.ListenAndServe(":8080", serve.NewHandler(route))
//
// # Sequencing
//
// [Filter.And] runs a matcher after an extraction, [Then] runs one
// before it, and [And] chains matchers. When both sides extract, the
// Join and Append functions collect the values into a flat tuple, so a
// chain of extractions always produces Tuple2 through Tuple5, never a
// tuple of tuples. The first rejection stops the chain.
//
// # Alternation
//
// [Filter.Or] tries its receiver and falls back to its argument. The
// path cursor is rewound before the fallback runs and again when both
// sides reject, so sibling routes always see the path from the same
// position. The rejections of failed branches merge; the rendered
// status is the most specific reason seen, not the last one. [Or] is
// the heterogeneous form, producing an [Either], and [Unify] collapses
// an Either of equal types.
//
// # Transformation and recovery
//
// [Map] transforms an extraction with a pure function. [AndThen] does
// the same with a fallible one, turning its error into a rejection.
// [Filter.OrElse] and [Recover] run a handler when a filter rejects,
// which is how applications translate rejections into domain responses.
//
// Filters are values. Composing them allocates closures, evaluating
// them does not mutate shared state, and the same composed filter is
// safe to evaluate from any number of goroutines at once, each with its
// own Route. A Route, in contrast, belongs to a single request and a
// single goroutine.
//
// The subpackages provide the building blocks: path, method, header,
// query, cookie, body, ext, host and addr extract from the request;
// reject carries the rejection vocabulary; reply builds responses;
// serve adapts a filter to net/http; filtertest drives filters in
// tests.
package filter
