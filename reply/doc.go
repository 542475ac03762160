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

// Package reply defines the response half of the filter contract: a [Reply]
// is anything that can write itself to an http.ResponseWriter.
//
// Every terminal filter produces a Reply, and rejections implement Reply as
// well, so a fully composed filter always ends in something the dispatch
// adapter can write. Conversion to a Reply is infallible; errors that occur
// while writing (for example a JSON encoding failure) degrade to a 500
// response rather than propagating.
//
// # Constructors
//
//   - [Text], [HTML]: fixed-body responses with the matching content type
//   - [JSON]: marshals any value at write time
//   - [Status], [Empty]: headers-only responses
//   - [Redirect]: a Location response
//   - [Handler]: adapts any http.Handler
//
// # Decorators
//
// Decorators wrap an existing Reply and adjust the response around it:
//
//	rep := reply.WithHeader(reply.JSON(user), "Cache-Control", "no-store")
//	rep = reply.WithStatus(rep, http.StatusCreated)
//
// Constructors only set Content-Type when none is present yet, so a
// decorator applied outside always wins.
package reply
