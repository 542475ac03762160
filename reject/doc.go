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

// Package reject defines the failure half of the filter contract: a
// structured, rankable explanation of why a request was declined.
//
// # Rejections accumulate
//
// When alternative branches of a route all fail, their rejections are
// combined rather than discarded: the result carries every cause, in the
// order the branches ran. Rendering then resolves the accumulated causes
// to the single one that best explains the failure; a branch that merely
// "did not match" (not-found) never hides a branch that failed for a
// concrete reason like a missing header.
//
//	rej := reject.Combine(
//	    reject.NotFound(),
//	    reject.New(reject.MissingHeaderError{Name: "authorization"}),
//	)
//	rej.Status() // 400, the missing header wins
//
// # Resolution order
//
// Not-found is the weakest cause, method-not-allowed the second weakest,
// and among the rest the numerically greater HTTP status wins, with ties
// going to the cause seen first. The full table:
//
//	not found                 404   (weakest)
//	method not allowed        405   (second weakest)
//	missing/invalid header    400
//	missing/invalid cookie    400
//	invalid query             400
//	body read/decode          400
//	length required           411
//	payload too large         413
//	unsupported media type    415
//	forbidden                 403
//	missing extension         500
//	body consumed twice       500
//	unhandled cause           500   (logged)
//
// Causes outside this package may implement HTTPStatus() int to choose
// their own status and rank; causes that do not are treated as unhandled
// and logged, since they usually mean a domain error escaped the filter
// that should have translated it into a reply.
//
// # Fatal rejections
//
// A fatal rejection carries a finished reply that must reach the client
// exactly as built (an authentication challenge, for example). Fatal
// short-circuits alternatives: the or combinator will not try its other
// branch, and combining preserves the fatal cause.
//
// # Rendering
//
// Rejection implements reply.Reply and renders as an RFC 9457 problem
// document by default. The dispatch adapter accepts any [Formatter] to
// change that.
package reject
