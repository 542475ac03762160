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
	"errors"
	"net/http"

	"rivaas.dev/filter/reply"
)

// Rejection explains why a filter declined a request. It is one of two
// things:
//
//   - an ordered list of mismatch causes, accumulated as alternative
//     branches fail (an empty list is the canonical not-found), or
//   - a single fatal cause carrying a prebuilt reply that must reach the
//     client unchanged.
//
// Rejections are immutable once constructed: [Combine] builds a new
// value, so rejections can be shared, retried against, and inspected
// concurrently.
//
// Rejection implements error, [reply.Reply], and Unwrap() []error, so
// errors.Is and errors.As reach every accumulated cause:
//
//	var decode reject.BodyDecodeError
//	if errors.As(err, &decode) {
//	    // one of the branches failed decoding a body
//	}
type Rejection struct {
	mismatches []error
	fatalReply reply.Reply
	fatalCode  int
}

// NotFound returns the rejection for "this filter does not apply".
// It is the weakest possible rejection: every other cause outranks it
// during resolution, and it renders as 404.
func NotFound() *Rejection {
	return &Rejection{}
}

// New returns a rejection with a single mismatch cause.
//
// The cause decides the HTTP status: the well-known causes in this
// package carry theirs, any error implementing HTTPStatus() int is
// honored, and everything else resolves to 500 and is logged as
// unhandled when rendered.
func New(cause error) *Rejection {
	return &Rejection{mismatches: []error{cause}}
}

// Fatal returns a rejection that bypasses resolution entirely: rep is
// written verbatim with the given status, alternative branches are never
// consulted, and combining preserves the first fatal seen.
func Fatal(rep reply.Reply, status int) *Rejection {
	return &Rejection{fatalReply: rep, fatalCode: status}
}

// From normalizes any error into a rejection. A *Rejection passes
// through unchanged; anything else becomes a single-cause rejection.
// A nil error returns nil.
func From(err error) *Rejection {
	if err == nil {
		return nil
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}

	return New(err)
}

// Combine merges the outcomes of two failed branches.
//
// Two mismatch rejections append their cause lists, so resolution later
// sees every reason in first-seen order. A fatal rejection absorbs
// everything: the result is the first fatal of the two. Either side may
// be nil, in which case the other is returned.
func Combine(a, b *Rejection) *Rejection {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.fatalReply != nil:
		return a
	case b.fatalReply != nil:
		return b
	}

	ms := make([]error, 0, len(a.mismatches)+len(b.mismatches))
	ms = append(ms, a.mismatches...)
	ms = append(ms, b.mismatches...)

	return &Rejection{mismatches: ms}
}

// Error implements error. The message comes from the preferred cause.
func (r *Rejection) Error() string {
	if r.fatalReply != nil {
		return "fatal rejection"
	}
	if cause := r.Preferred(); cause != nil {
		return cause.Error()
	}

	return "not found"
}

// Unwrap exposes every mismatch cause to errors.Is and errors.As.
func (r *Rejection) Unwrap() []error {
	return r.mismatches
}

// IsNotFound reports whether the rejection carries no cause at all, the
// state produced by [NotFound] and by filters that simply do not match.
func (r *Rejection) IsNotFound() bool {
	return r.fatalReply == nil && len(r.mismatches) == 0
}

// IsFatal reports whether the rejection carries a prebuilt reply.
func (r *Rejection) IsFatal() bool {
	return r.fatalReply != nil
}

// Status resolves the HTTP status of the rejection: the fatal status
// when fatal, otherwise the status of the preferred cause, otherwise
// 404.
func (r *Rejection) Status() int {
	if r.fatalReply != nil {
		return r.fatalCode
	}
	if cause := r.Preferred(); cause != nil {
		return causeStatus(cause)
	}

	return http.StatusNotFound
}

// Preferred picks the cause that should explain the rejection to the
// client. Resolution order, applied pairwise in first-seen order:
//
//   - not-found causes never win
//   - method-not-allowed loses to everything except not-found
//   - otherwise the numerically greater status wins
//   - ties keep the earlier cause
//
// Preferred returns nil when the rejection is not-found or fatal.
func (r *Rejection) Preferred() error {
	var (
		tmp       error
		tmpStatus = http.StatusNotFound
	)
	for _, m := range r.mismatches {
		s := causeStatus(m)
		switch {
		case s == http.StatusNotFound:
		case tmpStatus == http.StatusNotFound:
			tmp, tmpStatus = m, s
		case s == http.StatusMethodNotAllowed:
		case tmpStatus == http.StatusMethodNotAllowed:
			tmp, tmpStatus = m, s
		case tmpStatus < s:
			tmp, tmpStatus = m, s
		}
	}

	return tmp
}

// Respond implements [reply.Reply]. Fatal rejections write their carried
// reply; everything else renders through the package default formatter,
// an RFC 9457 problem document.
func (r *Rejection) Respond(w http.ResponseWriter, req *http.Request) {
	Write(w, req, r, nil)
}

// IsNotFound reports whether err is a not-found rejection. A nil error
// is not a rejection at all and reports false.
func IsNotFound(err error) bool {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.IsNotFound()
	}

	return false
}

// IsFatal reports whether err is a fatal rejection.
func IsFatal(err error) bool {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.IsFatal()
	}

	return false
}

// statusCapable matches errors that declare their own HTTP status.
// Custom causes opt into a status by implementing it.
type statusCapable interface {
	error
	HTTPStatus() int
}

// codeCapable matches errors that expose a machine-readable code.
type codeCapable interface {
	error
	Code() string
}

// detailsCapable matches errors that expose structured details.
type detailsCapable interface {
	error
	Details() any
}

// causeStatus resolves one cause to a status. Causes that do not declare
// a status are unhandled domain errors and resolve to 500.
func causeStatus(cause error) int {
	var sc statusCapable
	if errors.As(cause, &sc) {
		return sc.HTTPStatus()
	}

	return http.StatusInternalServerError
}

// causeCode resolves the machine-readable code of a cause, if any.
func causeCode(cause error) string {
	var cc codeCapable
	if errors.As(cause, &cc) {
		return cc.Code()
	}

	return ""
}
