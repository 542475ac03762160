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
	"fmt"
	"net/http"
	"reflect"
)

// The well-known causes below are the vocabulary the built-in filters
// reject with. Each implements HTTPStatus and Code so that status
// resolution and problem rendering need no type switches, and each is a
// distinct type so callers can recognize it with errors.As:
//
//	var missing reject.MissingHeaderError
//	if errors.As(err, &missing) {
//	    // missing.Name holds the header name
//	}
//
// Domain errors outside this package participate the same way: implement
// HTTPStatus() int to choose a status, or implement nothing and be
// treated as an unhandled cause (500, logged).

// MethodNotAllowedError rejects a request whose method does not match the
// route. It ranks just above not-found during resolution, so a more
// specific cause from another branch always wins.
type MethodNotAllowedError struct{}

func (MethodNotAllowedError) Error() string { return "method not allowed" }

// HTTPStatus implements the status capability.
func (MethodNotAllowedError) HTTPStatus() int { return http.StatusMethodNotAllowed }

// Code implements the machine-readable code capability.
func (MethodNotAllowedError) Code() string { return "method_not_allowed" }

// MissingHeaderError rejects a request lacking a required header.
type MissingHeaderError struct {
	Name string
}

func (e MissingHeaderError) Error() string {
	return fmt.Sprintf("missing request header %q", e.Name)
}

func (MissingHeaderError) HTTPStatus() int { return http.StatusBadRequest }
func (MissingHeaderError) Code() string { return "missing_header" }

// InvalidHeaderError rejects a header that is present but unusable.
type InvalidHeaderError struct {
	Name string
	Err  error
}

func (e InvalidHeaderError) Error() string {
	if e.Name == "" {
		return "invalid request headers"
	}

	return fmt.Sprintf("invalid request header %q", e.Name)
}

func (e InvalidHeaderError) Unwrap() error { return e.Err }
func (InvalidHeaderError) HTTPStatus() int { return http.StatusBadRequest }
func (InvalidHeaderError) Code() string { return "invalid_header" }

// MissingCookieError rejects a request lacking a required cookie.
type MissingCookieError struct {
	Name string
}

func (e MissingCookieError) Error() string {
	return fmt.Sprintf("missing request cookie %q", e.Name)
}

func (MissingCookieError) HTTPStatus() int { return http.StatusBadRequest }
func (MissingCookieError) Code() string { return "missing_cookie" }

// InvalidCookieError rejects a cookie whose value cannot be interpreted.
type InvalidCookieError struct {
	Name string
	Err  error
}

func (e InvalidCookieError) Error() string {
	return fmt.Sprintf("invalid request cookie %q", e.Name)
}

func (e InvalidCookieError) Unwrap() error { return e.Err }
func (InvalidCookieError) HTTPStatus() int { return http.StatusBadRequest }
func (InvalidCookieError) Code() string { return "invalid_cookie" }

// InvalidQueryError rejects a query string that fails to decode.
type InvalidQueryError struct {
	Err error
}

func (e InvalidQueryError) Error() string { return "invalid query string" }

func (e InvalidQueryError) Unwrap() error { return e.Err }
func (InvalidQueryError) HTTPStatus() int { return http.StatusBadRequest }
func (InvalidQueryError) Code() string { return "invalid_query" }

// LengthRequiredError rejects a body filter invoked without a
// Content-Length header.
type LengthRequiredError struct{}

func (LengthRequiredError) Error() string { return "a content-length header is required" }
func (LengthRequiredError) HTTPStatus() int { return http.StatusLengthRequired }
func (LengthRequiredError) Code() string { return "length_required" }

// PayloadTooLargeError rejects a body exceeding the configured limit.
type PayloadTooLargeError struct {
	Limit int64
}

func (e PayloadTooLargeError) Error() string {
	return fmt.Sprintf("request payload exceeds the %d byte limit", e.Limit)
}

func (PayloadTooLargeError) HTTPStatus() int { return http.StatusRequestEntityTooLarge }
func (PayloadTooLargeError) Code() string { return "payload_too_large" }

// UnsupportedMediaTypeError rejects a body whose Content-Type does not
// match what the decoding filter expects.
type UnsupportedMediaTypeError struct {
	Expected string
}

func (e UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("unsupported media type, expected %s", e.Expected)
}

func (UnsupportedMediaTypeError) HTTPStatus() int { return http.StatusUnsupportedMediaType }
func (UnsupportedMediaTypeError) Code() string { return "unsupported_media_type" }

// BodyReadError rejects a body that failed mid-read.
type BodyReadError struct {
	Err error
}

func (e BodyReadError) Error() string { return "failed to read request body" }
func (e BodyReadError) Unwrap() error { return e.Err }
func (BodyReadError) HTTPStatus() int { return http.StatusBadRequest }
func (BodyReadError) Code() string { return "body_read_error" }

// BodyDecodeError rejects a body that read fine but failed to decode.
// Format names the codec ("json", "yaml", "msgpack", ...).
type BodyDecodeError struct {
	Format string
	Err    error
}

func (e BodyDecodeError) Error() string {
	return fmt.Sprintf("failed to decode request body as %s", e.Format)
}

func (e BodyDecodeError) Unwrap() error { return e.Err }
func (BodyDecodeError) HTTPStatus() int { return http.StatusBadRequest }
func (BodyDecodeError) Code() string { return "body_decode_error" }

// ForbiddenError rejects a request the server understood but refuses,
// such as a cross-origin request from a disallowed origin.
type ForbiddenError struct {
	Reason string
}

func (e ForbiddenError) Error() string {
	if e.Reason == "" {
		return "request forbidden"
	}

	return "request forbidden: " + e.Reason
}

func (ForbiddenError) HTTPStatus() int { return http.StatusForbidden }
func (ForbiddenError) Code() string { return "forbidden" }

// MissingExtensionError reports an extension read for a type nothing
// provided. This is a wiring mistake, not a client error, so it maps to
// a server error.
type MissingExtensionError struct {
	Type reflect.Type
}

func (e MissingExtensionError) Error() string {
	return fmt.Sprintf("missing request extension %v", e.Type)
}

func (MissingExtensionError) HTTPStatus() int { return http.StatusInternalServerError }
func (MissingExtensionError) Code() string { return "missing_extension" }

// BodyConsumedError reports a second take of the one-shot request body:
// two body filters were composed into the same branch. Like
// MissingExtensionError it signals a programming mistake and maps to a
// server error.
type BodyConsumedError struct{}

func (BodyConsumedError) Error() string { return "request body already consumed" }
func (BodyConsumedError) HTTPStatus() int { return http.StatusInternalServerError }
func (BodyConsumedError) Code() string { return "body_consumed" }

// TypeMismatchError reports a dynamically typed filter whose value did
// not have the type the caller asserted. Another programming mistake,
// so another server error.
type TypeMismatchError struct {
	Want reflect.Type
	Got  reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("filter value is %v, not %v", e.Got, e.Want)
}

func (TypeMismatchError) HTTPStatus() int { return http.StatusInternalServerError }
func (TypeMismatchError) Code() string { return "type_mismatch" }
