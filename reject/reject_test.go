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
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"rivaas.dev/filter/reply"
)

// divByZero is a domain cause with no declared status, the shape of an
// error that escaped its recover filter.
type divByZero struct{}

func (divByZero) Error() string { return "division by zero" }

// teapotError declares its own status.
type teapotError struct{}

func (teapotError) Error() string   { return "short and stout" }
func (teapotError) HTTPStatus() int { return http.StatusTeapot }

type RejectionSuite struct {
	suite.Suite
}

func TestRejectionSuite(t *testing.T) {
	suite.Run(t, new(RejectionSuite))
}

func (s *RejectionSuite) TestNotFound() {
	rej := NotFound()

	s.True(rej.IsNotFound())
	s.False(rej.IsFatal())
	s.Equal(http.StatusNotFound, rej.Status())
	s.Nil(rej.Preferred())
	s.Equal("not found", rej.Error())
}

func (s *RejectionSuite) TestSingleCause() {
	rej := New(MissingHeaderError{Name: "authorization"})

	s.False(rej.IsNotFound())
	s.Equal(http.StatusBadRequest, rej.Status())
	s.Equal(`missing request header "authorization"`, rej.Error())
}

func (s *RejectionSuite) TestCauseSearch() {
	rej := Combine(
		New(MethodNotAllowedError{}),
		New(MissingHeaderError{Name: "x-api-key"}),
	)

	var missing MissingHeaderError
	s.Require().True(errors.As(rej, &missing))
	s.Equal("x-api-key", missing.Name)

	var allowed MethodNotAllowedError
	s.True(errors.As(rej, &allowed))

	var cookie MissingCookieError
	s.False(errors.As(rej, &cookie))
}

func (s *RejectionSuite) TestWrappedCauseSearch() {
	rej := New(fmt.Errorf("while checking auth: %w", MissingHeaderError{Name: "authorization"}))

	var missing MissingHeaderError
	s.True(errors.As(rej, &missing))
	s.Equal(http.StatusBadRequest, rej.Status())
}

func (s *RejectionSuite) TestCustomCauseDefaultsToServerError() {
	rej := New(divByZero{})

	s.Equal(http.StatusInternalServerError, rej.Status())
}

func (s *RejectionSuite) TestCustomCauseWithDeclaredStatus() {
	rej := New(teapotError{})

	s.Equal(http.StatusTeapot, rej.Status())
}

func (s *RejectionSuite) TestFrom() {
	s.Nil(From(nil))

	rej := New(LengthRequiredError{})
	s.Same(rej, From(rej))
	s.Same(rej, From(fmt.Errorf("wrapped: %w", rej)))

	plain := From(errors.New("boom"))
	s.Equal(http.StatusInternalServerError, plain.Status())
}

func (s *RejectionSuite) TestFatal() {
	rej := Fatal(reply.Status(http.StatusUnauthorized), http.StatusUnauthorized)

	s.True(rej.IsFatal())
	s.False(rej.IsNotFound())
	s.Equal(http.StatusUnauthorized, rej.Status())
}

func TestCombine(t *testing.T) {
	missingHeader := New(MissingHeaderError{Name: "authorization"})
	notAllowed := New(MethodNotAllowedError{})
	fatal := Fatal(reply.Status(http.StatusUnauthorized), http.StatusUnauthorized)

	tests := []struct {
		name       string
		a, b       *Rejection
		wantStatus int
		wantFatal  bool
	}{
		{name: "nil left", a: nil, b: notAllowed, wantStatus: http.StatusMethodNotAllowed},
		{name: "nil right", a: notAllowed, b: nil, wantStatus: http.StatusMethodNotAllowed},
		{name: "not found is weakest", a: NotFound(), b: missingHeader, wantStatus: http.StatusBadRequest},
		{name: "method not allowed second weakest", a: notAllowed, b: missingHeader, wantStatus: http.StatusBadRequest},
		{name: "method not allowed beats not found", a: NotFound(), b: notAllowed, wantStatus: http.StatusMethodNotAllowed},
		{name: "greater status wins", a: missingHeader, b: New(PayloadTooLargeError{Limit: 64}), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "fatal absorbs left", a: fatal, b: missingHeader, wantStatus: http.StatusUnauthorized, wantFatal: true},
		{name: "fatal absorbs right", a: missingHeader, b: fatal, wantStatus: http.StatusUnauthorized, wantFatal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.a, tt.b)

			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.Status())
			assert.Equal(t, tt.wantFatal, got.IsFatal())
		})
	}
}

func TestCombineKeepsFirstSeenOnTie(t *testing.T) {
	first := New(MissingHeaderError{Name: "a"})
	second := New(MissingHeaderError{Name: "b"})

	got := Combine(first, second)

	var missing MissingHeaderError
	require.True(t, errors.As(got.Preferred(), &missing))
	assert.Equal(t, "a", missing.Name)
}

func TestCombineOutcomeCommutative(t *testing.T) {
	// The cause lists differ in order but the resolved status must not.
	a := New(InvalidQueryError{Err: errors.New("bad escape")})
	b := New(UnsupportedMediaTypeError{Expected: "application/json"})

	assert.Equal(t, Combine(a, b).Status(), Combine(b, a).Status())
}

func TestCombineAssociative(t *testing.T) {
	a := NotFound()
	b := New(MethodNotAllowedError{})
	c := New(MissingCookieError{Name: "session"})

	left := Combine(Combine(a, b), c)
	right := Combine(a, Combine(b, c))

	assert.Equal(t, left.Status(), right.Status())
	assert.Equal(t, len(left.Unwrap()), len(right.Unwrap()))
}

func TestCombineDoesNotAliasInputs(t *testing.T) {
	a := Combine(New(MethodNotAllowedError{}), New(MethodNotAllowedError{}))
	before := len(a.Unwrap())

	_ = Combine(a, New(MissingHeaderError{Name: "x"}))
	_ = Combine(a, New(MissingCookieError{Name: "y"}))

	assert.Equal(t, before, len(a.Unwrap()))
}

func TestFatalShortCircuitKeepsFirst(t *testing.T) {
	first := Fatal(reply.Status(http.StatusUnauthorized), http.StatusUnauthorized)
	second := Fatal(reply.Status(http.StatusForbidden), http.StatusForbidden)

	assert.Equal(t, http.StatusUnauthorized, Combine(first, second).Status())
}

func TestPreferredSkipsNotFoundCauses(t *testing.T) {
	// A mix of branches: two plain non-matches and one real failure.
	rej := Combine(Combine(NotFound(), NotFound()), New(BodyDecodeError{Format: "json", Err: errors.New("eof")}))

	var decode BodyDecodeError
	require.True(t, errors.As(rej.Preferred(), &decode))
	assert.Equal(t, "json", decode.Format)
	assert.Equal(t, http.StatusBadRequest, rej.Status())
}

func TestKnownCauseStatuses(t *testing.T) {
	tests := []struct {
		cause error
		want  int
	}{
		{cause: MethodNotAllowedError{}, want: http.StatusMethodNotAllowed},
		{cause: MissingHeaderError{Name: "h"}, want: http.StatusBadRequest},
		{cause: InvalidHeaderError{Name: "h"}, want: http.StatusBadRequest},
		{cause: MissingCookieError{Name: "c"}, want: http.StatusBadRequest},
		{cause: InvalidCookieError{Name: "c"}, want: http.StatusBadRequest},
		{cause: InvalidQueryError{}, want: http.StatusBadRequest},
		{cause: LengthRequiredError{}, want: http.StatusLengthRequired},
		{cause: PayloadTooLargeError{Limit: 1}, want: http.StatusRequestEntityTooLarge},
		{cause: UnsupportedMediaTypeError{Expected: "application/json"}, want: http.StatusUnsupportedMediaType},
		{cause: BodyReadError{}, want: http.StatusBadRequest},
		{cause: BodyDecodeError{Format: "json"}, want: http.StatusBadRequest},
		{cause: ForbiddenError{}, want: http.StatusForbidden},
		{cause: MissingExtensionError{}, want: http.StatusInternalServerError},
		{cause: BodyConsumedError{}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.cause), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.cause).Status())
		})
	}
}
