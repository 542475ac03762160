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

// Package validate rejects extracted values that fail validation.
//
// Struct checks `validate` struct tags on any extracted value, so it
// composes directly with the body decoders:
//
//	type CreateUser struct {
//		Name  string `json:"name"  validate:"required,min=2"`
//		Email string `json:"email" validate:"required,email"`
//	}
//
//	user := validate.Struct(body.JSON[CreateUser]())
//
// Schema checks a raw JSON body against a compiled JSON Schema.
// Failures of either kind reject with a 422 carrying one entry per
// violated field.
package validate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"rivaas.dev/filter"
	"rivaas.dev/filter/reject"
)

// FieldError describes a single violated rule.
type FieldError struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return e.Path + ": " + e.Message
}

// Error aggregates every violation found in one pass. It renders as
// 422 with the field list in the response details.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// HTTPStatus implements the status capability.
func (*Error) HTTPStatus() int { return http.StatusUnprocessableEntity }

// Code implements the machine-readable code capability.
func (*Error) Code() string { return "validation_failed" }

// Details implements the details capability.
func (e *Error) Details() any { return e.Fields }

// tags is shared across filters. The validator caches struct metadata
// internally and is safe for concurrent use.
var tags = validator.New(validator.WithRequiredStructEnabled())

// Struct checks the `validate` tags of the extracted value and rejects
// with a 422 [Error] when any rule is violated.
func Struct[T any](f filter.Filter[T]) filter.Filter[T] {
	return filter.AndThen(f, func(ctx context.Context, val T) (T, error) {
		err := tags.StructCtx(ctx, val)
		if err == nil {
			return val, nil
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// Not a struct at all. Surfaces as a 500 in the usual way.
			return val, err
		}

		return val, reject.New(fromTagErrors(verrs))
	})
}

func fromTagErrors(verrs validator.ValidationErrors) *Error {
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Path:    fieldPath(fe),
			Code:    "tag." + fe.Tag(),
			Message: tagMessage(fe),
			Meta: map[string]any{
				"tag":   fe.Tag(),
				"param": fe.Param(),
			},
		})
	}

	return &Error{Fields: fields}
}

// fieldPath strips the root struct name from the namespace, leaving
// "Address.City" for nested fields.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
