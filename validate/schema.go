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

package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/filter"
	"rivaas.dev/filter/body"
	"rivaas.dev/filter/reject"
)

// Compile compiles a JSON Schema from its JSON text. Format and
// content assertions are enabled.
func Compile(schemaJSON string) (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal([]byte(schemaJSON), &doc); err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	compiler.AssertContent()

	if err := compiler.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return schema, nil
}

// MustCompile is [Compile], panicking on error. Meant for schemas
// embedded in the binary.
func MustCompile(schemaJSON string) *jsonschema.Schema {
	schema, err := Compile(schemaJSON)
	if err != nil {
		panic(fmt.Sprintf("validate: %v", err))
	}

	return schema
}

// Schema decodes the request body as JSON and checks it against the
// compiled schema. Violations reject with a 422 [Error] listing every
// failing location; the decoded document is extracted on success.
func Schema(schema *jsonschema.Schema) filter.Filter[any] {
	return filter.AndThen(body.JSON[any](), func(_ context.Context, doc any) (any, error) {
		err := schema.Validate(doc)
		if err == nil {
			return doc, nil
		}

		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}

		var fields []FieldError
		collectSchemaErrors(verr, &fields)

		return nil, reject.New(&Error{Fields: fields})
	})
}

// collectSchemaErrors walks the cause tree and keeps the leaves, which
// carry the concrete violations.
func collectSchemaErrors(verr *jsonschema.ValidationError, out *[]FieldError) {
	if verr == nil {
		return
	}
	if len(verr.Causes) == 0 {
		*out = append(*out, FieldError{
			Path:    strings.Join(verr.InstanceLocation, "."),
			Code:    "schema",
			Message: verr.Error(),
		})

		return
	}
	for _, cause := range verr.Causes {
		collectSchemaErrors(cause, out)
	}
}
