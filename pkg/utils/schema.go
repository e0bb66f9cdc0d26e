// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package utils

import (
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const inlineSchemaURL = "inline://schema.json"

// ErrCompileSchema indicates that a JSON schema definition could not be compiled.
var ErrCompileSchema = errors.New("failed to compile JSON schema")

// CompileSchema compiles the given raw JSON-schema document into a validator.
// The document is expected to be an already-parsed JSON-compatible value.
func CompileSchema(document map[string]interface{}) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(inlineSchemaURL, document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileSchema, err)
	}
	schema, err := compiler.Compile(inlineSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileSchema, err)
	}
	return schema, nil
}

// ValidateAgainstSchema checks that the given document is itself a valid JSON schema.
func ValidateAgainstSchema(document map[string]interface{}) error {
	_, err := CompileSchema(document)
	return err
}
