// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package formatters

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/petmal/mindgrade/runners"
	"github.com/petmal/mindgrade/version"
)

// NewJSONFormatter creates a new formatter that outputs results as an indented JSON document.
func NewJSONFormatter() Formatter {
	return &jsonFormatter{}
}

type jsonFormatter struct{}

func (f jsonFormatter) FileExt() string {
	return "json"
}

func (f jsonFormatter) Write(results runners.Results, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(struct {
		Application string          `json:"application"`
		Version     string          `json:"version"`
		RunID       string          `json:"runId"`
		Suite       string          `json:"suite"`
		Cases       interface{}     `json:"cases"`
		Metrics     interface{}     `json:"metrics"`
	}{
		Application: version.Name,
		Version:     version.GetVersion(),
		RunID:       results.RunID,
		Suite:       results.Suite,
		Cases:       results.Cases,
		Metrics:     results.Metrics,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrPrintResults, err)
	}
	return nil
}

// resultsSchema reflects the JSON-report document schema once per process.
var resultsSchema = sync.OnceValue(func() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}
	return reflector.Reflect(&runners.Results{})
})

// WriteResultsSchema outputs the JSON schema of the JSON report document.
// External tooling can use it to validate exported reports.
func WriteResultsSchema(out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(resultsSchema()); err != nil {
		return fmt.Errorf("%w: %v", ErrPrintResults, err)
	}
	return nil
}
