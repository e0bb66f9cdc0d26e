// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

// Package evaluation judges a single test case: it parses the expected and
// actual responses when supplied as JSON text, runs the structural comparator
// on the pair, and packages the verdict with timing and cost metadata into an
// immutable CaseResult. Evaluation never raises; malformed input degrades to
// a failed-but-explained comparison.
package evaluation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"github.com/petmal/mindgrade/comparison"
	"github.com/petmal/mindgrade/pkg/logging"
	"github.com/petmal/mindgrade/pkg/utils"
)

// ParseErrorKey is the difference key reported when a response string is not valid JSON.
const ParseErrorKey = "parse_error"

// CaseResult is the full record of one evaluated test case.
// It is created once per case and never mutated afterward.
type CaseResult struct {
	// ID is the unique identifier of the graded case.
	ID string `json:"id,omitempty"`
	// Name is the human-readable name of the graded case.
	Name string `json:"name,omitempty"`
	// IsFinished indicates whether execution completed without a harness-level
	// failure. Always true for cases that reached the evaluator; false for
	// cases that failed upstream, such as a provider call error.
	IsFinished bool `json:"isFinished"`
	// IsSuccess is the comparison verdict for the case.
	IsSuccess bool `json:"isSuccess"`
	// Input is the prompt text used, kept for reporting only.
	Input string `json:"input"`
	// ExpectedResponse is the expected value as compared (parsed from JSON when supplied as text).
	ExpectedResponse interface{} `json:"expectedResponse"`
	// ActualResponse is the actual value as compared.
	ActualResponse interface{} `json:"actualResponse"`
	// TimeElapsed is the time the external call took to produce the actual response.
	TimeElapsed time.Duration `json:"timeElapsed"`
	// Cost is the cost of producing the actual response in USD.
	Cost float64 `json:"cost"`
	// Error holds the upstream failure message for unfinished cases.
	Error string `json:"error,omitempty"`
	// Differences lists all discrepancies recorded during comparison.
	Differences []comparison.Difference `json:"differences,omitempty"`
	// MatchedFields are the dotted field paths present in both expected and actual.
	MatchedFields utils.StringSet `json:"matchedFields"`
	// MissingFields are the field paths present in expected but not in actual.
	MissingFields utils.StringSet `json:"missingFields"`
	// ExtraFields are the field paths present in actual but not in expected.
	ExtraFields utils.StringSet `json:"extraFields"`
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithJSONRepair makes the evaluator attempt to repair malformed JSON response
// text before giving up on parsing. Repair is off by default so that invalid
// JSON surfaces as a parse_error difference.
func WithJSONRepair() Option {
	return func(e *Evaluator) {
		e.repairJSON = true
	}
}

// WithLogger attaches a diagnostic logger to the evaluator.
func WithLogger(logger logging.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// Evaluator grades one (expected, actual) pair at a time. It holds no mutable
// state between calls, so a single instance may evaluate independent cases
// concurrently without synchronization.
type Evaluator struct {
	repairJSON bool
	logger     logging.Logger
}

// NewEvaluator creates a new Evaluator with the given options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate compares the expected and actual responses and returns the case
// record. Responses supplied as strings are parsed as JSON first; a string
// that cannot be parsed yields a single parse_error difference and a failed
// verdict. Evaluate never panics and has no side effects on its inputs.
func (e *Evaluator) Evaluate(expected, actual interface{}, elapsed time.Duration, cost float64, input string) CaseResult {
	result := CaseResult{
		IsFinished:  true,
		Input:       input,
		TimeElapsed: elapsed,
		Cost:        cost,
	}

	parsedExpected, expectedErr := e.parseResponse(expected)
	parsedActual, actualErr := e.parseResponse(actual)
	result.ExpectedResponse = parsedExpected
	result.ActualResponse = parsedActual

	if expectedErr != nil || actualErr != nil {
		e.logger.Error(context.Background(), logging.LevelDebug, firstError(expectedErr, actualErr), "response text is not valid JSON")
		result.Differences = []comparison.Difference{newParseErrorDifference(parsedExpected, parsedActual)}
		return result
	}

	verdict := comparison.Compare(parsedExpected, parsedActual)
	result.IsSuccess = verdict.IsMatch
	result.Differences = verdict.Differences
	result.MatchedFields, result.MissingFields, result.ExtraFields = comparison.FieldSets(parsedExpected, parsedActual)
	return result
}

// NewUnfinishedResult builds the record for a case that failed before the
// evaluator could run, such as a provider call error. Comparison fields stay
// empty; the case is excluded from timing and cost aggregation.
func NewUnfinishedResult(input string, expected interface{}, cause error) CaseResult {
	result := CaseResult{
		Input:            input,
		ExpectedResponse: expected,
	}
	if cause != nil {
		result.Error = cause.Error()
	}
	return result
}

// parseResponse parses string responses as JSON, returning non-string values
// unchanged. On parse failure the raw string is returned together with the
// error so callers can report the offending text.
func (e *Evaluator) parseResponse(value interface{}) (interface{}, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		if !e.repairJSON {
			return text, err
		}
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return text, err
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return text, err
		}
	}
	return parsed, nil
}

func newParseErrorDifference(expected, actual interface{}) comparison.Difference {
	similarity := 0.0
	return comparison.Difference{
		Key:        ParseErrorKey,
		Expected:   expected,
		Actual:     actual,
		Path:       []string{ParseErrorKey},
		Similarity: &similarity,
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
