// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

// Package config defines the grading suite definitions for MindGrade and
// provides functionality to load and validate them from YAML files.
package config

import (
	"time"
)

// Suite is a named, ordered collection of test cases graded as one batch.
type Suite struct {
	// Name identifies the suite in reports.
	Name string `yaml:"name" validate:"required"`
	// Settings holds batch-level execution options.
	Settings Settings `yaml:"settings" validate:"omitempty"`
	// ResponseSchema is an optional JSON schema that recorded responses are
	// checked against. Violations are reported, never failed: grading remains
	// the comparator's job.
	ResponseSchema map[string]interface{} `yaml:"response-schema" validate:"omitempty"`
	// Cases are the test cases of this suite, graded in order.
	Cases []Case `yaml:"cases" validate:"required,min=1,dive"`
}

// Settings holds batch-level execution options for a suite.
type Settings struct {
	// RepairJSON enables tolerant parsing of malformed JSON response text.
	RepairJSON bool `yaml:"repair-json" validate:"omitempty"`
	// Concurrency caps the number of cases evaluated in parallel.
	// Zero selects the runner default.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`
	// MaxRequestsPerMinute limits the response source request rate. Zero disables limiting.
	MaxRequestsPerMinute int `yaml:"max-requests-per-minute" validate:"gte=0"`
	// RetryPolicy configures retries for retryable response source failures.
	RetryPolicy *RetryPolicy `yaml:"retry-policy" validate:"omitempty"`
	// OutputDir is the default directory for report files.
	OutputDir string `yaml:"output-dir" validate:"omitempty"`
	// OutputBaseName is the default base filename for report files.
	OutputBaseName string `yaml:"output-basename" validate:"omitempty"`
	// LogFile is the default log file path.
	LogFile string `yaml:"log-file" validate:"omitempty"`
}

// RetryPolicy configures exponential-backoff retries for response fetching.
type RetryPolicy struct {
	// MaxRetryAttempts is the number of retries after the initial attempt.
	MaxRetryAttempts int `yaml:"max-retry-attempts" validate:"gte=0"`
	// InitialDelaySeconds is the backoff delay before the first retry.
	InitialDelaySeconds int `yaml:"initial-delay-seconds" validate:"gte=0"`
}

// Case is one recorded test case: the prompt, the expected response, and the
// actual model response with its timing and cost metadata.
type Case struct {
	// ID uniquely identifies the case. Assigned automatically when blank.
	ID string `yaml:"id" validate:"omitempty"`
	// Name is the human-readable case name.
	Name string `yaml:"name" validate:"required"`
	// Input is the prompt text that produced the actual response. Reporting only.
	Input string `yaml:"input" validate:"omitempty"`
	// Expected is the expected response: a structured value or a JSON string.
	Expected interface{} `yaml:"expected" validate:"required"`
	// Actual is the recorded model response, if the suite carries one.
	Actual interface{} `yaml:"actual" validate:"omitempty"`
	// TimeElapsedMS is the recorded response time in milliseconds.
	TimeElapsedMS float64 `yaml:"time-elapsed-ms" validate:"gte=0"`
	// CostUSD is the recorded response cost in USD.
	CostUSD float64 `yaml:"cost-usd" validate:"gte=0"`
}

// Elapsed returns the recorded response time as a duration.
func (c Case) Elapsed() time.Duration {
	return time.Duration(c.TimeElapsedMS * float64(time.Millisecond))
}
