// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

// Package runners provides interfaces and implementations for grading MindGrade suites and collecting their results.
package runners

import (
	"context"
	"errors"
	"time"

	"github.com/petmal/mindgrade/config"
	"github.com/petmal/mindgrade/evaluation"
	"github.com/petmal/mindgrade/metrics"
)

// ErrRetryable marks a transient response source failure.
// Sources wrap it to signal that the runner may retry the fetch.
var ErrRetryable = errors.New("retryable source failure")

// Runner grades suites against a response source.
type Runner interface {
	// Run grades all cases of the given suite and returns when done.
	Run(ctx context.Context, suite config.Suite) error
	// GetResults returns the results from the last Run call.
	GetResults() Results
	// Close releases resources when the runner is no longer needed.
	Close(ctx context.Context)
}

// Results stores the graded cases and aggregate metrics of one suite run.
type Results struct {
	// RunID uniquely identifies the run.
	RunID string
	// Suite is the name of the graded suite.
	Suite string
	// Cases holds one record per suite case, in suite order.
	Cases []evaluation.CaseResult
	// Metrics is the aggregate report over Cases.
	Metrics metrics.Report
}

// Response is one fetched model response with its timing and cost metadata.
type Response struct {
	// Actual is the model response: a structured value or a JSON string.
	Actual interface{}
	// Elapsed is the time the call took to produce the response.
	Elapsed time.Duration
	// Cost is the response cost in USD.
	Cost float64
}

// Source supplies model responses for suite cases.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Fetch returns the response for the given case.
	// Transient failures are wrapped in ErrRetryable.
	Fetch(ctx context.Context, testCase config.Case) (Response, error)
	// Close releases resources when the source is no longer needed.
	Close(ctx context.Context) error
}
