// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package runners

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/petmal/mindgrade/config"
	"github.com/petmal/mindgrade/evaluation"
	"github.com/petmal/mindgrade/metrics"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/petmal/mindgrade/pkg/utils"
)

const (
	defaultConcurrency      = 4
	defaultRetryInitialWait = time.Second
)

// NewDefaultRunner creates a new Runner that grades suite cases in parallel
// against the given response source. It returns an error if the source is nil.
func NewDefaultRunner(source Source, logger zerolog.Logger) (Runner, error) {
	if source == nil {
		return nil, errors.New("failed to initialize suite runner: no response source")
	}
	return &defaultRunner{
		source: source,
		logger: logger,
	}, nil
}

type defaultRunner struct {
	source      Source
	resultsLock sync.RWMutex
	results     Results
	logger      zerolog.Logger
}

func (r *defaultRunner) Run(ctx context.Context, suite config.Suite) error {
	runID := ulid.Make().String()
	r.logger.Info().Msgf("%s: starting %d case%s from suite %q on source %q...", pluralize(runID, countable(len(suite.Cases)), suite.Name, r.source.Name())...)
	start := time.Now()

	evaluator := newSuiteEvaluator(suite.Settings, r.logger)
	schema := r.compileResponseSchema(suite)
	limiter := newRateLimiter(suite.Settings)

	caseResults := make([]evaluation.CaseResult, len(suite.Cases))
	indices := make(chan int)
	var wg sync.WaitGroup
	for n := 0; n < workerCount(suite.Settings); n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				caseResults[i] = r.runCase(ctx, suite.Cases[i], evaluator, schema, limiter, suite.Settings.RetryPolicy)
			}
		}()
	}
	for i := range suite.Cases {
		indices <- i
	}
	close(indices)
	wg.Wait()

	report, err := metrics.Aggregate(caseResults)
	if err != nil {
		return fmt.Errorf("failed to aggregate suite metrics: %w", err)
	}

	r.resultsLock.Lock()
	r.results = Results{
		RunID:   runID,
		Suite:   suite.Name,
		Cases:   caseResults,
		Metrics: report,
	}
	r.resultsLock.Unlock()

	r.logger.Info().Msgf("%s: all cases in suite %q have finished in %s.", runID, suite.Name, time.Since(start))
	return nil
}

func (r *defaultRunner) runCase(ctx context.Context, testCase config.Case, evaluator *evaluation.Evaluator, schema *jsonschema.Schema, limiter *rate.Limiter, policy *config.RetryPolicy) (result evaluation.CaseResult) {
	defer func() {
		if p := recover(); p != nil {
			result = evaluation.NewUnfinishedResult(testCase.Input, testCase.Expected, fmt.Errorf("case grading panicked: %v", p))
		}
		result.ID = testCase.ID
		result.Name = testCase.Name
	}()

	r.logger.Debug().Msgf("%s: starting case...", testCase.Name)
	caseStart := time.Now()

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return evaluation.NewUnfinishedResult(testCase.Input, testCase.Expected, err)
		}
	}

	response, err := r.fetchWithRetry(ctx, testCase, policy)
	if err != nil {
		r.logger.Warn().Err(err).Msgf("%s: failed to fetch response", testCase.Name)
		return evaluation.NewUnfinishedResult(testCase.Input, testCase.Expected, err)
	}

	if schema != nil {
		if err := validateResponseSchema(schema, response.Actual); err != nil {
			r.logger.Warn().Err(err).Msgf("%s: response does not conform to the suite response schema", testCase.Name)
		}
	}

	result = evaluator.Evaluate(testCase.Expected, response.Actual, response.Elapsed, response.Cost, testCase.Input)
	r.logger.Debug().Msgf("%s: case has finished in %s.", testCase.Name, time.Since(caseStart))
	return result
}

func (r *defaultRunner) fetchWithRetry(ctx context.Context, testCase config.Case, policy *config.RetryPolicy) (response Response, err error) {
	err = retry.Do(ctx, newRetryBackoff(policy), func(ctx context.Context) error {
		fetched, fetchErr := r.source.Fetch(ctx, testCase)
		if fetchErr != nil {
			if errors.Is(fetchErr, ErrRetryable) {
				r.logger.Debug().Err(fetchErr).Msgf("%s: retrying response fetch", testCase.Name)
				return retry.RetryableError(fetchErr)
			}
			return fetchErr
		}
		response = fetched
		return nil
	})
	return response, err
}

// compileResponseSchema compiles the optional suite response schema.
// Schema violations are advisory so a broken schema only disables the check.
func (r *defaultRunner) compileResponseSchema(suite config.Suite) *jsonschema.Schema {
	if len(suite.ResponseSchema) == 0 {
		return nil
	}
	schema, err := utils.CompileSchema(suite.ResponseSchema)
	if err != nil {
		r.logger.Warn().Err(err).Msgf("suite %q declares an invalid response schema; conformance checks disabled", suite.Name)
		return nil
	}
	return schema
}

func validateResponseSchema(schema *jsonschema.Schema, actual interface{}) error {
	instance := actual
	if text, ok := actual.(string); ok {
		var parsed interface{}
		if err := json.Unmarshal([]byte(text), &parsed); err != nil {
			// Unparsable responses are reported by the evaluator instead.
			return nil
		}
		instance = parsed
	}
	return schema.Validate(instance)
}

func newSuiteEvaluator(settings config.Settings, logger zerolog.Logger) *evaluation.Evaluator {
	opts := []evaluation.Option{evaluation.WithLogger(NewPrefixedLogger(logger))}
	if settings.RepairJSON {
		opts = append(opts, evaluation.WithJSONRepair())
	}
	return evaluation.NewEvaluator(opts...)
}

func newRateLimiter(settings config.Settings) *rate.Limiter {
	if settings.MaxRequestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(settings.MaxRequestsPerMinute)), 1)
}

func newRetryBackoff(policy *config.RetryPolicy) retry.Backoff {
	if policy == nil || policy.MaxRetryAttempts <= 0 {
		return retry.WithMaxRetries(0, retry.NewConstant(defaultRetryInitialWait))
	}
	initialWait := time.Duration(policy.InitialDelaySeconds) * time.Second
	if initialWait <= 0 {
		initialWait = defaultRetryInitialWait
	}
	return retry.WithMaxRetries(uint64(policy.MaxRetryAttempts), retry.NewExponential(initialWait))
}

func workerCount(settings config.Settings) int {
	if settings.Concurrency > 0 {
		return settings.Concurrency
	}
	return defaultConcurrency
}

func (r *defaultRunner) GetResults() Results {
	r.resultsLock.RLock()
	defer r.resultsLock.RUnlock()
	return r.results
}

func (r *defaultRunner) Close(ctx context.Context) {
	if err := r.source.Close(ctx); err != nil {
		r.logger.Warn().Err(err).Msgf("%s: failed to close response source", r.source.Name())
	}
}

type countable int

func pluralize(tokens ...any) []interface{} {
	pluralized := make([]interface{}, 0, 2*len(tokens))
	for _, token := range tokens {
		pluralized = append(pluralized, token)
		if v, ok := any(token).(countable); ok {
			switch v {
			case 1:
				pluralized = append(pluralized, "")
			default:
				pluralized = append(pluralized, "s")
			}
		}
	}

	return pluralized
}
