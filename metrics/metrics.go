// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

// Package metrics folds a finished batch of case results into scalar and
// per-field quality statistics: counts, latency percentiles, cost, per-field
// reliability and ranked failure attribution. Aggregation is a pure function
// over the complete batch, recomputed from scratch rather than streamed.
package metrics

import (
	"errors"
	"sort"
	"time"

	"github.com/petmal/mindgrade/evaluation"
)

// ErrEmptyBatch is returned when aggregation is requested for zero case results.
var ErrEmptyBatch = errors.New("cannot aggregate an empty batch")

// mostFailedFieldsLimit caps the ranked list of failure-prone fields.
const mostFailedFieldsLimit = 5

// Report is the batch-level summary derived from a complete set of case results.
type Report struct {
	// TotalTests is the number of cases in the batch.
	TotalTests int `json:"totalTests"`
	// SuccessfulTests is the number of cases with a passing verdict.
	SuccessfulTests int `json:"successfulTests"`
	// FailedTests is the number of cases without a passing verdict.
	FailedTests int `json:"failedTests"`

	// AverageTime is the mean response time over finished cases.
	AverageTime time.Duration `json:"averageTime"`
	// MinTime is the fastest response time over finished cases.
	MinTime time.Duration `json:"minTime"`
	// MaxTime is the slowest response time over finished cases.
	MaxTime time.Duration `json:"maxTime"`
	// MedianTime is the nearest-rank 50th-percentile response time over finished cases.
	MedianTime time.Duration `json:"medianTime"`
	// P95Time is the nearest-rank 95th-percentile response time over finished cases.
	P95Time time.Duration `json:"p95Time"`

	// AverageCost is the mean cost in USD over finished cases.
	AverageCost float64 `json:"averageCost"`
	// TotalCost is the summed cost in USD over finished cases.
	TotalCost float64 `json:"totalCost"`
	// CostPerSuccess is the total cost divided by the number of successful cases.
	CostPerSuccess float64 `json:"costPerSuccess"`

	// SuccessRate is the fraction of cases with a passing verdict.
	SuccessRate float64 `json:"successRate"`
	// Precision equals SuccessRate; every graded case counts as a positive prediction.
	Precision float64 `json:"precision"`
	// Recall equals SuccessRate for the same reason.
	Recall float64 `json:"recall"`
	// F1Score is the harmonic mean of Precision and Recall.
	F1Score float64 `json:"f1Score"`

	// FieldSuccessRates maps each observed field path to the fraction of cases
	// in which its presence coincided with an overall passing case.
	FieldSuccessRates map[string]float64 `json:"fieldSuccessRates"`
	// MostFailedFields lists up to five field paths ranked by descending failure rate.
	MostFailedFields []string `json:"mostFailedFields"`
	// ErrorDistribution counts difference keys across all failed cases.
	ErrorDistribution map[string]int `json:"errorDistribution"`
}

// Aggregate computes the batch summary for the given ordered case results.
// Timing and cost statistics cover finished cases only so that upstream
// failures do not skew the averages with synthetic zeros. An empty batch is
// rejected with ErrEmptyBatch.
func Aggregate(results []evaluation.CaseResult) (Report, error) {
	if len(results) == 0 {
		return Report{}, ErrEmptyBatch
	}

	report := Report{
		TotalTests:        len(results),
		FieldSuccessRates: make(map[string]float64),
		ErrorDistribution: make(map[string]int),
	}

	var finishedTimes []time.Duration
	fieldCounters := make(map[string]*fieldCounter)
	var fieldOrder []string

	for _, result := range results {
		if result.IsSuccess {
			report.SuccessfulTests++
		}
		if result.IsFinished {
			finishedTimes = append(finishedTimes, result.TimeElapsed)
			report.TotalCost += result.Cost
		}

		// Field success tracks whole-case verdicts against field presence,
		// not per-field value correctness.
		for _, field := range result.MatchedFields.Values() {
			counter, ok := fieldCounters[field]
			if !ok {
				counter = &fieldCounter{}
				fieldCounters[field] = counter
				fieldOrder = append(fieldOrder, field)
			}
			counter.total++
			if result.IsSuccess {
				counter.success++
			}
		}

		if !result.IsSuccess {
			for _, difference := range result.Differences {
				report.ErrorDistribution[difference.Key]++
			}
		}
	}
	report.FailedTests = report.TotalTests - report.SuccessfulTests

	if len(finishedTimes) > 0 {
		var total time.Duration
		report.MinTime = finishedTimes[0]
		report.MaxTime = finishedTimes[0]
		for _, elapsed := range finishedTimes {
			total += elapsed
			report.MinTime = min(report.MinTime, elapsed)
			report.MaxTime = max(report.MaxTime, elapsed)
		}
		report.AverageTime = total / time.Duration(len(finishedTimes))
		report.MedianTime = Percentile(finishedTimes, 50)
		report.P95Time = Percentile(finishedTimes, 95)
		report.AverageCost = report.TotalCost / float64(len(finishedTimes))
	}
	if report.SuccessfulTests > 0 {
		report.CostPerSuccess = report.TotalCost / float64(report.SuccessfulTests)
	}

	report.SuccessRate = float64(report.SuccessfulTests) / float64(report.TotalTests)
	report.Precision = report.SuccessRate
	report.Recall = report.SuccessRate
	if report.SuccessfulTests > 0 {
		report.F1Score = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}

	for field, counter := range fieldCounters {
		report.FieldSuccessRates[field] = float64(counter.success) / float64(counter.total)
	}
	report.MostFailedFields = rankMostFailed(fieldOrder, report.FieldSuccessRates)

	return report, nil
}

type fieldCounter struct {
	success int
	total   int
}

// rankMostFailed returns up to mostFailedFieldsLimit field paths ordered by
// descending failure rate, with ties broken by field name for determinism.
func rankMostFailed(fields []string, successRates map[string]float64) []string {
	ranked := make([]string, len(fields))
	copy(ranked, fields)
	sort.Slice(ranked, func(i, j int) bool {
		left, right := successRates[ranked[i]], successRates[ranked[j]]
		if left != right {
			return left < right
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > mostFailedFieldsLimit {
		ranked = ranked[:mostFailedFieldsLimit]
	}
	return ranked
}
