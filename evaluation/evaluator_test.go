// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package evaluation

import (
	"errors"
	"testing"
	"time"

	"github.com/petmal/mindgrade/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateMatchingStructuredValues(t *testing.T) {
	evaluator := NewEvaluator(WithLogger(testutils.NewTestLogger(t)))

	result := evaluator.Evaluate(
		map[string]interface{}{"amount": 100, "currency": "USD"},
		map[string]interface{}{"amount": 109, "currency": "USD"},
		1500*time.Millisecond,
		0.0042,
		"extract the invoice total",
	)

	assert.True(t, result.IsFinished)
	assert.True(t, result.IsSuccess)
	assert.Empty(t, result.Differences)
	assert.Equal(t, "extract the invoice total", result.Input)
	assert.Equal(t, 1500*time.Millisecond, result.TimeElapsed)
	assert.Equal(t, 0.0042, result.Cost)
	assert.Equal(t, []string{"amount", "currency"}, result.MatchedFields.Values())
	assert.Zero(t, result.MissingFields.Len())
	assert.Zero(t, result.ExtraFields.Len())
}

func TestEvaluateParsesJSONStrings(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(`{"a": 1}`, map[string]interface{}{"a": 1}, 0, 0, "")

	assert.True(t, result.IsSuccess)
	assert.Equal(t, map[string]interface{}{"a": 1.0}, result.ExpectedResponse)
}

func TestEvaluateParseError(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(`{"a":1`, map[string]interface{}{"a": 1}, 0, 0, "")

	assert.True(t, result.IsFinished)
	assert.False(t, result.IsSuccess)
	require.Len(t, result.Differences, 1)
	assert.Equal(t, ParseErrorKey, result.Differences[0].Key)
	testutils.RequireSimilarity(t, 0, result.Differences[0].Similarity)
	assert.Zero(t, result.MatchedFields.Len())
}

func TestEvaluateWithJSONRepair(t *testing.T) {
	evaluator := NewEvaluator(WithJSONRepair())

	// Truncated JSON is repaired before comparison instead of failing the parse.
	result := evaluator.Evaluate(`{"a":1`, map[string]interface{}{"a": 1}, 0, 0, "")

	assert.True(t, result.IsSuccess)
	assert.Empty(t, result.Differences)
}

func TestEvaluateSoftPassKeepsDifferences(t *testing.T) {
	evaluator := NewEvaluator()

	// Near-miss strings pass on similarity yet the discrepancy stays visible.
	result := evaluator.Evaluate(`"cat"`, `"hat"`, 0, 0, "")

	assert.True(t, result.IsSuccess)
	require.Len(t, result.Differences, 1)
	testutils.RequireSimilarity(t, 1.0-1.0/3.0, result.Differences[0].Similarity)
}

func TestEvaluateFieldSets(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(
		map[string]interface{}{"a": 1, "b": 2},
		map[string]interface{}{"a": 1, "c": 3},
		0, 0, "",
	)

	assert.False(t, result.IsSuccess)
	assert.Equal(t, []string{"a"}, result.MatchedFields.Values())
	assert.Equal(t, []string{"b"}, result.MissingFields.Values())
	assert.Equal(t, []string{"c"}, result.ExtraFields.Values())
}

func TestEvaluateNeverPanics(t *testing.T) {
	evaluator := NewEvaluator()

	assert.NotPanics(t, func() {
		evaluator.Evaluate(struct{ X int }{1}, struct{ X int }{2}, 0, 0, "")
		evaluator.Evaluate(nil, nil, 0, 0, "")
		evaluator.Evaluate("not json at all", "also not json", 0, 0, "")
	})
}

func TestNewUnfinishedResult(t *testing.T) {
	result := NewUnfinishedResult("prompt text", map[string]interface{}{"a": 1}, errors.New("provider call failed"))

	assert.False(t, result.IsFinished)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, "prompt text", result.Input)
	assert.Equal(t, "provider call failed", result.Error)
	assert.Nil(t, result.ActualResponse)
	assert.Empty(t, result.Differences)
}
