// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package formatters

import (
	"testing"
	"time"

	"github.com/petmal/mindgrade/evaluation"
	"github.com/petmal/mindgrade/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name   string
		result evaluation.CaseResult
		want   string
	}{
		{
			name:   "finished and successful",
			result: evaluation.CaseResult{IsFinished: true, IsSuccess: true},
			want:   Passed,
		},
		{
			name:   "finished and unsuccessful",
			result: evaluation.CaseResult{IsFinished: true},
			want:   Failed,
		},
		{
			name:   "unfinished",
			result: evaluation.CaseResult{},
			want:   Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToStatus(tt.result))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{
			name:  "string",
			value: "text",
			want:  `"text"`,
		},
		{
			name:  "number",
			value: 42.5,
			want:  "42.5",
		},
		{
			name:  "object",
			value: map[string]interface{}{"b": 2.0, "a": 1.0},
			want:  `{"a":1,"b":2}`,
		},
		{
			name:  "array",
			value: []interface{}{1.0, "two"},
			want:  `[1,"two"]`,
		},
		{
			name:  "nil",
			value: nil,
			want:  "null",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}

func TestFormatSimilarity(t *testing.T) {
	assert.Equal(t, "n/a", FormatSimilarity(nil))
	assert.Equal(t, "0.67", FormatSimilarity(testutils.Ptr(2.0/3.0)))
	assert.Equal(t, "1.00", FormatSimilarity(testutils.Ptr(1.0)))
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "user.address.city", FormatPath([]string{"user", "address", "city"}))
	assert.Equal(t, "root", FormatPath([]string{"root"}))
}

func TestDiffHTML(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     string
	}{
		{
			name:     "no differences",
			expected: "Quas minima minima rem rerum et quisquam excepturi commodi.",
			actual:   "Quas minima minima rem rerum et quisquam excepturi commodi.",
			want:     `<span>Quas minima minima rem rerum et quisquam excepturi commodi.</span>`,
		},
		{
			name:     "empty expected",
			expected: "",
			actual:   "actual text",
			want:     `<ins style="background:#e6ffe6;">actual text</ins>`,
		},
		{
			name:     "empty actual",
			expected: "expected text",
			actual:   "",
			want:     `<del style="background:#ffe6e6;">expected text</del>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffHTML(tt.expected, tt.actual))
		})
	}
}

func TestDiffText(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     string
	}{
		{
			name:     "no differences",
			expected: "Quasi ut dolores possimus maiores doloremque quia.",
			actual:   "Quasi ut dolores possimus maiores doloremque quia.",
			want:     "Quasi ut dolores possimus maiores doloremque quia.",
		},
		{
			name:     "empty expected",
			expected: "",
			actual:   "actual text",
			want:     "@@ -0,0 +1,11 @@\n+actual text\n",
		},
		{
			name:     "empty actual",
			expected: "expected text",
			actual:   "",
			want:     "@@ -1,13 +0,0 @@\n-expected text\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffText(tt.expected, tt.actual))
		})
	}
}

func TestRoundToMS(t *testing.T) {
	tests := []struct {
		name     string
		value    time.Duration
		expected time.Duration
	}{
		{
			name:     "rounds down to nearest millisecond",
			value:    1234 * time.Microsecond,
			expected: 1 * time.Millisecond,
		},
		{
			name:     "rounds up to nearest millisecond",
			value:    1500 * time.Microsecond,
			expected: 2 * time.Millisecond,
		},
		{
			name:     "exact millisecond value",
			value:    2 * time.Millisecond,
			expected: 2 * time.Millisecond,
		},
		{
			name:     "zero duration",
			value:    0,
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundToMS(tt.value))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 75.0, Percent(0.75))
	assert.Equal(t, 0.0, Percent(0))
	assert.Equal(t, 100.0, Percent(1))
}

func TestTimestamp(t *testing.T) {
	want := time.Now()
	got := Timestamp()

	parsedTime, err := time.Parse(time.RFC1123Z, got)

	require.NoError(t, err)
	assert.WithinDuration(t, want, parsedTime, time.Second)
}
