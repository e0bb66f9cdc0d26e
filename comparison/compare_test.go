// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package comparison

import (
	"testing"

	"github.com/petmal/mindgrade/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdentity(t *testing.T) {
	values := []interface{}{
		nil,
		true,
		false,
		42,
		3.14,
		"final answer",
		[]interface{}{1.0, "two", []interface{}{3.0}},
		map[string]interface{}{"a": map[string]interface{}{"b": 1.0}, "c": "text"},
	}
	for _, value := range values {
		result := Compare(value, value)
		assert.True(t, result.IsMatch, "expected %v to match itself", value)
		assert.Empty(t, result.Differences, "expected %v to produce no differences", value)
	}
}

func TestCompareNumbers(t *testing.T) {
	tests := []struct {
		name           string
		expected       interface{}
		actual         interface{}
		wantMatch      bool
		wantSimilarity *float64
	}{
		{
			name:      "within relative tolerance",
			expected:  100,
			actual:    109,
			wantMatch: true,
		},
		{
			name:           "outside relative tolerance",
			expected:       100,
			actual:         112,
			wantMatch:      false,
			wantSimilarity: testutils.Ptr(1.0 - 12.0/112.0),
		},
		{
			name:      "within absolute floor",
			expected:  0.01,
			actual:    0.05,
			wantMatch: true,
		},
		{
			name:      "exact equality across numeric types",
			expected:  int64(7),
			actual:    7.0,
			wantMatch: true,
		},
		{
			name:           "half similarity",
			expected:       1,
			actual:         2,
			wantMatch:      false,
			wantSimilarity: testutils.Ptr(0.5),
		},
		{
			name:           "opposite signs collapse to zero similarity",
			expected:       -5,
			actual:         5,
			wantMatch:      false,
			wantSimilarity: testutils.Ptr(0.0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compare(tt.expected, tt.actual)
			assert.Equal(t, tt.wantMatch, result.IsMatch)
			if tt.wantSimilarity == nil {
				assert.Empty(t, result.Differences)
			} else {
				require.Len(t, result.Differences, 1)
				testutils.RequireSimilarity(t, *tt.wantSimilarity, result.Differences[0].Similarity)
			}
		})
	}
}

func TestCompareStrings(t *testing.T) {
	t.Run("equal strings match without differences", func(t *testing.T) {
		result := Compare("cat", "cat")
		assert.True(t, result.IsMatch)
		assert.Empty(t, result.Differences)
	})

	t.Run("near miss is a soft pass with a recorded difference", func(t *testing.T) {
		result := Compare("cat", "hat")
		assert.True(t, result.IsMatch)
		require.Len(t, result.Differences, 1)
		testutils.RequireSimilarity(t, 1.0-1.0/3.0, result.Differences[0].Similarity)
		assert.Equal(t, RootKey, result.Differences[0].Key)
	})

	t.Run("no overlap fails", func(t *testing.T) {
		result := Compare("abc", "xyz")
		assert.False(t, result.IsMatch)
		require.Len(t, result.Differences, 1)
		testutils.RequireSimilarity(t, 0, result.Differences[0].Similarity)
	})
}

func TestCompareFalsyMismatch(t *testing.T) {
	tests := []struct {
		name     string
		expected interface{}
		actual   interface{}
	}{
		{name: "nil vs value", expected: nil, actual: 1},
		{name: "value vs nil", expected: map[string]interface{}{"a": 1}, actual: nil},
		{name: "false vs true", expected: false, actual: true},
		{name: "zero vs nonzero", expected: 0, actual: 5},
		{name: "empty vs nonempty string", expected: "", actual: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compare(tt.expected, tt.actual)
			assert.False(t, result.IsMatch)
			require.Len(t, result.Differences, 1)
			testutils.RequireSimilarity(t, 0, result.Differences[0].Similarity)
		})
	}
}

func TestCompareTypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		expected interface{}
		actual   interface{}
	}{
		{name: "string vs number", expected: "1", actual: 1},
		{name: "number vs bool", expected: 1, actual: true},
		{name: "array vs object", expected: []interface{}{1.0}, actual: map[string]interface{}{"0": 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compare(tt.expected, tt.actual)
			assert.False(t, result.IsMatch)
			require.Len(t, result.Differences, 1)
			testutils.RequireSimilarity(t, 0, result.Differences[0].Similarity)
		})
	}
}

func TestCompareArrayLengthMismatchIsFatal(t *testing.T) {
	result := Compare([]interface{}{1, 2, 3}, []interface{}{1, 2})
	assert.False(t, result.IsMatch)
	require.Len(t, result.Differences, 1)

	difference := result.Differences[0]
	assert.Equal(t, "Array(3)", difference.Expected)
	assert.Equal(t, "Array(2)", difference.Actual)
	testutils.RequireSimilarity(t, 2.0/3.0, difference.Similarity)
}

func TestCompareArrayElementwise(t *testing.T) {
	t.Run("equal elements match", func(t *testing.T) {
		result := Compare([]interface{}{1, "two", true}, []interface{}{1, "two", true})
		assert.True(t, result.IsMatch)
		assert.Empty(t, result.Differences)
	})

	t.Run("element mismatch carries index path", func(t *testing.T) {
		result := Compare([]interface{}{1, 2}, []interface{}{1, 5})
		assert.False(t, result.IsMatch)
		require.Len(t, result.Differences, 1)
		assert.Equal(t, []string{"1"}, result.Differences[0].Path)
		assert.Equal(t, "1", result.Differences[0].Key)
	})
}

func TestCompareObjectKeyMismatchIsFatal(t *testing.T) {
	result := Compare(
		map[string]interface{}{"a": 1, "b": 2},
		map[string]interface{}{"a": 1, "c": 2},
	)
	assert.False(t, result.IsMatch)
	require.Len(t, result.Differences, 1)

	difference := result.Differences[0]
	assert.Equal(t, RootKey, difference.Key)
	assert.Equal(t, "Keys(a, b)", difference.Expected)
	assert.Equal(t, "Keys(a, c)", difference.Actual)
	// (|expectedKeys| - |missing|) / max(|expectedKeys|, |actualKeys|) = (2-1)/2
	testutils.RequireSimilarity(t, 0.5, difference.Similarity)
}

func TestCompareNestedObjects(t *testing.T) {
	t.Run("identical nested structure matches", func(t *testing.T) {
		result := Compare(
			map[string]interface{}{"a": map[string]interface{}{"b": 1}},
			map[string]interface{}{"a": map[string]interface{}{"b": 1}},
		)
		assert.True(t, result.IsMatch)
		assert.Empty(t, result.Differences)
	})

	t.Run("nested leaf mismatch carries full path", func(t *testing.T) {
		result := Compare(
			map[string]interface{}{"a": map[string]interface{}{"b": 1}},
			map[string]interface{}{"a": map[string]interface{}{"b": 2}},
		)
		assert.False(t, result.IsMatch)
		require.Len(t, result.Differences, 1)
		assert.Equal(t, []string{"a", "b"}, result.Differences[0].Path)
		assert.Equal(t, "b", result.Differences[0].Key)
		testutils.RequireSimilarity(t, 0.5, result.Differences[0].Similarity)
	})
}

func TestCompareDifferenceOrderIsPreOrder(t *testing.T) {
	result := Compare(
		map[string]interface{}{
			"a": map[string]interface{}{"x": "abc"},
			"b": []interface{}{1, 2},
		},
		map[string]interface{}{
			"a": map[string]interface{}{"x": "xyz"},
			"b": []interface{}{1, 5},
		},
	)
	assert.False(t, result.IsMatch)
	require.Len(t, result.Differences, 2)
	assert.Equal(t, []string{"a", "x"}, result.Differences[0].Path)
	assert.Equal(t, []string{"b", "1"}, result.Differences[1].Path)
}

func TestCompareEmptyContainers(t *testing.T) {
	assert.True(t, Compare([]interface{}{}, []interface{}{}).IsMatch)
	assert.True(t, Compare(map[string]interface{}{}, map[string]interface{}{}).IsMatch)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  Kind
	}{
		{name: "nil", value: nil, want: KindNil},
		{name: "bool", value: true, want: KindBool},
		{name: "int", value: 42, want: KindNumber},
		{name: "float", value: 4.2, want: KindNumber},
		{name: "string", value: "text", want: KindString},
		{name: "array", value: []interface{}{}, want: KindArray},
		{name: "object", value: map[string]interface{}{}, want: KindObject},
		{name: "other", value: struct{}{}, want: KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}
