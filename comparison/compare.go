// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

// Package comparison implements the tolerant structural comparator at the core
// of MindGrade. It recursively compares two JSON-compatible values, recording
// typed differences with similarity scores instead of failing hard: numbers
// compare within a relative-or-absolute tolerance, strings by normalized edit
// distance, and shape mismatches at the array or object level prune recursion
// as a single fatal difference. All discrepancies are reported as data; the
// comparator never panics on any input.
package comparison

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/petmal/mindgrade/pkg/utils"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// RootKey is the difference key used for discrepancies at the top of the value tree.
const RootKey = "root"

const (
	// relativeTolerance is the fraction of the larger magnitude within which two numbers are considered close.
	relativeTolerance = 0.1
	// absoluteTolerance is the minimum absolute difference below which two numbers are always considered close.
	absoluteTolerance = 0.1
)

// Difference is one recorded discrepancy between expected and actual at a specific location.
// It is immutable once produced and owned by the Result that contains it.
type Difference struct {
	// Key is the final path segment where the discrepancy was found, or "root" at the top level.
	Key string `json:"key"`
	// Expected is the expected value at that location, or a human-readable
	// placeholder such as "Array(3)" for shape mismatches.
	Expected interface{} `json:"expected"`
	// Actual is the actual value at that location, or a placeholder.
	Actual interface{} `json:"actual"`
	// Path is the full ordered list of path segments from the root.
	Path []string `json:"path"`
	// Similarity quantifies closeness in [0, 1] where 1 means value-equal.
	// It is nil for kinds where a partial score is not meaningful.
	Similarity *float64 `json:"similarity,omitempty"`
}

// Result is the outcome of comparing one pair of values.
type Result struct {
	// IsMatch is the overall verdict.
	IsMatch bool `json:"isMatch"`
	// Differences lists all recorded discrepancies in pre-order, depth-first
	// traversal order. A matching result may still carry differences when a
	// leaf passed on partial similarity.
	Differences []Difference `json:"differences,omitempty"`
}

// Compare recursively compares the expected and actual values and returns the
// verdict together with all recorded differences. It is pure and deterministic:
// inputs are never mutated and the same pair always yields the same result.
func Compare(expected, actual interface{}) Result {
	c := &comparer{}
	isMatch := c.compare(expected, actual, nil)
	return Result{
		IsMatch:     isMatch,
		Differences: c.differences,
	}
}

// comparer accumulates differences for a single top-level Compare invocation.
// The buffer is shared across the whole traversal so ordering reflects it.
type comparer struct {
	differences []Difference
}

func (c *comparer) compare(expected, actual interface{}, path []string) bool {
	expected = normalizeValue(expected)
	actual = normalizeValue(actual)

	// Identity short-circuit: equal primitives match without further work.
	if expected == nil && actual == nil {
		return true
	}
	expectedKind := KindOf(expected)
	actualKind := KindOf(actual)
	if expectedKind == actualKind && isPrimitive(expectedKind) && expected == actual {
		return true
	}

	// Falsy mismatch: nil, false, zero or empty string on exactly one side.
	if isFalsy(expected) != isFalsy(actual) {
		c.record(path, expected, actual, similarityScore(0))
		return false
	}

	if expectedKind != actualKind {
		c.record(path, expected, actual, similarityScore(0))
		return false
	}

	switch expectedKind {
	case KindNil:
		return true
	case KindBool:
		return c.compareBooleans(expected.(bool), actual.(bool), path)
	case KindNumber:
		return c.compareNumbers(expected.(float64), actual.(float64), path)
	case KindString:
		return c.compareStrings(expected.(string), actual.(string), path)
	case KindArray:
		return c.compareArrays(expected.([]interface{}), actual.([]interface{}), path)
	case KindObject:
		return c.compareObjects(expected.(map[string]interface{}), actual.(map[string]interface{}), path)
	default:
		if reflect.DeepEqual(expected, actual) {
			return true
		}
		c.record(path, expected, actual, nil)
		return false
	}
}

// compareBooleans requires exact equality. A boolean mismatch always has
// exactly one false side and is normally caught by the falsy rule first;
// the branch is kept so kind dispatch stays exhaustive.
func (c *comparer) compareBooleans(expected, actual bool, path []string) bool {
	if expected == actual {
		return true
	}
	c.record(path, expected, actual, nil)
	return false
}

// compareNumbers applies tolerant equality: two numbers are close when their
// difference is within 10% of the larger magnitude or within 0.1 absolute,
// whichever is larger. A difference with a residual similarity score is
// recorded only when the pair is not close.
func (c *comparer) compareNumbers(expected, actual float64, path []string) bool {
	diff := math.Abs(expected - actual)
	scale := math.Max(math.Abs(expected), math.Abs(actual))
	if diff <= math.Max(absoluteTolerance, relativeTolerance*scale) {
		return true
	}
	c.record(path, expected, actual, similarityScore(1-math.Min(diff/scale, 1)))
	return false
}

// compareStrings scores strings by normalized edit distance. A difference is
// recorded whenever the strings are not equal, yet any nonzero overlap still
// passes: strings are lenient by design, so a near-miss counts as a soft pass
// while remaining visible in the difference list.
func (c *comparer) compareStrings(expected, actual string, path []string) bool {
	similarity := stringSimilarity(expected, actual)
	if similarity < 1 {
		c.record(path, expected, actual, similarityScore(similarity))
	}
	return similarity > 0
}

// compareArrays requires lengths to match exactly. A length mismatch is fatal:
// one summarizing difference is recorded and elements are not compared.
func (c *comparer) compareArrays(expected, actual []interface{}, path []string) bool {
	if len(expected) != len(actual) {
		shorter, longer := len(expected), len(actual)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		c.record(path,
			fmt.Sprintf("Array(%d)", len(expected)),
			fmt.Sprintf("Array(%d)", len(actual)),
			similarityScore(float64(shorter)/float64(longer)))
		return false
	}

	isMatch := true
	for i := range expected {
		if !c.compare(expected[i], actual[i], childPath(path, strconv.Itoa(i))) {
			isMatch = false
		}
	}
	return isMatch
}

// compareObjects requires identical key sets. Any missing or extra key is
// fatal: one difference summarizing both key lists is recorded and no value
// under the object is compared. On identical key sets values are compared
// key by key in sorted order for deterministic traversal.
func (c *comparer) compareObjects(expected, actual map[string]interface{}, path []string) bool {
	expectedKeys := utils.SortedKeys(expected)
	actualKeys := utils.SortedKeys(actual)

	missing := 0
	for _, key := range expectedKeys {
		if _, ok := actual[key]; !ok {
			missing++
		}
	}
	extra := 0
	for _, key := range actualKeys {
		if _, ok := expected[key]; !ok {
			extra++
		}
	}

	if missing > 0 || extra > 0 {
		maxKeys := max(len(expectedKeys), len(actualKeys))
		c.record(path,
			fmt.Sprintf("Keys(%s)", strings.Join(expectedKeys, ", ")),
			fmt.Sprintf("Keys(%s)", strings.Join(actualKeys, ", ")),
			similarityScore(float64(len(expectedKeys)-missing)/float64(maxKeys)))
		return false
	}

	isMatch := true
	for _, key := range expectedKeys {
		if !c.compare(expected[key], actual[key], childPath(path, key)) {
			isMatch = false
		}
	}
	return isMatch
}

func (c *comparer) record(path []string, expected, actual interface{}, similarity *float64) {
	key := RootKey
	if len(path) > 0 {
		key = path[len(path)-1]
	}
	c.differences = append(c.differences, Difference{
		Key:        key,
		Expected:   expected,
		Actual:     actual,
		Path:       slices.Clone(path),
		Similarity: similarity,
	})
}

// stringSimilarity returns 1 minus the Levenshtein distance between the two
// strings normalized by the longer string's rune length.
func stringSimilarity(expected, actual string) float64 {
	if expected == actual {
		return 1
	}
	longer := max(utf8.RuneCountInString(expected), utf8.RuneCountInString(actual))
	dmp := diffmatchpatch.New()
	distance := dmp.DiffLevenshtein(dmp.DiffMain(expected, actual, false))
	return 1 - float64(distance)/float64(longer)
}

func isPrimitive(kind Kind) bool {
	switch kind {
	case KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

func childPath(path []string, segment string) []string {
	return append(slices.Clone(path), segment)
}

func similarityScore(value float64) *float64 {
	return &value
}
