// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package formatters

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/petmal/mindgrade/evaluation"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const unknownSimilarity = "n/a"

// ToStatus converts a case result into a display status value.
func ToStatus(result evaluation.CaseResult) string {
	switch {
	case !result.IsFinished:
		return Error
	case result.IsSuccess:
		return Passed
	default:
		return Failed
	}
}

// FormatValue renders a compared value as compact JSON for display.
// Values that cannot be marshaled fall back to their default Go formatting.
func FormatValue(value interface{}) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

// FormatSimilarity renders an optional similarity score with two decimal places.
func FormatSimilarity(similarity *float64) string {
	if similarity == nil {
		return unknownSimilarity
	}
	return fmt.Sprintf("%.2f", *similarity)
}

// FormatPath renders a difference path as a dotted field reference.
func FormatPath(path []string) string {
	return strings.Join(path, ".")
}

// DiffText returns a plain-text patch between the expected and actual values.
// Returns the expected value unchanged when there is nothing to patch.
func DiffText(expected string, actual string) string {
	if expected == actual {
		return expected
	}
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(expected, actual))
}

// DiffHTML returns an HTML fragment highlighting differences between the expected and actual values.
func DiffHTML(expected string, actual string) string {
	dmp := diffmatchpatch.New()
	return dmp.DiffPrettyHtml(dmp.DiffCleanupSemantic(dmp.DiffMain(expected, actual, false)))
}

// RoundToMS rounds the given duration to the nearest millisecond.
func RoundToMS(value time.Duration) time.Duration {
	return value.Round(time.Millisecond)
}

// Percent converts a unit-interval rate into a percentage.
func Percent(rate float64) float64 {
	return rate * 100
}

// Timestamp returns the current time formatted for report headers.
func Timestamp() string {
	return time.Now().Format(time.RFC1123Z)
}
