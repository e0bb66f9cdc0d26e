// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package metrics

import (
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// Percentile returns the p-th percentile of the given values using the
// nearest-rank method: the values are sorted ascending and the result is the
// element at index ceil(p/100*n)-1, without interpolation. Returns the zero
// value for an empty input.
func Percentile[T constraints.Integer | constraints.Float](values []T, p float64) T {
	if len(values) == 0 {
		var zero T
		return zero
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	rank := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
