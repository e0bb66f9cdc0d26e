// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

// Package utils provides shared helpers for sets, map ordering,
// and JSON-schema handling used across MindGrade packages.
package utils

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// SortedKeys returns the keys of the given map in ascending order.
// Go map iteration order is randomized; sorting keeps value traversal deterministic.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
