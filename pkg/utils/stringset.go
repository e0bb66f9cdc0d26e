// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package utils

import (
	"encoding/json"
	"slices"
)

// StringSet represents a set of unique string values.
// It preserves insertion order and is used throughout MindGrade
// to track dotted field paths extracted from structured values.
type StringSet struct {
	values []string
}

// NewStringSet creates a new StringSet from the given items, discarding duplicates.
func NewStringSet(items ...string) StringSet {
	set := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, v := range items {
		if _, exists := set[v]; !exists {
			unique = append(unique, v)
			set[v] = struct{}{}
		}
	}
	return StringSet{values: unique}
}

// Values returns a copy of the set's values in insertion order.
func (s StringSet) Values() []string {
	return slices.Clone(s.values)
}

// Len returns the number of values in the set.
func (s StringSet) Len() int {
	return len(s.values)
}

// Contains returns true if the set contains the given value.
func (s StringSet) Contains(value string) bool {
	return slices.Contains(s.values, value)
}

// Any returns true if any value in the set satisfies the given condition.
func (s StringSet) Any(condition func(string) bool) bool {
	return slices.ContainsFunc(s.values, condition)
}

// Intersect returns a new StringSet with the values present in both sets.
// The result preserves the receiver's order.
func (s StringSet) Intersect(other StringSet) StringSet {
	common := make([]string, 0, len(s.values))
	for _, v := range s.values {
		if other.Contains(v) {
			common = append(common, v)
		}
	}
	return NewStringSet(common...)
}

// Difference returns a new StringSet with the receiver's values not present in other.
// The result preserves the receiver's order.
func (s StringSet) Difference(other StringSet) StringSet {
	rest := make([]string, 0, len(s.values))
	for _, v := range s.values {
		if !other.Contains(v) {
			rest = append(rest, v)
		}
	}
	return NewStringSet(rest...)
}

// MarshalJSON implements JSON marshaling for StringSet as a plain list of values.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s.values)
}

// UnmarshalJSON implements JSON unmarshaling for StringSet from a list of values.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewStringSet(items...)
	return nil
}
