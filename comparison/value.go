// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package comparison

import "math"

// Kind classifies a JSON-compatible value for comparison dispatch.
// The enumeration is closed; the comparator handles every kind exactly once.
type Kind int

// Value kinds recognized by the comparator.
const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindOther // non-JSON values; compared by deep equality
)

// KindOf returns the comparison kind of the given value.
// Numeric values of any Go type classify as KindNumber.
func KindOf(value interface{}) Kind {
	switch normalizeValue(value).(type) {
	case nil:
		return KindNil
	case bool:
		return KindBool
	case float64:
		return KindNumber
	case string:
		return KindString
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	default:
		return KindOther
	}
}

// normalizeValue converts any numeric Go type to float64 so that data decoded
// from different sources such as JSON and YAML compares consistently.
// Non-numeric values are returned unchanged.
func normalizeValue(value interface{}) interface{} {
	switch val := value.(type) {
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		if val > math.MaxInt64 {
			return float64(val)
		}
		return float64(int64(val))
	case float32:
		return float64(val)
	default:
		return value
	}
}

// isFalsy reports whether a normalized value is nil, false, zero, or the empty string.
// Mirrors loose-typed falsiness: empty arrays and objects are not falsy.
func isFalsy(value interface{}) bool {
	switch val := value.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	default:
		return false
	}
}
