// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package comparison

import "github.com/petmal/mindgrade/pkg/utils"

// FlattenKeys returns the dotted field paths of all object keys present in
// the given value, in pre-order with keys sorted at each level. Arrays are
// treated as opaque leaves: field tracking is about object schema shape,
// not array contents. Non-object values yield no paths.
func FlattenKeys(value interface{}) []string {
	var paths []string
	flattenInto("", value, &paths)
	return paths
}

func flattenInto(prefix string, value interface{}, out *[]string) {
	object, ok := value.(map[string]interface{})
	if !ok {
		return
	}
	for _, key := range utils.SortedKeys(object) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		*out = append(*out, path)
		flattenInto(path, object[key], out)
	}
}

// FieldSets derives the matched, missing and extra field-path sets from the
// flattened keys of the expected and actual values. The sets are a static
// snapshot of field presence, independent of which fields compared equal.
func FieldSets(expected, actual interface{}) (matched, missing, extra utils.StringSet) {
	expectedFields := utils.NewStringSet(FlattenKeys(expected)...)
	actualFields := utils.NewStringSet(FlattenKeys(actual)...)
	return expectedFields.Intersect(actualFields),
		expectedFields.Difference(actualFields),
		actualFields.Difference(expectedFields)
}
