// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package formatters

import (
	"bytes"
	"testing"

	"github.com/petmal/mindgrade/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLFormatterFileExt(t *testing.T) {
	assert.Equal(t, "html", NewHTMLFormatter().FileExt())
}

func TestHTMLFormatterWrite(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, NewHTMLFormatter().Write(newTestResults(t), out))

	contents := out.String()
	testutils.AssertContainsAll(t, contents, []string{
		"<!DOCTYPE html>",
		"invoice extraction",
		"01JTESTRUN",
		"matching invoice",
		"mismatching currency",
		Passed, Failed, Error,
		"Most Failed Fields",
		"Field Success Rates",
		"Error Distribution",
		"MindGrade",
	})
	testutils.AssertContainsNone(t, contents, []string{"<no value>"})
}
