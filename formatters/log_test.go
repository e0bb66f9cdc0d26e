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

func TestLogFormatterFileExt(t *testing.T) {
	assert.Equal(t, "log", NewLogFormatter().FileExt())
}

func TestLogFormatterWrite(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, NewLogFormatter().Write(newTestResults(t), out))

	testutils.AssertContainsAll(t, out.String(), []string{
		"RunID", "Suite", "Case", "Status", "Duration",
		"01JTESTRUN",
		"invoice extraction",
		"matching invoice", Passed,
		"mismatching currency", Failed,
		`currency: expected "USD", got "EUR" (similarity 0.00)`,
		Error, assert.AnError.Error(),
	})
}
