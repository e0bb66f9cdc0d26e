// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

// Package formatters provides output formatting functionality for MindGrade results.
// It supports multiple output formats including HTML, CSV, JSON, and text logs.
package formatters

import (
	"errors"
	"io"

	"github.com/petmal/mindgrade/runners"
)

// Passed indicates that a case finished with a matching response.
// Failed indicates that a case finished with a mismatching response.
// Error indicates that a case failed to produce a gradable response.
const (
	Passed = "PASS"
	Failed = "FAIL"
	Error  = "ERROR"
)

// ErrPrintResults indicates that result formatting failed.
var ErrPrintResults = errors.New("failed to print formatted results")

// Formatter handles converting results into specific output formats.
type Formatter interface {
	// FileExt returns the formatter's file extension.
	FileExt() string
	// Write outputs formatted results to the writer.
	Write(results runners.Results, out io.Writer) error
}
