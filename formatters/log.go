// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package formatters

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/petmal/mindgrade/runners"
)

// NewLogFormatter creates a new formatter that outputs detailed results as an ASCII table.
func NewLogFormatter() Formatter {
	return &logFormatter{}
}

type logFormatter struct{}

func (f logFormatter) FileExt() string {
	return "log"
}

func (f logFormatter) Write(results runners.Results, out io.Writer) error {
	tab := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.Debug)
	defer tab.Flush()
	if _, err := fmt.Fprintln(tab, "RunID\tSuite\tCase\tStatus\tDuration\tCost (USD)\tDifferences\t"); err != nil {
		return fmt.Errorf("%w: %v", ErrPrintResults, err)
	}

	for _, caseResult := range results.Cases {
		// Tab rows are single lines so difference entries collapse onto one.
		detail := strings.ReplaceAll(formatDifferenceText(caseResult.Differences), "\n", "; ")
		if !caseResult.IsFinished {
			detail = caseResult.Error
		}
		if _, err := fmt.Fprintf(tab, "%s\t%s\t%s\t%s\t%s\t%.6f\t%s\t\n",
			results.RunID,
			results.Suite,
			caseResult.Name,
			ToStatus(caseResult),
			RoundToMS(caseResult.TimeElapsed),
			caseResult.Cost,
			detail); err != nil {
			return fmt.Errorf("%w: %v", ErrPrintResults, err)
		}
	}
	return nil
}
