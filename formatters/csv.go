// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package formatters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/petmal/mindgrade/comparison"
	"github.com/petmal/mindgrade/runners"
)

// NewCSVFormatter creates a new formatter that outputs results in CSV format.
func NewCSVFormatter() Formatter {
	return &csvFormatter{}
}

type csvFormatter struct{}

func (f csvFormatter) FileExt() string {
	return "csv"
}

func (f csvFormatter) Write(results runners.Results, out io.Writer) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	headers := []string{"Suite", "Case", "Status", "Duration", "Cost (USD)", "Expected", "Actual", "Differences"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("%w: %v", ErrPrintResults, err)
	}

	for _, caseResult := range results.Cases {
		row := []string{
			results.Suite,
			caseResult.Name,
			ToStatus(caseResult),
			RoundToMS(caseResult.TimeElapsed).String(),
			fmt.Sprintf("%.6f", caseResult.Cost),
			FormatValue(caseResult.ExpectedResponse),
			FormatValue(caseResult.ActualResponse),
			formatDifferenceText(caseResult.Differences),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrPrintResults, err)
		}
	}
	return nil
}

// formatDifferenceText returns a single plain text block containing all recorded
// differences separated by newlines for CSV and other text-based outputs.
func formatDifferenceText(differences []comparison.Difference) string {
	lines := make([]string, 0, len(differences))
	for _, difference := range differences {
		lines = append(lines, fmt.Sprintf("%s: expected %s, got %s (similarity %s)",
			FormatPath(difference.Path),
			FormatValue(difference.Expected),
			FormatValue(difference.Actual),
			FormatSimilarity(difference.Similarity)))
	}
	return strings.Join(lines, "\n")
}
