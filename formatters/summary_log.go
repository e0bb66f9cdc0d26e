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

	"github.com/petmal/mindgrade/pkg/utils"
	"github.com/petmal/mindgrade/runners"
)

// NewSummaryLogFormatter creates a new formatter that outputs aggregate metrics as an ASCII table summary.
func NewSummaryLogFormatter() Formatter {
	return &summaryLogFormatter{}
}

type summaryLogFormatter struct{}

func (f summaryLogFormatter) FileExt() string {
	return "summary.log"
}

func (f summaryLogFormatter) Write(results runners.Results, out io.Writer) error {
	tab := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.Debug)
	defer tab.Flush()
	report := results.Metrics

	if _, err := fmt.Fprintf(tab, "Suite\tTotal\t%s\t%s\tSuccess Rate (%%)\tF1 Score\tMedian Time\tP95 Time\tTotal Cost (USD)\tCost/Success (USD)\t\n", Passed, Failed); err != nil {
		return fmt.Errorf("%w: %v", ErrPrintResults, err)
	}
	if _, err := fmt.Fprintf(tab, "%s\t%d\t%d\t%d\t%.2f\t%.4f\t%s\t%s\t%.6f\t%.6f\t\n",
		results.Suite,
		report.TotalTests,
		report.SuccessfulTests,
		report.FailedTests,
		Percent(report.SuccessRate),
		report.F1Score,
		RoundToMS(report.MedianTime),
		RoundToMS(report.P95Time),
		report.TotalCost,
		report.CostPerSuccess); err != nil {
		return fmt.Errorf("%w: %v", ErrPrintResults, err)
	}

	if len(report.MostFailedFields) > 0 {
		if _, err := fmt.Fprintf(tab, "\nMost failed fields: %s\n", strings.Join(report.MostFailedFields, ", ")); err != nil {
			return fmt.Errorf("%w: %v", ErrPrintResults, err)
		}
	}

	if len(report.FieldSuccessRates) > 0 {
		if _, err := fmt.Fprintln(tab, "\nField\tSuccess Rate (%)\t"); err != nil {
			return fmt.Errorf("%w: %v", ErrPrintResults, err)
		}
		for _, field := range utils.SortedKeys(report.FieldSuccessRates) {
			if _, err := fmt.Fprintf(tab, "%s\t%.2f\t\n", field, Percent(report.FieldSuccessRates[field])); err != nil {
				return fmt.Errorf("%w: %v", ErrPrintResults, err)
			}
		}
	}

	if len(report.ErrorDistribution) > 0 {
		if _, err := fmt.Fprintln(tab, "\nField\tError Count\t"); err != nil {
			return fmt.Errorf("%w: %v", ErrPrintResults, err)
		}
		for _, field := range utils.SortedKeys(report.ErrorDistribution) {
			if _, err := fmt.Fprintf(tab, "%s\t%d\t\n", field, report.ErrorDistribution[field]); err != nil {
				return fmt.Errorf("%w: %v", ErrPrintResults, err)
			}
		}
	}
	return nil
}
