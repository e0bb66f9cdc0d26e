// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package runners

import (
	"context"
	"errors"
	"fmt"

	"github.com/petmal/mindgrade/config"
)

// ErrNoRecordedResponse indicates that a suite case carries no recorded response to replay.
var ErrNoRecordedResponse = errors.New("case has no recorded response")

const recordedSourceName = "recorded"

// NewRecordedSource creates a Source that replays the responses recorded in the
// suite cases themselves. Cases without a recorded response fail the fetch.
func NewRecordedSource() Source {
	return recordedSource{}
}

type recordedSource struct{}

func (s recordedSource) Name() string {
	return recordedSourceName
}

func (s recordedSource) Fetch(ctx context.Context, testCase config.Case) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if testCase.Actual == nil {
		return Response{}, fmt.Errorf("%w: %s", ErrNoRecordedResponse, testCase.Name)
	}
	return Response{
		Actual:  testCase.Actual,
		Elapsed: testCase.Elapsed(),
		Cost:    testCase.CostUSD,
	}, nil
}

func (s recordedSource) Close(ctx context.Context) error {
	return nil
}
