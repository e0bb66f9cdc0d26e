// Copyright (C) 2025 Petr Malik
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at <https://mozilla.org/MPL/2.0/>.

package runners

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petmal/mindgrade/pkg/logging"
	"github.com/rs/zerolog"
)

// PrefixedLogger implements the logging.Logger interface on top of a
// zerolog.Logger, prepending an accumulated context prefix to every message.
type PrefixedLogger struct {
	logger zerolog.Logger
	prefix string
}

// NewPrefixedLogger creates a new PrefixedLogger that wraps the provided zerolog.Logger.
func NewPrefixedLogger(logger zerolog.Logger) logging.Logger {
	return &PrefixedLogger{
		logger: logger,
	}
}

// Message logs a message at the specified level with optional format arguments.
func (l *PrefixedLogger) Message(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.getEvent(level).Msg(l.prefix + fmt.Sprintf(msg, args...))
}

// Error logs an error at the specified level with optional format arguments.
func (l *PrefixedLogger) Error(ctx context.Context, level slog.Level, err error, msg string, args ...any) {
	l.getEvent(level).Err(err).Msg(l.prefix + fmt.Sprintf(msg, args...))
}

// WithContext returns a new Logger that appends the specified context to the existing prefix.
func (l *PrefixedLogger) WithContext(context string) logging.Logger {
	return &PrefixedLogger{
		logger: l.logger,
		prefix: l.prefix + context,
	}
}

// getEvent returns a zerolog event for the given slog level.
func (l *PrefixedLogger) getEvent(level slog.Level) *zerolog.Event {
	switch {
	case level < logging.LevelDebug:
		return l.logger.Trace()
	case level < logging.LevelInfo:
		return l.logger.Debug()
	case level < logging.LevelWarn:
		return l.logger.Info()
	case level < logging.LevelError:
		return l.logger.Warn()
	default:
		return l.logger.Error()
	}
}
