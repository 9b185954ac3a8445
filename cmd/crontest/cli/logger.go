// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// LogLevelVariable names the environment variable that sets the
// command log level ("debug", "info", "warn", "error").
const LogLevelVariable = "CRONTEST_LOG_LEVEL"

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal, uses slog.TextHandler for human-readable output. When it
// is piped or redirected, uses slog.JSONHandler for machine-parseable
// output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(os.Stderr).With("expression", text)
func NewCommandLogger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: logLevel()}
	var handler slog.Handler
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// logLevel reads LogLevelVariable. Unset or unrecognized values mean
// slog.LevelWarn.
func logLevel() slog.Level {
	level := slog.LevelWarn
	if value := strings.TrimSpace(os.Getenv(LogLevelVariable)); value != "" {
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return slog.LevelWarn
		}
	}
	return level
}
