// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bureau-foundation/crontest/cmd/crontest/cli"
	"github.com/bureau-foundation/crontest/lib/clock"
	"github.com/bureau-foundation/crontest/lib/config"
	"github.com/bureau-foundation/crontest/lib/cron"
	"github.com/bureau-foundation/crontest/lib/report"
)

// Environment is what the commands read from and write to. main
// supplies the process streams and the real clock; tests supply
// buffers and a fake clock.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Clock  clock.Clock
}

// syntaxParams select the configuration and the expression syntax.
type syntaxParams struct {
	Config  string `flag:"config" desc:"config file (default: $CRONTEST_CONFIG)"`
	Seconds bool   `flag:"seconds" desc:"expect a leading seconds field (6 fields)"`
	DayAnd  bool   `flag:"day-and" desc:"require both day fields to match when both are restricted"`
}

// searchParams bound occurrence searches. Zero values use the config.
type searchParams struct {
	Zone    string        `flag:"tz" desc:"zone reference times are read in (e.g. America/New_York)"`
	Horizon int           `flag:"horizon" desc:"per-occurrence search bound in years"`
	Budget  int           `flag:"budget" desc:"cap on search steps per query"`
	Timeout time.Duration `flag:"timeout" desc:"time limit for each query"`
}

// session is the resolved state of one command invocation.
type session struct {
	environment Environment
	config      *config.Config
	options     report.Options
	parser      cron.Parser
	logger      *slog.Logger
}

func (e Environment) open(syntax syntaxParams, output *cli.OutputParams, logger *slog.Logger) (*session, error) {
	configuration, err := loadConfig(syntax.Config)
	if err != nil {
		return nil, err
	}
	if syntax.Seconds {
		configuration.Parser.Seconds = config.SecondsRequired
	}
	if syntax.DayAnd {
		configuration.Parser.DayPolicy = cron.DayPolicyAnd.String()
	}

	// Load and LoadFile validated these names.
	format, _ := report.ParseFormat(configuration.Output.Format)
	color, _ := report.ParseColorMode(configuration.Output.Color)
	options, err := output.Options(report.Options{
		Format:     format,
		Color:      color,
		TimeLayout: configuration.Output.TimeLayout,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		environment: e,
		config:      configuration,
		options:     options,
		parser:      cron.NewParser(configuration.ParserOptions()),
		logger:      logger,
	}, nil
}

// loadConfig reads the file named by --config, then $CRONTEST_CONFIG,
// and falls back to the defaults when neither is set.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// expression joins the positional arguments, so unquoted fields work:
// "crontest next 0 9 '*' '*' 1-5".
func expression(args []string, usage string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("expression required\n\nUsage: %s", usage)
	}
	return text, nil
}

func (s *session) parse(text string) (*cron.Schedule, error) {
	schedule, err := s.parser.Parse(text)
	if err != nil {
		return nil, s.fail(text, err)
	}
	s.logger.Debug("parsed expression", "expression", text, "canonical", schedule.Canonical())
	return schedule, nil
}

// fail renders err as a Failure document and returns the exit code for
// it: structured formats write the document to stdout, text goes to
// stderr.
func (s *session) fail(text string, err error) error {
	document := report.NewFailure(text, err)
	w := s.environment.Stderr
	options := s.options
	if cli.Structured(options) {
		w = s.environment.Stdout
	} else {
		options.Format = report.FormatText
	}
	if writeErr := report.Write(w, document, options); writeErr != nil {
		return fmt.Errorf("%w (writing report: %v)", err, writeErr)
	}
	code := cli.ExitInvalid
	if strings.HasPrefix(string(document.Diagnostic.Code), "schedule.") {
		code = cli.ExitFailure
	}
	return &cli.ExitError{Code: code}
}

func (s *session) write(document report.Document) error {
	return report.Write(s.environment.Stdout, document, s.options)
}

// location returns the zone reference times are read in: --tz, then
// the config.
func (s *session) location(search searchParams) (*time.Location, error) {
	if search.Zone != "" {
		location, err := time.LoadLocation(search.Zone)
		if err != nil {
			return nil, fmt.Errorf("--tz: %w", err)
		}
		return location, nil
	}
	return s.config.ReferenceLocation()
}

// Layouts accepted for reference times without a zone offset, read in
// the reference location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// reference parses a reference time. Empty and "now" read the clock.
// An RFC 3339 time keeps its own offset unless --tz was given.
func (s *session) reference(text string, search searchParams) (time.Time, error) {
	location, err := s.location(search)
	if err != nil {
		return time.Time{}, err
	}
	if text == "" || strings.EqualFold(text, "now") {
		return s.environment.Clock.Now().In(location), nil
	}
	if instant, err := time.Parse(time.RFC3339Nano, text); err == nil {
		if search.Zone != "" {
			instant = instant.In(location)
		}
		return instant, nil
	}
	for _, layout := range localLayouts {
		if instant, err := time.ParseInLocation(layout, text, location); err == nil {
			return instant, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (want RFC 3339, or YYYY-MM-DD[ HH:MM[:SS]])", text)
}

// query builds a search from the flags over the configured defaults.
func (s *session) query(from time.Time, count int, direction cron.Direction, search searchParams) (cron.Query, error) {
	if count == 0 {
		count = s.config.Schedule.Count
	}
	if count < 0 {
		return cron.Query{}, fmt.Errorf("--count must be positive, got %d", count)
	}
	query := cron.Query{
		From:      from,
		Count:     count,
		Direction: direction,
		Horizon:   s.config.Schedule.Horizon,
		Budget:    s.config.Schedule.Budget,
	}
	if search.Horizon != 0 {
		query.Horizon = search.Horizon
	}
	if search.Budget != 0 {
		query.Budget = search.Budget
	}
	if query.Horizon < 0 || query.Budget < 0 {
		return cron.Query{}, fmt.Errorf("--horizon and --budget must not be negative")
	}
	return query, nil
}

// bounded applies the query timeout: --timeout, then the config.
func (s *session) bounded(ctx context.Context, search searchParams) (context.Context, context.CancelFunc, error) {
	timeout := search.Timeout
	if timeout == 0 {
		configured, err := s.config.TimeoutDuration()
		if err != nil {
			return nil, nil, err
		}
		timeout = configured
	}
	if timeout <= 0 {
		ctx, cancel := context.WithCancel(ctx)
		return ctx, cancel, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}
