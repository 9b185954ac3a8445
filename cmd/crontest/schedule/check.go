// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/crontest/cmd/crontest/cli"
	"github.com/bureau-foundation/crontest/lib/cron"
	"github.com/bureau-foundation/crontest/lib/report"
)

type checkParams struct {
	cli.OutputParams
	syntaxParams
	searchParams
	At string `flag:"at" desc:"time to check (RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]]); default now"`
}

func checkCommand(environment Environment) *cli.Command {
	var params checkParams
	const usage = "crontest check <expression> [--at TIME] [flags]"

	return &cli.Command{
		Name:    "check",
		Summary: "Check whether an expression fires at a time",
		Usage:   usage,
		Description: `Report whether the expression fires at --at (default now), with the
nearest occurrences on either side.

The time is compared at the expression's resolution: to the minute for
5-field expressions, to the second with a seconds field. Exits 0 on a
match and 1 otherwise, so the command works in shell conditions.`,
		Examples: []cli.Example{
			{
				Description: "Gate a script on the schedule",
				Command:     `crontest check "*/15 * * * *" --format json >/dev/null && run-job`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			text, err := expression(args, usage)
			if err != nil {
				return err
			}
			session, err := environment.open(params.syntaxParams, &params.OutputParams, logger)
			if err != nil {
				return err
			}
			schedule, err := session.parse(text)
			if err != nil {
				return err
			}
			at, err := session.reference(params.At, params.searchParams)
			if err != nil {
				return err
			}
			resolution := time.Minute
			if schedule.HasSeconds() {
				resolution = time.Second
			}
			at = at.Truncate(resolution)

			ctx, cancel, err := session.bounded(ctx, params.searchParams)
			if err != nil {
				return err
			}
			defer cancel()

			match := &report.Match{
				Expression: schedule.String(),
				At:         at,
				Matches:    schedule.Matches(at),
			}
			match.Previous = session.nearest(ctx, schedule, at, cron.Backward, params.searchParams)
			match.Next = session.nearest(ctx, schedule, at, cron.Forward, params.searchParams)

			if err := session.write(match); err != nil {
				return err
			}
			if !match.Matches {
				return &cli.ExitError{Code: cli.ExitFailure}
			}
			return nil
		},
	}
}

// nearest returns the first occurrence from at in direction, or nil
// when the search fails.
func (s *session) nearest(ctx context.Context, schedule *cron.Schedule, at time.Time, direction cron.Direction, search searchParams) *time.Time {
	query, err := s.query(at, 1, direction, search)
	if err != nil {
		return nil
	}
	occurrences, err := schedule.Occurrences(ctx, query)
	if err != nil {
		s.logger.Debug("no nearby occurrence", "direction", direction.String(), "error", err)
		return nil
	}
	return &occurrences[0]
}
