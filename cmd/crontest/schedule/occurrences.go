// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/crontest/cmd/crontest/cli"
	"github.com/bureau-foundation/crontest/lib/cron"
	"github.com/bureau-foundation/crontest/lib/report"
)

type occurrencesParams struct {
	cli.OutputParams
	syntaxParams
	searchParams
	Count int    `flag:"count,n" desc:"number of occurrences (default from config, 5)"`
	From  string `flag:"from" desc:"reference time (RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]]); default now"`
}

// occurrencesCommand builds "next" or "prev".
func occurrencesCommand(environment Environment, name string) *cli.Command {
	var params occurrencesParams
	usage := "crontest " + name + " <expression> [flags]"

	direction, summary, adverb := cron.Forward, "List upcoming occurrences", "after"
	if name == "prev" {
		direction, summary, adverb = cron.Backward, "List past occurrences", "before"
	}

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
		Description: summary + ` of an expression, nearest first.

Occurrences are strictly ` + adverb + ` the reference time (--from, default
now). Fields are evaluated against wall-clock time in the expression's
CRON_TZ= zone, or else in the reference time's zone (--tz). Wall-clock
times skipped by a daylight-saving transition do not occur; repeated
ones occur once, at the earlier reading.

Each occurrence must be found within --horizon years of the previous
one. If the search stops early, the occurrences found so far are
printed with the error and the exit status is 1.`,
		Examples: []cli.Example{
			{
				Description: "Next three weekday mornings in New York",
				Command:     `crontest ` + name + ` "0 9 * * MON-FRI" -n 3 --tz America/New_York`,
			},
			{
				Description: "From a fixed time, as YAML",
				Command:     `crontest ` + name + ` @monthly --from 2026-01-15 --format yaml`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams(name, &params)
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
			from, err := session.reference(params.From, params.searchParams)
			if err != nil {
				return err
			}
			query, err := session.query(from, params.Count, direction, params.searchParams)
			if err != nil {
				return err
			}

			ctx, cancel, err := session.bounded(ctx, params.searchParams)
			if err != nil {
				return err
			}
			defer cancel()

			occurrences, searchErr := schedule.Occurrences(ctx, query)
			var schedulingErr *cron.SchedulingError
			if searchErr != nil && !errors.As(searchErr, &schedulingErr) {
				return searchErr
			}

			if err := session.write(report.NewOccurrences(schedule, query, occurrences, searchErr)); err != nil {
				return err
			}
			if searchErr != nil {
				logger.Warn("search stopped early",
					"expression", text,
					"found", len(occurrences),
					"wanted", query.Count,
					"kind", schedulingErr.Kind.String(),
				)
				return &cli.ExitError{Code: cli.ExitFailure}
			}
			return nil
		},
	}
}
