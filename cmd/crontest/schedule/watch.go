// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/crontest/cmd/crontest/cli"
	"github.com/bureau-foundation/crontest/lib/cron"
	"github.com/bureau-foundation/crontest/lib/report"
)

type watchParams struct {
	cli.OutputParams
	syntaxParams
	searchParams
	Count int `flag:"count,n" desc:"stop after this many occurrences (default: until interrupted)"`
}

func watchCommand(environment Environment) *cli.Command {
	var params watchParams
	const usage = "crontest watch <expression> [flags]"

	return &cli.Command{
		Name:    "watch",
		Summary: "Print each occurrence as it happens",
		Usage:   usage,
		Description: `Wait for each upcoming occurrence of the expression and print it when
it arrives. Runs until interrupted, or until --count occurrences have
been printed.

Occurrences missed while the process was not running (for example
across a suspend) are not replayed; the next wait starts from the
current time.`,
		Examples: []cli.Example{
			{
				Description: "Print the next two quarter hours, then exit",
				Command:     `crontest watch "*/15 * * * *" --count 2`,
			},
			{
				Description: "Stream occurrences as JSON documents",
				Command:     "crontest watch @hourly --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("watch", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			text, err := expression(args, usage)
			if err != nil {
				return err
			}
			if params.Count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", params.Count)
			}
			session, err := environment.open(params.syntaxParams, &params.OutputParams, logger)
			if err != nil {
				return err
			}
			schedule, err := session.parse(text)
			if err != nil {
				return err
			}
			location, err := session.location(params.searchParams)
			if err != nil {
				return err
			}
			return session.watch(ctx, schedule, location, params.Count, params.searchParams)
		},
	}
}

// watch blocks until each occurrence and writes a Fired document for
// it. count 0 watches until ctx is canceled, which is not an error.
func (s *session) watch(ctx context.Context, schedule *cron.Schedule, location *time.Location, count int, search searchParams) error {
	clock := s.environment.Clock
	var last time.Time

	for sequence := 1; count == 0 || sequence <= count; sequence++ {
		from := clock.Now().In(location)
		if from.Before(last) {
			from = last
		}
		next, err := s.upcoming(ctx, schedule, from, search)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var schedulingErr *cron.SchedulingError
			if errors.As(err, &schedulingErr) {
				return s.fail(schedule.String(), err)
			}
			return err
		}

		s.logger.Info("waiting for occurrence", "sequence", sequence, "at", next.Format(time.RFC3339))
		select {
		case <-ctx.Done():
			s.logger.Info("watch stopped", "fired", sequence-1)
			return nil
		case <-clock.After(next.Sub(clock.Now())):
		}

		if err := s.write(&report.Fired{
			Expression: schedule.String(),
			Sequence:   sequence,
			Occurrence: next,
		}); err != nil {
			return err
		}
		last = next
	}
	return nil
}

func (s *session) upcoming(ctx context.Context, schedule *cron.Schedule, from time.Time, search searchParams) (time.Time, error) {
	query, err := s.query(from, 1, cron.Forward, search)
	if err != nil {
		return time.Time{}, err
	}
	ctx, cancel, err := s.bounded(ctx, search)
	if err != nil {
		return time.Time{}, err
	}
	defer cancel()

	occurrences, err := schedule.Occurrences(ctx, query)
	if err != nil {
		return time.Time{}, err
	}
	return occurrences[0], nil
}
