// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/crontest/cmd/crontest/cli"
	"github.com/bureau-foundation/crontest/lib/report"
)

type parseParams struct {
	cli.OutputParams
	syntaxParams
}

func parseCommand(environment Environment) *cli.Command {
	var params parseParams
	const usage = "crontest parse <expression> [flags]"

	return &cli.Command{
		Name:    "parse",
		Summary: "Validate an expression and show its fields",
		Usage:   usage,
		Description: `Parse a cron expression and print what it allows.

The output lists the allowed values of every field, the canonical form
of the expression (names and macros expanded, runs collapsed to ranges)
and its fingerprint. Expressions with the same meaning share a
fingerprint regardless of spelling.

An invalid expression prints the failing field, token and error code,
and exits with status 2.`,
		Examples: []cli.Example{
			{
				Description: "Show the fields of a weekday schedule",
				Command:     `crontest parse "0 9 * * MON-FRI"`,
			},
			{
				Description: "Machine-readable descriptor",
				Command:     "crontest parse @weekly --format json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("parse", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
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
			summary, err := report.NewSummary(schedule)
			if err != nil {
				return err
			}
			return session.write(summary)
		},
	}
}
