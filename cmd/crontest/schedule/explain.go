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

type explainParams struct {
	cli.OutputParams
	syntaxParams
}

func explainCommand(environment Environment) *cli.Command {
	var params explainParams
	const usage = "crontest explain <expression> [flags]"

	return &cli.Command{
		Name:    "explain",
		Summary: "Describe an expression in English",
		Usage:   usage,
		Examples: []cli.Example{
			{
				Command: `crontest explain "30 2 L * *"`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("explain", &params)
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
			return session.write(&report.Explanation{
				Expression:  schedule.String(),
				Description: schedule.Describe(),
			})
		},
	}
}
