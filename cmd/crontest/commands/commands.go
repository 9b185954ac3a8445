// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete crontest command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/crontest/cmd/crontest/cli"
	schedulecmd "github.com/bureau-foundation/crontest/cmd/crontest/schedule"
	"github.com/bureau-foundation/crontest/lib/report"
	"github.com/bureau-foundation/crontest/lib/version"
)

// Root builds and returns the crontest command tree bound to
// environment.
func Root(environment schedulecmd.Environment) *cli.Command {
	subcommands := schedulecmd.Commands(environment)
	subcommands = append(subcommands, versionCommand(environment))

	return &cli.Command{
		Name: "crontest",
		Description: `crontest: parse cron expressions and compute their occurrences.

Supports 5- and 6-field expressions, JAN-DEC and SUN-SAT names,
@daily-style macros, the ?, L, W and # day extensions, and CRON_TZ=
zone prefixes. Results render as text, JSON, YAML, CBOR, Markdown or
HTML.

Settings come from flags, then the file named by --config or
$CRONTEST_CONFIG (YAML or JSONC), then built-in defaults. Set
$CRONTEST_LOG_LEVEL=debug for diagnostic logs on stderr.`,
		Subcommands: subcommands,
		Stderr:      environment.Stderr,
		Examples: []cli.Example{
			{
				Description: "When does this fire next?",
				Command:     `crontest next "0 9 * * MON-FRI"`,
			},
			{
				Description: "What does this mean?",
				Command:     `crontest explain "0 0 1W * *"`,
			},
		},
	}
}

type versionParams struct {
	cli.OutputParams
	Short bool `flag:"short" desc:"print only the version number"`
}

func versionCommand(environment schedulecmd.Environment) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			if params.Short {
				_, err := fmt.Fprintln(environment.Stdout, version.Short())
				return err
			}
			options, err := params.Options(report.Options{Format: report.FormatText, Color: report.ColorAuto})
			if err != nil {
				return err
			}
			return params.Emit(environment.Stdout, &report.Build{Details: version.Current()}, options)
		},
	}
}
