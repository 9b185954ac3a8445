// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schedule implements the crontest subcommands that parse
// expressions and query their occurrences: parse, next, prev, explain,
// check and watch.
//
// Every command resolves its settings in the same order: flags, then
// the config file (--config or $CRONTEST_CONFIG), then the built-in
// defaults. Expressions may be passed quoted or as separate arguments.
//
// Exit codes: 0 on success, 1 when a search stopped early or a checked
// time does not match, 2 when the expression is invalid.
package schedule

import "github.com/bureau-foundation/crontest/cmd/crontest/cli"

// Commands returns the schedule subcommands bound to environment.
func Commands(environment Environment) []*cli.Command {
	return []*cli.Command{
		parseCommand(environment),
		occurrencesCommand(environment, "next"),
		occurrencesCommand(environment, "prev"),
		explainCommand(environment),
		checkCommand(environment),
		watchCommand(environment),
	}
}
