// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// Zone data for --tz and CRON_TZ= on hosts without a zoneinfo
	// database.
	_ "time/tzdata"

	"github.com/bureau-foundation/crontest/cmd/crontest/commands"
	schedulecmd "github.com/bureau-foundation/crontest/cmd/crontest/schedule"
	"github.com/bureau-foundation/crontest/lib/clock"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like check) return an
		// ExitError with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.Root(schedulecmd.Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Clock:  clock.Real(),
	})
	return root.Execute(ctx, os.Args[1:])
}
