// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Crontest parses cron expressions and computes their occurrences.
//
// Subcommands:
//
//	crontest parse <expression>     validate; print fields, canonical form, fingerprint
//	crontest next <expression>      upcoming occurrences
//	crontest prev <expression>      past occurrences
//	crontest explain <expression>   English description
//	crontest check <expression>     exit 0 if --at (default now) matches
//	crontest watch <expression>     print each occurrence as it happens
//	crontest version                build information
//
// Run "crontest <command> --help" for the flags of each command.
package main
