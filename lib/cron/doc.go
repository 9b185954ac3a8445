// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron parses cron expressions and computes the occurrences
// they describe, forward or backward from a reference time.
//
// Supported syntax:
//
//	┌───────────── second (0-59, optional, see Seconds/SecondsOptional)
//	│ ┌───────────── minute (0-59)
//	│ │ ┌───────────── hour (0-23)
//	│ │ │ ┌───────────── day of month (1-31)
//	│ │ │ │ ┌───────────── month (1-12 or JAN-DEC)
//	│ │ │ │ │ ┌───────────── day of week (0-7 or SUN-SAT, 0 and 7 are Sunday)
//	│ │ │ │ │ │
//	* * * * * *
//
// Each field supports single values (5), ranges (1-5), lists (1,3,5),
// steps (*/15, 1-30/5, 10/5) and the wildcard (*). The parser is
// configured with capability flags ([Options]):
//
//   - [Names]: JAN-DEC and SUN-SAT, case-insensitive.
//   - [Macros]: @yearly, @annually, @monthly, @weekly, @daily,
//     @midnight, @hourly.
//   - [Extensions]: ? in the day fields; L, L-n, LW and nW in
//     day-of-month; nL and n#k in day-of-week.
//   - [Seconds] and [SecondsOptional]: a leading seconds field.
//   - [DayAnd]: require both day fields to match (see below).
//
// An expression may be prefixed with CRON_TZ=<zone> or TZ=<zone> to
// evaluate it in a fixed location.
//
// # Day matching
//
// When day-of-month and day-of-week are both restricted, a day matches
// if either field matches (Vixie cron). When one of them is * or ?,
// only the other decides. [DayAnd] switches to requiring both.
//
// # Searching
//
// [Schedule.Occurrences] walks a wall-clock cursor field by field,
// jumping to the next allowed value and carrying into more significant
// fields on overflow. Every search is bounded by a horizon in years
// (default [DefaultHorizon]) measured from the point the search for
// each occurrence starts, by an optional iteration budget, and by the
// context. A schedule that cannot fire within the horizon (February
// 31) fails with a [SchedulingError] of kind [KindUnsatisfiable].
//
// Fields are matched against wall-clock time in the schedule's
// location, or the reference time's location when the expression has
// no zone prefix. Wall-clock times that do not exist (daylight saving
// gaps) are skipped. Ambiguous wall-clock times fire once, at the
// instant time.Date resolves them to. Occurrences are strictly
// monotonic in the search direction.
//
// Schedules are immutable and safe for concurrent use.
package cron
