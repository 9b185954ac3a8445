// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The CLI reads "now" and waits for upcoming occurrences through a
// Clock rather than calling time.Now and time.After directly. In
// production, Real() provides the standard library behavior. In
// tests, Fake() provides a clock that moves only when told to, so the
// watch loop can be driven occurrence by occurrence:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go watch(ctx, c, schedule)
//	c.WaitForTimers(1)               // the loop is waiting for the next occurrence
//	c.AdvanceTo(firstOccurrence)     // fire it deterministically
//
// WaitForTimers blocks until the expected number of waiters have
// registered, which removes the race between a goroutine calling After
// and the test advancing the clock.
package clock
