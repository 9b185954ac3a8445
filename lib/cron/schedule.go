// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"context"
	"fmt"
	"time"
)

// DefaultHorizon is the search bound in years used when a [Query]
// leaves Horizon at zero. It spans several 28-year weekday/leap cycles
// and the skipped leap day of 2100.
const DefaultHorizon = 100

// contextCheckInterval is how many cursor steps run between context
// checks.
const contextCheckInterval = 256

// DayPolicy combines the day-of-month and day-of-week fields when both
// are restricted.
type DayPolicy int

const (
	// DayPolicyOr matches a day if either field matches.
	DayPolicyOr DayPolicy = iota
	// DayPolicyAnd matches a day only if both fields match.
	DayPolicyAnd
)

func (p DayPolicy) String() string {
	if p == DayPolicyAnd {
		return "and"
	}
	return "or"
}

// Schedule is a parsed cron expression. Create one with [Parse] or
// [Parser.Parse].
type Schedule struct {
	expression string
	fields     [fieldCount]FieldSpec
	seconds    bool
	policy     DayPolicy
	location   *time.Location
}

// String returns the expression the schedule was parsed from.
func (s *Schedule) String() string { return s.expression }

// Field returns the constraint on one field. Without seconds resolution the
// Second field allows only 0.
func (s *Schedule) Field(field Field) FieldSpec { return s.fields[field] }

// HasSeconds reports whether the expression had a seconds field.
func (s *Schedule) HasSeconds() bool { return s.seconds }

// DayPolicy returns how the two day fields combine.
func (s *Schedule) DayPolicy() DayPolicy { return s.policy }

// Location returns the zone from a CRON_TZ= prefix, or nil when the
// schedule is evaluated in the reference time's location.
func (s *Schedule) Location() *time.Location { return s.location }

// resolution is the smallest unit between two occurrences.
func (s *Schedule) resolution() time.Duration {
	if s.seconds {
		return time.Second
	}
	return time.Minute
}

// dayMatches applies the day policy on a calendar date.
func (s *Schedule) dayMatches(year int, month time.Month, day int) bool {
	calendar := Calendar{Year: year, Month: month, Day: day}
	dayOfMonth := s.fields[DayOfMonth]
	dayOfWeek := s.fields[DayOfWeek]
	domMatch := dayOfMonth.Matches(day, calendar)
	dowMatch := dayOfWeek.Matches(int(weekdayOf(year, month, day)), calendar)
	if s.policy == DayPolicyOr && !dayOfMonth.wildcard && !dayOfWeek.wildcard {
		return domMatch || dowMatch
	}
	return domMatch && dowMatch
}

// Matches reports whether the schedule fires at t. Sub-second precision
// is ignored. t is converted to the schedule's location when it has one.
func (s *Schedule) Matches(t time.Time) bool {
	if s.location != nil {
		t = t.In(s.location)
	}
	return s.matchesWall(t)
}

// matchesWall checks the wall-clock fields of t as they read.
func (s *Schedule) matchesWall(t time.Time) bool {
	year, month, day := t.Date()
	empty := Calendar{}
	return s.fields[Month].Matches(int(month), empty) &&
		s.dayMatches(year, month, day) &&
		s.fields[Hour].Matches(t.Hour(), empty) &&
		s.fields[Minute].Matches(t.Minute(), empty) &&
		s.fields[Second].Matches(t.Second(), empty)
}

// Direction selects which way a query searches.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Query describes an occurrence search.
type Query struct {
	// From is the reference time. It is never itself returned.
	From time.Time

	// Count is the number of occurrences wanted. Must be positive.
	Count int

	Direction Direction

	// Horizon bounds each step of the search in years. Zero means
	// DefaultHorizon.
	Horizon int

	// Budget caps the total number of cursor steps across the whole
	// query. Zero means no cap beyond the horizon.
	Budget int
}

// Next returns the first occurrence strictly after t.
func (s *Schedule) Next(t time.Time) (time.Time, error) {
	return s.first(t, Forward)
}

// Prev returns the last occurrence strictly before t.
func (s *Schedule) Prev(t time.Time) (time.Time, error) {
	return s.first(t, Backward)
}

func (s *Schedule) first(t time.Time, direction Direction) (time.Time, error) {
	occurrences, err := s.Occurrences(context.Background(), Query{From: t, Count: 1, Direction: direction})
	if err != nil {
		return time.Time{}, err
	}
	return occurrences[0], nil
}

// NextOccurrences returns count occurrences of schedule from reference
// in the given direction, using the default horizon and no budget.
func NextOccurrences(ctx context.Context, schedule *Schedule, reference time.Time, count int, direction Direction) ([]time.Time, error) {
	if schedule == nil {
		return nil, ErrNilSchedule
	}
	return schedule.Occurrences(ctx, Query{From: reference, Count: count, Direction: direction})
}

// Occurrences runs query against the schedule. Results are in the
// schedule's location, or query.From's location when the schedule has
// none, and are strictly monotonic in the query direction.
//
// On failure the occurrences found before the failure are returned
// together with a *SchedulingError.
func (s *Schedule) Occurrences(ctx context.Context, query Query) ([]time.Time, error) {
	if s == nil {
		return nil, ErrNilSchedule
	}
	if query.Count <= 0 {
		return nil, fmt.Errorf("cron: count must be positive, got %d", query.Count)
	}
	if query.Horizon < 0 {
		return nil, fmt.Errorf("cron: horizon must not be negative, got %d", query.Horizon)
	}
	if query.Budget < 0 {
		return nil, fmt.Errorf("cron: budget must not be negative, got %d", query.Budget)
	}

	location := s.location
	if location == nil {
		location = query.From.Location()
	}
	search := &search{
		schedule:  s,
		location:  location,
		direction: query.Direction,
		horizon:   query.Horizon,
		budget:    query.Budget,
	}
	if search.horizon == 0 {
		search.horizon = DefaultHorizon
	}

	results := make([]time.Time, 0, query.Count)
	previous := query.From.In(location)
	for len(results) < query.Count {
		occurrence, err := search.find(ctx, previous)
		if err != nil {
			if schedulingErr, ok := err.(*SchedulingError); ok {
				schedulingErr.Found = len(results)
			}
			return results, err
		}
		results = append(results, occurrence)
		previous = occurrence
	}
	return results, nil
}

// search holds the state of one query. Not safe for concurrent use;
// each Occurrences call builds its own.
type search struct {
	schedule  *Schedule
	location  *time.Location
	direction Direction
	horizon   int
	budget    int
	steps     int
}

// wall returns t's wall-clock reading in UTC, which serves as a plain
// calendar with no zone transitions.
func wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func date(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}

// resolve converts a wall-clock cursor to the earliest instant in
// location with that reading. It reports false when the reading does
// not exist there.
func resolve(cursor time.Time, location *time.Location) (time.Time, bool) {
	instant := time.Date(cursor.Year(), cursor.Month(), cursor.Day(),
		cursor.Hour(), cursor.Minute(), cursor.Second(), cursor.Nanosecond(), location)
	if !wall(instant).Equal(cursor) {
		return instant, false
	}
	// Inside a repeated span time.Date may return either reading.
	if start, _ := instant.ZoneBounds(); !start.IsZero() {
		_, offset := instant.Zone()
		_, previousOffset := start.Add(-time.Nanosecond).Zone()
		earlier := instant.Add(time.Duration(offset-previousOffset) * time.Second)
		if earlier.Before(instant) && wall(earlier).Equal(cursor) {
			return earlier, true
		}
	}
	return instant, true
}

func (s *search) step(ctx context.Context, from time.Time) error {
	if s.steps%contextCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return &SchedulingError{
				Kind:       KindCanceled,
				Expression: s.schedule.expression,
				From:       from,
				Horizon:    s.horizon,
				Budget:     s.budget,
				Err:        err,
			}
		}
	}
	if s.budget > 0 && s.steps >= s.budget {
		return &SchedulingError{
			Kind:       KindBudgetExhausted,
			Expression: s.schedule.expression,
			From:       from,
			Horizon:    s.horizon,
			Budget:     s.budget,
		}
	}
	s.steps++
	return nil
}

func (s *search) unsatisfiable(from time.Time) error {
	return &SchedulingError{
		Kind:       KindUnsatisfiable,
		Expression: s.schedule.expression,
		From:       from,
		Horizon:    s.horizon,
		Budget:     s.budget,
	}
}

// find returns the first occurrence strictly beyond from in the search
// direction.
func (s *search) find(ctx context.Context, from time.Time) (time.Time, error) {
	unit := s.schedule.resolution()
	start := wall(from)
	if s.direction == Backward {
		// from may be the later reading of a repeated wall-clock span
		// (DST fall-back). Every first reading in that span precedes
		// it, so the backward walk starts above the span.
		if probe, _ := resolve(start, s.location); probe.Before(from) {
			start = start.Add(from.Sub(probe))
		}
	}
	truncated := start.Truncate(unit)

	var cursor, limit time.Time
	if s.direction == Backward {
		cursor = truncated
		if truncated.Equal(start) {
			cursor = truncated.Add(-unit)
		}
		limit = start.AddDate(-s.horizon, 0, 0)
	} else {
		cursor = truncated.Add(unit)
		limit = start.AddDate(s.horizon, 0, 0)
	}

	for {
		if err := s.step(ctx, from); err != nil {
			return time.Time{}, err
		}

		var matched bool
		if s.direction == Backward {
			if cursor.Before(limit) {
				return time.Time{}, s.unsatisfiable(from)
			}
			cursor, matched = s.retreat(cursor)
		} else {
			if cursor.After(limit) {
				return time.Time{}, s.unsatisfiable(from)
			}
			cursor, matched = s.advance(cursor)
		}
		if !matched {
			continue
		}

		instant, exists := resolve(cursor, s.location)
		beyond := instant.After(from)
		if s.direction == Backward {
			beyond = instant.Before(from)
		}
		if exists && beyond {
			if !s.schedule.matchesWall(instant) {
				panic(fmt.Sprintf("cron: internal invariant violated: %q produced non-matching occurrence %s",
					s.schedule.expression, instant.Format(time.RFC3339)))
			}
			return instant, nil
		}

		if s.direction == Backward {
			cursor = cursor.Add(-unit)
		} else {
			cursor = cursor.Add(unit)
		}
	}
}

// advance moves cursor forward to the next value of the most
// significant mismatching field, resetting less significant fields to
// their minimum. matched is true when cursor already satisfies every
// field.
func (s *search) advance(cursor time.Time) (time.Time, bool) {
	fields := &s.schedule.fields
	year, month, day := cursor.Date()
	hour, minute, second := cursor.Clock()

	if !fields[Month].values.has(int(month)) {
		if next, ok := fields[Month].values.next(int(month) + 1); ok {
			return date(year, time.Month(next), 1, 0, 0, 0), false
		}
		return date(year+1, time.January, 1, 0, 0, 0), false
	}

	if !s.schedule.dayMatches(year, month, day) {
		last := daysIn(year, month)
		for candidate := day + 1; candidate <= last; candidate++ {
			if s.schedule.dayMatches(year, month, candidate) {
				return date(year, month, candidate, 0, 0, 0), false
			}
		}
		return date(year, month+1, 1, 0, 0, 0), false
	}

	if !fields[Hour].values.has(hour) {
		if next, ok := fields[Hour].values.next(hour + 1); ok {
			return date(year, month, day, next, 0, 0), false
		}
		return date(year, month, day+1, 0, 0, 0), false
	}

	if !fields[Minute].values.has(minute) {
		if next, ok := fields[Minute].values.next(minute + 1); ok {
			return date(year, month, day, hour, next, 0), false
		}
		return date(year, month, day, hour+1, 0, 0), false
	}

	if !fields[Second].values.has(second) {
		if next, ok := fields[Second].values.next(second + 1); ok {
			return date(year, month, day, hour, minute, next), false
		}
		return date(year, month, day, hour, minute+1, 0), false
	}

	return cursor, true
}

// retreat mirrors advance backward, resetting less significant fields
// to their maximum.
func (s *search) retreat(cursor time.Time) (time.Time, bool) {
	fields := &s.schedule.fields
	year, month, day := cursor.Date()
	hour, minute, second := cursor.Clock()

	if !fields[Month].values.has(int(month)) {
		if previous, ok := fields[Month].values.prev(int(month) - 1); ok {
			previousMonth := time.Month(previous)
			return date(year, previousMonth, daysIn(year, previousMonth), 23, 59, 59), false
		}
		return date(year-1, time.December, 31, 23, 59, 59), false
	}

	if !s.schedule.dayMatches(year, month, day) {
		for candidate := day - 1; candidate >= 1; candidate-- {
			if s.schedule.dayMatches(year, month, candidate) {
				return date(year, month, candidate, 23, 59, 59), false
			}
		}
		// Day 0 normalizes to the last day of the previous month.
		return date(year, month, 0, 23, 59, 59), false
	}

	if !fields[Hour].values.has(hour) {
		if previous, ok := fields[Hour].values.prev(hour - 1); ok {
			return date(year, month, day, previous, 59, 59), false
		}
		return date(year, month, day-1, 23, 59, 59), false
	}

	if !fields[Minute].values.has(minute) {
		if previous, ok := fields[Minute].values.prev(minute - 1); ok {
			return date(year, month, day, hour, previous, 59), false
		}
		return date(year, month, day, hour-1, 59, 59), false
	}

	if !fields[Second].values.has(second) {
		if previous, ok := fields[Second].values.prev(second - 1); ok {
			return date(year, month, day, hour, minute, previous), false
		}
		return date(year, month, day, hour, minute-1, 59), false
	}

	return cursor, true
}
