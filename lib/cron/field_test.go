// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"slices"
	"testing"
	"time"
)

func TestBitsetNextPrev(t *testing.T) {
	var set bitset64
	for _, value := range []int{0, 5, 17, 59} {
		set.set(value)
	}

	tests := []struct {
		value    int
		next     int
		nextOK   bool
		previous int
		prevOK   bool
	}{
		{0, 0, true, 0, true},
		{1, 5, true, 0, true},
		{5, 5, true, 5, true},
		{18, 59, true, 17, true},
		{60, 0, false, 59, true},
		{-1, 0, true, 0, false},
	}
	for _, test := range tests {
		next, ok := set.next(test.value)
		if ok != test.nextOK || (ok && next != test.next) {
			t.Errorf("next(%d) = %d, %v; want %d, %v", test.value, next, ok, test.next, test.nextOK)
		}
		previous, ok := set.prev(test.value)
		if ok != test.prevOK || (ok && previous != test.previous) {
			t.Errorf("prev(%d) = %d, %v; want %d, %v", test.value, previous, ok, test.previous, test.prevOK)
		}
	}

	if got := set.values(); !slices.Equal(got, []int{0, 5, 17, 59}) {
		t.Errorf("values() = %v", got)
	}
}

func TestBitsetHighBit(t *testing.T) {
	var set bitset64
	set.set(63)
	if next, ok := set.next(10); !ok || next != 63 {
		t.Errorf("next(10) = %d, %v; want 63, true", next, ok)
	}
	if previous, ok := set.prev(63); !ok || previous != 63 {
		t.Errorf("prev(63) = %d, %v; want 63, true", previous, ok)
	}
	if set.has(64) {
		t.Error("has(64) should be false")
	}
}

func TestFieldNames(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{NoField, "expression"},
		{Second, "second"},
		{Minute, "minute"},
		{Hour, "hour"},
		{DayOfMonth, "day-of-month"},
		{Month, "month"},
		{DayOfWeek, "day-of-week"},
		{Field(42), "Field(42)"},
	}
	for _, test := range tests {
		if got := test.field.String(); got != test.want {
			t.Errorf("Field(%d).String() = %q, want %q", int(test.field), got, test.want)
		}
	}
}

func TestLastWeekdayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.August, 30},   // the 31st is a Saturday
		{2024, time.March, 29},    // the 31st is a Sunday
		{2024, time.May, 31},      // the 31st is a Friday
		{2024, time.February, 29}, // leap day Thursday
	}
	for _, test := range tests {
		got := lastWeekdayOfMonth(test.year, test.month, daysIn(test.year, test.month))
		if got != test.want {
			t.Errorf("lastWeekdayOfMonth(%d, %v) = %d, want %d", test.year, test.month, got, test.want)
		}
	}
}

func TestNearestWeekday(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		month  time.Month
		target int
		want   int
		ok     bool
	}{
		{"weekday_itself", 2024, time.September, 13, 13, true},
		{"saturday_moves_back", 2024, time.June, 15, 14, true},
		{"sunday_moves_forward", 2024, time.September, 15, 16, true},
		{"saturday_first_moves_forward", 2024, time.June, 1, 3, true},
		{"sunday_last_moves_back", 2024, time.March, 31, 29, true},
		{"past_month_end", 2024, time.February, 30, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := nearestWeekday(test.year, test.month, test.target, daysIn(test.year, test.month))
			if ok != test.ok || got != test.want {
				t.Errorf("nearestWeekday = %d, %v; want %d, %v", got, ok, test.want, test.ok)
			}
		})
	}
}

func TestFieldSpecMatchesSpecials(t *testing.T) {
	parser := NewParser(Standard)

	tests := []struct {
		name     string
		field    Field
		text     string
		value    int
		calendar Calendar
		want     bool
	}{
		{"last_day_leap", DayOfMonth, "L", 29, Calendar{2024, time.February, 29}, true},
		{"last_day_not_leap", DayOfMonth, "L", 28, Calendar{2023, time.February, 28}, true},
		{"last_day_wrong", DayOfMonth, "L", 30, Calendar{2024, time.January, 30}, false},
		{"last_minus_two", DayOfMonth, "L-2", 28, Calendar{2024, time.January, 28}, false},
		{"last_minus_two_hit", DayOfMonth, "L-2", 29, Calendar{2024, time.January, 29}, true},
		{"last_weekday", DayOfMonth, "LW", 30, Calendar{2024, time.August, 30}, true},
		{"nearest_weekday", DayOfMonth, "15W", 14, Calendar{2024, time.June, 14}, true},
		{"plain_value", DayOfMonth, "15", 15, Calendar{2024, time.June, 15}, true},
		{"last_friday", DayOfWeek, "5L", 5, Calendar{2024, time.May, 31}, true},
		{"not_last_friday", DayOfWeek, "5L", 5, Calendar{2024, time.May, 24}, false},
		{"third_friday", DayOfWeek, "5#3", 5, Calendar{2024, time.September, 20}, true},
		{"second_friday", DayOfWeek, "5#3", 5, Calendar{2024, time.September, 13}, false},
		{"fifth_friday", DayOfWeek, "FRI#5", 5, Calendar{2024, time.May, 31}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			spec, err := parser.parseField(test.field, 1, test.text)
			if err != nil {
				t.Fatalf("parseField(%q): %v", test.text, err)
			}
			if got := spec.Matches(test.value, test.calendar); got != test.want {
				t.Errorf("Matches(%d, %+v) = %v, want %v", test.value, test.calendar, got, test.want)
			}
		})
	}
}
