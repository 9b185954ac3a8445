// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"math/bits"
	"time"
)

// Field identifies one position in a cron expression.
type Field int

const (
	// NoField marks errors that concern the expression as a whole.
	NoField Field = iota - 1
	Second
	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek

	fieldCount = 6
)

var fieldNames = [fieldCount]string{
	"second", "minute", "hour", "day-of-month", "month", "day-of-week",
}

// fieldBounds are the stored domains. Day-of-week also accepts 7 in the
// expression text, which is folded to 0.
var fieldBounds = [fieldCount][2]int{
	{0, 59}, {0, 59}, {0, 23}, {1, 31}, {1, 12}, {0, 6},
}

func (f Field) String() string {
	if f == NoField {
		return "expression"
	}
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Bounds returns the inclusive domain of values the field stores.
func (f Field) Bounds() (minimum, maximum int) {
	return fieldBounds[f][0], fieldBounds[f][1]
}

// bitset64 uses a uint64 as a compact set of integers 0-63.
type bitset64 uint64

func (b bitset64) has(value int) bool {
	return value >= 0 && value < 64 && b&(1<<uint(value)) != 0
}

func (b *bitset64) set(value int) { *b |= 1 << uint(value) }

// next returns the smallest member >= value.
func (b bitset64) next(value int) (int, bool) {
	if value < 0 {
		value = 0
	}
	if value > 63 {
		return 0, false
	}
	masked := uint64(b) &^ (1<<uint(value) - 1)
	if masked == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(masked), true
}

// prev returns the largest member <= value.
func (b bitset64) prev(value int) (int, bool) {
	if value < 0 {
		return 0, false
	}
	masked := uint64(b)
	if value < 63 {
		masked &= 1<<uint(value+1) - 1
	}
	if masked == 0 {
		return 0, false
	}
	return 63 - bits.LeadingZeros64(masked), true
}

func (b bitset64) values() []int {
	result := make([]int, 0, bits.OnesCount64(uint64(b)))
	for remaining := uint64(b); remaining != 0; remaining &= remaining - 1 {
		result = append(result, bits.TrailingZeros64(remaining))
	}
	return result
}

func rangeBits(low, high int) bitset64 {
	var result bitset64
	for value := low; value <= high; value++ {
		result.set(value)
	}
	return result
}

// Calendar is the month context a day field is evaluated in. Day-of-week
// specials (last weekday, n-th weekday) also need the day.
type Calendar struct {
	Year  int
	Month time.Month
	Day   int
}

func (c Calendar) daysInMonth() int {
	return daysIn(c.Year, c.Month)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func weekdayOf(year int, month time.Month, day int) time.Weekday {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
}

// FieldSpec is the parsed constraint for one field. The zero value
// matches nothing.
type FieldSpec struct {
	field    Field
	values   bitset64
	wildcard bool

	// Day-of-month specials. Bit n of lastOffsets means "n days before
	// the last day" (L is n=0). nearestWeekday holds the days of nW.
	lastOffsets    bitset64
	lastWeekday    bool
	nearestWeekday bitset64

	// Day-of-week specials. lastWeekdays holds the weekdays of nL;
	// bit k-1 of nthWeekdays[n] means the k-th weekday n (n#k).
	lastWeekdays bitset64
	nthWeekdays  [7]uint8
}

// Field returns which field s constrains.
func (s FieldSpec) Field() Field { return s.field }

// Wildcard reports whether the field was written as * or ?. A
// wildcard day field does not participate in the day policy.
func (s FieldSpec) Wildcard() bool { return s.wildcard }

// Values returns the plain allowed values in ascending order, without
// the calendar-dependent specials.
func (s FieldSpec) Values() []int { return s.values.values() }

func (s FieldSpec) hasSpecials() bool {
	if s.lastOffsets != 0 || s.lastWeekday || s.nearestWeekday != 0 || s.lastWeekdays != 0 {
		return true
	}
	for _, mask := range s.nthWeekdays {
		if mask != 0 {
			return true
		}
	}
	return false
}

// Matches reports whether value satisfies s. For DayOfMonth the
// value is the day and calendar supplies the year and month. For
// DayOfWeek the value is the weekday (0 = Sunday) and calendar supplies
// the year, month and day. Other fields ignore calendar.
func (s FieldSpec) Matches(value int, calendar Calendar) bool {
	if s.values.has(value) {
		return true
	}
	switch s.field {
	case DayOfMonth:
		return s.matchesDaySpecial(value, calendar)
	case DayOfWeek:
		return s.matchesWeekdaySpecial(value, calendar)
	}
	return false
}

func (s FieldSpec) matchesDaySpecial(day int, calendar Calendar) bool {
	if s.lastOffsets == 0 && !s.lastWeekday && s.nearestWeekday == 0 {
		return false
	}
	last := calendar.daysInMonth()
	if offset := last - day; offset >= 0 && s.lastOffsets.has(offset) {
		return true
	}
	if s.lastWeekday && day == lastWeekdayOfMonth(calendar.Year, calendar.Month, last) {
		return true
	}
	for _, target := range s.nearestWeekday.values() {
		if nearest, ok := nearestWeekday(calendar.Year, calendar.Month, target, last); ok && nearest == day {
			return true
		}
	}
	return false
}

func (s FieldSpec) matchesWeekdaySpecial(weekday int, calendar Calendar) bool {
	if weekday < 0 || weekday > 6 {
		return false
	}
	if s.lastWeekdays.has(weekday) && calendar.Day+7 > calendar.daysInMonth() {
		return true
	}
	if mask := s.nthWeekdays[weekday]; mask != 0 {
		nth := (calendar.Day-1)/7 + 1
		if mask&(1<<uint(nth-1)) != 0 {
			return true
		}
	}
	return false
}

// lastWeekdayOfMonth returns the last Monday-Friday day of the month.
func lastWeekdayOfMonth(year int, month time.Month, last int) int {
	switch weekdayOf(year, month, last) {
	case time.Saturday:
		return last - 1
	case time.Sunday:
		return last - 2
	}
	return last
}

// nearestWeekday returns the Monday-Friday day closest to target
// without leaving the month. A target past the end of the month has no
// match.
func nearestWeekday(year int, month time.Month, target, last int) (int, bool) {
	if target > last {
		return 0, false
	}
	switch weekdayOf(year, month, target) {
	case time.Saturday:
		if target == 1 {
			return 3, true
		}
		return target - 1, true
	case time.Sunday:
		if target == last {
			return target - 2, true
		}
		return target + 1, true
	}
	return target, true
}
