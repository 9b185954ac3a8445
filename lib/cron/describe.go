// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ordinals = [...]string{"", "first", "second", "third", "fourth", "fifth"}

// Describe renders the schedule in English, e.g. "At 00:00, on day 1
// of the month, in January".
func (s *Schedule) Describe() string {
	parts := []string{s.describeTime()}
	if days := s.describeDays(); days != "" {
		parts = append(parts, days)
	}
	if months := s.fields[Month]; !months.wildcard {
		parts = append(parts, "in "+joinWords(months.values.values(), monthName))
	}
	text := strings.Join(parts, ", ")
	if s.location != nil {
		text += " (" + s.location.String() + ")"
	}
	return text
}

func (s *Schedule) describeTime() string {
	second, minute, hour := s.fields[Second], s.fields[Minute], s.fields[Hour]
	hourValue, hourSingle := single(hour)
	minuteValue, minuteSingle := single(minute)
	secondValue, secondSingle := single(second)
	if hourSingle && minuteSingle {
		if !s.seconds {
			return fmt.Sprintf("At %02d:%02d", hourValue, minuteValue)
		}
		if secondSingle {
			return fmt.Sprintf("At %02d:%02d:%02d", hourValue, minuteValue, secondValue)
		}
	}

	var words []string
	if s.seconds {
		if second.wildcard {
			words = append(words, "every second")
		} else {
			words = append(words, "at "+unit("second", second)+" "+joinWords(second.values.values(), strconv.Itoa))
		}
	}
	switch {
	case !minute.wildcard:
		words = append(words, "at "+unit("minute", minute)+" "+joinWords(minute.values.values(), strconv.Itoa))
	case !s.seconds:
		words = append(words, "every minute")
	case !second.wildcard:
		words = append(words, "of every minute")
	}
	if !hour.wildcard {
		words = append(words, "past "+unit("hour", hour)+" "+joinWords(hour.values.values(), strconv.Itoa))
	}
	return capitalize(strings.Join(words, " "))
}

func (s *Schedule) describeDays() string {
	dayOfMonth, dayOfWeek := s.fields[DayOfMonth], s.fields[DayOfWeek]
	var phrases []string
	if !dayOfMonth.wildcard {
		phrases = append(phrases, describeDayOfMonth(dayOfMonth))
	}
	if !dayOfWeek.wildcard {
		phrases = append(phrases, describeDayOfWeek(dayOfWeek))
	}
	joiner := " or "
	if s.policy == DayPolicyAnd {
		joiner = " and "
	}
	return strings.Join(phrases, joiner)
}

func describeDayOfMonth(spec FieldSpec) string {
	var alternatives []string
	if values := spec.values.values(); len(values) > 0 {
		alternatives = append(alternatives, "on "+unit("day", spec)+" "+joinWords(values, strconv.Itoa)+" of the month")
	}
	for _, offset := range spec.lastOffsets.values() {
		switch offset {
		case 0:
			alternatives = append(alternatives, "on the last day of the month")
		case 1:
			alternatives = append(alternatives, "1 day before the last day of the month")
		default:
			alternatives = append(alternatives, strconv.Itoa(offset)+" days before the last day of the month")
		}
	}
	if spec.lastWeekday {
		alternatives = append(alternatives, "on the last weekday of the month")
	}
	for _, day := range spec.nearestWeekday.values() {
		alternatives = append(alternatives, "on the weekday nearest day "+strconv.Itoa(day))
	}
	return strings.Join(alternatives, " or ")
}

func describeDayOfWeek(spec FieldSpec) string {
	var alternatives []string
	if values := spec.values.values(); len(values) > 0 {
		alternatives = append(alternatives, "on "+joinWords(values, weekdayName))
	}
	for _, weekday := range spec.lastWeekdays.values() {
		alternatives = append(alternatives, "on the last "+weekdayName(weekday)+" of the month")
	}
	for weekday, mask := range spec.nthWeekdays {
		for nth := 1; nth <= 5; nth++ {
			if mask&(1<<uint(nth-1)) != 0 {
				alternatives = append(alternatives,
					"on the "+ordinals[nth]+" "+weekdayName(weekday)+" of the month")
			}
		}
	}
	return strings.Join(alternatives, " or ")
}

func single(spec FieldSpec) (int, bool) {
	if spec.wildcard || spec.hasSpecials() {
		return 0, false
	}
	values := spec.values.values()
	if len(values) != 1 {
		return 0, false
	}
	return values[0], true
}

func unit(noun string, spec FieldSpec) string {
	if len(spec.values.values()) == 1 {
		return noun
	}
	return noun + "s"
}

func monthName(value int) string { return time.Month(value).String() }

func weekdayName(value int) string { return time.Weekday(value).String() }

// joinWords renders values as "a, b and c", collapsing runs of three
// or more into "x through y".
func joinWords(values []int, name func(int) string) string {
	var items []string
	for start := 0; start < len(values); {
		end := start
		for end+1 < len(values) && values[end+1] == values[end]+1 {
			end++
		}
		if end-start >= 2 {
			items = append(items, name(values[start])+" through "+name(values[end]))
		} else {
			for index := start; index <= end; index++ {
				items = append(items, name(values[index]))
			}
		}
		start = end + 1
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
