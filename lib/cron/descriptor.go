// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/crontest/lib/codec"
)

// Descriptor is a plain-data view of a Schedule, suitable for JSON,
// YAML and CBOR output.
type Descriptor struct {
	Expression string            `json:"expression" yaml:"expression"`
	Canonical  string            `json:"canonical" yaml:"canonical"`
	Seconds    bool              `json:"seconds" yaml:"seconds"`
	DayPolicy  string            `json:"day_policy" yaml:"day_policy"`
	Location   string            `json:"location,omitempty" yaml:"location,omitempty"`
	Fields     []FieldDescriptor `json:"fields" yaml:"fields"`
}

// FieldDescriptor describes one FieldSpec.
type FieldDescriptor struct {
	Field           string       `json:"field" yaml:"field"`
	Wildcard        bool         `json:"wildcard" yaml:"wildcard"`
	Values          []int        `json:"values,omitempty" yaml:"values,omitempty"`
	LastDayOffsets  []int        `json:"last_day_offsets,omitempty" yaml:"last_day_offsets,omitempty"`
	LastWeekday     bool         `json:"last_weekday,omitempty" yaml:"last_weekday,omitempty"`
	NearestWeekdays []int        `json:"nearest_weekdays,omitempty" yaml:"nearest_weekdays,omitempty"`
	LastWeekdays    []int        `json:"last_weekdays,omitempty" yaml:"last_weekdays,omitempty"`
	NthWeekdays     []NthWeekday `json:"nth_weekdays,omitempty" yaml:"nth_weekdays,omitempty"`
}

// NthWeekday is one n#k term: the Nth occurrence of Weekday in a month.
type NthWeekday struct {
	Weekday int `json:"weekday" yaml:"weekday"`
	Nth     int `json:"nth" yaml:"nth"`
}

// Fingerprint is a BLAKE3-256 digest of a descriptor's semantic
// content.
type Fingerprint [32]byte

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// Descriptor exports the schedule. Fields are listed in expression
// order; the seconds field is included only when the expression has
// one.
func (s *Schedule) Descriptor() Descriptor {
	descriptor := Descriptor{
		Expression: s.expression,
		Canonical:  s.Canonical(),
		Seconds:    s.seconds,
		DayPolicy:  s.policy.String(),
	}
	if s.location != nil {
		descriptor.Location = s.location.String()
	}
	for _, field := range s.layout() {
		spec := s.fields[field]
		entry := FieldDescriptor{
			Field:           field.String(),
			Wildcard:        spec.wildcard,
			Values:          spec.values.values(),
			LastDayOffsets:  spec.lastOffsets.values(),
			LastWeekday:     spec.lastWeekday,
			NearestWeekdays: spec.nearestWeekday.values(),
			LastWeekdays:    spec.lastWeekdays.values(),
		}
		for weekday, mask := range spec.nthWeekdays {
			for nth := 1; nth <= 5; nth++ {
				if mask&(1<<uint(nth-1)) != 0 {
					entry.NthWeekdays = append(entry.NthWeekdays, NthWeekday{Weekday: weekday, Nth: nth})
				}
			}
		}
		descriptor.Fields = append(descriptor.Fields, entry)
	}
	return descriptor
}

// Fingerprint hashes the deterministic CBOR encoding of the descriptor
// with Expression cleared, so spellings with the same meaning ("MON"
// and "1", "@daily" and "0 0 * * *") share a fingerprint.
func (d Descriptor) Fingerprint() (Fingerprint, error) {
	d.Expression = ""
	data, err := codec.Marshal(d)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("cron: encoding descriptor: %w", err)
	}
	return Fingerprint(blake3.Sum256(data)), nil
}

// Fingerprint is shorthand for s.Descriptor().Fingerprint().
func (s *Schedule) Fingerprint() (Fingerprint, error) {
	return s.Descriptor().Fingerprint()
}

func (s *Schedule) layout() []Field {
	if s.seconds {
		return []Field{Second, Minute, Hour, DayOfMonth, Month, DayOfWeek}
	}
	return []Field{Minute, Hour, DayOfMonth, Month, DayOfWeek}
}

// Canonical returns a normalized expression with the same meaning:
// names and macros expanded, lists sorted and runs collapsed to ranges.
// Parsing the canonical form with the same capabilities yields an
// equivalent schedule.
func (s *Schedule) Canonical() string {
	var builder strings.Builder
	if s.location != nil {
		builder.WriteString("CRON_TZ=")
		builder.WriteString(s.location.String())
		builder.WriteByte(' ')
	}
	for index, field := range s.layout() {
		if index > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(s.fields[field].canonical())
	}
	return builder.String()
}

func (s FieldSpec) canonical() string {
	if s.wildcard {
		return "*"
	}
	terms := compressRuns(s.values.values())
	for _, offset := range s.lastOffsets.values() {
		if offset == 0 {
			terms = append(terms, "L")
		} else {
			terms = append(terms, "L-"+strconv.Itoa(offset))
		}
	}
	if s.lastWeekday {
		terms = append(terms, "LW")
	}
	for _, day := range s.nearestWeekday.values() {
		terms = append(terms, strconv.Itoa(day)+"W")
	}
	for _, weekday := range s.lastWeekdays.values() {
		terms = append(terms, strconv.Itoa(weekday)+"L")
	}
	for weekday, mask := range s.nthWeekdays {
		for nth := 1; nth <= 5; nth++ {
			if mask&(1<<uint(nth-1)) != 0 {
				terms = append(terms, strconv.Itoa(weekday)+"#"+strconv.Itoa(nth))
			}
		}
	}
	return strings.Join(terms, ",")
}

// compressRuns renders sorted values as terms, collapsing runs of three
// or more consecutive values into a range.
func compressRuns(values []int) []string {
	var terms []string
	for start := 0; start < len(values); {
		end := start
		for end+1 < len(values) && values[end+1] == values[end]+1 {
			end++
		}
		switch {
		case end-start >= 2:
			terms = append(terms, strconv.Itoa(values[start])+"-"+strconv.Itoa(values[end]))
		default:
			for index := start; index <= end; index++ {
				terms = append(terms, strconv.Itoa(values[index]))
			}
		}
		start = end + 1
	}
	return terms
}
