// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"slices"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		expression string
		want       string
	}{
		{"0 9 * JAN-MAR MON-FRI", "0 9 * 1-3 1-5"},
		{"5,1,3 * * * *", "1,3,5 * * * *"},
		{"0 */6 * * *", "0 0,6,12,18 * * *"},
		{"0 0 ? * 7", "0 0 * * 0"},
		{"0 0 L,15W * 5#3", "0 0 L,15W * 5#3"},
		{"0 0 L-2,LW * 5L", "0 0 L-2,LW * 5L"},
		{"@daily", "0 0 * * *"},
		{"CRON_TZ=UTC 0 0 * * *", "CRON_TZ=UTC 0 0 * * *"},
	}
	for _, test := range tests {
		t.Run(test.expression, func(t *testing.T) {
			schedule := mustParse(t, test.expression)
			if got := schedule.Canonical(); got != test.want {
				t.Errorf("Canonical() = %q, want %q", got, test.want)
			}
			reparsed := mustParse(t, schedule.Canonical())
			if reparsed.Canonical() != schedule.Canonical() {
				t.Errorf("canonical form is not stable: %q -> %q", schedule.Canonical(), reparsed.Canonical())
			}
		})
	}
}

func TestDescriptor(t *testing.T) {
	descriptor := mustParse(t, "0 9 * * MON-FRI").Descriptor()
	if descriptor.Expression != "0 9 * * MON-FRI" {
		t.Errorf("Expression = %q", descriptor.Expression)
	}
	if descriptor.Seconds || descriptor.DayPolicy != "or" || descriptor.Location != "" {
		t.Errorf("Seconds, DayPolicy, Location = %v, %q, %q", descriptor.Seconds, descriptor.DayPolicy, descriptor.Location)
	}
	if len(descriptor.Fields) != 5 {
		t.Fatalf("got %d fields, want 5", len(descriptor.Fields))
	}
	weekday := descriptor.Fields[4]
	if weekday.Field != "day-of-week" || weekday.Wildcard {
		t.Errorf("day-of-week descriptor = %+v", weekday)
	}
	if !slices.Equal(weekday.Values, []int{1, 2, 3, 4, 5}) {
		t.Errorf("day-of-week values = %v", weekday.Values)
	}
	if !descriptor.Fields[2].Wildcard {
		t.Error("day-of-month should be a wildcard")
	}

	special := mustParse(t, "0 0 ? * 5#3,1#1").Descriptor()
	want := []NthWeekday{{Weekday: 1, Nth: 1}, {Weekday: 5, Nth: 3}}
	if !slices.Equal(special.Fields[4].NthWeekdays, want) {
		t.Errorf("NthWeekdays = %v, want %v", special.Fields[4].NthWeekdays, want)
	}

	withSeconds, err := NewParser(Standard | Seconds).Parse("30 0 9 * * *")
	if err != nil {
		t.Fatal(err)
	}
	if fields := withSeconds.Descriptor().Fields; len(fields) != 6 || fields[0].Field != "second" {
		t.Errorf("seconds descriptor fields = %+v", fields)
	}
}

func TestFingerprint(t *testing.T) {
	fingerprint := func(expression string) Fingerprint {
		t.Helper()
		result, err := mustParse(t, expression).Fingerprint()
		if err != nil {
			t.Fatalf("Fingerprint(%q): %v", expression, err)
		}
		return result
	}

	equivalent := [][2]string{
		{"0 9 * * MON", "0 9 * * 1"},
		{"@daily", "0 0 * * *"},
		{"0 0 ? * 0", "0 0 * * 7"},
		{"0,30 * * * *", "*/30 * * * *"},
		{"  0 9 * * 1 ", "0 9 * * 1"},
	}
	for _, pair := range equivalent {
		if a, b := fingerprint(pair[0]), fingerprint(pair[1]); a != b {
			t.Errorf("Fingerprint(%q) = %s, Fingerprint(%q) = %s; want equal", pair[0], a, pair[1], b)
		}
	}

	different := [][2]string{
		{"0 9 * * 1", "0 9 * * 2"},
		{"0 0 * * *", "CRON_TZ=UTC 0 0 * * *"},
	}
	for _, pair := range different {
		if a, b := fingerprint(pair[0]), fingerprint(pair[1]); a == b {
			t.Errorf("Fingerprint(%q) == Fingerprint(%q); want different", pair[0], pair[1])
		}
	}

	andSchedule, err := NewParser(Standard | DayAnd).Parse("0 0 13 * 5")
	if err != nil {
		t.Fatal(err)
	}
	andFingerprint, err := andSchedule.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if andFingerprint == fingerprint("0 0 13 * 5") {
		t.Error("day policy should change the fingerprint")
	}

	if got := len(fingerprint("@hourly").String()); got != 64 {
		t.Errorf("fingerprint hex length = %d, want 64", got)
	}
}
