// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/crontest/lib/cron"
)

// pad right-pads a possibly styled string to width display columns.
func pad(text string, width int) string {
	if gap := width - ansi.StringWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

// table renders rows with each column padded to its widest cell.
func table(rows [][]string, indent string) string {
	var widths []int
	for _, row := range rows {
		for index, cell := range row {
			if index >= len(widths) {
				widths = append(widths, 0)
			}
			widths[index] = max(widths[index], ansi.StringWidth(cell))
		}
	}
	var builder strings.Builder
	for _, row := range rows {
		builder.WriteString(indent)
		for index, cell := range row {
			if index == len(row)-1 {
				builder.WriteString(cell)
				break
			}
			builder.WriteString(pad(cell, widths[index]))
			builder.WriteString("  ")
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// formatOffset renders the distance from reference to t as a signed
// compound duration, e.g. "+3d4h", "-15m", "+20s".
func formatOffset(reference, t time.Time) string {
	delta := t.Sub(reference)
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	delta = delta.Truncate(time.Second)
	days := delta / (24 * time.Hour)
	delta -= days * 24 * time.Hour
	hours := delta / time.Hour
	delta -= hours * time.Hour
	minutes := delta / time.Minute
	seconds := (delta - minutes*time.Minute) / time.Second

	var builder strings.Builder
	builder.WriteString(sign)
	for _, part := range []struct {
		value int64
		unit  string
	}{
		{int64(days), "d"}, {int64(hours), "h"}, {int64(minutes), "m"}, {int64(seconds), "s"},
	} {
		if part.value != 0 {
			builder.WriteString(strconv.FormatInt(part.value, 10))
			builder.WriteString(part.unit)
		}
	}
	if builder.Len() == 1 {
		builder.WriteString("0s")
	}
	return builder.String()
}

func (s *Summary) text(styles styles, _ Options) string {
	var builder strings.Builder
	builder.WriteString(table([][]string{
		{styles.label.Render("expression"), styles.heading.Render(s.Expression)},
		{styles.label.Render("canonical"), styles.value.Render(s.Canonical)},
		{styles.label.Render("description"), styles.value.Render(s.Description)},
		{styles.label.Render("day policy"), styles.value.Render(s.Descriptor.DayPolicy)},
		{styles.label.Render("fingerprint"), styles.faint.Render(s.Fingerprint)},
	}, ""))
	if s.Descriptor.Location != "" {
		builder.WriteString(table([][]string{
			{styles.label.Render("location"), styles.value.Render(s.Descriptor.Location)},
		}, ""))
	}

	builder.WriteString(styles.label.Render("fields"))
	builder.WriteByte('\n')
	var rows [][]string
	for _, field := range s.Descriptor.Fields {
		rows = append(rows, []string{styles.label.Render(field.Field), styles.accent.Render(fieldSummary(field))})
	}
	builder.WriteString(table(rows, "  "))
	return builder.String()
}

// fieldSummary renders a field's allowed values compactly.
func fieldSummary(field cron.FieldDescriptor) string {
	if field.Wildcard {
		return "*"
	}
	var terms []string
	if len(field.Values) > 0 {
		values := make([]string, len(field.Values))
		for index, value := range field.Values {
			values[index] = strconv.Itoa(value)
		}
		terms = append(terms, strings.Join(values, " "))
	}
	for _, offset := range field.LastDayOffsets {
		if offset == 0 {
			terms = append(terms, "last day")
		} else {
			terms = append(terms, fmt.Sprintf("last day-%d", offset))
		}
	}
	if field.LastWeekday {
		terms = append(terms, "last weekday")
	}
	for _, day := range field.NearestWeekdays {
		terms = append(terms, fmt.Sprintf("weekday nearest %d", day))
	}
	for _, weekday := range field.LastWeekdays {
		terms = append(terms, "last "+time.Weekday(weekday).String())
	}
	for _, nth := range field.NthWeekdays {
		terms = append(terms, fmt.Sprintf("%s #%d", time.Weekday(nth.Weekday), nth.Nth))
	}
	return strings.Join(terms, ", ")
}

func (o *Occurrences) text(styles styles, options Options) string {
	var builder strings.Builder
	builder.WriteString(styles.heading.Render(o.Expression))
	builder.WriteString("  ")
	builder.WriteString(styles.value.Render(o.Description))
	builder.WriteByte('\n')
	builder.WriteString(styles.faint.Render(fmt.Sprintf("%s from %s", o.Direction, o.From.Format(options.layout()))))
	builder.WriteByte('\n')

	rows := make([][]string, 0, len(o.Occurrences))
	for index, occurrence := range o.Occurrences {
		rows = append(rows, []string{
			styles.label.Render(strconv.Itoa(index + 1)),
			styles.value.Render(occurrence.Format(options.layout())),
			styles.faint.Render(occurrence.Weekday().String()),
			styles.accent.Render(formatOffset(o.From, occurrence)),
		})
	}
	builder.WriteString(table(rows, "  "))
	if o.Error != nil {
		builder.WriteString(styles.failure.Render("error: " + o.Error.Message))
		builder.WriteByte('\n')
	}
	return builder.String()
}

func (m *Match) text(styles styles, options Options) string {
	verdict := styles.failure.Render("no match")
	if m.Matches {
		verdict = styles.accent.Render("match")
	}
	rows := [][]string{
		{styles.label.Render("expression"), styles.heading.Render(m.Expression)},
		{styles.label.Render("at"), styles.value.Render(m.At.Format(options.layout()))},
		{styles.label.Render("result"), verdict},
	}
	if m.Previous != nil {
		rows = append(rows, []string{styles.label.Render("previous"),
			styles.faint.Render(m.Previous.Format(options.layout()) + " (" + formatOffset(m.At, *m.Previous) + ")")})
	}
	if m.Next != nil {
		rows = append(rows, []string{styles.label.Render("next"),
			styles.faint.Render(m.Next.Format(options.layout()) + " (" + formatOffset(m.At, *m.Next) + ")")})
	}
	return table(rows, "")
}

func (e *Explanation) text(styles styles, _ Options) string {
	return styles.value.Render(e.Description) + "\n"
}

func (f *Failure) text(styles styles, _ Options) string {
	var builder strings.Builder
	builder.WriteString(styles.failure.Render("error: " + f.Diagnostic.Message))
	builder.WriteByte('\n')
	if f.Diagnostic.Field != "" {
		builder.WriteString(table([][]string{
			{styles.label.Render("field"), styles.value.Render(fmt.Sprintf("%s (position %d)", f.Diagnostic.Field, f.Diagnostic.Position))},
			{styles.label.Render("token"), styles.accent.Render(f.Diagnostic.Token)},
			{styles.label.Render("code"), styles.faint.Render(string(f.Diagnostic.Code))},
		}, "  "))
	} else {
		builder.WriteString(table([][]string{
			{styles.label.Render("code"), styles.faint.Render(string(f.Diagnostic.Code))},
		}, "  "))
	}
	return builder.String()
}

func (f *Fired) text(styles styles, options Options) string {
	return table([][]string{{
		styles.label.Render(strconv.Itoa(f.Sequence)),
		styles.value.Render(f.Occurrence.Format(options.layout())),
		styles.faint.Render(f.Occurrence.Weekday().String()),
	}}, "")
}

func (b *Build) text(styles styles, _ Options) string {
	return styles.heading.Render("crontest "+b.Version) +
		styles.faint.Render(fmt.Sprintf(" (%s, %s)", b.Revision(), b.BuildTime)) + "\n" +
		table([][]string{
			{styles.label.Render("Go"), styles.value.Render(b.Go)},
			{styles.label.Render("Platform"), styles.value.Render(b.Platform)},
		}, "  ")
}
