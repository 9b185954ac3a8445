// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"strconv"
	"strings"
	"time"
)

// Options are parser capability flags.
type Options uint

const (
	// Seconds requires a leading seconds field (6 fields).
	Seconds Options = 1 << iota
	// SecondsOptional accepts 5 fields, or 6 with a leading seconds
	// field. Ignored when Seconds is set.
	SecondsOptional
	// Names enables JAN-DEC and SUN-SAT.
	Names
	// Macros enables @yearly, @monthly and friends.
	Macros
	// Extensions enables ?, L, W and # in the day fields.
	Extensions
	// DayAnd requires both day-of-month and day-of-week to match when
	// both are restricted, instead of either.
	DayAnd
)

// Standard is the capability set used by [Parse].
const Standard = Names | Macros | Extensions

// Parser parses expressions with a fixed set of capabilities. The zero
// value accepts plain numeric 5-field expressions.
type Parser struct {
	options Options
}

// NewParser returns a parser with the given capabilities.
func NewParser(options Options) Parser {
	return Parser{options: options}
}

// Options returns the parser's capabilities.
func (p Parser) Options() Options { return p.options }

func (p Parser) has(option Options) bool { return p.options&option != 0 }

// Parse parses expression with the [Standard] capabilities.
func Parse(expression string) (*Schedule, error) {
	return NewParser(Standard).Parse(expression)
}

// MustParse is like Parse but panics on error. For expressions known
// at compile time.
func MustParse(expression string) *Schedule {
	schedule, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	return schedule
}

var macros = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
}

var monthNames = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

var weekdayNames = map[string]int{
	"SUN": 0, "MON": 1, "TUE": 2, "WED": 3, "THU": 4, "FRI": 5, "SAT": 6,
}

// Parse parses expression into a Schedule. All failures are
// *ParseError.
func (p Parser) Parse(expression string) (*Schedule, error) {
	text := strings.TrimSpace(expression)

	location, text, err := parseLocation(text)
	if err != nil {
		return nil, err
	}

	if text == "" {
		return nil, &ParseError{Field: NoField, Reason: "empty expression", Err: ErrFieldCount}
	}

	seconds := p.has(Seconds)
	if strings.HasPrefix(text, "@") {
		if !p.has(Macros) {
			return nil, &ParseError{Field: NoField, Token: text, Reason: "macros are not enabled", Err: ErrUnsupported}
		}
		expanded, ok := macros[strings.ToLower(text)]
		if !ok {
			return nil, &ParseError{Field: NoField, Token: text, Reason: "unknown macro", Err: ErrSyntax}
		}
		text = expanded
		if seconds {
			text = "0 " + text
		}
	}

	fields := strings.Fields(text)
	switch {
	case seconds:
		if len(fields) != 6 {
			return nil, fieldCountError(text, len(fields), "6")
		}
	case p.has(SecondsOptional):
		switch len(fields) {
		case 5:
		case 6:
			seconds = true
		default:
			return nil, fieldCountError(text, len(fields), "5 or 6")
		}
	default:
		if len(fields) != 5 {
			return nil, fieldCountError(text, len(fields), "5")
		}
	}

	layout := []Field{Minute, Hour, DayOfMonth, Month, DayOfWeek}
	if seconds {
		layout = append([]Field{Second}, layout...)
	}

	schedule := &Schedule{
		expression: strings.TrimSpace(expression),
		seconds:    seconds,
		location:   location,
	}
	if p.has(DayAnd) {
		schedule.policy = DayPolicyAnd
	}
	if !seconds {
		schedule.fields[Second] = FieldSpec{field: Second, values: 1}
	}
	for index, field := range layout {
		spec, err := p.parseField(field, index+1, fields[index])
		if err != nil {
			return nil, err
		}
		schedule.fields[field] = spec
	}
	return schedule, nil
}

func fieldCountError(text string, got int, want string) error {
	return &ParseError{
		Field:  NoField,
		Token:  text,
		Reason: "expected " + want + " fields, got " + strconv.Itoa(got),
		Err:    ErrFieldCount,
	}
}

// parseLocation strips a CRON_TZ= or TZ= prefix.
func parseLocation(text string) (*time.Location, string, error) {
	var zone string
	switch {
	case strings.HasPrefix(text, "CRON_TZ="):
		zone = strings.TrimPrefix(text, "CRON_TZ=")
	case strings.HasPrefix(text, "TZ="):
		zone = strings.TrimPrefix(text, "TZ=")
	default:
		return nil, text, nil
	}
	rest := ""
	if index := strings.IndexAny(zone, " \t"); index >= 0 {
		zone, rest = zone[:index], strings.TrimSpace(zone[index:])
	}
	if zone == "" {
		return nil, "", &ParseError{Field: NoField, Reason: "empty time zone", Err: ErrSyntax}
	}
	location, err := time.LoadLocation(zone)
	if err != nil {
		return nil, "", &ParseError{Field: NoField, Token: zone, Reason: "unknown time zone", Err: ErrSyntax}
	}
	return location, rest, nil
}

// parseField parses one field's comma-separated terms.
func (p Parser) parseField(field Field, position int, text string) (FieldSpec, error) {
	spec := FieldSpec{field: field}
	terms := strings.Split(text, ",")
	for _, term := range terms {
		if term == "?" && len(terms) > 1 {
			return FieldSpec{}, &ParseError{
				Field: field, Position: position, Token: text,
				Reason: "? cannot appear in a list", Err: ErrSyntax,
			}
		}
		if term == "" {
			return FieldSpec{}, &ParseError{
				Field: field, Position: position, Token: text,
				Reason: "empty list term", Err: ErrSyntax,
			}
		}
		if err := p.parseTerm(&spec, term); err != nil {
			if parseErr, ok := err.(*ParseError); ok {
				parseErr.Field = field
				parseErr.Position = position
				if parseErr.Token == "" {
					parseErr.Token = term
				}
			}
			return FieldSpec{}, err
		}
	}
	return spec, nil
}

// termError builds a ParseError whose field and position are filled in
// by parseField.
func termError(category error, reason string) error {
	return &ParseError{Reason: reason, Err: category}
}

// parseTerm parses a single term: *, ?, V, V-V, */N, V/N, V-V/N or a
// day special, and merges it into spec.
func (p Parser) parseTerm(spec *FieldSpec, term string) error {
	field := spec.field
	minimum, maximum := field.Bounds()
	parseMaximum := maximum
	if field == DayOfWeek {
		parseMaximum = 7
	}

	if field == DayOfMonth || field == DayOfWeek {
		handled, err := p.parseDaySpecial(spec, term)
		if handled || err != nil {
			return err
		}
	}

	rangeExpression, stepText, hasStep := strings.Cut(term, "/")
	step := 1
	if hasStep {
		parsed, err := strconv.Atoi(stepText)
		if err != nil || !isDigits(stepText) {
			return termError(ErrStep, "invalid step "+strconv.Quote(stepText))
		}
		if parsed <= 0 {
			return termError(ErrStep, "step must be positive, got "+strconv.Itoa(parsed))
		}
		if parsed > maximum-minimum+1 {
			return termError(ErrStep, "step "+strconv.Itoa(parsed)+" exceeds field span "+strconv.Itoa(maximum-minimum+1))
		}
		step = parsed
	}

	var rangeStart, rangeEnd int
	switch {
	case rangeExpression == "*":
		rangeStart, rangeEnd = minimum, maximum
		if step == 1 {
			spec.wildcard = true
		}
	case strings.Contains(rangeExpression, "-"):
		startText, endText, _ := strings.Cut(rangeExpression, "-")
		var err error
		if rangeStart, err = p.parseValue(field, startText, minimum, parseMaximum); err != nil {
			return err
		}
		if rangeEnd, err = p.parseValue(field, endText, minimum, parseMaximum); err != nil {
			return err
		}
		if rangeStart > rangeEnd {
			return termError(ErrRangeOrder, "range start "+strconv.Itoa(rangeStart)+" > end "+strconv.Itoa(rangeEnd))
		}
	default:
		value, err := p.parseValue(field, rangeExpression, minimum, parseMaximum)
		if err != nil {
			return err
		}
		if field == DayOfWeek && value == 7 {
			value = 0
		}
		rangeStart, rangeEnd = value, value
		if hasStep {
			rangeEnd = maximum
		}
	}

	for value := rangeStart; value <= rangeEnd; value += step {
		if field == DayOfWeek && value == 7 {
			spec.values.set(0)
		} else {
			spec.values.set(value)
		}
		if rangeEnd-value < step {
			break
		}
	}
	return nil
}

// parseDaySpecial handles ?, L, L-n, LW, nW, nL and n#k. It reports
// handled=false for terms that are ordinary values or ranges.
func (p Parser) parseDaySpecial(spec *FieldSpec, term string) (bool, error) {
	field := spec.field
	special := term == "?"
	if field == DayOfMonth {
		special = special || strings.HasPrefix(term, "L") || strings.HasSuffix(term, "W")
	} else {
		special = special || strings.HasSuffix(term, "L") || strings.Contains(term, "#")
	}
	if !special {
		return false, nil
	}
	if !p.has(Extensions) {
		return true, termError(ErrUnsupported, "?, L, W and # are not enabled")
	}

	if term == "?" {
		minimum, maximum := field.Bounds()
		spec.values |= rangeBits(minimum, maximum)
		spec.wildcard = true
		return true, nil
	}

	if field == DayOfMonth {
		switch {
		case term == "L":
			spec.lastOffsets.set(0)
		case term == "LW":
			spec.lastWeekday = true
		case strings.HasPrefix(term, "L-"):
			offsetText := strings.TrimPrefix(term, "L-")
			offset, err := strconv.Atoi(offsetText)
			if err != nil || !isDigits(offsetText) {
				return true, termError(ErrSyntax, "invalid last-day offset "+strconv.Quote(offsetText))
			}
			if offset > 30 {
				return true, termError(ErrOutOfRange, "last-day offset "+strconv.Itoa(offset)+" out of range [0-30]")
			}
			spec.lastOffsets.set(offset)
		case strings.HasSuffix(term, "W"):
			day, err := p.parseValue(field, strings.TrimSuffix(term, "W"), 1, 31)
			if err != nil {
				return true, err
			}
			spec.nearestWeekday.set(day)
		default:
			return true, termError(ErrSyntax, "invalid day-of-month token")
		}
		return true, nil
	}

	if weekdayText, nthText, ok := strings.Cut(term, "#"); ok {
		weekday, err := p.parseValue(field, weekdayText, 0, 7)
		if err != nil {
			return true, err
		}
		nth, err := strconv.Atoi(nthText)
		if err != nil || !isDigits(nthText) {
			return true, termError(ErrSyntax, "invalid occurrence "+strconv.Quote(nthText))
		}
		if nth < 1 || nth > 5 {
			return true, termError(ErrOutOfRange, "occurrence "+strconv.Itoa(nth)+" out of range [1-5]")
		}
		spec.nthWeekdays[weekday%7] |= 1 << uint(nth-1)
		return true, nil
	}

	weekday, err := p.parseValue(field, strings.TrimSuffix(term, "L"), 0, 7)
	if err != nil {
		return true, err
	}
	spec.lastWeekdays.set(weekday % 7)
	return true, nil
}

// parseValue parses a number or, for month and day-of-week, a name.
func (p Parser) parseValue(field Field, text string, minimum, maximum int) (int, error) {
	if text == "" {
		return 0, termError(ErrSyntax, "missing value")
	}
	if !isDigits(text) {
		names := namesFor(field)
		if names == nil || !isLetters(text) {
			return 0, termError(ErrSyntax, "invalid value "+strconv.Quote(text))
		}
		if !p.has(Names) {
			return 0, termError(ErrUnsupported, "names are not enabled")
		}
		value, ok := names[strings.ToUpper(text)]
		if !ok {
			return 0, termError(ErrSyntax, "unknown name "+strconv.Quote(text))
		}
		return value, nil
	}
	value, err := strconv.Atoi(text)
	if err != nil || value < minimum || value > maximum {
		return 0, termError(ErrOutOfRange,
			"value "+text+" out of range ["+strconv.Itoa(minimum)+"-"+strconv.Itoa(maximum)+"]")
	}
	return value, nil
}

func namesFor(field Field) map[string]int {
	switch field {
	case Month:
		return monthNames
	case DayOfWeek:
		return weekdayNames
	}
	return nil
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

func isLetters(text string) bool {
	for i := 0; i < len(text); i++ {
		c := text[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return text != ""
}
