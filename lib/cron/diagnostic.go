// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import "errors"

// Code is a stable identifier for a class of failure. Codes never
// change meaning; callers may switch on them.
type Code string

const (
	CodeFieldCount      Code = "parse.field_count"
	CodeSyntax          Code = "parse.syntax"
	CodeOutOfRange      Code = "parse.out_of_range"
	CodeStep            Code = "parse.step"
	CodeRangeOrder      Code = "parse.range_order"
	CodeUnsupported     Code = "parse.unsupported"
	CodeUnsatisfiable   Code = "schedule.unsatisfiable"
	CodeBudgetExhausted Code = "schedule.budget_exhausted"
	CodeCanceled        Code = "schedule.canceled"
	CodeInternal        Code = "internal"
)

// Diagnostic is the presentation-ready classification of an error from
// this package.
type Diagnostic struct {
	Code Code `json:"code" yaml:"code"`

	// Field is the offending field name for parse errors.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Position is the 1-based field index for parse errors.
	Position int `json:"position,omitempty" yaml:"position,omitempty"`

	// Token is the raw text that failed to parse.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Recoverable is true when correcting the input can fix the
	// failure. Only CodeInternal is not.
	Recoverable bool `json:"recoverable" yaml:"recoverable"`

	Message string `json:"message" yaml:"message"`
}

var parseCodes = []struct {
	sentinel error
	code     Code
}{
	{ErrFieldCount, CodeFieldCount},
	{ErrSyntax, CodeSyntax},
	{ErrOutOfRange, CodeOutOfRange},
	{ErrStep, CodeStep},
	{ErrRangeOrder, CodeRangeOrder},
	{ErrUnsupported, CodeUnsupported},
}

// Classify maps err to a Diagnostic. Errors that did not originate in
// this package classify as CodeInternal. Classify(nil) returns the zero
// Diagnostic.
func Classify(err error) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		diagnostic := Diagnostic{
			Code:        CodeSyntax,
			Token:       parseErr.Token,
			Recoverable: true,
			Message:     parseErr.Error(),
		}
		if parseErr.Field != NoField {
			diagnostic.Field = parseErr.Field.String()
			diagnostic.Position = parseErr.Position
		}
		for _, entry := range parseCodes {
			if errors.Is(parseErr.Err, entry.sentinel) {
				diagnostic.Code = entry.code
				break
			}
		}
		return diagnostic
	}

	var schedulingErr *SchedulingError
	if errors.As(err, &schedulingErr) {
		diagnostic := Diagnostic{Recoverable: true, Message: schedulingErr.Error()}
		switch schedulingErr.Kind {
		case KindUnsatisfiable:
			diagnostic.Code = CodeUnsatisfiable
		case KindBudgetExhausted:
			diagnostic.Code = CodeBudgetExhausted
		case KindCanceled:
			diagnostic.Code = CodeCanceled
		default:
			diagnostic.Code = CodeInternal
			diagnostic.Recoverable = false
		}
		return diagnostic
	}

	return Diagnostic{Code: CodeInternal, Message: err.Error()}
}
