// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidExpression matches every [ParseError].
var ErrInvalidExpression = errors.New("cron: invalid expression")

// Parse failure categories. A [ParseError] matches exactly one of
// these in addition to [ErrInvalidExpression].
var (
	ErrFieldCount  = errors.New("wrong number of fields")
	ErrSyntax      = errors.New("malformed token")
	ErrOutOfRange  = errors.New("value out of range")
	ErrStep        = errors.New("invalid step")
	ErrRangeOrder  = errors.New("range start after end")
	ErrUnsupported = errors.New("syntax not enabled")
)

// Scheduling failure categories, matched by [SchedulingError].
var (
	ErrUnsatisfiable   = errors.New("cron: no occurrence within horizon")
	ErrBudgetExhausted = errors.New("cron: iteration budget exhausted")
	ErrCanceled        = errors.New("cron: search canceled")
)

// ErrNilSchedule is returned when a query is made against a nil
// schedule.
var ErrNilSchedule = errors.New("cron: nil schedule")

// ParseError reports a malformed or out-of-range expression.
type ParseError struct {
	// Field is the offending field, or NoField when the problem is
	// with the expression as a whole (field count, zone prefix, macro).
	Field Field

	// Position is the 1-based index of the field in the expression
	// text. Zero when Field is NoField.
	Position int

	// Token is the raw text that failed to parse.
	Token string

	// Reason is a short human-readable explanation.
	Reason string

	// Err is the failure category (ErrSyntax, ErrOutOfRange, ...).
	Err error
}

func (e *ParseError) Error() string {
	if e.Field == NoField {
		if e.Token == "" {
			return fmt.Sprintf("cron: %s", e.Reason)
		}
		return fmt.Sprintf("cron: %s: %q", e.Reason, e.Token)
	}
	return fmt.Sprintf("cron: %s field: %s (token %q)", e.Field, e.Reason, e.Token)
}

// Unwrap exposes both ErrInvalidExpression and the category sentinel
// to errors.Is.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidExpression}
	}
	return []error{ErrInvalidExpression, e.Err}
}

// SchedulingKind classifies a [SchedulingError].
type SchedulingKind int

const (
	// KindUnsatisfiable: no occurrence exists within the horizon.
	KindUnsatisfiable SchedulingKind = iota
	// KindBudgetExhausted: the caller's iteration budget ran out.
	KindBudgetExhausted
	// KindCanceled: the context was canceled or its deadline passed.
	KindCanceled
)

func (k SchedulingKind) String() string {
	switch k {
	case KindUnsatisfiable:
		return "unsatisfiable"
	case KindBudgetExhausted:
		return "budget_exhausted"
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("SchedulingKind(%d)", int(k))
	}
}

// SchedulingError reports a search that ended without producing the
// requested number of occurrences. It is a property of the input (the
// schedule and query), not a fault in the evaluator.
type SchedulingError struct {
	Kind SchedulingKind

	// Expression is the schedule's source text.
	Expression string

	// From is where the failing search started.
	From time.Time

	// Horizon is the search bound in years.
	Horizon int

	// Budget is the iteration budget in effect (0 for unlimited).
	Budget int

	// Found is how many occurrences were produced before the failure.
	Found int

	// Err is the context error for KindCanceled.
	Err error
}

func (e *SchedulingError) Error() string {
	switch e.Kind {
	case KindUnsatisfiable:
		return fmt.Sprintf("cron: %q has no occurrence within %d years of %s",
			e.Expression, e.Horizon, e.From.Format(time.RFC3339))
	case KindBudgetExhausted:
		return fmt.Sprintf("cron: %q: iteration budget of %d exhausted after %d occurrences",
			e.Expression, e.Budget, e.Found)
	case KindCanceled:
		return fmt.Sprintf("cron: %q: search canceled after %d occurrences: %v",
			e.Expression, e.Found, e.Err)
	default:
		return fmt.Sprintf("cron: %q: scheduling failed (%s)", e.Expression, e.Kind)
	}
}

// Unwrap exposes the kind's sentinel and, for cancellation, the
// context error.
func (e *SchedulingError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case KindUnsatisfiable:
		sentinel = ErrUnsatisfiable
	case KindBudgetExhausted:
		sentinel = ErrBudgetExhausted
	case KindCanceled:
		sentinel = ErrCanceled
	}
	errs := make([]error, 0, 2)
	if sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
