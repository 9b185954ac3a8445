// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyParseErrors(t *testing.T) {
	tests := []struct {
		expression string
		code       Code
		field      string
		position   int
		token      string
	}{
		{"*/0 * * * *", CodeStep, "minute", 1, "*/0"},
		{"* * * *", CodeFieldCount, "", 0, "* * * *"},
		{"0 25 * * *", CodeOutOfRange, "hour", 2, "25"},
		{"0 0 5-1 * *", CodeRangeOrder, "day-of-month", 3, "5-1"},
		{"0 0 * BOGUS *", CodeSyntax, "month", 4, "BOGUS"},
	}
	for _, test := range tests {
		t.Run(test.expression, func(t *testing.T) {
			_, err := Parse(test.expression)
			diagnostic := Classify(err)
			if diagnostic.Code != test.code {
				t.Errorf("Code = %q, want %q", diagnostic.Code, test.code)
			}
			if diagnostic.Field != test.field || diagnostic.Position != test.position {
				t.Errorf("Field, Position = %q, %d; want %q, %d",
					diagnostic.Field, diagnostic.Position, test.field, test.position)
			}
			if diagnostic.Token != test.token {
				t.Errorf("Token = %q, want %q", diagnostic.Token, test.token)
			}
			if !diagnostic.Recoverable {
				t.Error("parse errors should be recoverable")
			}
			if diagnostic.Message != err.Error() {
				t.Errorf("Message = %q, want %q", diagnostic.Message, err.Error())
			}
		})
	}
}

func TestClassifyUnsupported(t *testing.T) {
	_, err := NewParser(0).Parse("0 0 * * MON")
	if got := Classify(err).Code; got != CodeUnsupported {
		t.Errorf("Code = %q, want %q", got, CodeUnsupported)
	}
}

func TestClassifySchedulingErrors(t *testing.T) {
	_, err := mustParse(t, "0 0 30 2 *").Next(utc(2026, 1, 1, 0, 0))
	if got := Classify(err).Code; got != CodeUnsatisfiable {
		t.Errorf("unsatisfiable Code = %q", got)
	}

	_, err = mustParse(t, "0 0 29 2 *").Occurrences(context.Background(), Query{
		From: utc(2025, 1, 1, 0, 0), Count: 1, Budget: 2,
	})
	diagnostic := Classify(err)
	if diagnostic.Code != CodeBudgetExhausted || !diagnostic.Recoverable {
		t.Errorf("budget diagnostic = %+v", diagnostic)
	}
}

func TestClassifyWrapped(t *testing.T) {
	_, parseErr := Parse("61 * * * *")
	wrapped := fmt.Errorf("loading job %q: %w", "backup", parseErr)
	if got := Classify(wrapped).Code; got != CodeOutOfRange {
		t.Errorf("wrapped Code = %q, want %q", got, CodeOutOfRange)
	}
}

func TestClassifyForeign(t *testing.T) {
	diagnostic := Classify(errors.New("disk on fire"))
	if diagnostic.Code != CodeInternal || diagnostic.Recoverable {
		t.Errorf("foreign diagnostic = %+v", diagnostic)
	}
	if diagnostic.Message != "disk on fire" {
		t.Errorf("Message = %q", diagnostic.Message)
	}
	if zero := Classify(nil); zero != (Diagnostic{}) {
		t.Errorf("Classify(nil) = %+v, want zero", zero)
	}
}
