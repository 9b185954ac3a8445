// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"time"

	"github.com/bureau-foundation/crontest/lib/cron"
	"github.com/bureau-foundation/crontest/lib/version"
)

// Document is a renderable result. The set of documents is closed.
type Document interface {
	markdown(options Options) string
	text(styles styles, options Options) string
}

// Summary describes a successfully parsed schedule.
type Summary struct {
	Expression  string          `json:"expression" yaml:"expression"`
	Canonical   string          `json:"canonical" yaml:"canonical"`
	Description string          `json:"description" yaml:"description"`
	Fingerprint string          `json:"fingerprint" yaml:"fingerprint"`
	Descriptor  cron.Descriptor `json:"descriptor" yaml:"descriptor"`
}

// NewSummary builds a Summary for schedule.
func NewSummary(schedule *cron.Schedule) (*Summary, error) {
	descriptor := schedule.Descriptor()
	fingerprint, err := descriptor.Fingerprint()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Expression:  schedule.String(),
		Canonical:   descriptor.Canonical,
		Description: schedule.Describe(),
		Fingerprint: fingerprint.String(),
		Descriptor:  descriptor,
	}, nil
}

// Occurrences lists the result of an occurrence query. When the query
// failed part way, Occurrences holds what was found and Error the
// classified failure.
type Occurrences struct {
	Expression  string           `json:"expression" yaml:"expression"`
	Description string           `json:"description" yaml:"description"`
	Direction   string           `json:"direction" yaml:"direction"`
	From        time.Time        `json:"from" yaml:"from"`
	Occurrences []time.Time      `json:"occurrences" yaml:"occurrences"`
	Error       *cron.Diagnostic `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewOccurrences builds an Occurrences document. err is the query's
// error, if any.
func NewOccurrences(schedule *cron.Schedule, query cron.Query, occurrences []time.Time, err error) *Occurrences {
	document := &Occurrences{
		Expression:  schedule.String(),
		Description: schedule.Describe(),
		Direction:   query.Direction.String(),
		From:        query.From,
		Occurrences: occurrences,
	}
	if document.Occurrences == nil {
		document.Occurrences = []time.Time{}
	}
	if err != nil {
		diagnostic := cron.Classify(err)
		document.Error = &diagnostic
	}
	return document
}

// Match is the result of checking one instant against a schedule.
type Match struct {
	Expression string    `json:"expression" yaml:"expression"`
	At         time.Time `json:"at" yaml:"at"`
	Matches    bool      `json:"matches" yaml:"matches"`

	// Previous and Next bracket At with the nearest occurrences, when
	// they exist within the default horizon.
	Previous *time.Time `json:"previous,omitempty" yaml:"previous,omitempty"`
	Next     *time.Time `json:"next,omitempty" yaml:"next,omitempty"`
}

// Explanation is the English description of a schedule.
type Explanation struct {
	Expression  string `json:"expression" yaml:"expression"`
	Description string `json:"description" yaml:"description"`
}

// Failure is a classified error with the input that caused it.
type Failure struct {
	Expression string          `json:"expression" yaml:"expression"`
	Diagnostic cron.Diagnostic `json:"error" yaml:"error"`
}

// NewFailure classifies err.
func NewFailure(expression string, err error) *Failure {
	return &Failure{Expression: expression, Diagnostic: cron.Classify(err)}
}

// Fired is one occurrence reached by a watch. Sequence counts from 1.
type Fired struct {
	Expression string    `json:"expression" yaml:"expression"`
	Sequence   int       `json:"sequence" yaml:"sequence"`
	Occurrence time.Time `json:"occurrence" yaml:"occurrence"`
}

// Build is the binary's version information.
type Build struct {
	version.Details `yaml:",inline"`
}
