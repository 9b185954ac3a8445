// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"

	"github.com/bureau-foundation/crontest/lib/report"
)

// OutputParams is an embeddable struct that adds --format, --json and
// --color to a command's parameter struct. Empty values fall back to
// the configured defaults passed to [OutputParams.Options].
//
//	type nextParams struct {
//	    cli.OutputParams
//	    Count int `flag:"count,n" desc:"number of occurrences"`
//	}
//
//	// In Run:
//	options, err := params.Options(configured)
//	...
//	return params.Emit(os.Stdout, document, options)
type OutputParams struct {
	Format string `flag:"format,o" desc:"output format: text, json, yaml, cbor, markdown or html"`
	JSON   bool   `flag:"json" desc:"shorthand for --format json"`
	Color  string `flag:"color" desc:"color for text output: auto, always or never"`
}

// Options overlays the flags onto defaults and validates the result.
func (o *OutputParams) Options(defaults report.Options) (report.Options, error) {
	options := defaults
	if o.Format != "" {
		format, err := report.ParseFormat(o.Format)
		if err != nil {
			return report.Options{}, err
		}
		options.Format = format
	}
	if o.JSON {
		options.Format = report.FormatJSON
	}
	if o.Color != "" {
		color, err := report.ParseColorMode(o.Color)
		if err != nil {
			return report.Options{}, err
		}
		options.Color = color
	}
	return options, nil
}

// Structured reports whether options select a machine-readable format.
// Failures in a structured format go to stdout as documents; text
// failures go to stderr.
func Structured(options report.Options) bool {
	switch options.Format {
	case report.FormatJSON, report.FormatYAML, report.FormatCBOR:
		return true
	}
	return false
}

// Emit writes document to w in the selected format.
func (o *OutputParams) Emit(w io.Writer, document report.Document, options report.Options) error {
	return report.Write(w, document, options)
}
