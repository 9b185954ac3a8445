// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/crontest/lib/codec"
)

// Options configure [Write].
type Options struct {
	Format Format
	Color  ColorMode

	// TimeLayout formats instants in the text and Markdown formats.
	// Empty means time.RFC3339.
	TimeLayout string

	// Theme overrides DefaultTheme for the text format.
	Theme *Theme
}

func (o Options) layout() string {
	if o.TimeLayout == "" {
		return time.RFC3339
	}
	return o.TimeLayout
}

// Write renders document to w.
func Write(w io.Writer, document Document, options Options) error {
	switch options.Format {
	case FormatText, "":
		theme := DefaultTheme
		if options.Theme != nil {
			theme = *options.Theme
		}
		_, err := io.WriteString(w, document.text(newStyles(w, theme, options.Color), options))
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, document.markdown(options))
		return err
	case FormatHTML:
		return renderHTML(w, document.markdown(options))
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(document); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML:
		var buffer bytes.Buffer
		encoder := yaml.NewEncoder(&buffer)
		encoder.SetIndent(2)
		if err := encoder.Encode(document); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		_, err := w.Write(buffer.Bytes())
		return err
	case FormatCBOR:
		// One self-delimiting item per call, so watch output is a
		// CBOR sequence (RFC 8742).
		if err := codec.NewEncoder(w).Encode(document); err != nil {
			return fmt.Errorf("encoding CBOR: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", options.Format)
}
