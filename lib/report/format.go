// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCBOR     Format = "cbor"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR, FormatMarkdown, FormatHTML}
}

// ParseFormat resolves a format name. "md" and "yml" are accepted as
// aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: %s)", name, formatList())
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, format := range Formats() {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}

// ColorMode controls styling in the text format.
type ColorMode string

const (
	// ColorAuto styles output only when writing to a terminal and
	// NO_COLOR is unset.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode resolves a color mode name. Empty means auto.
func ParseColorMode(name string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(name)) {
	case ColorAuto, "":
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("unknown color mode %q (valid: auto, always, never)", name)
}
