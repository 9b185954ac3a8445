// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Theme is the palette for the text format. Colors are ANSI 256-color
// codes.
type Theme struct {
	Heading lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Faint   lipgloss.Color
	Accent  lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme is used when [Options].Theme is nil.
var DefaultTheme = Theme{
	Heading: lipgloss.Color("39"),  // blue
	Label:   lipgloss.Color("245"), // gray
	Value:   lipgloss.Color("252"), // near-white
	Faint:   lipgloss.Color("240"), // dim gray
	Accent:  lipgloss.Color("214"), // orange
	Error:   lipgloss.Color("196"), // red
}

// styles is a Theme bound to a renderer.
type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	faint   lipgloss.Style
	accent  lipgloss.Style
	failure lipgloss.Style
}

func newStyles(w io.Writer, theme Theme, mode ColorMode) styles {
	profile := colorProfile(w, mode)
	// SetColorProfile is still needed: the renderer otherwise
	// re-detects from the writer and ignores termenv.WithProfile.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return styles{
		heading: renderer.NewStyle().Foreground(theme.Heading).Bold(true),
		label:   renderer.NewStyle().Foreground(theme.Label),
		value:   renderer.NewStyle().Foreground(theme.Value),
		faint:   renderer.NewStyle().Foreground(theme.Faint),
		accent:  renderer.NewStyle().Foreground(theme.Accent),
		failure: renderer.NewStyle().Foreground(theme.Error).Bold(true),
	}
}

func colorProfile(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorAlways:
		return termenv.ANSI256
	case ColorNever:
		return termenv.Ascii
	}
	if isTerminal(w) && !termenv.EnvNoColor() {
		return termenv.ANSI256
	}
	return termenv.Ascii
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(file.Fd()))
}
