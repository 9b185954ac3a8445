// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// The configuration never changes, so one instance serves every call.
var (
	markdownOnce     sync.Once
	markdownInstance goldmark.Markdown
)

func markdownConverter() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(goldmark.WithExtensions(extension.Table))
	})
	return markdownInstance
}

func renderHTML(w io.Writer, source string) error {
	if err := markdownConverter().Convert([]byte(source), w); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// code renders text as a Markdown code span.
func code(text string) string {
	if strings.Contains(text, "`") {
		return "`` " + text + " ``"
	}
	return "`" + text + "`"
}

func (s *Summary) markdown(_ Options) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n\n%s\n\n", code(s.Expression), s.Description)
	builder.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&builder, "| canonical | %s |\n", code(s.Canonical))
	fmt.Fprintf(&builder, "| day policy | %s |\n", s.Descriptor.DayPolicy)
	if s.Descriptor.Location != "" {
		fmt.Fprintf(&builder, "| location | %s |\n", s.Descriptor.Location)
	}
	fmt.Fprintf(&builder, "| fingerprint | %s |\n\n", code(s.Fingerprint))

	builder.WriteString("| Field | Allowed |\n|---|---|\n")
	for _, field := range s.Descriptor.Fields {
		fmt.Fprintf(&builder, "| %s | %s |\n", field.Field, fieldSummary(field))
	}
	return builder.String()
}

func (o *Occurrences) markdown(options Options) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n\n%s\n\n", code(o.Expression), o.Description)
	fmt.Fprintf(&builder, "Searching %s from %s.\n\n", o.Direction, o.From.Format(options.layout()))
	if len(o.Occurrences) > 0 {
		builder.WriteString("| # | Occurrence | Weekday | Offset |\n|---:|---|---|---:|\n")
		for index, occurrence := range o.Occurrences {
			fmt.Fprintf(&builder, "| %s | %s | %s | %s |\n",
				strconv.Itoa(index+1), occurrence.Format(options.layout()),
				occurrence.Weekday(), formatOffset(o.From, occurrence))
		}
	}
	if o.Error != nil {
		fmt.Fprintf(&builder, "\n**Error** (%s): %s\n", code(string(o.Error.Code)), o.Error.Message)
	}
	return builder.String()
}

func (m *Match) markdown(options Options) string {
	verdict := "does not match"
	if m.Matches {
		verdict = "matches"
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %s %s.\n", code(m.Expression), verdict, m.At.Format(options.layout()))
	if m.Previous != nil {
		fmt.Fprintf(&builder, "\n- previous: %s\n", m.Previous.Format(options.layout()))
	}
	if m.Next != nil {
		if m.Previous == nil {
			builder.WriteByte('\n')
		}
		fmt.Fprintf(&builder, "- next: %s\n", m.Next.Format(options.layout()))
	}
	return builder.String()
}

func (e *Explanation) markdown(_ Options) string {
	return fmt.Sprintf("%s: %s\n", code(e.Expression), e.Description)
}

func (f *Failure) markdown(_ Options) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "**Error** (%s): %s\n", code(string(f.Diagnostic.Code)), f.Diagnostic.Message)
	if f.Diagnostic.Field != "" {
		fmt.Fprintf(&builder, "\n- field: %s (position %d)\n- token: %s\n",
			f.Diagnostic.Field, f.Diagnostic.Position, code(f.Diagnostic.Token))
	}
	return builder.String()
}

func (f *Fired) markdown(options Options) string {
	return fmt.Sprintf("- %d. %s (%s)\n", f.Sequence, f.Occurrence.Format(options.layout()), f.Occurrence.Weekday())
}

func (b *Build) markdown(_ Options) string {
	return fmt.Sprintf("**crontest %s** (%s, %s)\n\n- Go: %s\n- Platform: %s\n",
		b.Version, code(b.Revision()), b.BuildTime, b.Go, b.Platform)
}
