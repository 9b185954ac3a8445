// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders crontest results for people and for other
// programs.
//
// A [Document] is one result: a parsed schedule ([Summary]), an
// occurrence listing ([Occurrences]), a point-in-time check ([Match]),
// a description ([Explanation]), one occurrence reached by a watch
// ([Fired]), build information ([Build]) or a failure ([Failure]). [Write]
// renders any document in one of the supported [Format]s:
//
//   - text: aligned, optionally colored terminal output (lipgloss with
//     an explicit termenv color profile)
//   - markdown: GitHub-flavored Markdown with a table of occurrences
//   - html: the Markdown rendered through goldmark
//   - json, yaml, cbor: the document's exported fields
//
// Documents are plain structs with json and yaml tags, so the
// structured formats carry exactly what the text format shows.
package report
