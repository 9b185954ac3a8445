// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for crontest.
//
// Configuration is loaded from a single file specified by either the
// CRONTEST_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search.
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas allowed; everything else is read as YAML. Unknown
// keys are an error in both.
//
// Variable expansion is performed on the location field after
// loading: ${TZ} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Parser, Schedule, Output
//   - [Default] -- returns a Config matching the library defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.ParserOptions] -- maps the parser section to cron flags
package config
