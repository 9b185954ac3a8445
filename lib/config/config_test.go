// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/crontest/lib/cron"
	"github.com/bureau-foundation/crontest/lib/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Parser.Seconds != SecondsNone {
		t.Errorf("expected seconds=none, got %s", cfg.Parser.Seconds)
	}
	if cfg.Schedule.Horizon != cron.DefaultHorizon {
		t.Errorf("expected horizon=%d, got %d", cron.DefaultHorizon, cfg.Schedule.Horizon)
	}
	if got := cfg.ParserOptions(); got != cron.Standard {
		t.Errorf("default ParserOptions = %b, want cron.Standard %b", got, cron.Standard)
	}
	if cfg.Output.TimeLayout != time.RFC3339 {
		t.Errorf("expected time_layout=RFC3339, got %s", cfg.Output.TimeLayout)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when CRONTEST_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "CRONTEST_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %q", err)
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := testutil.WriteFile(t, "crontest.yaml", `
schedule:
  count: 12
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Schedule.Count != 12 {
		t.Errorf("expected count=12, got %d", cfg.Schedule.Count)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := testutil.WriteFile(t, "crontest.yaml", `
parser:
  seconds: optional
  names: false
  day_policy: and

schedule:
  horizon: 10
  budget: 5000
  timeout: 250ms
  location: UTC

output:
  format: markdown
  color: never
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	options := cfg.ParserOptions()
	if options&cron.SecondsOptional == 0 || options&cron.Names != 0 || options&cron.DayAnd == 0 {
		t.Errorf("ParserOptions = %b", options)
	}
	// Unset keys keep their defaults.
	if options&cron.Macros == 0 || options&cron.Extensions == 0 {
		t.Errorf("macros/extensions defaults lost: %b", options)
	}
	if cfg.Schedule.Count != 5 {
		t.Errorf("expected default count=5, got %d", cfg.Schedule.Count)
	}
	if cfg.Schedule.Horizon != 10 || cfg.Schedule.Budget != 5000 {
		t.Errorf("horizon, budget = %d, %d", cfg.Schedule.Horizon, cfg.Schedule.Budget)
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil || timeout != 250*time.Millisecond {
		t.Errorf("TimeoutDuration = %v, %v", timeout, err)
	}
	location, err := cfg.ReferenceLocation()
	if err != nil || location != time.UTC {
		t.Errorf("ReferenceLocation = %v, %v", location, err)
	}
	if cfg.Output.Format != "markdown" || cfg.Output.Color != "never" {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := testutil.WriteFile(t, "crontest.jsonc", `{
  // Quartz-style schedules carry a seconds field.
  "parser": {"seconds": "required", "day_policy": "or"},
  "output": {
    "format": "json", /* machine-readable */
  },
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ParserOptions()&cron.Seconds == 0 {
		t.Error("expected Seconds capability")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format=json, got %s", cfg.Output.Format)
	}
}

func TestLoadFile_UnknownKeys(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "crontest.yaml", "parser:\n  secnds: required\n"},
		{"json", "crontest.json", `{"output": {"colour": "never"}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := LoadFile(testutil.WriteFile(t, test.file, test.content)); err == nil {
				t.Error("expected error for unknown key")
			}
		})
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(testutil.WriteFile(t, "crontest.yaml", ""))
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if cfg.Schedule.Count != Default().Schedule.Count {
		t.Errorf("empty config changed count to %d", cfg.Schedule.Count)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("CRONTEST_TEST_ZONE", "Europe/Berlin")

	tests := []struct {
		input string
		vars  map[string]string
		want  string
	}{
		{"${TZ}", map[string]string{"TZ": "Asia/Tokyo"}, "Asia/Tokyo"},
		{"${TZ:-UTC}", map[string]string{"TZ": ""}, "UTC"},
		{"${CRONTEST_TEST_ZONE}", nil, "Europe/Berlin"},
		{"${CRONTEST_UNSET_ZONE:-America/New_York}", nil, "America/New_York"},
		{"UTC", nil, "UTC"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, test.vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLoadFile_ExpandsLocation(t *testing.T) {
	t.Setenv("TZ", "")
	cfg, err := LoadFile(testutil.WriteFile(t, "crontest.yaml", "schedule:\n  location: ${TZ:-UTC}\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Schedule.Location != "UTC" {
		t.Errorf("expected location=UTC, got %s", cfg.Schedule.Location)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"bad_seconds", func(c *Config) { c.Parser.Seconds = "sometimes" }, "parser.seconds"},
		{"bad_policy", func(c *Config) { c.Parser.DayPolicy = "xor" }, "parser.day_policy"},
		{"zero_count", func(c *Config) { c.Schedule.Count = 0 }, "schedule.count"},
		{"zero_horizon", func(c *Config) { c.Schedule.Horizon = 0 }, "schedule.horizon"},
		{"negative_budget", func(c *Config) { c.Schedule.Budget = -1 }, "schedule.budget"},
		{"bad_timeout", func(c *Config) { c.Schedule.Timeout = "soon" }, "schedule.timeout"},
		{"negative_timeout", func(c *Config) { c.Schedule.Timeout = "-1s" }, "schedule.timeout"},
		{"bad_location", func(c *Config) { c.Schedule.Location = "Mars/Olympus" }, "schedule.location"},
		{"bad_format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad_color", func(c *Config) { c.Output.Color = "plaid" }, "output.color"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Schedule.Count = -3
	cfg.Output.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"schedule.count", "output.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
