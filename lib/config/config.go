// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/crontest/lib/cron"
	"github.com/bureau-foundation/crontest/lib/report"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "CRONTEST_CONFIG"

// Seconds field handling.
const (
	SecondsNone     = "none"
	SecondsOptional = "optional"
	SecondsRequired = "required"
)

// Config is the master configuration for crontest.
type Config struct {
	// Parser selects the expression syntax accepted.
	Parser ParserConfig `yaml:"parser" json:"parser"`

	// Schedule bounds occurrence searches.
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule"`

	// Output configures rendering.
	Output OutputConfig `yaml:"output" json:"output"`
}

// ParserConfig configures expression parsing.
type ParserConfig struct {
	// Seconds is "none" (5 fields), "optional" (5 or 6) or "required"
	// (6). Default: none
	Seconds string `yaml:"seconds" json:"seconds"`

	// Names enables JAN-DEC and SUN-SAT. Default: true
	Names bool `yaml:"names" json:"names"`

	// Macros enables @daily and friends. Default: true
	Macros bool `yaml:"macros" json:"macros"`

	// Extensions enables ?, L, W and #. Default: true
	Extensions bool `yaml:"extensions" json:"extensions"`

	// DayPolicy is "or" (either day field matches) or "and" (both).
	// Default: or
	DayPolicy string `yaml:"day_policy" json:"day_policy"`
}

// ScheduleConfig configures occurrence searches.
type ScheduleConfig struct {
	// Count is the number of occurrences listed when --count is not
	// given. Default: 5
	Count int `yaml:"count" json:"count"`

	// Horizon is the per-occurrence search bound in years.
	// Default: cron.DefaultHorizon
	Horizon int `yaml:"horizon" json:"horizon"`

	// Budget caps search steps per query. 0 means unlimited.
	Budget int `yaml:"budget" json:"budget"`

	// Timeout bounds each query, as a Go duration. Empty or "0" means
	// no timeout. Default: 10s
	Timeout string `yaml:"timeout" json:"timeout"`

	// Location is the zone reference times are read in when --tz is
	// not given. "Local" or empty means the system zone.
	Location string `yaml:"location" json:"location"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	// Format is one of report.Formats(). Default: text
	Format string `yaml:"format" json:"format"`

	// Color is auto, always or never. Default: auto
	Color string `yaml:"color" json:"color"`

	// TimeLayout is a Go time layout for text and Markdown output.
	// Default: time.RFC3339
	TimeLayout string `yaml:"time_layout" json:"time_layout"`
}

// Default returns the default configuration. Values not present in a
// loaded file keep these defaults.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Seconds:    SecondsNone,
			Names:      true,
			Macros:     true,
			Extensions: true,
			DayPolicy:  cron.DayPolicyOr.String(),
		},
		Schedule: ScheduleConfig{
			Count:    5,
			Horizon:  cron.DefaultHorizon,
			Timeout:  "10s",
			Location: "Local",
		},
		Output: OutputConfig{
			Format:     string(report.FormatText),
			Color:      string(report.ColorAuto),
			TimeLayout: time.RFC3339,
		},
	}
}

// Load loads configuration from the CRONTEST_CONFIG environment
// variable. It fails when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your crontest config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path and validates
// it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes one file over the current values.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(c); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		// An empty file is a valid config that changes nothing.
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing YAML: %w", err)
		}
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns.
func (c *Config) expandVariables() {
	c.Schedule.Location = expandVars(c.Schedule.Location, map[string]string{
		"TZ": os.Getenv("TZ"),
	})
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	secondsValues := []string{SecondsNone, SecondsOptional, SecondsRequired}
	if !slices.Contains(secondsValues, c.Parser.Seconds) {
		errs = append(errs, fmt.Errorf("parser.seconds must be one of: %v", secondsValues))
	}
	policyValues := []string{cron.DayPolicyOr.String(), cron.DayPolicyAnd.String()}
	if !slices.Contains(policyValues, c.Parser.DayPolicy) {
		errs = append(errs, fmt.Errorf("parser.day_policy must be one of: %v", policyValues))
	}

	if c.Schedule.Count <= 0 {
		errs = append(errs, fmt.Errorf("schedule.count must be positive, got %d", c.Schedule.Count))
	}
	if c.Schedule.Horizon <= 0 {
		errs = append(errs, fmt.Errorf("schedule.horizon must be positive, got %d", c.Schedule.Horizon))
	}
	if c.Schedule.Budget < 0 {
		errs = append(errs, fmt.Errorf("schedule.budget must not be negative, got %d", c.Schedule.Budget))
	}
	if _, err := c.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ReferenceLocation(); err != nil {
		errs = append(errs, err)
	}

	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if _, err := report.ParseColorMode(c.Output.Color); err != nil {
		errs = append(errs, fmt.Errorf("output.color: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ParserOptions maps the parser section to cron capability flags.
func (c *Config) ParserOptions() cron.Options {
	var options cron.Options
	switch c.Parser.Seconds {
	case SecondsOptional:
		options |= cron.SecondsOptional
	case SecondsRequired:
		options |= cron.Seconds
	}
	if c.Parser.Names {
		options |= cron.Names
	}
	if c.Parser.Macros {
		options |= cron.Macros
	}
	if c.Parser.Extensions {
		options |= cron.Extensions
	}
	if c.Parser.DayPolicy == cron.DayPolicyAnd.String() {
		options |= cron.DayAnd
	}
	return options
}

// TimeoutDuration parses Schedule.Timeout. Zero means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Schedule.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Schedule.Timeout)
	if err != nil {
		return 0, fmt.Errorf("schedule.timeout: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("schedule.timeout must not be negative, got %s", timeout)
	}
	return timeout, nil
}

// ReferenceLocation loads Schedule.Location.
func (c *Config) ReferenceLocation() (*time.Location, error) {
	switch c.Schedule.Location {
	case "", "Local":
		return time.Local, nil
	}
	location, err := time.LoadLocation(c.Schedule.Location)
	if err != nil {
		return nil, fmt.Errorf("schedule.location: %w", err)
	}
	return location, nil
}
