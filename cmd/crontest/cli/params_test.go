// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Zone     string        `flag:"tz" desc:"zone"`
		Seconds  bool          `flag:"seconds,s" desc:"seconds field"`
		Count    int           `flag:"count,n" desc:"number of occurrences"`
		Timeout  time.Duration `flag:"timeout" desc:"query timeout"`
		Fields   []string      `flag:"fields" desc:"field list"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--tz", "Europe/Berlin",
		"-s",
		"-n", "7",
		"--timeout", "30s",
		"--fields", "minute,hour",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Zone != "Europe/Berlin" {
		t.Errorf("Zone = %q", p.Zone)
	}
	if !p.Seconds {
		t.Error("Seconds = false, want true")
	}
	if p.Count != 7 {
		t.Errorf("Count = %d, want 7", p.Count)
	}
	if p.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", p.Timeout)
	}
	if strings.Join(p.Fields, ",") != "minute,hour" {
		t.Errorf("Fields = %v", p.Fields)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Format  string        `flag:"format" default:"text"`
		Count   int           `flag:"count" default:"5"`
		Timeout time.Duration `flag:"timeout" default:"10s"`
		Names   bool          `flag:"names" default:"true"`
		Fields  []string      `flag:"fields" default:"a,b"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Format != "text" || p.Count != 5 || p.Timeout != 10*time.Second || !p.Names || len(p.Fields) != 2 {
		t.Errorf("defaults = %+v", p)
	}
}

func TestBindFlags_EmbeddedOutputParams(t *testing.T) {
	type params struct {
		OutputParams
		Count int `flag:"count"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"-o", "yaml", "--color", "never", "--count", "2"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Format != "yaml" || p.Color != "never" || p.Count != 2 {
		t.Errorf("params = %+v", p)
	}
	for _, name := range []string{"format", "json", "color", "count"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("flag --%s not bound", name)
		}
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"pointer to non-struct", new(int), "pointer to a struct"},
		{"unsupported type", &struct {
			Rate float64 `flag:"rate"`
		}{}, "unsupported type"},
		{"bad default", &struct {
			Count int `flag:"count" default:"many"`
		}{}, "default for --count"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("BindFlags error = %v, want containing %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic")
		}
	}()
	FlagsFromParams("test", 42)
}
