// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"testing"
)

func setBuild(t *testing.T, version, commit, dirty, buildTime string) {
	t.Helper()
	saved := [4]string{Version, GitCommit, GitDirty, BuildTime}
	Version, GitCommit, GitDirty, BuildTime = version, commit, dirty, buildTime
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
	})
}

func TestRevision(t *testing.T) {
	tests := []struct {
		name  string
		dirty string
		want  string
	}{
		{"clean", "false", "abc1234"},
		{"dirty", "true", "abc1234-dirty"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			setBuild(t, "1.2.3", "abc1234", test.dirty, "2026-01-01T00:00:00Z")
			if got := Current().Revision(); got != test.want {
				t.Errorf("Revision() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	setBuild(t, "2.0.0", "deadbee", "true", "then")
	details := Current()
	if details.Version != "2.0.0" || details.Commit != "deadbee" || !details.Dirty || details.BuildTime != "then" {
		t.Errorf("Current() = %+v", details)
	}
	if details.Go != runtime.Version() || details.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Current() runtime = %q %q", details.Go, details.Platform)
	}
	if Short() != "2.0.0" {
		t.Errorf("Short() = %q", Short())
	}
}
