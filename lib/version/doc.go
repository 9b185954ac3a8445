// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build information for the crontest binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/crontest/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/crontest
//
// They default to "unknown" and "0.1.0-dev" in development builds and
// test runs. [Current] returns them with the toolchain and platform
// for "crontest version"; [Short] is the bare number printed by
// "crontest version --short".
package version
