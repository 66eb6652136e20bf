// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the adminbot
// binary.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/adminbot/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without injection, [Info] falls back to the VCS stamp the Go
// toolchain embeds in module builds.
package version
