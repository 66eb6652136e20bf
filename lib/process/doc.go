// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the binary entrypoint error handler: the one
// place that writes to stderr before the structured logger exists and
// chooses the process exit code.
package process
