// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so tests that wait on goroutines never hang forever. They are
// the only place tests use real wall-clock timeouts; everything else
// runs on lib/clock's fake clock.
//
// [UniqueID] generates monotonically increasing identifiers for event
// IDs and message bodies that must be distinguishable within a test.
package testutil
