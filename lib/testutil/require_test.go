// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// recordingT captures Fatalf calls instead of stopping the test.
type recordingT struct {
	message string
}

func (r *recordingT) Helper() {}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.message = strings.TrimSpace(fmt.Sprintf(format, args...))
	panic(r)
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "value"); got != 7 {
		t.Errorf("RequireReceive = %d, want 7", got)
	}
}

func TestRequireReceiveTimeout(t *testing.T) {
	recorder := &recordingT{}
	func() {
		defer func() { recover() }()
		RequireReceive(recorder, make(chan int), time.Millisecond, "waiting for %s", "nothing")
	}()
	if !strings.Contains(recorder.message, "waiting for nothing") {
		t.Errorf("failure message = %q", recorder.message)
	}
}

func TestRequireClosed(t *testing.T) {
	done := make(chan struct{})
	close(done)
	RequireClosed(t, done, time.Second, "closed channel")
}

func TestUniqueID(t *testing.T) {
	first, second := UniqueID("evt"), UniqueID("evt")
	if first == second {
		t.Errorf("UniqueID returned %q twice", first)
	}
	if !strings.HasPrefix(first, "evt-") {
		t.Errorf("UniqueID = %q, want evt- prefix", first)
	}
}
