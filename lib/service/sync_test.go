// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/adminbot/lib/clock"
	"github.com/bureau-foundation/adminbot/lib/testutil"
	"github.com/bureau-foundation/adminbot/messaging"
)

type syncResult struct {
	response *messaging.SyncResponse
	err      error
}

// scriptedSession answers Sync from a queue of results and blocks when
// the queue is empty. Other Session methods are not used by the loop.
type scriptedSession struct {
	messaging.Session

	results chan syncResult

	mu    sync.Mutex
	calls []messaging.SyncOptions
}

func newScriptedSession(results ...syncResult) *scriptedSession {
	session := &scriptedSession{results: make(chan syncResult, len(results))}
	for _, result := range results {
		session.results <- result
	}
	return session
}

func (s *scriptedSession) Sync(ctx context.Context, options messaging.SyncOptions) (*messaging.SyncResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, options)
	s.mu.Unlock()
	select {
	case result := <-s.results:
		return result.response, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *scriptedSession) recordedCalls() []messaging.SyncOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]messaging.SyncOptions(nil), s.calls...)
}

func TestInitialSync(t *testing.T) {
	session := newScriptedSession(syncResult{response: &messaging.SyncResponse{NextBatch: "s1"}})

	since, response, err := InitialSync(context.Background(), session, `{"room":{}}`)
	if err != nil {
		t.Fatalf("InitialSync failed: %v", err)
	}
	if since != "s1" || response.NextBatch != "s1" {
		t.Errorf("InitialSync = (%q, %+v)", since, response)
	}
	calls := session.recordedCalls()
	if len(calls) != 1 || calls[0].Since != "" || calls[0].SetTimeout || calls[0].Filter != `{"room":{}}` {
		t.Errorf("initial sync options = %+v", calls)
	}
}

func TestRunSyncLoopBackoff(t *testing.T) {
	transient := errors.New("connection refused")
	session := newScriptedSession(
		syncResult{err: transient},
		syncResult{err: transient},
		syncResult{response: &messaging.SyncResponse{NextBatch: "s2"}},
	)
	fakeClock := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handled := make(chan string, 1)
	done := make(chan struct{})
	var loopErr error
	go func() {
		defer close(done)
		loopErr = RunSyncLoop(ctx, session, SyncConfig{Filter: "f"}, "s1",
			func(ctx context.Context, response *messaging.SyncResponse) {
				handled <- response.NextBatch
			},
			fakeClock, slog.New(slog.DiscardHandler))
	}()

	// First failure: 1s backoff.
	fakeClock.WaitForTimers(1)
	fakeClock.Advance(time.Second)

	// Second failure: backoff doubled to 2s, so 1s is not enough.
	fakeClock.WaitForTimers(1)
	fakeClock.Advance(time.Second)
	if fakeClock.PendingCount() != 1 {
		t.Fatalf("backoff fired after 1s, want 2s")
	}
	fakeClock.Advance(time.Second)

	if got := testutil.RequireReceive(t, handled, 5*time.Second, "waiting for handler"); got != "s2" {
		t.Errorf("handler saw next_batch %q, want s2", got)
	}

	cancel()
	testutil.RequireClosed(t, done, 5*time.Second, "sync loop exit")
	if loopErr != nil {
		t.Errorf("RunSyncLoop returned %v after cancellation, want nil", loopErr)
	}

	calls := session.recordedCalls()
	if len(calls) != 4 {
		t.Fatalf("sync called %d times, want 4", len(calls))
	}
	for index, call := range calls[:3] {
		if call.Since != "s1" || call.Timeout != 30000 || !call.SetTimeout || call.Filter != "f" {
			t.Errorf("call %d options = %+v", index, call)
		}
	}
	if calls[3].Since != "s2" {
		t.Errorf("sync after success used since %q, want s2", calls[3].Since)
	}
}

func TestRunSyncLoopUnknownToken(t *testing.T) {
	session := newScriptedSession(syncResult{err: &messaging.MatrixError{
		Code:       messaging.ErrCodeUnknownToken,
		Message:    "Invalid access token",
		StatusCode: 401,
	}})

	err := RunSyncLoop(context.Background(), session, SyncConfig{}, "s1",
		func(context.Context, *messaging.SyncResponse) { t.Error("handler must not run") },
		clock.Fake(time.Now()), slog.New(slog.DiscardHandler))
	if !messaging.IsMatrixError(err, messaging.ErrCodeUnknownToken) {
		t.Fatalf("RunSyncLoop = %v, want M_UNKNOWN_TOKEN", err)
	}
}

func TestRunSyncLoopCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := newScriptedSession()
	if err := RunSyncLoop(ctx, session, SyncConfig{}, "", nil, clock.Fake(time.Now()), slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("RunSyncLoop = %v, want nil", err)
	}
	if len(session.recordedCalls()) != 0 {
		t.Error("sync called after cancellation")
	}
}
