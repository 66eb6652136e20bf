// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/adminbot/lib/clock"
	"github.com/bureau-foundation/adminbot/messaging"
)

// Default sync settings applied when SyncConfig leaves a field zero.
const (
	DefaultSyncTimeout    = 30 * time.Second
	DefaultSyncMaxBackoff = 30 * time.Second
	initialBackoff        = time.Second
)

// SyncConfig configures the Matrix /sync long-poll loop.
type SyncConfig struct {
	// Filter is the inline JSON filter restricting which events the
	// homeserver returns.
	Filter string

	// Timeout is the server-side long-poll wait. Zero means
	// DefaultSyncTimeout.
	Timeout time.Duration

	// MaxBackoff caps the exponential backoff (starting at 1 second)
	// between failed polls. Zero means DefaultSyncMaxBackoff.
	MaxBackoff time.Duration
}

// SyncHandler is called for each /sync response. The next poll starts
// after the handler returns.
type SyncHandler func(ctx context.Context, response *messaging.SyncResponse)

// idleConnectionCloser is implemented by *messaging.DirectSession.
type idleConnectionCloser interface {
	CloseIdleConnections()
}

// InitialSync performs the first /sync with no since token. The
// homeserver answers immediately with a snapshot; the caller inspects it
// (pending invites, for example) and then starts RunSyncLoop from the
// returned next_batch token.
func InitialSync(ctx context.Context, session messaging.Session, filter string) (string, *messaging.SyncResponse, error) {
	response, err := session.Sync(ctx, messaging.SyncOptions{
		Filter: filter,
	})
	if err != nil {
		return "", nil, fmt.Errorf("initial sync: %w", err)
	}
	return response.NextBatch, response, nil
}

// RunSyncLoop runs the incremental /sync long-poll loop until ctx is
// cancelled, calling handler for each response.
//
// Transient errors are retried with exponential backoff (1 second to
// config.MaxBackoff) on clk. An M_UNKNOWN_TOKEN error means the access
// token was revoked; retrying cannot help, so the loop returns it.
// Cancellation returns nil.
func RunSyncLoop(ctx context.Context, session messaging.Session, config SyncConfig, sinceToken string, handler SyncHandler, clk clock.Clock, logger *slog.Logger) error {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultSyncTimeout
	}
	maxBackoff := config.MaxBackoff
	if maxBackoff == 0 {
		maxBackoff = DefaultSyncMaxBackoff
	}

	backoff := initialBackoff

	for {
		if ctx.Err() != nil {
			return nil
		}

		options := messaging.SyncOptions{
			Since:      sinceToken,
			Timeout:    int(timeout / time.Millisecond),
			SetTimeout: true,
			Filter:     config.Filter,
		}

		response, err := session.Sync(ctx, options)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if messaging.IsMatrixError(err, messaging.ErrCodeUnknownToken) {
				return fmt.Errorf("sync: access token rejected: %w", err)
			}
			logger.Error("sync failed, retrying", "error", err, "backoff", backoff)
			if closer, ok := session.(idleConnectionCloser); ok {
				closer.CloseIdleConnections()
			}
			select {
			case <-ctx.Done():
				return nil
			case <-clk.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		backoff = initialBackoff
		sinceToken = response.NextBatch

		handler(ctx, response)
	}
}
