// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"

	"github.com/bureau-foundation/adminbot/lib/schema"
)

// ShouldJoin reports whether an invite is one the bot accepts: addressed
// to the bot, still an invite, and flagged as a direct chat.
func (b *Bot) ShouldJoin(change MembershipChange) bool {
	return change.StateKey == b.self.String() &&
		change.Membership == schema.MembershipInvite &&
		change.IsDirect
}

// HandleInvite joins the room of a direct-chat invite with a single
// attempt. Group invites are left pending. A failed join is logged and
// not retried.
func (b *Bot) HandleInvite(ctx context.Context, change MembershipChange) {
	logger := b.logger.With("room_id", change.RoomID, "sender", change.Sender)
	if !b.ShouldJoin(change) {
		logger.Debug("leaving invite pending", "membership", change.Membership, "is_direct", change.IsDirect)
		return
	}
	if _, err := b.session.JoinRoom(ctx, change.RoomID.String()); err != nil {
		logger.Error("joining direct chat failed", "error", err)
		return
	}
	logger.Info("joined direct chat")
}
