// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/bureau-foundation/adminbot/lib/ref"
	"github.com/bureau-foundation/adminbot/messaging"
)

// list classifies every joined room, leaves orphaned ones, and renders
// the rest.
func (b *Bot) list(ctx context.Context, call invocation) response {
	joined, err := b.session.JoinedRooms(ctx)
	if err != nil {
		return response{body: "Unable to list rooms: " + messaging.Reason(err)}
	}

	summaries := make([]RoomSummary, 0, len(joined))
	for _, roomID := range joined {
		summary, err := b.classifier.Classify(ctx, roomID)
		if err != nil {
			return response{body: fmt.Sprintf("Unable to list rooms: %s: %s", roomID, messaging.Reason(err))}
		}
		if summary.Kind == Orphaned {
			b.leaveOrphan(ctx, roomID)
			continue
		}
		summaries = append(summaries, summary)
	}
	return response{body: RenderListing(summaries)}
}

// leaveOrphan leaves a room the bot is alone in. The result is logged,
// not reported.
func (b *Bot) leaveOrphan(ctx context.Context, roomID ref.RoomID) {
	if err := b.session.LeaveRoom(ctx, roomID); err != nil {
		b.logger.Warn("leaving orphaned room failed", "room_id", roomID, "error", err)
		return
	}
	b.logger.Info("left orphaned room", "room_id", roomID)
}

// leave resolves the room reference and leaves the room if the bot is
// in it.
func (b *Bot) leave(ctx context.Context, call invocation) response {
	reference := call.cmd.RoomReference()
	if reference == "" {
		return response{body: call.usage}
	}

	target, display, err := b.resolveReference(ctx, reference)
	if err != nil {
		return response{body: fmt.Sprintf("Unable to resolve %s: %s", reference, messaging.Reason(err))}
	}

	joined, err := b.session.JoinedRooms(ctx)
	if err != nil {
		return response{body: "Unable to list rooms: " + messaging.Reason(err)}
	}
	roomID, member := findJoined(joined, target)
	if !member {
		return response{body: fmt.Sprintf("I am not in the room %s (%s)", display, target)}
	}

	if err := b.session.LeaveRoom(ctx, roomID); err != nil {
		return response{body: fmt.Sprintf("Can not leave room %s `%s`: %s", display, target, messaging.Reason(err))}
	}
	return response{body: fmt.Sprintf("left room %s (%s)", display, target)}
}

// resolveReference turns a leave target into a room ID string and a
// display alias. "#alias" and "@user" references go through the alias
// directory and display as typed. "!room" references display their
// canonical alias when one can be read. Anything else passes through
// unchanged with no display alias.
func (b *Bot) resolveReference(ctx context.Context, reference string) (target, display string, err error) {
	switch reference[0] {
	case '#', '@':
		roomID, err := b.session.ResolveAlias(ctx, reference)
		if err != nil {
			return "", "", err
		}
		return roomID.String(), reference, nil
	case '!':
		roomID, parseErr := ref.ParseRoomID(reference)
		if parseErr != nil {
			return reference, "", nil
		}
		alias, found, lookupErr := b.classifier.CanonicalAlias(ctx, roomID)
		if lookupErr != nil {
			// Rooms the bot is not in refuse state reads; that is the
			// "not in the room" case, not a failure.
			b.logger.Debug("canonical alias lookup failed", "room_id", roomID, "error", lookupErr)
		}
		if found {
			display = alias.String()
		}
		return reference, display, nil
	default:
		return reference, "", nil
	}
}

// findJoined looks target up among the joined rooms by its string form.
func findJoined(joined []ref.RoomID, target string) (ref.RoomID, bool) {
	for _, roomID := range joined {
		if roomID.String() == target {
			return roomID, true
		}
	}
	return ref.RoomID{}, false
}

// join makes one join attempt with the reference as given.
func (b *Bot) join(ctx context.Context, call invocation) response {
	reference := call.cmd.RoomReference()
	if reference == "" {
		return response{body: call.usage}
	}
	if _, err := b.session.JoinRoom(ctx, reference); err != nil {
		return response{body: "Unable to join room: " + messaging.Reason(err)}
	}
	return response{body: "Joined room: " + reference}
}

// sendMessage relays text to a room and confirms with a reply to the
// command.
func (b *Bot) sendMessage(ctx context.Context, call invocation) response {
	target, text := splitToken(call.cmd.RawArgs)
	text = strings.TrimSpace(text)
	if target == "" || text == "" {
		return response{body: "need a room Id and a message", reply: true}
	}

	roomID, err := ref.ParseRoomID(target)
	if err != nil {
		return response{body: fmt.Sprintf("Unable to send message to %s: %s", target, err), reply: true}
	}

	content := messaging.NewTextMessage(text)
	if !call.evt.EventID.IsZero() {
		content.TransactionID = messaging.DeriveTransactionID(call.evt.EventID, "relay")
	}
	if _, err := b.session.SendMessage(ctx, roomID, content); err != nil {
		return response{body: fmt.Sprintf("Unable to send message to %s: %s", target, messaging.Reason(err)), reply: true}
	}
	return response{body: "sent message to " + target, reply: true}
}
