// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"github.com/bureau-foundation/adminbot/lib/ref"
	"github.com/bureau-foundation/adminbot/lib/schema"
	"github.com/bureau-foundation/adminbot/messaging"
)

// IncomingEvent is the engine's view of one timeline message.
type IncomingEvent struct {
	EventID ref.EventID
	Sender  ref.UserID
	RoomID  ref.RoomID
	MsgType string
	Body    string

	// FormattedBody is set only when the message carries
	// org.matrix.custom.html.
	FormattedBody string
}

// MembershipChange is the bot's own m.room.member state from an invite.
type MembershipChange struct {
	RoomID     ref.RoomID
	Sender     ref.UserID
	StateKey   string
	Membership string
	IsDirect   bool
}

// messageEvent converts an m.room.message timeline event. It reports
// false for other event types and for content that does not decode.
func messageEvent(roomID ref.RoomID, event messaging.Event) (IncomingEvent, bool) {
	if event.Type != schema.MatrixEventTypeMessage {
		return IncomingEvent{}, false
	}
	var content messaging.MessageContent
	if err := event.DecodeContent(&content); err != nil {
		return IncomingEvent{}, false
	}
	incoming := IncomingEvent{
		EventID: event.EventID,
		Sender:  event.Sender,
		RoomID:  roomID,
		MsgType: content.MsgType,
		Body:    content.Body,
	}
	if content.Format == schema.FormatHTML {
		incoming.FormattedBody = content.FormattedBody
	}
	return incoming, true
}

// membershipFor finds the m.room.member event whose state key is self
// among the stripped invite state of a room.
func membershipFor(roomID ref.RoomID, self ref.UserID, events []messaging.Event) (MembershipChange, bool) {
	for _, event := range events {
		if event.Type != schema.MatrixEventTypeMember || event.StateKey == nil || *event.StateKey != self.String() {
			continue
		}
		var content schema.MemberContent
		if err := event.DecodeContent(&content); err != nil {
			continue
		}
		return MembershipChange{
			RoomID:     roomID,
			Sender:     event.Sender,
			StateKey:   *event.StateKey,
			Membership: content.Membership,
			IsDirect:   content.IsDirect,
		}, true
	}
	return MembershipChange{}, false
}
