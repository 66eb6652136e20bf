// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"slices"
	"testing"

	"github.com/bureau-foundation/adminbot/lib/ref"
	"github.com/bureau-foundation/adminbot/lib/schema"
	"github.com/bureau-foundation/adminbot/messaging"
)

func TestHandleInvite(t *testing.T) {
	room := ref.MustParseRoomID("!invited:example.com")
	tests := []struct {
		name     string
		change   MembershipChange
		wantJoin bool
	}{
		{
			name:     "direct invite",
			change:   MembershipChange{RoomID: room, Sender: operator, StateKey: botUser.String(), Membership: schema.MembershipInvite, IsDirect: true},
			wantJoin: true,
		},
		{
			name:   "group invite",
			change: MembershipChange{RoomID: room, Sender: operator, StateKey: botUser.String(), Membership: schema.MembershipInvite},
		},
		{
			name:   "someone else invited",
			change: MembershipChange{RoomID: room, Sender: operator, StateKey: "@other:example.com", Membership: schema.MembershipInvite, IsDirect: true},
		},
		{
			name:   "not an invite",
			change: MembershipChange{RoomID: room, Sender: operator, StateKey: botUser.String(), Membership: schema.MembershipLeave, IsDirect: true},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			session := newFakeSession()
			bot := newTestBot(t, session)

			bot.HandleInvite(context.Background(), test.change)

			var want []string
			if test.wantJoin {
				want = []string{room.String()}
			}
			if !slices.Equal(session.joinCalls, want) {
				t.Errorf("joinCalls = %v, want %v", session.joinCalls, want)
			}
			if len(session.sentMessages()) != 0 {
				t.Error("invites must not produce messages")
			}
		})
	}
}

func TestHandleInviteFailureIsNotRetried(t *testing.T) {
	session := newFakeSession()
	room := ref.MustParseRoomID("!gone:example.com")
	session.joinErr[room.String()] = &messaging.MatrixError{Code: messaging.ErrCodeForbidden, Message: "invite revoked", StatusCode: 403}
	bot := newTestBot(t, session)

	bot.HandleInvite(context.Background(), MembershipChange{
		RoomID: room, Sender: operator, StateKey: botUser.String(),
		Membership: schema.MembershipInvite, IsDirect: true,
	})

	if len(session.joinCalls) != 1 {
		t.Errorf("join attempted %d times, want 1", len(session.joinCalls))
	}
}

func TestMembershipFor(t *testing.T) {
	room := ref.MustParseRoomID("!r:example.com")
	events := []messaging.Event{
		inviteEventFixture(ref.MustParseUserID("@other:example.com"), false),
		messageEventFixture("$msg", operator, `{"msgtype":"m.text","body":"hi"}`),
		inviteEventFixture(botUser, true),
	}

	change, ok := membershipFor(room, botUser, events)
	if !ok {
		t.Fatal("membershipFor found no event for the bot")
	}
	if change.RoomID != room || change.Sender != operator || !change.IsDirect || change.Membership != schema.MembershipInvite {
		t.Errorf("change = %+v", change)
	}

	if _, ok := membershipFor(room, botUser, events[:2]); ok {
		t.Error("membershipFor matched an event for another user")
	}
}

func TestMessageEvent(t *testing.T) {
	room := ref.MustParseRoomID("!r:example.com")

	html := messageEventFixture("$html", operator,
		`{"msgtype":"m.text","body":"b","format":"org.matrix.custom.html","formatted_body":"<b>b</b>"}`)
	incoming, ok := messageEvent(room, html)
	if !ok || incoming.FormattedBody != "<b>b</b>" || incoming.RoomID != room {
		t.Errorf("messageEvent(html) = %+v, %v", incoming, ok)
	}

	other := messageEventFixture("$other", operator,
		`{"msgtype":"m.text","body":"b","format":"something.else","formatted_body":"<b>b</b>"}`)
	if incoming, _ := messageEvent(room, other); incoming.FormattedBody != "" {
		t.Errorf("unknown format kept formatted body %q", incoming.FormattedBody)
	}

	broken := messageEventFixture("$broken", operator, `[`)
	if _, ok := messageEvent(room, broken); ok {
		t.Error("undecodable content should be skipped")
	}
}
