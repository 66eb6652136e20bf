// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/bureau-foundation/adminbot/lib/ref"
	"github.com/bureau-foundation/adminbot/lib/schema"
	"github.com/bureau-foundation/adminbot/messaging"
)

// Kind is the classification of a joined room.
type Kind int

const (
	// Aliased rooms have a canonical alias.
	Aliased Kind = iota + 1
	// DirectChat rooms have exactly two members, one being the bot.
	DirectChat
	// Orphaned rooms have the bot as their only member.
	Orphaned
	// ControlRoom is the configured control room.
	ControlRoom
	// UnaliasedGroup is everything else.
	UnaliasedGroup
)

func (k Kind) String() string {
	switch k {
	case Aliased:
		return "aliased"
	case DirectChat:
		return "direct"
	case Orphaned:
		return "orphaned"
	case ControlRoom:
		return "control"
	case UnaliasedGroup:
		return "unaliased"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RoomSummary is the classification of one room at the time of a
// listing. Members is sorted and empty for Aliased rooms, whose
// membership is never fetched.
type RoomSummary struct {
	RoomID  ref.RoomID
	Kind    Kind
	Alias   ref.RoomAlias
	Peer    ref.UserID
	Members []ref.UserID
}

// Classifier sorts rooms into kinds using the homeserver's view of
// their state and membership.
type Classifier struct {
	session     messaging.Session
	self        ref.UserID
	controlRoom ref.RoomID
}

// NewClassifier returns a Classifier for the bot user self.
func NewClassifier(session messaging.Session, self ref.UserID, controlRoom ref.RoomID) *Classifier {
	return &Classifier{session: session, self: self, controlRoom: controlRoom}
}

// Classify fetches the room's canonical alias and, when it has none,
// its joined members, and applies the rules in priority order: alias,
// direct chat, orphaned, control room, unaliased group. An aliased room
// is Aliased even when it also looks like a direct chat.
func (c *Classifier) Classify(ctx context.Context, roomID ref.RoomID) (RoomSummary, error) {
	summary := RoomSummary{RoomID: roomID}

	alias, found, err := c.CanonicalAlias(ctx, roomID)
	if err != nil {
		return summary, err
	}
	if found {
		summary.Kind = Aliased
		summary.Alias = alias
		return summary, nil
	}

	members, err := c.session.JoinedMembers(ctx, roomID)
	if err != nil {
		return summary, err
	}
	summary.Members = members

	switch {
	case len(members) == 2 && slices.Contains(members, c.self):
		summary.Kind = DirectChat
		for _, member := range members {
			if member != c.self {
				summary.Peer = member
			}
		}
	case len(members) == 1 && members[0] == c.self:
		summary.Kind = Orphaned
	case roomID == c.controlRoom:
		summary.Kind = ControlRoom
	default:
		summary.Kind = UnaliasedGroup
	}
	return summary, nil
}

// CanonicalAlias returns the room's canonical alias. A missing
// m.room.canonical_alias event, an event with no alias, and alias
// content that is not a well-formed room alias are all reported as
// found=false, not as errors: the content is written by room members
// and must not break classification of other rooms.
func (c *Classifier) CanonicalAlias(ctx context.Context, roomID ref.RoomID) (ref.RoomAlias, bool, error) {
	content, found, err := messaging.GetState[schema.CanonicalAliasContent](ctx, c.session, roomID, schema.MatrixEventTypeCanonicalAlias, "")
	if err != nil {
		if isContentDecodeError(err) {
			return ref.RoomAlias{}, false, nil
		}
		return ref.RoomAlias{}, false, err
	}
	if !found || content.Alias == "" {
		return ref.RoomAlias{}, false, nil
	}
	alias, err := ref.ParseRoomAlias(content.Alias)
	if err != nil {
		return ref.RoomAlias{}, false, nil
	}
	return alias, true, nil
}

// isContentDecodeError reports whether err is a JSON decode failure of
// event content rather than a transport or homeserver error.
func isContentDecodeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	return errors.As(err, &typeErr) || errors.As(err, &syntaxErr)
}
