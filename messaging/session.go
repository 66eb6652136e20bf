// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"

	"github.com/bureau-foundation/adminbot/lib/ref"
)

// Session is the set of Matrix operations the admin engine and the sync
// loop perform. *DirectSession is the production implementation; tests
// substitute an in-memory fake.
//
// Login-only details (AccessToken, DeviceID) are not part of this
// interface. Code that needs them should type-assert to *DirectSession.
type Session interface {
	// UserID returns the fully-qualified Matrix user ID of the bot.
	UserID() ref.UserID

	// Close releases any resources held by the session. Idempotent.
	Close() error

	// WhoAmI validates the session and returns the user ID.
	WhoAmI(ctx context.Context) (ref.UserID, error)

	// JoinedRooms returns the rooms the user is currently joined to.
	JoinedRooms(ctx context.Context) ([]ref.RoomID, error)

	// JoinedMembers returns the joined members of a room, sorted.
	JoinedMembers(ctx context.Context, roomID ref.RoomID) ([]ref.UserID, error)

	// GetStateEvent fetches a state event's content from a room. A
	// missing event is a *MatrixError with code M_NOT_FOUND.
	GetStateEvent(ctx context.Context, roomID ref.RoomID, eventType ref.EventType, stateKey string) (json.RawMessage, error)

	// ResolveAlias resolves a room alias to a room ID through the room
	// directory. The alias is passed through unparsed; the homeserver
	// rejects anything it does not recognize.
	ResolveAlias(ctx context.Context, alias string) (ref.RoomID, error)

	// JoinRoom joins a room by room ID or alias and returns the room ID.
	JoinRoom(ctx context.Context, roomIDOrAlias string) (ref.RoomID, error)

	// LeaveRoom leaves a room.
	LeaveRoom(ctx context.Context, roomID ref.RoomID) error

	// SendMessage sends an m.room.message event and returns its event ID.
	SendMessage(ctx context.Context, roomID ref.RoomID, content MessageContent) (ref.EventID, error)

	// Sync performs a sync with the homeserver.
	Sync(ctx context.Context, options SyncOptions) (*SyncResponse, error)
}

// Compile-time check: *DirectSession implements Session.
var _ Session = (*DirectSession)(nil)
