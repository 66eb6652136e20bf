// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/adminbot/lib/ref"
	"github.com/bureau-foundation/adminbot/lib/schema"
	"github.com/bureau-foundation/adminbot/lib/testutil"
	"github.com/bureau-foundation/adminbot/messaging"
)

var (
	botUser     = ref.MustParseUserID("@adminbot:example.com")
	operator    = ref.MustParseUserID("@operator:example.com")
	controlRoom = ref.MustParseRoomID("!control:example.com")
)

type sentMessage struct {
	roomID  ref.RoomID
	content messaging.MessageContent
}

// fakeSession is an in-memory homeserver. Every method records its call
// so tests can assert that nothing happened.
type fakeSession struct {
	mu sync.Mutex

	joined    []ref.RoomID
	members   map[ref.RoomID][]ref.UserID
	aliases   map[ref.RoomID]string
	// aliasJSON overrides aliases with raw m.room.canonical_alias content.
	aliasJSON map[ref.RoomID]string
	stateErr  map[ref.RoomID]error
	directory map[string]ref.RoomID
	joinErr   map[string]error
	leaveErr  map[ref.RoomID]error

	calls     []string
	left      []ref.RoomID
	joinCalls []string
	sent      []sentMessage
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		members:   make(map[ref.RoomID][]ref.UserID),
		aliases:   make(map[ref.RoomID]string),
		aliasJSON: make(map[ref.RoomID]string),
		stateErr:  make(map[ref.RoomID]error),
		directory: make(map[string]ref.RoomID),
		joinErr:   make(map[string]error),
		leaveErr:  make(map[ref.RoomID]error),
	}
}

// addRoom makes the bot a member of roomID along with others.
func (f *fakeSession) addRoom(roomID string, others ...string) ref.RoomID {
	id := ref.MustParseRoomID(roomID)
	members := []ref.UserID{botUser}
	for _, other := range others {
		members = append(members, ref.MustParseUserID(other))
	}
	slices.SortFunc(members, func(a, b ref.UserID) int {
		return strings.Compare(a.String(), b.String())
	})
	f.joined = append(f.joined, id)
	f.members[id] = members
	return id
}

func (f *fakeSession) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeSession) UserID() ref.UserID { return botUser }

func (f *fakeSession) Close() error { return nil }

func (f *fakeSession) WhoAmI(ctx context.Context) (ref.UserID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("whoami")
	return botUser, nil
}

func (f *fakeSession) JoinedRooms(ctx context.Context) ([]ref.RoomID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("joined_rooms")
	return slices.Clone(f.joined), nil
}

func (f *fakeSession) JoinedMembers(ctx context.Context, roomID ref.RoomID) ([]ref.UserID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("joined_members %s", roomID)
	members, ok := f.members[roomID]
	if !ok {
		return nil, &messaging.MatrixError{Code: messaging.ErrCodeForbidden, Message: "You are not in this room.", StatusCode: 403}
	}
	return slices.Clone(members), nil
}

func (f *fakeSession) GetStateEvent(ctx context.Context, roomID ref.RoomID, eventType ref.EventType, stateKey string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("state %s %s", roomID, eventType)
	if err, ok := f.stateErr[roomID]; ok {
		return nil, err
	}
	if eventType != schema.MatrixEventTypeCanonicalAlias {
		return nil, &messaging.MatrixError{Code: messaging.ErrCodeNotFound, Message: "Event not found.", StatusCode: 404}
	}
	if raw, ok := f.aliasJSON[roomID]; ok {
		return json.RawMessage(raw), nil
	}
	alias, ok := f.aliases[roomID]
	if !ok {
		return nil, &messaging.MatrixError{Code: messaging.ErrCodeNotFound, Message: "Event not found.", StatusCode: 404}
	}
	return json.Marshal(map[string]string{"alias": alias})
}

func (f *fakeSession) ResolveAlias(ctx context.Context, alias string) (ref.RoomID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("resolve %s", alias)
	roomID, ok := f.directory[alias]
	if !ok {
		return ref.RoomID{}, &messaging.MatrixError{Code: messaging.ErrCodeNotFound, Message: "Room alias " + alias + " not found.", StatusCode: 404}
	}
	return roomID, nil
}

func (f *fakeSession) JoinRoom(ctx context.Context, roomIDOrAlias string) (ref.RoomID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("join %s", roomIDOrAlias)
	f.joinCalls = append(f.joinCalls, roomIDOrAlias)
	if err, ok := f.joinErr[roomIDOrAlias]; ok {
		return ref.RoomID{}, err
	}
	if roomID, ok := f.directory[roomIDOrAlias]; ok {
		return roomID, nil
	}
	return ref.ParseRoomID(roomIDOrAlias)
}

func (f *fakeSession) LeaveRoom(ctx context.Context, roomID ref.RoomID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("leave %s", roomID)
	if err, ok := f.leaveErr[roomID]; ok {
		return err
	}
	f.left = append(f.left, roomID)
	f.joined = slices.DeleteFunc(f.joined, func(id ref.RoomID) bool { return id == roomID })
	delete(f.members, roomID)
	return nil
}

func (f *fakeSession) SendMessage(ctx context.Context, roomID ref.RoomID, content messaging.MessageContent) (ref.EventID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("send %s", roomID)
	f.sent = append(f.sent, sentMessage{roomID: roomID, content: content})
	return ref.MustParseEventID("$" + testutil.UniqueID("sent")), nil
}

func (f *fakeSession) Sync(ctx context.Context, options messaging.SyncOptions) (*messaging.SyncResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("sync")
	return &messaging.SyncResponse{}, nil
}

func (f *fakeSession) recordedCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeSession) sentMessages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.sent)
}

// newTestBot returns a Bot with the control room configured.
func newTestBot(t *testing.T, session *fakeSession) *Bot {
	t.Helper()
	return newTestBotWithConfig(t, session, Config{Command: "admin", ControlRoom: controlRoom})
}

func newTestBotWithConfig(t *testing.T, session *fakeSession, config Config) *Bot {
	t.Helper()
	bot, err := New(config, session, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return bot
}

// command builds a plain-text message event in roomID.
func command(roomID ref.RoomID, body string) IncomingEvent {
	return IncomingEvent{
		EventID: ref.MustParseEventID("$" + testutil.UniqueID("cmd")),
		Sender:  operator,
		RoomID:  roomID,
		MsgType: schema.MsgTypeText,
		Body:    body,
	}
}

// onlyReply asserts that exactly one message was sent, to the control
// room, and returns its body.
func onlyReply(t *testing.T, session *fakeSession) messaging.MessageContent {
	t.Helper()
	sent := session.sentMessages()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want exactly 1: %+v", len(sent), sent)
	}
	if sent[0].roomID != controlRoom {
		t.Fatalf("reply went to %s, want %s", sent[0].roomID, controlRoom)
	}
	return sent[0].content
}
