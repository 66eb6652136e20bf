// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/adminbot/lib/ref"
	"github.com/bureau-foundation/adminbot/lib/schema"
	"github.com/bureau-foundation/adminbot/messaging"
)

// SyncFilter is the inline /sync filter for the bot: room messages in
// the timeline and nothing else. Invite state is always delivered.
const SyncFilter = `{"presence":{"not_types":["*"]},"account_data":{"not_types":["*"]},` +
	`"room":{"timeline":{"types":["m.room.message"],"limit":50},` +
	`"state":{"types":["m.room.member"],"lazy_load_members":true},` +
	`"ephemeral":{"not_types":["*"]},"account_data":{"not_types":["*"]}}}`

// Bot executes administrative commands against a Matrix session.
type Bot struct {
	config     Config
	session    messaging.Session
	self       ref.UserID
	classifier *Classifier
	logger     *slog.Logger
}

// response is the single message a command produces.
type response struct {
	body string
	// reply threads the message to the command event.
	reply bool
}

// New creates a Bot. The session's user ID must be known.
func New(config Config, session messaging.Session, logger *slog.Logger) (*Bot, error) {
	if config.Command == "" {
		return nil, fmt.Errorf("admin: command word is required")
	}
	self := session.UserID()
	if self.IsZero() {
		return nil, fmt.Errorf("admin: session has no user ID")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.ControlRoom.IsZero() {
		logger.Warn("no control room configured, all commands will be ignored")
	}
	return &Bot{
		config:     config,
		session:    session,
		self:       self,
		classifier: NewClassifier(session, self, config.ControlRoom),
		logger:     logger,
	}, nil
}

// HandleInitialSync processes the first sync snapshot. Pending invites
// are evaluated; the message backlog is not replayed, so commands sent
// while the bot was down are not executed.
func (b *Bot) HandleInitialSync(ctx context.Context, response *messaging.SyncResponse) {
	var group sync.WaitGroup
	b.startInvites(ctx, &group, response)
	group.Wait()
}

// HandleSync processes an incremental sync response. Every message and
// invite runs in its own goroutine; HandleSync returns when all of them
// have finished.
func (b *Bot) HandleSync(ctx context.Context, response *messaging.SyncResponse) {
	var group sync.WaitGroup
	for roomID, joined := range response.Rooms.Join {
		for _, event := range joined.Timeline.Events {
			incoming, ok := messageEvent(roomID, event)
			if !ok {
				continue
			}
			group.Go(func() { b.HandleMessage(ctx, incoming) })
		}
	}
	b.startInvites(ctx, &group, response)
	group.Wait()
}

func (b *Bot) startInvites(ctx context.Context, group *sync.WaitGroup, response *messaging.SyncResponse) {
	for roomID, invited := range response.Rooms.Invite {
		change, ok := membershipFor(roomID, b.self, invited.InviteState.Events)
		if !ok {
			continue
		}
		group.Go(func() { b.HandleInvite(ctx, change) })
	}
}

// HandleMessage runs one message through the gate, the parser, and the
// dispatcher. Messages that are not commands, come from the bot itself,
// are notices, or fail authorization produce no reply.
func (b *Bot) HandleMessage(ctx context.Context, evt IncomingEvent) {
	if evt.Sender == b.self || evt.MsgType == schema.MsgTypeNotice {
		return
	}
	cmd, ok := Parse(b.config.Command, evt)
	if !ok {
		return
	}
	logger := b.logger.With(
		"room_id", evt.RoomID,
		"sender", evt.Sender,
		"event_id", evt.EventID,
		"subcommand", cmd.Subcommand,
	)
	if !Authorized(b.config, evt) {
		logger.Debug("ignoring command outside the control room")
		return
	}

	logger.Info("running command")
	result := b.dispatch(ctx, evt, cmd)
	if err := b.respond(ctx, evt, result); err != nil {
		logger.Error("sending command response failed", "error", err)
	}
}

// dispatch selects the handler for cmd. A bare command and an unknown
// subcommand both produce the help text.
func (b *Bot) dispatch(ctx context.Context, evt IncomingEvent, cmd ParsedCommand) response {
	entry, found := lookupSubcommand(cmd.Subcommand)
	if !found {
		return response{body: HelpText(b.config.Command)}
	}
	return entry.handler(b, ctx, invocation{
		evt:   evt,
		cmd:   cmd,
		usage: usageText(b.config.Command, entry),
	})
}

// respond sends result to the room of evt as a markdown notice. The
// transaction ID is derived from the command event so a redelivered
// command does not produce a second reply.
func (b *Bot) respond(ctx context.Context, evt IncomingEvent, result response) error {
	var content messaging.MessageContent
	if result.reply {
		content = messaging.NewMarkdownReply(evt.EventID, result.body)
	} else {
		content = messaging.NewMarkdownMessage(result.body)
	}
	if !evt.EventID.IsZero() {
		content.TransactionID = messaging.DeriveTransactionID(evt.EventID, "response")
	}
	_, err := b.session.SendMessage(ctx, evt.RoomID, content)
	return err
}
