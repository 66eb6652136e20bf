// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import "github.com/bureau-foundation/adminbot/lib/ref"

// Config is the engine configuration, fixed for the life of a Bot.
type Config struct {
	// Command is the trigger word after "!".
	Command string

	// ControlRoom is the only room commands are accepted from. The zero
	// value disables all commands.
	ControlRoom ref.RoomID
}

// Authorized reports whether evt may issue administrative commands:
// a control room is configured and evt was sent in it.
func Authorized(config Config, evt IncomingEvent) bool {
	if config.ControlRoom.IsZero() {
		return false
	}
	return evt.RoomID == config.ControlRoom
}
