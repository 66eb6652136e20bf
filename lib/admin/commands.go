// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"strings"
)

// invocation is one authorized subcommand call.
type invocation struct {
	evt   IncomingEvent
	cmd   ParsedCommand
	usage string
}

// handlerFunc runs one subcommand and returns its single response.
// Handlers must not refer to the subcommands table; the usage hint is
// passed in instead.
type handlerFunc func(b *Bot, ctx context.Context, call invocation) response

// subcommand is one entry of the static command table.
type subcommand struct {
	name    string
	usage   string
	help    string
	handler handlerFunc
}

// rootHelp describes the bare command in the help block.
const rootHelp = "Admin Commands"

// subcommands is the command table in help order.
var subcommands = []subcommand{
	{
		name:    "list",
		help:    "List Rooms this bot is in",
		handler: (*Bot).list,
	},
	{
		name:    "leave",
		usage:   "<room_id>",
		help:    "Leave a Room",
		handler: (*Bot).leave,
	},
	{
		name:    "join",
		usage:   "<room_id_or_alias>",
		help:    "Join a Room",
		handler: (*Bot).join,
	},
	{
		name:    "send-message",
		usage:   "<room_id> <text>",
		help:    "Send a message to a room",
		handler: (*Bot).sendMessage,
	},
}

// lookupSubcommand returns the table entry for name.
func lookupSubcommand(name string) (subcommand, bool) {
	for _, entry := range subcommands {
		if entry.name == name {
			return entry, true
		}
	}
	return subcommand{}, false
}

// HelpText renders the help block for the given command word. Lines are
// joined with "\n" and the block has no trailing newline.
func HelpText(commandName string) string {
	root := "!" + commandName + " <subcommand> [...]"

	var builder strings.Builder
	builder.WriteString("**Usage:** " + root + "\n\n")
	builder.WriteString("● " + root + " - " + rootHelp)
	for _, entry := range subcommands {
		builder.WriteString("\n● " + entry.signature() + " - " + entry.help)
	}
	return builder.String()
}

// usageText is the one-line usage hint for a subcommand.
func usageText(commandName string, entry subcommand) string {
	return "**Usage:** !" + commandName + " " + entry.signature()
}

func (s subcommand) signature() string {
	if s.usage == "" {
		return s.name
	}
	return s.name + " " + s.usage
}
