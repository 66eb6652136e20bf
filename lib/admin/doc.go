// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package admin is the command engine of the admin bot.
//
// Every message delivered by /sync is turned into an [IncomingEvent]
// and runs through a fixed pipeline:
//
//  1. The authorization gate ([Authorized]) accepts only events sent in
//     the configured control room. With no control room configured
//     nothing is accepted. Rejected events are dropped without a reply.
//  2. The parser ([Parse]) recognizes "!<command> <subcommand> args..."
//     and extracts the first matrix.to link from the HTML body.
//  3. The dispatcher looks the subcommand up in a static table (list,
//     leave, join, send-message) and runs its handler, which makes
//     single-attempt calls through messaging.Session and produces
//     exactly one reply. A bare command or unknown subcommand produces
//     the help text.
//
// The room listing uses the [Classifier], which sorts every joined
// room into one of the [Kind] values. Rooms where the bot is the only
// member are left as a side effect of listing and never reported.
//
// Membership invites bypass the pipeline: an invite addressed to the
// bot with is_direct set is joined once, everything else is left
// pending.
//
// [Bot.HandleSync] runs each event of a sync batch in its own goroutine
// and returns when all of them have finished. The only shared state is
// the read-only [Config] and the session.
package admin
