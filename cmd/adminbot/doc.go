// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// adminbot is a Matrix room administration bot. It accepts
// "!<command> <subcommand>" messages in a single control room and
// lists, joins, and leaves rooms or relays messages on the operator's
// behalf. Direct-chat invites are accepted automatically.
//
// Two modes:
//
//	adminbot [--config PATH]
//	adminbot login <username> [--config PATH] [--password-file PATH]
//
// "login" authenticates with a password and writes the session file
// named in the config (mode 0600). Running without a subcommand loads
// that session and syncs until interrupted. The config path comes from
// --config or the ADMINBOT_CONFIG environment variable; there is no
// default location.
package main
