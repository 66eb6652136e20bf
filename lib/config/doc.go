// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the admin bot's configuration file.
//
// Configuration is loaded from a single file specified by either the
// ADMINBOT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search. Environment variables never override values from the file.
//
// Files ending in .json or .jsonc are parsed as JSON with comments and
// trailing commas (tidwall/jsonc strips them); anything else is YAML.
// JSON is re-encoded as YAML before decoding, so field names and duration
// syntax ("30s", "2m") are identical in either format.
//
// Variable expansion is performed on session_file after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// The loaded [Config] is read-only for the lifetime of the process.
// controlroom is either empty (the bot obeys no one) or a valid room
// ID; a malformed value fails the load.
package config
