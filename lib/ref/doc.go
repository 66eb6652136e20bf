// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides strongly typed, immutable Matrix identifiers:
// [RoomID] (!opaque:server), [RoomAlias] (#name:server), [UserID]
// (@name:server), [EventID] ($hash) and [EventType].
//
// Constructors validate structure and return errors for malformed
// input. Every type implements encoding.TextMarshaler and
// encoding.TextUnmarshaler, so identifiers are validated automatically
// when they appear in JSON responses, JSON map keys, or YAML config.
// The empty string decodes to the zero value, which callers check with
// IsZero.
package ref
