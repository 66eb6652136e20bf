// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging wraps the subset of the Matrix client-server API
// the admin bot needs.
//
// [Client] is an unauthenticated client holding the homeserver URL and
// HTTP transport. It performs password login and turns stored access
// tokens into authenticated [DirectSession] values. The access token
// lives in an mmap-backed secret.Buffer; callers must Close the session.
//
// [Session] is the narrow interface the bot engine consumes: identity
// (UserID, WhoAmI), membership (JoinedRooms, JoinedMembers, JoinRoom,
// LeaveRoom), room state (GetStateEvent, ResolveAlias), sending
// (SendMessage), and /sync. Tests substitute an in-memory fake.
//
// All API errors are returned as [*MatrixError] carrying the Matrix
// error code (M_FORBIDDEN, M_NOT_FOUND, ...) and HTTP status.
// [IsMatrixError] tests for a specific code. Request URLs are built by
// string concatenation with url.PathEscape on every path segment so
// room IDs and aliases containing reserved characters survive intact.
//
// Replies are markdown: [NewMarkdownMessage] keeps the markdown source
// as the plain body and renders org.matrix.custom.html with goldmark.
// [DeriveTransactionID] produces deterministic transaction IDs so a
// reply re-sent for the same triggering event is deduplicated by the
// homeserver.
package messaging
