// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the process scaffolding around the admin
// engine: the stored Matrix session and the /sync loop.
//
//   - Session file: [SaveSession] writes the homeserver URL, user ID,
//     device ID, and access token to a 0600 JSON file after login;
//     [LoadSession] reads it back into an authenticated
//     messaging.DirectSession. The raw JSON bytes are zeroed after use.
//   - Sync loop: [InitialSync] takes the first snapshot without a since
//     token; [RunSyncLoop] long-polls with exponential backoff on
//     transient errors and hands every response to a [SyncHandler].
//     The next poll starts only after the handler returns.
//
// The binary composes these in main(); the package provides building
// blocks, not a runtime.
package service
