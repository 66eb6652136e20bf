// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps the bot's access token and login password out of
// the Go heap.
//
// [Buffer] allocates an anonymous mmap region, locks it into RAM
// (mlock) and excludes it from core dumps (MADV_DONTDUMP). Close zeros,
// unlocks, and unmaps it. [NewFromBytes] moves a secret into a Buffer
// and zeros the source slice; [ReadFromPath] loads one from a file or
// stdin; [Zero] scrubs transient heap copies.
//
// Depends on golang.org/x/sys/unix.
package secret
