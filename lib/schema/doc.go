// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the Matrix event type constants and state
// event content structures the admin bot reads: room membership
// ([MemberContent], including the is_direct invite flag) and canonical
// aliases ([CanonicalAliasContent]).
//
// This package depends only on lib/ref.
package schema
