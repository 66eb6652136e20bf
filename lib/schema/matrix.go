// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/adminbot/lib/ref"

// Standard Matrix event types the bot reads or writes.
const (
	MatrixEventTypeMessage        ref.EventType = "m.room.message"
	MatrixEventTypeMember         ref.EventType = "m.room.member"
	MatrixEventTypeCanonicalAlias ref.EventType = "m.room.canonical_alias"
)

// Membership values of m.room.member content.
const (
	MembershipInvite = "invite"
	MembershipLeave  = "leave"
)

// Message types of m.room.message content.
const (
	MsgTypeText   = "m.text"
	MsgTypeNotice = "m.notice"
)

// FormatHTML is the only rich-text format Matrix defines
// for the "format" field of message content.
const FormatHTML = "org.matrix.custom.html"

// CanonicalAliasContent is the content of m.room.canonical_alias. Any
// room member with the power level can write it, so Alias is kept as
// the raw string and validated by the reader. After an alias has been
// removed the event still exists with an empty content object. The
// alt_aliases list is not decoded.
type CanonicalAliasContent struct {
	Alias string `json:"alias,omitempty"`
}

// MemberContent is the content of m.room.member. IsDirect is set by the
// inviter on invites that open a direct chat.
type MemberContent struct {
	Membership  string `json:"membership"`
	DisplayName string `json:"displayname,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	IsDirect    bool   `json:"is_direct,omitempty"`
	Reason      string `json:"reason,omitempty"`
}
