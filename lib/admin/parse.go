// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParsedCommand is one recognized "!<command> ..." message.
type ParsedCommand struct {
	// Subcommand is the first token after the command word, or "" for
	// a bare command.
	Subcommand string

	// RawArgs is the text after the subcommand with surrounding
	// whitespace removed and inner whitespace preserved.
	RawArgs string

	// Args is RawArgs split on whitespace.
	Args []string

	// Link is the target of the first matrix.to link in the formatted
	// body, or "".
	Link string
}

// matrixLinkPattern matches the first href pointing into matrix.to and
// captures the identifier after "#/".
var matrixLinkPattern = regexp.MustCompile(`href=['"]?https?://matrix\.to/#/([^'" >]+)`)

// Parse recognizes "!<commandName>" at the start of the body, followed
// by whitespace or the end of the body. It reports false for anything
// else. Parsing is purely syntactic: arguments are not validated.
func Parse(commandName string, evt IncomingEvent) (ParsedCommand, bool) {
	if commandName == "" {
		return ParsedCommand{}, false
	}
	rest, found := strings.CutPrefix(evt.Body, "!"+commandName)
	if !found {
		return ParsedCommand{}, false
	}
	if first, _ := utf8.DecodeRuneInString(rest); rest != "" && !unicode.IsSpace(first) {
		return ParsedCommand{}, false
	}

	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	subcommand, remainder := splitToken(rest)

	raw := strings.TrimSpace(remainder)
	return ParsedCommand{
		Subcommand: subcommand,
		RawArgs:    raw,
		Args:       strings.Fields(raw),
		Link:       firstMatrixLink(evt.FormattedBody),
	}, true
}

// RoomReference is the room a leave or join acts on: the first
// matrix.to link if the message has one, otherwise the first argument.
// It returns "" when there is neither.
func (p ParsedCommand) RoomReference() string {
	if p.Link != "" {
		return p.Link
	}
	if len(p.Args) > 0 {
		return p.Args[0]
	}
	return ""
}

// firstMatrixLink extracts the identifier from the first matrix.to link
// in an HTML body. Routing hints ("?via=...") are dropped and percent
// escapes decoded; an undecodable identifier is returned as matched.
func firstMatrixLink(formattedBody string) string {
	if formattedBody == "" {
		return ""
	}
	match := matrixLinkPattern.FindStringSubmatch(formattedBody)
	if match == nil {
		return ""
	}
	target, _, _ := strings.Cut(match[1], "?")
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	return target
}

// splitToken returns the first whitespace-delimited token of s and the
// text after it.
func splitToken(s string) (token, rest string) {
	index := strings.IndexFunc(s, unicode.IsSpace)
	if index < 0 {
		return s, ""
	}
	return s[:index], s[index:]
}
