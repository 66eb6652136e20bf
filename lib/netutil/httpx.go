// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds reads of homeserver JSON responses.
//
// A misbehaving homeserver (or something impersonating one) must not be
// able to make the bot allocate without limit, so every response body
// goes through [ReadResponse] instead of io.ReadAll. Error bodies
// quoted into messages go through [ErrorBody], which keeps far less.
package netutil

import (
	"io"
	"unicode/utf8"
)

// MaxResponseSize caps a single JSON API response body at 64 MB. An
// initial /sync for an account in many large rooms is the biggest
// legitimate response and stays well below this.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// MaxErrorBodySize caps how much of a non-JSON error body ErrorBody
// keeps. Proxy error pages can be large HTML documents, and the result
// ends up in error strings that are logged and posted to chat.
const MaxErrorBodySize = 512

// ErrorBody reads an error response body for use in a diagnostic
// message. Read errors are ignored; a partial body is still useful.
// Bodies longer than MaxErrorBodySize are cut on a rune boundary and
// marked with a "(truncated)" suffix.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxErrorBodySize+1))
	if len(data) <= MaxErrorBodySize {
		return string(data)
	}
	data = data[:MaxErrorBodySize]
	for range utf8.UTFMax - 1 {
		last, size := utf8.DecodeLastRune(data)
		if last != utf8.RuneError || size != 1 {
			break
		}
		data = data[:len(data)-1]
	}
	return string(data) + " (truncated)"
}
