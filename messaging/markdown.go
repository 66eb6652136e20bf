// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"bytes"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/bureau-foundation/adminbot/lib/ref"
)

// The goldmark instance is built once and shared; Convert keeps its
// per-call state on the stack.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Table,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		)
	})
	return markdownInstance
}

// RenderMarkdown converts markdown to the HTML subset Matrix clients
// accept in formatted_body. Raw HTML in the source is omitted from the
// output because command arguments are echoed into replies.
func RenderMarkdown(source string) (string, error) {
	var buffer bytes.Buffer
	if err := getMarkdown().Convert([]byte(source), &buffer); err != nil {
		return "", err
	}
	return strings.TrimRight(buffer.String(), "\n"), nil
}

// NewMarkdownMessage creates an m.notice whose body is the markdown
// source and whose formatted_body is the rendered HTML. If rendering
// fails the message degrades to plain text.
//
// Bot output uses m.notice so other bots (and this one) do not treat it
// as input.
func NewMarkdownMessage(source string) MessageContent {
	content := MessageContent{
		MsgType: "m.notice",
		Body:    source,
	}
	rendered, err := RenderMarkdown(source)
	if err == nil && rendered != "" {
		content.Format = "org.matrix.custom.html"
		content.FormattedBody = rendered
	}
	return content
}

// NewMarkdownReply is NewMarkdownMessage with a rich-reply relation to
// the given event.
func NewMarkdownReply(inReplyTo ref.EventID, source string) MessageContent {
	content := NewMarkdownMessage(source)
	if !inReplyTo.IsZero() {
		content.RelatesTo = &RelatesTo{InReplyTo: &InReplyTo{EventID: inReplyTo}}
	}
	return content
}
