// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"slices"
	"strings"
)

// lineEnd ends every line of the listing. The trailing spaces make each
// line a markdown hard break.
const lineEnd = "      \n"

// listing sections in display order.
var sectionTitles = [...]string{
	Aliased:        "Rooms",
	DirectChat:     "Direct Chats",
	UnaliasedGroup: "Unaliased Chats",
	ControlRoom:    "The Control Room",
}

var sectionOrder = [...]Kind{Aliased, DirectChat, UnaliasedGroup, ControlRoom}

// RenderListing renders room summaries as the markdown room report.
// Each section's lines are sorted; empty sections are omitted, and no
// rooms at all render as "". Orphaned summaries are ignored. The output
// depends only on the set of summaries, not their order.
func RenderListing(summaries []RoomSummary) string {
	sections := make(map[Kind][]string)
	for _, summary := range summaries {
		line, ok := renderLine(summary)
		if !ok {
			continue
		}
		sections[summary.Kind] = append(sections[summary.Kind], line)
	}

	var builder strings.Builder
	for _, kind := range sectionOrder {
		lines := sections[kind]
		if len(lines) == 0 {
			continue
		}
		slices.Sort(lines)
		builder.WriteString("##### " + sectionTitles[kind] + lineEnd)
		for _, line := range lines {
			builder.WriteString(line)
		}
	}
	return builder.String()
}

// renderLine formats one listing line. Unaliased rooms list their
// members sorted and quoted: ['@a:x', '@b:x'].
func renderLine(summary RoomSummary) (string, bool) {
	switch summary.Kind {
	case Aliased:
		return "* " + summary.Alias.String() + " - " + summary.RoomID.String() + lineEnd, true
	case DirectChat:
		return "* " + summary.Peer.String() + " - " + summary.RoomID.String() + lineEnd, true
	case UnaliasedGroup:
		members := make([]string, len(summary.Members))
		for index, member := range summary.Members {
			members[index] = "'" + member.String() + "'"
		}
		slices.Sort(members)
		return "* " + summary.RoomID.String() + " - [" + strings.Join(members, ", ") + "] users" + lineEnd, true
	case ControlRoom:
		return "* " + summary.RoomID.String() + lineEnd, true
	default:
		return "", false
	}
}
