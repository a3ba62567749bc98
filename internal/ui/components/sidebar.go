// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/gideon-chat/gideon-tui/internal/model"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
	"github.com/gideon-chat/gideon-tui/internal/util"
)

// =============================================================================
// CONVERSATION SIDEBAR
// =============================================================================

// Sidebar renders the conversation picker list.
type Sidebar struct {
	theme  *styles.Theme
	width  int
	cursor int
	convs  []model.Conversation
}

// NewSidebar builds a sidebar of the given width.
func NewSidebar(theme *styles.Theme, width int) *Sidebar {
	return &Sidebar{theme: theme, width: width}
}

// SetConversations replaces the list and clamps the cursor.
func (s *Sidebar) SetConversations(convs []model.Conversation) {
	s.convs = convs
	if s.cursor >= len(convs) {
		s.cursor = len(convs) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// MoveUp moves the cursor toward the top.
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves the cursor toward the bottom.
func (s *Sidebar) MoveDown() {
	if s.cursor < len(s.convs)-1 {
		s.cursor++
	}
}

// Selected returns the conversation under the cursor.
func (s *Sidebar) Selected() (model.Conversation, bool) {
	if len(s.convs) == 0 {
		return model.Conversation{}, false
	}
	return s.convs[s.cursor], true
}

// View renders the list with the active id marked.
func (s *Sidebar) View(activeID int64) string {
	var sb strings.Builder
	sb.WriteString(s.theme.ListTitle.Render("Conversations"))
	sb.WriteString("\n\n")

	if len(s.convs) == 0 {
		sb.WriteString(s.theme.ListItem.Render("(none yet)"))
		return sb.String()
	}

	for i, conv := range s.convs {
		marker := "  "
		if conv.ID == activeID {
			marker = "* "
		}
		title := util.TruncateWidth(conv.DisplayTitle(""), s.width-6)
		line := fmt.Sprintf("%s%s (%d)", marker, title, conv.MessageCount)

		style := s.theme.ListItem
		if i == s.cursor {
			style = s.theme.ListSelected
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}
