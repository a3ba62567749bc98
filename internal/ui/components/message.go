// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components holds the smaller rendering pieces shared by the
// TUI views.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/gideon-chat/gideon-tui/internal/model"
	"github.com/gideon-chat/gideon-tui/internal/session"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// MessageRenderer renders transcript messages for the viewport.
type MessageRenderer struct {
	theme          *styles.Theme
	width          int
	markdown       bool
	showTimestamps bool
	glam           *glamour.TermRenderer
}

// NewMessageRenderer builds a renderer for the given width. Markdown
// rendering applies to assistant messages only; user input is shown
// verbatim.
func NewMessageRenderer(theme *styles.Theme, width int, markdown, showTimestamps bool) *MessageRenderer {
	r := &MessageRenderer{
		theme:          theme,
		width:          width,
		markdown:       markdown,
		showTimestamps: showTimestamps,
	}
	if markdown {
		glam, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(theme.GlamourStyle),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			r.glam = glam
		}
	}
	return r
}

// Render renders the full transcript plus any in-progress streamed
// text into one viewport-ready string.
func (r *MessageRenderer) Render(msgs []model.Message, streaming string) string {
	var sb strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.renderMessage(msg))
	}
	if streaming != "" {
		if len(msgs) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.theme.AssistantLabel.Render(model.RoleAssistant.DisplayName()))
		sb.WriteString("\n")
		sb.WriteString(streaming)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *MessageRenderer) renderMessage(msg model.Message) string {
	var sb strings.Builder

	label := r.theme.UserLabel
	if msg.Role == model.RoleAssistant {
		label = r.theme.AssistantLabel
	}
	sb.WriteString(label.Render(msg.Role.DisplayName()))
	if r.showTimestamps && !msg.CreatedAt.IsZero() {
		sb.WriteString(" ")
		sb.WriteString(r.theme.Timestamp.Render(msg.CreatedAt.Format("15:04")))
	}
	sb.WriteString("\n")
	sb.WriteString(r.renderContent(msg))
	sb.WriteString("\n")
	return sb.String()
}

func (r *MessageRenderer) renderContent(msg model.Message) string {
	if strings.HasPrefix(msg.Content, session.ErrorMessagePrefix) {
		return r.theme.ErrorMessage.Render(msg.Content)
	}
	if msg.Role == model.RoleAssistant && r.glam != nil {
		out, err := r.glam.Render(msg.Content)
		if err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return msg.Content
}

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the bottom status line.
func StatusBar(theme *styles.Theme, width int, conversation, modelName string, pending bool) string {
	state := "ready"
	if pending {
		state = "sending"
	}
	left := fmt.Sprintf(" %s ", conversation)
	right := fmt.Sprintf(" %s | %s ", modelName, state)

	// Display width, not bytes: titles and model names may be multibyte.
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return theme.StatusBar.Width(width).Render(line)
}
