// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gideon-chat/gideon-tui/internal/ui/components"
)

// View renders the chat screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var sb strings.Builder

	main := m.viewport.View()
	if m.showSidebar {
		side := m.theme.Border.Width(sidebarWidth - 2).Render(
			m.sidebar.View(m.session.ActiveConversationID()))
		main = lipgloss.JoinHorizontal(lipgloss.Top, side, main)
	}
	sb.WriteString(main)
	sb.WriteString("\n")

	prompt := "> "
	if m.mode == modeRename {
		prompt = "rename: "
	}
	inputLine := prompt + m.input.View()
	if m.session.Pending() {
		inputLine = m.spin.View() + " " + inputLine
	}
	sb.WriteString(m.theme.InputFrame.Width(m.width - 2).Render(inputLine))
	sb.WriteString("\n")

	status := m.statusMsg
	if status == "" {
		status = m.activeTitle()
	}
	sb.WriteString(components.StatusBar(
		m.theme, m.width, status, m.modelLabel(), m.session.Pending()))

	return sb.String()
}

func (m *Model) modelLabel() string {
	if name := m.session.Model(); name != "" {
		return name
	}
	return "default model"
}
