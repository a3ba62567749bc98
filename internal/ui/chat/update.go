// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/session"
)

// Update handles one Bubble Tea message.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.session.Pending() {
			// Picks up the optimistic user message inserted by the
			// in-flight send.
			m.syncViewport()
		}
		return m, cmd

	case deltaMsg:
		m.streaming.WriteString(msg.text)
		m.syncViewport()
		return m, m.listenDelta()

	case sendDoneMsg:
		m.streaming.Reset()
		m.statusMsg = ""
		if msg.err != nil && !isDisplayedInTranscript(msg.err) {
			m.statusMsg = msg.err.Error()
		}
		m.syncViewport()
		// A first send binds a fresh conversation; refresh the list so
		// the sidebar shows it.
		return m, m.refreshConversationsCmd()

	case conversationsMsg:
		if msg.err != nil {
			// Sidebar falls back to whatever it had; an empty list is
			// acceptable here.
			m.statusMsg = fmt.Sprintf("could not load conversations: %v", msg.err)
			return m, nil
		}
		m.sidebar.SetConversations(msg.convs)
		return m, nil

	case selectedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.showSidebar = false
		m.SetSize(m.width, m.height)
		return m, nil

	case renamedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.sidebar.SetConversations(m.session.Conversations())
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.sidebar.SetConversations(m.session.Conversations())
		m.syncViewport()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("exported to %s", msg.path)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case m.showSidebar:
		return m.handleSidebarKey(msg)

	case m.mode == modeRename:
		return m.handleRenameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		if m.session.Pending() {
			m.statusMsg = "still sending"
			return m, nil
		}
		m.input.Reset()
		m.statusMsg = ""
		return m, tea.Batch(m.sendCmd(text), m.spin.Tick)

	case key.Matches(msg, m.keys.NewChat):
		m.session.NewConversation()
		m.streaming.Reset()
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = true
		m.SetSize(m.width, m.height)
		return m, m.refreshConversationsCmd()

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.Settings):
		return m, func() tea.Msg { return OpenSettingsMsg{} }

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncViewport()
	return m, cmd
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CloseView), key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = false
		m.SetSize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveDown()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		if conv, ok := m.sidebar.Selected(); ok {
			return m, m.selectCmd(conv.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Rename):
		if conv, ok := m.sidebar.Selected(); ok {
			m.mode = modeRename
			m.showSidebar = false
			m.renameTarget = conv.ID
			m.input.SetValue(conv.DisplayTitle(""))
			m.input.CursorEnd()
			m.SetSize(m.width, m.height)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if conv, ok := m.sidebar.Selected(); ok {
			return m, m.deleteCmd(conv.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CloseView):
		m.mode = modeChat
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		title := m.input.Value()
		id := m.renameTarget
		m.mode = modeChat
		m.input.Reset()
		return m, m.renameCmd(id, title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// isDisplayedInTranscript reports whether a send failure already
// produced a synthetic transcript message, making a status line
// duplicate unnecessary.
func isDisplayedInTranscript(err error) bool {
	return !errors.Is(err, session.ErrEmptyMessage) &&
		!errors.Is(err, session.ErrNoCredential) &&
		!errors.Is(err, session.ErrSendInFlight) &&
		!errors.Is(err, session.ErrSessionDisposed)
}
