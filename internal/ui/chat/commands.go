// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/export"
	"github.com/gideon-chat/gideon-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// OpenSettingsMsg asks the hosting model to switch to the settings
// view.
type OpenSettingsMsg struct{}

type deltaMsg struct{ text string }

type sendDoneMsg struct{ err error }

type conversationsMsg struct {
	convs []model.Conversation
	err   error
}

type selectedMsg struct{ err error }

type renamedMsg struct{ err error }

type deletedMsg struct {
	id  int64
	err error
}

type exportedMsg struct {
	path string
	err  error
}

// =============================================================================
// COMMANDS
// =============================================================================

// listenDelta waits for the next streamed fragment. It re-arms itself
// from Update after each delivery and returns nil once the view is
// closed.
func (m *Model) listenDelta() tea.Cmd {
	return func() tea.Msg {
		select {
		case text := <-m.deltaCh:
			return deltaMsg{text: text}
		case <-m.done:
			return nil
		}
	}
}

// sendCmd runs one send on the session. Streaming or sync is a config
// choice; either way completion arrives as sendDoneMsg.
func (m *Model) sendCmd(text string) tea.Cmd {
	sess := m.session
	streaming := m.cfg.Chat.Streaming
	return func() tea.Msg {
		var err error
		if streaming {
			err = sess.SendMessage(context.Background(), text)
		} else {
			err = sess.SendMessageSync(context.Background(), text)
		}
		return sendDoneMsg{err: err}
	}
}

func (m *Model) refreshConversationsCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		convs, err := sess.RefreshConversations(context.Background())
		return conversationsMsg{convs: convs, err: err}
	}
}

func (m *Model) selectCmd(id int64) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return selectedMsg{err: sess.SelectConversation(context.Background(), id)}
	}
}

func (m *Model) renameCmd(id int64, title string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return renamedMsg{err: sess.RenameConversation(context.Background(), id, title)}
	}
}

func (m *Model) deleteCmd(id int64) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return deletedMsg{id: id, err: sess.DeleteConversation(context.Background(), id)}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	sess := m.session
	format := m.cfg.Export.Format
	dir := m.cfg.Export.Directory
	if dir == "" {
		dir = "."
	}
	return func() tea.Msg {
		snap, err := sess.Export()
		if err != nil {
			return exportedMsg{err: err}
		}
		exp, err := export.ForFormat(format)
		if err != nil {
			return exportedMsg{err: err}
		}
		path, err := export.WriteFile(snap, exp, dir)
		return exportedMsg{path: path, err: err}
	}
}
