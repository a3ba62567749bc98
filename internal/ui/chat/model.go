// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main conversation view.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/config"
	"github.com/gideon-chat/gideon-tui/internal/session"
	"github.com/gideon-chat/gideon-tui/internal/ui/components"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

// mode selects what the input line is editing.
type mode int

const (
	modeChat   mode = iota // composing a message
	modeRename             // editing the selected conversation's title
)

const (
	sidebarWidth = 32
	deltaBacklog = 256
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme   *styles.Theme
	cfg     *config.Config
	session *session.Manager
	keys    KeyMap

	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	renderer *components.MessageRenderer
	sidebar  *components.Sidebar

	mode         mode
	showSidebar  bool
	renameTarget int64

	// streaming holds the partial assistant reply for live display.
	// It mirrors the session's delta side-channel, not its committed
	// message list.
	streaming strings.Builder
	deltaCh   chan string
	done      chan struct{}

	statusMsg string
}

// New builds the chat view bound to a session.
func New(cfg *config.Config, theme *styles.Theme, sess *session.Manager) *Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	m := &Model{
		theme:   theme,
		cfg:     cfg,
		session: sess,
		keys:    DefaultKeyMap(),
		input:   input,
		spin:    spin,
		sidebar: components.NewSidebar(theme, sidebarWidth),
		deltaCh: make(chan string, deltaBacklog),
		done:    make(chan struct{}),
	}

	sess.OnDelta(func(text string) {
		select {
		case m.deltaCh <- text:
		case <-m.done:
		}
	})
	return m
}

// Close detaches the view from the session's delta side-channel and
// unblocks any pending listener command. The hosting model must call
// it before dropping the view, or the listener goroutine leaks.
func (m *Model) Close() {
	m.session.OnDelta(nil)
	close(m.done)
}

// Init loads the conversation list and starts the delta listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshConversationsCmd(), m.listenDelta(), m.spin.Tick)
}

// SetSize resizes the view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	chatWidth := width
	if m.showSidebar {
		chatWidth -= sidebarWidth
	}

	// status bar + input frame
	viewportHeight := height - 4
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport = viewport.New(chatWidth, viewportHeight)
	m.input.Width = chatWidth - 4
	m.renderer = components.NewMessageRenderer(
		m.theme, chatWidth-2, m.cfg.UI.Markdown, m.cfg.UI.ShowTimestamps)
	m.syncViewport()
}

// syncViewport re-renders the transcript and follows the tail.
func (m *Model) syncViewport() {
	if m.renderer == nil {
		return
	}
	m.viewport.SetContent(m.renderer.Render(m.session.Messages(), m.streaming.String()))
	m.viewport.GotoBottom()
}

// activeTitle returns the status bar conversation label.
func (m *Model) activeTitle() string {
	active := m.session.ActiveConversationID()
	if active == 0 {
		return "new conversation"
	}
	for _, conv := range m.session.Conversations() {
		if conv.ID == active {
			return conv.DisplayTitle("")
		}
	}
	return "conversation"
}
