// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the sign-in and registration form shown
// before a chat session exists.
package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

// DoneMsg signals a successful login; the token is already stored.
type DoneMsg struct{}

type resultMsg struct{ err error }

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// Model is the login form.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	inputs   [fieldCount]textinput.Model
	focused  int
	register bool
	busy     bool
	errMsg   string

	width  int
	height int
}

// New builds the login form.
func New(theme *styles.Theme, client *api.Client) *Model {
	m := &Model{theme: theme, client: client}

	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	m.inputs[fieldUsername] = username

	email := textinput.New()
	email.Placeholder = "email (register only)"
	m.inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword] = password

	return m
}

// Init is a no-op.
func (m *Model) Init() tea.Cmd { return textinput.Blink }

// SetSize resizes the form.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles one Bubble Tea message.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = loginErrorText(msg.err)
			return m, nil
		}
		if m.register {
			// Account created; switch back so the user signs in.
			m.register = false
			m.errMsg = "account created, sign in"
			return m, nil
		}
		return m, func() tea.Msg { return DoneMsg{} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "ctrl+r":
			m.register = !m.register
			m.errMsg = ""
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) focusNext() {
	m.inputs[m.focused].Blur()
	for {
		m.focused = (m.focused + 1) % fieldCount
		if m.focused != fieldEmail || m.register {
			break
		}
	}
	m.inputs[m.focused].Focus()
}

func (m *Model) focusPrev() {
	m.inputs[m.focused].Blur()
	for {
		m.focused = (m.focused + fieldCount - 1) % fieldCount
		if m.focused != fieldEmail || m.register {
			break
		}
	}
	m.inputs[m.focused].Focus()
}

func (m *Model) submit() (*Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if username == "" || password == "" || (m.register && email == "") {
		m.errMsg = "all fields are required"
		return m, nil
	}

	m.busy = true
	m.errMsg = ""
	client := m.client
	register := m.register
	return m, func() tea.Msg {
		ctx := context.Background()
		if register {
			_, err := client.Register(ctx, api.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
			})
			return resultMsg{err: err}
		}
		return resultMsg{err: client.Login(ctx, username, password)}
	}
}

// View renders the form.
func (m *Model) View() string {
	var sb strings.Builder

	title := "Sign in"
	if m.register {
		title = "Create account"
	}
	sb.WriteString(m.theme.ListTitle.Render(title))
	sb.WriteString("\n\n")

	sb.WriteString(m.inputs[fieldUsername].View())
	sb.WriteString("\n")
	if m.register {
		sb.WriteString(m.inputs[fieldEmail].View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.inputs[fieldPassword].View())
	sb.WriteString("\n\n")

	if m.busy {
		sb.WriteString(m.theme.Timestamp.Render("signing in..."))
		sb.WriteString("\n")
	}
	if m.errMsg != "" {
		sb.WriteString(m.theme.ErrorMessage.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.Timestamp.Render("enter submit · tab next field · ctrl+r toggle register · ctrl+c quit"))

	return m.theme.Border.Padding(1, 2).Render(sb.String())
}

func loginErrorText(err error) string {
	if api.IsUnauthorized(err) {
		return "invalid username or password"
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == 400 {
		return "registration rejected: " + httpErr.Body
	}
	return err.Error()
}
