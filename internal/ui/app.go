// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui assembles the terminal application: the login form until
// a token exists, then the chat view bound to a live session, with a
// settings screen for API keys and preferences.
package ui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/auth"
	"github.com/gideon-chat/gideon-tui/internal/config"
	"github.com/gideon-chat/gideon-tui/internal/session"
	"github.com/gideon-chat/gideon-tui/internal/ui/chat"
	"github.com/gideon-chat/gideon-tui/internal/ui/login"
	"github.com/gideon-chat/gideon-tui/internal/ui/settings"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

// LoggedOutMsg is injected from outside the event loop when the
// backend rejects the token. It fires at most once per stored token.
type LoggedOutMsg struct{}

// ConfigReloadedMsg is injected when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

type screen int

const (
	screenLogin screen = iota
	screenChat
	screenSettings
)

// App is the root Bubble Tea model.
type App struct {
	cfg    *config.Config
	theme  *styles.Theme
	client *api.Client
	creds  *auth.Store

	screen   screen
	login    *login.Model
	chat     *chat.Model
	settings *settings.Model
	sess     *session.Manager

	width  int
	height int
}

// NewApp wires the root model. When a token is already stored the app
// opens straight into the chat view.
func NewApp(cfg *config.Config, client *api.Client, creds *auth.Store) *App {
	theme := styles.ForName(cfg.UI.Theme)
	app := &App{
		cfg:    cfg,
		theme:  theme,
		client: client,
		creds:  creds,
		screen: screenLogin,
		login:  login.New(theme, client),
	}
	if creds.HasToken() {
		app.openChat()
	}
	return app
}

// openChat creates a fresh session and binds the chat view to it.
func (a *App) openChat() {
	a.sess = session.NewManager(a.client, a.creds)
	a.sess.SetModel(a.cfg.Chat.DefaultModel)
	a.chat = chat.New(a.cfg, a.theme, a.sess)
	a.screen = screenChat
	if a.width > 0 {
		a.chat.SetSize(a.width, a.height)
	}
}

// openSettings switches to the settings view. The chat view and its
// session stay alive behind it.
func (a *App) openSettings(status string) {
	a.settings = settings.New(a.theme, a.client, a.creds)
	a.settings.SetStatus(status)
	a.settings.SetSize(a.width, a.height)
	a.screen = screenSettings
}

// closeChat disposes the session and returns to the login form.
func (a *App) closeChat() {
	if a.chat != nil {
		a.chat.Close()
		a.chat = nil
	}
	if a.sess != nil {
		a.sess.Dispose()
		a.sess = nil
	}
	a.settings = nil
	a.login = login.New(a.theme, a.client)
	a.screen = screenLogin
}

type credentialMsg struct{ err error }

// selectCredentialCmd picks the account's first active API key so
// sends have a credential to charge against. A fresh account has none;
// the settings screen opens so one can be added.
func (a *App) selectCredentialCmd() tea.Cmd {
	client, creds := a.client, a.creds
	return func() tea.Msg {
		keys, err := client.ListAPIKeys(context.Background())
		if err != nil {
			return credentialMsg{err: err}
		}
		for _, k := range keys {
			if k.IsActive {
				return credentialMsg{err: creds.SetCredentialID(k.ID)}
			}
		}
		return credentialMsg{}
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.screen == screenChat {
		return tea.Batch(a.chat.Init(), a.selectCredentialCmd())
	}
	return a.login.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// fall through to the active screen below

	case LoggedOutMsg:
		a.closeChat()
		return a, a.login.Init()

	case login.DoneMsg:
		a.openChat()
		return a, tea.Batch(a.chat.Init(), a.selectCredentialCmd())

	case credentialMsg:
		if msg.err != nil {
			log.Printf("app: selecting credential failed: %v", msg.err)
			return a, nil
		}
		if a.screen == screenChat && a.creds.CredentialID() == 0 {
			a.openSettings("add an API key to start chatting")
			return a, a.settings.Init()
		}
		return a, nil

	case chat.OpenSettingsMsg:
		a.openSettings("")
		return a, a.settings.Init()

	case settings.DoneMsg:
		if a.chat == nil {
			// Logged out while the settings screen was open.
			return a, nil
		}
		if msg.DefaultModel != "" {
			a.sess.SetModel(msg.DefaultModel)
		}
		a.settings = nil
		a.screen = screenChat
		a.chat.SetSize(a.width, a.height)
		return a, nil

	case ConfigReloadedMsg:
		a.cfg = msg.Config
		a.theme = styles.ForName(a.cfg.UI.Theme)
		switch a.screen {
		case screenChat:
			// Rebind the chat view so theme and render settings apply.
			a.chat.Close()
			a.chat = chat.New(a.cfg, a.theme, a.sess)
			a.chat.SetSize(a.width, a.height)
			return a, a.chat.Init()
		case screenSettings:
			a.openSettings("")
			return a, a.settings.Init()
		default:
			a.login = login.New(a.theme, a.client)
			return a, a.login.Init()
		}
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.Update(msg)
	case screenChat:
		a.chat, cmd = a.chat.Update(msg)
	case screenSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.screen {
	case screenChat:
		return a.chat.View()
	case screenSettings:
		return a.settings.View()
	default:
		return a.login.View()
	}
}
