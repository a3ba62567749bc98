// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings implements the account settings view: stored API
// keys (list, add, delete, pick the active one) and server-side
// preferences. A fresh account lands here first, since sends are
// rejected until a credential exists.
package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/auth"
	"github.com/gideon-chat/gideon-tui/internal/model"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

// DoneMsg closes the settings view. DefaultModel carries the saved
// preference so the host can apply it to the live session.
type DoneMsg struct {
	DefaultModel string
}

// mode selects what the view is editing.
type mode int

const (
	modeList  mode = iota // browsing the key list
	modeAdd                // add-key form
	modeModel              // editing the default model preference
)

const (
	addProvider = iota
	addName
	addSecret
	addFieldCount
)

// Model is the Bubble Tea model for the settings view.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	creds  *auth.Store

	keys   []model.Credential
	cursor int
	prefs  *api.Preferences

	mode       mode
	inputs     [addFieldCount]textinput.Model
	modelInput textinput.Model
	focused    int

	status string
	width  int
	height int
}

// New builds the settings view.
func New(theme *styles.Theme, client *api.Client, creds *auth.Store) *Model {
	m := &Model{theme: theme, client: client, creds: creds}

	provider := textinput.New()
	provider.Placeholder = "provider (openai, anthropic, ...)"
	m.inputs[addProvider] = provider

	name := textinput.New()
	name.Placeholder = "label"
	m.inputs[addName] = name

	secret := textinput.New()
	secret.Placeholder = "API key"
	secret.EchoMode = textinput.EchoPassword
	m.inputs[addSecret] = secret

	modelInput := textinput.New()
	modelInput.Placeholder = "model name (empty for backend default)"
	m.modelInput = modelInput

	return m
}

// Init loads the stored keys and preferences.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadKeysCmd(), m.loadPrefsCmd(), textinput.Blink)
}

// SetSize resizes the view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStatus shows a one-line notice, used by the host when it opens
// the view with a reason.
func (m *Model) SetStatus(status string) {
	m.status = status
}

// defaultModel returns the loaded default-model preference.
func (m *Model) defaultModel() string {
	if m.prefs == nil {
		return ""
	}
	return m.prefs.DefaultModel
}

// Update handles one Bubble Tea message.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case keysMsg:
		if msg.err != nil {
			m.status = "could not load keys: " + msg.err.Error()
			return m, nil
		}
		m.keys = msg.keys
		if m.cursor >= len(m.keys) {
			m.cursor = 0
		}
		return m, nil

	case prefsMsg:
		if msg.err != nil {
			m.status = "could not load preferences: " + msg.err.Error()
			return m, nil
		}
		m.prefs = msg.prefs
		m.modelInput.SetValue(msg.prefs.DefaultModel)
		return m, nil

	case keyAddedMsg:
		if msg.err != nil {
			m.status = "adding key failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "key added"
		// First key becomes the active credential automatically.
		if m.creds.CredentialID() == 0 {
			if err := m.creds.SetCredentialID(msg.key.ID); err != nil {
				m.status = "key added, selecting it failed: " + err.Error()
			}
		}
		return m, m.loadKeysCmd()

	case keyDeletedMsg:
		if msg.err != nil {
			m.status = "deleting key failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "key deleted"
		if m.creds.CredentialID() == msg.id {
			if err := m.creds.SetCredentialID(0); err != nil {
				m.status = "key deleted, clearing selection failed: " + err.Error()
			}
		}
		return m, m.loadKeysCmd()

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = "saving preferences failed: " + msg.err.Error()
			return m, nil
		}
		m.prefs = msg.prefs
		m.status = "preferences saved"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeAdd:
		return m.handleAddKey(msg)
	case modeModel:
		return m.handleModelKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return DoneMsg{DefaultModel: m.defaultModel()} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.keys)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.cursor < len(m.keys) {
			key := m.keys[m.cursor]
			if err := m.creds.SetCredentialID(key.ID); err != nil {
				m.status = "selecting key failed: " + err.Error()
			} else {
				m.status = "using " + key.Name
			}
		}
		return m, nil

	case "a":
		m.mode = modeAdd
		m.focused = addProvider
		for i := range m.inputs {
			m.inputs[i].Reset()
			m.inputs[i].Blur()
		}
		m.inputs[addProvider].Focus()
		return m, nil

	case "d":
		if m.cursor < len(m.keys) {
			return m, m.deleteKeyCmd(m.keys[m.cursor].ID)
		}
		return m, nil

	case "m":
		m.mode = modeModel
		m.modelInput.Focus()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleAddKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil

	case "tab", "down":
		m.inputs[m.focused].Blur()
		m.focused = (m.focused + 1) % addFieldCount
		m.inputs[m.focused].Focus()
		return m, nil

	case "shift+tab", "up":
		m.inputs[m.focused].Blur()
		m.focused = (m.focused + addFieldCount - 1) % addFieldCount
		m.inputs[m.focused].Focus()
		return m, nil

	case "enter":
		provider := strings.TrimSpace(m.inputs[addProvider].Value())
		name := strings.TrimSpace(m.inputs[addName].Value())
		secret := m.inputs[addSecret].Value()
		if provider == "" || name == "" || secret == "" {
			m.status = "all key fields are required"
			return m, nil
		}
		m.mode = modeList
		return m, m.addKeyCmd(provider, name, secret)
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) handleModelKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.modelInput.SetValue(m.defaultModel())
		return m, nil

	case "enter":
		m.mode = modeList
		if m.prefs == nil {
			m.prefs = &api.Preferences{}
		}
		prefs := *m.prefs
		prefs.DefaultModel = strings.TrimSpace(m.modelInput.Value())
		return m, m.savePrefsCmd(prefs)
	}

	var cmd tea.Cmd
	m.modelInput, cmd = m.modelInput.Update(msg)
	return m, cmd
}
