// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

type keysMsg struct {
	keys []model.Credential
	err  error
}

type prefsMsg struct {
	prefs *api.Preferences
	err   error
}

type keyAddedMsg struct {
	key *api.APIKey
	err error
}

type keyDeletedMsg struct {
	id  int64
	err error
}

type prefsSavedMsg struct {
	prefs *api.Preferences
	err   error
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) loadKeysCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		wire, err := client.ListAPIKeys(context.Background())
		if err != nil {
			return keysMsg{err: err}
		}
		keys := make([]model.Credential, len(wire))
		for i, k := range wire {
			keys[i] = k.ToCredential()
		}
		return keysMsg{keys: keys}
	}
}

func (m *Model) loadPrefsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		prefs, err := client.GetPreferences(context.Background())
		return prefsMsg{prefs: prefs, err: err}
	}
}

func (m *Model) addKeyCmd(provider, name, secret string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		key, err := client.CreateAPIKey(context.Background(), api.CreateAPIKeyRequest{
			Provider: provider,
			Name:     name,
			APIKey:   secret,
		})
		return keyAddedMsg{key: key, err: err}
	}
}

func (m *Model) deleteKeyCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return keyDeletedMsg{id: id, err: client.DeleteAPIKey(context.Background(), id)}
	}
}

func (m *Model) savePrefsCmd(prefs api.Preferences) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		updated, err := client.UpdatePreferences(context.Background(), prefs)
		return prefsSavedMsg{prefs: updated, err: err}
	}
}
