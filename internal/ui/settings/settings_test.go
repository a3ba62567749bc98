// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/auth"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) (*Model, *auth.Store) {
	t.Helper()
	store := auth.NewStore()
	return New(styles.Dark(), api.NewClient("http://unused.invalid", store), store), store
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestFirstKeyBecomesActiveCredential(t *testing.T) {
	m, store := newTestModel(t)

	m, cmd := m.Update(keyAddedMsg{key: &api.APIKey{ID: 7, Provider: "openai", Name: "work"}})
	if got := store.CredentialID(); got != 7 {
		t.Errorf("CredentialID = %d, want 7 (first key auto-selected)", got)
	}
	if cmd == nil {
		t.Error("expected a reload command after adding a key")
	}

	// A second key must not steal the selection.
	m, _ = m.Update(keyAddedMsg{key: &api.APIKey{ID: 9, Provider: "anthropic", Name: "personal"}})
	if got := store.CredentialID(); got != 7 {
		t.Errorf("CredentialID = %d, want 7 to stay selected", got)
	}
	_ = m
}

func TestDeletingActiveKeyClearsSelection(t *testing.T) {
	m, store := newTestModel(t)
	if err := store.SetCredentialID(7); err != nil {
		t.Fatalf("SetCredentialID failed: %v", err)
	}

	m, _ = m.Update(keyDeletedMsg{id: 7})
	if got := store.CredentialID(); got != 0 {
		t.Errorf("CredentialID = %d, want 0 after deleting the active key", got)
	}

	// Deleting some other key leaves the selection alone.
	if err := store.SetCredentialID(9); err != nil {
		t.Fatalf("SetCredentialID failed: %v", err)
	}
	m, _ = m.Update(keyDeletedMsg{id: 3})
	if got := store.CredentialID(); got != 9 {
		t.Errorf("CredentialID = %d, want 9", got)
	}
	_ = m
}

func TestEscReturnsDoneWithDefaultModel(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = m.Update(prefsMsg{prefs: &api.Preferences{DefaultModel: "claude-3-opus"}})

	m, cmd := m.Update(keyPress("esc"))
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	done, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("esc command returned %T, want DoneMsg", cmd())
	}
	if done.DefaultModel != "claude-3-opus" {
		t.Errorf("DefaultModel = %q, want %q", done.DefaultModel, "claude-3-opus")
	}
	_ = m
}

func TestAddFormRequiresAllFields(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(keyPress("a"))
	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want modeAdd", m.mode)
	}

	m, cmd := m.Update(keyPress("enter"))
	if cmd != nil {
		t.Error("empty form must not submit")
	}
	if m.mode != modeAdd {
		t.Error("empty submit must keep the form open")
	}
	if m.status == "" {
		t.Error("expected a validation notice")
	}
}
