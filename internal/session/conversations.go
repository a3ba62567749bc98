// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/export"
	"github.com/gideon-chat/gideon-tui/internal/model"
)

// messagePageSize bounds a single conversation load.
const messagePageSize = 200

// =============================================================================
// CONVERSATION FACADE
// =============================================================================

// NewConversation detaches the session from any server conversation and
// clears the transcript. The next send creates a fresh conversation on
// the backend. An in-flight send is fenced out.
func (m *Manager) NewConversation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bumpLocked()
	m.activeID = 0
	m.messages = nil
}

// SelectConversation loads a conversation's history and replaces the
// session state wholesale. On fetch failure the current state is left
// untouched.
func (m *Manager) SelectConversation(ctx context.Context, id int64) error {
	wire, err := m.backend.ListMessages(ctx, id, 0, messagePageSize)
	if err != nil {
		return fmt.Errorf("load conversation %d: %w", id, err)
	}

	msgs := make([]model.Message, len(wire))
	for i, w := range wire {
		msgs[i] = w.ToModel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bumpLocked()
	m.activeID = id
	m.messages = msgs
	return nil
}

// RefreshConversations refetches the conversation list (newest first)
// and caches it on the session.
func (m *Manager) RefreshConversations(ctx context.Context) ([]model.Conversation, error) {
	wire, err := m.backend.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	convs := make([]model.Conversation, len(wire))
	for i, c := range wire {
		convs[i] = c.ToModel()
	}

	m.mu.Lock()
	m.conversations = convs
	m.mu.Unlock()

	out := make([]model.Conversation, len(convs))
	copy(out, convs)
	return out, nil
}

// RenameConversation sets a conversation's title on the backend and
// mirrors the change into the cached list.
func (m *Manager) RenameConversation(ctx context.Context, id int64, title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyTitle
	}

	updated, err := m.backend.UpdateConversation(ctx, id, api.ConversationUpdate{Title: trimmed})
	if err != nil {
		return fmt.Errorf("rename conversation %d: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.conversations {
		if m.conversations[i].ID == id {
			m.conversations[i] = updated.ToModel()
			break
		}
	}
	return nil
}

// DeleteConversation removes a conversation on the backend. If it was
// the active one, the session detaches and the transcript clears.
func (m *Manager) DeleteConversation(ctx context.Context, id int64) error {
	if err := m.backend.DeleteConversation(ctx, id); err != nil {
		return fmt.Errorf("delete conversation %d: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.conversations {
		if m.conversations[i].ID == id {
			m.conversations = append(m.conversations[:i], m.conversations[i+1:]...)
			break
		}
	}
	if m.activeID == id {
		m.bumpLocked()
		m.activeID = 0
		m.messages = nil
	}
	return nil
}

// =============================================================================
// EXPORT
// =============================================================================

// Export takes a pure snapshot of the current transcript. No network
// calls are made, so optimistic and synthetic messages are included
// exactly as displayed.
func (m *Manager) Export() (export.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.messages) == 0 {
		return export.Snapshot{}, ErrNothingToExport
	}
	return export.NewSnapshot(m.titleLocked(), m.messages), nil
}

// titleLocked derives the display title for the active conversation.
// Callers must hold mu.
func (m *Manager) titleLocked() string {
	var conv model.Conversation
	for _, c := range m.conversations {
		if c.ID == m.activeID && m.activeID != 0 {
			conv = c
			break
		}
	}
	return conv.DisplayTitle(m.firstUserContentLocked())
}

func (m *Manager) firstUserContentLocked() string {
	for _, msg := range m.messages {
		if msg.Role == model.RoleUser {
			return msg.Content
		}
	}
	return ""
}
