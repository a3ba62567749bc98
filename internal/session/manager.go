// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/auth"
	"github.com/gideon-chat/gideon-tui/internal/model"
	"github.com/gideon-chat/gideon-tui/internal/stream"
)

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the slice of the API client the session layer depends on.
// *api.Client satisfies it.
type Backend interface {
	SendChat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	StreamChat(ctx context.Context, req api.ChatRequest, fn func(stream.Frame)) error
	ListConversations(ctx context.Context) ([]api.Conversation, error)
	ListMessages(ctx context.Context, conversationID int64, skip, limit int) ([]api.Message, error)
	UpdateConversation(ctx context.Context, id int64, update api.ConversationUpdate) (*api.Conversation, error)
	DeleteConversation(ctx context.Context, id int64) error
}

// DeltaFunc receives streamed content fragments as they arrive. It is
// a display side-channel only; the message list is not touched until
// the stream completes.
type DeltaFunc func(text string)

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the live session state: the active conversation, its
// message list, and the single in-flight send slot. All exported
// methods are safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	backend Backend
	creds   *auth.Store

	id    string
	model string

	conversations []model.Conversation
	messages      []model.Message
	activeID      int64 // 0 = no conversation bound yet
	pendingSend   bool

	// generation fences in-flight sends against wholesale state
	// replacement (switch, new, delete, dispose). A completion whose
	// generation no longer matches is dropped.
	generation uint64

	onDelta  DeltaFunc
	disposed bool
}

// NewManager creates a session bound to a backend and credential store.
func NewManager(backend Backend, creds *auth.Store) *Manager {
	return &Manager{
		backend: backend,
		creds:   creds,
		id:      uuid.NewString(),
	}
}

// ID returns the session instance id.
func (m *Manager) ID() string { return m.id }

// SetModel selects the model name sent with chat requests. Empty means
// the backend default.
func (m *Manager) SetModel(name string) {
	m.mu.Lock()
	m.model = name
	m.mu.Unlock()
}

// Model returns the currently selected model name.
func (m *Manager) Model() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

// OnDelta registers the streaming side-channel callback.
func (m *Manager) OnDelta(fn DeltaFunc) {
	m.mu.Lock()
	m.onDelta = fn
	m.mu.Unlock()
}

func (m *Manager) deltaFunc() DeltaFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.onDelta
}

// Messages returns a copy of the committed message list.
func (m *Manager) Messages() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Conversations returns a copy of the last fetched conversation list.
func (m *Manager) Conversations() []model.Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Conversation, len(m.conversations))
	copy(out, m.conversations)
	return out
}

// ActiveConversationID returns the bound conversation id, or 0 when
// the session has not been attached to a server conversation yet.
func (m *Manager) ActiveConversationID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// Pending reports whether a send is in flight.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingSend
}

// Disposed reports whether Dispose has been called.
func (m *Manager) Disposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}

// Dispose tears the session down. In-flight sends are fenced out and
// their completions dropped; subsequent sends are rejected.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bumpLocked()
	m.activeID = 0
	m.messages = nil
	m.conversations = nil
	m.onDelta = nil
	m.disposed = true
}

// bumpLocked invalidates any in-flight send and frees the send slot.
// Callers must hold mu.
func (m *Manager) bumpLocked() {
	m.generation++
	m.pendingSend = false
}
