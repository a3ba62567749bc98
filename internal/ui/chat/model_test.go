// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/auth"
	"github.com/gideon-chat/gideon-tui/internal/config"
	"github.com/gideon-chat/gideon-tui/internal/session"
	"github.com/gideon-chat/gideon-tui/internal/stream"
	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

// stubBackend satisfies session.Backend with inert responses.
type stubBackend struct{}

func (stubBackend) SendChat(context.Context, api.ChatRequest) (*api.ChatResponse, error) {
	return &api.ChatResponse{}, nil
}
func (stubBackend) StreamChat(context.Context, api.ChatRequest, func(stream.Frame)) error {
	return nil
}
func (stubBackend) ListConversations(context.Context) ([]api.Conversation, error) {
	return nil, nil
}
func (stubBackend) ListMessages(context.Context, int64, int, int) ([]api.Message, error) {
	return nil, nil
}
func (stubBackend) UpdateConversation(context.Context, int64, api.ConversationUpdate) (*api.Conversation, error) {
	return &api.Conversation{}, nil
}
func (stubBackend) DeleteConversation(context.Context, int64) error { return nil }

func newTestModel(t *testing.T) (*Model, *session.Manager) {
	t.Helper()
	sess := session.NewManager(stubBackend{}, auth.NewStore())
	return New(config.Default(), styles.Dark(), sess), sess
}

func TestListenDelta_DeliversFragments(t *testing.T) {
	m, _ := newTestModel(t)
	defer m.Close()

	m.deltaCh <- "chunk"
	msg := m.listenDelta()()
	delta, ok := msg.(deltaMsg)
	if !ok {
		t.Fatalf("listenDelta() returned %T, want deltaMsg", msg)
	}
	if delta.text != "chunk" {
		t.Errorf("delta text = %q, want %q", delta.text, "chunk")
	}
}

func TestClose_UnblocksDeltaListener(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.listenDelta()
	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()

	m.Close()

	select {
	case msg := <-result:
		if msg != nil {
			t.Errorf("listener returned %v after Close, want nil", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("listener still blocked after Close")
	}
}
