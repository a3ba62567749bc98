// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gideon-chat/gideon-tui/internal/api"
	"github.com/gideon-chat/gideon-tui/internal/model"
	"github.com/gideon-chat/gideon-tui/internal/stream"
)

// ErrorMessagePrefix marks synthetic assistant messages that record a
// failed send. The UI styles messages carrying this prefix differently
// from real assistant output.
const ErrorMessagePrefix = "⚠ Error: "

// sendToken carries the state of one optimistic send from begin to
// commit or failure.
type sendToken struct {
	req        api.ChatRequest
	generation uint64
	userMsgID  model.MessageID
}

// =============================================================================
// STREAMING SEND
// =============================================================================

// SendMessage performs one streamed send. The user message is inserted
// optimistically before the request goes out; deltas reach the OnDelta
// callback as they arrive; the assistant message is committed only when
// the stream reports done. Any failure after the optimistic insert is
// recorded as a synthetic error message so the transcript keeps the
// attempt, and the send slot is freed either way.
func (m *Manager) SendMessage(ctx context.Context, text string) error {
	tok, err := m.beginSend(text)
	if err != nil {
		return err
	}

	var reply strings.Builder
	streamErr := m.backend.StreamChat(ctx, tok.req, func(f stream.Frame) {
		if f.Kind != stream.KindDelta {
			return
		}
		reply.WriteString(f.Payload)
		if fn := m.deltaFunc(); fn != nil {
			fn(f.Payload)
		}
	})
	if streamErr != nil {
		return m.failSend(tok, streamErr, reply.Len())
	}

	convID := int64(0)
	if tok.req.ConversationID != nil {
		convID = *tok.req.ConversationID
	}

	var convs []model.Conversation
	if convID == 0 {
		// First message of a fresh conversation: the backend created
		// one server-side but the stream carries no id, so resolve it
		// from the conversation list (most recent first).
		convID, convs, err = m.resolveNewConversation(ctx)
		if err != nil {
			return m.failSend(tok, err, reply.Len())
		}
	}

	m.commitSend(tok, convID, model.NewAssistantMessage(reply.String()), convs)
	return nil
}

// SendMessageSync performs one non-streaming send. The conversation id
// and the stored assistant message come back in the response directly.
func (m *Manager) SendMessageSync(ctx context.Context, text string) error {
	tok, err := m.beginSend(text)
	if err != nil {
		return err
	}

	resp, err := m.backend.SendChat(ctx, tok.req)
	if err != nil {
		return m.failSend(tok, err, 0)
	}

	m.commitSend(tok, resp.ConversationID, resp.Message.ToModel(), nil)
	return nil
}

// =============================================================================
// SEND LIFECYCLE
// =============================================================================

// beginSend validates the send, claims the send slot, and inserts the
// optimistic user message. On any validation error nothing changes.
func (m *Manager) beginSend(text string) (sendToken, error) {
	trimmed := strings.TrimSpace(text)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposed {
		return sendToken{}, ErrSessionDisposed
	}
	if trimmed == "" {
		return sendToken{}, ErrEmptyMessage
	}
	credID := m.creds.CredentialID()
	if credID == 0 {
		return sendToken{}, ErrNoCredential
	}
	if m.pendingSend {
		return sendToken{}, ErrSendInFlight
	}

	m.pendingSend = true
	userMsg := model.NewUserMessage(trimmed)
	m.messages = append(m.messages, userMsg)

	req := api.ChatRequest{
		Message:  trimmed,
		APIKeyID: credID,
		Model:    m.model,
	}
	if m.activeID != 0 {
		id := m.activeID
		req.ConversationID = &id
	}

	return sendToken{req: req, generation: m.generation, userMsgID: userMsg.ID}, nil
}

// commitSend lands a completed send: binds the conversation id, appends
// the assistant message, and frees the send slot. Stale completions
// (session replaced since beginSend) are dropped whole.
func (m *Manager) commitSend(tok sendToken, convID int64, msg model.Message, convs []model.Conversation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != tok.generation {
		log.Printf("session: dropping stale send completion (conversation %d)", convID)
		return
	}

	m.pendingSend = false
	m.activeID = convID
	m.messages = append(m.messages, msg)
	if convs != nil {
		m.conversations = convs
	}
}

// failSend records a failed send. Unauthorized rolls the optimistic
// message back and lets the global logout event carry the news; every
// other failure commits a synthetic assistant error message in place of
// the reply. Partial streamed content is discarded, with its size noted
// in the error message.
func (m *Manager) failSend(tok sendToken, cause error, partialLen int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != tok.generation {
		log.Printf("session: dropping stale send failure: %v", cause)
		return cause
	}

	m.pendingSend = false

	if api.IsUnauthorized(cause) {
		m.removeMessageLocked(tok.userMsgID)
		return cause
	}

	content := ErrorMessagePrefix + cause.Error()
	if partialLen > 0 {
		content += fmt.Sprintf("\n(%d characters of partial reply discarded)", partialLen)
	}
	m.messages = append(m.messages, model.NewAssistantMessage(content))
	return cause
}

// resolveNewConversation finds the id the backend assigned to a fresh
// conversation by listing conversations, newest first.
func (m *Manager) resolveNewConversation(ctx context.Context) (int64, []model.Conversation, error) {
	wire, err := m.backend.ListConversations(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("resolve new conversation: %w", err)
	}
	if len(wire) == 0 {
		return 0, nil, fmt.Errorf("resolve new conversation: backend returned no conversations")
	}

	convs := make([]model.Conversation, len(wire))
	for i, c := range wire {
		convs[i] = c.ToModel()
	}
	return convs[0].ID, convs, nil
}

func (m *Manager) removeMessageLocked(id model.MessageID) {
	for i, msg := range m.messages {
		if msg.ID == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return
		}
	}
}
