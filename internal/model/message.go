// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync/atomic"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE IDENTITY
// =============================================================================

// IDKind distinguishes locally-generated placeholder ids from
// server-assigned ones.
type IDKind int

const (
	// IDLocal marks a client-generated placeholder id. Local ids order
	// messages within one process and must never be sent to the server
	// as authoritative.
	IDLocal IDKind = iota

	// IDServer marks an id assigned by the backend.
	IDServer
)

// MessageID is a tagged identity: either a local placeholder issued by
// the process-wide clock, or a server-assigned id. Keeping the two in
// separate namespaces removes any chance of a client timestamp
// colliding with a real server id.
type MessageID struct {
	Kind  IDKind
	Value int64
}

// LocalMessageID wraps a local clock value.
func LocalMessageID(v int64) MessageID {
	return MessageID{Kind: IDLocal, Value: v}
}

// ServerMessageID wraps a server-assigned id.
func ServerMessageID(v int64) MessageID {
	return MessageID{Kind: IDServer, Value: v}
}

// IsLocal reports whether the id is a client-side placeholder.
func (id MessageID) IsLocal() bool {
	return id.Kind == IDLocal
}

// localClock issues strictly increasing values for optimistic message
// ids. Values are process-local and not unique across restarts.
var localClock atomic.Int64

// NextLocalID returns the next local placeholder id.
func NextLocalID() MessageID {
	return LocalMessageID(localClock.Add(1))
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry in a conversation transcript.
type Message struct {
	ID        MessageID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserMessage creates an optimistic user message with a local id.
func NewUserMessage(content string) Message {
	return Message{
		ID:        NextLocalID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message with a local id.
// The server's copy keeps its own id; the local one only orders the
// in-memory transcript.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        NextLocalID(),
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
