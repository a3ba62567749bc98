// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/gideon-chat/gideon-tui/internal/model"
)

// Wire types mirror the backend's JSON schemas. They stay inside this
// package; the session layer works with the model types and the
// converters below.

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginRequest is the JSON login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the backend's account record.
type User struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Preferences Preferences `json:"preferences"`
}

// Preferences holds server-side user preferences. The client reads and
// writes them whole; persistence is entirely the backend's concern.
type Preferences struct {
	Theme               string            `json:"theme"`
	CustomTheme         map[string]string `json:"custom_theme,omitempty"`
	LogoURL             string            `json:"logo_url,omitempty"`
	BackgroundImageURL  string            `json:"background_image_url,omitempty"`
	DefaultModel        string            `json:"default_model"`
	AutoSave            bool              `json:"auto_save"`
	VectorSearchEnabled bool              `json:"vector_search_enabled"`
	MCPToolsEnabled     bool              `json:"mcp_tools_enabled"`
}

// APIKey is the metadata of a stored provider key. The secret is only
// ever present in CreateAPIKeyRequest; the backend never returns it.
type APIKey struct {
	ID        int64     `json:"id"`
	Provider  string    `json:"provider"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCredential converts the wire record to the model type.
func (k APIKey) ToCredential() model.Credential {
	return model.Credential{
		ID:        k.ID,
		Provider:  k.Provider,
		Name:      k.Name,
		Active:    k.IsActive,
		CreatedAt: k.CreatedAt,
	}
}

// CreateAPIKeyRequest carries the secret exactly once, on create.
type CreateAPIKeyRequest struct {
	Provider string `json:"provider"`
	Name     string `json:"name"`
	APIKey   string `json:"api_key"`
}

// Conversation is the backend's conversation record.
type Conversation struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// ToModel converts the wire record to the model type.
func (c Conversation) ToModel() model.Conversation {
	return model.Conversation{
		ID:           c.ID,
		Title:        c.Title,
		MessageCount: c.MessageCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ConversationUpdate renames a conversation.
type ConversationUpdate struct {
	Title string `json:"title"`
}

// Message is the backend's message record.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	Model          string    `json:"model,omitempty"`
	TokensUsed     int       `json:"tokens_used,omitempty"`
}

// ToModel converts the wire record to the model type with a server id.
func (m Message) ToModel() model.Message {
	return model.Message{
		ID:        model.ServerMessageID(m.ID),
		Role:      model.Role(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// ChatRequest is the body of both the sync and streaming send
// endpoints. ConversationID is nil for the first message of a new
// conversation; the backend creates one and assigns the id.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID *int64 `json:"conversation_id,omitempty"`
	APIKeyID       int64  `json:"api_key_id"`
	Model          string `json:"model,omitempty"`
}

// ChatResponse is the sync send result: the stored assistant message
// plus the (possibly fresh) conversation id.
type ChatResponse struct {
	Message        Message `json:"message"`
	ConversationID int64   `json:"conversation_id"`
}

// HealthStatus is the health probe response.
type HealthStatus struct {
	Status string `json:"status"`
}
