// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/gideon-chat/gideon-tui/internal/util"
)

// Conversation mirrors the backend's conversation record. ID is zero
// until the backend assigns one; a zero id is a valid "not created yet"
// state, not an error.
type Conversation struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayTitle returns the conversation title, deriving one from the
// given first message when the server has not set a title yet.
func (c Conversation) DisplayTitle(firstMessage string) string {
	if c.Title != "" {
		return c.Title
	}
	if t := util.FirstLine(firstMessage); t != "" {
		return util.TruncateRunes(t, 50)
	}
	return "New conversation"
}

// Credential is the metadata of a stored provider API key. Secret
// material is sent to the backend once on create and never read back;
// the client only ever holds this metadata and the selected key's id.
type Credential struct {
	ID        int64     `json:"id"`
	Provider  string    `json:"provider"`
	Name      string    `json:"name"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
