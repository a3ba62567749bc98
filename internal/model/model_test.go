// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func TestNextLocalID_Monotonic(t *testing.T) {
	a := NextLocalID()
	b := NextLocalID()

	if !a.IsLocal() || !b.IsLocal() {
		t.Fatal("NextLocalID must produce local ids")
	}
	if b.Value <= a.Value {
		t.Errorf("local ids not increasing: %d then %d", a.Value, b.Value)
	}
}

func TestMessageID_Kinds(t *testing.T) {
	local := LocalMessageID(42)
	server := ServerMessageID(42)

	if !local.IsLocal() {
		t.Error("LocalMessageID should be local")
	}
	if server.IsLocal() {
		t.Error("ServerMessageID should not be local")
	}
	// Same numeric value, distinct identities.
	if local == server {
		t.Error("local and server ids with equal values must not compare equal")
	}
}

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "Hello")
	}
	if !msg.ID.IsLocal() {
		t.Error("optimistic message must carry a local id")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("tool"), "tool"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestConversation_DisplayTitle(t *testing.T) {
	tests := []struct {
		name  string
		conv  Conversation
		first string
		want  string
	}{
		{"server title wins", Conversation{Title: "Planning"}, "hi there", "Planning"},
		{"derived from message", Conversation{}, "What is Go?\nmore text", "What is Go?"},
		{"empty everything", Conversation{}, "", "New conversation"},
		{"long message truncated", Conversation{},
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.conv.DisplayTitle(tc.first); got != tc.want {
				t.Errorf("DisplayTitle = %q, want %q", got, tc.want)
			}
		})
	}
}
