// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_TokenLifecycle(t *testing.T) {
	s := NewStore()

	if s.HasToken() {
		t.Error("new store should have no token")
	}

	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if got := s.Token(); got != "tok-123" {
		t.Errorf("Token = %q, want %q", got, "tok-123")
	}

	if !s.ClearToken() {
		t.Error("first ClearToken should report a token was cleared")
	}
	if s.ClearToken() {
		t.Error("second ClearToken should report nothing to clear")
	}
	if s.HasToken() {
		t.Error("token survived ClearToken")
	}
}

func TestStore_ClearTokenResetsCredential(t *testing.T) {
	s := NewStore()
	s.SetToken("tok")
	s.SetCredentialID(7)

	s.ClearToken()

	if got := s.CredentialID(); got != 0 {
		t.Errorf("CredentialID after clear = %d, want 0", got)
	}
}

func TestFileStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")

	s := NewFileStore(path)
	if err := s.SetToken("persisted"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := s.SetCredentialID(3); err != nil {
		t.Fatalf("SetCredentialID failed: %v", err)
	}

	// A second store over the same file sees the saved state.
	reloaded := NewFileStore(path)
	if got := reloaded.Token(); got != "persisted" {
		t.Errorf("reloaded token = %q, want %q", got, "persisted")
	}
	if got := reloaded.CredentialID(); got != 3 {
		t.Errorf("reloaded credential id = %d, want 3", got)
	}
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path)
	if s.HasToken() {
		t.Error("corrupt token file should start the store logged out")
	}
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "auth.json"))
	if s.HasToken() {
		t.Error("missing token file should start the store logged out")
	}
}
