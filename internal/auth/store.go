// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the bearer token and the selected credential id.
// The store is the single owner of both: the transport reads the token
// before each call and clears it on rejection, login/logout flows write
// it. Secret API-key material never passes through here — only the
// backend-issued access token and the id of the key to charge requests
// against.
package auth

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/gideon-chat/gideon-tui/internal/util"
)

// storedState is the on-disk shape of the token file.
type storedState struct {
	AccessToken  string `json:"access_token"`
	CredentialID int64  `json:"credential_id,omitempty"`
}

// Store is a process-wide credential store with optional file
// persistence. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string // empty means memory-only
	state storedState
}

// NewStore creates a memory-only store.
func NewStore() *Store {
	return &Store{}
}

// NewFileStore creates a store persisted at path. An existing token
// file is loaded; a missing or unreadable one starts the store empty.
func NewFileStore(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	// Corrupt state is equivalent to logged out.
	_ = json.Unmarshal(data, &s.state)
	return s
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

// SetToken stores a freshly-issued bearer token.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = token
	return s.persistLocked()
}

// ClearToken removes the stored token. It reports whether a token was
// actually present, so callers can fire the logout event exactly once
// even when several in-flight responses come back 401 together.
func (s *Store) ClearToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.AccessToken == "" {
		return false
	}
	s.state.AccessToken = ""
	s.state.CredentialID = 0
	_ = s.persistLocked()
	return true
}

// CredentialID returns the id of the selected API key, 0 when none is
// selected.
func (s *Store) CredentialID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CredentialID
}

// SetCredentialID records which API key chat requests should use.
func (s *Store) SetCredentialID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CredentialID = id
	return s.persistLocked()
}

// HasToken reports whether a bearer token is present.
func (s *Store) HasToken() bool {
	return s.Token() != ""
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	// 0600: the token authenticates as the user.
	return util.AtomicWriteFile(s.path, data, 0600)
}
