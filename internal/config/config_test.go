// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want %q", cfg.Server.BaseURL, "http://localhost:8000")
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.Server.TimeoutSecs)
	}
	if !cfg.Chat.Streaming {
		t.Error("Streaming should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Server.BaseURL != Default().Server.BaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.Server.BaseURL)
	}
}

func TestLoadFromPath_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
base_url = "https://chat.example.com"
timeout_secs = 10

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Server.BaseURL != "https://chat.example.com" {
		t.Errorf("BaseURL = %q, want file value", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 10 {
		t.Errorf("TimeoutSecs = %d, want 10", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want %q", cfg.UI.Theme, "light")
	}
	// Unset sections keep defaults.
	if cfg.Export.Format != "markdown" {
		t.Errorf("Format = %q, want default %q", cfg.Export.Format, "markdown")
	}
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	t.Setenv("GIDEON_BASE_URL", "http://override:9000")
	t.Setenv("GIDEON_MODEL", "gpt-4o")
	t.Setenv("GIDEON_STREAMING", "false")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Server.BaseURL != "http://override:9000" {
		t.Errorf("BaseURL = %q, want env override", cfg.Server.BaseURL)
	}
	if cfg.Chat.DefaultModel != "gpt-4o" {
		t.Errorf("DefaultModel = %q, want env override", cfg.Chat.DefaultModel)
	}
	if cfg.Chat.Streaming {
		t.Error("Streaming should be disabled by env override")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.Server.BaseURL = "not a url" }, true},
		{"ftp scheme", func(c *Config) { c.Server.BaseURL = "ftp://x" }, true},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }, true},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"auto theme", func(c *Config) { c.UI.Theme = "auto" }, false},
		{"json format", func(c *Config) { c.Export.Format = "json" }, false},
		{"unknown format", func(c *Config) { c.Export.Format = "html" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Chat.DefaultModel = "claude-sonnet"
	cfg.UI.Theme = "light"

	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Chat.DefaultModel != "claude-sonnet" {
		t.Errorf("DefaultModel = %q, want saved value", loaded.Chat.DefaultModel)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Theme = %q, want saved value", loaded.UI.Theme)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveToPath(Default(), path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	var mu sync.Mutex
	var got *Config
	loaded := make(chan struct{}, 1)

	w, err := NewWatcher(path, func(cfg *Config) {
		mu.Lock()
		got = cfg
		mu.Unlock()
		select {
		case loaded <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	updated := Default()
	updated.UI.Theme = "light"
	if err := SaveToPath(updated, path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	select {
	case <-loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	mu.Lock()
	defer mu.Unlock()
	if got == nil || got.UI.Theme != "light" {
		t.Errorf("reloaded theme = %v, want light", got)
	}
}

func TestWatcher_InvalidFileKeepsGoing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveToPath(Default(), path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	loaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { loaded <- cfg })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	// Broken TOML must not produce a callback.
	if err := os.WriteFile(path, []byte("[[[["), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// A later valid write still reloads.
	time.Sleep(2 * reloadDebounce)
	good := Default()
	good.Chat.DefaultModel = "recovered"
	if err := SaveToPath(good, path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	select {
	case cfg := <-loaded:
		if cfg.Chat.DefaultModel != "recovered" {
			t.Errorf("DefaultModel = %q, want %q", cfg.Chat.DefaultModel, "recovered")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for recovery reload")
	}
}
