// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages client configuration:
//   - ~/.gideon/config.toml
//   - environment overrides (GIDEON_*)
//
// Credentials never live here; the auth package keeps them in their
// own file with tighter permissions.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gideon-chat/gideon-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config is the root configuration.
type Config struct {
	// Server holds backend connection settings.
	Server ServerConfig `toml:"server"`

	// Chat holds send behavior settings.
	Chat ChatConfig `toml:"chat"`

	// UI holds terminal rendering settings.
	UI UIConfig `toml:"ui"`

	// Export holds snapshot export settings.
	Export ExportConfig `toml:"export"`
}

// ServerConfig configures the backend connection.
type ServerConfig struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string `toml:"base_url"`

	// TimeoutSecs bounds non-streaming requests. Streaming requests
	// are never bounded by a timeout.
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig configures send behavior.
type ChatConfig struct {
	// DefaultModel is sent with chat requests when set. Empty lets
	// the backend pick.
	DefaultModel string `toml:"default_model"`

	// Streaming selects the streaming send path.
	Streaming bool `toml:"streaming"`
}

// UIConfig configures terminal rendering.
type UIConfig struct {
	// Theme is "dark", "light", or "auto" to follow the terminal
	// background.
	Theme string `toml:"theme"`

	// Markdown renders assistant messages through the markdown
	// renderer when true.
	Markdown bool `toml:"markdown"`

	// ShowTimestamps prints per-message timestamps.
	ShowTimestamps bool `toml:"show_timestamps"`
}

// ExportConfig configures snapshot exports.
type ExportConfig struct {
	// Directory receives export files. Empty means the current
	// working directory.
	Directory string `toml:"directory"`

	// Format is "markdown" or "json".
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:8000",
			TimeoutSecs: 30,
		},
		Chat: ChatConfig{
			Streaming: true,
		},
		UI: UIConfig{
			Theme:          "auto",
			Markdown:       true,
			ShowTimestamps: false,
		},
		Export: ExportConfig{
			Format: "markdown",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the configuration directory (~/.gideon).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".gideon"), nil
}

// Path returns the config file path (~/.gideon/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CredentialsPath returns where the auth store persists its state.
func CredentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// EnsureDir creates the configuration directory if missing.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, falling back to defaults when it does
// not exist. Environment overrides apply last, then validation.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads a specific config file. A missing file is not an
// error; defaults are used.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config atomically to its default path.
func Save(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the config atomically to a specific path.
func SaveToPath(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies GIDEON_* environment variables on top of
// whatever was loaded from disk.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GIDEON_BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("GIDEON_MODEL"); v != "" {
		c.Chat.DefaultModel = v
	}
	if v := os.Getenv("GIDEON_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("GIDEON_STREAMING"); v != "" {
		c.Chat.Streaming = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("GIDEON_EXPORT_DIR"); v != "" {
		c.Export.Directory = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks field values and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationError{Field: "server.base_url", Message: fmt.Sprintf("not a valid URL: %q", c.Server.BaseURL)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ValidationError{Field: "server.base_url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if c.Server.TimeoutSecs <= 0 {
		return ValidationError{Field: "server.timeout_secs", Message: "must be positive"}
	}
	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return ValidationError{Field: "ui.theme", Message: fmt.Sprintf("unknown theme %q", c.UI.Theme)}
	}
	switch c.Export.Format {
	case "markdown", "md", "json":
	default:
		return ValidationError{Field: "export.format", Message: fmt.Sprintf("unknown format %q", c.Export.Format)}
	}
	return nil
}
