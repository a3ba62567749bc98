// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders point-in-time conversation snapshots. A
// Snapshot is built purely from in-memory state; taking one never
// touches the network, so an export always reflects exactly what the
// user can see, including optimistic messages not yet on the server.
package export

import (
	"fmt"
	"time"

	"github.com/gideon-chat/gideon-tui/internal/model"
)

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is a frozen copy of a conversation at export time.
type Snapshot struct {
	Title         string          `json:"title"`
	Messages      []model.Message `json:"messages"`
	ExportedAt    time.Time       `json:"exported_at"`
	TotalMessages int             `json:"total_messages"`
}

// NewSnapshot copies msgs so later session mutations cannot leak into
// an already-taken export.
func NewSnapshot(title string, msgs []model.Message) Snapshot {
	copied := make([]model.Message, len(msgs))
	copy(copied, msgs)
	return Snapshot{
		Title:         title,
		Messages:      copied,
		ExportedAt:    time.Now(),
		TotalMessages: len(copied),
	}
}

// =============================================================================
// EXPORTERS
// =============================================================================

// Exporter renders a snapshot into a target format.
type Exporter interface {
	// Export renders the snapshot and returns the file content.
	Export(snap Snapshot) ([]byte, error)

	// FileExtension returns the extension for the format (e.g. ".md").
	FileExtension() string
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "markdown", "md":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
}
