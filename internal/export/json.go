// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders a snapshot as indented JSON.
type JSONExporter struct{}

// Export renders the snapshot to JSON.
func (e *JSONExporter) Export(snap Snapshot) ([]byte, error) {
	if len(snap.Messages) == 0 {
		return nil, fmt.Errorf("snapshot has no messages")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }
