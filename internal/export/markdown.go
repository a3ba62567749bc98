// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a snapshot as a Markdown document with a
// YAML frontmatter header.
type MarkdownExporter struct{}

// Export renders the snapshot to Markdown.
func (e *MarkdownExporter) Export(snap Snapshot) ([]byte, error) {
	if len(snap.Messages) == 0 {
		return nil, fmt.Errorf("snapshot has no messages")
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(snap.Title)))
	sb.WriteString(fmt.Sprintf("messages: %d\n", snap.TotalMessages))
	sb.WriteString(fmt.Sprintf("exported: %s\n", snap.ExportedAt.Format(time.RFC3339)))
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s\n\n", snap.Title))

	for i, msg := range snap.Messages {
		sb.WriteString(fmt.Sprintf("## %s\n\n", msg.Role.DisplayName()))
		if !msg.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("*%s*\n\n", msg.CreatedAt.Format("2006-01-02 15:04:05")))
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
		if i < len(snap.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// escapeYAML quotes values that would break the frontmatter scalar.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#\"'\n") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
