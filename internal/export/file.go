// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gideon-chat/gideon-tui/internal/util"
)

// =============================================================================
// FILE OUTPUT
// =============================================================================

// WriteFile renders the snapshot with the given exporter and writes it
// atomically under dir. Returns the full path of the written file.
func WriteFile(snap Snapshot, exp Exporter, dir string) (string, error) {
	content, err := exp.Export(snap)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s%s",
		slugify(snap.Title),
		snap.ExportedAt.Format("20060102-150405"),
		exp.FileExtension())
	path := filepath.Join(dir, name)

	if err := util.AtomicWriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// slugify makes a title safe for use as a filename.
func slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return "conversation"
	}

	var sb strings.Builder
	lastDash := false
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastDash = false
		case !lastDash:
			sb.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if slug == "" {
		return "conversation"
	}
	if len(slug) > 48 {
		slug = strings.Trim(slug[:48], "-")
	}
	return slug
}
