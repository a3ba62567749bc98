// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/gideon-chat/gideon-tui/internal/ui/styles"
)

func TestStatusBar_WidthWithMultibyteText(t *testing.T) {
	theme := styles.Dark()

	tests := []struct {
		name         string
		conversation string
		model        string
	}{
		{"ascii", "hello world", "gpt-4"},
		{"accented", "héllo wörld", "gpt-4"},
		{"cjk", "会話のタイトル", "claude-3-opus"},
	}

	const width = 60
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := StatusBar(theme, width, tt.conversation, tt.model, false)
			if got := lipgloss.Width(bar); got != width {
				t.Errorf("rendered width = %d, want %d", got, width)
			}
		})
	}
}

func TestStatusBar_PendingState(t *testing.T) {
	theme := styles.Dark()

	ready := StatusBar(theme, 60, "chat", "gpt-4", false)
	sending := StatusBar(theme, 60, "chat", "gpt-4", true)
	if ready == sending {
		t.Error("pending state not reflected in status bar")
	}
}
