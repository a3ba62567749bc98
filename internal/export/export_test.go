// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gideon-chat/gideon-tui/internal/model"
)

func sampleMessages() []model.Message {
	return []model.Message{
		{ID: model.LocalMessageID(1), Role: model.RoleUser, Content: "Hello", CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{ID: model.ServerMessageID(42), Role: model.RoleAssistant, Content: "Hi there!", CreatedAt: time.Date(2025, 6, 1, 10, 0, 5, 0, time.UTC)},
	}
}

func TestNewSnapshot_CopiesMessages(t *testing.T) {
	msgs := sampleMessages()
	snap := NewSnapshot("Greetings", msgs)

	msgs[0].Content = "mutated"

	if snap.Messages[0].Content != "Hello" {
		t.Errorf("snapshot content = %q, want %q", snap.Messages[0].Content, "Hello")
	}
	if snap.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want 2", snap.TotalMessages)
	}
	if snap.ExportedAt.IsZero() {
		t.Error("ExportedAt should be set")
	}
}

func TestMarkdownExporter(t *testing.T) {
	snap := NewSnapshot("Greetings", sampleMessages())

	out, err := (&MarkdownExporter{}).Export(snap)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"title: Greetings",
		"messages: 2",
		"# Greetings",
		"## You",
		"## Assistant",
		"Hello",
		"Hi there!",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown missing %q:\n%s", want, text)
		}
	}
}

func TestMarkdownExporter_EmptySnapshot(t *testing.T) {
	_, err := (&MarkdownExporter{}).Export(Snapshot{Title: "empty"})
	if err == nil {
		t.Error("expected error for empty snapshot")
	}
}

func TestJSONExporter_RoundTrip(t *testing.T) {
	snap := NewSnapshot("Greetings", sampleMessages())

	out, err := (&JSONExporter{}).Export(snap)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Title != "Greetings" {
		t.Errorf("Title = %q, want %q", decoded.Title, "Greetings")
	}
	if decoded.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want 2", decoded.TotalMessages)
	}
	if len(decoded.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(decoded.Messages))
	}
	if decoded.Messages[1].Content != "Hi there!" {
		t.Errorf("Messages[1].Content = %q, want %q", decoded.Messages[1].Content, "Hi there!")
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"markdown", ".md", false},
		{"md", ".md", false},
		{"json", ".json", false},
		{"html", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		exp, err := ForFormat(tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForFormat(%q) expected error", tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFormat(%q) error = %v", tt.format, err)
			continue
		}
		if got := exp.FileExtension(); got != tt.wantExt {
			t.Errorf("ForFormat(%q).FileExtension() = %q, want %q", tt.format, got, tt.wantExt)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	snap := NewSnapshot("My Chat: notes & things", sampleMessages())

	path, err := WriteFile(snap, &MarkdownExporter{}, dir)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "my-chat-notes-things-") {
		t.Errorf("filename = %q, want slug prefix %q", base, "my-chat-notes-things-")
	}
	if !strings.HasSuffix(base, ".md") {
		t.Errorf("filename = %q, want .md suffix", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "Hi there!") {
		t.Error("written file missing message content")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  ", "spaces"},
		{"", "conversation"},
		{"!!!", "conversation"},
		{"Ünïcödé titles", "ünïcödé-titles"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
