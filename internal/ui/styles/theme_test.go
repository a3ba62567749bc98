// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestForName_Explicit(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
	}

	for _, tt := range tests {
		if got := ForName(tt.name).Name; got != tt.want {
			t.Errorf("ForName(%q).Name = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestForName_AutoFollowsBackground(t *testing.T) {
	orig := HasDarkBackground
	defer func() { HasDarkBackground = orig }()

	HasDarkBackground = func() bool { return true }
	for _, name := range []string{"auto", ""} {
		if got := ForName(name).Name; got != "dark" {
			t.Errorf("ForName(%q).Name = %q on dark terminal, want %q", name, got, "dark")
		}
	}

	HasDarkBackground = func() bool { return false }
	if got := ForName("auto").Name; got != "light" {
		t.Errorf("ForName(%q).Name = %q on light terminal, want %q", "auto", got, "light")
	}
}
