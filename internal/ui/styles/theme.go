// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the terminal color themes and shared lipgloss
// styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme is the resolved style set for one color scheme.
type Theme struct {
	Name string

	// Message styles
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	ErrorMessage   lipgloss.Style
	Timestamp      lipgloss.Style

	// Chrome
	Border     lipgloss.Style
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	Spinner    lipgloss.Style
	InputFrame lipgloss.Style

	// Sidebar
	ListTitle    lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// GlamourStyle is the glamour style name for markdown rendering.
	GlamourStyle string
}

// Dark returns the default dark theme.
func Dark() *Theme {
	return &Theme{
		Name:           "dark",
		UserLabel:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		AssistantLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		ErrorMessage:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Timestamp:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:         lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
		StatusKey:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("236")).Bold(true),
		Spinner:        lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		InputFrame:     lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		ListTitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		ListItem:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		ListSelected:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		GlamourStyle:   "dark",
	}
}

// Light returns the light theme.
func Light() *Theme {
	return &Theme{
		Name:           "light",
		UserLabel:      lipgloss.NewStyle().Foreground(lipgloss.Color("26")).Bold(true),
		AssistantLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("127")).Bold(true),
		ErrorMessage:   lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		Timestamp:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Border:         lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")),
		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("253")),
		StatusKey:      lipgloss.NewStyle().Foreground(lipgloss.Color("26")).Background(lipgloss.Color("253")).Bold(true),
		Spinner:        lipgloss.NewStyle().Foreground(lipgloss.Color("127")),
		InputFrame:     lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("250")),
		ListTitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Bold(true),
		ListItem:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		ListSelected:   lipgloss.NewStyle().Foreground(lipgloss.Color("26")).Bold(true),
		GlamourStyle:   "light",
	}
}

// ForName returns the theme matching a config theme name. "auto" (or
// an unset name) follows the terminal background.
func ForName(name string) *Theme {
	switch name {
	case "light":
		return Light()
	case "dark":
		return Dark()
	default:
		if HasDarkBackground() {
			return Dark()
		}
		return Light()
	}
}

// HasDarkBackground reports whether the terminal background is dark.
// Kept as a var so tests can pin the detection.
var HasDarkBackground = termenv.HasDarkBackground
