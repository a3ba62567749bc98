// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"fmt"
	"strings"
)

// View renders the settings screen.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.theme.ListTitle.Render("Settings"))
	sb.WriteString("\n\n")

	switch m.mode {
	case modeAdd:
		sb.WriteString(m.theme.ListTitle.Render("Add API key"))
		sb.WriteString("\n")
		for i := range m.inputs {
			sb.WriteString(m.inputs[i].View())
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.theme.Timestamp.Render("enter save · tab next field · esc cancel"))

	case modeModel:
		sb.WriteString(m.theme.ListTitle.Render("Default model"))
		sb.WriteString("\n")
		sb.WriteString(m.modelInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.Timestamp.Render("enter save · esc cancel"))

	default:
		sb.WriteString(m.viewKeyList())
		sb.WriteString("\n")
		sb.WriteString(m.theme.Timestamp.Render(
			fmt.Sprintf("default model: %s", displayOr(m.defaultModel(), "(backend default)"))))
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.Timestamp.Render(
			"enter use key · a add · d delete · m default model · esc back"))
	}

	if m.status != "" {
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.ErrorMessage.Render(m.status))
	}

	return m.theme.Border.Padding(1, 2).Render(sb.String())
}

func (m *Model) viewKeyList() string {
	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render("API keys"))
	sb.WriteString("\n")

	if len(m.keys) == 0 {
		sb.WriteString(m.theme.ListItem.Render("no keys yet - press 'a' to add one"))
		sb.WriteString("\n")
		return sb.String()
	}

	active := m.creds.CredentialID()
	for i, key := range m.keys {
		marker := "  "
		if key.ID == active {
			marker = "* "
		}
		line := fmt.Sprintf("%s%s (%s)", marker, key.Name, key.Provider)

		style := m.theme.ListItem
		if i == m.cursor {
			style = m.theme.ListSelected
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func displayOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
