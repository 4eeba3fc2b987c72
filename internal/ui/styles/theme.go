// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability once and hands styles to both front ends.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// Transcript
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	ToolLabel      lipgloss.Style
	Notice         lipgloss.Style
	ErrorText      lipgloss.Style
	UsageLine      lipgloss.Style

	// Input
	Prompt      lipgloss.Style
	Placeholder lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style
	Thinking  lipgloss.Style
}

// New builds the theme for the current terminal.
func New() *Theme {
	return &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),

		Header:      lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(Overlay),
		HeaderTitle: lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		HeaderMeta:  lipgloss.NewStyle().Foreground(TextSecondary),

		UserLabel:      lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		AssistantLabel: lipgloss.NewStyle().Foreground(Purple).Bold(true),
		ToolLabel:      lipgloss.NewStyle().Foreground(Emerald).Bold(true),
		Notice:         lipgloss.NewStyle().Foreground(Emerald),
		ErrorText:      lipgloss.NewStyle().Foreground(Rose),
		UsageLine:      lipgloss.NewStyle().Foreground(TextMuted).Italic(true),

		Prompt:      lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(TextMuted),

		StatusBar: lipgloss.NewStyle().Foreground(TextSecondary),
		StatusKey: lipgloss.NewStyle().Foreground(TextMuted),
		Thinking:  lipgloss.NewStyle().Foreground(Amber),
	}
}
