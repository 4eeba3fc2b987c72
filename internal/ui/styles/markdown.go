// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/glamour"

// NewMarkdownRenderer builds a glamour renderer matched to the terminal's
// background, wrapping at the given width. Returns nil when the terminal
// can't support styled output; callers fall back to plain text.
func NewMarkdownRenderer(wrap int) *glamour.TermRenderer {
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

// RenderMarkdown renders markdown for terminal display, returning the input
// unchanged when no renderer is available or rendering fails.
func RenderMarkdown(r *glamour.TermRenderer, content string) string {
	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
