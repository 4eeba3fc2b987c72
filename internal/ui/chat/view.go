// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/ui/styles"
	"github.com/palaverhq/palaver/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) headerView() string {
	sess := m.store.Active()

	title := m.theme.HeaderTitle.Render("palaver")
	name := m.theme.HeaderMeta.Render(util.TruncateWidth(sess.Name, 30))
	meta := m.theme.HeaderMeta.Render(fmt.Sprintf("%s | %d/%d sessions | %d tokens",
		m.cfg.Model, sessionIndex(m)+1, m.store.Len(), sess.TotalTokens()))

	line := title + "  " + name + "  " + meta
	width := m.width
	if width <= 0 {
		width = lipgloss.Width(line)
	}
	return m.theme.Header.Width(width).Render(line)
}

func sessionIndex(m Model) int {
	active := m.store.Active()
	for i, sess := range m.store.List() {
		if sess.ID == active.ID {
			return i
		}
	}
	return 0
}

// =============================================================================
// FOOTER
// =============================================================================

func (m Model) footerView() string {
	var status string
	switch {
	case m.state == StateWaiting:
		status = m.spinner.View() + m.theme.Thinking.Render(" waiting for reply...")
	case m.lastErr != "":
		status = m.theme.ErrorText.Render(util.TruncateWidth("error: "+m.lastErr, m.width))
	case m.notice != "":
		status = m.theme.Notice.Render(firstLine(m.notice))
	default:
		status = m.theme.StatusKey.Render("enter send | pgup/pgdn scroll | ctrl+c quit")
	}
	return m.input.View() + "\n" + m.theme.StatusBar.Render(status)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " ..."
	}
	return s
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshTranscript rebuilds the viewport content from the active session and
// any pending command output.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	sess := m.store.Active()

	var sb strings.Builder
	for _, turn := range sess.Messages {
		switch turn.Role {
		case model.RoleUser:
			sb.WriteString(m.theme.UserLabel.Render(turn.Role.DisplayName()) + "\n")
			sb.WriteString(turn.Content + "\n\n")
		case model.RoleAssistant:
			sb.WriteString(m.theme.AssistantLabel.Render(turn.Role.DisplayName()) + "\n")
			sb.WriteString(strings.TrimRight(styles.RenderMarkdown(m.renderer, turn.Content), "\n") + "\n\n")
		default:
			sb.WriteString(m.theme.ToolLabel.Render(turn.Role.DisplayName()) + "\n")
			sb.WriteString(turn.Content + "\n\n")
		}
	}
	if len(sess.Usage) > 0 {
		last := sess.Usage[len(sess.Usage)-1]
		sb.WriteString(m.theme.UsageLine.Render("last exchange: "+last.Format()) + "\n")
	}
	if m.notice != "" {
		sb.WriteString(m.theme.Notice.Render(m.notice) + "\n")
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}
