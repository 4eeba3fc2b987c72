// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palaverhq/palaver/internal/commands"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.saveActive()
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Submit):
			if m.state == StateReady {
				if cmd := m.submit(); cmd != nil {
					return m, cmd
				}
				return m, nil
			}

		case key.Matches(msg, m.keyMap.ScrollUp):
			m.viewport.HalfViewUp()

		case key.Matches(msg, m.keyMap.ScrollDown):
			m.viewport.HalfViewDown()
		}

	case exchangeDoneMsg:
		m.state = StateReady
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		} else {
			m.lastErr = ""
		}
		m.refreshTranscript()
		m.saveActive()

	case spinner.TickMsg:
		if m.state == StateWaiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Feed remaining events to the components.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit routes the current input line: local tool shortcut, control command,
// or a full remote exchange. Returns nil when nothing was submitted.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.Reset()
	m.notice = ""
	m.lastErr = ""

	sess := m.store.Active()

	if _, handled := commands.TryHandle(sess, text); handled {
		m.refreshTranscript()
		m.saveActive()
		return nil
	}

	if commands.IsCommand(text) {
		out, handled, err := m.registry.Execute(m.cmdCtx, text)
		if handled {
			if err != nil {
				m.lastErr = err.Error()
			} else {
				m.notice = strings.TrimRight(out.Text, "\n")
			}
			if out.Quit {
				m.saveActive()
				return tea.Quit
			}
			m.refreshTranscript()
			return nil
		}
		// Unknown slash input is an ordinary message; let the model see it.
	}

	m.state = StateWaiting
	return tea.Batch(m.spinner.Tick, sendCmd(m.orch, sess, text))
}
