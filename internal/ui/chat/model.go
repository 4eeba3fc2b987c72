// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen chat view for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/palaverhq/palaver/internal/commands"
	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/exchange"
	"github.com/palaverhq/palaver/internal/session"
	"github.com/palaverhq/palaver/internal/storage"
	"github.com/palaverhq/palaver/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Exchange in flight
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme    *styles.Theme
	renderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
	ready  bool

	// Application services
	cfg      *config.Config
	store    *session.Store
	orch     *exchange.Orchestrator
	registry *commands.Registry
	cmdCtx   *commands.Context
	persist  *storage.Store // may be nil

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Transient display state
	notice  string
	lastErr string
}

// New creates the chat model. persist may be nil to run without an archive.
func New(cfg *config.Config, store *session.Store, orch *exchange.Orchestrator, registry *commands.Registry, cmdCtx *commands.Context, persist *storage.Store) Model {
	theme := styles.New()

	input := textinput.New()
	input.Placeholder = "Message, /help for commands"
	input.PlaceholderStyle = theme.Placeholder
	input.PromptStyle = theme.Prompt
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Thinking

	return Model{
		state:    StateReady,
		theme:    theme,
		cfg:      cfg,
		store:    store,
		orch:     orch,
		registry: registry,
		cmdCtx:   cmdCtx,
		persist:  persist,
		input:    input,
		spinner:  spin,
		keyMap:   DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// saveActive persists the active session when an archive is wired.
func (m *Model) saveActive() {
	if m.persist == nil {
		return
	}
	if sess := m.store.Active(); !sess.IsEmpty() {
		_ = m.persist.Save(sess)
	}
}

// resize recomputes component dimensions and rebuilds the markdown renderer
// for the new wrap width.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := lipgloss.Height(m.headerView())
	footerHeight := lipgloss.Height(m.footerView())
	vpHeight := height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 4

	wrap := width - 2
	if wrap > 100 {
		wrap = 100
	}
	m.renderer = styles.NewMarkdownRenderer(wrap)
	m.refreshTranscript()
}
