// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for palaver.
//
// Colors are lipgloss AdaptiveColor values so the same palette works on light
// and dark terminals; Theme bundles them into ready-to-use styles for the TUI
// and the plain REPL, and the markdown helpers wrap glamour for assistant
// output.
package styles
