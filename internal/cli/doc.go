// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-terminal REPL front end.
//
// It shares all routing and state with the TUI: the same session store,
// command registry, local tool shortcuts, and exchange orchestrator. Input is
// read through liner for history and line editing; assistant replies render
// through glamour when the terminal supports it.
//
// This front end is what --plain selects, and what main falls back to when
// stdout is not a terminal.
package cli
