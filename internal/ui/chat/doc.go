// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen chat view for the TUI.
//
// The view is a standard Bubble Tea model: a viewport holding the rendered
// transcript, a single-line text input, and a spinner while an exchange is in
// flight. Input routing order is local tool shortcuts, then control commands,
// then the completion pipeline; exchanges run in a background tea.Cmd and the
// transcript re-renders when the done message lands.
//
// Exactly one exchange is in flight at a time. While waiting, submissions are
// ignored rather than queued.
package chat
