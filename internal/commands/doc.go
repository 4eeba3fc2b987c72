// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system shared by both front
// ends.
//
// Two kinds of slash input exist and are routed differently:
//
//   - Local tool shortcuts (/time, /calc) are chat content: TryHandle
//     executes them and commits both turns to the session, exactly as if the
//     model had answered.
//   - Control commands (/help, /new, /switch, ...) live in the Registry and
//     act on application state without touching the transcript history.
//
// Unrecognized slash input is neither: it flows to the model as an ordinary
// user message.
//
// # Key Types
//
//   - Registry: name/alias lookup and execution of control commands
//   - Command: one registered command with handler and help metadata
//   - Context: dependency bundle handed to handlers
//   - Outcome: handler result (transcript text, quit signal)
package commands
