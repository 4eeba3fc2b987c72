// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and turns.
//
// This package defines the core domain types used throughout the application.
// It is pure data: no I/O, no remote calls, no UI concerns.
//
// # Key Types
//
//   - Session: one named conversation thread with history, settings, and usage log
//   - Turn: a single role-tagged message (user, assistant, system, tool)
//   - UsageSnapshot: normalized token counts for one completed remote exchange
//   - ToolCall: ephemeral tool invocation requested by the completion API
//
// # Usage
//
// Create a session and append turns:
//
//	sess := model.NewSession("Welcome")
//	sess.AppendUser("Hello!")
//	sess.AppendAssistant("Hi there.")
//
// The Session JSON tags define the export document; see internal/export.
package model
