// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exchange drives the request-assembly and completion pipeline.
//
// One user turn becomes one exchange:
//
//	Idle → Requesting → (ToolPending → ToolExecuting → FollowupRequesting)? → Done | Failed
//
// The user turn is committed to the session before any remote work. A
// completion that requests tool calls triggers exactly one local execution
// round followed by one follow-up completion carrying the results; the
// follow-up never re-declares tools, so chains stop after one round. Only the
// final call's usage snapshot is recorded.
//
// # Key Types
//
//   - Completer: the black-box completion API (see internal/openai)
//   - Orchestrator: runs the per-turn state machine
//   - BuildMessages: assembles system + role-priming + history
//
// Errors from the Completer abort the exchange without appending a partial
// assistant turn; the caller surfaces them and the user can re-submit.
package exchange
