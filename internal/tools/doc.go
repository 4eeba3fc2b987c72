// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools provides the locally-computable tool set for palaver.
//
// Two tools are supported: a current-time lookup and a restricted arithmetic
// calculator. Both are pure and side-effect-free, so they are safe to run
// from either the model-invoked function-calling path or the slash-command
// fallback path.
//
// # Key Functions
//
//   - Execute: dispatch a named tool call; never panics, errors become text
//   - EvaluateExpression: recursive-descent arithmetic evaluator over
//     + - * / % ( ) and numeric literals
//   - Declarations: the fixed tool schemas advertised to the completion API
//
// The calculator rejects any character outside its allowlist before parsing.
// There is no general expression engine behind it to inject into.
package tools
