// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openai adapts the OpenAI-compatible chat completion API to the
// exchange.Completer interface.
//
// The adapter is deliberately thin: it converts the unified request shape to
// API params, issues one non-streaming completion call, and normalizes text,
// tool calls, and token usage back into exchange.Result. Everything above it
// is API-agnostic.
//
// # Key Types
//
//   - Client: rate-limited completion client (implements exchange.Completer)
//   - ClientConfig: endpoint, credential, timeout, and rate-limit knobs
//   - ClientError: typed errors with a wrapped cause
//
// # Usage
//
//	cfg := openai.DefaultConfig()
//	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
//	client := openai.NewClient(cfg)
//	res, err := client.Complete(ctx, req)
//
// Any endpoint speaking the OpenAI chat completion dialect works via
// ClientConfig.BaseURL.
package openai
