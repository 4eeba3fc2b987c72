// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and turns.
package model

import (
	"strconv"
	"strings"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies the sender of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	case RoleTool:
		return "Tool"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is a single role-tagged message within a session's history.
// Turns are immutable once appended; corrections are new turns.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewTurn creates a turn with the given role and content.
func NewTurn(role Role, content string) Turn {
	return Turn{Role: role, Content: content}
}

// IsEmpty returns true if the turn carries no content.
// An assistant turn that only requested tool calls has empty content.
func (t Turn) IsEmpty() bool {
	return t.Content == ""
}

// Preview returns a truncated single-line preview of the turn content.
// Rune-based truncation so multi-byte characters are never split.
func (t Turn) Preview(maxRunes int) string {
	line := t.Content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	runes := []rune(line)
	if len(runes) <= maxRunes {
		return line
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// =============================================================================
// USAGE SNAPSHOT
// =============================================================================

// UsageSnapshot records token consumption for one completed remote exchange.
// Values come from the completion API and are stored opaquely, never
// recomputed locally. A zero field means the API did not report that count.
type UsageSnapshot struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// IsZero returns true if no counts were reported.
func (u UsageSnapshot) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// Format renders the snapshot for display, e.g. "in: 120 / out: 48 / total: 168".
// Unreported counts are omitted.
func (u UsageSnapshot) Format() string {
	var parts []string
	if u.PromptTokens > 0 {
		parts = append(parts, "in: "+strconv.Itoa(u.PromptTokens))
	}
	if u.CompletionTokens > 0 {
		parts = append(parts, "out: "+strconv.Itoa(u.CompletionTokens))
	}
	if u.TotalTokens > 0 {
		parts = append(parts, "total: "+strconv.Itoa(u.TotalTokens))
	}
	if len(parts) == 0 {
		return "no usage reported"
	}
	return strings.Join(parts, " / ")
}

// =============================================================================
// TOOL CALL
// =============================================================================

// ToolCall is a structured request from the completion API asking the client
// to execute a named local tool. It is ephemeral and never persisted; the ID
// is echoed back on the tool-result turn so the API can correlate results.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}
