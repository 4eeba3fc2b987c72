// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"context"

	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/tools"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Message is one entry in an outbound completion request. It is a superset of
// model.Turn: assistant entries may carry tool calls, and tool entries carry
// the correlation id of the call they answer.
type Message struct {
	Role       model.Role
	Content    string
	ToolCalls  []ToolCall // assistant entries only
	ToolCallID string     // tool entries only
}

// ToolCall is a tool invocation as it appears on the wire: the arguments are
// still the API's serialized JSON payload, decoded only at dispatch time.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Request is the unified completion request handed to a Completer.
type Request struct {
	Model           string
	Messages        []Message
	Temperature     float64
	MaxOutputTokens int

	// Tools, when non-empty, declares the local tool set to the API.
	// The follow-up request of a tool exchange leaves this empty: at most
	// one round of tool use per user turn.
	Tools []tools.Declaration

	// Opaque hints, dropped by adapters that cannot express them.
	Verbosity       string
	ReasoningEffort string
}

// Result is the normalized outcome of one completion call. Usage is already
// reduced to the single UsageSnapshot shape; the core never branches on the
// API's native return shape.
type Result struct {
	Text      string
	ToolCalls []ToolCall
	Usage     *model.UsageSnapshot
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer is the black-box completion API consumed by the orchestrator.
// internal/openai provides the production implementation; tests substitute
// scripted fakes.
type Completer interface {
	Complete(ctx context.Context, req *Request) (*Result, error)
}

// =============================================================================
// PHASES
// =============================================================================

// Phase tracks where an in-flight exchange is, mainly so front ends can show
// meaningful progress text.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRequesting
	PhaseToolPending
	PhaseToolExecuting
	PhaseFollowupRequesting
	PhaseDone
	PhaseFailed
)

// String returns a short label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRequesting:
		return "requesting"
	case PhaseToolPending:
		return "tool pending"
	case PhaseToolExecuting:
		return "executing tools"
	case PhaseFollowupRequesting:
		return "sending tool results"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}
