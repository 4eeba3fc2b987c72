// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools provides the locally-computable tool set for palaver.
package tools

import "time"

// TimeLayout is the fixed ISO 8601 layout returned by the time tool.
const TimeLayout = "2006-01-02T15:04:05"

// =============================================================================
// TOOL KINDS
// =============================================================================

// Kind enumerates the tools palaver can execute locally. Dispatch is an
// exhaustive switch over this type, so adding or removing a tool is a
// compile-time-checked change rather than a runtime string lookup.
type Kind int

const (
	KindUnsupported Kind = iota
	KindTime
	KindCalculator
)

// Wire names as declared to the completion API.
const (
	NameTime       = "get_current_time"
	NameCalculator = "calculator"
)

// KindOf maps a wire name to a tool kind. Unknown names map to
// KindUnsupported; they are handled, not rejected, since the remote model may
// hallucinate tool names mid-exchange.
func KindOf(name string) Kind {
	switch name {
	case NameTime:
		return KindTime
	case NameCalculator:
		return KindCalculator
	default:
		return KindUnsupported
	}
}

// String returns the wire name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTime:
		return NameTime
	case KindCalculator:
		return NameCalculator
	default:
		return "unsupported"
	}
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute runs the named tool with the given argument mapping and returns the
// result as text. It never panics and never returns a Go error: failures are
// reported inside the returned string so the follow-up completion can still
// reason about them.
func Execute(name string, args map[string]any) string {
	switch KindOf(name) {
	case KindTime:
		return CurrentTime()
	case KindCalculator:
		expr, _ := args["expression"].(string)
		return runCalculator(expr)
	case KindUnsupported:
		return "Unsupported tool"
	}
	return "Unsupported tool"
}

// CurrentTime returns the current local time in ISO 8601 format.
func CurrentTime() string {
	return time.Now().Format(TimeLayout)
}

// runCalculator evaluates a calculator invocation, mapping any failure to an
// "Error: <reason>" string.
func runCalculator(expr string) string {
	v, err := EvaluateExpression(expr)
	if err != nil {
		return "Error: " + err.Error()
	}
	return FormatResult(v)
}

// =============================================================================
// DECLARATIONS
// =============================================================================

// Declaration describes a tool to the completion API. Parameters is the JSON
// Schema "properties" object for the tool's arguments.
type Declaration struct {
	Name        string
	Description string
	Parameters  map[string]any
	Required    []string
}

// Declarations returns the fixed two-tool declaration set sent to the
// completion API when tool calling is enabled.
func Declarations() []Declaration {
	return []Declaration{
		{
			Name:        NameTime,
			Description: "Get the current time in ISO 8601 format.",
			Parameters:  map[string]any{},
		},
		{
			Name:        NameCalculator,
			Description: "Safely evaluate a basic math expression.",
			Parameters: map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "Math expression, e.g. 2*(3+4)/5",
				},
			},
			Required: []string{"expression"},
		},
	}
}
