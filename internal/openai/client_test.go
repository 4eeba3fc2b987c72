// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package openai

import (
	"errors"
	"testing"

	openaisdk "github.com/openai/openai-go"

	"github.com/palaverhq/palaver/internal/exchange"
	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/tools"
)

func TestBuildMessages_RoleMapping(t *testing.T) {
	msgs := []exchange.Message{
		{Role: model.RoleSystem, Content: "sys"},
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
		{Role: model.RoleTool, Content: "2", ToolCallID: "call_1"},
	}

	params := buildMessages(msgs)
	if len(params) != 4 {
		t.Fatalf("len = %d, want 4", len(params))
	}
	if params[0].OfSystem == nil {
		t.Error("params[0] should be a system message")
	}
	if params[1].OfUser == nil {
		t.Error("params[1] should be a user message")
	}
	if params[2].OfAssistant == nil {
		t.Error("params[2] should be an assistant message")
	}
	if params[3].OfTool == nil {
		t.Fatal("params[3] should be a tool message")
	}
	if params[3].OfTool.ToolCallID != "call_1" {
		t.Errorf("tool call id = %q", params[3].OfTool.ToolCallID)
	}
}

func TestBuildMessages_AssistantToolCalls(t *testing.T) {
	msgs := []exchange.Message{{
		Role:    model.RoleAssistant,
		Content: "",
		ToolCalls: []exchange.ToolCall{
			{ID: "a", Name: "calculator", Arguments: `{"expression":"1+1"}`},
			{ID: "b", Name: "get_current_time", Arguments: ""},
		},
	}}

	params := buildMessages(msgs)
	if len(params) != 1 || params[0].OfAssistant == nil {
		t.Fatalf("want a single assistant param, got %+v", params)
	}
	calls := params[0].OfAssistant.ToolCalls
	if len(calls) != 2 {
		t.Fatalf("tool calls = %d, want 2", len(calls))
	}
	if calls[0].ID != "a" || calls[0].Function.Name != "calculator" {
		t.Errorf("first call = %+v", calls[0])
	}
	if calls[1].Function.Arguments != "{}" {
		t.Errorf("empty arguments must be sent as %q, got %q", "{}", calls[1].Function.Arguments)
	}
}

func TestBuildTools(t *testing.T) {
	params := buildTools(tools.Declarations())
	if len(params) != 2 {
		t.Fatalf("len = %d, want 2", len(params))
	}

	byName := map[string]openaisdk.ChatCompletionToolParam{}
	for _, p := range params {
		if p.Type != "function" {
			t.Errorf("tool type = %q", p.Type)
		}
		byName[p.Function.Name] = p
	}

	calc, ok := byName[tools.NameCalculator]
	if !ok {
		t.Fatal("calculator declaration missing")
	}
	req, _ := calc.Function.Parameters["required"].([]string)
	if len(req) != 1 || req[0] != "expression" {
		t.Errorf("calculator required = %v", req)
	}

	clock, ok := byName[tools.NameTime]
	if !ok {
		t.Fatal("time declaration missing")
	}
	if _, has := clock.Function.Parameters["required"]; has {
		t.Error("time tool has no required parameters")
	}
}

func TestNormalizeUsage(t *testing.T) {
	if got := normalizeUsage(openaisdk.CompletionUsage{}); got != nil {
		t.Errorf("zero usage should normalize to nil, got %+v", got)
	}

	got := normalizeUsage(openaisdk.CompletionUsage{
		PromptTokens:     11,
		CompletionTokens: 4,
		TotalTokens:      15,
	})
	if got == nil {
		t.Fatal("non-zero usage dropped")
	}
	if got.PromptTokens != 11 || got.CompletionTokens != 4 || got.TotalTokens != 15 {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestClientError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &ClientError{Type: ErrTypeRequest, Message: "chat completion failed", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if err.Error() != "chat completion failed: dial tcp: refused" {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := &ClientError{Type: ErrTypeEmptyResponse, Message: "response carried no choices"}
	if bare.Error() != "response carried no choices" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(nil)
	if c.config.Timeout != DefaultConfig().Timeout {
		t.Error("nil config should fall back to defaults")
	}
	if c.limiter == nil {
		t.Error("default config enables the client-side limiter")
	}

	unlimited := NewClient(&ClientConfig{APIKey: "k"})
	if unlimited.limiter != nil {
		t.Error("zero RequestsPerMinute disables the limiter")
	}
}
