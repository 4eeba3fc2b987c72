// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openai adapts the OpenAI-compatible chat completion API to the
// exchange.Completer interface.
package openai

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"golang.org/x/time/rate"

	"github.com/palaverhq/palaver/internal/exchange"
	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/tools"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the completion client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeRateLimited
	ErrTypeRequest
	ErrTypeEmptyResponse
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the completion client.
type ClientConfig struct {
	// APIKey authenticates against the remote API.
	APIKey string

	// BaseURL overrides the API endpoint; empty selects the official one.
	// Any OpenAI-compatible endpoint works.
	BaseURL string

	// Timeout for a single completion request (default: 120s).
	Timeout time.Duration

	// RequestsPerMinute caps outbound calls client-side (default: 20).
	// Zero disables the limiter.
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:           120 * time.Second,
		RequestsPerMinute: 20,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client implements exchange.Completer against an OpenAI-compatible chat
// completion endpoint. Requests are non-streaming: one call, one complete
// response.
//
// The Client is thread-safe for concurrent use.
type Client struct {
	config  *ClientConfig
	api     openai.Client
	limiter *rate.Limiter
}

// NewClient creates a completion client for the given configuration.
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}

	return &Client{
		config:  cfg,
		api:     openai.NewClient(opts...),
		limiter: limiter,
	}
}

// Complete issues one chat completion call and normalizes the response.
func (c *Client) Complete(ctx context.Context, req *exchange.Request) (*exchange.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &ClientError{Type: ErrTypeRateLimited, Message: "rate limit wait aborted", Cause: err}
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: buildMessages(req.Messages),
	}
	params.Temperature = openai.Float(req.Temperature)
	if req.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxOutputTokens))
	}
	if len(req.Tools) > 0 {
		params.Tools = buildTools(req.Tools)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeRequest, Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ClientError{Type: ErrTypeEmptyResponse, Message: "response carried no choices"}
	}

	msg := resp.Choices[0].Message
	result := &exchange.Result{
		Text:  msg.Content,
		Usage: normalizeUsage(resp.Usage),
	}
	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, exchange.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return result, nil
}

// =============================================================================
// CONVERSION
// =============================================================================

// buildMessages converts unified messages to API params. Assistant entries
// carrying tool calls and tool-result entries need explicit union shapes; the
// simple roles map through helpers.
func buildMessages(msgs []exchange.Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case model.RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case model.RoleUser:
			params = append(params, openai.UserMessage(m.Content))
		case model.RoleTool:
			params = append(params, openai.ToolMessage(m.Content, m.ToolCallID))
		case model.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				params = append(params, openai.AssistantMessage(m.Content))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{
				Content: openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(m.Content),
				},
			}
			for _, tc := range m.ToolCalls {
				args := tc.Arguments
				if args == "" {
					args = "{}"
				}
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
					ID:   tc.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: args,
					},
				})
			}
			params = append(params, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		}
	}
	return params
}

// buildTools converts tool declarations to API params.
func buildTools(decls []tools.Declaration) []openai.ChatCompletionToolParam {
	params := make([]openai.ChatCompletionToolParam, 0, len(decls))
	for _, d := range decls {
		fn := shared.FunctionDefinitionParam{
			Name:        d.Name,
			Description: openai.String(d.Description),
			Parameters: shared.FunctionParameters{
				"type":       "object",
				"properties": d.Parameters,
			},
		}
		if len(d.Required) > 0 {
			fn.Parameters["required"] = d.Required
		}
		params = append(params, openai.ChatCompletionToolParam{
			Type:     "function",
			Function: fn,
		})
	}
	return params
}

// normalizeUsage reduces the API's usage block to the session snapshot shape.
// A zero block means the endpoint reported nothing and maps to nil.
func normalizeUsage(u openai.CompletionUsage) *model.UsageSnapshot {
	if u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0 {
		return nil
	}
	return &model.UsageSnapshot{
		PromptTokens:     int(u.PromptTokens),
		CompletionTokens: int(u.CompletionTokens),
		TotalTokens:      int(u.TotalTokens),
	}
}
