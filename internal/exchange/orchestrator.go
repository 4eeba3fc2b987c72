// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/tools"
)

// NoContentPlaceholder substitutes for an empty final response.
const NoContentPlaceholder = "_(No content returned.)_"

// MissingCredentialWarning is appended as the assistant turn when no
// completion client is configured. Not a failure: the user turn is preserved
// and the session stays usable.
const MissingCredentialWarning = "⚠️ No API key configured. Set the OPENAI_API_KEY " +
	"environment variable or add api_key to ~/.palaver/config.toml."

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator drives one exchange against the completion API per user turn:
// a single completion call, or two when the model elects to use tools. Tool
// use is capped at one round; the follow-up request never re-declares tools.
//
// The client and configuration may be swapped from another goroutine (the
// config watcher) while an exchange is in flight: Send snapshots both under
// the mutex before any remote work, so a swap applies to the next exchange.
type Orchestrator struct {
	mu     sync.Mutex
	client Completer // nil when no credential is configured
	cfg    *config.Config

	// OnPhase, when set, observes phase transitions of the in-flight
	// exchange. Called synchronously from Send.
	OnPhase func(Phase)
}

// New creates an orchestrator. A nil client is valid and selects the
// missing-credential path.
func New(client Completer, cfg *config.Config) *Orchestrator {
	return &Orchestrator{client: client, cfg: cfg}
}

// SetClient swaps the completion client (e.g. after a config reload
// introduces a credential).
func (o *Orchestrator) SetClient(client Completer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.client = client
}

// SetConfig swaps the generation parameters.
func (o *Orchestrator) SetConfig(cfg *config.Config) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cfg = cfg
}

// ApplyConfig mutates the current configuration under the orchestrator's
// lock. Callers on other goroutines use this to update configuration shared
// with in-flight exchanges.
func (o *Orchestrator) ApplyConfig(fn func(*config.Config)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.cfg)
}

func (o *Orchestrator) phase(p Phase) {
	if o.OnPhase != nil {
		o.OnPhase(p)
	}
}

// =============================================================================
// EXCHANGE
// =============================================================================

// Send runs one full exchange for the user's raw text against the given
// session and returns the final assistant text.
//
// The user turn is appended before any remote work, so a failed call still
// leaves it in history for the user to re-submit. On failure nothing beyond
// the user turn is appended and the error is returned for display; there is
// no automatic retry.
func (o *Orchestrator) Send(ctx context.Context, sess *model.Session, userText string) (string, error) {
	o.mu.Lock()
	client := o.client
	cfg := *o.cfg
	o.mu.Unlock()

	sess.AppendUser(userText)

	if client == nil {
		sess.AppendAssistant(MissingCredentialWarning)
		o.phase(PhaseDone)
		return MissingCredentialWarning, nil
	}

	o.phase(PhaseRequesting)
	req := &Request{
		Model:           cfg.Model,
		Messages:        BuildMessages(sess),
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Verbosity:       cfg.Verbosity,
		ReasoningEffort: cfg.ReasoningEffort,
	}
	if cfg.ToolsEnabled {
		req.Tools = tools.Declarations()
	}

	res, err := client.Complete(ctx, req)
	if err != nil {
		o.phase(PhaseFailed)
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(res.ToolCalls) > 0 {
		res, err = o.runToolRound(ctx, client, req, res)
		if err != nil {
			o.phase(PhaseFailed)
			return "", err
		}
	}

	text := res.Text
	if text == "" {
		text = NoContentPlaceholder
	}
	sess.AppendAssistant(text)
	if res.Usage != nil {
		sess.AddUsage(*res.Usage)
	}
	o.phase(PhaseDone)
	return text, nil
}

// runToolRound executes the requested tool calls locally and issues the
// follow-up completion carrying their results. The follow-up message list is
// the original request, plus the assistant's tool-call turn, plus one tool
// turn per call in the order the calls were requested.
func (o *Orchestrator) runToolRound(ctx context.Context, client Completer, req *Request, res *Result) (*Result, error) {
	o.phase(PhaseToolPending)

	assistant := Message{
		Role:      model.RoleAssistant,
		Content:   res.Text,
		ToolCalls: res.ToolCalls,
	}

	o.phase(PhaseToolExecuting)
	results := make([]Message, 0, len(res.ToolCalls))
	for _, call := range res.ToolCalls {
		args, err := decodeArguments(call.Arguments)
		if err != nil {
			// A malformed payload still produces a tool turn, so the
			// follow-up completion can reason about the failure.
			results = append(results, Message{
				Role:       model.RoleTool,
				Content:    "Error: " + err.Error(),
				ToolCallID: call.ID,
			})
			continue
		}
		results = append(results, Message{
			Role:       model.RoleTool,
			Content:    tools.Execute(call.Name, args),
			ToolCallID: call.ID,
		})
	}

	o.phase(PhaseFollowupRequesting)
	followup := &Request{
		Model:           req.Model,
		Messages:        append(append(append([]Message{}, req.Messages...), assistant), results...),
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
		Verbosity:       req.Verbosity,
		ReasoningEffort: req.ReasoningEffort,
		// Tools deliberately left empty: one round of tool use per turn.
	}

	out, err := client.Complete(ctx, followup)
	if err != nil {
		return nil, fmt.Errorf("tool follow-up request failed: %w", err)
	}
	return out, nil
}

// decodeArguments parses a serialized tool-call argument payload. A missing
// or empty payload decodes to an empty mapping, not a failure.
func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("malformed tool arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
