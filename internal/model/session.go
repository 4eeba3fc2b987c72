// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session holds one independent, named conversation thread with its own
// history, settings, and usage log. The JSON tags define the export document
// shape; exporting a session and unmarshalling the bytes back reconstructs it.
type Session struct {
	// Identity
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// History. Append-only except for ClearHistory.
	Messages []Turn          `json:"messages"`
	Usage    []UsageSnapshot `json:"usage"`

	// Settings
	System      string `json:"system"`
	RoleProfile string `json:"role_profile"`
}

// NewSession creates a session with a generated id and empty history.
// The id is a short prefix of a v4 UUID: collision-resistant enough for a
// single-process client, and friendlier to display than the full form.
func NewSession(name string) *Session {
	now := time.Now()
	return &Session{
		ID:        generateSessionID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]Turn, 0),
		Usage:     make([]UsageSnapshot, 0),
	}
}

// generateSessionID creates a short unique session id.
func generateSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// =============================================================================
// HISTORY
// =============================================================================

// Append adds a turn to the session history.
func (s *Session) Append(t Turn) {
	s.Messages = append(s.Messages, t)
	s.UpdatedAt = time.Now()
}

// AppendUser appends a user turn.
func (s *Session) AppendUser(content string) {
	s.Append(NewTurn(RoleUser, content))
}

// AppendAssistant appends an assistant turn.
func (s *Session) AppendAssistant(content string) {
	s.Append(NewTurn(RoleAssistant, content))
}

// AddUsage records a usage snapshot for a completed exchange.
func (s *Session) AddUsage(u UsageSnapshot) {
	s.Usage = append(s.Usage, u)
	s.UpdatedAt = time.Now()
}

// ClearHistory empties messages and usage, leaving id, name, and settings
// intact.
func (s *Session) ClearHistory() {
	s.Messages = make([]Turn, 0)
	s.Usage = make([]UsageSnapshot, 0)
	s.UpdatedAt = time.Now()
}

// LastTurn returns the most recent turn, or a zero Turn if the history is
// empty.
func (s *Session) LastTurn() (Turn, bool) {
	if len(s.Messages) == 0 {
		return Turn{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// TurnCount returns the number of turns in the history.
func (s *Session) TurnCount() int {
	return len(s.Messages)
}

// IsEmpty returns true if the session has no turns.
func (s *Session) IsEmpty() bool {
	return len(s.Messages) == 0
}

// TotalTokens sums the total-token counts of all recorded snapshots.
func (s *Session) TotalTokens() int {
	total := 0
	for _, u := range s.Usage {
		total += u.TotalTokens
	}
	return total
}

// Preview returns a short preview of the conversation for listings.
func (s *Session) Preview(maxRunes int) string {
	for _, t := range s.Messages {
		if t.Role == RoleUser {
			return t.Preview(maxRunes)
		}
	}
	return "Empty conversation"
}

// Clone creates a deep copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Messages = make([]Turn, len(s.Messages))
	copy(clone.Messages, s.Messages)
	clone.Usage = make([]UsageSnapshot, len(s.Usage))
	copy(clone.Usage, s.Usage)
	return &clone
}
