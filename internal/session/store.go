// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the set of chat sessions and the active-session pointer.
package session

import (
	"errors"
	"sync"

	"github.com/palaverhq/palaver/internal/model"
)

// DefaultSessionName is the name given to sessions synthesized by the store
// when the set would otherwise become empty.
const DefaultSessionName = "New chat"

// ErrNotFound is returned when an operation references an unknown session id.
var ErrNotFound = errors.New("session not found")

// =============================================================================
// STORE
// =============================================================================

// Store owns the session set and the active-session pointer.
//
// Invariant: the set is never empty after any operation completes, and the
// active id always resolves to a member of the set (Active falls back to the
// first session when the recorded id has been deleted).
//
// The pipeline runs as a single logical actor per user turn, but the store is
// still guarded by a mutex so concurrent submissions degrade to interleaved
// appends rather than corruption.
type Store struct {
	mu       sync.Mutex
	sessions []*model.Session
	activeID string

	// Defaults applied to newly created sessions.
	defaultSystem      string
	defaultRoleProfile string
}

// NewStore creates a store seeded with one default session, which is active.
func NewStore(defaultSystem, defaultRoleProfile string) *Store {
	s := &Store{
		defaultSystem:      defaultSystem,
		defaultRoleProfile: defaultRoleProfile,
	}
	first := s.newSession("Welcome")
	s.sessions = []*model.Session{first}
	s.activeID = first.ID
	return s
}

// newSession builds a session with the store defaults. Caller holds no lock
// requirement; the session is not yet part of the set.
func (s *Store) newSession(name string) *model.Session {
	sess := model.NewSession(name)
	sess.System = s.defaultSystem
	sess.RoleProfile = s.defaultRoleProfile
	return sess
}

// =============================================================================
// CRUD
// =============================================================================

// Create adds a new session with the given name and returns it. The new
// session is appended to the set but NOT activated.
func (s *Store) Create(name string) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = DefaultSessionName
	}
	sess := s.newSession(name)
	s.sessions = append(s.sessions, sess)
	return sess
}

// Adopt inserts an externally constructed session (e.g. loaded from disk or
// reconstructed from an export) into the set. A session with the same id
// replaces the existing one in place.
func (s *Store) Adopt(sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.sessions {
		if existing.ID == sess.ID {
			s.sessions[i] = sess
			return
		}
	}
	s.sessions = append(s.sessions, sess)
}

// List returns the sessions in creation order. The slice is a copy; the
// sessions themselves are shared.
func (s *Store) List() []*model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (*model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Active resolves the active session. If the recorded id no longer resolves
// (deleted out from under us), it silently falls back to the first session;
// if the set is somehow empty, a fresh default session is synthesized. The
// returned session is always a member of the set.
func (s *Store) Active() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) == 0 {
		sess := s.newSession(DefaultSessionName)
		s.sessions = []*model.Session{sess}
		s.activeID = sess.ID
		return sess
	}
	if sess, ok := s.findLocked(s.activeID); ok {
		return sess
	}
	s.activeID = s.sessions[0].ID
	return s.sessions[0]
}

// SetActive marks the session with the given id as active.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocked(id); !ok {
		return ErrNotFound
	}
	s.activeID = id
	return nil
}

// Rename changes a session's display name.
func (s *Store) Rename(id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.findLocked(id)
	if !ok {
		return ErrNotFound
	}
	sess.Name = newName
	return nil
}

// Delete removes a session from the set. If the set becomes empty a fresh
// default session is synthesized; if the deleted session was active, the
// first remaining session becomes active.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sess := range s.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	if len(s.sessions) == 0 {
		s.sessions = []*model.Session{s.newSession(DefaultSessionName)}
	}
	if s.activeID == id {
		s.activeID = s.sessions[0].ID
	}
	return nil
}

// Clear empties a session's messages and usage, leaving its metadata intact.
func (s *Store) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.findLocked(id)
	if !ok {
		return ErrNotFound
	}
	sess.ClearHistory()
	return nil
}

// findLocked looks up a session by id. Caller must hold s.mu.
func (s *Store) findLocked(id string) (*model.Session, bool) {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return nil, false
}
