// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"

	"github.com/palaverhq/palaver/internal/model"
)

func newTestStore() *Store {
	return NewStore("You are a precise, helpful assistant.", "General")
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

func TestNewStore_SeedsDefaultSession(t *testing.T) {
	store := newTestStore()

	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}
	active := store.Active()
	if active.Name != "Welcome" {
		t.Errorf("seed session name = %q, want %q", active.Name, "Welcome")
	}
	if active.System == "" {
		t.Error("seed session should carry the default system instructions")
	}
	if active.RoleProfile != "General" {
		t.Errorf("seed session role profile = %q, want General", active.RoleProfile)
	}
}

// =============================================================================
// CRUD
// =============================================================================

func TestCreate_DoesNotActivate(t *testing.T) {
	store := newTestStore()
	before := store.Active().ID

	created := store.Create("Second")
	if store.Active().ID != before {
		t.Error("Create() must not change the active session")
	}
	if created.ID == before {
		t.Error("Create() must assign a distinct id")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestSetActive(t *testing.T) {
	store := newTestStore()
	second := store.Create("Second")

	if err := store.SetActive(second.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if store.Active().ID != second.ID {
		t.Error("Active() should return the newly activated session")
	}
	if err := store.SetActive("missing"); err != ErrNotFound {
		t.Errorf("SetActive(missing) = %v, want ErrNotFound", err)
	}
}

func TestRename(t *testing.T) {
	store := newTestStore()
	sess := store.Active()

	if err := store.Rename(sess.ID, "Renamed"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if sess.Name != "Renamed" {
		t.Errorf("Name = %q after rename", sess.Name)
	}
	if err := store.Rename("missing", "x"); err != ErrNotFound {
		t.Errorf("Rename(missing) = %v, want ErrNotFound", err)
	}
}

func TestClear_LeavesMetadata(t *testing.T) {
	store := newTestStore()
	sess := store.Active()
	sess.AppendUser("hi")
	sess.AddUsage(model.UsageSnapshot{TotalTokens: 5})

	if err := store.Clear(sess.ID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !sess.IsEmpty() || len(sess.Usage) != 0 {
		t.Error("Clear() should empty messages and usage")
	}
	if sess.Name != "Welcome" || sess.System == "" {
		t.Error("Clear() must not touch session metadata")
	}
}

// =============================================================================
// DELETE / FALLBACK INVARIANTS
// =============================================================================

func TestDelete_ActiveFallsBackToFirst(t *testing.T) {
	store := newTestStore()
	first := store.Active()
	second := store.Create("Second")
	store.SetActive(second.ID)

	if err := store.Delete(second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Active().ID != first.ID {
		t.Error("deleting the active session should fall back to the first session")
	}
}

func TestDelete_LastSessionSynthesizesDefault(t *testing.T) {
	store := newTestStore()
	only := store.Active()

	if err := store.Delete(only.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len() = %d after deleting the last session, want 1", store.Len())
	}
	active := store.Active()
	if active.ID == only.ID {
		t.Error("synthesized session should have a fresh id")
	}
	if active.Name != DefaultSessionName {
		t.Errorf("synthesized session name = %q, want %q", active.Name, DefaultSessionName)
	}
}

func TestActive_RecoversFromDanglingID(t *testing.T) {
	store := newTestStore()
	second := store.Create("Second")
	store.SetActive(second.ID)

	// Delete via a path that leaves the active pointer dangling on purpose.
	store.mu.Lock()
	store.sessions = store.sessions[:1]
	store.mu.Unlock()

	active := store.Active()
	if active == nil {
		t.Fatal("Active() returned nil")
	}
	if active.ID == second.ID {
		t.Error("Active() should have fallen back to a surviving session")
	}
}

// After any sequence of create/delete operations, the set is non-empty and
// Active resolves to a member of the set.
func TestStore_InvariantUnderChurn(t *testing.T) {
	store := newTestStore()

	for i := 0; i < 50; i++ {
		created := store.Create("churn")
		if i%3 == 0 {
			store.SetActive(created.ID)
		}
		if i%2 == 0 {
			// Delete the current active session.
			store.Delete(store.Active().ID)
		}

		if store.Len() == 0 {
			t.Fatal("session set became empty")
		}
		active := store.Active()
		found := false
		for _, sess := range store.List() {
			if sess.ID == active.ID {
				found = true
				break
			}
		}
		if !found {
			t.Fatal("Active() resolved to a session outside the set")
		}
	}
}

// =============================================================================
// ADOPT
// =============================================================================

func TestAdopt_ReplacesById(t *testing.T) {
	store := newTestStore()
	orig := store.Active()

	replacement := orig.Clone()
	replacement.Name = "Imported"
	store.Adopt(replacement)

	if store.Len() != 1 {
		t.Fatalf("Adopt with same id should replace, Len() = %d", store.Len())
	}
	if store.Active().Name != "Imported" {
		t.Error("Adopt should have replaced the session in place")
	}

	fresh := model.NewSession("Other")
	store.Adopt(fresh)
	if store.Len() != 2 {
		t.Error("Adopt with new id should append")
	}
}
