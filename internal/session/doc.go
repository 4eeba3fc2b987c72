// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the set of chat sessions and the active-session pointer.
//
// The store is an explicit object threaded through the pipeline rather than
// ambient global state, so the core stays testable without a UI host.
//
// # Invariants
//
//   - The session set is never empty after any operation completes.
//   - Active always resolves to a member of the set: a dangling active id
//     falls back to the first remaining session, and an empty set causes a
//     fresh default session to be synthesized.
//
// # Usage
//
//	store := session.NewStore(defaultSystem, "General")
//	sess := store.Create("Research")
//	store.SetActive(sess.ID)
//	active := store.Active()
package session
