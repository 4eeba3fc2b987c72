// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists sessions to a local SQLite database.
//
// The schema is one row per session with the history and usage log stored as
// JSON blobs. Sessions are small and always read and written whole, so there
// is nothing to gain from normalizing turns into their own table.
//
// # Key Types
//
//   - Store: open/save/load/delete over the sessions table
//   - DefaultDBPath: standard database location inside the data directory
//
// Losing this database loses archived sessions but nothing else; the
// application recreates it on the next start.
package storage
