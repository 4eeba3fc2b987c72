// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides session export functionality.
//
// Two formats are supported: JSON, which is the session's complete wire shape
// and round-trips losslessly through ImportJSON, and Markdown, a one-way
// human-readable transcript.
//
// # Key Types
//
//   - Exporter: format-specific serialization
//   - WriteFile: export a session into a directory with a collision-safe name
//   - ImportJSON: reconstruct a session from an exported JSON document
package export
