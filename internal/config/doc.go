// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for palaver.
//
// Configuration is TOML at ~/.palaver/config.toml with built-in defaults,
// environment overrides (OPENAI_API_KEY, PALAVER_MODEL, PALAVER_BASE_URL),
// and clamping validation. An optional fsnotify-based Watcher reloads the
// file when it changes on disk.
//
// The package also carries the fixed preset tables: named system-instruction
// presets and named role profiles, both consumed by new sessions and by the
// request assembler.
package config
