// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "sort"

// Default preset selections for new sessions.
const (
	DefaultSystemPreset = "Balanced"
	DefaultRoleProfile  = "General"
)

// =============================================================================
// SYSTEM PRESETS
// =============================================================================

// SystemPresets maps preset names to editable starting points for a session's
// system instructions. The user can freely edit the text afterwards; the
// preset only seeds it.
var SystemPresets = map[string]string{
	"Balanced": "You are a precise, helpful assistant. Prefer clear, concise answers. " +
		"Use bullet points and code blocks when helpful. Verify steps before finalizing.",
	"Deep Reasoning": "Prioritize rigorous reasoning. Explicitly check assumptions, consider edge cases, " +
		"and present final answers succinctly after reasoning internally.",
	"Code First": "Default to showing complete, runnable code with filenames, then a short explanation. " +
		"Follow secure, defensive coding practices.",
	"Creative": "Adopt a friendly, creative voice. Offer multiple options and variations. " +
		"Avoid verbosity; keep a brisk pace.",
}

// =============================================================================
// ROLE PROFILES
// =============================================================================

// RoleProfiles maps role names to priming text layered under the session's
// system instructions as a second system entry.
var RoleProfiles = map[string]string{
	"General":  "Act like an expert generalist who gives pragmatic, production-ready advice.",
	"Analyst":  "Think like a data/product analyst; quantify trade-offs and cite metrics when possible.",
	"Engineer": "Behave like a senior software engineer; value correctness, tests, and readability.",
	"Creative": "Behave like a creative director; emphasize tone, narrative, and voice.",
}

// PresetNames returns the system preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(SystemPresets))
	for name := range SystemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RoleNames returns the role profile names in sorted order.
func RoleNames() []string {
	names := make([]string, 0, len(RoleProfiles))
	for name := range RoleProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RolePriming returns the priming text for a role profile, or "" when the
// profile is unknown (an unknown profile simply contributes no system entry).
func RolePriming(role string) string {
	return RoleProfiles[role]
}

// SystemPresetText returns the instructions text for a preset, falling back
// to the default preset for unknown names.
func SystemPresetText(preset string) string {
	if text, ok := SystemPresets[preset]; ok {
		return text
	}
	return SystemPresets[DefaultSystemPreset]
}
