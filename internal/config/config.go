// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for palaver.
//
// Configuration file location: ~/.palaver/config.toml, with built-in
// defaults and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete palaver configuration.
type Config struct {
	// API settings
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`

	// Generation parameters
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	MaxOutputTokens int     `toml:"max_output_tokens"`

	// Hints passed through to the completion API when supported, otherwise
	// silently ignored by the adapter.
	Verbosity       string `toml:"verbosity"`
	ReasoningEffort string `toml:"reasoning_effort"`

	// Tool calling
	ToolsEnabled bool `toml:"tools_enabled"`

	// Defaults for new sessions
	SystemPreset string `toml:"system_preset"`
	RoleProfile  string `toml:"role_profile"`

	// Paths (empty = under ~/.palaver)
	DataDir string `toml:"data_dir"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Model:           "gpt-4o",
		Temperature:     0.5,
		MaxOutputTokens: 2048,
		Verbosity:       "medium",
		ReasoningEffort: "medium",
		ToolsEnabled:    true,
		SystemPreset:    DefaultSystemPreset,
		RoleProfile:     DefaultRoleProfile,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the palaver config/data directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".palaver")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads configuration from the default path, applies environment
// overrides, and validates. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.Validate()
	return cfg, nil
}

// applyEnv applies environment variable overrides. OPENAI_API_KEY matches the
// credential the hosted API's own tooling reads; PALAVER_* override the rest.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PALAVER_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PALAVER_MODEL"); v != "" {
		c.Model = v
	}
}

// HasCredential reports whether an API credential is configured. When false,
// the orchestrator degrades to a warning turn instead of calling the API.
func (c *Config) HasCredential() bool {
	return c.APIKey != ""
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate clamps out-of-range values to sane bounds rather than failing.
func (c *Config) Validate() {
	if c.Model == "" {
		c.Model = "gpt-4o"
	}
	if c.Temperature < 0 {
		c.Temperature = 0
	}
	if c.Temperature > 1 {
		c.Temperature = 1
	}
	if c.MaxOutputTokens < 256 {
		c.MaxOutputTokens = 256
	}
	if c.MaxOutputTokens > 8192 {
		c.MaxOutputTokens = 8192
	}
	if _, ok := SystemPresets[c.SystemPreset]; !ok {
		c.SystemPreset = DefaultSystemPreset
	}
	if _, ok := RoleProfiles[c.RoleProfile]; !ok {
		c.RoleProfile = DefaultRoleProfile
	}
	switch c.Verbosity {
	case "low", "medium", "high":
	default:
		c.Verbosity = "medium"
	}
	switch c.ReasoningEffort {
	case "minimal", "medium", "high":
	default:
		c.ReasoningEffort = "medium"
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
