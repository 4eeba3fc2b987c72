// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system shared by both front
// ends.
package commands

import (
	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/session"
	"github.com/palaverhq/palaver/internal/storage"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/rename <name>")
	Usage string

	// Handler is the function that executes the command
	Handler func(ctx *Context, args []string) (Outcome, error)

	// Hidden commands don't appear in help
	Hidden bool

	// Category for grouping in help display
	Category string
}

// Outcome is what a handler produced: text for the transcript and control
// signals for the front end.
type Outcome struct {
	// Text is the rendered reply, empty when the command only had side
	// effects the front end will pick up from the store.
	Text string

	// Quit asks the front end to shut down.
	Quit bool
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// ByCategory returns visible commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.commands {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// Execute parses the input and runs the matching command. handled is false
// when the input names no registered command; such input belongs to the chat
// pipeline, not here.
func (r *Registry) Execute(ctx *Context, input string) (Outcome, bool, error) {
	parts := splitCommandLine(input)
	if len(parts) == 0 {
		return Outcome{}, false, nil
	}
	cmd := r.Get(parts[0])
	if cmd == nil {
		return Outcome{}, false, nil
	}
	out, err := cmd.Handler(ctx, parts[1:])
	return out, true, err
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	// Navigation commands
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show help and available commands",
		Category:    "Navigation",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit palaver",
		Category:    "Navigation",
		Handler:     handleQuit,
	})

	// Session commands
	r.Register(&Command{
		Name:        "/new",
		Aliases:     []string{"/n"},
		Description: "Start a new session and switch to it",
		Usage:       "/new [name]",
		Category:    "Sessions",
		Handler:     handleNew,
	})

	r.Register(&Command{
		Name:        "/sessions",
		Aliases:     []string{"/list"},
		Description: "List all sessions",
		Category:    "Sessions",
		Handler:     handleSessions,
	})

	r.Register(&Command{
		Name:        "/switch",
		Aliases:     []string{"/sw"},
		Description: "Switch to another session",
		Usage:       "/switch <id|name>",
		Category:    "Sessions",
		Handler:     handleSwitch,
	})

	r.Register(&Command{
		Name:        "/rename",
		Description: "Rename the active session",
		Usage:       "/rename <name>",
		Category:    "Sessions",
		Handler:     handleRename,
	})

	r.Register(&Command{
		Name:        "/delete",
		Description: "Delete a session",
		Usage:       "/delete <id|name>",
		Category:    "Sessions",
		Handler:     handleDelete,
	})

	r.Register(&Command{
		Name:        "/clear",
		Aliases:     []string{"/c"},
		Description: "Clear the active session's history",
		Category:    "Sessions",
		Handler:     handleClear,
	})

	r.Register(&Command{
		Name:        "/export",
		Description: "Export the active session to a file",
		Usage:       "/export [json|md]",
		Category:    "Sessions",
		Handler:     handleExport,
	})

	// Model commands
	r.Register(&Command{
		Name:        "/model",
		Aliases:     []string{"/m"},
		Description: "Show or switch the completion model",
		Usage:       "/model [name]",
		Category:    "Model",
		Handler:     handleModel,
	})

	r.Register(&Command{
		Name:        "/system",
		Description: "Show or pick the system prompt preset",
		Usage:       "/system [preset]",
		Category:    "Model",
		Handler:     handleSystem,
	})

	r.Register(&Command{
		Name:        "/role",
		Description: "Show or pick the role profile",
		Usage:       "/role [name]",
		Category:    "Model",
		Handler:     handleRole,
	})
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context provides access to application state for command handlers.
// It follows the dependency injection pattern, allowing handlers to access
// services without direct coupling to the front end.
//
// Storage is optional and may be nil; handlers check before use.
type Context struct {
	// Config provides access to application configuration
	Config *config.Config

	// Store manages the in-memory session set
	Store *session.Store

	// Storage handles session persistence
	Storage *storage.Store

	// ExportDir is where /export writes files
	ExportDir string
}

// NewContext creates a new command context with the given dependencies.
func NewContext(cfg *config.Config, store *session.Store, persist *storage.Store, exportDir string) *Context {
	return &Context{
		Config:    cfg,
		Store:     store,
		Storage:   persist,
		ExportDir: exportDir,
	}
}

// persist saves the active session when a storage backend is wired.
func (c *Context) persist() {
	if c.Storage == nil {
		return
	}
	if sess := c.Store.Active(); sess != nil {
		_ = c.Storage.Save(sess)
	}
}
