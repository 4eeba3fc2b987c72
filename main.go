// palaver - a multi-session terminal chat client for OpenAI-compatible APIs.
//
// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/palaverhq/palaver/internal/cli"
	"github.com/palaverhq/palaver/internal/commands"
	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/exchange"
	"github.com/palaverhq/palaver/internal/openai"
	"github.com/palaverhq/palaver/internal/session"
	"github.com/palaverhq/palaver/internal/storage"
	"github.com/palaverhq/palaver/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		plainFlag   = flag.Bool("plain", false, "use the plain REPL instead of the TUI")
		modelFlag   = flag.String("model", "", "override the completion model")
		configFlag  = flag.String("config", "", "path to config file")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("palaver %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*plainFlag, *modelFlag, *configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(plain bool, modelOverride, configPath string) error {
	// Configuration: explicit path, or the default under ~/.palaver.
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if modelOverride != "" {
		cfg.Model = modelOverride
	}
	if cfg.DataDir == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		cfg.DataDir = dir
	}

	// Session archive. A broken database degrades to in-memory sessions
	// rather than refusing to start.
	var persist *storage.Store
	persist, err = storage.NewStore(storage.DefaultDBPath(cfg.DataDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: session archive unavailable: %v\n", err)
		persist = nil
	} else {
		defer persist.Close()
	}

	// In-memory session set, seeded from the archive.
	store := session.NewStore(config.SystemPresetText(cfg.SystemPreset), cfg.RoleProfile)
	if persist != nil {
		saved, err := persist.LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not load archived sessions: %v\n", err)
		}
		for _, sess := range saved {
			store.Adopt(sess)
		}
		if len(saved) > 0 {
			latest := saved[0]
			for _, sess := range saved[1:] {
				if sess.UpdatedAt.After(latest.UpdatedAt) {
					latest = sess
				}
			}
			_ = store.SetActive(latest.ID)
		}
	}

	// Completion client, only when a credential exists; the orchestrator
	// handles the nil case with a warning turn.
	var completer exchange.Completer
	if cfg.HasCredential() {
		clientCfg := openai.DefaultConfig()
		clientCfg.APIKey = cfg.APIKey
		clientCfg.BaseURL = cfg.BaseURL
		completer = openai.NewClient(clientCfg)
	}
	orch := exchange.New(completer, cfg)

	registry := commands.NewRegistry()
	cmdCtx := commands.NewContext(cfg, store, persist, cfg.DataDir)

	// Live config reload: credential or model changes apply to the next
	// exchange without a restart.
	if configPath == "" {
		if path, err := config.Path(); err == nil {
			watcher, werr := config.Watch(path, func(next *config.Config) {
				if modelOverride != "" {
					next.Model = modelOverride
				}
				if next.HasCredential() {
					clientCfg := openai.DefaultConfig()
					clientCfg.APIKey = next.APIKey
					clientCfg.BaseURL = next.BaseURL
					orch.SetClient(openai.NewClient(clientCfg))
				} else {
					orch.SetClient(nil)
				}
				// The watcher runs on its own goroutine; the shared config
				// is swapped under the orchestrator's lock so an in-flight
				// exchange never observes a half-written update.
				orch.ApplyConfig(func(c *config.Config) { *c = *next })
			}, nil)
			if werr == nil {
				defer watcher.Close()
			}
		}
	}

	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.Run(cfg, store, orch, registry, cmdCtx, persist)
	}

	program := tea.NewProgram(
		chat.New(cfg, store, orch, registry, cmdCtx, persist),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}
