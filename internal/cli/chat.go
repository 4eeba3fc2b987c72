// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-terminal REPL front end.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/palaverhq/palaver/internal/commands"
	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/exchange"
	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/session"
	"github.com/palaverhq/palaver/internal/storage"
	"github.com/palaverhq/palaver/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle  = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	welcomeStyle = lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	noticeStyle  = lipgloss.NewStyle().Foreground(styles.Emerald)
	warningStyle = lipgloss.NewStyle().Foreground(styles.Amber)
	errorStyle   = lipgloss.NewStyle().Foreground(styles.Rose)
	usageStyle   = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history loaded from the data directory.
func NewChatCLI(dataDir string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	if dataDir == "" {
		dataDir = os.TempDir()
	}
	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(dataDir, "chat_history"),
	}
	cli.loadHistory()
	return cli
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt, recording non-empty
// lines in the history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (c *ChatCLI) Close() {
	if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// Run drives the plain-terminal chat loop until the user quits.
func Run(cfg *config.Config, store *session.Store, orch *exchange.Orchestrator, registry *commands.Registry, cmdCtx *commands.Context, persist *storage.Store) error {
	input := NewChatCLI(cfg.DataDir)
	defer input.Close()

	wrap := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		wrap = w - 2
	}
	renderer := styles.NewMarkdownRenderer(wrap)

	orch.OnPhase = func(p exchange.Phase) {
		if p == exchange.PhaseToolExecuting {
			fmt.Println(infoStyle.Render("(running local tools...)"))
		}
	}

	printWelcome(cfg, store)

	for {
		line, err := input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println(infoStyle.Render("(interrupted, /quit to exit)"))
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		sess := store.Active()

		if reply, handled := commands.TryHandle(sess, text); handled {
			fmt.Println(styles.RenderMarkdown(renderer, reply))
			saveActive(persist, store)
			continue
		}

		if commands.IsCommand(text) {
			out, handled, err := registry.Execute(cmdCtx, text)
			if handled {
				if err != nil {
					fmt.Println(errorStyle.Render("error: " + err.Error()))
					continue
				}
				if out.Text != "" {
					fmt.Println(noticeStyle.Render(strings.TrimRight(out.Text, "\n")))
				}
				if out.Quit {
					break
				}
				continue
			}
		}

		reply, err := orch.Send(context.Background(), sess, text)
		if err != nil {
			fmt.Println(errorStyle.Render("error: " + err.Error()))
			continue
		}
		fmt.Println(styles.RenderMarkdown(renderer, reply))
		if len(sess.Usage) > 0 {
			fmt.Println(usageStyle.Render(sess.Usage[len(sess.Usage)-1].Format()))
		}
		saveActive(persist, store)
	}

	if persist != nil {
		var keep []*model.Session
		for _, sess := range store.List() {
			if !sess.IsEmpty() {
				keep = append(keep, sess)
			}
		}
		if err := persist.SaveAll(keep); err != nil {
			fmt.Println(warningStyle.Render("warning: could not archive sessions: " + err.Error()))
		}
	}
	fmt.Println(infoStyle.Render("bye"))
	return nil
}

func saveActive(persist *storage.Store, store *session.Store) {
	if persist == nil {
		return
	}
	if sess := store.Active(); !sess.IsEmpty() {
		_ = persist.Save(sess)
	}
}

func printWelcome(cfg *config.Config, store *session.Store) {
	fmt.Println(welcomeStyle.Render("palaver") + infoStyle.Render("  multi-session chat for OpenAI-compatible APIs"))
	fmt.Println(infoStyle.Render(fmt.Sprintf("model %s | %d session(s) | /help for commands", cfg.Model, store.Len())))
	if !cfg.HasCredential() {
		fmt.Println(warningStyle.Render("no API key configured; replies will be a warning until one is set"))
	}
	fmt.Println()
}
