// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/export"
	"github.com/palaverhq/palaver/internal/model"
)

// =============================================================================
// NAVIGATION
// =============================================================================

func handleHelp(ctx *Context, _ []string) (Outcome, error) {
	reg := NewRegistry()
	grouped := reg.ByCategory()

	categories := make([]string, 0, len(grouped))
	for cat := range grouped {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cat := range categories {
		cmds := grouped[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		b.WriteString("\n" + cat + ":\n")
		for _, cmd := range cmds {
			usage := cmd.Name
			if cmd.Usage != "" {
				usage = cmd.Usage
			}
			fmt.Fprintf(&b, "  %-24s %s\n", usage, cmd.Description)
		}
	}
	b.WriteString("\nLocal tools: /time, /calc <expression>\n")
	return Outcome{Text: b.String()}, nil
}

func handleQuit(_ *Context, _ []string) (Outcome, error) {
	return Outcome{Quit: true}, nil
}

// =============================================================================
// SESSIONS
// =============================================================================

func handleNew(ctx *Context, args []string) (Outcome, error) {
	name := strings.Join(args, " ")
	sess := ctx.Store.Create(name)
	if err := ctx.Store.SetActive(sess.ID); err != nil {
		return Outcome{}, err
	}
	ctx.persist()
	return Outcome{Text: fmt.Sprintf("Started session %q (%s).", sess.Name, sess.ID)}, nil
}

func handleSessions(ctx *Context, _ []string) (Outcome, error) {
	active := ctx.Store.Active()

	var b strings.Builder
	b.WriteString("Sessions:\n")
	for _, sess := range ctx.Store.List() {
		marker := " "
		if sess.ID == active.ID {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s  %-20s %3d turns  %5d tokens  %s\n",
			marker, sess.ID, sess.Name, sess.TurnCount(), sess.TotalTokens(), sess.Preview(40))
	}
	return Outcome{Text: b.String()}, nil
}

func handleSwitch(ctx *Context, args []string) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{}, fmt.Errorf("usage: /switch <id|name>")
	}
	sess, err := resolveSession(ctx, strings.Join(args, " "))
	if err != nil {
		return Outcome{}, err
	}
	if err := ctx.Store.SetActive(sess.ID); err != nil {
		return Outcome{}, err
	}
	return Outcome{Text: fmt.Sprintf("Switched to %q (%s).", sess.Name, sess.ID)}, nil
}

func handleRename(ctx *Context, args []string) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{}, fmt.Errorf("usage: /rename <name>")
	}
	name := strings.Join(args, " ")
	sess := ctx.Store.Active()
	if err := ctx.Store.Rename(sess.ID, name); err != nil {
		return Outcome{}, err
	}
	ctx.persist()
	return Outcome{Text: fmt.Sprintf("Renamed session to %q.", name)}, nil
}

func handleDelete(ctx *Context, args []string) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{}, fmt.Errorf("usage: /delete <id|name>")
	}
	sess, err := resolveSession(ctx, strings.Join(args, " "))
	if err != nil {
		return Outcome{}, err
	}
	name, id := sess.Name, sess.ID
	if err := ctx.Store.Delete(id); err != nil {
		return Outcome{}, err
	}
	if ctx.Storage != nil {
		_ = ctx.Storage.Delete(id)
	}
	return Outcome{Text: fmt.Sprintf("Deleted %q (%s).", name, id)}, nil
}

func handleClear(ctx *Context, _ []string) (Outcome, error) {
	sess := ctx.Store.Active()
	if err := ctx.Store.Clear(sess.ID); err != nil {
		return Outcome{}, err
	}
	ctx.persist()
	return Outcome{Text: "History cleared."}, nil
}

func handleExport(ctx *Context, args []string) (Outcome, error) {
	format := export.FormatJSON
	if len(args) > 0 {
		parsed, err := export.ParseFormat(args[0])
		if err != nil {
			return Outcome{}, err
		}
		format = parsed
	}
	path, err := export.WriteFile(ctx.Store.Active(), format, ctx.ExportDir)
	if err != nil {
		return Outcome{}, fmt.Errorf("export failed: %w", err)
	}
	return Outcome{Text: "Exported to " + path}, nil
}

// resolveSession finds a session by id first, then by exact name.
func resolveSession(ctx *Context, key string) (*model.Session, error) {
	if sess, ok := ctx.Store.Get(key); ok {
		return sess, nil
	}
	for _, sess := range ctx.Store.List() {
		if sess.Name == key {
			return sess, nil
		}
	}
	return nil, fmt.Errorf("no session matches %q", key)
}

// =============================================================================
// MODEL SETTINGS
// =============================================================================

func handleModel(ctx *Context, args []string) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{Text: "Current model: " + ctx.Config.Model}, nil
	}
	ctx.Config.Model = args[0]
	return Outcome{Text: "Model set to " + args[0]}, nil
}

func handleSystem(ctx *Context, args []string) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{Text: choiceList("System presets", config.PresetNames(), ctx.Config.SystemPreset)}, nil
	}

	name, ok := matchChoice(config.PresetNames(), strings.Join(args, " "))
	if !ok {
		return Outcome{}, fmt.Errorf("unknown preset %q (see /system)", strings.Join(args, " "))
	}
	ctx.Config.SystemPreset = name
	ctx.Store.Active().System = config.SystemPresetText(name)
	ctx.persist()
	return Outcome{Text: "System preset set to " + name}, nil
}

func handleRole(ctx *Context, args []string) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{Text: choiceList("Role profiles", config.RoleNames(), ctx.Config.RoleProfile)}, nil
	}

	name, ok := matchChoice(config.RoleNames(), strings.Join(args, " "))
	if !ok {
		return Outcome{}, fmt.Errorf("unknown role %q (see /role)", strings.Join(args, " "))
	}
	ctx.Config.RoleProfile = name
	ctx.Store.Active().RoleProfile = name
	ctx.persist()
	return Outcome{Text: "Role profile set to " + name}, nil
}

// matchChoice resolves a user-typed name against the known set,
// case-insensitively.
func matchChoice(names []string, input string) (string, bool) {
	for _, n := range names {
		if strings.EqualFold(n, input) {
			return n, true
		}
	}
	return "", false
}

func choiceList(title string, names []string, current string) string {
	var b strings.Builder
	b.WriteString(title + ":\n")
	for _, n := range names {
		marker := " "
		if n == current {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, n)
	}
	return b.String()
}
