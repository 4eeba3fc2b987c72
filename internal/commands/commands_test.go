// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/session"
)

// =============================================================================
// LOCAL TOOL INTERCEPTION
// =============================================================================

func TestTryHandle_Calc(t *testing.T) {
	sess := model.NewSession("t")

	reply, handled := TryHandle(sess, "/calc 2*(3+4)/5")
	if !handled {
		t.Fatal("calc input must be handled locally")
	}
	if reply != "`2*(3+4)/5` = **2.8**" {
		t.Errorf("reply = %q", reply)
	}
	if sess.TurnCount() != 2 {
		t.Fatalf("TurnCount = %d, want user + assistant", sess.TurnCount())
	}
	if sess.Messages[0].Content != "/calc 2*(3+4)/5" {
		t.Errorf("user turn = %q, want the raw input", sess.Messages[0].Content)
	}
	if sess.Messages[1].Role != model.RoleAssistant || sess.Messages[1].Content != reply {
		t.Error("assistant turn must carry the reply")
	}
}

func TestTryHandle_CalcError(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"injection attempt", "/calc ; rm -rf /"},
		{"power operator", "/calc 2**3"},
		{"empty expression", "/calc"},
		{"division by zero", "/calc 1/0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := model.NewSession("t")
			reply, handled := TryHandle(sess, tc.input)
			if !handled {
				t.Fatal("calc input must be handled locally even on error")
			}
			if !strings.HasPrefix(reply, "Calc error: ") {
				t.Errorf("reply = %q, want a Calc error", reply)
			}
			if sess.TurnCount() != 2 {
				t.Error("errors are still committed as a full exchange")
			}
		})
	}
}

func TestTryHandle_Time(t *testing.T) {
	sess := model.NewSession("t")

	reply, handled := TryHandle(sess, "/time")
	if !handled {
		t.Fatal("time input must be handled locally")
	}
	if !strings.HasPrefix(reply, "Current time: **") || !strings.HasSuffix(reply, "**") {
		t.Fatalf("reply = %q", reply)
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(reply, "Current time: **"), "**")
	if _, err := time.Parse(displayTimeLayout, stamp); err != nil {
		t.Errorf("timestamp %q does not parse: %v", stamp, err)
	}
}

func TestTryHandle_PrefixMatching(t *testing.T) {
	// The shortcuts match the start of the trimmed input, so no separator is
	// required between the command and what follows it.
	sess := model.NewSession("t")
	reply, handled := TryHandle(sess, "/calc2+2")
	if !handled {
		t.Fatal("/calc2+2 must be handled locally")
	}
	if reply != "`2+2` = **4**" {
		t.Errorf("reply = %q", reply)
	}

	sess = model.NewSession("t")
	reply, handled = TryHandle(sess, "/timezone")
	if !handled {
		t.Fatal("/timezone must be handled locally")
	}
	if !strings.HasPrefix(reply, "Current time: **") {
		t.Errorf("reply = %q, want the time reply", reply)
	}
	if sess.TurnCount() != 2 {
		t.Error("prefix-matched input is still committed as a full exchange")
	}
}

func TestTryHandle_PassThrough(t *testing.T) {
	for _, input := range []string{"/unknown foo", "hello", "/switch abc", "what time is it?"} {
		sess := model.NewSession("t")
		if _, handled := TryHandle(sess, input); handled {
			t.Errorf("TryHandle(%q) should pass through", input)
		}
		if sess.TurnCount() != 0 {
			t.Errorf("TryHandle(%q) must not touch the session", input)
		}
	}
}

// =============================================================================
// PARSER
// =============================================================================

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/switch abc", []string{"/switch", "abc"}},
		{`/rename "My Chat"`, []string{"/rename", "My Chat"}},
		{`/rename 'it''s fine'`, []string{"/rename", "its fine"}},
		{"  /help  ", []string{"/help"}},
		{"", nil},
	}

	for _, tc := range tests {
		got := splitCommandLine(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("splitCommandLine(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("splitCommandLine(%q) = %v, want %v", tc.input, got, tc.want)
				break
			}
		}
	}
}

func TestExtractCommandName(t *testing.T) {
	if got := ExtractCommandName("/calc 1+1"); got != "/calc" {
		t.Errorf("got %q", got)
	}
	if got := ExtractCommandName("/time"); got != "/time" {
		t.Errorf("got %q", got)
	}
	if got := ExtractCommandName("no slash"); got != "" {
		t.Errorf("got %q", got)
	}
}

// =============================================================================
// REGISTRY
// =============================================================================

func testContext(t *testing.T) *Context {
	t.Helper()
	cfg := config.Default()
	store := session.NewStore("", config.DefaultRoleProfile)
	return NewContext(cfg, store, nil, t.TempDir())
}

func TestExecute_UnknownCommand(t *testing.T) {
	ctx := testContext(t)
	_, handled, err := NewRegistry().Execute(ctx, "/frobnicate now")
	if handled || err != nil {
		t.Errorf("handled=%v err=%v, want pass-through", handled, err)
	}
}

func TestExecute_NewAndSwitch(t *testing.T) {
	ctx := testContext(t)
	reg := NewRegistry()

	out, handled, err := reg.Execute(ctx, "/new research notes")
	if !handled || err != nil {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	active := ctx.Store.Active()
	if active.Name != "research notes" {
		t.Errorf("active = %q, want the new session", active.Name)
	}
	if !strings.Contains(out.Text, "research notes") {
		t.Errorf("out = %q", out.Text)
	}

	// Switch back to the seed session by name.
	if _, _, err := reg.Execute(ctx, "/switch Welcome"); err != nil {
		t.Fatalf("/switch: %v", err)
	}
	if ctx.Store.Active().Name != "Welcome" {
		t.Error("switch by name failed")
	}
}

func TestExecute_RenameQuoted(t *testing.T) {
	ctx := testContext(t)

	if _, _, err := NewRegistry().Execute(ctx, `/rename "Project X"`); err != nil {
		t.Fatalf("/rename: %v", err)
	}
	if got := ctx.Store.Active().Name; got != "Project X" {
		t.Errorf("name = %q", got)
	}
}

func TestExecute_DeleteByID(t *testing.T) {
	ctx := testContext(t)
	reg := NewRegistry()

	doomed := ctx.Store.Create("doomed")
	if _, _, err := reg.Execute(ctx, "/delete "+doomed.ID); err != nil {
		t.Fatalf("/delete: %v", err)
	}
	if _, ok := ctx.Store.Get(doomed.ID); ok {
		t.Error("session still present after /delete")
	}

	if _, _, err := reg.Execute(ctx, "/delete nope"); err == nil {
		t.Error("deleting an unknown session should fail")
	}
}

func TestExecute_ClearKeepsSession(t *testing.T) {
	ctx := testContext(t)
	sess := ctx.Store.Active()
	sess.AppendUser("hi")

	if _, _, err := NewRegistry().Execute(ctx, "/clear"); err != nil {
		t.Fatalf("/clear: %v", err)
	}
	if sess.TurnCount() != 0 {
		t.Error("history should be empty")
	}
	if _, ok := ctx.Store.Get(sess.ID); !ok {
		t.Error("/clear must not remove the session")
	}
}

func TestExecute_SystemPreset(t *testing.T) {
	ctx := testContext(t)

	if _, _, err := NewRegistry().Execute(ctx, "/system deep reasoning"); err != nil {
		t.Fatalf("/system: %v", err)
	}
	if ctx.Config.SystemPreset != "Deep Reasoning" {
		t.Errorf("preset = %q, match should be case-insensitive", ctx.Config.SystemPreset)
	}
	if ctx.Store.Active().System != config.SystemPresetText("Deep Reasoning") {
		t.Error("active session should carry the preset text")
	}

	if _, _, err := NewRegistry().Execute(ctx, "/system nonsense"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestExecute_RoleProfile(t *testing.T) {
	ctx := testContext(t)

	if _, _, err := NewRegistry().Execute(ctx, "/role engineer"); err != nil {
		t.Fatalf("/role: %v", err)
	}
	if ctx.Store.Active().RoleProfile != "Engineer" {
		t.Errorf("role = %q", ctx.Store.Active().RoleProfile)
	}
}

func TestExecute_Model(t *testing.T) {
	ctx := testContext(t)
	reg := NewRegistry()

	out, _, err := reg.Execute(ctx, "/model")
	if err != nil || !strings.Contains(out.Text, ctx.Config.Model) {
		t.Errorf("out=%q err=%v", out.Text, err)
	}

	if _, _, err := reg.Execute(ctx, "/model gpt-4o-mini"); err != nil {
		t.Fatal(err)
	}
	if ctx.Config.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", ctx.Config.Model)
	}
}

func TestExecute_Quit(t *testing.T) {
	ctx := testContext(t)
	out, handled, err := NewRegistry().Execute(ctx, "/quit")
	if !handled || err != nil || !out.Quit {
		t.Errorf("out=%+v handled=%v err=%v", out, handled, err)
	}
}

func TestExecute_Export(t *testing.T) {
	ctx := testContext(t)
	ctx.Store.Active().AppendUser("hello")

	out, _, err := NewRegistry().Execute(ctx, "/export json")
	if err != nil {
		t.Fatalf("/export: %v", err)
	}
	path := strings.TrimPrefix(out.Text, "Exported to ")
	if filepath.Ext(path) != ".json" {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}

	if _, _, err := NewRegistry().Execute(ctx, "/export xml"); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestExecute_Help(t *testing.T) {
	ctx := testContext(t)
	out, _, err := NewRegistry().Execute(ctx, "/help")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"/new", "/switch", "/export", "/calc"} {
		if !strings.Contains(out.Text, want) {
			t.Errorf("help output missing %s", want)
		}
	}
}
