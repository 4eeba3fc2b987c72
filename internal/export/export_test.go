// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/palaverhq/palaver/internal/model"
)

func exportedSession() *model.Session {
	sess := model.NewSession("Research Notes")
	sess.System = "be terse"
	sess.RoleProfile = "Analyst"
	sess.AppendUser("what is 1+1?")
	sess.AppendAssistant("2")
	sess.AddUsage(model.UsageSnapshot{PromptTokens: 10, CompletionTokens: 1, TotalTokens: 11})
	return sess
}

func TestJSONRoundTrip(t *testing.T) {
	sess := exportedSession()

	data, err := (&JSONExporter{}).Export(sess)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got, err := ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if got.ID != sess.ID || got.Name != sess.Name {
		t.Errorf("identity changed: %s/%s", got.ID, got.Name)
	}
	if got.System != sess.System || got.RoleProfile != sess.RoleProfile {
		t.Error("settings changed across round trip")
	}
	if len(got.Messages) != 2 || got.Messages[1].Content != "2" {
		t.Errorf("messages = %+v", got.Messages)
	}
	if len(got.Usage) != 1 || got.Usage[0].TotalTokens != 11 {
		t.Errorf("usage = %+v", got.Usage)
	}
}

func TestImportJSON_Invalid(t *testing.T) {
	if _, err := ImportJSON([]byte("{nope")); err == nil {
		t.Error("malformed document should fail")
	}
	if _, err := ImportJSON([]byte(`{"name":"x"}`)); err == nil {
		t.Error("document without an id should fail")
	}
}

func TestImportJSON_MissingHistory(t *testing.T) {
	got, err := ImportJSON([]byte(`{"id":"abcd1234","name":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.Messages == nil || got.Usage == nil {
		t.Error("history fields must decode to empty slices")
	}
	got.AppendUser("still works")
	if got.TurnCount() != 1 {
		t.Error("imported session should be immediately usable")
	}
}

func TestMarkdownExport(t *testing.T) {
	data, err := (&MarkdownExporter{}).Export(exportedSession())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	md := string(data)

	for _, want := range []string{"# Research Notes", "## System Prompt", "> be terse", "## You", "## Assistant", "what is 1+1?"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	sess := exportedSession()

	path, err := WriteFile(sess, FormatJSON, dir)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".json" {
		t.Errorf("path = %q", path)
	}
	name := filepath.Base(path)
	if !strings.Contains(name, "Research_Notes") || !strings.Contains(name, sess.ID) {
		t.Errorf("filename = %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ImportJSON(data); err != nil {
		t.Errorf("written file should re-import: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Chat", "My_Chat"},
		{`a/b\c:d`, "a-b-c-d"},
		{"", "session"},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
