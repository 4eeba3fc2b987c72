// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/palaverhq/palaver/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports sessions to a readable Markdown transcript.
type MarkdownExporter struct{}

// Export converts a session to Markdown format.
func (e *MarkdownExporter) Export(sess *model.Session) ([]byte, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is nil")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", sess.Name))

	sb.WriteString("## Session Information\n\n")
	sb.WriteString(fmt.Sprintf("- **ID**: %s\n", sess.ID))
	sb.WriteString(fmt.Sprintf("- **Created**: %s\n", sess.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- **Last Updated**: %s\n", sess.UpdatedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- **Messages**: %d\n", len(sess.Messages)))
	if total := sess.TotalTokens(); total > 0 {
		sb.WriteString(fmt.Sprintf("- **Tokens Used**: %d\n", total))
	}
	if sess.RoleProfile != "" {
		sb.WriteString(fmt.Sprintf("- **Role Profile**: %s\n", sess.RoleProfile))
	}
	sb.WriteString("\n")

	if strings.TrimSpace(sess.System) != "" {
		sb.WriteString("## System Prompt\n\n")
		sb.WriteString("> " + strings.ReplaceAll(sess.System, "\n", "\n> ") + "\n\n")
	}

	sb.WriteString("---\n\n")
	for _, turn := range sess.Messages {
		sb.WriteString(fmt.Sprintf("## %s\n\n", turn.Role.DisplayName()))
		sb.WriteString(turn.Content + "\n\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}
