// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/palaverhq/palaver/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports sessions to JSON format. The document is the session's
// complete wire shape; ImportJSON reconstructs an equivalent session from it.
type JSONExporter struct{}

// Export converts a session to indented JSON.
func (e *JSONExporter) Export(sess *model.Session) ([]byte, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is nil")
	}
	return json.MarshalIndent(sess, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

// =============================================================================
// IMPORT
// =============================================================================

// ImportJSON reconstructs a session from an exported JSON document. Missing
// history fields decode to empty slices so the session is immediately usable.
func ImportJSON(data []byte) (*model.Session, error) {
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("malformed session document: %w", err)
	}
	if sess.ID == "" {
		return nil, fmt.Errorf("session document has no id")
	}
	if sess.Messages == nil {
		sess.Messages = make([]model.Turn, 0)
	}
	if sess.Usage == nil {
		sess.Usage = make([]model.UsageSnapshot, 0)
	}
	return &sess, nil
}
