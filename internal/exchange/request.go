// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package exchange

import (
	"strings"

	"github.com/palaverhq/palaver/internal/config"
	"github.com/palaverhq/palaver/internal/model"
)

// =============================================================================
// REQUEST ASSEMBLY
// =============================================================================

// BuildMessages produces the ordered message list for a session, fixed as:
//
//  1. a system entry carrying the session's system instructions, omitted
//     entirely when the instructions are blank
//  2. a system entry carrying the role profile's priming text, omitted when
//     the profile maps to no text
//  3. the full turn history in stored order, unmodified
//
// The two leading entries are independently omissible and never merged with
// each other or with history.
func BuildMessages(sess *model.Session) []Message {
	msgs := make([]Message, 0, len(sess.Messages)+2)

	if strings.TrimSpace(sess.System) != "" {
		msgs = append(msgs, Message{Role: model.RoleSystem, Content: sess.System})
	}
	if priming := config.RolePriming(sess.RoleProfile); priming != "" {
		msgs = append(msgs, Message{Role: model.RoleSystem, Content: priming})
	}
	for _, t := range sess.Messages {
		msgs = append(msgs, Message{Role: t.Role, Content: t.Content})
	}
	return msgs
}
