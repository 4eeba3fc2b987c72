// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"time"

	"github.com/palaverhq/palaver/internal/model"
	"github.com/palaverhq/palaver/internal/tools"
)

// displayTimeLayout is how /time renders the clock for humans, as opposed to
// the ISO-like form the model-facing tool emits.
const displayTimeLayout = "2006-01-02 15:04:05"

// =============================================================================
// LOCAL TOOL INTERCEPTION
// =============================================================================

// TryHandle intercepts the local tool shortcuts /time and /calc before any
// remote work. When it handles the input, both the user turn and the locally
// produced assistant turn are committed to the session and the assistant text
// is returned; no completion request is made.
//
// The shortcuts match on the prefix of the trimmed input, not on a delimited
// token: "/calc2+2" evaluates the expression and "/timezone" answers with the
// time. Any other input, including unrecognized slash commands, is left
// untouched for the caller to route (handled == false, nothing appended).
func TryHandle(sess *model.Session, input string) (string, bool) {
	trimmed := strings.TrimSpace(input)

	var reply string
	switch {
	case strings.HasPrefix(trimmed, "/time"):
		reply = "Current time: **" + time.Now().Format(displayTimeLayout) + "**"

	case strings.HasPrefix(trimmed, "/calc"):
		expr := strings.TrimSpace(strings.TrimPrefix(trimmed, "/calc"))
		result, err := tools.EvaluateExpression(expr)
		if err != nil {
			reply = "Calc error: " + err.Error()
		} else {
			reply = "`" + expr + "` = **" + tools.FormatResult(result) + "**"
		}

	default:
		return "", false
	}

	sess.AppendUser(input)
	sess.AppendAssistant(reply)
	return reply, true
}
