// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palaverhq/palaver/internal/exchange"
	"github.com/palaverhq/palaver/internal/model"
)

// exchangeDoneMsg reports the result of an exchange run off the update loop.
type exchangeDoneMsg struct {
	err error
}

// sendCmd runs one full exchange in the background. The session is only
// touched by this goroutine until the done message arrives, so the update
// loop must not re-render the transcript while waiting.
func sendCmd(orch *exchange.Orchestrator, sess *model.Session, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := orch.Send(context.Background(), sess, text)
		return exchangeDoneMsg{err: err}
	}
}
