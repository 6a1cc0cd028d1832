// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for NovaMind.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/novamind-tui/internal/config"
	"github.com/jeranaias/novamind-tui/internal/engine"
	"github.com/jeranaias/novamind-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResponseMsg carries a finished completion back to the update loop.
type ResponseMsg struct {
	Content    string
	TokenCount int
	Duration   time.Duration
	Err        error
}

// TypingTickMsg advances the typing animation.
type TypingTickMsg struct{}

// StatusExpiredMsg clears a transient status line.
type StatusExpiredMsg struct{}

// ConfigReloadedMsg carries a freshly reloaded configuration, typically
// from the config file watcher.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

// completionTimeout bounds a single completion round trip.
const completionTimeout = 2 * time.Minute

// requestCompletion fires the chat request off the update loop.
func requestCompletion(client *engine.Client, history []*model.Message) tea.Cmd {
	msgs := make([]engine.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.IsEmpty() {
			continue
		}
		msgs = append(msgs, engine.ChatMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
		defer cancel()

		start := time.Now()
		resp, err := client.Chat(ctx, msgs)
		if err != nil {
			return ResponseMsg{Err: err}
		}
		return ResponseMsg{
			Content:    resp.GetContent(),
			TokenCount: resp.Usage.CompletionTokens,
			Duration:   time.Since(start),
		}
	}
}

// typingTick schedules the next animation frame.
func typingTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TypingTickMsg{}
	})
}

// expireStatus clears the status line after a delay.
func expireStatus() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return StatusExpiredMsg{}
	})
}
