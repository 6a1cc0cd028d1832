// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for NovaMind.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/novamind-tui/internal/model"
	"github.com/jeranaias/novamind-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if m.state == StateWaiting {
		elapsed := time.Since(m.waitingSince).Round(time.Second)
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.theme.ThinkingText.Render(fmt.Sprintf(" thinking... %s", elapsed)))
		sb.WriteString("\n")
	}

	sb.WriteString(m.theme.InputContainer.Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

// renderHeader draws the title line.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("NovaMind")
	sub := m.theme.HeaderSubtitle.Render(" · " + m.client.Model())
	return m.theme.Header.Render(title + sub)
}

// renderStatusBar draws shortcuts and the transient status message.
func (m Model) renderStatusBar() string {
	if m.statusMsg != "" {
		status := m.statusMsg
		if m.width > 0 {
			status = util.TruncateWidth(status, m.width-2)
		}
		return m.theme.StatusBar.Render(status)
	}

	parts := []string{
		m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" send"),
		m.theme.ShortcutKey.Render("/help") + m.theme.ShortcutDesc.Render(" commands"),
		m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" quit"),
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// displayContent runs an assistant message through the sanitization
// pipeline for display. Sanitize is pure, so repeated calls are safe.
func (m *Model) displayContent(msg *model.Message) string {
	clean := m.sanitize.Sanitize(msg.Content)
	if clean == "" {
		return "..."
	}
	return clean
}

// refreshViewport rebuilds the transcript and scrolls to the bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders the full conversation.
func (m *Model) renderTranscript() string {
	var sb strings.Builder

	history := m.conversation.GetHistory()
	for i, msg := range history {
		switch msg.Role {
		case model.RoleUser:
			sb.WriteString(m.theme.UserLabel.Render(msg.Role.DisplayName() + ":"))
			sb.WriteString(" ")
			sb.WriteString(m.theme.UserText.Render(msg.Content))

		case model.RoleAssistant:
			content := m.displayContent(msg)
			// The newest assistant message may still be animating.
			if m.state == StateTyping && i == len(history)-1 {
				content = string(m.typingTarget[:m.typingRevealed])
			}
			sb.WriteString(m.respBox.RenderWithLabel(msg.Role.DisplayName(), content))

		case model.RoleSystem:
			sb.WriteString(m.theme.SystemText.Render(msg.Content))
		}
		sb.WriteString("\n\n")
	}

	if m.lastErr != nil {
		sb.WriteString(m.theme.ErrorBox.Render(
			m.theme.ErrorTitle.Render("Error") + "\n" + m.lastErr.Error()))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
