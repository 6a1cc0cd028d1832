// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for NovaMind.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/novamind-tui/internal/memory"
	"github.com/jeranaias/novamind-tui/internal/ui/styles"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// isCommand reports whether the input line is a slash command.
func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// handleCommand dispatches a slash command.
func (m Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimSpace(text))
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help":
		return m.cmdHelp()
	case "/clear":
		return m.cmdClear()
	case "/theme":
		return m.cmdTheme(args)
	case "/stats":
		return m.cmdStats()
	case "/remember":
		return m.cmdRemember(args)
	case "/recall":
		return m.cmdRecall(args)
	case "/facts":
		return m.cmdFacts()
	case "/quit", "/exit":
		return m, tea.Quit
	default:
		return m.setStatus(fmt.Sprintf("unknown command %s (try /help)", cmd))
	}
}

// setStatus shows a transient status line.
func (m Model) setStatus(s string) (tea.Model, tea.Cmd) {
	m.statusMsg = s
	return m, expireStatus()
}

func (m Model) cmdHelp() (tea.Model, tea.Cmd) {
	help := strings.Join([]string{
		"Commands:",
		"  /help              show this help",
		"  /clear             clear the conversation",
		"  /theme [name]      switch theme (" + strings.Join(styles.PaletteNames(), ", ") + ")",
		"  /stats             show session statistics",
		"  /remember <k> <v>  remember a fact",
		"  /recall <k>        recall a fact",
		"  /facts             list remembered facts",
		"  /quit              exit",
	}, "\n")

	m.conversation.AddSystemMessage(help)
	m.refreshViewport()
	return m, nil
}

func (m Model) cmdClear() (tea.Model, tea.Cmd) {
	m.conversation.Clear()
	m.refreshViewport()
	return m.setStatus("conversation cleared")
}

func (m Model) cmdTheme(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.setStatus("themes: " + strings.Join(styles.PaletteNames(), ", "))
	}
	if !m.theme.SwitchPalette(args[0]) {
		return m.setStatus(fmt.Sprintf("unknown theme %q", args[0]))
	}
	m.refreshViewport()
	return m.setStatus("theme: " + m.theme.Palette.Name)
}

func (m Model) cmdStats() (tea.Model, tea.Cmd) {
	lines := []string{
		fmt.Sprintf("Messages this session: %d", m.conversation.MessageCount()),
		fmt.Sprintf("Context estimate: ~%d tokens", m.conversation.TokensUsed),
		fmt.Sprintf("Model: %s", m.client.Model()),
	}

	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if st, err := m.store.GetStats(ctx); err == nil {
			lines = append(lines,
				fmt.Sprintf("All time: %d sessions, %d messages, %d facts",
					st.SessionCount, st.MessageCount, st.FactCount))
		}
		if topic, err := m.store.FavoriteTopic(ctx); err == nil && topic != "" {
			lines = append(lines, "Favorite topic: "+topic)
		}
	}

	m.conversation.AddSystemMessage(strings.Join(lines, "\n"))
	m.refreshViewport()
	return m, nil
}

func (m Model) cmdRemember(args []string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m.setStatus("memory is disabled")
	}
	if len(args) < 2 {
		return m.setStatus("usage: /remember <key> <value>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.RememberFact(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return m.setStatus("could not save fact: " + err.Error())
	}
	return m.setStatus("remembered " + strings.ToLower(args[0]))
}

func (m Model) cmdRecall(args []string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m.setStatus("memory is disabled")
	}
	if len(args) != 1 {
		return m.setStatus("usage: /recall <key>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fact, err := m.store.RecallFact(ctx, args[0])
	if errors.Is(err, memory.ErrFactNotFound) {
		return m.setStatus(fmt.Sprintf("nothing remembered for %q", args[0]))
	}
	if err != nil {
		return m.setStatus("could not recall fact: " + err.Error())
	}

	m.conversation.AddSystemMessage(fmt.Sprintf("%s: %s", fact.Key, fact.Value))
	m.refreshViewport()
	return m, nil
}

func (m Model) cmdFacts() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m.setStatus("memory is disabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	facts, err := m.store.ListFacts(ctx)
	if err != nil {
		return m.setStatus("could not list facts: " + err.Error())
	}
	if len(facts) == 0 {
		return m.setStatus("no facts remembered yet")
	}

	var sb strings.Builder
	sb.WriteString("Remembered facts:\n")
	for _, f := range facts {
		fmt.Fprintf(&sb, "  %s: %s\n", f.Key, f.Value)
	}
	m.conversation.AddSystemMessage(strings.TrimRight(sb.String(), "\n"))
	m.refreshViewport()
	return m, nil
}
