// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for NovaMind.
package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/novamind-tui/internal/config"
	"github.com/jeranaias/novamind-tui/internal/engine"
	"github.com/jeranaias/novamind-tui/internal/model"
	"github.com/jeranaias/novamind-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.UI.TypingIntervalMs = 10
	theme := styles.NewTheme(cfg.UI.Theme)
	client := engine.NewClient([]string{"test-key"})
	return New(cfg, theme, client, nil)
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"  /clear", true},
		{"hello", false},
		{"what is /help?", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := isCommand(tc.input); got != tc.want {
			t.Errorf("isCommand(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestHandleResponseStartsTyping(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.handleResponse(ResponseMsg{
		Content:  "Assistant: Hello **there**!",
		Duration: time.Second,
	})
	got := updated.(Model)

	if got.state != StateTyping {
		t.Errorf("state = %v, want StateTyping", got.state)
	}
	if cmd == nil {
		t.Error("typing animation should schedule a tick")
	}

	// The raw completion is stored; display sanitizes it.
	last := got.conversation.GetLastAssistantMessage()
	if last == nil {
		t.Fatal("assistant message not added")
	}
	if last.Content != "Assistant: Hello **there**!" {
		t.Errorf("stored content = %q, want raw completion", last.Content)
	}
	if disp := got.displayContent(last); disp != "Hello **there**!" {
		t.Errorf("display content = %q, want role prefix stripped", disp)
	}
	if string(got.typingTarget) != "Hello **there**!" {
		t.Errorf("typing target = %q", string(got.typingTarget))
	}
}

func TestHandleResponseInstantWhenAnimationDisabled(t *testing.T) {
	m := newTestModel(t)
	m.typingInterval = 0

	updated, _ := m.handleResponse(ResponseMsg{Content: "hi"})
	got := updated.(Model)
	if got.state != StateReady {
		t.Errorf("state = %v, want StateReady", got.state)
	}
}

func TestHandleResponseError(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.handleResponse(ResponseMsg{Err: engine.ErrRateLimited})
	got := updated.(Model)

	if got.state != StateReady {
		t.Errorf("state = %v, want StateReady", got.state)
	}
	if got.lastErr == nil {
		t.Error("error should be recorded for display")
	}
	if got.conversation.MessageCount() != 0 {
		t.Error("failed completions must not add messages")
	}
}

func TestTypingTickCompletes(t *testing.T) {
	m := newTestModel(t)
	m.state = StateTyping
	m.typingTarget = []rune("abcd")
	m.typingRevealed = 0

	updated, cmd := m.handleTypingTick()
	got := updated.(Model)
	if got.typingRevealed != typingRunesPerFrame {
		t.Errorf("revealed = %d, want %d", got.typingRevealed, typingRunesPerFrame)
	}
	if cmd == nil {
		t.Error("animation in progress should schedule another tick")
	}

	updated, cmd = got.handleTypingTick()
	got = updated.(Model)
	if got.state != StateReady {
		t.Errorf("state = %v, want StateReady after final frame", got.state)
	}
	if cmd != nil {
		t.Error("finished animation should not schedule ticks")
	}
}

func TestCommandTheme(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/theme matrix")
	got := updated.(Model)
	if got.theme.Palette.Name != "Hacker Matrix" {
		t.Errorf("palette = %q, want Hacker Matrix", got.theme.Palette.Name)
	}

	updated, _ = got.handleCommand("/theme bogus")
	got = updated.(Model)
	if !strings.Contains(got.statusMsg, "unknown theme") {
		t.Errorf("status = %q, want unknown theme notice", got.statusMsg)
	}
}

func TestCommandClear(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hello")

	updated, _ := m.handleCommand("/clear")
	got := updated.(Model)
	if got.conversation.MessageCount() != 0 {
		t.Errorf("message count = %d, want 0", got.conversation.MessageCount())
	}
}

func TestCommandHelpAddsSystemMessage(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.handleCommand("/help")
	got := updated.(Model)

	last := got.conversation.GetLastMessage()
	if last == nil || last.Role != model.RoleSystem {
		t.Fatal("help should add a system message")
	}
	if !strings.Contains(last.Content, "/theme") {
		t.Error("help text should list commands")
	}
}

func TestCommandUnknown(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.handleCommand("/frobnicate")
	got := updated.(Model)
	if !strings.Contains(got.statusMsg, "unknown command") {
		t.Errorf("status = %q", got.statusMsg)
	}
}

func TestConfigReloadSwitchesThemeAndPipeline(t *testing.T) {
	m := newTestModel(t)

	cfg := config.Default()
	cfg.UI.Theme = "matrix"
	cfg.Pipeline.ForbiddenPhrases = []string{"classified"}

	updated, _ := m.handleConfigReload(cfg)
	got := updated.(Model)

	if got.theme.Palette.Name != "Hacker Matrix" {
		t.Errorf("palette = %q, want Hacker Matrix", got.theme.Palette.Name)
	}
	msg := model.NewMessage(model.RoleAssistant, "ok\nclassified: do not share\ndone")
	if disp := got.displayContent(msg); strings.Contains(disp, "classified") {
		t.Errorf("reloaded pipeline should drop forbidden lines, got %q", disp)
	}
}

func TestMemoryCommandsDisabledWithoutStore(t *testing.T) {
	m := newTestModel(t)

	for _, cmd := range []string{"/remember k v", "/recall k", "/facts"} {
		updated, _ := m.handleCommand(cmd)
		got := updated.(Model)
		if !strings.Contains(got.statusMsg, "memory is disabled") {
			t.Errorf("%s: status = %q, want memory disabled notice", cmd, got.statusMsg)
		}
	}
}
