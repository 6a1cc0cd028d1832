// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the novamind CLI.
//
// Sends one question, sanitizes the completion, and prints it. On a TTY
// the answer is rendered as markdown via glamour; piped output stays plain
// so downstream tools see clean text.
//
// Command: ask [question]
//
// Examples:
//   novamind ask "What is the capital of France?"
//   novamind ask -m openrouter/auto "Explain this error"
//   echo "explain goroutines" | novamind ask
//   novamind ask -q "2+2" > answer.txt

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/novamind-tui/internal/config"
	"github.com/jeranaias/novamind-tui/internal/engine"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for TTY output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display. Returns the input
// unchanged when the renderer is unavailable or fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAsk sends a single question and prints the sanitized answer.
func HandleAsk(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyArgOverrides(cfg, args)

	question := args.Query

	// No question on the command line: accept piped stdin.
	if question == "" && !IsTTY() {
		reader := bufio.NewReader(os.Stdin)
		data, err := io.ReadAll(reader)
		if err == nil && len(data) > 0 {
			question = strings.TrimSpace(string(data))
			if !args.Quiet {
				fmt.Fprintf(os.Stderr, "%s read question from stdin (%d bytes)\n",
					infoStyle.Render("[+]"), len(data))
			}
		}
	}

	if question == "" {
		return fmt.Errorf("no question provided. Usage: novamind ask \"your question\"")
	}

	client := engine.NewClient(cfg.API.Keys).
		WithBaseURL(cfg.API.BaseURL).
		WithModel(cfg.API.Model).
		WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)

	if !client.IsConfigured() {
		return engine.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Chat(ctx, []engine.ChatMessage{engine.NewUserMessage(question)})
	if err != nil {
		return err
	}
	duration := time.Since(start)

	answer := cfg.TextprocConfig().Sanitize(resp.GetContent())
	if answer == "" {
		return engine.ErrEmptyResponse
	}

	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Print(answer)
	}
	fmt.Println()

	if !args.Quiet {
		printAskSummary(cfg.API.Model, resp.Usage.TotalTokens, duration)
	}
	return nil
}

// printAskSummary prints a one-line footer to stderr, leaving stdout as
// pure answer text.
func printAskSummary(model string, tokens int, duration time.Duration) {
	separator := strings.Repeat("─", 45)
	fmt.Fprintln(os.Stderr, infoStyle.Render(separator))
	fmt.Fprintf(os.Stderr, "%s %s | %s %d | %s %s\n",
		summaryHeaderStyle.Render("Model:"), model,
		summaryHeaderStyle.Render("Tokens:"), tokens,
		summaryHeaderStyle.Render("Time:"), duration.Round(time.Millisecond))
}
