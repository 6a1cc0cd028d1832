// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Readline chat REPL for the novamind CLI.
//
// This is the plain-terminal counterpart of the full-screen TUI: a liner
// based loop with persistent input history, slash commands, and the same
// sanitization pipeline and boxed response layout the TUI uses.
//
// Command: chat
//
// Examples:
//   novamind chat
//   novamind chat --theme matrix
//   novamind chat --no-memory

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/novamind-tui/internal/config"
	"github.com/jeranaias/novamind-tui/internal/engine"
	"github.com/jeranaias/novamind-tui/internal/memory"
	"github.com/jeranaias/novamind-tui/internal/model"
	"github.com/jeranaias/novamind-tui/internal/textproc"
	"github.com/jeranaias/novamind-tui/internal/ui/components"
	"github.com/jeranaias/novamind-tui/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// historyFileName is the liner history file under the config dir.
	// liner itself caps history at 1000 entries.
	historyFileName = "chat_history"

	// chatRequestTimeout bounds one completion round trip.
	chatRequestTimeout = 2 * time.Minute
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	summaryHeaderStyle = lipgloss.NewStyle().
				Foreground(styles.TextSecondary).
				Bold(true)
)

// =============================================================================
// LINE EDITOR
// =============================================================================

// ChatCLI wraps liner with history persistence.
type ChatCLI struct {
	line        *liner.State
	historyPath string
}

// NewChatCLI creates the line editor and loads saved input history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &ChatCLI{line: line}
	if dir, err := config.ConfigDir(); err == nil {
		c.historyPath = filepath.Join(dir, historyFileName)
		c.loadHistory()
	}
	return c
}

// loadHistory reads prior session input from disk.
func (c *ChatCLI) loadHistory() {
	f, err := os.Open(c.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.ReadHistory(f)
}

// saveHistory writes input history back to disk. History can contain
// whatever the user typed, so the file is user-only.
func (c *ChatCLI) saveHistory() {
	if c.historyPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.historyPath), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// ReadInput prompts for one line and records it in history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (c *ChatCLI) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// chatSession holds everything one REPL run needs.
type chatSession struct {
	cfg      *config.Config
	theme    *styles.Theme
	sanitize textproc.Config
	client   *engine.Client
	conv     *model.Conversation
	respBox  *components.ResponseBox

	// nil when memory is disabled
	store   *memory.Store
	session *memory.Session

	startedAt time.Time
	turns     int
}

// HandleChat runs the readline chat REPL.
func HandleChat(args Args) error {
	if err := requireTTY("chat"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyArgOverrides(cfg, args)

	client := engine.NewClient(cfg.API.Keys).
		WithBaseURL(cfg.API.BaseURL).
		WithModel(cfg.API.Model).
		WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)

	if !client.IsConfigured() {
		fmt.Println(warningStyle.Render("No API key configured."))
		fmt.Println(infoStyle.Render("Set NOVAMIND_API_KEY or add keys to ~/.novamind/config.toml"))
		return engine.ErrNotConfigured
	}

	theme := styles.NewTheme(cfg.UI.Theme)
	sess := &chatSession{
		cfg:       cfg,
		theme:     theme,
		sanitize:  cfg.TextprocConfig(),
		client:    client,
		conv:      model.NewConversation(),
		respBox:   components.NewResponseBox(theme, cfg.UI.BoxWidth, GetTerminalWidth()),
		startedAt: time.Now(),
	}

	if cfg.Memory.Enabled && !args.NoMemory {
		sess.openStore()
	}
	defer sess.closeStore()

	editor := NewChatCLI()
	defer editor.Close()

	sess.printWelcome()

	prompt := promptStyle.Render("you> ")
	for {
		input, err := editor.ReadInput(prompt)
		if err != nil {
			// liner.ErrPromptAborted on ctrl+c, io.EOF on ctrl+d
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			keepGoing := sess.handleSlashCommand(input)
			if !keepGoing {
				break
			}
			continue
		}

		sess.runTurn(input)
	}

	sess.printExitSummary()
	return nil
}

// applyArgOverrides layers command line flags over the loaded config.
func applyArgOverrides(cfg *config.Config, args Args) {
	if args.Model != "" {
		cfg.API.Model = args.Model
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
}

// requireTTY rejects running the REPL with piped stdin.
func requireTTY(operation string) error {
	if !IsTTY() {
		return fmt.Errorf("stdin is not a terminal; cannot %s interactively", operation)
	}
	return nil
}

// openStore opens the persistence layer; failures disable memory rather
// than aborting the session.
func (s *chatSession) openStore() {
	path, err := s.cfg.DatabasePath()
	if err != nil {
		return
	}
	store, err := memory.Open(path)
	if err != nil {
		fmt.Println(warningStyle.Render("memory disabled: " + err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess, err := store.BeginSession(ctx, "")
	if err != nil {
		store.Close()
		return
	}
	s.store = store
	s.session = sess
}

func (s *chatSession) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
}

// persist appends a message to the session transcript, when memory is on.
func (s *chatSession) persist(msg *model.Message) {
	if s.store == nil || s.session == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if msg.TokenCount == 0 {
		msg.TokenCount = msg.EstimateTokens()
	}
	_ = s.store.AppendMessage(ctx, s.session.ID, msg)
}

// =============================================================================
// CONVERSATION TURN
// =============================================================================

// runTurn sends one user message and prints the response.
func (s *chatSession) runTurn(input string) {
	userMsg := s.conv.AddUserMessage(input)
	s.persist(userMsg)

	history := s.conv.GetHistory()
	msgs := make([]engine.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.IsEmpty() {
			continue
		}
		msgs = append(msgs, engine.ChatMessage{Role: string(m.Role), Content: m.Content})
	}

	fmt.Println(infoStyle.Render("thinking..."))

	ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Chat(ctx, msgs)
	if err != nil {
		fmt.Println(warningStyle.Render("error: " + err.Error()))
		return
	}

	reply := model.NewMessage(model.RoleAssistant, resp.GetContent())
	reply.TokenCount = resp.Usage.CompletionTokens
	reply.TotalDuration = time.Since(start)
	s.conv.AddMessage(reply)
	s.persist(reply)
	s.turns++

	s.printResponse(reply)
}

// printResponse sanitizes the completion and renders it. Responses with
// code fences get syntax highlighting instead of the box, since boxes and
// multi-line highlighted code do not compose well at narrow widths.
func (s *chatSession) printResponse(reply *model.Message) {
	clean := s.sanitize.Sanitize(reply.Content)
	if clean == "" {
		clean = "..."
	}

	fmt.Println()
	if strings.Contains(clean, "```") {
		fmt.Println(components.HighlightFences(clean, s.theme))
	} else {
		fmt.Println(s.respBox.RenderWithLabel(model.RoleAssistant.DisplayName(), clean))
	}
	fmt.Println()
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand dispatches a slash command. Returns false when the
// session should end.
func (s *chatSession) handleSlashCommand(input string) bool {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help":
		s.printHelp()

	case "/clear":
		s.conv.Clear()
		fmt.Println(infoStyle.Render("conversation cleared"))

	case "/theme":
		s.cmdTheme(args)

	case "/stats":
		s.printStats()

	case "/history":
		s.printHistory()

	case "/remember":
		s.cmdRemember(args)

	case "/recall":
		s.cmdRecall(args)

	case "/facts":
		s.cmdFacts()

	case "/quit", "/exit":
		return false

	default:
		fmt.Println(warningStyle.Render(fmt.Sprintf("unknown command %s (try /help)", cmd)))
	}
	return true
}

func (s *chatSession) cmdTheme(args []string) {
	if len(args) == 0 {
		fmt.Println(infoStyle.Render("themes: " + strings.Join(styles.PaletteNames(), ", ")))
		return
	}
	if !s.theme.SwitchPalette(args[0]) {
		fmt.Println(warningStyle.Render(fmt.Sprintf("unknown theme %q", args[0])))
		return
	}
	fmt.Println(infoStyle.Render("theme: " + s.theme.Palette.Name))
}

func (s *chatSession) cmdRemember(args []string) {
	if s.store == nil {
		fmt.Println(warningStyle.Render("memory is disabled"))
		return
	}
	if len(args) < 2 {
		fmt.Println(infoStyle.Render("usage: /remember <key> <value>"))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.RememberFact(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		fmt.Println(warningStyle.Render("could not save fact: " + err.Error()))
		return
	}
	fmt.Println(infoStyle.Render("remembered " + strings.ToLower(args[0])))
}

func (s *chatSession) cmdRecall(args []string) {
	if s.store == nil {
		fmt.Println(warningStyle.Render("memory is disabled"))
		return
	}
	if len(args) != 1 {
		fmt.Println(infoStyle.Render("usage: /recall <key>"))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fact, err := s.store.RecallFact(ctx, args[0])
	if errors.Is(err, memory.ErrFactNotFound) {
		fmt.Println(infoStyle.Render(fmt.Sprintf("nothing remembered for %q", args[0])))
		return
	}
	if err != nil {
		fmt.Println(warningStyle.Render("could not recall fact: " + err.Error()))
		return
	}
	fmt.Printf("%s: %s\n", commandStyle.Render(fact.Key), fact.Value)
}

func (s *chatSession) cmdFacts() {
	if s.store == nil {
		fmt.Println(warningStyle.Render("memory is disabled"))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	facts, err := s.store.ListFacts(ctx)
	if err != nil {
		fmt.Println(warningStyle.Render("could not list facts: " + err.Error()))
		return
	}
	if len(facts) == 0 {
		fmt.Println(infoStyle.Render("no facts remembered yet"))
		return
	}
	for _, f := range facts {
		fmt.Printf("  %s: %s\n", commandStyle.Render(f.Key), f.Value)
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

func (s *chatSession) printWelcome() {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("NovaMind chat") + infoStyle.Render(" · "+s.client.Model()))
	fmt.Println(infoStyle.Render("Type a message, /help for commands, /quit to exit."))
	if s.store == nil {
		fmt.Println(infoStyle.Render("Memory: off"))
	}
	fmt.Println()
}

func (s *chatSession) printHelp() {
	fmt.Println(summaryHeaderStyle.Render("Commands:"))
	help := [][2]string{
		{"/help", "show this help"},
		{"/clear", "clear the conversation"},
		{"/theme [name]", "switch theme (" + strings.Join(styles.PaletteNames(), ", ") + ")"},
		{"/stats", "show session statistics"},
		{"/history", "show this conversation"},
		{"/remember <k> <v>", "remember a fact"},
		{"/recall <k>", "recall a fact"},
		{"/facts", "list remembered facts"},
		{"/quit", "exit"},
	}
	for _, h := range help {
		fmt.Printf("  %-20s %s\n", commandStyle.Render(h[0]), h[1])
	}
}

func (s *chatSession) printStats() {
	fmt.Printf("%s %d\n", summaryHeaderStyle.Render("Messages this session:"), s.conv.MessageCount())
	fmt.Printf("%s ~%d tokens\n", summaryHeaderStyle.Render("Context estimate:"), s.conv.TokensUsed)
	fmt.Printf("%s %s\n", summaryHeaderStyle.Render("Model:"), s.client.Model())
	fmt.Printf("%s %s\n", summaryHeaderStyle.Render("API key:"), s.client.KeyFingerprint())

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if st, err := s.store.GetStats(ctx); err == nil {
			fmt.Printf("%s %d sessions, %d messages, %d facts\n",
				summaryHeaderStyle.Render("All time:"),
				st.SessionCount, st.MessageCount, st.FactCount)
		}
		if topic, err := s.store.FavoriteTopic(ctx); err == nil && topic != "" {
			fmt.Printf("%s %s\n", summaryHeaderStyle.Render("Favorite topic:"), topic)
		}
	}
}

func (s *chatSession) printHistory() {
	history := s.conv.GetHistory()
	if len(history) == 0 {
		fmt.Println(infoStyle.Render("no messages yet"))
		return
	}
	for _, msg := range history {
		content := msg.Content
		if msg.Role == model.RoleAssistant {
			content = s.sanitize.Sanitize(content)
		}
		fmt.Printf("%s %s\n", commandStyle.Render(msg.Role.DisplayName()+":"), content)
	}
}

func (s *chatSession) printExitSummary() {
	duration := time.Since(s.startedAt).Round(time.Second)
	fmt.Println()
	fmt.Printf("%s %d exchanges in %s\n",
		summaryHeaderStyle.Render("Session:"), s.turns, duration)
	fmt.Println(infoStyle.Render("Goodbye."))
}
