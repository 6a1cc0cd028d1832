// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for NovaMind.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/novamind-tui/internal/config"
	"github.com/jeranaias/novamind-tui/internal/engine"
	"github.com/jeranaias/novamind-tui/internal/memory"
	"github.com/jeranaias/novamind-tui/internal/model"
	"github.com/jeranaias/novamind-tui/internal/textproc"
	"github.com/jeranaias/novamind-tui/internal/ui/components"
	"github.com/jeranaias/novamind-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Completion request in flight
	StateTyping               // Revealing the response
)

// typingRunesPerFrame is how many runes each animation frame reveals.
const typingRunesPerFrame = 3

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Configuration
	cfg      *config.Config
	sanitize textproc.Config

	// Conversation
	conversation *model.Conversation

	// Completion client
	client *engine.Client

	// Persistence; nil when memory is disabled
	store   *memory.Store
	session *memory.Session

	// Typing animation: the fully rendered response and how much is shown
	typingTarget   []rune
	typingRevealed int
	typingInterval time.Duration

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	respBox  *components.ResponseBox

	// Status
	statusMsg    string
	lastErr      error
	waitingSince time.Time
}

// New creates a new chat model.
func New(cfg *config.Config, theme *styles.Theme, client *engine.Client, store *memory.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message, or /help for commands..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	interval := time.Duration(cfg.UI.TypingIntervalMs) * time.Millisecond

	return Model{
		state:          StateReady,
		theme:          theme,
		cfg:            cfg,
		sanitize:       cfg.TextprocConfig(),
		conversation:   model.NewConversation(),
		client:         client,
		store:          store,
		typingInterval: interval,
		viewport:       vp,
		input:          ti,
		spinner:        sp,
		respBox:        components.NewResponseBox(theme, cfg.UI.BoxWidth, 0),
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, textinput.Blink)

	if m.store != nil {
		cmds = append(cmds, m.openSession())
	}
	return tea.Batch(cmds...)
}

// sessionMsg carries the opened persistence session.
type sessionMsg struct {
	session *memory.Session
	err     error
}

// openSession creates the backing session row off the update loop.
func (m Model) openSession() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sess, err := store.BeginSession(ctx, "")
		return sessionMsg{session: sess, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionMsg:
		if msg.err == nil {
			m.session = msg.session
		}
		return m, nil

	case ResponseMsg:
		return m.handleResponse(msg)

	case TypingTickMsg:
		return m.handleTypingTick()

	case StatusExpiredMsg:
		m.statusMsg = ""
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg.Cfg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize adjusts the layout for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.respBox.SetTerminalWidth(msg.Width)

	// Header (3), input (3), status (1).
	contentHeight := msg.Height - 7
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = contentHeight
	m.input.Width = msg.Width - 4

	m.refreshViewport()
	return m, nil
}

// handleConfigReload applies a hot-reloaded configuration. The engine
// client is left alone; key or model changes take effect on restart.
func (m Model) handleConfigReload(cfg *config.Config) (tea.Model, tea.Cmd) {
	m.cfg = cfg
	m.sanitize = cfg.TextprocConfig()
	m.typingInterval = time.Duration(cfg.UI.TypingIntervalMs) * time.Millisecond
	m.theme.SwitchPalette(cfg.UI.Theme)
	m.respBox = components.NewResponseBox(m.theme, cfg.UI.BoxWidth, m.width)

	m.refreshViewport()
	return m.setStatus("config reloaded")
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		return m.handleSubmit()

	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit dispatches the entered line.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if text == "" || m.state != StateReady {
		return m, nil
	}
	m.input.SetValue("")

	if isCommand(text) {
		return m.handleCommand(text)
	}

	userMsg := m.conversation.AddUserMessage(text)
	m.persist(userMsg)

	m.state = StateWaiting
	m.waitingSince = time.Now()
	m.lastErr = nil
	m.refreshViewport()

	return m, tea.Batch(
		m.spinner.Tick,
		requestCompletion(m.client, m.conversation.GetHistory()),
	)
}

// handleResponse receives the completion and starts the reveal.
func (m Model) handleResponse(msg ResponseMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state = StateReady
		m.lastErr = msg.Err
		m.refreshViewport()
		return m, nil
	}

	// The raw completion is stored; sanitization happens at display time.
	reply := model.NewMessage(model.RoleAssistant, msg.Content)
	reply.TokenCount = msg.TokenCount
	reply.TotalDuration = msg.Duration
	m.conversation.AddMessage(reply)
	m.persist(reply)

	if m.typingInterval <= 0 {
		m.state = StateReady
		m.refreshViewport()
		return m, nil
	}

	m.state = StateTyping
	m.typingTarget = []rune(m.displayContent(reply))
	m.typingRevealed = 0
	m.refreshViewport()
	return m, typingTick(m.typingInterval)
}

// handleTypingTick reveals the next chunk of the response.
func (m Model) handleTypingTick() (tea.Model, tea.Cmd) {
	if m.state != StateTyping {
		return m, nil
	}

	m.typingRevealed += typingRunesPerFrame
	if m.typingRevealed >= len(m.typingTarget) {
		m.typingRevealed = len(m.typingTarget)
		m.state = StateReady
		m.typingTarget = nil
		m.refreshViewport()
		return m, nil
	}

	m.refreshViewport()
	return m, typingTick(m.typingInterval)
}

// persist appends a message to the session transcript, when memory is on.
func (m *Model) persist(msg *model.Message) {
	if m.store == nil || m.session == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if msg.TokenCount == 0 {
		msg.TokenCount = msg.EstimateTokens()
	}
	// Persistence failures must not break the chat; the transcript simply
	// has a gap.
	_ = m.store.AppendMessage(ctx, m.session.ID, msg)
}
