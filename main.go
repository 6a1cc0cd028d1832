// NovaMind - a terminal chat client for OpenRouter models.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/novamind-tui/internal/cli"
	"github.com/jeranaias/novamind-tui/internal/config"
	"github.com/jeranaias/novamind-tui/internal/engine"
	"github.com/jeranaias/novamind-tui/internal/memory"
	"github.com/jeranaias/novamind-tui/internal/ui/chat"
	"github.com/jeranaias/novamind-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

// setupLogging sends the stdlib logger to a file under the config dir.
// The TUI owns the terminal, so stray log lines on stderr would tear it.
func setupLogging() {
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "novamind.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

func main() {
	setupLogging()
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		if err := runTUI(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdChat:
		if err := cli.HandleChat(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdAsk:
		if err := cli.HandleAsk(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

// runTUI launches the full-screen chat interface.
func runTUI(args cli.Args) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if args.Model != "" {
		cfg.API.Model = args.Model
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}

	client := engine.NewClient(cfg.API.Keys).
		WithBaseURL(cfg.API.BaseURL).
		WithModel(cfg.API.Model).
		WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)

	if !client.IsConfigured() {
		fmt.Fprintln(os.Stderr, "No API key configured.")
		fmt.Fprintln(os.Stderr, "Set NOVAMIND_API_KEY or add keys to ~/.novamind/config.toml")
		return engine.ErrNotConfigured
	}

	// Persistence is optional; the chat works without it.
	var store *memory.Store
	if cfg.Memory.Enabled && !args.NoMemory {
		if path, err := cfg.DatabasePath(); err == nil {
			if s, err := memory.Open(path); err == nil {
				store = s
				defer store.Close()
			} else if args.Verbose {
				fmt.Fprintf(os.Stderr, "memory disabled: %v\n", err)
			}
		}
	}

	theme := styles.NewTheme(cfg.UI.Theme)
	m := chat.New(cfg, theme, client, store)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Hot-reload config edits into the running UI.
	if path, err := config.Path(); err == nil {
		watcher, werr := config.NewWatcher(path, func(reloaded *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Cfg: reloaded})
		})
		if werr == nil {
			if werr = watcher.Watch(); werr == nil {
				defer watcher.Close()
			}
		}
	}

	_, err = p.Run()
	return err
}
