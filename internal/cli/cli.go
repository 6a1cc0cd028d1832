// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command dispatch and argument parsing for the novamind binary.
//
// Commands:
//   (none), tui   Launch the full-screen TUI
//   chat          Readline chat REPL (for terminals without alt-screen support)
//   ask           Send a single question and print the answer
//   version       Print version information
//   help          Print usage

package cli

import (
	"fmt"
	"os"
	"strings"
)

// =============================================================================
// VERSION
// =============================================================================

// Version information (set at build time via -ldflags).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies which top-level command was requested.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdVersion
	CmdHelp
)

// Args holds parsed command line arguments.
type Args struct {
	// Global flags
	Model    string // --model/-m: override the configured model
	Theme    string // --theme: override the configured theme
	NoMemory bool   // --no-memory: disable session persistence
	Quiet    bool   // --quiet/-q: suppress decoration, print only the answer
	Verbose  bool   // --verbose/-v

	// Command-specific
	Query string // the question, for ask

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `novamind - terminal chat client for OpenRouter models

Usage:
  novamind              Launch the full-screen TUI
  novamind chat         Start a readline chat session
  novamind ask "..."    Ask a single question and print the answer
  novamind version      Show version information
  novamind help         Show this help

Flags:
  -m, --model NAME   Use a specific model (overrides config)
      --theme NAME   Use a specific theme (overrides config)
      --no-memory    Disable conversation persistence
  -q, --quiet        Minimal output (ask: answer only)
  -v, --verbose      Verbose output

Environment:
  NOVAMIND_API_KEY    API key (or NOVAMIND_API_KEYS, comma separated)
  NOVAMIND_MODEL      Model override
  NOVAMIND_THEME      Theme override
  NOVAMIND_CONFIG     Path to the config file (default ~/.novamind/config.toml)

Examples:
  novamind
  novamind ask "What is a goroutine?"
  echo "explain this error" | novamind ask
  novamind chat --theme matrix
`

// Parse reads os.Args and returns the requested command and its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(raw []string) (Command, Args) {
	remaining, args := parseGlobalFlags(raw)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "chat":
		return CmdChat, args

	case "ask":
		// Everything left over is the question.
		args.Query = strings.TrimSpace(strings.Join(remaining, " "))
		return CmdAsk, args

	case "version", "--version", "-V":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args

	default:
		// Unknown word: treat the whole line as an ask question. This makes
		// `novamind "what is X"` do the obvious thing.
		args.Query = strings.TrimSpace(strings.Join(append([]string{cmd}, remaining...), " "))
		return CmdAsk, args
	}
}

// parseGlobalFlags extracts flags that apply to every command and returns
// the remaining positional arguments.
func parseGlobalFlags(raw []string) ([]string, Args) {
	var args Args
	remaining := make([]string, 0, len(raw))

	i := 0
	for i < len(raw) {
		arg := raw[i]
		switch arg {
		case "--model", "-m":
			if i+1 < len(raw) {
				args.Model = raw[i+1]
				i += 2
				continue
			}
		case "--theme":
			if i+1 < len(raw) {
				args.Theme = raw[i+1]
				i += 2
				continue
			}
		case "--no-memory":
			args.NoMemory = true
			i++
			continue
		case "--quiet", "-q":
			args.Quiet = true
			i++
			continue
		case "--verbose", "-v":
			args.Verbose = true
			i++
			continue
		}

		if strings.HasPrefix(arg, "--model=") {
			args.Model = strings.TrimPrefix(arg, "--model=")
			i++
			continue
		}
		if strings.HasPrefix(arg, "--theme=") {
			args.Theme = strings.TrimPrefix(arg, "--theme=")
			i++
			continue
		}

		remaining = append(remaining, arg)
		i++
	}

	return remaining, args
}

// =============================================================================
// TRIVIAL HANDLERS
// =============================================================================

// HandleVersion prints version information.
func HandleVersion(args Args) {
	fmt.Printf("novamind %s\n", Version)
	if args.Verbose {
		fmt.Printf("  commit: %s\n", GitCommit)
		fmt.Printf("  built:  %s\n", BuildDate)
	}
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(usageText)
}
