// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the NovaMind command line surface: argument
// parsing, the readline-based chat REPL, and the one-shot ask command.
//
// The full-screen TUI lives in internal/ui; this package covers everything
// that runs in plain terminal mode, including piped and non-TTY output.
package cli
