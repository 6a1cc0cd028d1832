// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the NovaMind TUI.
//
// The central component is the response box: sanitized assistant text laid
// out by internal/render and framed with themed border glyphs. Fenced code
// blocks inside responses get chroma syntax highlighting.
package components
