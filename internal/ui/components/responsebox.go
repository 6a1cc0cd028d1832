// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the NovaMind TUI.
package components

import (
	"strings"

	"github.com/jeranaias/novamind-tui/internal/render"
	"github.com/jeranaias/novamind-tui/internal/ui/styles"
)

// =============================================================================
// RESPONSE BOX
// =============================================================================

// Box border glyphs. The left prefix is "  │  " (5 columns) and the right
// suffix is " │" (2 columns), matching render's chrome accounting.
const (
	boxLeftPrefix  = "  │  "
	boxRightSuffix = " │"
)

// ResponseBox frames assistant text in a bordered box.
type ResponseBox struct {
	theme     *styles.Theme
	boxWidth  int
	termWidth int
}

// NewResponseBox creates a response box renderer.
func NewResponseBox(theme *styles.Theme, boxWidth, termWidth int) *ResponseBox {
	if boxWidth <= 0 {
		boxWidth = render.DefaultBoxWidth
	}
	return &ResponseBox{
		theme:     theme,
		boxWidth:  boxWidth,
		termWidth: termWidth,
	}
}

// SetTerminalWidth updates the terminal constraint for subsequent renders.
func (b *ResponseBox) SetTerminalWidth(width int) {
	b.termWidth = width
}

// Render lays out sanitized text and frames it. The input must already have
// gone through the sanitization pipeline; Render only reflows and decorates.
func (b *ResponseBox) Render(text string) string {
	lines, inner := render.Layout(text, b.boxWidth, b.termWidth)

	border := b.theme.ResponseBorder
	// Corner alignment: content rows are 2 spaces, border, 2 spaces of
	// padding, inner columns, 1 space, border. The rule spans the
	// padding + content region between the corners.
	horizontal := strings.Repeat("─", inner+3)

	var sb strings.Builder
	sb.WriteString("  " + border.Render("╭"+horizontal+"╮"))
	sb.WriteString("\n")

	for _, line := range lines {
		sb.WriteString(border.Render(boxLeftPrefix))
		sb.WriteString(line)
		sb.WriteString(border.Render(boxRightSuffix))
		sb.WriteString("\n")
	}

	sb.WriteString("  " + border.Render("╰"+horizontal+"╯"))
	return sb.String()
}

// RenderWithLabel renders the box with the speaker label above it.
func (b *ResponseBox) RenderWithLabel(label, text string) string {
	return b.theme.AssistantLabel.Render(label) + "\n" + b.Render(text)
}
