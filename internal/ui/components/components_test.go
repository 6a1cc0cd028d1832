// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the NovaMind TUI.
package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/novamind-tui/internal/render"
	"github.com/jeranaias/novamind-tui/internal/ui/styles"
)

func TestResponseBoxRender(t *testing.T) {
	theme := styles.NewTheme("cosmic")
	box := NewResponseBox(theme, 70, 120)

	out := box.Render("Hello world")
	lines := strings.Split(out, "\n")

	if len(lines) < 3 {
		t.Fatalf("box needs top border, content, bottom border; got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "╭") || !strings.Contains(lines[0], "╮") {
		t.Errorf("top border missing corners: %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "╰") || !strings.Contains(lines[len(lines)-1], "╯") {
		t.Errorf("bottom border missing corners: %q", lines[len(lines)-1])
	}
	if !strings.Contains(out, "Hello world") {
		t.Error("content missing from box")
	}
}

func TestResponseBoxAlignment(t *testing.T) {
	theme := styles.NewTheme("dark")
	box := NewResponseBox(theme, 70, 120)

	out := box.Render("short\na considerably longer line of text here")
	lines := strings.Split(out, "\n")

	// Every row of the box occupies the same number of visible columns.
	width := render.VisibleWidth(lines[0])
	for i, line := range lines {
		if w := render.VisibleWidth(line); w != width {
			t.Errorf("line %d width = %d, want %d (%q)", i, w, width, line)
		}
	}
}

func TestResponseBoxZeroWidthDefaults(t *testing.T) {
	theme := styles.NewTheme("cosmic")
	box := NewResponseBox(theme, 0, 120)
	if box.boxWidth != render.DefaultBoxWidth {
		t.Errorf("boxWidth = %d, want %d", box.boxWidth, render.DefaultBoxWidth)
	}
}

func TestResponseBoxRenderWithLabel(t *testing.T) {
	theme := styles.NewTheme("cosmic")
	box := NewResponseBox(theme, 70, 120)

	out := box.RenderWithLabel("NovaMind", "hi")
	if !strings.Contains(out, "NovaMind") {
		t.Error("label missing")
	}
	if !strings.Contains(out, "hi") {
		t.Error("content missing")
	}
}

func TestHighlightFencesPreservesProse(t *testing.T) {
	theme := styles.NewTheme("cosmic")
	text := "Before\n```go\nfmt.Println(\"hi\")\n```\nAfter"

	out := HighlightFences(text, theme)
	if !strings.Contains(out, "Before") || !strings.Contains(out, "After") {
		t.Error("prose around the fence must survive")
	}
	if strings.Contains(out, "```") {
		t.Error("fence markers should be consumed")
	}
	if !strings.Contains(out, "Println") {
		t.Error("code content missing from output")
	}
}

func TestHighlightFencesUnclosed(t *testing.T) {
	theme := styles.NewTheme("cosmic")
	out := HighlightFences("text\n```python\nprint(1)", theme)
	if !strings.Contains(out, "print(1)") {
		t.Error("unclosed fence content should still render")
	}
}

func TestHighlightFencesNoFences(t *testing.T) {
	theme := styles.NewTheme("cosmic")
	in := "plain text\nno code here"
	if out := HighlightFences(in, theme); out != in {
		t.Errorf("text without fences should pass through, got %q", out)
	}
}

func TestHighlightCodeFallback(t *testing.T) {
	// Unknown language still returns something containing the code.
	out := highlightCode("SELECT 1", "not-a-language")
	if !strings.Contains(out, "SELECT") && !strings.Contains(out, "1") {
		t.Errorf("highlighting lost the code: %q", out)
	}
}
