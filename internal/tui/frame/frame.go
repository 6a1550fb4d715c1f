// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package frame holds small rendering widgets shared by the TUI views.
// Widths are measured in terminal cells so wide (CJK) text lines up.
package frame

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors shared by the widgets.
var (
	colorAccent   = lipgloss.Color("60")
	colorButton   = lipgloss.Color("239")
	colorText     = lipgloss.Color("255")
	colorMuted    = lipgloss.Color("244")
	colorBoxFrame = lipgloss.Color("8")
)

// Footer builds a one-line footer from left and right tokens, aligning the
// right token to the right edge of a line with the specified width.
// It truncates the left side if space is insufficient.
func Footer(left, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	rl := lipgloss.Width(right)
	ll := lipgloss.Width(left)
	if ll+rl+1 <= width {
		return left + strings.Repeat(" ", width-ll-rl) + right
	}
	maxLeft := width - rl
	if maxLeft <= 0 {
		return trimToWidth(right, width)
	}
	return trimToWidth(left, maxLeft) + right
}

// trimToWidth cuts s to at most w cells.
func trimToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > w {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String()
}

func buttonStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorButton).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorButton).
		Padding(0, 3)
	if focused {
		s = s.Background(colorAccent).BorderForeground(colorAccent)
	}
	return s
}

func headerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorAccent).
		Bold(true).
		Width(width)
}
