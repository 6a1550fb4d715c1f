// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListView renders a vertical list of items with a selection cursor. It is
// used for the main menu and the language menu.
type ListView struct {
	Items    []string
	Selected int
	Width    int
	Height   int

	SelectedStyle lipgloss.Style
	ItemStyle     lipgloss.Style
}

// NewList creates a new ListView populated with items.
func NewList(items []string) *ListView {
	return &ListView{
		Items:         items,
		SelectedStyle: lipgloss.NewStyle(),
		ItemStyle:     lipgloss.NewStyle(),
	}
}

// SetSize sets the rendering width and height for the list.
func (l *ListView) SetSize(w, h int) {
	l.Width = w
	l.Height = h
}

// MoveUp moves the selection up by one, wrapping to the last item.
func (l *ListView) MoveUp() {
	if len(l.Items) == 0 {
		return
	}
	l.Selected--
	if l.Selected < 0 {
		l.Selected = len(l.Items) - 1
	}
}

// MoveDown moves the selection down by one, wrapping to the first item.
func (l *ListView) MoveDown() {
	if len(l.Items) == 0 {
		return
	}
	l.Selected = (l.Selected + 1) % len(l.Items)
}

// Current returns the selected item, or "" for an empty list.
func (l *ListView) Current() string {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return ""
	}
	return l.Items[l.Selected]
}

// Render returns the list constrained by width and height. The window
// scrolls so the selected item stays visible.
func (l *ListView) Render() string {
	start, end := 0, len(l.Items)
	if l.Height > 0 && end > l.Height {
		if l.Selected >= l.Height {
			start = l.Selected - l.Height + 1
		}
		end = start + l.Height
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		prefix := "  "
		style := l.ItemStyle
		if i == l.Selected {
			prefix = "▸ "
			style = l.SelectedStyle
		}
		line := prefix + l.Items[i]
		if l.Width > 0 {
			if lipgloss.Width(line) > l.Width {
				line = trimToWidth(line, l.Width-1) + "…"
			}
			line += strings.Repeat(" ", max(0, l.Width-lipgloss.Width(line)))
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
