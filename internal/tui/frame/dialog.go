// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"github.com/charmbracelet/lipgloss"
)

// Dialog is a modal box with a title, a message and either two buttons
// (confirm) or one (alert).
type Dialog struct {
	title       string
	message     string
	buttonLeft  string
	buttonRight string
	focused     bool // which button is focused (false = left, true = right)
	width       int
}

// NewDialog creates a confirmation dialog with two buttons. The left button
// is focused.
func NewDialog(title, message, buttonLeft, buttonRight string) *Dialog {
	return &Dialog{
		title:       title,
		message:     message,
		buttonLeft:  buttonLeft,
		buttonRight: buttonRight,
		width:       60,
	}
}

// NewAlert creates a dialog with a single acknowledge button.
func NewAlert(title, message, button string) *Dialog {
	return &Dialog{
		title:      title,
		message:    message,
		buttonLeft: button,
		width:      60,
	}
}

// IsAlert reports whether the dialog has only one button.
func (d *Dialog) IsAlert() bool {
	return d.buttonRight == ""
}

// Message returns the dialog body.
func (d *Dialog) Message() string {
	return d.message
}

// SetWidth sets the outer width.
func (d *Dialog) SetWidth(width int) {
	if width > 0 {
		d.width = width
	}
}

// FocusRight moves focus to the right button. Alerts ignore it.
func (d *Dialog) FocusRight() {
	if !d.IsAlert() {
		d.focused = true
	}
}

// FocusLeft moves focus to the left button.
func (d *Dialog) FocusLeft() {
	d.focused = false
}

// Toggle switches focus between the two buttons.
func (d *Dialog) Toggle() {
	if d.focused {
		d.FocusLeft()
	} else {
		d.FocusRight()
	}
}

// IsFocusedRight returns true if the right button is focused.
func (d *Dialog) IsFocusedRight() bool {
	return d.focused
}

// Render produces the dialog box output with auto-calculated height.
func (d *Dialog) Render() string {
	header := headerStyle(d.width).Render(" " + d.title)

	message := lipgloss.NewStyle().
		Width(d.width-4).
		Padding(1, 2, 0, 2).
		Render(d.message)

	dialog := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		message,
		d.renderButtonArea(),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBoxFrame).
		Width(d.width).
		Render(dialog)
}

// renderButtonArea produces the button row with styled buttons.
func (d *Dialog) renderButtonArea() string {
	var row string
	if d.IsAlert() {
		row = buttonStyle(true).Render(d.buttonLeft)
	} else {
		left := buttonStyle(!d.focused).Render(d.buttonLeft)
		right := buttonStyle(d.focused).Render(d.buttonRight)
		row = lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", right)
	}
	return lipgloss.NewStyle().Padding(1, 2, 1, 2).Render(row)
}
