// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DateLayout is the format produced by DatePicker.Value.
const DateLayout = "2006-01-02"

// Date picker focus targets.
const (
	dateFocusYear = iota
	dateFocusMonth
	dateFocusDay
	dateFocusOk
	dateFocusCancel
	dateFocusCount
)

// DateLabels holds the translatable strings rendered by a DatePicker.
type DateLabels struct {
	Title  string
	Ok     string
	Cancel string
	Help   string
}

// DefaultDateLabels are used when no labels are supplied.
var DefaultDateLabels = DateLabels{
	Title:  "Select date",
	Ok:     "OK",
	Cancel: "Cancel",
	Help:   "←/→ field | ↑/↓ change | enter confirm | esc cancel",
}

// DatePicker is a small year/month/day selector.
type DatePicker struct {
	selectedDate time.Time
	Focused      int
	Width        int
	labels       DateLabels
}

// NewDatePicker creates a picker starting at date, or today when date is zero.
func NewDatePicker(date time.Time) *DatePicker {
	if date.IsZero() {
		date = time.Now()
	}
	return &DatePicker{
		selectedDate: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local),
		Width:        50,
		labels:       DefaultDateLabels,
	}
}

// NewDatePickerFrom parses s with DateLayout and falls back to today.
func NewDatePickerFrom(s string) *DatePicker {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		t = time.Time{}
	}
	return NewDatePicker(t)
}

// SetLabels replaces the rendered strings.
func (dp *DatePicker) SetLabels(l DateLabels) {
	dp.labels = l
}

// GetDate returns the currently selected date.
func (dp *DatePicker) GetDate() time.Time {
	return dp.selectedDate
}

// Value returns the selected date formatted with DateLayout.
func (dp *DatePicker) Value() string {
	return dp.selectedDate.Format(DateLayout)
}

// IncrementField increases the currently focused field.
func (dp *DatePicker) IncrementField() {
	dp.shift(1)
}

// DecrementField decreases the currently focused field.
func (dp *DatePicker) DecrementField() {
	dp.shift(-1)
}

func (dp *DatePicker) shift(n int) {
	switch dp.Focused {
	case dateFocusYear:
		dp.selectedDate = dp.selectedDate.AddDate(n, 0, 0)
	case dateFocusMonth:
		dp.selectedDate = dp.selectedDate.AddDate(0, n, 0)
	case dateFocusDay:
		dp.selectedDate = dp.selectedDate.AddDate(0, 0, n)
	}
}

// FocusNext moves focus to the next field.
func (dp *DatePicker) FocusNext() {
	dp.Focused = (dp.Focused + 1) % dateFocusCount
}

// FocusPrev moves focus to the previous field.
func (dp *DatePicker) FocusPrev() {
	dp.Focused = (dp.Focused - 1 + dateFocusCount) % dateFocusCount
}

// IsFocusedOk reports whether the OK button has focus.
func (dp *DatePicker) IsFocusedOk() bool {
	return dp.Focused == dateFocusOk
}

// IsFocusedCancel reports whether the Cancel button has focus.
func (dp *DatePicker) IsFocusedCancel() bool {
	return dp.Focused == dateFocusCancel
}

// HandleKey applies a key press. On PickerChosen the returned string is the
// formatted date.
func (dp *DatePicker) HandleKey(msg tea.KeyMsg) (PickerAction, string) {
	switch msg.String() {
	case "esc":
		return PickerCancelled, ""
	case "tab", "right", "l":
		dp.FocusNext()
	case "shift+tab", "left", "h":
		dp.FocusPrev()
	case "up", "k", "+":
		dp.IncrementField()
	case "down", "j", "-":
		dp.DecrementField()
	case "enter":
		if dp.IsFocusedCancel() {
			return PickerCancelled, ""
		}
		return PickerChosen, dp.Value()
	}
	return PickerNone, ""
}

// Render produces the date picker output.
func (dp *DatePicker) Render() string {
	field := func(idx int, text string) string {
		s := lipgloss.NewStyle().Padding(0, 1).Foreground(colorText)
		if dp.Focused == idx {
			s = s.Background(colorAccent).Bold(true)
		}
		return s.Render(text)
	}

	d := dp.selectedDate
	fields := lipgloss.JoinHorizontal(lipgloss.Center,
		field(dateFocusYear, fmt.Sprintf("%04d", d.Year())),
		"-",
		field(dateFocusMonth, fmt.Sprintf("%02d", int(d.Month()))),
		"-",
		field(dateFocusDay, fmt.Sprintf("%02d", d.Day())),
		"  ",
		lipgloss.NewStyle().Foreground(colorMuted).Render(d.Weekday().String()[:3]),
	)

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		buttonStyle(dp.IsFocusedOk()).Render(dp.labels.Ok),
		"  ",
		buttonStyle(dp.IsFocusedCancel()).Render(dp.labels.Cancel),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle(dp.Width-2).Render(" 📅 "+dp.labels.Title),
		lipgloss.NewStyle().Padding(1, 2).Render(fields),
		lipgloss.NewStyle().Padding(0, 2).Render(buttons),
		lipgloss.NewStyle().Foreground(colorMuted).Padding(1, 2, 0, 2).Render(dp.labels.Help),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBoxFrame).
		Width(dp.Width).
		Render(body)
}
