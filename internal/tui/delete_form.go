// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/tui/frame"
)

// tokenDeletedMsg carries the result of a delete request.
type tokenDeletedMsg struct {
	index int
	err   error
}

// deleteFormModel asks for a 1-based row number and deletes that token
// after confirmation.
type deleteFormModel struct {
	backend    backend
	input      textinput.Model
	onSubmit   bool // the submit button has focus
	confirm    *frame.Dialog
	pendingIdx int
	busy       bool
}

func newDeleteFormModel(b backend) deleteFormModel {
	in := textinput.New()
	in.Cursor.Style = focusedStyle
	in.CharLimit = 10
	in.Width = 10
	in.Placeholder = "1"
	m := deleteFormModel{backend: b, input: in}
	m.relabel()
	m.input.Focus()
	return m
}

func (m *deleteFormModel) relabel() {
	m.input.Prompt = i18n.T("delete.row") + ": "
}

// requestDelete validates the row number and opens the confirmation.
func (m deleteFormModel) requestDelete() (deleteFormModel, tea.Cmd) {
	idx, err := core.ParseRowNumber(m.input.Value())
	if err != nil {
		return m, alertCmd(i18n.T("alert.invalid_row"))
	}
	m.pendingIdx = idx
	m.confirm = frame.NewDialog(
		i18n.T("dialog.confirm_title"),
		i18n.T("delete.confirm", idx+1),
		i18n.T("dialog.yes"),
		i18n.T("dialog.no"),
	)
	// Default to "No" for destructive actions.
	m.confirm.FocusRight()
	return m, nil
}

func (m deleteFormModel) Update(msg tea.Msg) (deleteFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tokenDeletedMsg:
		m.busy = false
		if msg.err != nil {
			logging.Errorf("delete token: %v", msg.err)
			return m, alertCmd(i18n.T("alert.delete_failed"))
		}
		m.input.Reset()
		return m, tokensChanged

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if m.confirm != nil {
			switch msg.String() {
			case "left", "right", "tab", "shift+tab", "h", "l":
				m.confirm.Toggle()
			case "y":
				m.confirm.FocusLeft()
				return m.runDelete()
			case "n", "esc":
				m.confirm = nil
			case "enter":
				if m.confirm.IsFocusedRight() {
					m.confirm = nil
					return m, nil
				}
				return m.runDelete()
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, backToMenu
		case "tab", "shift+tab", "up", "down":
			m.onSubmit = !m.onSubmit
			if m.onSubmit {
				m.input.Blur()
				return m, nil
			}
			cmd := m.input.Focus()
			return m, cmd
		case "enter":
			return m.requestDelete()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m deleteFormModel) runDelete() (deleteFormModel, tea.Cmd) {
	m.confirm = nil
	m.busy = true
	b := m.backend
	idx := m.pendingIdx
	return m, func() tea.Msg {
		ctx, cancel := b.context()
		defer cancel()
		return tokenDeletedMsg{index: idx, err: core.DeleteIndex(ctx, b.api, idx)}
	}
}

func (m deleteFormModel) View() string {
	if m.confirm != nil {
		return m.confirm.Render()
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("🗑️ " + i18n.T("delete.title")))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(renderButton(i18n.T("delete.submit"), m.onSubmit))
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(specialStyle.Render(i18n.T("form.busy")))
	} else {
		b.WriteString(helpStyle.Render(i18n.T("form.footer")))
	}
	return b.String()
}
