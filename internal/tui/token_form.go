// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
	"github.com/toeirei/tokenmaster/internal/tui/frame"
)

// expiryInput is the index of the expiry date input.
const expiryInput = 5

// tokenCreatedMsg carries the result of a create request.
type tokenCreatedMsg struct {
	err error
}

// tokenFormModel is the create form: one input per token field and a
// submit button.
type tokenFormModel struct {
	backend    backend
	focusIndex int               // len(inputs) is the submit button
	inputs     []textinput.Model // in model.FieldNames order
	busy       bool
	datePicker *frame.DatePicker // non-nil while picking the expiry date
}

func newTokenFormModel(b backend) tokenFormModel {
	m := tokenFormModel{
		backend: b,
		inputs:  make([]textinput.Model, model.FieldCount),
	}
	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 256
		t.Width = 40
		m.inputs[i] = t
	}
	m.inputs[expiryInput].Placeholder = frame.DateLayout
	m.relabel()
	m.setFocus(0)
	return m
}

// relabel refreshes translated prompts.
func (m *tokenFormModel) relabel() {
	width := 0
	for _, f := range model.FieldNames {
		width = max(width, lipgloss.Width(fieldLabel(f)))
	}
	for i, f := range model.FieldNames {
		label := fieldLabel(f)
		m.inputs[i].Prompt = label + strings.Repeat(" ", width-lipgloss.Width(label)) + "  "
	}
}

func (m *tokenFormModel) setFocus(idx int) tea.Cmd {
	m.focusIndex = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == idx {
			cmd = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = lipgloss.NewStyle()
		m.inputs[i].TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

// token builds a record from the current input values.
func (m tokenFormModel) token() model.Token {
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = m.inputs[i].Value()
	}
	t, _ := model.TokenFromFields(values)
	return t
}

func (m *tokenFormModel) reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(0)
}

func (m tokenFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tokenFormModel) submit() (tokenFormModel, tea.Cmd) {
	t := m.token()
	if err := core.ValidateToken(t); err != nil {
		return m, alertCmd(i18n.T("alert.missing_fields"))
	}
	m.busy = true
	b := m.backend
	return m, func() tea.Msg {
		ctx, cancel := b.context()
		defer cancel()
		return tokenCreatedMsg{err: core.CreateToken(ctx, b.api, t)}
	}
}

func (m tokenFormModel) Update(msg tea.Msg) (tokenFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tokenCreatedMsg:
		m.busy = false
		if msg.err != nil {
			logging.Errorf("add token: %v", msg.err)
			if errors.Is(msg.err, core.ErrMissingFields) {
				return m, alertCmd(i18n.T("alert.missing_fields"))
			}
			return m, alertCmd(i18n.T("alert.add_failed"))
		}
		m.reset()
		return m, tokensChanged

	case tea.KeyMsg:
		if m.datePicker != nil {
			action, value := m.datePicker.HandleKey(msg)
			switch action {
			case frame.PickerChosen:
				m.inputs[expiryInput].SetValue(value)
				m.datePicker = nil
			case frame.PickerCancelled:
				m.datePicker = nil
			}
			return m, nil
		}
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, backToMenu
		case "ctrl+d":
			if m.focusIndex == expiryInput {
				m.datePicker = frame.NewDatePickerFrom(m.inputs[expiryInput].Value())
				m.datePicker.SetLabels(dateLabels())
			}
			return m, nil
		case "enter":
			if m.focusIndex == len(m.inputs) {
				return m.submit()
			}
			cmd := m.setFocus(m.focusIndex + 1)
			return m, cmd
		case "tab", "down":
			cmd := m.setFocus((m.focusIndex + 1) % (len(m.inputs) + 1))
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus((m.focusIndex + len(m.inputs)) % (len(m.inputs) + 1))
			return m, cmd
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m tokenFormModel) View() string {
	if m.datePicker != nil {
		return m.datePicker.Render()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("✨ " + i18n.T("add.title")))
	b.WriteString("\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString(renderButton(i18n.T("form.submit"), m.focusIndex == len(m.inputs)))
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(specialStyle.Render(i18n.T("form.busy")))
	} else {
		hint := i18n.T("form.footer")
		if m.focusIndex == expiryInput {
			hint += " • " + i18n.T("form.date_hint")
		}
		b.WriteString(helpStyle.Render(hint))
	}
	return b.String()
}

// dateLabels returns translated date picker strings.
func dateLabels() frame.DateLabels {
	return frame.DateLabels{
		Title:  i18n.T("picker.date_title"),
		Ok:     i18n.T("picker.ok"),
		Cancel: i18n.T("picker.cancel"),
		Help:   i18n.T("picker.date_help"),
	}
}

// pickerLabels returns translated file picker strings.
func pickerLabels() frame.PickerLabels {
	return frame.PickerLabels{
		Filename: i18n.T("picker.filename"),
		Ok:       i18n.T("picker.ok"),
		Cancel:   i18n.T("picker.cancel"),
		Selected: i18n.T("picker.selected"),
		Empty:    i18n.T("picker.empty"),
		Help:     i18n.T("picker.help"),
	}
}
