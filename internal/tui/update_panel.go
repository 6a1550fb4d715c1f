// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
	"github.com/toeirei/tokenmaster/internal/tui/frame"
)

// Focus areas of the update panel.
const (
	updateFocusProject = iota
	updateFocusLoad
	updateFocusGrid
	updateFocusSubmit
	updateFocusCount
)

// projectLoadedMsg carries the tokens of one project.
type projectLoadedMsg struct {
	project string
	tokens  []model.Token
	err     error
}

// projectUpdatedMsg carries the result of the bulk update.
type projectUpdatedMsg struct {
	err error
}

// updatePanelModel loads the tokens of one project, lets the user edit
// fields locally and sends the whole list back in one request.
type updatePanelModel struct {
	backend backend
	focus   int
	project textinput.Model
	editor  textinput.Model
	editing bool

	loaded        bool
	loadedProject string
	tokens        []model.Token
	row           int // selected token
	col           int // index into core.EditableFields
	busy          bool

	pane *frame.Pane
}

func newUpdatePanelModel(b backend) updatePanelModel {
	project := textinput.New()
	project.Cursor.Style = focusedStyle
	project.CharLimit = 256
	project.Width = 40

	editor := textinput.New()
	editor.Cursor.Style = focusedStyle
	editor.CharLimit = 256
	editor.Width = 40

	m := updatePanelModel{
		backend: b,
		project: project,
		editor:  editor,
		pane:    frame.NewPane(),
	}
	m.relabel()
	m.setFocus(updateFocusProject)
	return m
}

func (m *updatePanelModel) relabel() {
	m.project.Prompt = i18n.T("update.project") + ": "
	m.pane.SetFooterTokens(i18n.T("update.footer"), "")
}

func (m *updatePanelModel) setFocus(f int) tea.Cmd {
	m.focus = f
	if f == updateFocusProject {
		m.project.PromptStyle = focusedStyle
		return m.project.Focus()
	}
	m.project.PromptStyle = formItemStyle
	m.project.Blur()
	return nil
}

// SetSize fits the token grid into the available area.
func (m *updatePanelModel) SetSize(width, height int) {
	m.pane.SetSize(width, max(height-8, 5))
}

func (m updatePanelModel) load() (updatePanelModel, tea.Cmd) {
	project := m.project.Value()
	m.busy = true
	b := m.backend
	return m, func() tea.Msg {
		ctx, cancel := b.context()
		defer cancel()
		tokens, err := core.LoadProject(ctx, b.api, project)
		return projectLoadedMsg{project: project, tokens: tokens, err: err}
	}
}

func (m updatePanelModel) submit() (updatePanelModel, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	m.busy = true
	b := m.backend
	project := m.loadedProject
	tokens := append([]model.Token(nil), m.tokens...)
	return m, func() tea.Msg {
		ctx, cancel := b.context()
		defer cancel()
		return projectUpdatedMsg{err: core.SubmitProject(ctx, b.api, project, tokens)}
	}
}

// startEdit opens the inline editor on the selected cell.
func (m *updatePanelModel) startEdit() tea.Cmd {
	if len(m.tokens) == 0 {
		return nil
	}
	v, _ := m.tokens[m.row].Get(core.EditableFields[m.col])
	m.editor.Prompt = fieldLabel(core.EditableFields[m.col]) + ": "
	m.editor.SetValue(v)
	m.editor.CursorEnd()
	m.editing = true
	return m.editor.Focus()
}

func (m *updatePanelModel) commitEdit() {
	if err := core.EditField(m.tokens, m.row, core.EditableFields[m.col], m.editor.Value()); err != nil {
		logging.Warnf("edit field: %v", err)
	}
	m.editing = false
	m.editor.Blur()
}

func (m updatePanelModel) Update(msg tea.Msg) (updatePanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case projectLoadedMsg:
		m.busy = false
		if msg.err != nil {
			logging.Errorf("load project: %v", msg.err)
			return m, alertCmd(i18n.T("alert.load_failed"))
		}
		m.loaded = true
		m.loadedProject = msg.project
		m.tokens = msg.tokens
		m.row, m.col = 0, 0
		if len(m.tokens) > 0 {
			m.setFocus(updateFocusGrid)
		}
		return m, nil

	case projectUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			logging.Errorf("update project: %v", msg.err)
			return m, alertCmd(i18n.T("alert.update_failed"))
		}
		return m, tokensChanged

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if m.editing {
			switch msg.String() {
			case "enter":
				m.commitEdit()
				return m, nil
			case "esc":
				m.editing = false
				m.editor.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc":
			return m, backToMenu
		case "tab":
			cmd := m.setFocus((m.focus + 1) % updateFocusCount)
			return m, cmd
		case "shift+tab":
			cmd := m.setFocus((m.focus + updateFocusCount - 1) % updateFocusCount)
			return m, cmd
		case "ctrl+s":
			return m.submit()
		}

		switch m.focus {
		case updateFocusProject:
			if msg.Type == tea.KeyEnter {
				return m.load()
			}
			var cmd tea.Cmd
			m.project, cmd = m.project.Update(msg)
			return m, cmd
		case updateFocusLoad:
			if msg.Type == tea.KeyEnter {
				return m.load()
			}
		case updateFocusGrid:
			switch msg.String() {
			case "up", "k":
				if m.row > 0 {
					m.row--
				}
			case "down", "j":
				if m.row < len(m.tokens)-1 {
					m.row++
				}
			case "left", "h":
				if m.col > 0 {
					m.col--
				}
			case "right", "l":
				if m.col < len(core.EditableFields)-1 {
					m.col++
				}
			case "enter", "e":
				cmd := m.startEdit()
				return m, cmd
			}
		case updateFocusSubmit:
			if msg.Type == tea.KeyEnter {
				return m.submit()
			}
		}
	}
	return m, nil
}

// gridLines renders the loaded tokens. It returns the lines and the line
// index of the selected cell.
func (m updatePanelModel) gridLines() ([]string, int) {
	var lines []string
	cursorLine := 0
	for i, t := range m.tokens {
		lines = append(lines, specialStyle.Render(i18n.T("update.row", i+1)))
		for j, f := range core.EditableFields {
			v, _ := t.Get(f)
			line := fmt.Sprintf("  %-14s %s", fieldLabel(f)+":", v)
			if i == m.row && j == m.col {
				cursorLine = len(lines)
				if m.focus == updateFocusGrid {
					line = selectedItemStyle.Render("▸" + line[1:])
				}
			}
			lines = append(lines, line)
		}
	}
	return lines, cursorLine
}

func (m updatePanelModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("✏️ " + i18n.T("update.title")))
	b.WriteString("\n")
	b.WriteString(m.project.View())
	b.WriteString("\n")
	b.WriteString(renderButton(i18n.T("update.load"), m.focus == updateFocusLoad))
	b.WriteString("\n\n")

	if m.loaded {
		if len(m.tokens) == 0 {
			b.WriteString(helpStyle.Render(i18n.T("update.no_tokens")))
			b.WriteString("\n")
		} else {
			lines, cursor := m.gridLines()
			m.pane.SetHeader(fmt.Sprintf("%s: %s", i18n.T("update.project"), m.loadedProject))
			m.pane.SetContent(strings.Join(lines, "\n"))
			m.pane.EnsureVisible(cursor)
			b.WriteString(m.pane.View())
			b.WriteString("\n")
		}
		if m.editing {
			b.WriteString(m.editor.View())
			b.WriteString("\n")
		}
		b.WriteString(renderButton(i18n.T("update.submit"), m.focus == updateFocusSubmit))
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(specialStyle.Render(i18n.T("form.busy")))
	} else if !m.loaded {
		b.WriteString(helpStyle.Render(i18n.T("update.footer")))
	}
	return b.String()
}
