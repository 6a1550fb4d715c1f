// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/tui/frame"
)

// Focus targets of the import form.
const (
	importFocusChoose = iota
	importFocusSubmit
)

// csvUploadedMsg carries the result of an upload.
type csvUploadedMsg struct {
	path string
	err  error
}

// importFormModel lets the user pick a CSV file and upload it.
type importFormModel struct {
	backend  backend
	focus    int
	selected string
	startDir string
	picker   *frame.FilePicker // non-nil while browsing
	busy     bool
}

func newImportFormModel(b backend, startDir string) importFormModel {
	return importFormModel{backend: b, startDir: startDir}
}

func (m importFormModel) openPicker() importFormModel {
	m.picker = frame.NewFilePicker(m.startDir)
	m.picker.SetLabels(pickerLabels())
	m.picker.SetFilter(".csv")
	return m
}

func (m importFormModel) upload() (importFormModel, tea.Cmd) {
	if m.selected == "" {
		return m, alertCmd(i18n.T("alert.no_file"))
	}
	m.busy = true
	b := m.backend
	path := m.selected
	return m, func() tea.Msg {
		ctx, cancel := b.context()
		defer cancel()
		return csvUploadedMsg{path: path, err: core.ImportCSV(ctx, b.api, path)}
	}
}

func (m importFormModel) Update(msg tea.Msg) (importFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case csvUploadedMsg:
		m.busy = false
		if msg.err != nil {
			logging.Errorf("upload csv: %v", msg.err)
			if errors.Is(msg.err, core.ErrNoFileSelected) {
				return m, alertCmd(i18n.T("alert.no_file"))
			}
			return m, alertCmd(i18n.T("alert.upload_failed"))
		}
		path := msg.path
		return m, func() tea.Msg { return importDoneMsg{path: path} }

	case tea.KeyMsg:
		if m.picker != nil {
			action, path := m.picker.HandleKey(msg)
			switch action {
			case frame.PickerChosen:
				m.selected = path
				m.startDir = m.picker.CurrentPath()
				m.picker = nil
				m.focus = importFocusSubmit
			case frame.PickerCancelled:
				m.picker = nil
			}
			return m, nil
		}
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, backToMenu
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
		case "enter":
			if m.focus == importFocusChoose {
				return m.openPicker(), nil
			}
			return m.upload()
		}
	}
	return m, nil
}

func (m importFormModel) View() string {
	if m.picker != nil {
		return m.picker.Render()
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("📤 " + i18n.T("import.title")))
	b.WriteString("\n")
	if m.selected == "" {
		b.WriteString(helpStyle.Render(i18n.T("import.none_selected")))
	} else {
		b.WriteString(i18n.T("import.selected", m.selected))
	}
	b.WriteString("\n")
	b.WriteString(renderButton(i18n.T("import.choose"), m.focus == importFocusChoose))
	b.WriteString("  ")
	b.WriteString(renderButton(i18n.T("import.submit"), m.focus == importFocusSubmit))
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(specialStyle.Render(i18n.T("form.busy")))
	} else {
		b.WriteString(helpStyle.Render(i18n.T("import.footer")))
	}
	return b.String()
}
