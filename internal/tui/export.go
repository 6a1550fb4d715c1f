// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
	"github.com/toeirei/tokenmaster/internal/tui/frame"
)

// exportDoneMsg carries the result of writing an export file.
type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// exportModel asks where to save the current token list.
type exportModel struct {
	picker *frame.FilePicker
	tokens []model.Token
}

func newExportModel(tokens []model.Token, startDir, defaultName string) exportModel {
	fp := frame.NewFilePicker(startDir)
	fp.SetLabels(pickerLabels())
	fp.SetFilter(".csv")
	fp.SetSaveMode(true)
	fp.SetFilename(defaultName)
	return exportModel{picker: fp, tokens: tokens}
}

func exportCmd(tokens []model.Token, path string) tea.Cmd {
	return func() tea.Msg {
		err := core.ExportToFile(tokens, path)
		return exportDoneMsg{path: path, count: len(tokens), err: err}
	}
}

func (m exportModel) Update(msg tea.Msg) (exportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.err != nil {
			logging.Errorf("export csv: %v", msg.err)
			return m, alertCmd(i18n.T("alert.export_failed", msg.err))
		}
		logging.Infof("exported %d token(s) to %s", msg.count, msg.path)
		text := i18n.T("export.done", msg.count, msg.path)
		return m, tea.Batch(backToMenu, func() tea.Msg { return statusMsg{text: text} })

	case tea.KeyMsg:
		action, path := m.picker.HandleKey(msg)
		switch action {
		case frame.PickerChosen:
			return m, exportCmd(m.tokens, path)
		case frame.PickerCancelled:
			return m, backToMenu
		}
	}
	return m, nil
}

func (m exportModel) View() string {
	return titleStyle.Render("💾 "+i18n.T("export.title")) + "\n" + m.picker.Render()
}
