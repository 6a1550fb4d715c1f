// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Tokenmaster.
// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that owns the token list and routes to all sub-views.
package tui // import "github.com/toeirei/tokenmaster/internal/tui"

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/tui/frame"
)

// viewState represents which part of the UI is currently active.
type viewState int

const (
	// menuView is the main screen: menu plus token list.
	menuView viewState = iota
	importView
	addView
	updateView
	deleteView
	exportView
	languageView
)

// Menu entries in display order.
var menuKeys = []string{
	"menu.upload",
	"menu.add",
	"menu.update",
	"menu.delete",
	"menu.export",
	"menu.language",
}

// Options configures the TUI.
type Options struct {
	API     core.TokenAPI
	Timeout time.Duration
	// ExportFilename is suggested when saving a CSV export.
	ExportFilename string
	// StartDir is where the file pickers open. Defaults to the working directory.
	StartDir string
	// SaveLanguage persists a language choice. May be nil.
	SaveLanguage func(lang string) error
	// LogFile receives log output while the TUI owns the terminal.
	LogFile string
}

// mainModel is the top-level model. It owns the session, the only copy of
// the full token list.
type mainModel struct {
	state   viewState
	backend backend
	session *core.Session
	opts    Options

	menu     *frame.ListView
	list     tokensView
	form     tokenFormModel
	update   updatePanelModel
	del      deleteFormModel
	imp      importFormModel
	export   exportModel
	language languageModel

	alert  *frame.Dialog
	status string
	width  int
	height int
}

func newMainModel(opts Options) mainModel {
	if opts.ExportFilename == "" {
		opts.ExportFilename = core.DefaultExportFilename
	}
	if opts.StartDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.StartDir = wd
		} else {
			opts.StartDir = "."
		}
	}
	b := backend{api: opts.API, timeout: opts.Timeout}
	m := mainModel{
		state:   menuView,
		backend: b,
		session: core.NewSession(),
		opts:    opts,
		menu:    frame.NewList(nil),
		list:    newTokensView(),
		form:    newTokenFormModel(b),
		update:  newUpdatePanelModel(b),
		del:     newDeleteFormModel(b),
		imp:     newImportFormModel(b, opts.StartDir),
	}
	m.menu.SelectedStyle = selectedItemStyle
	m.menu.ItemStyle = itemStyle
	m.relabel()
	return m
}

// relabel refreshes every translated string held inside sub-models.
func (m *mainModel) relabel() {
	items := make([]string, len(menuKeys))
	for i, k := range menuKeys {
		items[i] = i18n.T(k)
	}
	m.menu.Items = items
	m.list.relabel()
	m.form.relabel()
	m.update.relabel()
	m.del.relabel()
}

// refresh issues a full-list fetch with a new sequence number.
func (m mainModel) refresh() tea.Cmd {
	return m.backend.fetchAllCmd(m.session.NextSeq())
}

// Init fetches the full list exactly once.
func (m mainModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *mainModel) resize() {
	m.list.SetSize(max(m.width-8, 20), max(m.height-len(menuKeys)-14, 3))
	m.update.SetSize(max(m.width-8, 20), m.height)
}

// Update is the main message loop. It handles results owned by the root
// and routes everything else to the sub-model that issued it or to the
// active view.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.alert != nil {
			switch msg.String() {
			case "enter", "esc", " ":
				m.alert = nil
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case fetchResultMsg:
		if msg.err != nil {
			if m.session.IsStale(msg.seq) {
				logging.Warnf("stale refresh %d failed: %v", msg.seq, msg.err)
				return m, nil
			}
			logging.Errorf("fetch tokens: %v", msg.err)
			return m, alertCmd(i18n.T("alert.fetch_failed", msg.err))
		}
		if !m.session.Apply(msg.seq, msg.tokens) {
			logging.Debugf("dropped stale refresh %d", msg.seq)
			return m, nil
		}
		m.list.SetTokens(m.session.Tokens())
		return m, nil

	case tokensChangedMsg:
		return m, m.refresh()

	case importDoneMsg:
		m.session.MarkImported()
		m.state = menuView
		m.imp.selected = ""
		m.status = i18n.T("import.done")
		return m, m.refresh()

	case alertMsg:
		m.alert = frame.NewAlert(i18n.T("dialog.alert_title"), msg.text, i18n.T("dialog.ok"))
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case backToMenuMsg:
		m.state = menuView
		return m, nil

	case languageChangedMsg:
		m.relabel()
		m.state = menuView
		return m, nil

	case tokenCreatedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case projectLoadedMsg, projectUpdatedMsg:
		var cmd tea.Cmd
		m.update, cmd = m.update.Update(msg)
		return m, cmd
	case tokenDeletedMsg:
		var cmd tea.Cmd
		m.del, cmd = m.del.Update(msg)
		return m, cmd
	case csvUploadedMsg:
		var cmd tea.Cmd
		m.imp, cmd = m.imp.Update(msg)
		return m, cmd
	case exportDoneMsg:
		var cmd tea.Cmd
		m.export, cmd = m.export.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case importView:
		m.imp, cmd = m.imp.Update(msg)
	case addView:
		m.form, cmd = m.form.Update(msg)
	case updateView:
		m.update, cmd = m.update.Update(msg)
	case deleteView:
		m.del, cmd = m.del.Update(msg)
	case exportView:
		m.export, cmd = m.export.Update(msg)
	case languageView:
		m.language, cmd = m.language.Update(msg, m.opts.SaveLanguage)
	default:
		return m.updateMenu(msg)
	}
	return m, cmd
}

// updateMenu handles keys on the main screen.
func (m mainModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.list.Focused() {
		switch keyMsg.String() {
		case "tab", "esc":
			m.list.Blur()
			return m, nil
		case "q":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(keyMsg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.menu.MoveUp()
	case "down", "j":
		m.menu.MoveDown()
	case "tab":
		if m.session.State() == core.ListLoaded && len(m.session.Tokens()) > 0 {
			m.list.Focus()
		}
	case "L":
		return m.open(languageView)
	case "enter":
		return m.open(viewState(m.menu.Selected + 1))
	}
	return m, nil
}

// open switches to a sub-view.
func (m mainModel) open(state viewState) (tea.Model, tea.Cmd) {
	m.status = ""
	switch state {
	case importView:
		m.state = importView
	case addView:
		m.state = addView
		return m, m.form.Init()
	case updateView:
		m.state = updateView
	case deleteView:
		m.state = deleteView
	case exportView:
		tokens := m.session.Tokens()
		if len(tokens) == 0 {
			return m, alertCmd(i18n.T("alert.nothing_to_export"))
		}
		m.export = newExportModel(tokens, m.opts.StartDir, m.opts.ExportFilename)
		m.state = exportView
	case languageView:
		m.language = newLanguageModel()
		m.state = languageView
	}
	return m, nil
}

// View renders the active screen, with the alert on top when one is open.
func (m mainModel) View() string {
	if m.alert != nil {
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.alert.Render())
		}
		return m.alert.Render()
	}

	var body string
	switch m.state {
	case importView:
		body = m.imp.View()
	case addView:
		body = m.form.View()
	case updateView:
		body = m.update.View()
	case deleteView:
		body = m.del.View()
	case exportView:
		body = m.export.View()
	case languageView:
		body = m.language.View()
	default:
		return m.menuScreen()
	}
	return paneStyle.Render(body)
}

// menuScreen renders the menu, the token list and the footer.
func (m mainModel) menuScreen() string {
	var b strings.Builder
	b.WriteString(mainTitleStyle.Render("🔑 " + i18n.T("app.title")))
	b.WriteString(helpStyle.Render(i18n.T("app.subtitle")))
	b.WriteString("\n")
	b.WriteString(m.menu.Render())
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render(i18n.T("list.title")))
	b.WriteString("\n")
	b.WriteString(m.listSection())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusMessageStyle.Render(m.status))
		b.WriteString("\n")
	}

	content := paneStyle.Render(b.String())
	if m.width == 0 {
		return content + "\n" + footerStyle.Render(i18n.T("menu.footer"))
	}
	footer := footerStyle.Width(m.width).Render(frame.Footer(i18n.T("menu.footer"), fmt.Sprintf("%s | %s", i18n.GetLang(), m.session.State()), m.width-2))
	return content + "\n" + footer
}

// listSection shows the upload prompt until the first import succeeds.
func (m mainModel) listSection() string {
	if m.session.State() != core.ListLoaded {
		return specialStyle.Render(i18n.T("list.empty"))
	}
	tokens := m.session.Tokens()
	out := renderTokenList(m.list, tokens)
	if len(tokens) > 0 {
		out += "\n" + helpStyle.Render(i18n.T("list.count", len(tokens)))
	}
	return out
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if opts.LogFile != "" {
		f, err := logging.LogToFile(opts.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		defer logging.SetOutput(os.Stderr)
	}

	if _, err := tea.NewProgram(newMainModel(opts), tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		return err
	}
	return nil
}
