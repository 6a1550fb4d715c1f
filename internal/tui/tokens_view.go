// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/model"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// columnKeys are the i18n ids of the table header, "#" first.
var columnKeys = []string{
	"list.col.row",
	"list.col.project",
	"list.col.token",
	"list.col.permission",
	"list.col.user_id",
	"list.col.user_name",
	"list.col.expiry",
}

// tokensView renders the token list as a table. It holds no state of its
// own beyond cursor position; the rows always come from the session.
type tokensView struct {
	table  table.Model
	tokens []model.Token
	width  int
	height int
}

func newTokensView() tokensView {
	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)
	return tokensView{table: t}
}

// tableColumns spreads width over the seven columns.
func tableColumns(width int) []table.Column {
	rowWidth := 4
	rest := max(width-rowWidth-2*len(columnKeys), 6*8)
	each := rest / 6
	cols := make([]table.Column, len(columnKeys))
	for i, key := range columnKeys {
		w := each
		if i == 0 {
			w = rowWidth
		}
		cols[i] = table.Column{Title: i18n.T(key), Width: w}
	}
	return cols
}

// tableRows converts tokens to rows with a 1-based row number first.
func tableRows(tokens []model.Token) []table.Row {
	rows := make([]table.Row, 0, len(tokens))
	for i, t := range tokens {
		rows = append(rows, append(table.Row{strconv.Itoa(i + 1)}, t.Fields()...))
	}
	return rows
}

// SetTokens replaces the displayed rows.
func (v *tokensView) SetTokens(tokens []model.Token) {
	v.tokens = tokens
	v.table.SetRows(tableRows(tokens))
	if c := v.table.Cursor(); c >= len(tokens) && len(tokens) > 0 {
		v.table.SetCursor(len(tokens) - 1)
	}
}

// SetSize fits the table into the given area.
func (v *tokensView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.table.SetColumns(tableColumns(width))
	v.table.SetWidth(width)
	v.table.SetHeight(max(height, 3))
}

// relabel refreshes translated column titles.
func (v *tokensView) relabel() {
	w := v.width
	if w == 0 {
		w = 80
	}
	v.table.SetColumns(tableColumns(w))
}

func (v *tokensView) Focus() { v.table.Focus() }
func (v *tokensView) Blur()  { v.table.Blur() }

// Focused reports whether the table receives keys.
func (v tokensView) Focused() bool { return v.table.Focused() }

func (v tokensView) Update(msg tea.Msg) (tokensView, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "y" {
		return v, v.copySelected()
	}
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// copySelected puts the token value of the selected row on the clipboard.
func (v tokensView) copySelected() tea.Cmd {
	if len(v.tokens) == 0 {
		return nil
	}
	row := v.table.Cursor()
	if row < 0 || row >= len(v.tokens) {
		return nil
	}
	value := v.tokens[row].Token
	return func() tea.Msg {
		if err := copyToClipboard(value); err != nil {
			logging.Warnf("clipboard: %v", err)
			return alertMsg{text: i18n.T("alert.copy_failed", err)}
		}
		return statusMsg{text: i18n.T("list.copied", row+1)}
	}
}

// renderTokenList is the pure list rendering: an empty-state message for an
// empty or nil list, otherwise the table.
func renderTokenList(v tokensView, tokens []model.Token) string {
	if len(tokens) == 0 {
		return helpStyle.Render(i18n.T("list.no_tokens"))
	}
	return v.table.View()
}
