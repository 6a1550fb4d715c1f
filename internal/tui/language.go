// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/tui/frame"
)

// languageModel holds the state for the language selection menu.
type languageModel struct {
	orderedKeys []string // lang codes, for stable iteration
	list        *frame.ListView
}

func newLanguageModel() languageModel {
	choices := i18n.GetAvailableLocales()
	keys := make([]string, 0, len(choices))
	for code := range choices {
		keys = append(keys, code)
	}
	sort.Strings(keys)

	items := make([]string, len(keys))
	current := 0
	for i, code := range keys {
		items[i] = choices[code] + " (" + code + ")"
		if code == i18n.GetLang() {
			current = i
		}
	}
	l := frame.NewList(items)
	l.Selected = current
	l.SelectedStyle = selectedItemStyle
	l.ItemStyle = itemStyle
	return languageModel{orderedKeys: keys, list: l}
}

// Update handles navigation. save persists the chosen language and may be nil.
func (m languageModel) Update(msg tea.Msg, save func(string) error) (languageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		return m, backToMenu
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
	case "enter":
		if len(m.orderedKeys) == 0 {
			return m, nil
		}
		code := m.orderedKeys[m.list.Selected]
		i18n.SetLang(code)
		changed := func() tea.Msg { return languageChangedMsg{} }
		if save != nil {
			if err := save(code); err != nil {
				logging.Warnf("save language: %v", err)
				return m, tea.Sequence(changed, alertCmd(i18n.T("language.save_failed", err)))
			}
		}
		return m, changed
	}
	return m, nil
}

func (m languageModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌐 " + i18n.T("language.title")))
	b.WriteString("\n")
	b.WriteString(m.list.Render())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(i18n.T("language.footer")))
	return b.String()
}
