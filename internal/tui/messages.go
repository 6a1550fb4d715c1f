// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/tokenmaster/internal/core"
	"github.com/toeirei/tokenmaster/internal/i18n"
	"github.com/toeirei/tokenmaster/internal/model"
)

// fetchResultMsg carries the outcome of one full-list refresh.
type fetchResultMsg struct {
	seq    uint64
	tokens []model.Token
	err    error
}

// tokensChangedMsg signals that a mutation succeeded and the full list
// must be fetched again.
type tokensChangedMsg struct{}

// importDoneMsg signals a successful CSV upload.
type importDoneMsg struct {
	path string
}

// alertMsg opens a blocking alert with the given text.
type alertMsg struct {
	text string
}

// statusMsg sets the transient status line on the main screen.
type statusMsg struct {
	text string
}

// backToMenuMsg returns from a sub-view to the main screen.
type backToMenuMsg struct{}

// languageChangedMsg is a message to signal that the language has changed and the UI should be re-initialized.
type languageChangedMsg struct{}

func alertCmd(text string) tea.Cmd {
	return func() tea.Msg { return alertMsg{text: text} }
}

func backToMenu() tea.Msg { return backToMenuMsg{} }

func tokensChanged() tea.Msg { return tokensChangedMsg{} }

// backend bundles the API with the per-request timeout.
type backend struct {
	api     core.TokenAPI
	timeout time.Duration
}

// context returns a request context. A zero timeout means no deadline.
func (b backend) context() (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), b.timeout)
}

// fetchAllCmd issues refresh seq.
func (b backend) fetchAllCmd(seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := b.context()
		defer cancel()
		tokens, err := core.FetchAll(ctx, b.api)
		return fetchResultMsg{seq: seq, tokens: tokens, err: err}
	}
}

// fieldLabel returns the localized label of a token field.
func fieldLabel(field string) string {
	return i18n.T("field." + field)
}
