// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Pane composes a header, a scrollable body and a one-line footer.
type Pane struct {
	Width  int
	Height int

	Header      string
	FooterLeft  string
	FooterRight string

	Viewport viewport.Model
}

// NewPane creates an empty Pane.
func NewPane() *Pane {
	return &Pane{Viewport: viewport.New(0, 0)}
}

// SetHeader sets the header text (may include multiple lines).
func (p *Pane) SetHeader(h string) {
	p.Header = h
	p.resize()
}

// SetContent replaces the body text.
func (p *Pane) SetContent(s string) {
	p.Viewport.SetContent(s)
}

// SetFooterTokens sets the left/right footer tokens.
func (p *Pane) SetFooterTokens(left, right string) {
	p.FooterLeft = left
	p.FooterRight = right
}

// SetSize sets the pane's total size and resizes the body viewport.
func (p *Pane) SetSize(width, height int) {
	p.Width = width
	p.Height = height
	p.resize()
}

func (p *Pane) resize() {
	headerLines := lipgloss.Height(p.Header)
	bodyHeight := p.Height - headerLines - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	p.Viewport.Width = p.Width
	p.Viewport.Height = bodyHeight
}

// EnsureVisible scrolls the body so line is on screen.
func (p *Pane) EnsureVisible(line int) {
	if line < p.Viewport.YOffset {
		p.Viewport.SetYOffset(line)
	} else if p.Viewport.Height > 0 && line >= p.Viewport.YOffset+p.Viewport.Height {
		p.Viewport.SetYOffset(line - p.Viewport.Height + 1)
	}
}

// View renders the pane as a single string combining header, body and footer.
func (p *Pane) View() string {
	var b strings.Builder
	b.WriteString(p.Header)
	b.WriteString("\n")
	b.WriteString(p.Viewport.View())
	b.WriteString("\n")
	b.WriteString(Footer(p.FooterLeft, p.FooterRight, p.Width))
	return b.String()
}
