// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus targets inside a FilePicker.
const (
	FocusList = iota
	FocusFilename
	FocusOk
	FocusCancel
)

// PickerLabels holds the translatable strings rendered by a FilePicker.
type PickerLabels struct {
	Filename string
	Ok       string
	Cancel   string
	Selected string
	Empty    string
	Help     string
}

// DefaultPickerLabels are used when no labels are supplied.
var DefaultPickerLabels = PickerLabels{
	Filename: "Filename: ",
	Ok:       "OK",
	Cancel:   "Cancel",
	Selected: "Selected: ",
	Empty:    "(empty directory)",
	Help:     "j/k navigate | enter select | tab focus | esc cancel",
}

// PickerAction is what a key press resolved to.
type PickerAction int

const (
	// PickerNone means the picker is still open.
	PickerNone PickerAction = iota
	// PickerChosen means the user confirmed a path.
	PickerChosen
	// PickerCancelled means the user backed out.
	PickerCancelled
)

// pickerEntry is one row of the file list.
type pickerEntry struct {
	name  string
	isDir bool
}

// FilePicker is a directory browser used both to choose an existing file
// (load mode) and to name a file to write (save mode).
type FilePicker struct {
	currentPath string
	entries     []pickerEntry
	selected    int // index of selected entry (includes . and ..)
	Focused     int
	Width       int
	Height      int
	filter      string // file extension filter (e.g., ".csv")
	vp          viewport.Model
	filename    []rune
	saveMode    bool
	labels      PickerLabels
	err         error
}

// NewFilePicker creates a new file picker starting at the given path.
func NewFilePicker(path string) *FilePicker {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fp := &FilePicker{
		currentPath: path,
		Width:       70,
		Height:      20,
		vp:          viewport.New(50, 14),
		labels:      DefaultPickerLabels,
	}
	fp.loadFiles()
	return fp
}

// SetLabels replaces the rendered strings.
func (fp *FilePicker) SetLabels(l PickerLabels) {
	fp.labels = l
}

// SetSaveMode enables save mode, which shows a filename input field and
// starts with the input focused.
func (fp *FilePicker) SetSaveMode(saveMode bool) {
	fp.saveMode = saveMode
	fp.filename = nil
	if saveMode {
		fp.Focused = FocusFilename
	} else {
		fp.Focused = FocusList
	}
}

// IsSaveMode returns whether the picker is in save mode.
func (fp *FilePicker) IsSaveMode() bool {
	return fp.saveMode
}

// SetFilename sets the filename for save mode.
func (fp *FilePicker) SetFilename(name string) {
	fp.filename = []rune(name)
}

// GetFilename returns the current filename.
func (fp *FilePicker) GetFilename() string {
	return string(fp.filename)
}

// SavePath joins the current directory with the typed filename. It returns
// "" when no name was typed.
func (fp *FilePicker) SavePath() string {
	name := strings.TrimSpace(string(fp.filename))
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fp.currentPath, name)
}

// CurrentPath returns the directory being shown.
func (fp *FilePicker) CurrentPath() string {
	return fp.currentPath
}

// TypeChar adds a character to the filename (in save mode).
func (fp *FilePicker) TypeChar(ch rune) {
	if fp.Focused == FocusFilename && fp.saveMode {
		fp.filename = append(fp.filename, ch)
	}
}

// Backspace removes the last character from the filename.
func (fp *FilePicker) Backspace() {
	if fp.Focused == FocusFilename && fp.saveMode && len(fp.filename) > 0 {
		fp.filename = fp.filename[:len(fp.filename)-1]
	}
}

// SetFilter sets a file extension filter (e.g., ".csv" or "").
func (fp *FilePicker) SetFilter(filter string) {
	fp.filter = filter
	fp.loadFiles()
}

// Err returns the error from the last directory read, if any.
func (fp *FilePicker) Err() error {
	return fp.err
}

// loadFiles reads the current directory and updates the file list.
// It includes . (current) and .. (parent) entries at the top.
func (fp *FilePicker) loadFiles() {
	dirEntries, err := os.ReadDir(fp.currentPath)
	fp.err = err

	var entries []pickerEntry
	for _, e := range dirEntries {
		if fp.filter != "" && !e.IsDir() && !strings.EqualFold(filepath.Ext(e.Name()), fp.filter) {
			continue
		}
		entries = append(entries, pickerEntry{name: e.Name(), isDir: e.IsDir()})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return entries[i].name < entries[j].name
	})

	fp.entries = append([]pickerEntry{{name: ".", isDir: true}, {name: "..", isDir: true}}, entries...)
	fp.selected = 0
	fp.vp.SetYOffset(0)
}

// MoveUp moves selection up in the file list.
func (fp *FilePicker) MoveUp() {
	if fp.Focused == FocusList && fp.selected > 0 {
		fp.selected--
		if fp.selected < fp.vp.YOffset {
			fp.vp.SetYOffset(fp.selected)
		}
	}
}

// MoveDown moves selection down in the file list.
func (fp *FilePicker) MoveDown() {
	if fp.Focused == FocusList && fp.selected < len(fp.entries)-1 {
		fp.selected++
		if fp.vp.Height > 0 && fp.selected >= fp.vp.YOffset+fp.vp.Height {
			fp.vp.SetYOffset(fp.selected - fp.vp.Height + 1)
		}
	}
}

// SelectCurrent enters the highlighted directory, or returns the full path
// of the highlighted file. In save mode choosing a file copies its name to
// the filename field instead.
func (fp *FilePicker) SelectCurrent() string {
	if fp.selected < 0 || fp.selected >= len(fp.entries) {
		return ""
	}
	e := fp.entries[fp.selected]
	switch {
	case e.name == ".":
		return ""
	case e.name == "..":
		fp.GoUp()
		return ""
	case e.isDir:
		fp.currentPath = filepath.Join(fp.currentPath, e.name)
		fp.loadFiles()
		return ""
	}
	if fp.saveMode {
		fp.filename = []rune(e.name)
		fp.Focused = FocusFilename
		return ""
	}
	return filepath.Join(fp.currentPath, e.name)
}

// GoUp navigates up one directory level.
func (fp *FilePicker) GoUp() {
	parent := filepath.Dir(fp.currentPath)
	if parent != fp.currentPath {
		fp.currentPath = parent
		fp.loadFiles()
	}
}

// GetSelected returns the currently highlighted file or directory name.
func (fp *FilePicker) GetSelected() string {
	if fp.selected >= 0 && fp.selected < len(fp.entries) {
		return fp.entries[fp.selected].name
	}
	return ""
}

// focusOrder lists the focus targets reachable with tab.
func (fp *FilePicker) focusOrder() []int {
	if fp.saveMode {
		return []int{FocusFilename, FocusList, FocusOk, FocusCancel}
	}
	return []int{FocusList, FocusOk, FocusCancel}
}

// FocusNext cycles focus forward.
func (fp *FilePicker) FocusNext() {
	fp.cycleFocus(1)
}

// FocusPrev cycles focus backward.
func (fp *FilePicker) FocusPrev() {
	fp.cycleFocus(-1)
}

func (fp *FilePicker) cycleFocus(step int) {
	order := fp.focusOrder()
	idx := 0
	for i, f := range order {
		if f == fp.Focused {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	fp.Focused = order[idx]
}

// HandleKey applies a key press and reports whether the picker finished.
// When the action is PickerChosen the returned path is the file to use.
func (fp *FilePicker) HandleKey(msg tea.KeyMsg) (PickerAction, string) {
	switch msg.String() {
	case "esc":
		return PickerCancelled, ""
	case "tab":
		fp.FocusNext()
		return PickerNone, ""
	case "shift+tab":
		fp.FocusPrev()
		return PickerNone, ""
	}

	switch fp.Focused {
	case FocusFilename:
		switch msg.Type {
		case tea.KeyEnter:
			if p := fp.SavePath(); p != "" {
				return PickerChosen, p
			}
		case tea.KeyBackspace:
			fp.Backspace()
		case tea.KeyRunes, tea.KeySpace:
			for _, r := range msg.Runes {
				fp.TypeChar(r)
			}
		}
	case FocusList:
		switch msg.String() {
		case "up", "k":
			fp.MoveUp()
		case "down", "j":
			fp.MoveDown()
		case "backspace", "u":
			fp.GoUp()
		case "enter":
			if p := fp.SelectCurrent(); p != "" {
				return PickerChosen, p
			}
		}
	case FocusOk:
		if msg.Type == tea.KeyEnter {
			if fp.saveMode {
				if p := fp.SavePath(); p != "" {
					return PickerChosen, p
				}
				fp.Focused = FocusFilename
				return PickerNone, ""
			}
			if p := fp.SelectCurrent(); p != "" {
				return PickerChosen, p
			}
		}
	case FocusCancel:
		if msg.Type == tea.KeyEnter {
			return PickerCancelled, ""
		}
	}
	return PickerNone, ""
}

// Render produces the file picker output.
func (fp *FilePicker) Render() string {
	buttonWidth := 14
	fileListWidth := fp.Width - buttonWidth - 6

	heightAdjust := 6
	if fp.saveMode {
		heightAdjust = 9
	}
	fp.vp.Width = fileListWidth
	fp.vp.Height = fp.Height - heightAdjust
	if fp.vp.Height < 3 {
		fp.vp.Height = 3
	}

	parts := []string{headerStyle(fp.Width - 2).Render(" 📁 " + fp.currentPath)}
	if fp.saveMode {
		parts = append(parts, fp.renderFilenameInput())
	}
	parts = append(parts,
		lipgloss.JoinHorizontal(lipgloss.Top, fp.renderFileList(), fp.renderButtonArea()),
		fp.renderInfoBar(),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBoxFrame).
		Width(fp.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderFilenameInput produces the filename input field (save mode only).
func (fp *FilePicker) renderFilenameInput() string {
	inputStyle := lipgloss.NewStyle().
		Foreground(colorText).
		Background(lipgloss.Color("236")).
		Padding(0, 2).
		Width(fp.Width - 6)

	cursor := ""
	if fp.Focused == FocusFilename {
		inputStyle = inputStyle.Background(colorAccent)
		cursor = "█"
	}
	return inputStyle.Render(fp.labels.Filename + string(fp.filename) + cursor)
}

// renderFileList produces the scrollable file list.
func (fp *FilePicker) renderFileList() string {
	if fp.err != nil || len(fp.entries) == 0 {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Width(fp.vp.Width).
			Render(fp.labels.Empty)
	}

	lines := make([]string, 0, len(fp.entries))
	for i, e := range fp.entries {
		prefix := "  "
		active := i == fp.selected && fp.Focused == FocusList
		if active {
			prefix = "> "
		}
		icon := "📄"
		if e.isDir {
			icon = "📁"
		}
		line := trimToWidth(prefix+icon+" "+e.name, fp.vp.Width)
		if active {
			line = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}
	fp.vp.SetContent(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Width(fp.vp.Width).
		Height(fp.vp.Height).
		Render(fp.vp.View())
}

// renderButtonArea produces vertically stacked OK and Cancel buttons.
func (fp *FilePicker) renderButtonArea() string {
	ok := buttonStyle(fp.Focused == FocusOk).Padding(0, 2).Width(10).Align(lipgloss.Center).Render(fp.labels.Ok)
	cancel := buttonStyle(fp.Focused == FocusCancel).Padding(0, 2).Width(10).Align(lipgloss.Center).Render(fp.labels.Cancel)

	return lipgloss.NewStyle().
		Width(14).
		Height(fp.vp.Height).
		Render(lipgloss.JoinVertical(lipgloss.Left, ok, "", cancel))
}

// renderInfoBar produces the status bar at the bottom.
func (fp *FilePicker) renderInfoBar() string {
	selected := fp.GetSelected()
	if selected == "" {
		selected = "-"
	}
	return lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(1, 2).
		Render(fp.labels.Selected + selected + " | " + fp.labels.Help)
}
