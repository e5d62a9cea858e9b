// Package browser is the audio file list on the left of the screen.
package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lyricsync/internal/icons"
	"github.com/llehouerou/lyricsync/internal/scanner"
	"github.com/llehouerou/lyricsync/internal/ui"
	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/list"
	"github.com/llehouerou/lyricsync/internal/ui/render"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

// OpenFile asks the app to open an audio file.
type OpenFile struct {
	Path string
}

// ActionType implements action.Action.
func (OpenFile) ActionType() string { return "browser.open_file" }

// Model lists the audio files of the scanned folder.
type Model struct {
	ui.Base
	root     string
	list     list.Model[scanner.File]
	current  string
	scanning bool
}

// New creates an empty browser.
func New() Model {
	return Model{list: list.New[scanner.File]()}
}

// SetSize sets the panel size, border included.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.list.SetSize(m.InnerWidth(), m.ListHeight())
}

// SetScanning marks a scan of root as in progress.
func (m *Model) SetScanning(root string) {
	m.root = root
	m.scanning = true
}

// SetFiles replaces the file list with a finished scan.
func (m *Model) SetFiles(root string, files []scanner.File) {
	m.root = root
	m.scanning = false
	m.list.SetItems(files)
	m.selectCurrent()
}

// Root returns the scanned folder.
func (m *Model) Root() string {
	return m.root
}

// Files returns the listed files.
func (m *Model) Files() []scanner.File {
	return m.list.Items()
}

// SetCurrent marks path as the open file and moves the cursor to it.
func (m *Model) SetCurrent(path string) {
	m.current = path
	m.selectCurrent()
}

// MarkLRC records that path now has (or lost) a lyric file.
func (m *Model) MarkLRC(path string, has bool) {
	for i := range m.list.Items() {
		if m.list.Items()[i].Path == path {
			m.list.Items()[i].HasLRC = has
		}
	}
}

func (m *Model) selectCurrent() {
	for i, f := range m.list.Items() {
		if f.Path == m.current {
			m.list.Select(i)
			return
		}
	}
}

// Selected returns the file under the cursor.
func (m *Model) Selected() (scanner.File, bool) {
	return m.list.Selected()
}

// Update handles navigation and opening. Mouse coordinates are relative to
// the panel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		mouse.Y -= 1 + ui.HeaderHeight
		msg = mouse
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "l" {
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	}

	res := m.list.Update(msg)
	if res.Action != list.ActionEnter {
		return nil
	}
	f, _ := m.list.Selected()
	return action.Cmd("browser", OpenFile{Path: f.Path})
}

// View renders the panel.
func (m *Model) View() string {
	width, height := m.InnerWidth(), m.ListHeight()
	if width <= 0 || height <= 0 {
		return ""
	}
	s := styles.T().S()

	title := filepath.Base(m.root)
	if m.root == "" {
		title = "no folder"
	}
	status := fmt.Sprintf("%d", m.list.Len())
	if m.scanning {
		status = "scanning..."
	}

	rows := make([]string, 0, height+ui.HeaderHeight)
	rows = append(rows,
		render.Row(s.Title.Render(render.Truncate(title, max(width-len(status)-1, 1))), s.Muted.Render(status), width),
		s.Subtle.Render(strings.Repeat("─", width)),
	)

	start, end := m.list.VisibleRange()
	sel := m.list.SelectedIndex()
	for i := start; i < end; i++ {
		rows = append(rows, m.renderFile(m.list.Items()[i], i == sel, width))
	}
	for range height - (end - start) {
		rows = append(rows, render.Pad("", width))
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(width).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) renderFile(f scanner.File, selected bool, width int) string {
	s := styles.T().S()

	mark := s.Subtle.Render(icons.LyricsMark(false))
	if f.HasLRC {
		mark = s.Success.Render(icons.LyricsMark(true))
	}
	name := render.TruncateAndPad(icons.FormatAudio(f.Rel), max(width-lipgloss.Width(mark), 0))

	switch {
	case selected && m.IsFocused():
		return mark + s.Cursor.Render(name)
	case f.Path == m.current:
		return mark + s.Title.Foreground(styles.T().Primary).Render(name)
	default:
		return mark + s.Base.Render(name)
	}
}
