// Package helpbindings is the scrollable key binding reference popup.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lyricsync/internal/keymap"
	"github.com/llehouerou/lyricsync/internal/ui"
	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/popup"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Close asks the app to close the help popup.
type Close struct{}

// ActionType implements action.Action.
func (Close) ActionType() string { return "helpbindings.close" }

var categories = []struct {
	context string
	label   string
}{
	{keymap.ContextGlobal, "Global"},
	{keymap.ContextPlayback, "Playback"},
	{keymap.ContextLyrics, "Lyric panes"},
	{keymap.ContextEditor, "Editor"},
	{keymap.ContextBrowser, "File browser"},
}

// Model is the help popup.
type Model struct {
	ui.Base
	lines  []string
	offset int
}

// New builds the help content from keymap.All.
func New() *Model {
	m := &Model{}
	m.lines = buildLines()
	return m
}

func buildLines() []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	keyWidth := 0
	for _, b := range keymap.All {
		keyWidth = max(keyWidth, len(keysLabel(b.Keys)))
	}

	var lines []string
	for _, c := range categories {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			headerStyle.Render(c.label),
			t.S().Subtle.Render(strings.Repeat("─", keyWidth+30)),
		)
		for _, b := range keymap.ByContext(c.context) {
			label := keysLabel(b.Keys)
			lines = append(lines,
				keyStyle.Render(label+strings.Repeat(" ", keyWidth-len(label)))+"  "+t.S().Base.Render(b.Description))
		}
	}
	return lines
}

func keysLabel(keys []string) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if name := keymap.DisplayKey(k); name != "space" || k == " " {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "?", "esc", "q":
		return m, action.Cmd("helpbindings", Close{})
	case "j", "down":
		m.offset = min(m.offset+1, m.maxOffset())
	case "k", "up":
		m.offset = max(m.offset-1, 0)
	}
	return m, nil
}

func (m *Model) visibleHeight() int {
	// title, blank, blank, footer
	return max(m.Height()-4, 3)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()

	end := min(m.offset+m.visibleHeight(), len(m.lines))
	footer := "?/esc close"
	if m.maxOffset() > 0 {
		footer = "j/k scroll · " + footer
	}

	var b strings.Builder
	b.WriteString(styles.Gradient("Key bindings", t.Primary, t.Secondary, true))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(m.lines[m.offset:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(t.S().Subtle.Render(footer))
	return b.String()
}
