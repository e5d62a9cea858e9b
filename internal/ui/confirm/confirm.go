// Package confirm is a question popup: yes/no, or a short list of options
// whose last entry cancels.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/ui"
	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/popup"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Result is sent when the popup closes. Option is the chosen index in
// options mode; canceling picks the last option.
type Result struct {
	Confirmed bool
	Option    int
	Context   any
}

// ActionType implements action.Action.
func (Result) ActionType() string { return "confirm.result" }

const source = "confirm"

// Model is a confirmation popup.
type Model struct {
	ui.Base
	title    string
	message  string
	context  any
	options  []string
	selected int
}

// New creates a yes/no question.
func New(title, message string, context any) *Model {
	return &Model{title: title, message: message, context: context}
}

// NewOptions creates a question answered by one of options. The last
// option must be the one that cancels.
func NewOptions(title, message string, options []string, context any) *Model {
	m := New(title, message, context)
	m.options = options
	return m
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
	if len(m.options) > 0 {
		return m, m.optionKey(key.String())
	}
	switch key.String() {
	case "enter", "y", "Y":
		return m, m.result(true, 0)
	case "esc", "n", "N":
		return m, m.result(false, 0)
	}
	return m, nil
}

func (m *Model) optionKey(key string) tea.Cmd {
	last := len(m.options) - 1
	switch key {
	case "up", "k":
		m.selected = max(m.selected-1, 0)
	case "down", "j":
		m.selected = min(m.selected+1, last)
	case "enter":
		return m.result(m.selected < last, m.selected)
	case "esc":
		return m.result(false, last)
	}
	return nil
}

func (m *Model) result(confirmed bool, option int) tea.Cmd {
	return action.Cmd(source, Result{Confirmed: confirmed, Option: option, Context: m.context})
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	s := t.S()

	var b strings.Builder
	b.WriteString(styles.Gradient(m.title, t.Primary, t.Secondary, true))
	b.WriteString("\n\n")
	b.WriteString(s.Base.Render(m.message))
	b.WriteString("\n\n")

	if len(m.options) == 0 {
		b.WriteString(s.Subtle.Render("enter/y: confirm  esc/n: cancel"))
		return b.String()
	}
	for i, opt := range m.options {
		if i == m.selected {
			b.WriteString(s.Title.Render("> " + opt))
		} else {
			b.WriteString(s.Muted.Render("  " + opt))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(s.Subtle.Render("j/k: move  enter: select  esc: cancel"))
	return b.String()
}
