// Package textinput is a one-line text prompt shown as a popup.
package textinput

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/ui"
	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/popup"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Result is sent when the prompt closes.
type Result struct {
	Text     string
	Context  any // passed through from Start
	Canceled bool
}

// ActionType implements action.Action.
func (Result) ActionType() string { return "textinput.result" }

const source = "textinput"

// Model is a titled prompt around a bubbles text input.
type Model struct {
	ui.Base
	title   string
	hint    string
	context any
	input   textinput.Model
}

// New creates a prompt. Call Start before showing it.
func New() *Model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = styles.T().S().Tag
	in.TextStyle = styles.T().S().Base
	return &Model{input: in}
}

// Start sets up the prompt for one question.
func (m *Model) Start(title, initial string, context any) {
	m.title = title
	m.context = context
	m.hint = "enter: confirm  esc: cancel"
	m.input.SetValue(initial)
	m.input.CursorEnd()
}

// SetHint replaces the help line under the input.
func (m *Model) SetHint(hint string) {
	m.hint = hint
}

// Value returns the current text.
func (m *Model) Value() string {
	return m.input.Value()
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-len(m.input.Prompt)-1, 1)
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return m.input.Focus()
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return m, action.Cmd(source, Result{Canceled: true, Context: m.context})
		case tea.KeyEnter:
			return m, action.Cmd(source, Result{Text: m.input.Value(), Context: m.context})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 {
		return ""
	}
	t := styles.T()
	title := styles.Gradient(m.title, t.Primary, t.Secondary, true)
	return title + "\n\n" + m.input.View() + "\n\n" + t.S().Subtle.Render(m.hint)
}
