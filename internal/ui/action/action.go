// Package action carries requests from UI components up to the app, which
// owns the state they act on.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is one request, such as opening a file or applying a picked result.
type Action interface {
	// ActionType is a dotted name like "picker.result", used in logs.
	ActionType() string
}

// Msg is the tea.Msg a component returns to raise an Action.
type Msg struct {
	Source string // component name: "browser", "picker", "confirm", ...
	Action Action
}

// Cmd returns a command raising a from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg { return Msg{Source: source, Action: a} }
}
