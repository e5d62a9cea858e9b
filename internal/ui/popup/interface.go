// Package popup defines modal popups and the helpers that draw them over
// the main view.
package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component. While one is open it receives all key input.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	// View renders the content without border or centering.
	View() string
	SetSize(width, height int)
}
