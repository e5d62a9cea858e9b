package app

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lyricsync/internal/app/popupctl"
	"github.com/llehouerou/lyricsync/internal/keymap"
	"github.com/llehouerou/lyricsync/internal/ui/layout"
	"github.com/llehouerou/lyricsync/internal/ui/lyricpane"
	"github.com/llehouerou/lyricsync/internal/ui/playerbar"
	"github.com/llehouerou/lyricsync/internal/ui/render"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

const footerHeight = 1

// resize lays out browser | original | editor over the player bar.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	m.layoutPanels()
	m.popups.SetSize(width, height)
	m.help.Width = width

	m.session.Refollow()
}

// layoutPanels sizes the three panels. In a narrow terminal the browser only
// takes room while focused.
func (m *Model) layoutPanels() {
	h := layout.PanesHeight(m.height, playerbar.Height, footerHeight)
	cols := layout.Split(m.width, layout.BrowserVisible(m.width, m.focus == FocusBrowser))
	m.browser.SetSize(cols.Browser, h)
	m.original.SetSize(cols.Original, h)
	m.editable.SetSize(cols.Editable, h)
}

// View renders the application.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	cols := []string{m.original.View(), m.editable.View()}
	if m.browser.Width() > 0 {
		cols = append([]string{m.browser.View()}, cols...)
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	view := strings.Join([]string{
		panes,
		playerbar.Render(m.playerState(), m.width),
		m.renderFooter(),
	}, "\n")
	return m.popups.Render(view)
}

func (m *Model) playerState() playerbar.State {
	s := playerbar.NewState(m.clock)
	s.Title = m.meta.Title
	s.Artist = m.meta.Artist
	if m.audio != "" {
		s.File = filepath.Base(m.audio)
	}
	s.Line = m.session.CurrentLine()
	return s
}

func (m *Model) renderFooter() string {
	s := styles.T().S()

	var left string
	switch {
	case m.status != "" && m.statusErr:
		left = s.Error.Render(m.status)
	case m.status != "":
		left = s.Success.Render(m.status)
	default:
		left = m.help.ShortHelpView(keymap.HelpKeys(m.contexts()...))
	}

	right := ""
	if m.dirty {
		right = s.Warning.Render("modified")
	}
	return render.Row(left, right, m.width)
}

// handleMouse sends mouse events to the panel under the pointer. A click
// also focuses it. While a popup is open only the wheel reaches it.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.popups.Active() != popupctl.None {
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			_, cmd := m.popups.Update(msg)
			return cmd
		}
		return nil
	}

	if msg.Y >= m.browser.Height() {
		return nil
	}
	click := msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress

	browserW := m.browser.Width()
	origW := m.original.Width()
	switch {
	case msg.X < browserW:
		if click {
			m.setFocus(FocusBrowser)
		}
		return m.browser.Update(msg)
	case msg.X < browserW+origW:
		msg.X -= browserW
		m.paneMouse(m.original, FocusOriginal, msg, click)
	default:
		msg.X -= browserW + origW
		m.paneMouse(m.editable, FocusEditable, msg, click)
	}
	return nil
}

func (m *Model) paneMouse(p *lyricpane.Model, f Focus, msg tea.MouseMsg, click bool) {
	if click {
		m.setFocus(f)
	}
	p.HandleMouse(msg)
}
