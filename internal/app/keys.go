package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/app/popupctl"
	"github.com/llehouerou/lyricsync/internal/keymap"
	"github.com/llehouerou/lyricsync/internal/ui/helpbindings"
)

// handleKey gives the key to the open popup, then to the bindings of the
// focused panel, then to the browser's own navigation.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if handled, cmd := m.popups.Update(msg); handled {
		return cmd
	}

	act := m.keys.Resolve(msg.String(), m.contexts()...)
	if act == "" {
		if m.focus == FocusBrowser {
			return m.browser.Update(msg)
		}
		return nil
	}
	if act == keymap.ActionOpenFile {
		return m.browser.Update(msg)
	}
	return m.runAction(act)
}

func (m *Model) runAction(act keymap.Action) tea.Cmd {
	if cmd, ok := m.runGlobal(act); ok {
		return cmd
	}
	if cmd, ok := m.runPlayback(act); ok {
		return cmd
	}
	if cmd, ok := m.runNavigation(act); ok {
		return cmd
	}
	return m.runEdit(act)
}

func (m *Model) runGlobal(act keymap.Action) (tea.Cmd, bool) {
	switch act {
	case keymap.ActionQuit:
		return m.quit(), true
	case keymap.ActionHelp:
		return m.popups.Show(popupctl.Help, helpbindings.New()), true
	case keymap.ActionFocusNext:
		m.setFocus(m.focus + 1)
	case keymap.ActionFocusPrev:
		m.setFocus(m.focus - 1)
	case keymap.ActionOpenFolder:
		return m.promptFolder(), true
	case keymap.ActionRescan:
		if m.browser.Root() == "" {
			return nil, true
		}
		return m.startScan(m.browser.Root()), true
	case keymap.ActionRecentFiles:
		return recentFilesCmd(m.state), true
	case keymap.ActionSave:
		return m.save(), true
	case keymap.ActionAutoFetch:
		return m.autoFetch(), true
	case keymap.ActionSearch:
		return m.promptSearch(), true
	case keymap.ActionSnapshots:
		return m.listSnapshots(), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) runPlayback(act keymap.Action) (tea.Cmd, bool) {
	switch act {
	case keymap.ActionPlayPause:
		if m.audio == "" {
			return m.setError("Open an audio file first"), true
		}
		m.clock.Toggle()
	case keymap.ActionSeekBack:
		m.clock.Seek(-m.cfg.SeekStep())
	case keymap.ActionSeekForward:
		m.clock.Seek(m.cfg.SeekStep())
	case keymap.ActionRestart:
		m.clock.SeekTo(0)
	default:
		return nil, false
	}
	m.syncPlayback()
	return nil, true
}

// runNavigation moves within the focused lyric pane.
func (m *Model) runNavigation(act keymap.Action) (tea.Cmd, bool) {
	p := m.focusedPane()
	if p == nil {
		return nil, false
	}
	switch act {
	case keymap.ActionMoveUp:
		p.MoveCursor(-1)
	case keymap.ActionMoveDown:
		p.MoveCursor(1)
	case keymap.ActionPageUp:
		p.Page(-1)
	case keymap.ActionPageDown:
		p.Page(1)
	case keymap.ActionJumpStart:
		p.SetCursor(0)
	case keymap.ActionJumpEnd:
		p.SetCursor(p.LineCount() - 1)
	case keymap.ActionRefollow:
		m.session.Refollow()
	case keymap.ActionWhitespace:
		show := !m.editable.ShowWhitespace()
		m.original.SetShowWhitespace(show)
		m.editable.SetShowWhitespace(show)
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) runEdit(act keymap.Action) tea.Cmd {
	if m.focus != FocusEditable {
		return nil
	}
	switch act {
	case keymap.ActionStamp:
		return m.stamp()
	case keymap.ActionSeekToLine:
		return m.seekToLine()
	case keymap.ActionEditLine:
		return m.editLine()
	case keymap.ActionLineBelow:
		return m.newLine(1)
	case keymap.ActionLineAbove:
		return m.newLine(0)
	case keymap.ActionDeleteLine:
		return m.deleteLine()
	case keymap.ActionCopyLine:
		return m.copyLine()
	}
	return nil
}
