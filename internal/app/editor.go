package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/app/popupctl"
	"github.com/llehouerou/lyricsync/internal/lrc"
	"github.com/llehouerou/lyricsync/internal/lrcsync"
	"github.com/llehouerou/lyricsync/internal/ui/textinput"
)

// editPrompt is the text input context of a line edit.
type editPrompt struct {
	line int
}

// textChanged rebuilds the index from the editable pane.
func (m *Model) textChanged() {
	m.session.Dispatch(lrcsync.TextChanged{Text: m.editable.Text()})
	m.dirty = true
}

// stamp writes the playback position as the cursor line's timestamp and
// moves to the next line.
func (m *Model) stamp() tea.Cmd {
	if m.audio == "" {
		return m.setError("Open an audio file first")
	}
	p := m.editable
	if p.LineCount() == 0 {
		p.InsertLine(0, "")
	}
	line := p.Cursor()
	p.SetLine(line, lrc.Stamp(p.Line(line), m.clock.Position().Seconds()))
	p.MoveCursor(1)
	m.textChanged()
	return nil
}

// seekToLine moves playback to the timestamp of the cursor line.
func (m *Model) seekToLine() tea.Cmd {
	if m.audio == "" {
		return nil
	}
	sec, ok := m.session.Index().OffsetOf(m.editable.Cursor())
	if !ok {
		return m.setError("No timestamp on this line")
	}
	m.clock.SeekTo(time.Duration(sec * float64(time.Second)))
	m.syncPlayback()
	return nil
}

func (m *Model) editLine() tea.Cmd {
	p := m.editable
	if p.LineCount() == 0 {
		return m.newLine(0)
	}
	line := p.Cursor()
	in := textinput.New()
	in.Start(fmt.Sprintf("Edit line %d", line+1), p.Line(line), editPrompt{line: line})
	return m.popups.Show(popupctl.Input, in)
}

// newLine inserts an empty line below (offset 1) or above (offset 0) the
// cursor and starts editing it.
func (m *Model) newLine(offset int) tea.Cmd {
	p := m.editable
	at := 0
	if p.LineCount() > 0 {
		at = p.Cursor() + offset
	}
	if !p.InsertLine(at, "") {
		return nil
	}
	p.SetCursor(at)
	m.textChanged()
	return m.editLine()
}

func (m *Model) deleteLine() tea.Cmd {
	if m.editable.DeleteLine(m.editable.Cursor()) {
		m.textChanged()
	}
	return nil
}

func (m *Model) copyLine() tea.Cmd {
	p := m.editable
	if p.LineCount() == 0 {
		return nil
	}
	return copyCmd(m.clipboard, p.Line(p.Cursor()))
}

func (m *Model) finishEdit(ctx editPrompt, res textinput.Result) tea.Cmd {
	if res.Canceled {
		return nil
	}
	if m.editable.SetLine(ctx.line, res.Text) {
		m.textChanged()
	}
	return nil
}
