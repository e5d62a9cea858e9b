// Package lyricpane renders one lyric text pane. It is the terminal
// counterpart of a scrollable text editor: it owns the scroll position,
// a line cursor and the active-line highlight, and implements lrcsync.View.
package lyricpane

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lyricsync/internal/lrc"
	"github.com/llehouerou/lyricsync/internal/lrcsync"
	"github.com/llehouerou/lyricsync/internal/ui"
	"github.com/llehouerou/lyricsync/internal/ui/render"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

const gutterWidth = 5 // "1234 "

var whitespaceMarks = strings.NewReplacer(" ", "·", "\t", "→")

// Model is a lyric pane.
type Model struct {
	ui.Base
	title    string
	editable bool

	lines  []string
	top    int
	cursor int

	active int
	style  lrcsync.Style

	showWhitespace bool

	onScroll func()
}

var _ lrcsync.View = (*Model)(nil)

// New creates an empty pane.
func New(title string, editable bool) *Model {
	return &Model{title: title, editable: editable, active: -1}
}

// OnScroll registers fn to run whenever the scroll position changes,
// whoever moved it.
func (m *Model) OnScroll(fn func()) {
	m.onScroll = fn
}

// Editable reports whether the pane accepts edits.
func (m *Model) Editable() bool {
	return m.editable
}

// SetText replaces the content. The cursor and scroll position are kept
// where possible; clamping them does not count as a scroll.
func (m *Model) SetText(text string) {
	m.lines = lrc.SplitLines(text)
	m.cursor = clamp(m.cursor, len(m.lines)-1)
	m.top = clamp(m.top, m.maxTop())
}

// SetShowWhitespace toggles rendering of spaces and tabs as visible marks.
func (m *Model) SetShowWhitespace(show bool) {
	m.showWhitespace = show
}

// ShowWhitespace reports whether whitespace is rendered visibly.
func (m *Model) ShowWhitespace() bool {
	return m.showWhitespace
}

// Text returns the content with \n line breaks.
func (m *Model) Text() string {
	return strings.Join(m.lines, "\n")
}

// Line returns line i, or "" when out of range.
func (m *Model) Line(i int) string {
	if i < 0 || i >= len(m.lines) {
		return ""
	}
	return m.lines[i]
}

// TopLine returns the first visible line.
func (m *Model) TopLine() int {
	return m.top
}

// LineCount returns the number of lines.
func (m *Model) LineCount() int {
	return len(m.lines)
}

// ScrollTo moves the viewport so line sits at the top or the center.
// The cursor does not move.
func (m *Model) ScrollTo(line int, align lrcsync.Align) {
	if len(m.lines) == 0 {
		m.setTop(0)
		return
	}
	line = clamp(line, len(m.lines)-1)
	top := line
	if align == lrcsync.AlignCenter {
		top = line - m.ListHeight()/2
	}
	m.setTop(top)
}

// Highlight marks the active line.
func (m *Model) Highlight(line int, style lrcsync.Style) {
	if line < 0 || style == lrcsync.StyleNone {
		m.active, m.style = -1, lrcsync.StyleNone
		return
	}
	m.active, m.style = line, style
}

// Active returns the highlighted line, -1 if none.
func (m *Model) Active() int {
	return m.active
}

// ScrollBy scrolls the viewport by delta lines, as the mouse wheel does.
func (m *Model) ScrollBy(delta int) {
	m.setTop(m.top + delta)
}

// Page scrolls by one screen in the direction of sign.
func (m *Model) Page(sign int) {
	m.ScrollBy(sign * max(m.ListHeight()-1, 1))
}

func (m *Model) setTop(top int) {
	top = clamp(top, m.maxTop())
	if top == m.top {
		return
	}
	m.top = top
	if m.onScroll != nil {
		m.onScroll()
	}
}

func (m *Model) maxTop() int {
	return max(len(m.lines)-m.ListHeight(), 0)
}

// Cursor returns the cursor line.
func (m *Model) Cursor() int {
	return m.cursor
}

// SetCursor moves the cursor to line and scrolls it into view.
func (m *Model) SetCursor(line int) {
	m.cursor = clamp(line, len(m.lines)-1)
	m.ensureVisible()
}

// MoveCursor moves the cursor by delta lines.
func (m *Model) MoveCursor(delta int) {
	m.SetCursor(m.cursor + delta)
}

func (m *Model) ensureVisible() {
	h := m.ListHeight()
	if h <= 0 || len(m.lines) == 0 {
		return
	}
	margin := min(ui.ScrollMargin, (h-1)/2)
	switch {
	case m.cursor < m.top+margin:
		m.setTop(m.cursor - margin)
	case m.cursor >= m.top+h-margin:
		m.setTop(m.cursor - h + margin + 1)
	}
}

// CursorOffset returns the character position of the start of the cursor
// line, counting one character per line break.
func (m *Model) CursorOffset() int {
	pos := 0
	for _, l := range m.lines[:min(m.cursor, len(m.lines))] {
		pos += len([]rune(l)) + 1
	}
	return pos
}

// SetCursorOffset places the cursor on the line containing character pos.
func (m *Model) SetCursorOffset(pos int) {
	line := 0
	for i, l := range m.lines {
		n := len([]rune(l)) + 1
		if pos < n {
			line = i
			break
		}
		pos -= n
		line = i
	}
	m.SetCursor(line)
}

// SetLine replaces line i. It reports whether anything changed.
func (m *Model) SetLine(i int, text string) bool {
	if !m.editable || i < 0 || i >= len(m.lines) || m.lines[i] == text {
		return false
	}
	m.lines[i] = text
	return true
}

// InsertLine inserts text before line i; i == LineCount appends.
func (m *Model) InsertLine(i int, text string) bool {
	if !m.editable || i < 0 || i > len(m.lines) {
		return false
	}
	m.lines = append(m.lines, "")
	copy(m.lines[i+1:], m.lines[i:])
	m.lines[i] = text
	return true
}

// DeleteLine removes line i.
func (m *Model) DeleteLine(i int) bool {
	if !m.editable || i < 0 || i >= len(m.lines) {
		return false
	}
	m.lines = append(m.lines[:i], m.lines[i+1:]...)
	m.cursor = clamp(m.cursor, len(m.lines)-1)
	m.top = clamp(m.top, m.maxTop())
	return true
}

// HandleMouse handles wheel scrolling and click-to-place-cursor.
// Coordinates are relative to the pane's top-left corner.
func (m *Model) HandleMouse(msg tea.MouseMsg) bool {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ScrollBy(-ui.WheelStep)
		return true
	case tea.MouseButtonWheelDown:
		m.ScrollBy(ui.WheelStep)
		return true
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return false
		}
		row := msg.Y - 1 - ui.HeaderHeight
		if row < 0 || row >= m.ListHeight() || m.top+row >= len(m.lines) {
			return false
		}
		m.cursor = m.top + row
		return true
	}
	return false
}

// View renders the pane with its border.
func (m *Model) View() string {
	width := m.InnerWidth()
	height := m.ListHeight()
	if width <= 0 || height <= 0 {
		return ""
	}

	s := styles.T().S()
	rows := make([]string, 0, height+ui.HeaderHeight)
	rows = append(rows,
		render.Row(s.Title.Render(render.Truncate(m.title, width/2)), s.Muted.Render(m.status()), width),
		s.Subtle.Render(strings.Repeat("─", width)),
	)

	for i := m.top; i < m.top+height; i++ {
		switch {
		case i < len(m.lines):
			rows = append(rows, m.renderLine(i, width))
		case i == 0:
			rows = append(rows, s.Subtle.Render(render.Pad("  no lyrics", width)))
		default:
			rows = append(rows, render.Pad("", width))
		}
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(width).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) status() string {
	if len(m.lines) == 0 {
		return ""
	}
	if !m.editable {
		return fmt.Sprintf("%d lines  read-only", len(m.lines))
	}
	return fmt.Sprintf("%d/%d", m.cursor+1, len(m.lines))
}

func (m *Model) renderLine(i, width int) string {
	s := styles.T().S()
	showCursor := m.IsFocused() && i == m.cursor

	gutter := fmt.Sprintf("%4d ", i+1)
	if showCursor {
		gutter = fmt.Sprintf("%4d>", i+1)
	}
	gutterStyle := s.Subtle
	if showCursor {
		gutterStyle = s.Title
	}

	raw := m.lines[i]
	if m.showWhitespace {
		raw = whitespaceMarks.Replace(raw)
	}
	text := render.TruncateAndPad(raw, max(width-gutterWidth, 0))

	var body string
	switch {
	case i == m.active:
		body = m.activeStyle().Render(text)
	case showCursor:
		body = s.Cursor.Render(text)
	default:
		body = renderTagged(text, raw)
	}
	return gutterStyle.Render(gutter) + body
}

func (m *Model) activeStyle() lipgloss.Style {
	if m.style == lrcsync.StyleOriginal {
		return styles.T().S().Original
	}
	return styles.T().S().Editable
}

// renderTagged colors the leading timestamp tags of a rendered line.
func renderTagged(rendered, raw string) string {
	s := styles.T().S()
	prefix := raw[:len(raw)-len(lrc.StripTags(raw))]
	if prefix == "" || !strings.HasPrefix(rendered, prefix) {
		return s.Base.Render(rendered)
	}
	return s.Tag.Render(prefix) + s.Base.Render(rendered[len(prefix):])
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}
