// Package playerbar renders the transport bar under the lyric panes.
package playerbar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/lyricsync/internal/transport"
	"github.com/llehouerou/lyricsync/internal/ui/render"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

// Height is the bar height including its border.
const Height = 3

// State holds everything needed to render the bar.
type State struct {
	Transport transport.State
	Title     string
	Artist    string
	File      string // shown when the title is unknown
	Position  time.Duration
	Duration  time.Duration
	Line      int // active lyric line, -1 if none
}

// NewState reads the transport into a State.
func NewState(t transport.Interface) State {
	return State{
		Transport: t.State(),
		Position:  t.Position(),
		Duration:  t.Duration(),
		Line:      -1,
	}
}

// Render returns the bordered bar for the given total width.
func Render(s State, width int) string {
	inner := width - 4 // border and padding
	if inner <= 0 {
		return ""
	}
	st := styles.T().S()

	name := s.Title
	if name == "" {
		name = s.File
	}
	if name == "" {
		name = "no file"
	}
	if s.Artist != "" {
		name += " · " + s.Artist
	}
	label := render.Truncate(name, min(runewidth.StringWidth(name), inner/3))

	right := ""
	if s.Line >= 0 {
		right = fmt.Sprintf("line %d", s.Line+1)
	}

	barWidth := inner - lipgloss.Width(label) - 2 - lipgloss.Width(right) - 1
	bar := RenderProgressBar(s.Position, s.Duration, barWidth, s.Transport == transport.Playing)
	content := render.Row(st.Title.Render(label)+"  "+bar, st.Subtle.Render(right), inner)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(0, 1).
		Width(inner + 2).
		MaxHeight(Height).
		Render(content)
}

// FormatDuration renders d as mm:ss.
func FormatDuration(d time.Duration) string {
	s := max(int(d/time.Second), 0)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
