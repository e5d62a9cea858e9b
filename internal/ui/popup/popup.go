package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

// Size is a popup's share of the screen. Zero percentages fit the content.
type Size struct {
	WidthPct  int
	HeightPct int
}

var (
	SizeLarge = Size{WidthPct: 80, HeightPct: 75} // search results, snapshots
	SizeAuto  = Size{}                            // prompts, help
)

// padding(1, 2) plus the border
const (
	chromeWidth  = 6
	chromeHeight = 4
)

// ContentSize returns the space a popup of the given size leaves for content.
func ContentSize(screenW, screenH int, size Size) (width, height int) {
	if size.WidthPct == 0 {
		return max(screenW-chromeWidth-4, 0), max(screenH-chromeHeight-4, 0)
	}
	return max(screenW*size.WidthPct/100-chromeWidth, 0), max(screenH*size.HeightPct/100-chromeHeight, 0)
}

// RenderBordered wraps content in a rounded border and centers it on screen.
func RenderBordered(content string, screenW, screenH int, size Size) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(1, 2)

	if size.WidthPct > 0 {
		w, h := ContentSize(screenW, screenH, size)
		box = box.Width(w + chromeWidth - 2).Height(h + chromeHeight - 2)
	} else {
		box = box.MaxWidth(screenW).MaxHeight(screenH)
	}
	return Center(box.Render(content), screenW, screenH)
}

// Center places content in the middle of a screenW x screenH area.
// Only the lines of content are returned, shifted by blank lines and spaces.
func Center(content string, screenW, screenH int) string {
	lines := strings.Split(content, "\n")
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, ansi.StringWidth(l))
	}

	top := max((screenH-len(lines))/2, 0)
	left := strings.Repeat(" ", max((screenW-boxW)/2, 0))

	out := make([]string, 0, top+len(lines))
	for range top {
		out = append(out, "")
	}
	for _, l := range lines {
		out = append(out, left+l)
	}
	return strings.Join(out, "\n")
}

// Compose draws overlay on top of base. Each overlay line replaces the base
// columns between its first and last visible character; blank overlay lines
// leave the base untouched.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		start := len(plain) - len(trimmed)
		end := start + ansi.StringWidth(strings.TrimRight(trimmed, " "))

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		left := ansi.Cut(under, 0, start)
		if w := ansi.StringWidth(left); w < start {
			// a wide rune straddled the edge
			left += strings.Repeat(" ", start-w)
		}
		right := ""
		if end < width {
			right = ansi.Cut(under, end, width)
			if w := ansi.StringWidth(right); w < width-end {
				right = strings.Repeat(" ", width-end-w) + right
			}
		}
		baseLines[i] = left + ansi.Cut(line, start, end) + right
	}

	return strings.Join(baseLines, "\n")
}
