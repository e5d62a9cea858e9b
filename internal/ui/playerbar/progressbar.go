package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lyricsync/internal/icons"
	"github.com/llehouerou/lyricsync/internal/ui"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderProgressBar renders "▶ 01:23 ━━━━──── 04:56" in at most width
// columns. The filled part fades from the primary to the secondary color.
// Below a usable bar width only the status and times are shown.
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := icons.Transport(playing)
	pos, dur := FormatDuration(position), FormatDuration(duration)

	barWidth := width - lipgloss.Width(status) - len(pos) - len(dur) - 3
	if barWidth < ui.MinProgressBarWidth {
		return status + " " + pos + " / " + dur
	}

	var ratio float64
	if duration > 0 {
		ratio = min(float64(position)/float64(duration), 1)
	}
	filled := int(float64(barWidth) * ratio)

	t := styles.T()
	colors := styles.Blend(barWidth, t.Primary, t.Secondary)

	var b strings.Builder
	for i := range filled {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(filledBlock))
	}
	b.WriteString(t.S().Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled)))

	return status + " " + pos + " " + b.String() + " " + dur
}
