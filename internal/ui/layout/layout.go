// Package layout provides pure functions for panel sizes.
package layout

// NarrowThreshold is the terminal width below which the file browser is only
// shown while it has focus.
const NarrowThreshold = 100

// browserWidthDivisor gives the file browser 1/n of the screen width.
const browserWidthDivisor = 4

// Columns are the widths of the three panels, left to right.
type Columns struct {
	Browser  int
	Original int
	Editable int
}

// IsNarrowMode reports whether width is below NarrowThreshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// BrowserVisible reports whether the file browser gets a column.
func BrowserVisible(width int, browserFocused bool) bool {
	return browserFocused || !IsNarrowMode(width)
}

// Split divides width between the panels. The lyric panes share what the
// browser leaves, the editable one taking the odd column.
func Split(width int, browserVisible bool) Columns {
	var c Columns
	if browserVisible {
		c.Browser = width / browserWidthDivisor
		if IsNarrowMode(width) {
			c.Browser = width / 2
		}
	}
	rest := width - c.Browser
	c.Original = rest / 2
	c.Editable = rest - c.Original
	return c
}

// PanesHeight is the height left to the panels above the player bar and the
// footer.
func PanesHeight(windowHeight, playerBarHeight, footerHeight int) int {
	return max(windowHeight-playerBarHeight-footerHeight, 0)
}
