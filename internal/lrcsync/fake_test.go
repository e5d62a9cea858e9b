package lrcsync

// fakeView records what the coupler and session ask of it.
type fakeView struct {
	lines     int
	height    int
	top       int
	highlight int
	style     Style
	scrolls   []ScrollRequest

	// onScroll simulates the scroll-changed notification a real widget emits
	// whenever its position moves, including moves made programmatically.
	onScroll func()
}

func newFakeView(lines, height int) *fakeView {
	return &fakeView{lines: lines, height: height, highlight: -1}
}

func (v *fakeView) TopLine() int   { return v.top }
func (v *fakeView) LineCount() int { return v.lines }

func (v *fakeView) ScrollTo(line int, align Align) {
	v.scrolls = append(v.scrolls, ScrollRequest{Line: line, Align: align})
	top := line
	if align == AlignCenter {
		top = line - v.height/2
	}
	v.top = max(0, min(top, v.lines-v.height))
	if v.onScroll != nil {
		v.onScroll()
	}
}

func (v *fakeView) Highlight(line int, style Style) {
	v.highlight = line
	v.style = style
}

// userScroll moves the view as the mouse wheel would.
func (v *fakeView) userScroll(top int) {
	v.top = top
	if v.onScroll != nil {
		v.onScroll()
	}
}
