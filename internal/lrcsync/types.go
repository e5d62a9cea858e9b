// Package lrcsync keeps two lyric views in step with playback time and with each other.
package lrcsync

// Side identifies one of the two paired views.
type Side int

const (
	Original Side = iota // read-only copy of the file as loaded
	Editable             // the working copy
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Original {
		return Editable
	}
	return Original
}

func (s Side) String() string {
	if s == Original {
		return "original"
	}
	return "editable"
}

// Align selects where a target line lands in a view.
type Align int

const (
	AlignTop    Align = iota // user-scroll mirroring
	AlignCenter              // auto-follow
)

// Style is the highlight applied to the active line.
type Style int

const (
	StyleNone     Style = iota // clear any highlight
	StyleOriginal              // active line in the original view
	StyleEditable              // active line in the editable view
)

// View is the part of a text surface the synchronizer drives.
// Line-to-pixel mapping and clamping to the scrollable range are the view's business.
type View interface {
	// TopLine returns the first visible line.
	TopLine() int
	// LineCount returns the number of lines in the buffer.
	LineCount() int
	// ScrollTo moves the viewport so line sits at the top or center. It must not move the caret.
	ScrollTo(line int, align Align)
	// Highlight marks line with style; a negative line or StyleNone clears it.
	Highlight(line int, style Style)
}

// State is the per-document synchronization state.
type State struct {
	CurrentLine int  // last resolved active line, -1 = none
	Locked      bool // set while one view is being moved on behalf of the other
}

// NewState returns the state of a fresh document session.
func NewState() State {
	return State{CurrentLine: -1}
}

// Highlight is one view's part of a HighlightCommand.
type Highlight struct {
	Side  Side
	Style Style
}

// ScrollRequest asks the coupler to align both views on a line.
type ScrollRequest struct {
	Line  int
	Align Align
}

// HighlightCommand is emitted when the active line changes.
type HighlightCommand struct {
	Line       int
	Highlights []Highlight
	Scroll     ScrollRequest
}
