package lrcsync

import "github.com/llehouerou/lyricsync/internal/lrc"

// Synchronizer resolves the active lyric line for a playback time.
type Synchronizer struct {
	index *lrc.Index
	state *State
}

// NewSynchronizer creates a synchronizer reading index and updating state.
func NewSynchronizer(index *lrc.Index, state *State) *Synchronizer {
	return &Synchronizer{index: index, state: state}
}

// OnTimeUpdate resolves sec against the index.
// It reports false when nothing is active yet or the active line did not change,
// so repeated identical timestamps are harmless.
func (s *Synchronizer) OnTimeUpdate(sec float64) (HighlightCommand, bool) {
	line, ok := s.index.Lookup(sec)
	if !ok || line == s.state.CurrentLine {
		return HighlightCommand{}, false
	}
	s.state.CurrentLine = line

	return HighlightCommand{
		Line: line,
		Highlights: []Highlight{
			{Side: Original, Style: StyleOriginal},
			{Side: Editable, Style: StyleEditable},
		},
		Scroll: ScrollRequest{Line: line, Align: AlignCenter},
	}, true
}

// CurrentLine returns the last resolved line, -1 if none.
func (s *Synchronizer) CurrentLine() int {
	return s.state.CurrentLine
}

// Forget drops the last resolution so the next update emits again.
func (s *Synchronizer) Forget() {
	s.state.CurrentLine = -1
}
