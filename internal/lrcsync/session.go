package lrcsync

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/lyricsync/internal/lrc"
)

// Event is an input to Session.Dispatch.
type Event interface {
	eventName() string
}

// TextChanged reports the full editable text after an edit or load.
type TextChanged struct {
	Text string
}

// TimeUpdate reports the playback position in seconds.
type TimeUpdate struct {
	Sec float64
}

// UserScrolled reports a user-driven scroll of one view.
type UserScrolled struct {
	Side Side
}

// Reset discards the index, e.g. when an audio file without lyrics is opened.
type Reset struct{}

func (TextChanged) eventName() string  { return "text_changed" }
func (TimeUpdate) eventName() string   { return "time_update" }
func (UserScrolled) eventName() string { return "user_scrolled" }
func (Reset) eventName() string        { return "reset" }

// Session owns the index, sync state and coupler for one document.
// It is not safe for concurrent use; call it from the UI event loop only.
type Session struct {
	index   *lrc.Index
	state   State
	sync    *Synchronizer
	coupler *Coupler
	views   [2]View

	lastTime float64
	haveTime bool

	log zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// NewSession binds a fresh session to the two views.
func NewSession(original, editable View, opts ...Option) *Session {
	s := &Session{
		index: lrc.NewIndex(),
		state: NewState(),
		views: [2]View{Original: original, Editable: editable},
		log:   zerolog.Nop(),
	}
	s.sync = NewSynchronizer(s.index, &s.state)
	s.coupler = NewCoupler(original, editable, &s.state)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies ev and returns the highlight command it produced, if any.
func (s *Session) Dispatch(ev Event) (HighlightCommand, bool) {
	switch ev := ev.(type) {
	case TextChanged:
		s.index.Rebuild(ev.Text)
		s.log.Debug().Int("entries", s.index.Len()).Msg("lrc index rebuilt")
		if !s.haveTime {
			return HighlightCommand{}, false
		}
		return s.resolve(s.lastTime)

	case TimeUpdate:
		s.lastTime = ev.Sec
		if !(s.lastTime > 0) { // negative or NaN
			s.lastTime = 0
		}
		s.haveTime = true
		return s.resolve(s.lastTime)

	case UserScrolled:
		if !s.coupler.Mirror(ev.Side) {
			s.log.Trace().Stringer("side", ev.Side).Msg("scroll coupling in progress, ignored")
		}

	case Reset:
		s.index.Reset()
		s.sync.Forget()
		s.state.Locked = false
		for _, v := range s.views {
			v.Highlight(-1, StyleNone)
		}
		s.log.Debug().Msg("lrc session reset")
	}
	return HighlightCommand{}, false
}

func (s *Session) resolve(sec float64) (HighlightCommand, bool) {
	cmd, ok := s.sync.OnTimeUpdate(sec)
	if !ok {
		return cmd, false
	}
	for _, h := range cmd.Highlights {
		s.views[h.Side].Highlight(cmd.Line, h.Style)
	}
	s.coupler.Follow(cmd.Scroll.Line)
	return cmd, true
}

// Index returns the current index.
func (s *Session) Index() *lrc.Index {
	return s.index
}

// CurrentLine returns the active line, -1 if none.
func (s *Session) CurrentLine() int {
	return s.state.CurrentLine
}

// Refollow centers both views on the active line again, e.g. after the
// user scrolled away and asked to return to the playing line.
func (s *Session) Refollow() {
	if s.state.CurrentLine >= 0 {
		s.coupler.Follow(s.state.CurrentLine)
	}
}
