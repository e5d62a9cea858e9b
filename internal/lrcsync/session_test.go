package lrcsync

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() (*Session, *fakeView, *fakeView) {
	orig, edit := newFakeView(50, 10), newFakeView(50, 10)
	return NewSession(orig, edit), orig, edit
}

func TestSession_TimeUpdateHighlightsAndFollows(t *testing.T) {
	s, orig, edit := newTestSession()
	s.Dispatch(TextChanged{Text: "[00:01]a\n[00:02]b\n[00:03]c"})

	cmd, ok := s.Dispatch(TimeUpdate{Sec: 2.2})
	require.True(t, ok)
	assert.Equal(t, 1, cmd.Line)

	assert.Equal(t, 1, orig.highlight)
	assert.Equal(t, StyleOriginal, orig.style)
	assert.Equal(t, 1, edit.highlight)
	assert.Equal(t, StyleEditable, edit.style)
	assert.Equal(t, []ScrollRequest{{Line: 1, Align: AlignCenter}}, orig.scrolls)
	assert.Equal(t, []ScrollRequest{{Line: 1, Align: AlignCenter}}, edit.scrolls)
}

func TestSession_RepeatedTimeIsIdempotent(t *testing.T) {
	s, orig, _ := newTestSession()
	s.Dispatch(TextChanged{Text: "[00:01]a\n[00:02]b"})

	emitted := 0
	for range 10 {
		if _, ok := s.Dispatch(TimeUpdate{Sec: 1.5}); ok {
			emitted++
		}
	}
	assert.Equal(t, 1, emitted)
	assert.Len(t, orig.scrolls, 1)
}

func TestSession_TextChangedReResolvesAgainstLastTime(t *testing.T) {
	s, _, edit := newTestSession()
	s.Dispatch(TextChanged{Text: "[00:01]a\n[00:02]b"})
	_, ok := s.Dispatch(TimeUpdate{Sec: 2.5})
	require.True(t, ok)
	require.Equal(t, 1, s.CurrentLine())

	// a line inserted above shifts the active line down by one
	cmd, ok := s.Dispatch(TextChanged{Text: "new\n[00:01]a\n[00:02]b"})
	require.True(t, ok)
	assert.Equal(t, 2, cmd.Line)
	assert.Equal(t, 2, edit.highlight)
}

func TestSession_TextChangedBeforeAnyTime(t *testing.T) {
	s, orig, _ := newTestSession()
	_, ok := s.Dispatch(TextChanged{Text: "[00:00]a"})
	assert.False(t, ok)
	assert.Empty(t, orig.scrolls)
	assert.Equal(t, 1, s.Index().Len())
}

func TestSession_DeletingAllTagsStopsHighlighting(t *testing.T) {
	s, _, _ := newTestSession()
	s.Dispatch(TextChanged{Text: "[00:01]a\n[00:02]b"})
	_, ok := s.Dispatch(TimeUpdate{Sec: 1.5})
	require.True(t, ok)

	_, ok = s.Dispatch(TextChanged{Text: "a\nb"})
	assert.False(t, ok)
	assert.Equal(t, 0, s.Index().Len())

	_, ok = s.Dispatch(TimeUpdate{Sec: 1.6})
	assert.False(t, ok)
}

func TestSession_UserScrollMirrors(t *testing.T) {
	s, orig, edit := newTestSession()
	orig.onScroll = func() { s.Dispatch(UserScrolled{Side: Original}) }
	edit.onScroll = func() { s.Dispatch(UserScrolled{Side: Editable}) }

	orig.userScroll(12)
	assert.Equal(t, 12, edit.top)
	assert.Equal(t, []ScrollRequest{{Line: 12, Align: AlignTop}}, edit.scrolls)
	assert.Empty(t, orig.scrolls)
}

func TestSession_FollowDuringPlaybackDoesNotMirror(t *testing.T) {
	s, orig, edit := newTestSession()
	orig.onScroll = func() { s.Dispatch(UserScrolled{Side: Original}) }
	edit.onScroll = func() { s.Dispatch(UserScrolled{Side: Editable}) }

	s.Dispatch(TextChanged{Text: "[00:01]a\n[00:02]b\n[00:03]c"})
	s.Dispatch(TimeUpdate{Sec: 3})

	assert.Len(t, orig.scrolls, 1)
	assert.Len(t, edit.scrolls, 1)
	assert.Equal(t, AlignCenter, orig.scrolls[0].Align)
}

func TestSession_Reset(t *testing.T) {
	s, orig, edit := newTestSession()
	s.Dispatch(TextChanged{Text: "[00:01]a"})
	s.Dispatch(TimeUpdate{Sec: 1})
	require.Equal(t, 0, s.CurrentLine())

	s.Dispatch(Reset{})
	assert.Equal(t, 0, s.Index().Len())
	assert.Equal(t, -1, s.CurrentLine())
	assert.Equal(t, -1, orig.highlight)
	assert.Equal(t, StyleNone, edit.style)

	_, ok := s.Dispatch(TimeUpdate{Sec: 1})
	assert.False(t, ok)
}

func TestSession_NegativeTimeClamped(t *testing.T) {
	s, _, _ := newTestSession()
	s.Dispatch(TextChanged{Text: "[00:00]start"})
	cmd, ok := s.Dispatch(TimeUpdate{Sec: -2})
	require.True(t, ok)
	assert.Equal(t, 0, cmd.Line)
	assert.Equal(t, 0.0, s.lastTime)
}

func TestSession_NaNTimeTreatedAsStart(t *testing.T) {
	s, _, _ := newTestSession()
	s.Dispatch(TextChanged{Text: "[00:00]start\n[00:05]middle\n[00:09]end"})
	cmd, ok := s.Dispatch(TimeUpdate{Sec: math.NaN()})
	require.True(t, ok)
	assert.Equal(t, 0, cmd.Line)
	assert.Equal(t, 0.0, s.lastTime)
}

func TestSession_Refollow(t *testing.T) {
	s, orig, _ := newTestSession()
	s.Refollow()
	assert.Empty(t, orig.scrolls)

	s.Dispatch(TextChanged{Text: "[00:01]a\n[00:02]b"})
	s.Dispatch(TimeUpdate{Sec: 2})
	s.Refollow()
	assert.Len(t, orig.scrolls, 2)
	assert.Equal(t, ScrollRequest{Line: 1, Align: AlignCenter}, orig.scrolls[1])
}
