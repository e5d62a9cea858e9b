// Package transport is the playback position source. It keeps time against
// the wall clock for a loaded track of known length; it does not decode or
// output audio.
package transport

import (
	"sync"
	"time"
)

// Interface is what the editor needs from a transport.
type Interface interface {
	Load(length time.Duration)
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	Seek(delta time.Duration)
	SeekTo(pos time.Duration)
}

var _ Interface = (*Clock)(nil)

// Clock is a transport driven by the wall clock.
type Clock struct {
	mu      sync.Mutex
	state   State
	length  time.Duration // 0 when unknown: no upper bound
	base    time.Duration // position when started or last paused
	started time.Time
	now     func() time.Time
}

// New returns a stopped clock.
func New() *Clock {
	return &Clock{now: time.Now}
}

// Load prepares a track of the given length, paused at 0.
func (c *Clock) Load(length time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Paused
	c.length = max(length, 0)
	c.base = 0
}

// Stop unloads the track.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Stopped
	c.length = 0
	c.base = 0
}

// Pause freezes the position.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Playing {
		return
	}
	c.base = c.positionLocked()
	c.state = Paused
}

// Resume continues from the frozen position. At the end of the track it
// restarts from the beginning.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Paused {
		return
	}
	if c.length > 0 && c.base >= c.length {
		c.base = 0
	}
	c.started = c.now()
	c.state = Playing
}

// Toggle toggles between playing and paused states.
func (c *Clock) Toggle() {
	switch c.State() {
	case Playing:
		c.Pause()
	case Paused:
		c.Resume()
	case Stopped:
	}
}

// State returns the current state. A playing clock that ran past the end of
// the track reports Paused.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()
	return c.state
}

// Position returns the current playback position.
func (c *Clock) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()
	return c.positionLocked()
}

// Duration returns the loaded track length, 0 if unknown.
func (c *Clock) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.length
}

// Seek moves the position by delta.
func (c *Clock) Seek(delta time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Stopped {
		return
	}
	c.seekLocked(c.positionLocked() + delta)
}

// SeekTo moves to an absolute position.
func (c *Clock) SeekTo(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Stopped {
		return
	}
	c.seekLocked(pos)
}

func (c *Clock) seekLocked(pos time.Duration) {
	c.base = c.clamp(pos)
	c.started = c.now()
}

func (c *Clock) positionLocked() time.Duration {
	if c.state != Playing {
		return c.base
	}
	return c.clamp(c.base + c.now().Sub(c.started))
}

// settleLocked pauses a clock that reached the end of the track.
func (c *Clock) settleLocked() {
	if c.state == Playing && c.length > 0 && c.positionLocked() >= c.length {
		c.base = c.length
		c.state = Paused
	}
}

func (c *Clock) clamp(pos time.Duration) time.Duration {
	pos = max(pos, 0)
	if c.length > 0 {
		pos = min(pos, c.length)
	}
	return pos
}
