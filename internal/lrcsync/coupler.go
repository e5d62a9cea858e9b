package lrcsync

// Coupler mirrors scroll positions between the original and editable views.
//
// Both trigger paths take the shared lock in State before moving a view. Scroll
// notifications the views emit while the lock is held are dropped, which is what
// keeps A-moves-B-moves-A from looping.
type Coupler struct {
	views [2]View
	state *State
}

// NewCoupler pairs the two views.
func NewCoupler(original, editable View, state *State) *Coupler {
	return &Coupler{
		views: [2]View{Original: original, Editable: editable},
		state: state,
	}
}

// Follow centers both views on line. It reports false if a coupling was already
// in progress and the request was dropped.
func (c *Coupler) Follow(line int) bool {
	if !c.acquire() {
		return false
	}
	defer c.release()

	c.views[Original].ScrollTo(line, AlignCenter)
	c.views[Editable].ScrollTo(line, AlignCenter)
	return true
}

// Mirror aligns the other view's top line with the top line of from.
// It reports false when ignored because a coupling was in progress.
func (c *Coupler) Mirror(from Side) bool {
	if !c.acquire() {
		return false
	}
	defer c.release()

	src, dst := c.views[from], c.views[from.Other()]
	line := src.TopLine()
	line = max(0, min(line, dst.LineCount()-1))
	dst.ScrollTo(line, AlignTop)
	return true
}

func (c *Coupler) acquire() bool {
	if c.state.Locked {
		return false
	}
	c.state.Locked = true
	return true
}

func (c *Coupler) release() {
	c.state.Locked = false
}
