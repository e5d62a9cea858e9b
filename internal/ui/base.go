package ui

// Base holds the size and focus state shared by panel components.
// Embed it in a component model:
//
//	type Model struct {
//	    ui.Base
//	    lines []string
//	}
type Base struct {
	width, height int
	focused       bool
}

// SetFocused sets whether the component is focused.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns whether the component is focused.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize sets the component dimensions, border included.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// InnerWidth returns the width left inside a panel border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderWidth, 0)
}

// ListHeight returns the rows left for list content after a panel's
// border, header and separator.
func (b Base) ListHeight() int {
	return max(b.height-PanelOverhead, 0)
}
