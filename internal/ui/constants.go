// Package ui holds layout constants and the state shared by panel components.
package ui

const (
	// ScrollMargin is the number of lines kept visible above and below a cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a panel border.
	BorderHeight = 2

	// BorderWidth is the horizontal space consumed by a panel border.
	BorderWidth = 2

	// HeaderHeight is the panel title plus its separator.
	HeaderHeight = 2

	// PanelOverhead is what a panel spends on chrome:
	// listHeight = panelHeight - PanelOverhead.
	PanelOverhead = BorderHeight + HeaderHeight

	// MinProgressBarWidth is the narrowest bar worth drawing.
	MinProgressBarWidth = 5

	// WheelStep is how many lines one mouse wheel notch scrolls.
	WheelStep = 3
)
