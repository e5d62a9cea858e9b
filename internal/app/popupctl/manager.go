// Package popupctl keeps track of the open popups and draws them over the
// main view.
package popupctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/ui/popup"
)

// Kind identifies a popup slot.
type Kind int

const (
	None Kind = iota
	Picker
	Input
	Confirm
	Help
)

// Priority lists the slots from the one receiving input first.
var Priority = []Kind{Help, Confirm, Input, Picker}

// bottom to top
var renderOrder = []Kind{Picker, Input, Confirm, Help}

// Manager holds at most one popup per kind.
type Manager struct {
	popups map[Kind]popup.Popup
	sizes  map[Kind]popup.Size
	width  int
	height int
}

// New creates an empty manager.
func New() *Manager {
	return &Manager{
		popups: make(map[Kind]popup.Popup),
		sizes: map[Kind]popup.Size{
			Picker: popup.SizeLarge,
			Help:   {WidthPct: 60, HeightPct: 80},
		},
	}
}

// SetSize updates the screen size and resizes open popups.
func (p *Manager) SetSize(width, height int) {
	p.width, p.height = width, height
	for k, pp := range p.popups {
		pp.SetSize(popup.ContentSize(width, height, p.sizes[k]))
	}
}

// Show opens pp in slot k, replacing what was there.
func (p *Manager) Show(k Kind, pp popup.Popup) tea.Cmd {
	pp.SetSize(popup.ContentSize(p.width, p.height, p.sizes[k]))
	p.popups[k] = pp
	return pp.Init()
}

// Hide closes slot k.
func (p *Manager) Hide(k Kind) {
	delete(p.popups, k)
}

// Visible reports whether slot k holds a popup.
func (p *Manager) Visible(k Kind) bool {
	return p.popups[k] != nil
}

// Active returns the slot that receives input, or None.
func (p *Manager) Active() Kind {
	for _, k := range Priority {
		if p.Visible(k) {
			return k
		}
	}
	return None
}

// Update forwards msg to the active popup. It reports false when no popup
// is open.
func (p *Manager) Update(msg tea.Msg) (bool, tea.Cmd) {
	k := p.Active()
	if k == None {
		return false, nil
	}
	next, cmd := p.popups[k].Update(msg)
	p.popups[k] = next
	return true, cmd
}

// Render draws the open popups over base.
func (p *Manager) Render(base string) string {
	for _, k := range renderOrder {
		pp := p.popups[k]
		if pp == nil {
			continue
		}
		box := popup.RenderBordered(pp.View(), p.width, p.height, p.sizes[k])
		base = popup.Compose(base, box, p.width)
	}
	return base
}
