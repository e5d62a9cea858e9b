package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/popup"
)

// namedKeys maps the key names accepted by Press to their key types.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
}

// PopupHarness drives a popup the way popupctl does and keeps the commands
// it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness initializes p and keeps its init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.keep(p.Init())
	return h
}

func (h *PopupHarness) keep(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendMsg delivers msg to the popup.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	return h.keep(cmd)
}

// Press sends keys one by one: names such as "enter", "esc" or "down", or
// single characters. It returns the command of the last key.
func (h *PopupHarness) Press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		if t, ok := namedKeys[k]; ok {
			cmd = h.SendMsg(tea.KeyMsg{Type: t})
			continue
		}
		cmd = h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
	return cmd
}

// Type sends text as one run of characters.
func (h *PopupHarness) Type(text string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// View returns the popup's content.
func (h *PopupHarness) View() string {
	return h.popup.View()
}

// ViewContains reports whether the unstyled view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return ContainsLine(h.View(), substr)
}

// LastCommand returns the most recent command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ExecuteCmd runs cmd and returns its message; nil commands yield nil.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ActionOf runs cmd and returns the action it raised, failing the test when
// it is not an action.Msg from source carrying a T.
func ActionOf[T action.Action](t testing.TB, cmd tea.Cmd, source string) T {
	t.Helper()
	var zero T
	msg, ok := ExecuteCmd(cmd).(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg from %s", source)
		return zero
	}
	if msg.Source != source {
		t.Errorf("Source = %q, want %q", msg.Source, source)
	}
	a, ok := msg.Action.(T)
	if !ok {
		t.Fatalf("action = %T, want %T", msg.Action, zero)
	}
	return a
}
