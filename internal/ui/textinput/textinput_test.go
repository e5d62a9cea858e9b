package textinput

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/ui/testutil"
)

func newTestInput(title, initial string, context any) (*Model, *testutil.PopupHarness) {
	m := New()
	m.Start(title, initial, context)
	m.SetSize(60, 10)
	return m, testutil.NewPopupHarness(m)
}

func result(t *testing.T, cmd tea.Cmd) Result {
	t.Helper()
	return testutil.ActionOf[Result](t, cmd, "textinput")
}

func TestTextInput_Typing(t *testing.T) {
	_, h := newTestInput("Search", "", nil)

	h.Type("h")
	h.Type("i")
	h.Type(" ")
	h.Type("夜")

	res := result(t, h.Press("enter"))
	if res.Text != "hi 夜" {
		t.Errorf("Text = %q, want %q", res.Text, "hi 夜")
	}
	if res.Canceled {
		t.Error("Canceled = true")
	}
}

func TestTextInput_InitialTextAndBackspace(t *testing.T) {
	m, h := newTestInput("Edit line", "[00:01.00]Hello", nil)
	if m.Value() != "[00:01.00]Hello" {
		t.Fatalf("Value = %q", m.Value())
	}

	h.Press("backspace")
	h.Type("!")

	if res := result(t, h.Press("enter")); res.Text != "[00:01.00]Hell!" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestTextInput_Cancel(t *testing.T) {
	_, h := newTestInput("Search", "query", 42)

	res := result(t, h.Press("esc"))
	if !res.Canceled {
		t.Error("Canceled = false")
	}
	if res.Context != 42 {
		t.Errorf("Context = %v, want 42", res.Context)
	}
}

func TestTextInput_ContextPassedThrough(t *testing.T) {
	type editLine struct{ line int }
	_, h := newTestInput("Edit", "x", editLine{line: 7})

	res := result(t, h.Press("enter"))
	if got, ok := res.Context.(editLine); !ok || got.line != 7 {
		t.Errorf("Context = %#v", res.Context)
	}
}

func TestTextInput_View(t *testing.T) {
	m, h := newTestInput("Manual search", "artist title", nil)
	m.SetHint("enter: search")

	for _, want := range []string{"Manual search", "artist title", "enter: search"} {
		if !h.ViewContains(want) {
			t.Errorf("view missing %q:\n%s", want, testutil.StripANSI(h.View()))
		}
	}

	m.SetSize(0, 0)
	if h.View() != "" {
		t.Error("zero-size view should be empty")
	}
}
