// Package picker is a popup list with a text preview of the selected item.
// It serves the search-results and snapshot dialogs.
package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/lrc"
	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/list"
	"github.com/llehouerou/lyricsync/internal/ui/popup"
	"github.com/llehouerou/lyricsync/internal/ui/render"
	"github.com/llehouerou/lyricsync/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Item is one row.
type Item struct {
	Label   string
	Detail  string // right-aligned, muted
	Preview string
	Value   any
}

// Choice binds a key to a named outcome, e.g. "o" to overwrite. A choice
// on "enter" replaces the plain selection.
type Choice struct {
	Key  string
	Name string
	Help string
}

// Result is sent when the picker closes. Choice is "" for enter.
type Result struct {
	Index    int
	Item     Item
	Choice   string
	Canceled bool
	Context  any
}

// ActionType implements action.Action.
func (Result) ActionType() string { return "picker.result" }

const source = "picker"

// Model is the picker popup.
type Model struct {
	title   string
	empty   string
	context any
	choices []Choice
	list    list.Model[Item]

	width, height int
}

// New creates a picker. Items may be set later.
func New(title string, items []Item, context any, choices ...Choice) *Model {
	m := &Model{
		title:   title,
		empty:   "nothing found",
		context: context,
		choices: choices,
		list:    list.New[Item](),
	}
	m.list.SetItems(items)
	return m
}

// SetEmptyText sets what is shown when there are no items.
func (m *Model) SetEmptyText(s string) {
	m.empty = s
}

// Selected returns the selected item.
func (m *Model) Selected() (Item, bool) {
	return m.list.Selected()
}

// SetSize implements popup.Popup. The list gets a third of the height.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.list.SetSize(width, m.listHeight())
}

func (m *Model) listHeight() int {
	// title, blank, list, separator, preview, blank, help
	return max(min(m.list.Len(), (m.height-4)/3), 1)
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.Type == tea.KeyEsc || key.String() == "q" {
			return m, action.Cmd(source, Result{Index: -1, Canceled: true, Context: m.context})
		}
		for _, c := range m.choices {
			if key.String() == c.Key {
				return m, m.result(c.Name)
			}
		}
	}

	if mouse, ok := msg.(tea.MouseMsg); ok {
		// list rows start under the title and a blank line
		mouse.Y -= 2
		msg = mouse
	}

	if res := m.list.Update(msg); res.Action == list.ActionEnter {
		return m, m.result("")
	}
	return m, nil
}

func (m *Model) result(choice string) tea.Cmd {
	item, ok := m.list.Selected()
	if !ok {
		return nil
	}
	return action.Cmd(source, Result{Index: m.list.SelectedIndex(), Item: item, Choice: choice, Context: m.context})
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	t := styles.T()
	s := t.S()

	var b strings.Builder
	b.WriteString(styles.Gradient(m.title, t.Primary, t.Secondary, true))
	b.WriteString("\n\n")

	if m.list.Len() == 0 {
		b.WriteString(s.Muted.Render(m.empty))
		b.WriteString("\n\n")
		b.WriteString(s.Subtle.Render("esc: close"))
		return b.String()
	}

	start, end := m.list.VisibleRange()
	sel := m.list.SelectedIndex()
	for i := start; i < end; i++ {
		item := m.list.Items()[i]
		detailW := min(len([]rune(item.Detail)), m.width/3)
		row := render.Row(
			render.Truncate(item.Label, max(m.width-detailW-1, 1)),
			render.Truncate(item.Detail, detailW),
			m.width,
		)
		if i == sel {
			b.WriteString(s.Cursor.Render(render.TruncateAndPad(row, m.width)))
		} else {
			b.WriteString(s.Base.Render(row))
		}
		b.WriteByte('\n')
	}
	for range m.listHeight() - (end - start) {
		b.WriteByte('\n')
	}

	b.WriteString(s.Subtle.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')
	b.WriteString(m.preview())
	b.WriteString("\n\n")
	b.WriteString(s.Subtle.Render(m.help()))
	return b.String()
}

func (m *Model) previewHeight() int {
	return max(m.height-m.listHeight()-6, 1)
}

func (m *Model) preview() string {
	s := styles.T().S()
	item, _ := m.list.Selected()
	lines := lrc.SplitLines(item.Preview)
	if len(lines) == 0 {
		return s.Muted.Render("(no preview)")
	}
	h := m.previewHeight()
	out := make([]string, 0, h)
	for i, l := range lines {
		if i == h {
			break
		}
		out = append(out, s.Muted.Render(render.Truncate(l, m.width)))
	}
	return strings.Join(out, "\n")
}

func (m *Model) help() string {
	var parts []string
	for _, c := range m.choices {
		parts = append(parts, c.Key+": "+c.Help)
	}
	if !m.hasChoice("enter") {
		parts = append([]string{"enter: select"}, parts...)
	}
	parts = append(parts, "esc: cancel")
	return strings.Join(parts, "  ")
}

func (m *Model) hasChoice(key string) bool {
	for _, c := range m.choices {
		if c.Key == key {
			return true
		}
	}
	return false
}
