// Package keymap defines the key bindings and resolves keys to actions.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Action is a user-triggerable action.
type Action string

const (
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionFocusNext   Action = "focus_next"
	ActionFocusPrev   Action = "focus_prev"
	ActionOpenFolder  Action = "open_folder"
	ActionRescan      Action = "rescan"
	ActionRecentFiles Action = "recent_files"
	ActionSave        Action = "save"
	ActionAutoFetch   Action = "auto_fetch"
	ActionSearch      Action = "search"
	ActionSnapshots   Action = "snapshots"

	ActionPlayPause   Action = "play_pause"
	ActionSeekBack    Action = "seek_back"
	ActionSeekForward Action = "seek_forward"
	ActionRestart     Action = "restart"

	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionRefollow  Action = "refollow"

	ActionStamp      Action = "stamp"
	ActionSeekToLine Action = "seek_to_line"
	ActionEditLine   Action = "edit_line"
	ActionLineBelow  Action = "line_below"
	ActionLineAbove  Action = "line_above"
	ActionDeleteLine Action = "delete_line"
	ActionCopyLine   Action = "copy_line"
	ActionWhitespace Action = "toggle_whitespace"

	ActionOpenFile Action = "open_file"
)

// Contexts in which bindings apply.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextLyrics   = "lyrics" // either lyric pane
	ContextEditor   = "editor" // the editable pane only
	ContextBrowser  = "browser"
)

// Binding is one action with its keys.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Short       string // footer label, empty to leave out of the footer
	Context     string
}

// All contains every binding, in help order.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", "help", ContextGlobal},
	{ActionFocusNext, []string{"tab"}, "Next panel", "", ContextGlobal},
	{ActionFocusPrev, []string{"shift+tab"}, "Previous panel", "", ContextGlobal},
	{ActionOpenFolder, []string{"f"}, "Choose folder", "", ContextGlobal},
	{ActionRescan, []string{"f5"}, "Rescan folder", "", ContextGlobal},
	{ActionRecentFiles, []string{"ctrl+o"}, "Recent files", "", ContextGlobal},
	{ActionSave, []string{"ctrl+s"}, "Save lyrics and snapshot", "save", ContextGlobal},
	{ActionAutoFetch, []string{"a"}, "Download lyrics automatically", "fetch", ContextGlobal},
	{ActionSearch, []string{"/"}, "Search lyrics manually", "search", ContextGlobal},
	{ActionSnapshots, []string{"R"}, "Restore from snapshot", "", ContextGlobal},

	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "play", ContextPlayback},
	{ActionSeekBack, []string{"left", ","}, "Seek back", "", ContextPlayback},
	{ActionSeekForward, []string{"right", "."}, "Seek forward", "", ContextPlayback},
	{ActionRestart, []string{"0"}, "Back to start", "", ContextPlayback},

	{ActionMoveUp, []string{"k", "up"}, "Line up", "", ContextLyrics},
	{ActionMoveDown, []string{"j", "down"}, "Line down", "", ContextLyrics},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "Page up", "", ContextLyrics},
	{ActionPageDown, []string{"pgdown", "ctrl+d"}, "Page down", "", ContextLyrics},
	{ActionJumpStart, []string{"g", "home"}, "First line", "", ContextLyrics},
	{ActionJumpEnd, []string{"G", "end"}, "Last line", "", ContextLyrics},
	{ActionRefollow, []string{"c"}, "Back to the playing line", "", ContextLyrics},
	{ActionWhitespace, []string{"w"}, "Show whitespace", "", ContextLyrics},

	{ActionStamp, []string{"d"}, "Stamp current time, next line", "stamp", ContextEditor},
	{ActionSeekToLine, []string{"enter"}, "Play from this line", "", ContextEditor},
	{ActionEditLine, []string{"e"}, "Edit line", "edit", ContextEditor},
	{ActionLineBelow, []string{"o"}, "New line below", "", ContextEditor},
	{ActionLineAbove, []string{"O"}, "New line above", "", ContextEditor},
	{ActionDeleteLine, []string{"x"}, "Delete line", "", ContextEditor},
	{ActionCopyLine, []string{"y"}, "Copy line", "", ContextEditor},

	{ActionOpenFile, []string{"enter", "l"}, "Open audio file", "open", ContextBrowser},
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var out []Binding
	for _, b := range All {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}

// HelpKeys returns key bindings for the footer of the given contexts.
func HelpKeys(contexts ...string) []key.Binding {
	var out []key.Binding
	for _, ctx := range contexts {
		for _, b := range ByContext(ctx) {
			if b.Short == "" {
				continue
			}
			out = append(out, key.NewBinding(
				key.WithKeys(b.Keys...),
				key.WithHelp(DisplayKey(b.Keys[len(b.Keys)-1]), b.Short),
			))
		}
	}
	return out
}

// DisplayKey renders a key name for help text.
func DisplayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "ctrl+c", "ctrl+s", "ctrl+o", "ctrl+u", "ctrl+d":
		return "^" + strings.ToUpper(k[len(k)-1:])
	}
	return k
}
