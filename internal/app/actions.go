package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/lyricsync/internal/app/popupctl"
	"github.com/llehouerou/lyricsync/internal/state"
	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/browser"
	"github.com/llehouerou/lyricsync/internal/ui/confirm"
	"github.com/llehouerou/lyricsync/internal/ui/helpbindings"
	"github.com/llehouerou/lyricsync/internal/ui/picker"
	"github.com/llehouerou/lyricsync/internal/ui/textinput"
)

type (
	folderPrompt struct{}
	recentPick   struct{}

	// pendingOpen and pendingQuit wait for an answer about unsaved changes.
	pendingOpen struct{ path string }
	pendingQuit struct{}
)

// Unsaved changes options.
const (
	optionSave = iota
	optionDiscard
	optionCancel
)

// handleAction routes what a component asked for.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case browser.OpenFile:
		return m.openFile(a.Path)
	case helpbindings.Close:
		m.popups.Hide(popupctl.Help)
		return nil
	case textinput.Result:
		m.popups.Hide(popupctl.Input)
		return m.handleInput(a)
	case picker.Result:
		m.popups.Hide(popupctl.Picker)
		return m.handlePick(a)
	case confirm.Result:
		m.popups.Hide(popupctl.Confirm)
		return m.handleConfirm(a)
	}
	m.log.Debug().Str("source", msg.Source).Str("action", msg.Action.ActionType()).Msg("unhandled action")
	return nil
}

func (m *Model) handleInput(res textinput.Result) tea.Cmd {
	switch ctx := res.Context.(type) {
	case editPrompt:
		return m.finishEdit(ctx, res)
	case searchPrompt:
		return m.finishSearchPrompt(res)
	case folderPrompt:
		return m.finishFolderPrompt(res)
	}
	return nil
}

func (m *Model) handlePick(res picker.Result) tea.Cmd {
	switch res.Context.(type) {
	case candidatePick:
		return m.pickCandidate(res)
	case snapshotPick:
		return m.pickSnapshot(res)
	case recentPick:
		if path, ok := res.Item.Value.(string); ok && !res.Canceled {
			return m.openFile(path)
		}
	}
	return nil
}

// openFile loads an audio file, asking first when the editor has unsaved
// changes.
func (m *Model) openFile(path string) tea.Cmd {
	if m.dirty {
		return m.askUnsaved("Save and open", "Discard and open", pendingOpen{path: path})
	}
	return loadFileCmd(path)
}

func (m *Model) quit() tea.Cmd {
	if m.dirty {
		return m.askUnsaved("Save and quit", "Quit without saving", pendingQuit{})
	}
	m.Close()
	return tea.Quit
}

func (m *Model) askUnsaved(save, discard string, context any) tea.Cmd {
	c := confirm.NewOptions("Unsaved changes",
		filepath.Base(m.audio)+" has edits that are not saved.",
		[]string{save, discard, "Cancel"}, context)
	return m.popups.Show(popupctl.Confirm, c)
}

func (m *Model) handleConfirm(res confirm.Result) tea.Cmd {
	if !res.Confirmed {
		return nil
	}
	switch ctx := res.Context.(type) {
	case overwriteSnapshot:
		return m.overwriteWith(ctx.snap)
	case pendingOpen:
		if res.Option == optionSave {
			m.afterSave = ctx
			return m.save()
		}
		return m.resume(ctx)
	case pendingQuit:
		if res.Option == optionSave {
			m.afterSave = ctx
			return m.save()
		}
		return m.resume(ctx)
	}
	return nil
}

// resume carries out an open or quit that waited for the unsaved changes
// question.
func (m *Model) resume(pending any) tea.Cmd {
	switch ctx := pending.(type) {
	case pendingOpen:
		return loadFileCmd(ctx.path)
	case pendingQuit:
		m.Close()
		return tea.Quit
	}
	return nil
}

func (m *Model) promptFolder() tea.Cmd {
	in := textinput.New()
	in.Start("Open folder", m.browser.Root(), folderPrompt{})
	return m.popups.Show(popupctl.Input, in)
}

func (m *Model) finishFolderPrompt(res textinput.Result) tea.Cmd {
	if res.Canceled {
		return nil
	}
	dir := strings.TrimSpace(res.Text)
	if home, err := os.UserHomeDir(); err == nil && (dir == "~" || strings.HasPrefix(dir, "~/")) {
		dir = filepath.Join(home, dir[1:])
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	info, err := os.Stat(dir)
	if err != nil {
		return m.setError(fmt.Sprintf("Cannot open %s: %v", dir, err))
	}
	if !info.IsDir() {
		return m.setError(dir + " is not a folder")
	}
	m.setFocus(FocusBrowser)
	return m.startScan(dir)
}

func (m *Model) showRecentFiles(files []state.RecentFile) tea.Cmd {
	items := make([]picker.Item, len(files))
	for i, f := range files {
		items[i] = picker.Item{
			Label:   filepath.Base(f.Path),
			Detail:  humanize.Time(f.OpenedAt),
			Preview: fmt.Sprintf("%s\nline %d", filepath.Dir(f.Path), f.CursorLine+1),
			Value:   f.Path,
		}
	}
	p := picker.New("Recent files", items, recentPick{})
	p.SetEmptyText("No file opened yet")
	return m.popups.Show(popupctl.Picker, p)
}
