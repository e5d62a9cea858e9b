package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/app/popupctl"
	"github.com/llehouerou/lyricsync/internal/lrcfile"
	"github.com/llehouerou/lyricsync/internal/lyrics"
	"github.com/llehouerou/lyricsync/internal/snapshot"
	"github.com/llehouerou/lyricsync/internal/ui/confirm"
	"github.com/llehouerou/lyricsync/internal/ui/picker"
	"github.com/llehouerou/lyricsync/internal/ui/playerbar"
	"github.com/llehouerou/lyricsync/internal/ui/textinput"
)

// Popup contexts.
type (
	searchPrompt      struct{}
	candidatePick     struct{}
	snapshotPick      struct{}
	overwriteSnapshot struct{ snap snapshot.Snapshot }
)

// Snapshot picker choices.
const (
	choiceLoad      = "load"
	choiceOverwrite = "overwrite"
)

func (m *Model) save() tea.Cmd {
	if m.audio == "" {
		return m.setError("Open an audio file first")
	}
	return saveCmd(m.snapshots, m.audio, m.editable.Text(), m.editable.CursorOffset())
}

func (m *Model) autoFetch() tea.Cmd {
	if m.audio == "" {
		return m.setError("Open an audio file first")
	}
	if m.downloader == nil {
		return m.setError("No lyrics provider configured")
	}
	status := m.setStatus("Downloading lyrics for " + m.displayTitle() + "...")
	return tea.Batch(status, autoFetchCmd(m.downloader, m.snapshots, m.audio, m.meta))
}

func (m *Model) promptSearch() tea.Cmd {
	if m.audio == "" {
		return m.setError("Open an audio file first")
	}
	if m.downloader == nil {
		return m.setError("No lyrics provider configured")
	}
	in := textinput.New()
	in.Start("Search lyrics", m.meta.Title, searchPrompt{})
	return m.popups.Show(popupctl.Input, in)
}

func (m *Model) finishSearchPrompt(res textinput.Result) tea.Cmd {
	if res.Canceled || res.Text == "" {
		return nil
	}
	status := m.setStatus(fmt.Sprintf("Searching %q...", res.Text))
	return tea.Batch(status, searchCmd(m.downloader, m.audio, res.Text, m.meta.Duration))
}

func (m *Model) showCandidates(query string, cands []lyrics.Candidate) tea.Cmd {
	items := make([]picker.Item, len(cands))
	for i, c := range cands {
		items[i] = picker.Item{
			Label:   c.Title + " - " + c.Artist,
			Detail:  playerbar.FormatDuration(c.Duration) + "  " + c.Provider,
			Preview: c.Lyrics,
			Value:   c,
		}
	}
	p := picker.New(fmt.Sprintf("Results for %q", query), items, candidatePick{})
	p.SetEmptyText("No result with lyrics")
	return m.popups.Show(popupctl.Picker, p)
}

// pickCandidate applies a manually chosen result, marking the header as a
// manual match.
func (m *Model) pickCandidate(res picker.Result) tea.Cmd {
	c, ok := res.Item.Value.(lyrics.Candidate)
	if res.Canceled || !ok {
		return nil
	}
	result := lyrics.Compose(m.meta, c, m.meta.ManualMatchTag())
	return applyManualCmd(m.snapshots, m.audio, result)
}

func (m *Model) listSnapshots() tea.Cmd {
	if m.audio == "" {
		return m.setError("Open an audio file first")
	}
	if m.snapshots == nil {
		return m.setError("Snapshots are disabled")
	}
	return listSnapshotsCmd(m.snapshots, m.audio)
}

func (m *Model) showSnapshots(list []snapshot.Snapshot) tea.Cmd {
	items := make([]picker.Item, len(list))
	for i, s := range list {
		items[i] = picker.Item{
			Label:   s.Label(),
			Detail:  s.Size(),
			Preview: s.Content,
			Value:   s,
		}
	}
	title := "Snapshots of " + filepath.Base(lrcfile.PathFor(m.audio))
	p := picker.New(title, items, snapshotPick{},
		picker.Choice{Key: "enter", Name: choiceLoad, Help: "load in editor"},
		picker.Choice{Key: "o", Name: choiceOverwrite, Help: "overwrite file"},
	)
	p.SetEmptyText("No snapshot yet, save to create one")
	return m.popups.Show(popupctl.Picker, p)
}

// pickSnapshot loads a snapshot into the editor. Overwriting the .lrc file
// with it is confirmed first.
func (m *Model) pickSnapshot(res picker.Result) tea.Cmd {
	s, ok := res.Item.Value.(snapshot.Snapshot)
	if res.Canceled || !ok {
		return nil
	}
	if res.Choice == choiceOverwrite {
		c := confirm.New("Overwrite file",
			fmt.Sprintf("Replace %s with the snapshot of %s?", filepath.Base(lrcfile.PathFor(m.audio)), s.Timestamp),
			overwriteSnapshot{snap: s})
		return m.popups.Show(popupctl.Confirm, c)
	}
	m.restore(s)
	return m.setStatus("Loaded snapshot " + s.Timestamp + " (not saved)")
}

// overwriteWith restores s and writes it, which records a new snapshot.
func (m *Model) overwriteWith(s snapshot.Snapshot) tea.Cmd {
	m.restore(s)
	return saveCmd(m.snapshots, m.audio, s.Content, s.CursorPos)
}

func (m *Model) restore(s snapshot.Snapshot) {
	m.editable.SetText(s.Content)
	m.editable.SetCursorOffset(s.CursorPos)
	m.textChanged()
	m.log.Info().Str("file", m.audio).Str("snapshot", s.ID).Msg("snapshot restored")
}
