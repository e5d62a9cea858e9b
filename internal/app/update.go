package app

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lyricsync/internal/errmsg"
	"github.com/llehouerou/lyricsync/internal/lrc"
	"github.com/llehouerou/lyricsync/internal/lrcfile"
	"github.com/llehouerou/lyricsync/internal/lrcsync"
	"github.com/llehouerou/lyricsync/internal/lyrics"
	"github.com/llehouerou/lyricsync/internal/mpris"
	"github.com/llehouerou/lyricsync/internal/notify"
	"github.com/llehouerou/lyricsync/internal/snapshot"
	"github.com/llehouerou/lyricsync/internal/ui/action"
)

// Update handles messages and returns the updated model and commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.syncPlayback()
		return m, TickCmd()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case action.Msg:
		return m, m.handleAction(msg)

	case ScanDoneMsg:
		return m, m.handleScanDone(msg)

	case FileLoadedMsg:
		return m, m.handleFileLoaded(msg)

	case DownloadedMsg:
		return m, m.handleDownloaded(msg)

	case SearchResultMsg:
		return m, m.handleSearchResult(msg)

	case SavedMsg:
		return m, m.handleSaved(msg)

	case SnapshotsMsg:
		return m, m.handleSnapshots(msg)

	case RecentFilesMsg:
		return m, m.handleRecentFiles(msg)

	case CopiedMsg:
		if msg.Err != nil {
			return m, m.setError(errmsg.Format(errmsg.OpClipboardCopy, msg.Err))
		}
		return m, m.setStatus("Copied line")

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil
	}
	return m, nil
}

// syncPlayback feeds the clock position to the session. The session only
// acts when the active line changes.
func (m *Model) syncPlayback() {
	if m.audio == "" {
		return
	}
	m.session.Dispatch(lrcsync.TimeUpdate{Sec: m.clock.Position().Seconds()})
}

func (m *Model) handleScanDone(msg ScanDoneMsg) tea.Cmd {
	if msg.Root != m.browser.Root() {
		return nil
	}
	if msg.Err != nil {
		m.browser.SetFiles(msg.Root, nil)
		m.log.Error().Err(msg.Err).Str("root", msg.Root).Msg("scan failed")
		return m.setError(errmsg.FormatWith(errmsg.OpFolderScan, msg.Root, msg.Err))
	}
	m.browser.SetFiles(msg.Root, msg.Files)
	m.browser.SetCurrent(m.audio)
	m.log.Info().Str("root", msg.Root).Int("files", len(msg.Files)).Msg("folder scanned")
	m.saveSession()
	return m.setStatus(fmt.Sprintf("%d audio files", len(msg.Files)))
}

// handleFileLoaded shows the file's lyrics in both panes, or clears them when
// there is no .lrc file yet.
func (m *Model) handleFileLoaded(msg FileLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Str("file", msg.Path).Msg("lyrics not loaded")
		return m.setError(errmsg.FormatWith(errmsg.OpLRCLoad, filepath.Base(msg.Path), msg.Err))
	}

	m.saveCursor()
	m.audio = msg.Path
	m.meta = msg.Meta
	m.dirty = false
	m.clock.Load(msg.Meta.Duration)
	if m.media != nil {
		m.media.SetTrack(mpris.Track{
			Path:     msg.Path,
			Title:    m.displayTitle(),
			Artist:   msg.Meta.Artist,
			Duration: msg.Meta.Duration,
		})
	}

	embedded := !msg.Found && msg.Meta.Embedded != ""
	switch {
	case msg.Found:
		m.showText(msg.Text)
	case embedded:
		m.showText(msg.Meta.Embedded)
		m.dirty = true
	default:
		m.original.SetText("")
		m.editable.SetText("")
		m.session.Dispatch(lrcsync.Reset{})
	}

	if err := m.state.TouchFile(msg.Path); err != nil {
		m.log.Warn().Err(err).Str("file", msg.Path).Msg("recent files not updated")
	}
	line, err := m.state.Cursor(msg.Path)
	if err != nil {
		m.log.Warn().Err(err).Str("file", msg.Path).Msg("cursor not restored")
	}
	m.editable.SetCursor(line)
	m.original.SetCursor(line)

	m.browser.SetCurrent(msg.Path)
	m.saveSession()
	m.log.Info().Str("file", msg.Path).Bool("lrc", msg.Found).Msg("audio opened")

	if embedded {
		return m.setStatus("Loaded lyrics embedded in the audio file, save to write " + filepath.Base(lrcfile.PathFor(msg.Path)))
	}
	if !msg.Found {
		return m.setStatus("No lyrics yet: press a to download or / to search")
	}
	if h := lrc.ParseHeader(msg.Text); h.Match != "" {
		return m.setStatus(fmt.Sprintf("Loaded %s, matched by %s", filepath.Base(lrcfile.PathFor(msg.Path)), h.Match))
	}
	return nil
}

// showText puts the same text in both panes and rebuilds the index.
func (m *Model) showText(text string) {
	m.session.Dispatch(lrcsync.Reset{})
	m.original.SetText(text)
	m.editable.SetText(text)
	m.session.Dispatch(lrcsync.TextChanged{Text: text})
	m.syncPlayback()
}

func (m *Model) handleDownloaded(msg DownloadedMsg) tea.Cmd {
	if msg.Path != m.audio {
		return nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, lyrics.ErrNoLyrics) {
			return m.setError("No lyrics found for " + m.displayTitle())
		}
		m.log.Error().Err(msg.Err).Str("file", msg.Path).Msg("download failed")
		return m.setError(errmsg.Format(errmsg.OpLyricsDownload, msg.Err))
	}

	m.showText(msg.Result.Text)
	m.dirty = false
	c := msg.Result.Candidate
	m.log.Info().
		Str("file", msg.Path).
		Str("provider", c.Provider).
		Str("id", c.ID).
		Str("match", msg.Result.Match).
		Msg("lyrics applied")

	if cmd := m.savedError(msg.Saved); cmd != nil {
		m.dirty = true
		return cmd
	}
	m.browser.MarkLRC(msg.Path, true)
	status := m.setStatus(fmt.Sprintf("Lyrics from %s saved", c.Provider))
	if !m.cfg.Notifications {
		return status
	}
	n := notify.LyricsSaved(m.displayTitle(), m.meta.Artist, c.Provider, mpris.FindAlbumArt(msg.Path))
	return tea.Batch(status, notifyCmd(m.notifier, n, m.log))
}

func (m *Model) handleSearchResult(msg SearchResultMsg) tea.Cmd {
	if msg.Path != m.audio {
		return nil
	}
	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Str("query", msg.Query).Msg("search failed")
		return m.setError(errmsg.Format(errmsg.OpLyricsSearch, msg.Err))
	}
	m.setStatus("")
	return m.showCandidates(msg.Query, msg.Candidates)
}

func (m *Model) handleSaved(msg SavedMsg) tea.Cmd {
	if msg.Path != m.audio {
		return nil
	}
	next := m.afterSave
	m.afterSave = nil
	if msg.Err != nil {
		// the edits stay in the editor, a pending open or quit is dropped
		return m.savedError(msg)
	}
	if cmd := m.savedError(msg); cmd != nil {
		return tea.Batch(cmd, m.resume(next))
	}
	m.original.SetText(msg.Text)
	m.dirty = false
	m.browser.MarkLRC(msg.Path, true)
	m.log.Info().Str("file", msg.Path).Str("snapshot", msg.Snapshot.ID).Msg("lyrics saved")
	return tea.Batch(m.setStatus("Saved "+filepath.Base(lrcfile.PathFor(msg.Path))), m.resume(next))
}

// savedError reports a failed write or snapshot, nil when both succeeded.
func (m *Model) savedError(msg SavedMsg) tea.Cmd {
	switch {
	case msg.Err != nil:
		m.log.Error().Err(msg.Err).Str("file", msg.Path).Msg("lyrics not saved")
		return m.setError(errmsg.Format(errmsg.OpLRCSave, msg.Err))
	case msg.SnapErr != nil:
		m.log.Error().Err(msg.SnapErr).Str("file", msg.Path).Msg("snapshot not saved")
		m.original.SetText(msg.Text)
		return m.setError(errmsg.Format(errmsg.OpSnapshotSave, msg.SnapErr))
	}
	return nil
}

func (m *Model) handleSnapshots(msg SnapshotsMsg) tea.Cmd {
	if msg.Path != m.audio {
		return nil
	}
	if msg.Err != nil && !errors.Is(msg.Err, snapshot.ErrNotFound) {
		return m.setError(errmsg.Format(errmsg.OpSnapshotList, msg.Err))
	}
	return m.showSnapshots(msg.Snapshots)
}

func (m *Model) handleRecentFiles(msg RecentFilesMsg) tea.Cmd {
	if msg.Err != nil {
		return m.setError(errmsg.Format(errmsg.OpSessionLoad, msg.Err))
	}
	return m.showRecentFiles(msg.Files)
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status, m.statusErr = s, false
	m.statusSeq++
	if s == "" {
		return nil
	}
	return clearStatusCmd(m.statusSeq)
}

func (m *Model) setError(s string) tea.Cmd {
	cmd := m.setStatus(s)
	m.statusErr = true
	return cmd
}

func (m *Model) displayTitle() string {
	if m.meta.Title != "" {
		return m.meta.Title
	}
	return filepath.Base(m.audio)
}
