// Package app is the lyricsync terminal application: it wires the file
// browser, the two lyric panes, the playback clock and the popups around
// one lrcsync.Session.
package app

import (
	"time"

	"github.com/llehouerou/lyricsync/internal/lyrics"
	"github.com/llehouerou/lyricsync/internal/scanner"
	"github.com/llehouerou/lyricsync/internal/snapshot"
	"github.com/llehouerou/lyricsync/internal/state"
)

// TickMsg drives the playback position into the session.
type TickMsg time.Time

// ScanDoneMsg carries the result of a folder scan.
type ScanDoneMsg struct {
	Root  string
	Files []scanner.File
	Err   error
}

// FileLoadedMsg is sent when an audio file's metadata and lyrics were read.
type FileLoadedMsg struct {
	Path  string
	Meta  lyrics.Metadata
	Text  string
	Found bool // a .lrc file exists next to the audio file
	Err   error
}

// DownloadedMsg is sent when lyrics were fetched and written to disk.
type DownloadedMsg struct {
	Path   string // audio file
	Result lyrics.Result
	Saved  SavedMsg
	Err    error
}

// SearchResultMsg carries the candidates of a manual search.
type SearchResultMsg struct {
	Path       string
	Query      string
	Candidates []lyrics.Candidate
	Err        error
}

// SavedMsg is sent after the editable text was written and snapshotted.
type SavedMsg struct {
	Path     string // audio file
	Text     string // as read back from disk
	Snapshot snapshot.Snapshot
	Err      error // writing the .lrc file failed
	SnapErr  error // the file was written but the snapshot failed
}

// SnapshotsMsg carries the snapshots of the open file, newest first.
type SnapshotsMsg struct {
	Path      string
	Snapshots []snapshot.Snapshot
	Err       error
}

// RecentFilesMsg carries the recently opened files.
type RecentFilesMsg struct {
	Files []state.RecentFile
	Err   error
}

// CopiedMsg reports a clipboard copy.
type CopiedMsg struct {
	Text string
	Err  error
}

// clearStatusMsg hides the status line unless a newer message replaced it.
type clearStatusMsg struct {
	seq int
}
