package app

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/lyricsync/internal/lrcfile"
	"github.com/llehouerou/lyricsync/internal/lyrics"
	"github.com/llehouerou/lyricsync/internal/notify"
	"github.com/llehouerou/lyricsync/internal/scanner"
	"github.com/llehouerou/lyricsync/internal/snapshot"
	"github.com/llehouerou/lyricsync/internal/state"
)

const (
	tickInterval   = 100 * time.Millisecond
	statusDuration = 4 * time.Second
	recentLimit    = 50
)

// TickCmd returns a command that sends TickMsg after one tick interval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func scanCmd(ctx context.Context, root string) tea.Cmd {
	return func() tea.Msg {
		files, err := scanner.Scan(ctx, root)
		return ScanDoneMsg{Root: root, Files: files, Err: err}
	}
}

// loadFileCmd reads the audio file's tags and the .lrc file next to it.
func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		meta := lyrics.ExtractMetadata(path)
		text, found, err := lrcfile.Read(lrcfile.PathFor(path))
		return FileLoadedMsg{Path: path, Meta: meta, Text: text, Found: found, Err: err}
	}
}

func autoFetchCmd(d *lyrics.Downloader, store *snapshot.Store, path string, meta lyrics.Metadata) tea.Cmd {
	return func() tea.Msg {
		res, err := d.Auto(context.Background(), meta)
		if err != nil {
			return DownloadedMsg{Path: path, Err: err}
		}
		return DownloadedMsg{Path: path, Result: res, Saved: persist(store, path, res.Text, 0)}
	}
}

// searchCmd searches and keeps only the candidates whose lyrics could be
// fetched, so the list can show a preview of each.
func searchCmd(d *lyrics.Downloader, path, query string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		cands, err := d.Search(ctx, query, duration)
		if err != nil {
			return SearchResultMsg{Path: path, Query: query, Err: err}
		}
		return SearchResultMsg{Path: path, Query: query, Candidates: d.Prefetch(ctx, cands)}
	}
}

func applyManualCmd(store *snapshot.Store, path string, res lyrics.Result) tea.Cmd {
	return func() tea.Msg {
		return DownloadedMsg{Path: path, Result: res, Saved: persist(store, path, res.Text, 0)}
	}
}

func saveCmd(store *snapshot.Store, path, text string, cursorPos int) tea.Cmd {
	return func() tea.Msg {
		return persist(store, path, text, cursorPos)
	}
}

func listSnapshotsCmd(store *snapshot.Store, path string) tea.Cmd {
	return func() tea.Msg {
		list, err := store.List(filepath.Base(lrcfile.PathFor(path)))
		return SnapshotsMsg{Path: path, Snapshots: list, Err: err}
	}
}

func recentFilesCmd(st state.Interface) tea.Cmd {
	return func() tea.Msg {
		files, err := st.RecentFiles(recentLimit)
		return RecentFilesMsg{Files: files, Err: err}
	}
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: write(text)}
	}
}

// notifyCmd sends n off the UI goroutine. Failures are only logged.
func notifyCmd(n notify.Notifier, notif notify.Notification, log zerolog.Logger) tea.Cmd {
	return func() tea.Msg {
		if _, err := n.Notify(notif); err != nil {
			log.Warn().Err(err).Msg("notification not sent")
		}
		return nil
	}
}

// persist writes text as the .lrc file of the audio file at path, reads it
// back and records a snapshot of what is on disk.
func persist(store *snapshot.Store, path, text string, cursorPos int) SavedMsg {
	lrcPath := lrcfile.PathFor(path)
	msg := SavedMsg{Path: path}
	if err := lrcfile.Write(lrcPath, text); err != nil {
		msg.Err = err
		return msg
	}
	disk, _, err := lrcfile.Read(lrcPath)
	if err != nil {
		msg.Err = err
		return msg
	}
	msg.Text = disk
	if store != nil {
		msg.Snapshot, msg.SnapErr = store.Save(filepath.Base(lrcPath), disk, cursorPos)
	}
	return msg
}
