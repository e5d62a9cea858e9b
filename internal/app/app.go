package app

import (
	"context"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/lyricsync/internal/app/popupctl"
	"github.com/llehouerou/lyricsync/internal/config"
	"github.com/llehouerou/lyricsync/internal/keymap"
	"github.com/llehouerou/lyricsync/internal/lrcsync"
	"github.com/llehouerou/lyricsync/internal/lyrics"
	"github.com/llehouerou/lyricsync/internal/mpris"
	"github.com/llehouerou/lyricsync/internal/notify"
	"github.com/llehouerou/lyricsync/internal/snapshot"
	"github.com/llehouerou/lyricsync/internal/state"
	"github.com/llehouerou/lyricsync/internal/transport"
	"github.com/llehouerou/lyricsync/internal/ui/browser"
	"github.com/llehouerou/lyricsync/internal/ui/layout"
	"github.com/llehouerou/lyricsync/internal/ui/lyricpane"
)

// Focus is the panel receiving keys.
type Focus int

const (
	FocusBrowser Focus = iota
	FocusOriginal
	FocusEditable
	focusCount
)

// MediaSession publishes the open track to the desktop.
type MediaSession interface {
	SetTrack(t mpris.Track)
}

// Deps are the collaborators of the application.
type Deps struct {
	Config     *config.Config
	State      state.Interface
	Snapshots  *snapshot.Store
	Downloader *lyrics.Downloader
	Clock      transport.Interface
	Logger     zerolog.Logger
	Notifier   notify.Notifier // nil disables notifications
	Media      MediaSession    // may be nil
	// Clipboard writes text to the system clipboard; atotto/clipboard when nil.
	Clipboard func(string) error
}

// Model is the application state.
type Model struct {
	cfg        *config.Config
	log        zerolog.Logger
	state      state.Interface
	snapshots  *snapshot.Store
	downloader *lyrics.Downloader
	clock      transport.Interface
	clipboard  func(string) error
	notifier   notify.Notifier
	media      MediaSession
	keys       *keymap.Resolver

	session  *lrcsync.Session
	original *lyricpane.Model
	editable *lyricpane.Model
	browser  browser.Model
	popups   *popupctl.Manager
	help     help.Model

	focus         Focus
	width, height int

	audio string // open audio file, "" if none
	meta  lyrics.Metadata
	dirty bool // the editable text differs from the last save

	afterSave any // pendingOpen or pendingQuit, resumed once the save succeeds

	scanCancel context.CancelFunc

	status    string
	statusErr bool
	statusSeq int
}

// New creates the application model.
func New(deps Deps) *Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = transport.New()
	}
	write := deps.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}

	m := &Model{
		cfg:        cfg,
		log:        deps.Logger,
		state:      deps.State,
		snapshots:  deps.Snapshots,
		downloader: deps.Downloader,
		clock:      clock,
		clipboard:  write,
		notifier:   deps.Notifier,
		media:      deps.Media,
		keys:       keymap.NewResolver(keymap.All),
		original:   lyricpane.New("Original", false),
		editable:   lyricpane.New("Editor", true),
		browser:    browser.New(),
		popups:     popupctl.New(),
		help:       help.New(),
		focus:      FocusEditable,
	}
	if m.state == nil {
		m.state = state.NewMock()
	}
	if m.notifier == nil {
		m.notifier = notify.Nop{}
	}

	m.session = lrcsync.NewSession(m.original, m.editable, lrcsync.WithLogger(m.log))
	m.original.OnScroll(func() {
		m.session.Dispatch(lrcsync.UserScrolled{Side: lrcsync.Original})
	})
	m.editable.OnScroll(func() {
		m.session.Dispatch(lrcsync.UserScrolled{Side: lrcsync.Editable})
	})
	m.applyFocus()
	return m
}

// Init restores the last session and starts the playback tick.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}

	folder := m.cfg.DefaultFolder
	sess, err := m.state.GetSession()
	if err != nil {
		m.log.Warn().Err(err).Msg("session not restored")
	}
	if sess != nil && sess.Folder != "" {
		folder = sess.Folder
	}
	if folder == "" {
		folder, _ = os.Getwd()
	}
	if folder != "" {
		cmds = append(cmds, m.startScan(folder))
	}
	if sess != nil && sess.File != "" {
		cmds = append(cmds, loadFileCmd(sess.File))
	}
	return tea.Batch(cmds...)
}

// Session returns the synchronization session of the editor.
func (m *Model) Session() *lrcsync.Session {
	return m.session
}

// Close cancels background work and records the editor position.
func (m *Model) Close() {
	if m.scanCancel != nil {
		m.scanCancel()
	}
	m.saveCursor()
}

func (m *Model) setFocus(f Focus) {
	m.focus = (f + focusCount) % focusCount
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.browser.SetFocused(m.focus == FocusBrowser)
	m.original.SetFocused(m.focus == FocusOriginal)
	m.editable.SetFocused(m.focus == FocusEditable)
	if layout.IsNarrowMode(m.width) && m.height > 0 {
		m.layoutPanels()
	}
}

// focusedPane returns the lyric pane with focus, or nil.
func (m *Model) focusedPane() *lyricpane.Model {
	switch m.focus {
	case FocusOriginal:
		return m.original
	case FocusEditable:
		return m.editable
	}
	return nil
}

// contexts returns the key contexts active for the current focus, most
// specific first.
func (m *Model) contexts() []string {
	var ctxs []string
	switch m.focus {
	case FocusBrowser:
		ctxs = append(ctxs, keymap.ContextBrowser)
	case FocusOriginal:
		ctxs = append(ctxs, keymap.ContextLyrics)
	case FocusEditable:
		ctxs = append(ctxs, keymap.ContextEditor, keymap.ContextLyrics)
	}
	return append(ctxs, keymap.ContextPlayback, keymap.ContextGlobal)
}

func (m *Model) startScan(root string) tea.Cmd {
	if m.scanCancel != nil {
		m.scanCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.scanCancel = cancel
	m.browser.SetScanning(root)
	return scanCmd(ctx, root)
}

func (m *Model) saveSession() {
	m.state.SaveSession(state.Session{Folder: m.browser.Root(), File: m.audio})
}

func (m *Model) saveCursor() {
	if m.audio == "" {
		return
	}
	if err := m.state.SaveCursor(m.audio, m.editable.Cursor()); err != nil {
		m.log.Warn().Err(err).Str("file", m.audio).Msg("cursor not saved")
	}
}
