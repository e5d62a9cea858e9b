package app

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lyricsync/internal/app/popupctl"
	"github.com/llehouerou/lyricsync/internal/config"
	"github.com/llehouerou/lyricsync/internal/lrcfile"
	"github.com/llehouerou/lyricsync/internal/lyrics"
	"github.com/llehouerou/lyricsync/internal/mpris"
	"github.com/llehouerou/lyricsync/internal/notify"
	"github.com/llehouerou/lyricsync/internal/snapshot"
	"github.com/llehouerou/lyricsync/internal/state"
	"github.com/llehouerou/lyricsync/internal/transport"
	"github.com/llehouerou/lyricsync/internal/ui/action"
	"github.com/llehouerou/lyricsync/internal/ui/confirm"
	"github.com/llehouerou/lyricsync/internal/ui/picker"
	"github.com/llehouerou/lyricsync/internal/ui/testutil"
	"github.com/llehouerou/lyricsync/internal/ui/textinput"
)

const timedLyrics = "[00:01.00]first\n[00:02.00]second\n[00:03.00]third"

type fakeProvider struct {
	cands  []lyrics.Candidate
	lyrics map[string]string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(context.Context, string, int) ([]lyrics.Candidate, error) {
	return f.cands, nil
}

func (f *fakeProvider) Lyrics(_ context.Context, c lyrics.Candidate) (string, error) {
	return f.lyrics[c.ID], nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (f *fakeNotifier) Notify(n notify.Notification) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return uint32(len(f.sent)), nil
}

func (f *fakeNotifier) Close(uint32) error { return nil }

type fakeMedia struct{ track mpris.Track }

func (f *fakeMedia) SetTrack(t mpris.Track) { f.track = t }

type testApp struct {
	*Model
	dir     string
	state   *state.Mock
	store   *snapshot.Store
	clock   *transport.Clock
	copied  string
	provide *fakeProvider
	notes   *fakeNotifier
	media   *fakeMedia
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	store, err := snapshot.NewStore(filepath.Join(dir, "snapshots"))
	require.NoError(t, err)

	ta := &testApp{
		dir:   dir,
		state: state.NewMock(),
		store: store,
		clock: transport.New(),
		provide: &fakeProvider{
			cands: []lyrics.Candidate{
				{Provider: "fake", ID: "1", Title: "Song", Artist: "Band"},
			},
			lyrics: map[string]string{"1": "[00:05.00]downloaded"},
		},
		notes: &fakeNotifier{},
		media: &fakeMedia{},
	}
	ta.Model = New(Deps{
		Config:     &config.Config{},
		State:      ta.state,
		Snapshots:  store,
		Downloader: lyrics.NewDownloader([]lyrics.Provider{ta.provide}),
		Clock:      ta.clock,
		Logger:     zerolog.Nop(),
		Notifier:   ta.notes,
		Media:      ta.media,
		Clipboard: func(s string) error {
			ta.copied = s
			return nil
		},
	})
	ta.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return ta
}

// audio creates an audio file, with a .lrc file next to it when lrc is not
// empty.
func (ta *testApp) audio(t *testing.T, name, lrc string) string {
	t.Helper()
	path := filepath.Join(ta.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))
	if lrc != "" {
		lrcPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".lrc"
		require.NoError(t, os.WriteFile(lrcPath, []byte(lrc), 0o644))
	}
	return path
}

func (ta *testApp) open(t *testing.T, path string) {
	t.Helper()
	ta.run(loadFileCmd(path))
	require.Equal(t, path, ta.Model.audio)
}

var cmdsType = reflect.TypeOf([]tea.Cmd(nil))

// run executes cmd and feeds its messages back. Commands that do not answer
// quickly are timers and are dropped.
func (ta *testApp) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return
	}

	// batches and sequences
	if v := reflect.ValueOf(msg); v.IsValid() && v.Type().ConvertibleTo(cmdsType) {
		for _, c := range v.Convert(cmdsType).Interface().([]tea.Cmd) {
			ta.run(c)
		}
		return
	}

	switch msg := msg.(type) {
	case nil:
	case TickMsg, clearStatusMsg, tea.QuitMsg:
	default:
		_, next := ta.Update(msg)
		ta.run(next)
	}
}

func (ta *testApp) key(k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+o":
		msg = tea.KeyMsg{Type: tea.KeyCtrlO}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := ta.Update(msg)
	return cmd
}

func (ta *testApp) send(a action.Action) {
	_, cmd := ta.Update(action.Msg{Source: "test", Action: a})
	ta.run(cmd)
}

func TestOpenFile_LoadsLyricsIntoBothPanes(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "song.mp3", timedLyrics)

	ta.open(t, path)

	assert.Equal(t, timedLyrics, ta.original.Text())
	assert.Equal(t, timedLyrics, ta.editable.Text())
	assert.Equal(t, 3, ta.Session().Index().Len())
	assert.Equal(t, transport.Paused, ta.clock.State())
	assert.False(t, ta.dirty)

	recent, err := ta.state.RecentFiles(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, path, recent[0].Path)

	sess, err := ta.state.GetSession()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, path, sess.File)
}

func TestOpenFile_PublishesTrack(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "My Song.mp3", "a")
	ta.open(t, path)

	assert.Equal(t, path, ta.media.track.Path)
	assert.Equal(t, "My Song", ta.media.track.Title)
}

func TestOpenFile_WithoutLyricsClears(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "a.mp3", timedLyrics))
	ta.clock.SeekTo(2500 * time.Millisecond)
	ta.Update(TickMsg{})
	require.Equal(t, 1, ta.Session().CurrentLine())

	ta.open(t, ta.audio(t, "b.mp3", ""))

	assert.Empty(t, ta.original.Text())
	assert.Empty(t, ta.editable.Text())
	assert.Equal(t, 0, ta.Session().Index().Len())
	assert.Equal(t, -1, ta.Session().CurrentLine())
	assert.Equal(t, time.Duration(0), ta.clock.Position(), "the clock starts over")
}

func TestOpenFile_ReportsMatchHeader(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", "[ti:Song]\n[by:lyricsync]\n[match:id3+manual]\n[00:01.00]a"))
	assert.Equal(t, "Loaded song.lrc, matched by id3+manual", ta.status)

	plain := newTestApp(t)
	plain.open(t, plain.audio(t, "plain.mp3", timedLyrics))
	assert.Empty(t, plain.status, "hand written files have no match tag")
}

func TestOpenFile_EmbeddedLyrics(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "tagged.mp3", "")

	_, cmd := ta.Update(FileLoadedMsg{
		Path: path,
		Meta: lyrics.Metadata{Title: "Tagged", Embedded: timedLyrics},
	})
	ta.run(cmd)

	assert.Equal(t, timedLyrics, ta.editable.Text())
	assert.Equal(t, timedLyrics, ta.original.Text())
	assert.True(t, ta.dirty, "embedded lyrics are not on disk yet")
	assert.Contains(t, ta.status, "tagged.lrc")
	assert.Positive(t, ta.Session().Index().Len())
}

func TestOpenFile_RestoresCursor(t *testing.T) {
	ta := newTestApp(t)
	a := ta.audio(t, "a.mp3", timedLyrics)
	b := ta.audio(t, "b.mp3", timedLyrics)

	ta.open(t, a)
	ta.editable.SetCursor(2)
	ta.open(t, b)
	assert.Equal(t, 0, ta.editable.Cursor())

	ta.open(t, a)
	assert.Equal(t, 2, ta.editable.Cursor())
}

func TestTick_FollowsPlayback(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", timedLyrics))

	ta.clock.SeekTo(2200 * time.Millisecond)
	_, cmd := ta.Update(TickMsg{})
	assert.NotNil(t, cmd, "the tick keeps running")

	assert.Equal(t, 1, ta.Session().CurrentLine())
	assert.Equal(t, 1, ta.original.Active())
	assert.Equal(t, 1, ta.editable.Active())
}

func TestTick_NoAudioIsNoop(t *testing.T) {
	ta := newTestApp(t)
	ta.Update(TickMsg{})
	assert.Equal(t, -1, ta.Session().CurrentLine())
}

func TestSeekKeys(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", timedLyrics))

	ta.key(".")
	assert.Equal(t, config.DefaultSeekStepSeconds*time.Second, ta.clock.Position())

	ta.key(",")
	assert.Equal(t, time.Duration(0), ta.clock.Position())

	ta.clock.SeekTo(3 * time.Second)
	ta.key("0")
	assert.Equal(t, time.Duration(0), ta.clock.Position())

	ta.key("space")
	assert.Equal(t, transport.Playing, ta.clock.State())
	ta.key("space")
	assert.Equal(t, transport.Paused, ta.clock.State())
}

func TestStamp(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", "[00:09.00]old tag\nsecond"))
	require.Equal(t, FocusEditable, ta.focus)

	ta.clock.SeekTo(65500 * time.Millisecond)
	ta.key("d")

	assert.Equal(t, "[01:05.500]old tag", ta.editable.Line(0))
	assert.Equal(t, 1, ta.editable.Cursor())
	assert.True(t, ta.dirty)
	off, ok := ta.Session().Index().OffsetOf(0)
	require.True(t, ok)
	assert.InDelta(t, 65.5, off, 1e-6)
	assert.Equal(t, "[00:09.00]old tag\nsecond", ta.original.Text(), "the original is untouched")

	ta.clock.SeekTo(70 * time.Second)
	ta.key("d")
	assert.Equal(t, "[01:10.000]second", ta.editable.Line(1))
	assert.Equal(t, 2, ta.Session().Index().Len())
}

func TestStamp_EmptyDocument(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", ""))

	ta.key("d")
	assert.Equal(t, "[00:00.000]", ta.editable.Text())
}

func TestStamp_OnlyInEditor(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", "a"))
	ta.setFocus(FocusOriginal)

	ta.key("d")
	assert.Equal(t, "a", ta.editable.Text())
}

func TestSeekToLine(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", timedLyrics+"\nuntimed"))

	ta.editable.SetCursor(2)
	ta.key("enter")
	assert.Equal(t, 3*time.Second, ta.clock.Position())
	assert.Equal(t, 2, ta.Session().CurrentLine())

	ta.editable.SetCursor(3)
	ta.key("enter")
	assert.Equal(t, 3*time.Second, ta.clock.Position())
	assert.True(t, ta.statusErr)
}

func TestEditLine(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", "plain"))

	ta.key("e")
	require.True(t, ta.popups.Visible(popupctl.Input))

	ta.send(textinput.Result{Text: "[00:04.00]plain", Context: editPrompt{line: 0}})
	assert.False(t, ta.popups.Visible(popupctl.Input))
	assert.Equal(t, "[00:04.00]plain", ta.editable.Text())
	assert.Equal(t, 1, ta.Session().Index().Len())
}

func TestEditLine_Canceled(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", "plain"))

	ta.key("e")
	ta.send(textinput.Result{Canceled: true, Context: editPrompt{line: 0}})
	assert.Equal(t, "plain", ta.editable.Text())
	assert.False(t, ta.dirty)
}

func TestNewAndDeleteLine(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", "a\nb"))

	ta.key("o")
	assert.Equal(t, "a\n\nb", ta.editable.Text())
	assert.Equal(t, 1, ta.editable.Cursor())
	assert.True(t, ta.popups.Visible(popupctl.Input), "the new line is edited right away")
	ta.send(textinput.Result{Text: "new", Context: editPrompt{line: 1}})
	assert.Equal(t, "a\nnew\nb", ta.editable.Text())

	ta.key("O")
	ta.send(textinput.Result{Canceled: true, Context: editPrompt{line: 1}})
	assert.Equal(t, "a\n\nnew\nb", ta.editable.Text())

	ta.key("x")
	assert.Equal(t, "a\nnew\nb", ta.editable.Text())
}

func TestCopyLine(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", "a\n[00:01.00]b"))

	ta.editable.SetCursor(1)
	ta.run(ta.key("y"))
	assert.Equal(t, "[00:01.00]b", ta.copied)
	assert.Equal(t, "Copied line", ta.status)
}

func TestSave(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "song.mp3", "a\nb")
	ta.open(t, path)

	ta.clock.SeekTo(time.Second)
	ta.key("d")
	require.True(t, ta.dirty)

	ta.run(ta.key("ctrl+s"))

	data, err := os.ReadFile(filepath.Join(ta.dir, "song.lrc"))
	require.NoError(t, err)
	assert.Equal(t, "[00:01.000]a\nb", string(data))
	assert.Equal(t, "[00:01.000]a\nb", ta.original.Text(), "the original shows the saved file")
	assert.False(t, ta.dirty)

	snaps, err := ta.store.List("song.lrc")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "[00:01.000]a\nb", snaps[0].Content)
	assert.Equal(t, ta.editable.CursorOffset(), snaps[0].CursorPos)
}

func TestSave_NoAudio(t *testing.T) {
	ta := newTestApp(t)
	ta.key("ctrl+s")
	assert.True(t, ta.statusErr)
}

func TestSnapshots_LoadAndOverwrite(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "song.mp3", "v1")
	ta.open(t, path)
	ta.run(ta.key("ctrl+s"))

	ta.editable.SetLine(0, "v2")
	ta.textChanged()
	ta.run(ta.key("ctrl+s"))

	ta.run(ta.key("R"))
	require.True(t, ta.popups.Visible(popupctl.Picker))

	snaps, err := ta.store.List("song.lrc")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	var first snapshot.Snapshot
	for _, s := range snaps {
		if s.Content == "v1" {
			first = s
		}
	}
	require.NotEmpty(t, first.ID)

	ta.send(picker.Result{Item: picker.Item{Value: first}, Choice: choiceLoad, Context: snapshotPick{}})
	assert.False(t, ta.popups.Visible(popupctl.Picker))
	assert.Equal(t, "v1", ta.editable.Text())
	assert.Equal(t, "v2", ta.original.Text(), "loading does not touch the file")
	assert.True(t, ta.dirty)

	ta.send(picker.Result{Item: picker.Item{Value: first}, Choice: choiceOverwrite, Context: snapshotPick{}})
	require.True(t, ta.popups.Visible(popupctl.Confirm), "overwriting asks first")
	ta.send(confirm.Result{Confirmed: true, Context: overwriteSnapshot{snap: first}})
	assert.False(t, ta.popups.Visible(popupctl.Confirm))
	data, err := os.ReadFile(filepath.Join(ta.dir, "song.lrc"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
	assert.False(t, ta.dirty)

	snaps, err = ta.store.List("song.lrc")
	require.NoError(t, err)
	assert.Len(t, snaps, 3, "overwriting takes a new snapshot")
}

func TestAutoFetch(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "song.mp3", "")
	ta.open(t, path)

	ta.run(ta.key("a"))

	text := ta.editable.Text()
	assert.Contains(t, text, "[by:lyricsync]")
	assert.Contains(t, text, "[match:fuzzy]")
	assert.Contains(t, text, "[00:05.00]downloaded")
	assert.Equal(t, text, ta.original.Text())
	assert.Equal(t, 1, ta.Session().Index().Len())

	data, err := os.ReadFile(filepath.Join(ta.dir, "song.lrc"))
	require.NoError(t, err)
	assert.Equal(t, text, string(data))

	snaps, err := ta.store.List("song.lrc")
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
	assert.Empty(t, ta.notes.sent, "notifications are off by default")
}

func TestAutoFetch_Notifies(t *testing.T) {
	ta := newTestApp(t)
	ta.cfg.Notifications = true
	path := ta.audio(t, "song.mp3", "")
	ta.open(t, path)

	ta.run(ta.key("a"))

	ta.notes.mu.Lock()
	defer ta.notes.mu.Unlock()
	require.Len(t, ta.notes.sent, 1)
	assert.Equal(t, "Lyrics downloaded", ta.notes.sent[0].Title)
	assert.Contains(t, ta.notes.sent[0].Body, "fake")
}

func TestAutoFetch_NoLyrics(t *testing.T) {
	ta := newTestApp(t)
	ta.provide.lyrics = nil
	ta.open(t, ta.audio(t, "song.mp3", ""))

	ta.run(ta.key("a"))
	assert.Empty(t, ta.editable.Text())
	assert.True(t, ta.statusErr)
	assert.Contains(t, ta.status, "No lyrics found")
}

func TestManualSearch(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", ""))

	ta.key("/")
	require.True(t, ta.popups.Visible(popupctl.Input))

	ta.send(textinput.Result{Text: "song", Context: searchPrompt{}})
	require.True(t, ta.popups.Visible(popupctl.Picker))

	cand := ta.provide.cands[0]
	cand.Lyrics = "[00:05.00]downloaded"
	ta.send(picker.Result{Item: picker.Item{Value: cand}, Context: candidatePick{}})

	assert.False(t, ta.popups.Visible(popupctl.Picker))
	assert.Contains(t, ta.editable.Text(), "[match:fuzzy+manual]")
	assert.Contains(t, ta.editable.Text(), "[00:05.00]downloaded")
}

func TestRecentFiles(t *testing.T) {
	ta := newTestApp(t)
	a := ta.audio(t, "a.mp3", "A")
	b := ta.audio(t, "b.mp3", "B")
	ta.open(t, a)
	ta.open(t, b)

	ta.run(ta.key("ctrl+o"))
	require.True(t, ta.popups.Visible(popupctl.Picker))

	ta.send(picker.Result{Item: picker.Item{Value: a}, Context: recentPick{}})
	assert.Equal(t, a, ta.Model.audio)
	assert.Equal(t, "A", ta.editable.Text())
}

func TestOpenFile_UnsavedChangesAsks(t *testing.T) {
	tests := []struct {
		name     string
		option   int
		confirm  bool
		wantOpen string
		wantLRC  string
	}{
		{"save and open", optionSave, true, "other.mp3", "x"},
		{"discard and open", optionDiscard, true, "other.mp3", "a"},
		{"cancel", optionCancel, false, "song.mp3", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			path := ta.audio(t, "song.mp3", "a")
			next := ta.audio(t, "other.mp3", "[00:01.00]other")
			ta.open(t, path)
			ta.editable.SetLine(0, "x")
			ta.textChanged()

			ta.run(ta.openFile(next))
			require.True(t, ta.popups.Visible(popupctl.Confirm))
			assert.Equal(t, path, ta.Model.audio, "nothing is opened before answering")

			ta.send(confirm.Result{Confirmed: tt.confirm, Option: tt.option, Context: pendingOpen{path: next}})
			assert.False(t, ta.popups.Visible(popupctl.Confirm))
			assert.Equal(t, tt.wantOpen, filepath.Base(ta.Model.audio))

			data, err := os.ReadFile(filepath.Join(ta.dir, "song.lrc"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLRC, string(data))
		})
	}
}

// blockLRC turns the .lrc file of path into a non-empty directory so that
// writing it fails.
func blockLRC(t *testing.T, path string) {
	t.Helper()
	lrcPath := lrcfile.PathFor(path)
	require.NoError(t, os.Remove(lrcPath))
	require.NoError(t, os.Mkdir(lrcPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lrcPath, "keep"), nil, 0o644))
}

func TestUnsavedChanges_FailedSaveKeepsEdits(t *testing.T) {
	tests := []struct {
		name    string
		pending func(next string) any
	}{
		{"open", func(next string) any { return pendingOpen{path: next} }},
		{"quit", func(string) any { return pendingQuit{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			path := ta.audio(t, "song.mp3", "a")
			next := ta.audio(t, "other.mp3", "[00:01.00]other")
			ta.open(t, path)
			ta.editable.SetLine(0, "x")
			ta.textChanged()
			blockLRC(t, path)

			_, cmd := ta.Update(action.Msg{Source: "confirm", Action: confirm.Result{
				Confirmed: true, Option: optionSave, Context: tt.pending(next),
			}})
			require.NotNil(t, cmd)
			saved, ok := cmd().(SavedMsg)
			require.True(t, ok)
			require.Error(t, saved.Err)

			_, after := ta.Update(saved)
			ta.run(after)

			assert.Equal(t, path, ta.Model.audio, "the edited file stays open")
			assert.Equal(t, "x", ta.editable.Text())
			assert.True(t, ta.dirty)
			assert.True(t, ta.statusErr)
			assert.Nil(t, ta.afterSave)
		})
	}
}

func TestQuit_UnsavedChangesAsks(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "song.mp3", "a")
	ta.open(t, path)
	ta.editable.SetLine(0, "x")
	ta.textChanged()

	ta.key("q")
	require.True(t, ta.popups.Visible(popupctl.Confirm), "quitting asks first")

	_, cmd := ta.Update(action.Msg{Source: "confirm", Action: confirm.Result{
		Confirmed: true, Option: optionSave, Context: pendingQuit{},
	}})
	ta.run(cmd)
	data, err := os.ReadFile(filepath.Join(ta.dir, "song.lrc"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data), "saved before quitting")
}

func TestFocusAndContexts(t *testing.T) {
	ta := newTestApp(t)
	assert.Equal(t, FocusEditable, ta.focus)

	ta.key("tab")
	assert.Equal(t, FocusBrowser, ta.focus)
	assert.True(t, ta.browser.IsFocused())
	assert.False(t, ta.editable.IsFocused())

	ta.key("tab")
	assert.Equal(t, FocusOriginal, ta.focus)

	ta.setFocus(FocusOriginal - 1)
	assert.Equal(t, FocusBrowser, ta.focus)
	ta.setFocus(FocusBrowser - 1)
	assert.Equal(t, FocusEditable, ta.focus)
}

func TestQuit(t *testing.T) {
	ta := newTestApp(t)
	path := ta.audio(t, "song.mp3", "a\nb\nc")
	ta.open(t, path)
	ta.editable.SetCursor(2)

	cmd := ta.key("q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	line, err := ta.state.Cursor(path)
	require.NoError(t, err)
	assert.Equal(t, 2, line, "the cursor is remembered on quit")
}

func TestHelpPopup(t *testing.T) {
	ta := newTestApp(t)
	ta.key("?")
	require.True(t, ta.popups.Visible(popupctl.Help))

	ta.key("j")
	assert.Equal(t, 0, ta.editable.Cursor(), "keys go to the popup")

	ta.run(ta.key("?"))
	assert.False(t, ta.popups.Visible(popupctl.Help))
}

func TestScrollMirroring(t *testing.T) {
	ta := newTestApp(t)
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	ta.open(t, ta.audio(t, "song.mp3", strings.Join(lines, "\n")))

	ta.editable.ScrollBy(10)
	assert.Equal(t, 10, ta.original.TopLine())

	wheel := tea.MouseMsg{
		X:      ta.browser.Width() + 2,
		Y:      5,
		Button: tea.MouseButtonWheelDown,
	}
	ta.Update(wheel)
	assert.Equal(t, 13, ta.original.TopLine())
	assert.Equal(t, 13, ta.editable.TopLine())
}

func TestMouseClickFocuses(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", timedLyrics))

	click := tea.MouseMsg{
		X:      ta.browser.Width() + 3,
		Y:      4,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}
	ta.Update(click)
	assert.Equal(t, FocusOriginal, ta.focus)
	assert.Equal(t, 1, ta.original.Cursor())
}

func TestWhitespaceToggle(t *testing.T) {
	ta := newTestApp(t)
	ta.key("w")
	assert.True(t, ta.editable.ShowWhitespace())
	assert.True(t, ta.original.ShowWhitespace())
	ta.key("w")
	assert.False(t, ta.editable.ShowWhitespace())
}

func TestInit_RestoresSession(t *testing.T) {
	ta := newTestApp(t)
	ta.state.SaveSession(state.Session{Folder: ta.dir})

	require.NotNil(t, ta.Init())
	assert.Equal(t, ta.dir, ta.browser.Root())

	ta.run(scanCmd(context.Background(), ta.dir))
	assert.Empty(t, ta.browser.Files())

	path := ta.audio(t, "song.mp3", "")
	ta.run(scanCmd(context.Background(), ta.dir))
	require.Len(t, ta.browser.Files(), 1)
	assert.Equal(t, path, ta.browser.Files()[0].Path)
}

func TestNarrowLayout_BrowserOnFocus(t *testing.T) {
	ta := newTestApp(t)
	ta.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Equal(t, 0, ta.browser.Width())
	assert.Equal(t, 40, ta.editable.Width())

	ta.setFocus(FocusBrowser)
	assert.Equal(t, 40, ta.browser.Width())
	assert.Equal(t, 20, ta.editable.Width())

	ta.setFocus(FocusEditable)
	assert.Equal(t, 0, ta.browser.Width())
}

func TestView(t *testing.T) {
	ta := newTestApp(t)
	ta.open(t, ta.audio(t, "song.mp3", timedLyrics))

	view := testutil.StripANSI(ta.View())
	assert.Contains(t, view, "Original")
	assert.Contains(t, view, "Editor")
	assert.Contains(t, view, "[00:02.00]second")
	assert.Contains(t, view, "stamp")

	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 40)
}
