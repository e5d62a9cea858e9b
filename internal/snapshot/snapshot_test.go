package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)
	now := time.Date(2026, 3, 4, 10, 20, 30, 0, time.Local)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_SaveWritesJSON(t *testing.T) {
	s, _ := newTestStore(t)

	snap, err := s.Save("song.lrc", "[00:01]hi", 12)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "song_2026-03-04T10-20-30.json"), snap.Path)
	assert.Len(t, snap.ID, 36)

	data, err := os.ReadFile(snap.Path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2026-03-04T10-20-30", raw["timestamp"])
	assert.Equal(t, "song.lrc", raw["filename"])
	assert.Equal(t, "[00:01]hi", raw["content"])
	assert.EqualValues(t, 12, raw["cursor_pos"])
	assert.NotContains(t, raw, "Path")
}

func TestStore_SaveSameSecond(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.Save("song.lrc", "a", 0)
	require.NoError(t, err)
	b, err := s.Save("song.lrc", "b", 0)
	require.NoError(t, err)
	assert.NotEqual(t, a.Path, b.Path)

	snaps, err := s.List("song.lrc")
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

func TestStore_ListFiltersAndOrders(t *testing.T) {
	s, now := newTestStore(t)

	_, err := s.Save("song.lrc", "v1", 0)
	require.NoError(t, err)
	*now = now.Add(time.Minute)
	_, err = s.Save("other.lrc", "x", 0)
	require.NoError(t, err)
	*now = now.Add(time.Minute)
	_, err = s.Save("song.lrc", "v2", 3)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "broken.json"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o600))

	snaps, err := s.List("song.lrc")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "v2", snaps[0].Content)
	assert.Equal(t, 3, snaps[0].CursorPos)
	assert.Equal(t, "v1", snaps[1].Content)

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_ListMissingDir(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.RemoveAll(s.Dir()))

	snaps, err := s.List("song.lrc")
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestStore_LoadNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Load(filepath.Join(s.Dir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LoadLegacyWithoutCreatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	path := filepath.Join(s.Dir(), "old_2025-01-02T03-04-05.json")
	legacy := `{"timestamp":"2025-01-02T03-04-05","filename":"old.lrc","content":"c","cursor_pos":0}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	snap, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local), snap.Time())
	assert.Equal(t, path, snap.Path)
}

func TestSnapshot_Label(t *testing.T) {
	snap := Snapshot{Timestamp: "garbage"}
	assert.Equal(t, "garbage", snap.Label())

	snap = Snapshot{Timestamp: "2020-01-01T00-00-00", CreatedAt: time.Now().Add(-3 * time.Hour)}
	assert.True(t, strings.HasPrefix(snap.Label(), "2020-01-01T00-00-00 (3 hours ago"), snap.Label())
}

func TestSnapshot_Size(t *testing.T) {
	assert.Equal(t, "1.5 kB", Snapshot{Content: strings.Repeat("x", 1500)}.Size())
}

func TestStore_NegativeCursorClamped(t *testing.T) {
	s, _ := newTestStore(t)
	snap, err := s.Save("a.lrc", "", -5)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.CursorPos)
}
