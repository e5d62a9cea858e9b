// Package snapshot keeps restorable copies of saved LRC documents as JSON
// files in one directory.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a snapshot file does not exist.
var ErrNotFound = errors.New("snapshot not found")

// TimestampLayout is the layout of Snapshot.Timestamp. It is also part of
// the file name, so it avoids colons.
const TimestampLayout = "2006-01-02T15-04-05"

const fileExt = ".json"

// Snapshot is one saved version of a document.
type Snapshot struct {
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	Filename  string    `json:"filename"` // base name of the .lrc file
	Content   string    `json:"content"`
	CursorPos int       `json:"cursor_pos"`

	Path string `json:"-"`
}

// Time returns when the snapshot was taken.
func (s Snapshot) Time() time.Time {
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt
	}
	t, err := time.ParseInLocation(TimestampLayout, s.Timestamp, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Label renders the snapshot for a list, e.g. "2026-01-02T10-00-00 (3 minutes ago)".
func (s Snapshot) Label() string {
	t := s.Time()
	if t.IsZero() {
		return s.Timestamp
	}
	return fmt.Sprintf("%s (%s)", s.Timestamp, humanize.Time(t))
}

// Size renders the content size, e.g. "1.2 kB".
func (s Snapshot) Size() string {
	return humanize.Bytes(uint64(len(s.Content)))
}

// Store reads and writes snapshots in a directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore opens the store, creating dir if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes a snapshot of content for the .lrc file named filename.
func (s *Store) Save(filename, content string, cursorPos int) (Snapshot, error) {
	now := s.now()
	snap := Snapshot{
		ID:        uuid.NewString(),
		Timestamp: now.Format(TimestampLayout),
		CreatedAt: now,
		Filename:  filename,
		Content:   content,
		CursorPos: max(cursorPos, 0),
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	path := filepath.Join(s.dir, stem+"_"+snap.Timestamp+fileExt)
	if _, err := os.Stat(path); err == nil {
		// same second as an earlier snapshot
		path = filepath.Join(s.dir, stem+"_"+snap.Timestamp+"_"+snap.ID[:8]+fileExt)
	}
	snap.Path = path

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	return snap, nil
}

// Load reads one snapshot file.
func (s *Store) Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", filepath.Base(path), err)
	}
	snap.Path = path
	return snap, nil
}

// List returns the snapshots taken of filename, newest first. Unreadable
// files are skipped. An empty filename lists every snapshot.
func (s *Store) List(filename string) ([]Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		snap, err := s.Load(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		if filename != "" && snap.Filename != filename {
			continue
		}
		snaps = append(snaps, snap)
	}

	slices.SortStableFunc(snaps, func(a, b Snapshot) int {
		if c := b.Time().Compare(a.Time()); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return snaps, nil
}
