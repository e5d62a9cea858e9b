// Package state persists the editor session between runs: the last folder
// and file, and the cursor position of recently edited files.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "lyricsync"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager is the SQLite backed state store.
type Manager struct {
	db      *sql.DB
	session *debounced[Session]
}

// Open opens the state database under the XDG data directory.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens the state database at path (":memory:" for tests).
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps an in-memory database alive and serializes writers
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	m := &Manager{db: conn}
	m.session = newDebounced(saveDebounce, func(s Session) error {
		return saveSession(conn, s)
	})
	return m, nil
}

// Close writes the pending session and closes the database.
func (m *Manager) Close() error {
	flushErr := m.session.Flush()
	if err := m.db.Close(); err != nil {
		return err
	}
	return flushErr
}

func (m *Manager) GetSession() (*Session, error) {
	return getSession(m.db)
}

// SaveSession stores s after a short quiet period; rapid calls coalesce.
func (m *Manager) SaveSession(s Session) {
	m.session.Set(s)
}

// debounced writes the last value it was given once no new value arrived
// for delay.
type debounced[T any] struct {
	delay time.Duration
	save  func(T) error

	mu      sync.Mutex
	timer   *time.Timer
	pending *T
}

func newDebounced[T any](delay time.Duration, save func(T) error) *debounced[T] {
	return &debounced[T]{delay: delay, save: save}
}

func (d *debounced[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { _ = d.Flush() })
}

// Flush writes the pending value now, if any.
func (d *debounced[T]) Flush() error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	v := d.pending
	d.pending = nil
	d.mu.Unlock()

	if v == nil {
		return nil
	}
	return d.save(*v)
}
