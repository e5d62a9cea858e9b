package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/lyricsync/internal/db"
)

// maxRecentFiles bounds the recent_files table.
const maxRecentFiles = 50

// RecentFile is an audio file opened in the editor.
type RecentFile struct {
	Path       string
	CursorLine int
	OpenedAt   time.Time
}

// TouchFile records that path was opened now, keeping its cursor line.
func (m *Manager) TouchFile(path string) error {
	return m.touch(path, time.Now())
}

func (m *Manager) touch(path string, now time.Time) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO recent_files (path, cursor_line, opened_at)
			VALUES (?, 0, ?)
			ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at
		`, path, now.UnixNano()); err != nil {
			return err
		}
		_, err := tx.Exec(`
			DELETE FROM recent_files WHERE path NOT IN (
				SELECT path FROM recent_files ORDER BY opened_at DESC LIMIT ?
			)
		`, maxRecentFiles)
		return err
	})
}

// SaveCursor stores the editor cursor line for path.
func (m *Manager) SaveCursor(path string, line int) error {
	_, err := m.db.Exec(`
		UPDATE recent_files SET cursor_line = ? WHERE path = ?
	`, max(line, 0), path)
	return err
}

// Cursor returns the saved cursor line for path, 0 if unknown.
func (m *Manager) Cursor(path string) (int, error) {
	var line int
	err := m.db.QueryRow(`SELECT cursor_line FROM recent_files WHERE path = ?`, path).Scan(&line)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return line, err
}

// RecentFiles returns up to limit files, most recently opened first.
func (m *Manager) RecentFiles(limit int) ([]RecentFile, error) {
	rows, err := m.db.Query(`
		SELECT path, cursor_line, opened_at FROM recent_files
		ORDER BY opened_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []RecentFile
	for rows.Next() {
		var f RecentFile
		var openedAt int64
		if err := rows.Scan(&f.Path, &f.CursorLine, &openedAt); err != nil {
			return nil, err
		}
		f.OpenedAt = time.Unix(0, openedAt)
		files = append(files, f)
	}
	return files, rows.Err()
}
