package state

import (
	"database/sql"
	"errors"
)

type Session struct {
	Folder string // folder shown in the file browser
	File   string // audio file open in the editor, empty if none
}

func getSession(db *sql.DB) (*Session, error) {
	var s Session
	err := db.QueryRow(`
		SELECT COALESCE(last_folder, ''), COALESCE(last_file, '')
		FROM session_state WHERE id = 1
	`).Scan(&s.Folder, &s.File)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // first run
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	_, err := db.Exec(`
		INSERT INTO session_state (id, last_folder, last_file)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_folder = excluded.last_folder,
			last_file = excluded.last_file
	`, s.Folder, s.File)
	return err
}
