package state

import (
	"database/sql"

	"github.com/llehouerou/lyricsync/internal/db"
)

// migrations[i] produces schema version i+1. Append only.
var migrations = []db.Migration{
	`CREATE TABLE session_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_folder TEXT,
		last_file TEXT
	)`,
	`CREATE TABLE recent_files (
		path TEXT PRIMARY KEY,
		cursor_line INTEGER NOT NULL DEFAULT 0,
		opened_at INTEGER NOT NULL
	);
	CREATE INDEX idx_recent_files_opened_at ON recent_files(opened_at DESC)`,
}

func initSchema(conn *sql.DB) error {
	return db.Migrate(conn, migrations)
}
