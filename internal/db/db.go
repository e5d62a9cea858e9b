// Package db holds database/sql helpers for the SQLite state store.
package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// WithTx runs fn in a transaction and commits when fn returns nil.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Migration is the SQL that takes the schema from one version to the next.
type Migration string

// Migrate applies the migrations the database has not seen yet, each in
// its own transaction. migrations[i] produces version i+1.
func Migrate(db *sql.DB, migrations []Migration) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("schema_version: %w", err)
	}
	current, err := Version(db)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema v%d is newer than this program (v%d)", current, len(migrations))
	}

	for i := current; i < len(migrations); i++ {
		err := WithTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(migrations[i])); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1)
			return err
		})
		if err != nil {
			return fmt.Errorf("migrate to v%d: %w", i+1, err)
		}
	}
	return nil
}

// Version returns the applied schema version, 0 for a new database.
func Version(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&v)
	return v, err
}
