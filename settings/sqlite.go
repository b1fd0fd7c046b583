package settings

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend stores key-value pairs in a SQLite table. Each Set is a
// single INSERT OR REPLACE statement, which gives the whole-record
// atomic replace the store requires.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("settings: open sqlite: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("settings: create table: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Get returns the stored value for key.
func (b *SQLiteBackend) Get(key string) ([]byte, bool, error) {
	var value []byte

	err := b.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("settings: select %s: %w", key, err)
	}

	return value, true, nil
}

// Set replaces the value for key.
func (b *SQLiteBackend) Set(key string, value []byte) error {
	_, err := b.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("settings: upsert %s: %w", key, err)
	}

	return nil
}

// Delete removes the row for key.
func (b *SQLiteBackend) Delete(key string) error {
	_, err := b.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("settings: delete %s: %w", key, err)
	}

	return nil
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
