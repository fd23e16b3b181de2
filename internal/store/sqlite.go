package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

const schema = `
-- A single blobs table backs the key-value contract; each logical entity
-- (card collection, progress ledger, session log) lives under one key.
CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME NOT NULL
);
`

// SQLiteKV is a KV backed by a local sqlite file.
type SQLiteKV struct {
	conn *sql.DB
}

// OpenSQLite creates a new database connection and ensures the schema is up
// to date.
func OpenSQLite(dsn string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteKV{conn: db}, nil
}

// Close closes the database connection.
func (db *SQLiteKV) Close() error {
	return db.conn.Close()
}

// Load returns the blob stored under key, or ErrNotFound.
func (db *SQLiteKV) Load(key string) ([]byte, error) {
	var value []byte
	row := db.conn.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load blob %s: %w", key, err)
	}
	return value, nil
}

// Save stores the blob under key, replacing any previous value.
func (db *SQLiteKV) Save(key string, blob []byte) error {
	_, err := db.conn.Exec(`
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, blob, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save blob %s: %w", key, err)
	}
	return nil
}
