package db

import (
	"database/sql"
	"fmt"
)

// schema is the full SQLite database schema.
//
// Each board collection is one row in kv; value holds the JSON array and
// version is bumped on every successful write.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    version    INTEGER NOT NULL CHECK (version > 0),
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// PostgresSchema is the equivalent schema for the Postgres backend.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    version    BIGINT NOT NULL CHECK (version > 0),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the kv table if it doesn't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
