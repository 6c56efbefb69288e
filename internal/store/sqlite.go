package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite is a Store backed by the kv table of a SQLite database.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite wraps an open database. The schema must already exist.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db}
}

// Get returns the value and version stored under key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var value []byte
	var version int64
	err := s.DB.QueryRowContext(ctx,
		`SELECT value, version FROM kv WHERE key = ?`, key,
	).Scan(&value, &version)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, version, nil
}

// Put writes value if the stored version equals version.
func (s *SQLite) Put(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	var result sql.Result
	var err error

	if version == 0 {
		result, err = s.DB.ExecContext(ctx,
			`INSERT INTO kv (key, value, version) VALUES (?, ?, 1)
			 ON CONFLICT(key) DO NOTHING`,
			key, value,
		)
	} else {
		result, err = s.DB.ExecContext(ctx,
			`UPDATE kv SET value = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
			 WHERE key = ? AND version = ?`,
			value, key, version,
		)
	}
	if err != nil {
		return 0, fmt.Errorf("putting %s: %w", key, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("putting %s: %w", key, err)
	}
	if n == 0 {
		return 0, ErrConflict
	}
	return version + 1, nil
}
