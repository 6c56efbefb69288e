package db

import (
	"path/filepath"
	"testing"
)

func TestOpenFileAppliesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.sqlite3")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected wal journal mode, got %q", mode)
	}

	// EnsureSchema is idempotent.
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(database); err != nil {
			t.Fatalf("EnsureSchema run %d: %v", i+1, err)
		}
	}

	// kv is only read by key, so the primary key is its only index, as in
	// the Postgres schema.
	var indexes int
	if err := database.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = 'kv' AND sql IS NOT NULL`).Scan(&indexes); err != nil {
		t.Fatalf("listing indexes: %v", err)
	}
	if indexes != 0 {
		t.Errorf("expected no secondary indexes on kv, found %d", indexes)
	}

	if _, err := database.Exec(`INSERT INTO kv (key, value, version) VALUES ('prayers', '[]', 1)`); err != nil {
		t.Fatalf("inserting into kv: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO kv (key, value, version) VALUES ('needs', '[]', 0)`); err == nil {
		t.Error("expected version check constraint to reject 0")
	}
}

func TestNewTestDBIsolated(t *testing.T) {
	a := NewTestDB(t)
	b := NewTestDB(t)

	if _, err := a.Exec(`INSERT INTO kv (key, value, version) VALUES ('events', '[]', 1)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var n int
	if err := b.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("test databases should be isolated, found %d rows", n)
	}
}
