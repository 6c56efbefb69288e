// Package store holds the board's persistence: a versioned key-value port
// with in-memory, SQLite and Postgres implementations, and the collection
// adapter that reads and writes JSON arrays through it.
package store

import (
	"context"
	"errors"
)

// ErrConflict is returned by Put when the stored version no longer matches
// the version the caller read.
var ErrConflict = errors.New("version conflict")

// Store is a key-value store with a per-key version counter.
//
// A missing key has version 0. Put succeeds only if the current version
// equals version and returns the new version. Keys are never removed, so a
// version only grows.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, version int64, err error)
	Put(ctx context.Context, key string, value []byte, version int64) (int64, error)
}
