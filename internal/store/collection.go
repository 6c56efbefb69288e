package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// LoadRaw reads the collection stored under key as undecoded records,
// together with its version.
//
// It never fails: a missing key, a read error, unparsable JSON or a value
// that is not a JSON array all yield an empty collection. Errors are logged.
func LoadRaw(ctx context.Context, s Store, key string) ([]json.RawMessage, int64) {
	data, version, err := s.Get(ctx, key)
	if err != nil {
		slog.Error("failed to read collection", "key", key, "error", err)
		return []json.RawMessage{}, version
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []json.RawMessage{}, version
	}
	if data[0] != '[' {
		if !json.Valid(data) {
			slog.Error("failed to parse collection", "key", key, "error", "invalid JSON")
		}
		return []json.RawMessage{}, version
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("failed to parse collection", "key", key, "error", err)
		return []json.RawMessage{}, version
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, version
}

// Load reads the collection stored under key together with its version.
//
// Records are decoded one at a time. A record that does not decode into T is
// logged and skipped; the rest of the collection is still returned.
func Load[T any](ctx context.Context, s Store, key string) ([]T, int64) {
	records, version := LoadRaw(ctx, s, key)

	items := make([]T, 0, len(records))
	for i, record := range records {
		var item T
		if err := json.Unmarshal(record, &item); err != nil {
			slog.Warn("skipping unreadable record", "key", key, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, version
}

// Save writes items under key if the stored version still equals version.
// A nil collection is saved as an empty one.
//
// Serialization and write failures are logged and swallowed. Only
// ErrConflict is returned, so the caller can reload and retry.
func Save[T any](ctx context.Context, s Store, key string, items []T, version int64) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		slog.Error("failed to serialize collection", "key", key, "error", err)
		return nil
	}
	return put(ctx, s, key, data, version)
}

// Append adds items to the end of the collection stored under key in a
// single read-modify-write.
//
// Existing records are written back as stored, including ones Load would
// skip. Like Save, only ErrConflict is returned.
func Append[T any](ctx context.Context, s Store, key string, items ...T) error {
	records, version := LoadRaw(ctx, s, key)

	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			slog.Error("failed to serialize record", "key", key, "error", err)
			return nil
		}
		records = append(records, data)
	}

	data, err := json.Marshal(records)
	if err != nil {
		slog.Error("failed to serialize collection", "key", key, "error", err)
		return nil
	}
	return put(ctx, s, key, data, version)
}

// Clear replaces the collection stored under key with an empty one.
//
// The key is overwritten rather than removed so its version keeps growing,
// and a writer holding a snapshot from before the clear still conflicts.
// A key that was never written is left alone.
func Clear(ctx context.Context, s Store, key string) error {
	_, version, err := s.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if version == 0 {
		return nil
	}
	if _, err := s.Put(ctx, key, []byte("[]"), version); err != nil {
		return err
	}
	return nil
}

func put(ctx context.Context, s Store, key string, data []byte, version int64) error {
	if _, err := s.Put(ctx, key, data, version); err != nil {
		if errors.Is(err, ErrConflict) {
			return err
		}
		slog.Error("failed to write collection", "key", key, "error", err)
	}
	return nil
}
