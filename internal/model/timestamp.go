package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamp is a record's creation time.
//
// A stored value that is not a valid RFC 3339 time decodes to the zero time
// and is kept as-is, so writing the record back does not change it.
type Timestamp struct {
	time.Time
	raw json.RawMessage
}

// At returns a Timestamp for t.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Valid reports whether the stored value was a readable time.
func (t Timestamp) Valid() bool {
	return t.raw == nil
}

// Equal reports whether t and u hold the same instant, or the same
// unreadable value.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Time.Equal(u.Time) && bytes.Equal(t.raw, u.raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.raw != nil {
		return t.raw, nil
	}
	return t.Time.MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.raw = nil
	if err := t.Time.UnmarshalJSON(data); err != nil || string(data) == "null" {
		t.Time = time.Time{}
		t.raw = append(json.RawMessage(nil), data...)
	}
	return nil
}
