package model

import (
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"announcements", KindAnnouncement, false},
		{"prayers", KindPrayer, false},
		{"needs", KindNeed, false},
		{"events", KindEvent, false},
		{"Prayers", "", true},
		{"", "", true},
		{"users", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShareable(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected bool
	}{
		{KindAnnouncement, false},
		{KindPrayer, true},
		{KindNeed, true},
		{KindEvent, false},
	}

	for _, tt := range tests {
		if got := tt.kind.Shareable(); got != tt.expected {
			t.Errorf("%s.Shareable() = %v, want %v", tt.kind, got, tt.expected)
		}
	}
}

func TestValidNeedType(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{NeedTypeNeed, true},
		{NeedTypeOffer, true},
		{"", false},
		{"OFFER", false},
		{"request", false},
	}

	for _, tt := range tests {
		if got := ValidNeedType(tt.in); got != tt.expected {
			t.Errorf("ValidNeedType(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}

func TestEventWhen(t *testing.T) {
	tests := []struct {
		date string
		want time.Time
		ok   bool
	}{
		{"2025-12-01", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), true},
		{"2025-12-01T18:30", time.Date(2025, 12, 1, 18, 30, 0, 0, time.UTC), true},
		{"2025-12-01T18:30:15", time.Date(2025, 12, 1, 18, 30, 15, 0, time.UTC), true},
		{"2025-12-01T18:30:00Z", time.Date(2025, 12, 1, 18, 30, 0, 0, time.UTC), true},
		{"next tuesday", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := Event{Date: tt.date}.When(time.UTC)
		if ok != tt.ok {
			t.Errorf("When(%q) ok = %v, want %v", tt.date, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("When(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
