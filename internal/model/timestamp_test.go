package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
		want  time.Time
	}{
		{"rfc3339", `"2024-03-01T10:00:00Z"`, true, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"fractional", `"2024-03-01T10:00:00.123Z"`, true, time.Date(2024, 3, 1, 10, 0, 0, 123000000, time.UTC)},
		{"invalid date text", `"Invalid Date"`, false, time.Time{}},
		{"number", `1709287200000`, false, time.Time{}},
		{"object", `{"when":"soon"}`, false, time.Time{}},
		{"null", `null`, false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if ts.Valid() != tt.valid {
				t.Errorf("Valid() = %v, want %v", ts.Valid(), tt.valid)
			}
			if !ts.Time.Equal(tt.want) {
				t.Errorf("Time = %v, want %v", ts.Time, tt.want)
			}

			out, err := json.Marshal(ts)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tt.in {
				t.Errorf("expected %s to be written back unchanged, got %s", tt.in, out)
			}
		})
	}
}

func TestPrayerKeepsUnreadableDate(t *testing.T) {
	in := `{"id":"p1","name":"Ana","msg":"hi","image":"","private":false,"date":"Invalid Date"}`

	var p Prayer
	if err := json.Unmarshal([]byte(in), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Name != "Ana" || !p.Date.IsZero() {
		t.Errorf("unexpected prayer %+v", p)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != in {
		t.Errorf("expected %s, got %s", in, out)
	}
}

func TestTimestampEqual(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !At(now).Equal(At(now.In(time.FixedZone("CET", 3600)))) {
		t.Error("expected the same instant in different zones to be equal")
	}

	var bad Timestamp
	json.Unmarshal([]byte(`"Invalid Date"`), &bad)
	if bad.Equal(Timestamp{}) {
		t.Error("expected an unreadable value to differ from the zero timestamp")
	}
}
