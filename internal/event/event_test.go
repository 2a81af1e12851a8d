package event

import (
	"strings"
	"testing"
	"time"
)

func TestNewValidation(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{name: "valid", start: start, end: start.Add(time.Hour)},
		{name: "zero start", end: start, wantErr: ErrMissingStart},
		{name: "zero end", start: start, wantErr: ErrMissingEnd},
		{name: "zero duration", start: start, end: start, wantErr: ErrEndBeforeStart},
		{name: "negative duration", start: start, end: start.Add(-time.Minute), wantErr: ErrEndBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("standup", tt.start, tt.end)
			if err != tt.wantErr {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeAllDay(t *testing.T) {
	e := Event{
		Start:  time.Date(2025, 3, 14, 14, 30, 0, 0, time.Local),
		End:    time.Date(2025, 3, 15, 9, 15, 0, 0, time.Local),
		AllDay: true,
	}
	e.NormalizeAllDay()

	wantStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2025, 3, 15, 23, 59, 59, 999_000_000, time.Local)
	if !e.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", e.Start, wantStart)
	}
	if !e.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", e.End, wantEnd)
	}
}

func TestNormalizeAllDayNoopWhenTimed(t *testing.T) {
	start := time.Date(2025, 3, 14, 14, 30, 0, 0, time.Local)
	e := Event{Start: start, End: start.Add(time.Hour)}
	e.NormalizeAllDay()
	if !e.Start.Equal(start) {
		t.Errorf("Start changed for non-all-day event: %v", e.Start)
	}
}

func TestOccurrenceID(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	got := OccurrenceID("abc123", start)
	want := "abc123_1741942800000"
	if got != want {
		t.Errorf("OccurrenceID() = %q, want %q", got, want)
	}

	// Distinct starts derive distinct IDs for the same base.
	other := OccurrenceID("abc123", start.Add(time.Hour))
	if got == other {
		t.Error("occurrence IDs for different starts must differ")
	}
}

func TestDisplayTitle(t *testing.T) {
	e := Event{}
	if got := e.DisplayTitle(); got != DefaultTitle {
		t.Errorf("DisplayTitle() = %q, want %q", got, DefaultTitle)
	}
	e.Title = "lunch"
	if got := e.DisplayTitle(); got != "lunch" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "lunch")
	}
}

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		typ  int
		want int
	}{
		{typ: 1, want: 0},
		{typ: 8, want: 7},
		{typ: 9, want: 0}, // wraps
		{typ: 0, want: 0}, // unset defaults to first slot
	}
	for _, tt := range tests {
		e := Event{Type: tt.typ}
		if got := e.PaletteIndex(); got != tt.want {
			t.Errorf("PaletteIndex(type=%d) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 21 {
			t.Fatalf("NewID() length = %d, want 21", len(id))
		}
		if strings.ContainsAny(id, "0oiOI_") {
			t.Fatalf("NewID() contains ambiguous characters: %q", id)
		}
		if seen[id] {
			t.Fatalf("NewID() produced a duplicate: %q", id)
		}
		seen[id] = true
	}
}
