package dateutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 14, 30, 45, 123456, time.Local)
	got := StartOfDay(in)
	want := date(2025, 3, 14)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 14, 30, 0, 0, time.Local)
	got := EndOfDay(in)
	want := time.Date(2025, 3, 14, 23, 59, 59, 999_000_000, time.Local)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "same day different times",
			a:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local),
			b:    time.Date(2025, 3, 14, 23, 59, 0, 0, time.Local),
			want: true,
		},
		{
			name: "adjacent days",
			a:    time.Date(2025, 3, 14, 23, 59, 0, 0, time.Local),
			b:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local),
			want: false,
		},
		{
			name: "same day-of-month different month",
			a:    time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local),
			b:    time.Date(2025, 4, 14, 12, 0, 0, 0, time.Local),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2025-03-14 is a Friday.
	friday := date(2025, 3, 14)

	tests := []struct {
		name     string
		t        time.Time
		firstDay time.Weekday
		want     time.Time
	}{
		{name: "sunday start", t: friday, firstDay: time.Sunday, want: date(2025, 3, 9)},
		{name: "monday start", t: friday, firstDay: time.Monday, want: date(2025, 3, 10)},
		{name: "on the first day itself", t: date(2025, 3, 9), firstDay: time.Sunday, want: date(2025, 3, 9)},
		{name: "sunday with monday start goes back six days", t: date(2025, 3, 9), firstDay: time.Monday, want: date(2025, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.t, tt.firstDay)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfWeek() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartAndEndOfMonth(t *testing.T) {
	in := date(2025, 2, 14)
	if got := StartOfMonth(in); !got.Equal(date(2025, 2, 1)) {
		t.Errorf("StartOfMonth() = %v", got)
	}
	if got := EndOfMonth(in); !got.Equal(date(2025, 2, 28)) {
		t.Errorf("EndOfMonth() = %v", got)
	}
	// Leap year.
	if got := EndOfMonth(date(2024, 2, 1)); !got.Equal(date(2024, 2, 29)) {
		t.Errorf("EndOfMonth(leap) = %v", got)
	}
}

func TestMinuteOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 9, 30, 59, 0, time.Local)
	if got := MinuteOfDay(in); got != 570 {
		t.Errorf("MinuteOfDay() = %d, want 570", got)
	}
}

func TestAtMinuteOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	got := AtMinuteOfDay(in, 90)
	want := time.Date(2025, 3, 14, 1, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("AtMinuteOfDay() = %v, want %v", got, want)
	}
}

func TestParseRelativeDate(t *testing.T) {
	// 2025-03-14 is a Friday.
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty is today", input: "", want: date(2025, 3, 14)},
		{name: "today", input: "today", want: date(2025, 3, 14)},
		{name: "tomorrow", input: "tomorrow", want: date(2025, 3, 15)},
		{name: "yesterday", input: "yesterday", want: date(2025, 3, 13)},
		{name: "next monday", input: "monday", want: date(2025, 3, 17)},
		{name: "same weekday jumps a week", input: "friday", want: date(2025, 3, 21)},
		{name: "absolute", input: "2025-06-01", want: date(2025, 6, 1)},
		{name: "case insensitive", input: "TUESDAY", want: date(2025, 3, 18)},
		{name: "garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRelativeDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRelativeDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseRelativeDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
