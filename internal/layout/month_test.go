package layout

import (
	"testing"
	"time"

	"calgrid/internal/event"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestMonthCellsAlwaysFortyTwo(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
	}{
		{name: "february non-leap", anchor: date(2025, 2, 10)},
		{name: "february leap", anchor: date(2024, 2, 10)},
		{name: "31-day month spanning six weeks", anchor: date(2025, 3, 1)},
		{name: "month starting on first weekday", anchor: date(2025, 6, 1)}, // June 2025 starts Sunday
		{name: "december year boundary", anchor: date(2025, 12, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := MonthCells(tt.anchor, time.Sunday)
			if len(cells) != MonthCellCount {
				t.Fatalf("got %d cells, want %d", len(cells), MonthCellCount)
			}
			for i := 1; i < len(cells); i++ {
				if !cells[i].Date.Equal(cells[i-1].Date.AddDate(0, 0, 1)) {
					t.Fatalf("cells %d and %d are not consecutive days", i-1, i)
				}
			}
		})
	}
}

func TestMonthCellsLeadingTrailingDays(t *testing.T) {
	// March 2025 starts on a Saturday.
	cells := MonthCells(date(2025, 3, 15), time.Sunday)

	if !cells[0].Date.Equal(date(2025, 2, 23)) {
		t.Errorf("first cell = %v, want 2025-02-23", cells[0].Date)
	}
	if cells[0].IsCurrentMonth {
		t.Error("leading cell marked as current month")
	}
	if !cells[6].Date.Equal(date(2025, 3, 1)) || !cells[6].IsCurrentMonth {
		t.Errorf("cell 6 = %+v, want current-month 2025-03-01", cells[6])
	}
	last := cells[MonthCellCount-1]
	if !last.Date.Equal(date(2025, 4, 5)) || last.IsCurrentMonth {
		t.Errorf("last cell = %+v, want non-current 2025-04-05", last)
	}
}

func TestMonthCellsFirstDayOfWeek(t *testing.T) {
	// With Monday as the first weekday, March 2025 (starting Saturday)
	// leads with Mon Feb 24.
	cells := MonthCells(date(2025, 3, 15), time.Monday)
	if !cells[0].Date.Equal(date(2025, 2, 24)) {
		t.Errorf("first cell = %v, want 2025-02-24", cells[0].Date)
	}
	if cells[0].Date.Weekday() != time.Monday {
		t.Errorf("first cell weekday = %v, want Monday", cells[0].Date.Weekday())
	}
}

func TestEventsForDate(t *testing.T) {
	day := date(2025, 3, 14)
	occs := []event.Occurrence{
		{Event: event.Event{ID: "a", Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)}},
		{Event: event.Event{ID: "b", Start: day.AddDate(0, 0, 1), End: day.AddDate(0, 0, 1).Add(time.Hour)}},
		{Event: event.Event{ID: "c", Start: day.Add(23 * time.Hour), End: day.Add(25 * time.Hour)}},
	}

	got := EventsForDate(day, occs)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("got IDs %s,%s want a,c", got[0].ID, got[1].ID)
	}
}
