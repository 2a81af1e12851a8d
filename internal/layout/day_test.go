package layout

import (
	"reflect"
	"testing"
	"time"

	"calgrid/internal/event"
)

func occAt(id string, day time.Time, startMin, endMin int) event.Occurrence {
	return event.Occurrence{Event: event.Event{
		ID:    id,
		Start: day.Add(time.Duration(startMin) * time.Minute),
		End:   day.Add(time.Duration(endMin) * time.Minute),
	}}
}

func TestLayoutDayColumnPacking(t *testing.T) {
	day := date(2025, 3, 14)
	occs := []event.Occurrence{
		occAt("one", day, 9*60, 10*60),    // 9:00-10:00
		occAt("two", day, 9*60+30, 10*60+30), // 9:30-10:30
		occAt("three", day, 10*60, 11*60), // 10:00-11:00
	}

	got := LayoutDay(occs)
	cols := make(map[string]int)
	for _, p := range got {
		cols[p.ID] = p.ColIndex
	}

	// one and three share a column (no overlap); two gets its own.
	if cols["one"] != cols["three"] {
		t.Errorf("events one and three in columns %d and %d, want same", cols["one"], cols["three"])
	}
	if cols["two"] == cols["one"] {
		t.Error("event two shares a column with an overlapping event")
	}

	// Two columns total → width 40% (100/2 * 0.8), lefts at 0% and 50%.
	for _, p := range got {
		if p.WidthPercent != 40 {
			t.Errorf("event %s width = %v, want 40", p.ID, p.WidthPercent)
		}
		if want := float64(p.ColIndex) * 50; p.LeftPercent != want {
			t.Errorf("event %s left = %v, want %v", p.ID, p.LeftPercent, want)
		}
	}
}

func TestLayoutDayNoOverlapSingleColumn(t *testing.T) {
	day := date(2025, 3, 14)
	occs := []event.Occurrence{
		occAt("a", day, 9*60, 10*60),
		occAt("b", day, 10*60, 11*60),
		occAt("c", day, 13*60, 14*60),
	}

	got := LayoutDay(occs)
	for _, p := range got {
		if p.ColIndex != 0 {
			t.Errorf("event %s in column %d, want 0", p.ID, p.ColIndex)
		}
		if p.WidthPercent != 80 || p.LeftPercent != 0 {
			t.Errorf("event %s geometry = %v%%/%v%%, want 80/0", p.ID, p.WidthPercent, p.LeftPercent)
		}
	}
}

func TestLayoutDaySortOrder(t *testing.T) {
	day := date(2025, 3, 14)
	// Same start: the longer event sorts first and claims column 0.
	occs := []event.Occurrence{
		occAt("short", day, 9*60, 9*60+30),
		occAt("long", day, 9*60, 11*60),
	}

	got := LayoutDay(occs)
	if got[0].ID != "long" || got[0].ColIndex != 0 {
		t.Errorf("first placed = %s col %d, want long col 0", got[0].ID, got[0].ColIndex)
	}
	if got[1].ID != "short" || got[1].ColIndex != 1 {
		t.Errorf("second placed = %s col %d, want short col 1", got[1].ID, got[1].ColIndex)
	}
}

func TestLayoutDayIdempotent(t *testing.T) {
	day := date(2025, 3, 14)
	occs := []event.Occurrence{
		occAt("one", day, 9*60, 10*60),
		occAt("two", day, 9*60+30, 10*60+30),
		occAt("three", day, 10*60, 11*60),
		occAt("four", day, 15*60, 16*60),
	}

	first := LayoutDay(occs)
	second := LayoutDay(occs)
	if !reflect.DeepEqual(first, second) {
		t.Error("LayoutDay is not a pure function of its input")
	}
}

func TestLayoutDayEmpty(t *testing.T) {
	if got := LayoutDay(nil); got != nil {
		t.Errorf("LayoutDay(nil) = %v, want nil", got)
	}
}

func TestLayoutDayAdjacentEventsDoNotOverlap(t *testing.T) {
	day := date(2025, 3, 14)
	// Back-to-back events share an instant but not an interval.
	occs := []event.Occurrence{
		occAt("a", day, 9*60, 10*60),
		occAt("b", day, 10*60, 11*60),
	}
	got := LayoutDay(occs)
	if got[0].ColIndex != got[1].ColIndex {
		t.Error("back-to-back events were split into separate columns")
	}
}
