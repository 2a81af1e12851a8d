// Package layout computes calendar grid geometry: month cell bucketing,
// per-day event buckets, time-grid column packing and pixel/time conversion.
// It is pure computation over plain data so it can be driven by any frontend.
package layout

import (
	"time"

	"calgrid/internal/dateutil"
	"calgrid/internal/event"
)

const (
	// MonthRows and MonthCols fix the month grid at 6x7 cells so the view
	// keeps the same height regardless of month length or start weekday.
	MonthRows = 6
	MonthCols = 7
	// MonthCellCount is the total number of cells in a month grid.
	MonthCellCount = MonthRows * MonthCols
)

// Cell is one day cell of the month grid.
type Cell struct {
	Date           time.Time // local midnight
	DayNumber      int
	IsCurrentMonth bool
}

// MonthCells returns the 42 cells for the month containing anchor, padded
// with leading and trailing days of the adjacent months. firstDay selects
// which weekday heads each row.
func MonthCells(anchor time.Time, firstDay time.Weekday) []Cell {
	monthStart := dateutil.StartOfMonth(anchor)
	gridStart := dateutil.StartOfWeek(monthStart, firstDay)

	cells := make([]Cell, MonthCellCount)
	for i := range cells {
		d := gridStart.AddDate(0, 0, i)
		cells[i] = Cell{
			Date:           d,
			DayNumber:      d.Day(),
			IsCurrentMonth: d.Month() == monthStart.Month() && d.Year() == monthStart.Year(),
		}
	}
	return cells
}

// EventsForDate returns the occurrences whose start falls on the same local
// calendar day as date, preserving input order.
func EventsForDate(date time.Time, occs []event.Occurrence) []event.Occurrence {
	var out []event.Occurrence
	for _, occ := range occs {
		if dateutil.SameDay(occ.Start, date) {
			out = append(out, occ)
		}
	}
	return out
}
