package layout

import (
	"sort"

	"calgrid/internal/event"
)

// gutterFactor shaves each packed column's width so side-by-side events keep
// a visible seam between them.
const gutterFactor = 0.8

// Positioned is an occurrence with its assigned time-grid column geometry.
// Geometry is recomputed on every layout pass and never cached on the event.
type Positioned struct {
	event.Occurrence
	ColIndex     int
	WidthPercent float64
	LeftPercent  float64
}

// LayoutDay packs one day's occurrences into side-by-side columns.
//
// Events are ordered by start ascending, ties broken by end descending so
// longer events claim columns first; the ordering makes column assignment
// deterministic. Each event goes into the first column with no interval
// overlap, opening a new column when none fits. Greedy first-fit is not
// minimal for every overlap graph, but it is stable and matches the common
// case of at most two-way overlaps.
func LayoutDay(occs []event.Occurrence) []Positioned {
	if len(occs) == 0 {
		return nil
	}

	out := make([]Positioned, len(occs))
	for i, occ := range occs {
		out[i] = Positioned{Occurrence: occ}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.After(out[j].End)
	})

	// columns[c] holds the indexes into out already placed in column c.
	var columns [][]int
	for i := range out {
		placed := false
		for c, members := range columns {
			overlaps := false
			for _, m := range members {
				if intervalsOverlap(&out[i], &out[m]) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				columns[c] = append(columns[c], i)
				out[i].ColIndex = c
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []int{i})
			out[i].ColIndex = len(columns) - 1
		}
	}

	colWidth := 100.0 / float64(len(columns))
	for i := range out {
		out[i].WidthPercent = colWidth * gutterFactor
		out[i].LeftPercent = float64(out[i].ColIndex) * colWidth
	}

	return out
}

// intervalsOverlap reports whether two occurrences share any time:
// max(start) < min(end).
func intervalsOverlap(a, b *Positioned) bool {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	return start.Before(end)
}
