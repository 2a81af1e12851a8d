package recur

import (
	"time"

	"github.com/teambition/rrule-go"

	"calgrid/internal/dateutil"
	"calgrid/internal/event"
)

// maxOccurrencesPerEvent caps expansion so a pathological rule cannot stall a
// render pass.
const maxOccurrencesPerEvent = 1000

// View identifies which calendar layout a window is being expanded for.
type View int

const (
	ViewMonth View = iota
	ViewWeek
	ViewDay
)

// Warning records a per-event expansion failure that was recovered from.
type Warning struct {
	EventID string
	Rule    string
	Err     error
}

// Result holds expanded occurrences plus any recovered per-event failures.
type Result struct {
	Occurrences []event.Occurrence
	Warnings    []Warning
}

// PadWindow widens the strictly visible range so events overlapping the
// boundary are not clipped from edge cells: one week either side for month
// view, one day for week and day views.
func PadWindow(view View, start, end time.Time) (time.Time, time.Time) {
	if view == ViewMonth {
		return start.AddDate(0, 0, -7), end.AddDate(0, 0, 7)
	}
	return start.AddDate(0, 0, -1), end.AddDate(0, 0, 1)
}

// Expand turns base events into the occurrences intersecting the inclusive
// window [windowStart, windowEnd]. Non-recurring events pass through once,
// unchanged. A malformed rule never drops its event and never aborts the
// batch: the event is emitted once as non-recurring and a Warning recorded.
func Expand(events []event.Event, windowStart, windowEnd time.Time) Result {
	var res Result
	if windowEnd.Before(windowStart) {
		windowStart, windowEnd = windowEnd, windowStart
	}

	for i := range events {
		base := &events[i]
		if !base.Recurring() {
			res.Occurrences = append(res.Occurrences, event.Occurrence{Event: base.Copy()})
			continue
		}

		occs, err := expandOne(base, windowStart, windowEnd)
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{
				EventID: base.ID,
				Rule:    base.RecurrenceRule,
				Err:     err,
			})
			res.Occurrences = append(res.Occurrences, event.Occurrence{Event: base.Copy()})
			continue
		}
		res.Occurrences = append(res.Occurrences, occs...)
	}

	return res
}

// expandOne generates the occurrences of one recurring event inside the
// window, anchored at the base event's start and preserving its duration.
func expandOne(base *event.Event, windowStart, windowEnd time.Time) ([]event.Occurrence, error) {
	rule, err := ParseRule(base.RecurrenceRule)
	if err != nil {
		return nil, err
	}

	opt := rrule.ROption{
		Freq:     rule.Freq.rruleFreq(),
		Interval: rule.Interval,
		Dtstart:  base.Start,
	}
	if !rule.Until.IsZero() {
		opt.Until = rule.Until
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, err
	}

	starts := r.Between(windowStart, windowEnd, true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	duration := base.Duration()
	occs := make([]event.Occurrence, 0, len(starts))
	for _, start := range starts {
		occ := event.Occurrence{
			Event:             base.Copy(),
			RecurringInstance: true,
			SourceID:          base.ID,
		}
		if base.AllDay {
			occ.Start = dateutil.StartOfDay(start)
			occ.End = dateutil.EndOfDay(occ.Start.Add(duration))
		} else {
			occ.Start = start
			occ.End = start.Add(duration)
		}
		occ.ID = event.OccurrenceID(base.ID, occ.Start)
		occs = append(occs, occ)
	}

	return occs, nil
}
