// Package event defines the core domain types for calgrid.
package event

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"calgrid/internal/dateutil"
)

// Validation errors.
var (
	ErrMissingStart   = errors.New("event start must be set")
	ErrMissingEnd     = errors.New("event end must be set")
	ErrEndBeforeStart = errors.New("event end must be after start")
	ErrEventNotFound  = errors.New("event not found")
)

// PaletteSize is the number of color slots an event Type may index into.
const PaletteSize = 8

// DefaultTitle is shown for events saved without a title.
const DefaultTitle = "(No title)"

// Event is a schedulable item. Start and End are absolute instants; for
// all-day events they sit on local day boundaries (see NormalizeAllDay).
type Event struct {
	ID             string
	Title          string
	Description    string
	Start          time.Time
	End            time.Time
	AllDay         bool
	Type           int    // 1..PaletteSize, display grouping only
	RecurrenceRule string // restricted RFC-5545 grammar, empty = one-off
}

// Occurrence is a concrete, dated instance produced by recurrence expansion.
// Occurrences are ephemeral: regenerated on every expansion pass, never
// persisted and never mutated by drag operations.
type Occurrence struct {
	Event
	RecurringInstance bool
	SourceID          string // base event ID for recurring instances
}

// New creates an Event with a fresh ID and validated times.
func New(title string, start, end time.Time) (*Event, error) {
	e := &Event{
		ID:    NewID(),
		Title: title,
		Start: start,
		End:   end,
		Type:  1,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks that the event's interval is well formed.
func (e *Event) Validate() error {
	if e.Start.IsZero() {
		return ErrMissingStart
	}
	if e.End.IsZero() {
		return ErrMissingEnd
	}
	if !e.End.After(e.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// DisplayTitle returns the title, or the default placeholder when empty.
func (e *Event) DisplayTitle() string {
	if e.Title == "" {
		return DefaultTitle
	}
	return e.Title
}

// Duration returns the event's length.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Recurring reports whether the event carries a recurrence rule.
func (e *Event) Recurring() bool {
	return e.RecurrenceRule != ""
}

// PaletteIndex returns the zero-based color slot for the event's type.
func (e *Event) PaletteIndex() int {
	if e.Type < 1 {
		return 0
	}
	return (e.Type - 1) % PaletteSize
}

// NormalizeAllDay snaps Start to local midnight of its day and End to the
// last millisecond of its day. Call when saving an event with AllDay set.
func (e *Event) NormalizeAllDay() {
	if !e.AllDay {
		return
	}
	e.Start = dateutil.StartOfDay(e.Start)
	e.End = dateutil.EndOfDay(e.End)
}

// Copy returns a shallow copy of the event.
func (e *Event) Copy() Event {
	return *e
}

// OccurrenceID derives the identifier for a recurring instance from its base
// event ID and occurrence start. The result is stable for the lifetime of a
// rendered window and never collides with a base event ID.
func OccurrenceID(baseID string, start time.Time) string {
	return baseID + "_" + strconv.FormatInt(start.UnixMilli(), 10)
}

// idAlphabet deliberately omits 0 and o/i to keep IDs unambiguous when read.
const idAlphabet = "123456789abcdefghjklmnpqrstuvwxyz"

// NewID returns a 21-character random event identifier.
func NewID() string {
	buf := make([]byte, 21)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp-derived ID rather than panic mid-interaction.
		return fmt.Sprintf("ev%d", time.Now().UnixNano())
	}
	id := make([]byte, len(buf))
	for i, b := range buf {
		id[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(id)
}
