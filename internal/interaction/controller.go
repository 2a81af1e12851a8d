// Package interaction interprets pointer event sequences into event create,
// move and resize operations. The controller is a state machine over plain
// coordinates and instants; it produces data (ghost geometry, proposals,
// commits) and leaves all drawing to the binding layer.
package interaction

import (
	"context"
	"errors"
	"math"
	"time"

	"calgrid/internal/dateutil"
	"calgrid/internal/event"
	"calgrid/internal/layout"
)

// Controller errors.
var (
	ErrRecurringNotDraggable = errors.New("recurring occurrences cannot be dragged")
	ErrDragNotArmed          = errors.New("no drag in progress")
	ErrInvalidPointer        = errors.New("pointer coordinates are not finite")
)

const (
	// DragThresholdPx is the displacement on either axis that turns a
	// pressed pointer into a drag. Below it a release is a plain click.
	DragThresholdPx = 5.0
	// MinDuration is the shortest interval a resize may produce.
	MinDuration = 30 * time.Minute
	// DefaultCreateDuration is the span of a click-created time-grid event.
	DefaultCreateDuration = time.Hour
	// clickCooldown suppresses the synthetic click browsers and terminals
	// deliver immediately after a pointer-up that ended a drag.
	clickCooldown = 50 * time.Millisecond
)

// Action is the manipulation requested by the grabbed handle.
type Action int

const (
	ActionMove Action = iota
	ActionResize
	ActionMonthMove
)

// state is the drag lifecycle phase.
type state int

const (
	stateIdle state = iota
	stateArmed
	stateDragging
)

// Point is a pointer position in pixels.
type Point struct {
	X, Y float64
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// DragState is the transient interaction state, owned exclusively by the
// controller and reset to idle after every pointer-up.
type DragState struct {
	EventID       string
	Action        Action
	IsDragging    bool
	Origin        Point
	OriginalStart time.Time
	OriginalEnd   time.Time
	// Ghost is a rendering-only copy of the event being dragged; it is
	// never written back to the store until commit.
	Ghost *event.Event
	// GhostDay is the month cell currently under the pointer during a
	// month-move.
	GhostDay time.Time
}

// ResultKind tells the binding layer what a pointer-up produced.
type ResultKind int

const (
	// ResultNone: nothing happened (no drag armed, or cooldown).
	ResultNone ResultKind = iota
	// ResultSelect: a plain click on an event; open its popover.
	ResultSelect
	// ResultCommit: a drag finished and the event was written to the store.
	ResultCommit
	// ResultRejected: the drag finished but produced an invalid interval;
	// prior state was left untouched.
	ResultRejected
)

// Result describes the outcome of a pointer-up.
type Result struct {
	Kind    ResultKind
	EventID string
	Event   *event.Event // the committed event, set for ResultCommit
}

// Proposal is an uncommitted new event surfaced to the editor collaborator.
// The controller never persists proposals itself.
type Proposal struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Controller consumes pointer events against a day/time coordinate mapping
// and commits finished drags to the store.
type Controller struct {
	store   event.Store
	metrics layout.Metrics
	now     func() time.Time

	state state
	drag  DragState
	// dragEndedAt implements the post-drag click cooldown.
	dragEndedAt time.Time
}

// New creates a Controller committing to store, using metrics for pixel/time
// conversion. now is injectable for tests; nil means time.Now.
func New(store event.Store, metrics layout.Metrics, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{store: store, metrics: metrics, now: now}
}

// State returns a copy of the current drag state for rendering.
func (c *Controller) State() DragState {
	return c.drag
}

// Dragging reports whether a drag has passed the movement threshold.
func (c *Controller) Dragging() bool {
	return c.state == stateDragging && c.drag.IsDragging
}

// inCooldown reports whether the post-drag click suppression window is open.
func (c *Controller) inCooldown() bool {
	return !c.dragEndedAt.IsZero() && c.now().Sub(c.dragEndedAt) < clickCooldown
}

// PointerDown arms a drag on occ with the given action. Recurring occurrences
// are not draggable (only their base event may be edited through the editor);
// arming one returns ErrRecurringNotDraggable and leaves the controller idle.
func (c *Controller) PointerDown(occ event.Occurrence, at Point, action Action) error {
	if !at.finite() {
		return ErrInvalidPointer
	}
	if occ.RecurringInstance {
		return ErrRecurringNotDraggable
	}
	ghost := occ.Event.Copy()
	c.state = stateArmed
	c.drag = DragState{
		EventID:       occ.ID,
		Action:        action,
		Origin:        at,
		OriginalStart: occ.Start,
		OriginalEnd:   occ.End,
		Ghost:         &ghost,
		GhostDay:      dateutil.StartOfDay(occ.Start),
	}
	return nil
}

// PointerMove advances an armed or active drag. Until the pointer leaves the
// threshold box around the origin nothing changes, which keeps jittery clicks
// from producing micro-drags. Once dragging, the ghost's interval is
// recomputed from the snapped delta; the stored event is untouched.
func (c *Controller) PointerMove(at Point) {
	if c.state == stateIdle || !at.finite() {
		return
	}

	if c.state == stateArmed {
		dx := math.Abs(at.X - c.drag.Origin.X)
		dy := math.Abs(at.Y - c.drag.Origin.Y)
		if dx <= DragThresholdPx && dy <= DragThresholdPx {
			return
		}
		c.state = stateDragging
		c.drag.IsDragging = true
	}

	switch c.drag.Action {
	case ActionResize:
		c.resizeGhost(at)
	case ActionMove:
		c.moveGhost(at)
	case ActionMonthMove:
		// The ghost follows the pointer; the target day is set by the
		// binding layer via HoverDay as the pointer crosses cells.
	}
}

// HoverDay updates the month-move target cell under the pointer.
func (c *Controller) HoverDay(day time.Time) {
	if c.state != stateDragging || c.drag.Action != ActionMonthMove {
		return
	}
	c.drag.GhostDay = dateutil.StartOfDay(day)
	c.applyMonthMove()
}

// moveGhost shifts both ends of the ghost by the snapped pointer delta,
// preserving the original duration.
func (c *Controller) moveGhost(at Point) {
	deltaMin := c.metrics.DeltaToMinutes(at.Y - c.drag.Origin.Y)
	duration := c.drag.OriginalEnd.Sub(c.drag.OriginalStart)
	start := c.drag.OriginalStart.Add(time.Duration(deltaMin) * time.Minute)
	c.drag.Ghost.Start = start
	c.drag.Ghost.End = start.Add(duration)
}

// resizeGhost moves only the ghost's end, clamped to the minimum duration.
func (c *Controller) resizeGhost(at Point) {
	deltaMin := c.metrics.DeltaToMinutes(at.Y - c.drag.Origin.Y)
	end := c.drag.OriginalEnd.Add(time.Duration(deltaMin) * time.Minute)
	if floor := c.drag.OriginalStart.Add(MinDuration); end.Before(floor) {
		end = floor
	}
	c.drag.Ghost.End = end
}

// applyMonthMove re-buckets the ghost onto GhostDay, preserving time-of-day
// and duration.
func (c *Controller) applyMonthMove() {
	duration := c.drag.OriginalEnd.Sub(c.drag.OriginalStart)
	start := dateutil.AtMinuteOfDay(c.drag.GhostDay, dateutil.MinuteOfDay(c.drag.OriginalStart))
	c.drag.Ghost.Start = start
	c.drag.Ghost.End = start.Add(duration)
}

// PointerUp resolves the gesture. A release before the threshold is a click
// (select); a release mid-drag validates the ghost interval and commits it to
// the store. Either way the controller returns to idle.
func (c *Controller) PointerUp(ctx context.Context) (Result, error) {
	if c.state == stateIdle {
		return Result{Kind: ResultNone}, nil
	}

	drag := c.drag
	wasDragging := c.state == stateDragging
	c.reset()

	if !wasDragging {
		return Result{Kind: ResultSelect, EventID: drag.EventID}, nil
	}
	c.dragEndedAt = c.now()

	ghost := drag.Ghost
	if ghost == nil || ghost.Start.IsZero() || ghost.End.IsZero() || !ghost.End.After(ghost.Start) {
		return Result{Kind: ResultRejected, EventID: drag.EventID}, nil
	}

	updated, err := c.store.Get(ctx, drag.EventID)
	if err != nil {
		return Result{Kind: ResultRejected, EventID: drag.EventID}, err
	}
	updated.Start = ghost.Start
	updated.End = ghost.End
	if err := updated.Validate(); err != nil {
		return Result{Kind: ResultRejected, EventID: drag.EventID}, err
	}
	if err := c.store.Upsert(ctx, updated); err != nil {
		return Result{Kind: ResultRejected, EventID: drag.EventID}, err
	}

	return Result{Kind: ResultCommit, EventID: drag.EventID, Event: updated}, nil
}

// Cancel aborts an in-flight drag with no commit, reverting to idle.
// Binding layers wire this to Escape so an accidental grab can always be
// backed out of.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = stateIdle
	c.drag = DragState{}
}

// ClickTimeGrid interprets a click on empty time-grid space as a creation
// gesture: a one-hour proposal starting at the clicked whole hour. Returns
// nil during a drag or its cooldown window, and for invalid coordinates.
func (c *Controller) ClickTimeGrid(day time.Time, offsetPx float64) *Proposal {
	if c.state != stateIdle || c.inCooldown() {
		return nil
	}
	if math.IsNaN(offsetPx) || math.IsInf(offsetPx, 0) || day.IsZero() {
		return nil
	}
	start := dateutil.StartOfDay(day).Add(time.Duration(c.metrics.OffsetToHour(offsetPx)) * time.Hour)
	return &Proposal{Start: start, End: start.Add(DefaultCreateDuration)}
}

// ClickMonthCell interprets a click on empty month-cell space as an all-day
// creation gesture spanning the clicked day.
func (c *Controller) ClickMonthCell(day time.Time) *Proposal {
	if c.state != stateIdle || c.inCooldown() {
		return nil
	}
	if day.IsZero() {
		return nil
	}
	return &Proposal{
		Start:  dateutil.StartOfDay(day),
		End:    dateutil.EndOfDay(day),
		AllDay: true,
	}
}
