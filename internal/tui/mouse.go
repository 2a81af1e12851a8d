package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calgrid/internal/dateutil"
	"calgrid/internal/event"
	"calgrid/internal/interaction"
	"calgrid/internal/layout"
	"calgrid/internal/tui/commands"
)

// handleMouseMsg bridges terminal mouse events to the pointer controller.
// Terminal cells are translated to layout pixels so snapping and thresholds
// behave the same as any other front end.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mouseDown(msg.X, msg.Y)

	case tea.MouseActionMotion:
		return m.mouseMove(msg.X, msg.Y)

	case tea.MouseActionRelease:
		return m.mouseUp(msg.X, msg.Y)
	}

	return m, nil
}

func (m Model) mouseDown(x, y int) (tea.Model, tea.Cmd) {
	if m.view == viewMonth {
		return m.monthMouseDown(x, y)
	}
	return m.timeGridMouseDown(x, y)
}

func (m Model) timeGridMouseDown(x, y int) (tea.Model, tea.Cmd) {
	day, ok := m.dayAtX(x)
	if !ok || y < timeGridTop || y >= timeGridTop+m.visibleRows() {
		return m, nil
	}

	px := m.rowToPx(y)
	at := interaction.Point{X: float64(x), Y: px}

	if occ, onEdge := m.occurrenceAt(day, y); occ != nil {
		action := interaction.ActionMove
		if onEdge {
			action = interaction.ActionResize
		}
		if err := m.controller.PointerDown(*occ, at, action); err != nil {
			m.setStatus(dragRefusedMessage(err))
		}
		return m, nil
	}

	// Empty space: propose a new event at the pressed slot.
	if proposal := m.controller.ClickTimeGrid(day, px); proposal != nil {
		return m.createFromProposal(proposal)
	}
	return m, nil
}

func (m Model) monthMouseDown(x, y int) (tea.Model, tea.Cmd) {
	day, ok := m.monthCellAt(x, y)
	if !ok {
		return m, nil
	}

	at := interaction.Point{X: float64(x), Y: float64(y)}
	occs := m.occurrencesOn(day)

	if len(occs) > 0 {
		occ := occs[0]
		if m.selectedID != "" {
			// Prefer the selected occurrence when it lives in this cell.
			for _, o := range occs {
				if o.ID == m.selectedID {
					occ = o
					break
				}
			}
		}
		if err := m.controller.PointerDown(occ, at, interaction.ActionMonthMove); err != nil {
			m.setStatus(dragRefusedMessage(err))
		}
		return m, nil
	}

	if proposal := m.controller.ClickMonthCell(day); proposal != nil {
		return m.createFromProposal(proposal)
	}
	return m, nil
}

func (m Model) mouseMove(x, y int) (tea.Model, tea.Cmd) {
	if m.view == viewMonth {
		m.controller.PointerMove(interaction.Point{X: float64(x), Y: float64(y)})
		if day, ok := m.monthCellAt(x, y); ok {
			m.controller.HoverDay(day)
		}
		return m, nil
	}

	m.controller.PointerMove(interaction.Point{X: float64(x), Y: m.rowToPx(y)})
	return m, nil
}

func (m Model) mouseUp(x, y int) (tea.Model, tea.Cmd) {
	at := interaction.Point{X: float64(x), Y: float64(y)}
	if m.view != viewMonth {
		at.Y = m.rowToPx(y)
	}
	m.controller.PointerMove(at)

	result, err := m.controller.PointerUp(context.Background())
	if err != nil {
		m.setStatus(fmt.Sprintf("Error: %v", err))
		return m, nil
	}

	switch result.Kind {
	case interaction.ResultSelect:
		m.selectedID = result.EventID
		return m, nil
	case interaction.ResultCommit:
		m.selectedID = result.EventID
		return m, tea.Batch(commands.LoadEvents(m.store), commands.Status("Rescheduled"))
	case interaction.ResultRejected:
		return m, commands.Status("Change rejected")
	}
	return m, nil
}

// createFromProposal saves a new untitled event for a creation gesture.
func (m Model) createFromProposal(p *interaction.Proposal) (tea.Model, tea.Cmd) {
	e, err := event.New("", p.Start, p.End)
	if err != nil {
		return m, commands.Status(fmt.Sprintf("Error: %v", err))
	}
	e.AllDay = p.AllDay
	e.NormalizeAllDay()
	return m, tea.Batch(
		commands.SaveEvent(m.store, e),
		commands.Status(fmt.Sprintf("Created %s", e.Start.Format("Jan 2 15:04"))),
	)
}

// occurrenceAt finds the timed occurrence covering the given terminal row in
// a day column. The second return reports whether the hit is on the bottom
// edge, which starts a resize instead of a move.
func (m Model) occurrenceAt(day time.Time, y int) (*event.Occurrence, bool) {
	row := y - timeGridTop + m.scrollOffset
	for _, o := range m.occurrencesOn(day) {
		if o.AllDay {
			continue
		}
		box := m.metrics.EventBox(o.Start, o.End)
		top := int(box.Top / m.pxPerRow())
		bottom := int((box.Top + box.Height) / m.pxPerRow())
		if bottom <= top {
			bottom = top + 1
		}
		if row >= top && row < bottom {
			occ := o
			return &occ, row == bottom-1 && bottom-top > 1
		}
	}
	return nil, false
}

// rowToPx converts a terminal row to a layout pixel offset within the day.
func (m Model) rowToPx(y int) float64 {
	row := y - timeGridTop + m.scrollOffset
	return float64(row) * m.pxPerRow()
}

// dayAtX resolves the day column under a terminal column in time views.
func (m Model) dayAtX(x int) (time.Time, bool) {
	if x < gutterWidth {
		return time.Time{}, false
	}
	if m.view == viewDay {
		return dateutil.StartOfDay(m.anchor), true
	}

	colWidth := m.dayColWidth()
	if colWidth <= 0 {
		return time.Time{}, false
	}
	col := (x - gutterWidth) / colWidth
	if col < 0 || col > 6 {
		return time.Time{}, false
	}
	start := dateutil.StartOfWeek(m.anchor, m.firstDay())
	return start.AddDate(0, 0, col), true
}

// monthCellAt resolves the month cell under a terminal coordinate.
func (m Model) monthCellAt(x, y int) (time.Time, bool) {
	cellW, cellH := m.monthCellSize()
	if cellW <= 0 || cellH <= 0 || y < timeGridTop {
		return time.Time{}, false
	}

	col := x / cellW
	row := (y - timeGridTop) / cellH
	if col < 0 || col > 6 || row < 0 || row > 5 {
		return time.Time{}, false
	}

	cells := layout.MonthCells(m.anchor, m.firstDay())
	return cells[row*7+col].Date, true
}

func dragRefusedMessage(err error) string {
	if errors.Is(err, interaction.ErrRecurringNotDraggable) {
		return "Recurring occurrences can't be dragged; edit the series instead"
	}
	return fmt.Sprintf("Error: %v", err)
}
