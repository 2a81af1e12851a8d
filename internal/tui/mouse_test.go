package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calgrid/internal/event"
)

func TestDayAtXWeekView(t *testing.T) {
	m := newTestModel(t)
	m.view = viewWeek
	m.anchor = time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local) // Wednesday

	// Sunday-start week containing Mar 12 begins Mar 9.
	colW := m.dayColWidth()

	day, ok := m.dayAtX(gutterWidth)
	if !ok || day.Day() != 9 {
		t.Errorf("expected first column to be Mar 9, got %v (ok=%v)", day, ok)
	}

	day, ok = m.dayAtX(gutterWidth + 3*colW)
	if !ok || day.Day() != 12 {
		t.Errorf("expected fourth column to be Mar 12, got %v (ok=%v)", day, ok)
	}

	if _, ok := m.dayAtX(2); ok {
		t.Error("expected gutter clicks to miss")
	}
}

func TestDayAtXDayView(t *testing.T) {
	m := newTestModel(t)
	m.view = viewDay
	m.anchor = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

	day, ok := m.dayAtX(gutterWidth + 5)
	if !ok || day.Day() != 12 || day.Hour() != 0 {
		t.Errorf("expected anchor day at midnight, got %v (ok=%v)", day, ok)
	}
}

func TestMonthCellAt(t *testing.T) {
	m := newTestModel(t)
	m.view = viewMonth
	m.anchor = time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

	cellW, cellH := m.monthCellSize()
	if cellW <= 0 || cellH <= 0 {
		t.Fatalf("degenerate cell size %dx%d", cellW, cellH)
	}

	// Top-left cell of March 2025 with a Sunday start is Feb 23.
	day, ok := m.monthCellAt(0, timeGridTop)
	if !ok {
		t.Fatal("expected hit in first cell")
	}
	if day.Month() != time.February || day.Day() != 23 {
		t.Errorf("expected Feb 23, got %v", day)
	}

	// One cell right is Feb 24.
	day, ok = m.monthCellAt(cellW, timeGridTop)
	if !ok || day.Day() != 24 {
		t.Errorf("expected Feb 24, got %v (ok=%v)", day, ok)
	}

	// Above the grid misses.
	if _, ok := m.monthCellAt(0, 0); ok {
		t.Error("expected header clicks to miss")
	}
}

func TestOccurrenceAtHitsEventRows(t *testing.T) {
	m := newTestModel(t)
	m.view = viewDay
	m.anchor = time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	m.scrollOffset = 0

	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	m.events = []event.Event{
		{ID: "a", Title: "Meeting", Start: start, End: start.Add(time.Hour), Type: 1},
	}

	// 09:00-10:00 covers half-hour rows 18 and 19.
	day := m.anchor
	occ, edge := m.occurrenceAt(day, timeGridTop+18)
	if occ == nil || occ.ID != "a" {
		t.Fatalf("expected hit on first event row, got %v", occ)
	}
	if edge {
		t.Error("first row should not be the resize edge")
	}

	occ, edge = m.occurrenceAt(day, timeGridTop+19)
	if occ == nil || !edge {
		t.Errorf("expected bottom row to be the resize edge, got occ=%v edge=%v", occ, edge)
	}

	if occ, _ := m.occurrenceAt(day, timeGridTop+25); occ != nil {
		t.Errorf("expected empty row to miss, got %v", occ)
	}
}

func TestMouseSelectOnClick(t *testing.T) {
	m := newTestModel(t)
	m.view = viewDay
	m.anchor = time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	m.scrollOffset = 0

	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	m.events = []event.Event{
		{ID: "a", Title: "Meeting", Start: start, End: start.Add(time.Hour), Type: 1},
	}

	press := tea.MouseMsg{X: gutterWidth + 2, Y: timeGridTop + 18, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: gutterWidth + 2, Y: timeGridTop + 18, Action: tea.MouseActionRelease}

	m = updateModel(t, m, press)
	m = updateModel(t, m, release)

	if m.selectedID != "a" {
		t.Errorf("expected click to select the event, got %q", m.selectedID)
	}
}

func TestMouseIgnoredInPromptMode(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModePrompt

	press := tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = updateModel(t, m, press)

	if m.controller.Dragging() {
		t.Error("mouse should be inert while the prompt is open")
	}
}
