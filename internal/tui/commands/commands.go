// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calgrid/internal/event"
)

// EventsLoadedMsg is sent when the event set is (re)loaded from storage.
type EventsLoadedMsg struct {
	Events []event.Event
}

// EventSavedMsg is sent after an event is persisted.
type EventSavedMsg struct {
	ID string
}

// EventDeletedMsg is sent after an event is removed.
type EventDeletedMsg struct {
	ID string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// TickMsg is sent by the minute ticker that drives the now indicator.
type TickMsg struct {
	Now time.Time
}

// LoadEvents loads every event from the store.
func LoadEvents(store event.Store) tea.Cmd {
	return func() tea.Msg {
		events, err := store.GetAll(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return EventsLoadedMsg{Events: events}
	}
}

// SaveEvent persists an event and reports its ID.
func SaveEvent(store event.Store, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		if err := store.Upsert(context.Background(), e); err != nil {
			return ErrMsg{Err: err}
		}
		return EventSavedMsg{ID: e.ID}
	}
}

// DeleteEvent removes an event by ID.
func DeleteEvent(store event.Store, id string) tea.Cmd {
	return func() tea.Msg {
		if err := store.Delete(context.Background(), id); err != nil {
			return ErrMsg{Err: err}
		}
		return EventDeletedMsg{ID: id}
	}
}

// Tick schedules the next minute tick.
func Tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return TickMsg{Now: t}
	})
}

// Status emits a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
