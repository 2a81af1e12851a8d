package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"calgrid/internal/event"
)

func TestUpsertInsert(t *testing.T) {
	store := newTestStore(t)

	e := mustEvent(t, "Standup", date(2025, 3, 14, 9, 0), date(2025, 3, 14, 9, 30))
	e.ID = ""

	if err := store.Upsert(context.Background(), e); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if e.ID == "" {
		t.Error("expected ID to be assigned on insert")
	}

	got, err := store.Get(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Standup" {
		t.Errorf("expected title Standup, got %q", got.Title)
	}
	if !got.Start.Equal(e.Start) {
		t.Errorf("expected start %v, got %v", e.Start, got.Start)
	}
	if !got.End.Equal(e.End) {
		t.Errorf("expected end %v, got %v", e.End, got.End)
	}
}

func TestUpsertUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := mustEvent(t, "Lunch", date(2025, 3, 14, 12, 0), date(2025, 3, 14, 13, 0))
	if err := store.Upsert(ctx, e); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	e.Title = "Team lunch"
	e.Start = date(2025, 3, 14, 12, 30)
	e.End = date(2025, 3, 14, 13, 30)
	if err := store.Upsert(ctx, e); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 event after update, got %d", len(all))
	}
	if all[0].Title != "Team lunch" {
		t.Errorf("expected updated title, got %q", all[0].Title)
	}
	if !all[0].Start.Equal(e.Start) {
		t.Errorf("expected updated start %v, got %v", e.Start, all[0].Start)
	}
}

func TestUpsertRejectsInvalid(t *testing.T) {
	store := newTestStore(t)

	e := &event.Event{ID: event.NewID(), Title: "Backwards", Start: date(2025, 3, 14, 13, 0), End: date(2025, 3, 14, 12, 0)}
	err := store.Upsert(context.Background(), e)
	if !errors.Is(err, event.ErrEndBeforeStart) {
		t.Errorf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestGetAllOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	late := mustEvent(t, "Late", date(2025, 3, 14, 15, 0), date(2025, 3, 14, 16, 0))
	early := mustEvent(t, "Early", date(2025, 3, 14, 9, 0), date(2025, 3, 14, 10, 0))
	for _, e := range []*event.Event{late, early} {
		if err := store.Upsert(ctx, e); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	if all[0].Title != "Early" || all[1].Title != "Late" {
		t.Errorf("expected start-time ordering, got %q then %q", all[0].Title, all[1].Title)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := mustEvent(t, "Gone soon", date(2025, 3, 14, 9, 0), date(2025, 3, 14, 10, 0))
	if err := store.Upsert(ctx, e); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := store.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := store.Get(ctx, e.ID)
	if !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound after delete, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "missing")
	if !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestRoundTripRecurringAllDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := mustEvent(t, "Holiday", date(2025, 7, 4, 0, 0), date(2025, 7, 4, 0, 1))
	e.AllDay = true
	e.NormalizeAllDay()
	e.Type = 5
	e.RecurrenceRule = "FREQ=YEARLY"
	e.Description = "Fireworks"

	if err := store.Upsert(ctx, e); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.AllDay {
		t.Error("expected all-day flag to survive round trip")
	}
	if got.Type != 5 {
		t.Errorf("expected type 5, got %d", got.Type)
	}
	if got.RecurrenceRule != "FREQ=YEARLY" {
		t.Errorf("expected recurrence rule to survive, got %q", got.RecurrenceRule)
	}
	if got.Description != "Fireworks" {
		t.Errorf("expected description to survive, got %q", got.Description)
	}
	if !got.End.Equal(e.End) {
		t.Errorf("expected end-of-day end %v, got %v", e.End, got.End)
	}
}

func mustEvent(t *testing.T, title string, start, end time.Time) *event.Event {
	t.Helper()
	e, err := event.New(title, start, end)
	if err != nil {
		t.Fatalf("creating event: %v", err)
	}
	return e
}

func date(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
