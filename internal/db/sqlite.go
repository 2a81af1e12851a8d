// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"calgrid/internal/event"
)

// SQLite implements event.Store using SQLite. Start and end instants are
// stored as Unix epoch milliseconds.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// GetAll returns every stored event ordered by start time.
func (s *SQLite) GetAll(ctx context.Context) ([]event.Event, error) {
	query := `
		SELECT id, title, description, start_ms, end_ms, all_day, type, recurrence_rule
		FROM events
		ORDER BY start_ms, end_ms DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// Get retrieves an event by ID.
// Returns event.ErrEventNotFound if no event has that ID.
func (s *SQLite) Get(ctx context.Context, id string) (*event.Event, error) {
	query := `
		SELECT id, title, description, start_ms, end_ms, all_day, type, recurrence_rule
		FROM events
		WHERE id = ?
	`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", id, event.ErrEventNotFound)
	}
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Upsert inserts the event, replacing any existing row with the same ID.
// Events without an ID are assigned one.
func (s *SQLite) Upsert(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = event.NewID()
	}

	query := `
		INSERT INTO events (id, title, description, start_ms, end_ms, all_day, type, recurrence_rule)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			start_ms = excluded.start_ms,
			end_ms = excluded.end_ms,
			all_day = excluded.all_day,
			type = excluded.type,
			recurrence_rule = excluded.recurrence_rule
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		e.Start.UnixMilli(),
		e.End.UnixMilli(),
		boolToInt(e.AllDay),
		e.Type,
		e.RecurrenceRule,
	)
	if err != nil {
		return fmt.Errorf("upserting event: %w", err)
	}

	return nil
}

// Delete removes an event by ID.
// Returns event.ErrEventNotFound if no event has that ID.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s: %w", id, event.ErrEventNotFound)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*event.Event, error) {
	var (
		e       event.Event
		startMs int64
		endMs   int64
		allDay  int
	)

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&startMs,
		&endMs,
		&allDay,
		&e.Type,
		&e.RecurrenceRule,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	e.Start = time.UnixMilli(startMs)
	e.End = time.UnixMilli(endMs)
	e.AllDay = allDay != 0

	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
