package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id              TEXT PRIMARY KEY,
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			start_ms        INTEGER NOT NULL,
			end_ms          INTEGER NOT NULL,
			all_day         INTEGER NOT NULL DEFAULT 0,
			type            INTEGER NOT NULL DEFAULT 1,
			recurrence_rule TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_ms);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
