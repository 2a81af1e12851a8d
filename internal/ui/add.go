package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"calgrid/internal/dateutil"
	"calgrid/internal/event"
	"calgrid/internal/recur"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		end         string
		allDay      bool
		repeat      string
		eventType   int
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a new event to the calendar.

Example:
  calgrid add "Write documentation" --date=2025-01-10 --start=09:00 --end=11:00
  calgrid add "Team offsite" --date=2025-01-10 --all-day
  calgrid add "Standup" --date=2025-01-06 --start=09:00 --end=09:15 --repeat="FREQ=WEEKLY"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			day, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}

			var startAt, endAt time.Time
			if allDay {
				startAt = dateutil.StartOfDay(day)
				endAt = dateutil.EndOfDay(day)
			} else {
				if start == "" || end == "" {
					return fmt.Errorf("timed events need --start and --end, or use --all-day")
				}
				startAt, err = atClock(day, start)
				if err != nil {
					return err
				}
				endAt, err = atClock(day, end)
				if err != nil {
					return err
				}
			}

			e, err := event.New(args[0], startAt, endAt)
			if err != nil {
				return err
			}
			e.AllDay = allDay
			e.Description = description
			e.Type = eventType

			if repeat != "" {
				if _, err := recur.ParseRule(repeat); err != nil {
					return fmt.Errorf("invalid repeat rule: %w", err)
				}
				e.RecurrenceRule = repeat
			}

			if err := a.store.Upsert(context.Background(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Printf("Created event %s: %s\n", e.ID, a.formatOccurrenceRow(event.Occurrence{Event: *e}))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Recurrence rule (FREQ=..., optional INTERVAL= and UNTIL=)")
	cmd.Flags().IntVar(&eventType, "type", 1, "Event type (palette slot, 1-8)")
	cmd.Flags().StringVar(&description, "desc", "", "Event description")

	return cmd
}

// atClock combines a date with an HH:MM clock string.
func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
