package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"calgrid/internal/dateutil"
	"calgrid/internal/recur"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List events scheduled within a date range, with recurring
events expanded into their occurrences.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.`,
		Example: `  calgrid list
  calgrid list --start=2025-01-15
  calgrid list --start=2025-01-15 --end=2025-01-20`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			if noColor {
				DisableColor()
			}

			start, err := dateutil.ParseDate(startDate)
			if err != nil {
				return err
			}
			end := start
			if endDate != "" {
				end, err = dateutil.ParseDate(endDate)
				if err != nil {
					return err
				}
			}
			if end.Before(start) {
				return fmt.Errorf("end date %s is before start date %s",
					end.Format("2006-01-02"), start.Format("2006-01-02"))
			}

			events, err := a.store.GetAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			result := recur.Expand(events, dateutil.StartOfDay(start), dateutil.EndOfDay(end))
			for _, w := range result.Warnings {
				fmt.Fprintln(os.Stderr, formatMuted(
					fmt.Sprintf("warning: event %s has unusable rule %q: %v", w.EventID, w.Rule, w.Err)))
			}

			printed := 0
			for day := dateutil.StartOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
				var rows []string
				for _, o := range result.Occurrences {
					if dateutil.SameDay(o.Start, day) {
						rows = append(rows, a.formatOccurrenceRow(o))
					}
				}
				if len(rows) == 0 {
					continue
				}
				if printed > 0 {
					fmt.Println()
				}
				fmt.Println(formatDayHeader(day))
				for _, r := range rows {
					fmt.Println("  " + r)
				}
				printed++
			}

			if printed == 0 {
				fmt.Println("No events found in the specified date range.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's events",
		Long: `Display today's events, recurring occurrences included.

This is a quick view without opening the interactive calendar.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			if noColor {
				DisableColor()
			}

			today := dateutil.StartOfDay(time.Now())

			events, err := a.store.GetAll(context.Background())
			if err != nil {
				return fmt.Errorf("fetching events: %w", err)
			}

			result := recur.Expand(events, today, dateutil.EndOfDay(today))

			var rows []string
			for _, o := range result.Occurrences {
				if dateutil.SameDay(o.Start, today) {
					rows = append(rows, a.formatOccurrenceRow(o))
				}
			}

			fmt.Println(formatDayHeader(today))
			if len(rows) == 0 {
				fmt.Println("No events scheduled for today.")
				return nil
			}
			for _, r := range rows {
				fmt.Println("  " + r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
