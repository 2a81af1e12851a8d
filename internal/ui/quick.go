package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"calgrid/internal/event"
	"calgrid/internal/quickadd"
)

func (a *App) quickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick [text]",
		Short: "Add an event from a natural language phrase",
		Long: `Create an event from a free-form phrase.

The phrase is parsed for a date, a time, and an optional duration.
Whatever is left over becomes the event title.

Example:
  calgrid quick "lunch with Ana tomorrow 1pm for 45 minutes"
  calgrid quick "dentist friday 10am"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			text := strings.Join(args, " ")

			parsed := quickadd.New().Parse(text, time.Now())
			if parsed.Start == nil {
				return fmt.Errorf("no date or time found in %q", text)
			}

			e, err := event.New(parsed.SubjectOrDefault(), *parsed.Start, *parsed.End)
			if err != nil {
				return err
			}

			if err := a.store.Upsert(context.Background(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Printf("Created event %s on %s: %s\n",
				e.ID,
				e.Start.Format("2006-01-02"),
				a.formatOccurrenceRow(event.Occurrence{Event: *e}),
			)
			return nil
		},
	}
}
