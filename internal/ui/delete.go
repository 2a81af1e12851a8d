package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an event",
		Long: `Delete an event by ID.

Deleting a recurring event removes every occurrence. Occurrence IDs
(base ID plus a timestamp suffix) resolve to their base event.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			id := baseEventID(args[0])
			if err := a.store.Delete(context.Background(), id); err != nil {
				return fmt.Errorf("deleting event: %w", err)
			}
			fmt.Printf("Deleted event %s\n", id)
			return nil
		},
	}
}

// baseEventID strips the occurrence suffix from a recurring instance ID.
func baseEventID(id string) string {
	if i := strings.LastIndexByte(id, '_'); i > 0 {
		return id[:i]
	}
	return id
}
