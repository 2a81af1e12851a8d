// Package ui implements the command line interface.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"calgrid/internal/config"
	"calgrid/internal/db"
	"calgrid/internal/event"
	"calgrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  event.Store
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	opened bool // True when this App opened the store itself
}

// NewApp creates a new CLI application with the given store and config.
func NewApp(store event.Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg}

	a.root = &cobra.Command{
		Use:   "calgrid",
		Short: "A terminal calendar with drag-to-edit scheduling",
		Long: `Calgrid is a terminal calendar for planning your week.

It shows month, week, and day views, expands recurring events,
and lets you create and reschedule events with the mouse or
with quick-add phrases like "lunch tomorrow 2pm for 1 hour".`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.store, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.quickCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.deleteCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("calgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ensureStore opens the database on first use. The interactive calendar
// manages its own store, so plain `calgrid` never pays this cost up front.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	dbPath := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.store = store
	a.opened = true
	return nil
}

// Close releases the store if this App opened it.
func (a *App) Close() error {
	if a.opened && a.store != nil {
		return a.store.Close()
	}
	return nil
}
