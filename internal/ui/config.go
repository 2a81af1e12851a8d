package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"calgrid/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View configuration",
		Long: `Display the active configuration and where it was loaded from.

Example:
  calgrid config
  calgrid config init`,
		RunE: func(_ *cobra.Command, _ []string) error {
			configPath := config.DefaultConfigPath()
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				fmt.Printf("Config file: %s (not present, using defaults)\n\n", configPath)
			} else {
				fmt.Printf("Config file: %s\n\n", configPath)
			}
			printConfig(a.config)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(_ *cobra.Command, _ []string) error {
			configPath := config.DefaultConfigPath()
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}
			if err := config.Default().SaveTo(configPath); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Printf("Created %s\n", configPath)
			return nil
		},
	})

	return cmd
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[ui]")
	fmt.Printf("  time_format       = %s\n", cfg.UI.TimeFormat)
	fmt.Printf("  first_day_of_week = %d\n", cfg.UI.FirstDayOfWeek)
	fmt.Printf("  colors            = %s\n", strings.Join(cfg.UI.Colors, ", "))
	fmt.Printf("  hour_height_px    = %g\n", cfg.UI.HourHeight)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path           = %s\n", cfg.Storage.DBPath)
}
