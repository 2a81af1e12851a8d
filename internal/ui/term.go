package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Timed events: cyan
	colorTimed = color.New(color.FgCyan)

	// All-day events: green
	colorAllDay = color.New(color.FgGreen)

	// Recurring markers: yellow
	colorRecurring = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatTimed formats the time range of a timed event.
func formatTimed(s string) string {
	return colorTimed.Sprint(s)
}

// formatAllDay formats the all-day marker.
func formatAllDay(s string) string {
	return colorAllDay.Sprint(s)
}

// formatRecurring formats the recurring-instance marker.
func formatRecurring(s string) string {
	return colorRecurring.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
