package ui

import (
	"fmt"
	"strings"
	"time"

	"calgrid/internal/event"
)

// clockLayout returns the time layout for the configured clock format.
func (a *App) clockLayout() string {
	if a.config.UI.TimeFormat == "12" {
		return "3:04pm"
	}
	return "15:04"
}

// formatOccurrenceRow renders one occurrence as a list row.
func (a *App) formatOccurrenceRow(o event.Occurrence) string {
	var b strings.Builder

	if o.AllDay {
		b.WriteString(formatAllDay("all day"))
	} else {
		layout := a.clockLayout()
		b.WriteString(formatTimed(fmt.Sprintf("%s-%s",
			o.Start.Format(layout), o.End.Format(layout))))
	}

	b.WriteString("  ")
	b.WriteString(o.DisplayTitle())

	if o.RecurringInstance {
		b.WriteString(" ")
		b.WriteString(formatRecurring("↻"))
	}

	return truncate(b.String(), termWidth())
}

// formatDayHeader renders a date as a section header.
func formatDayHeader(day time.Time) string {
	return fmt.Sprintf("=== %s ===", formatHeader(day.Format("Monday, January 2, 2006")))
}

// truncate cuts a string to at most width runes. ANSI sequences count toward
// the limit, which keeps this cheap and close enough for terminal rows.
func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
