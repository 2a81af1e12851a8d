package tui

import (
	"github.com/charmbracelet/lipgloss"

	"calgrid/internal/config"
)

// Styles holds all lipgloss styles for the TUI, derived from the configured
// palette.
type Styles struct {
	colorFg      lipgloss.Color
	colorFgMuted lipgloss.Color
	colorAccent  lipgloss.Color
	colorNow     lipgloss.Color

	// Event palette, one style per configured color
	eventStyles []lipgloss.Style

	// Title and headers
	TitleStyle          lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Month grid cells
	CellStyle         lipgloss.Style
	CellOutsideStyle  lipgloss.Style
	CellTodayStyle    lipgloss.Style
	CellSelectedStyle lipgloss.Style

	// Time grid
	TimeColumnStyle lipgloss.Style
	NowMarkerStyle  lipgloss.Style
	GhostStyle      lipgloss.Style
	SelectedStyle   lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	ErrorStyle  lipgloss.Style

	// Prompt
	PromptStyle lipgloss.Style
}

// NewStyles creates styles from the configured palette.
func NewStyles(cfg *config.Config) *Styles {
	fg := lipgloss.Color("#cdd6f4")
	fgMuted := lipgloss.Color("#6c7086")
	accent := lipgloss.Color(cfg.Color(0))
	now := lipgloss.Color("#f38ba8")

	s := &Styles{
		colorFg:      fg,
		colorFgMuted: fgMuted,
		colorAccent:  accent,
		colorNow:     now,
	}

	s.eventStyles = make([]lipgloss.Style, len(cfg.UI.Colors))
	for i, c := range cfg.UI.Colors {
		s.eventStyles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	s.DayHeaderStyle = lipgloss.NewStyle().Foreground(fgMuted).Align(lipgloss.Center)
	s.DayHeaderTodayStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Align(lipgloss.Center)

	s.CellStyle = lipgloss.NewStyle().Foreground(fg)
	s.CellOutsideStyle = lipgloss.NewStyle().Foreground(fgMuted)
	s.CellTodayStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	s.CellSelectedStyle = lipgloss.NewStyle().Reverse(true)

	s.TimeColumnStyle = lipgloss.NewStyle().Foreground(fgMuted).Width(6).Align(lipgloss.Right)
	s.NowMarkerStyle = lipgloss.NewStyle().Foreground(now)
	s.GhostStyle = lipgloss.NewStyle().Foreground(fgMuted).Italic(true)
	s.SelectedStyle = lipgloss.NewStyle().Reverse(true)

	s.StatusStyle = lipgloss.NewStyle().Foreground(fg)
	s.HelpStyle = lipgloss.NewStyle().Foreground(fgMuted)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))

	s.PromptStyle = lipgloss.NewStyle().Foreground(fg)

	return s
}

// EventStyle returns the style for an event's palette slot.
func (s *Styles) EventStyle(paletteIdx int) lipgloss.Style {
	if len(s.eventStyles) == 0 {
		return lipgloss.NewStyle()
	}
	if paletteIdx < 0 {
		paletteIdx = 0
	}
	return s.eventStyles[paletteIdx%len(s.eventStyles)]
}
