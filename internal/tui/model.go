// Package tui provides the interactive terminal calendar.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"calgrid/internal/config"
	"calgrid/internal/dateutil"
	"calgrid/internal/db"
	"calgrid/internal/event"
	"calgrid/internal/interaction"
	"calgrid/internal/layout"
	"calgrid/internal/quickadd"
	"calgrid/internal/recur"
	"calgrid/internal/tui/commands"
)

// viewMode selects which calendar view is rendered.
type viewMode int

const (
	viewMonth viewMode = iota
	viewWeek
	viewDay
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // Quick-add prompt is open
	ModeConfirmDelete
)

// rowsPerHour fixes the time grid at half-hour rows.
const rowsPerHour = 2

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store  event.Store
	config *config.Config

	styles  *Styles
	metrics layout.Metrics

	// Interaction
	controller *interaction.Controller
	parser     *quickadd.Parser

	// State
	events     []event.Event
	anchor     time.Time // Focused day; decides the rendered period
	view       viewMode
	mode       Mode
	selectedID string
	now        time.Time
	loading    bool

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width        int
	height       int
	scrollOffset int // First visible half-hour row in time views

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// New creates a new TUI model.
func New(store event.Store, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "lunch tomorrow 2pm for 1 hour"
	ti.CharLimit = 256
	ti.Width = 48

	metrics := layout.NewMetrics(cfg.UI.HourHeight)
	now := time.Now()

	return &Model{
		store:        store,
		config:       cfg,
		styles:       NewStyles(cfg),
		metrics:      metrics,
		controller:   interaction.New(store, metrics, time.Now),
		parser:       quickadd.New(),
		anchor:       dateutil.StartOfDay(now),
		view:         viewMonth,
		mode:         ModeNormal,
		now:          now,
		loading:      true,
		prompt:       ti,
		scrollOffset: 8 * rowsPerHour, // Open time views at 08:00
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(commands.LoadEvents(m.store), commands.Tick())
}

// pxPerRow returns how many layout pixels one terminal row covers.
func (m Model) pxPerRow() float64 {
	return m.metrics.HourHeight / rowsPerHour
}

// expandView returns the recurrence window view for the active calendar view.
func (m Model) expandView() recur.View {
	switch m.view {
	case viewMonth:
		return recur.ViewMonth
	case viewWeek:
		return recur.ViewWeek
	default:
		return recur.ViewDay
	}
}

// viewRange returns the date range covered by the active view.
func (m Model) viewRange() (time.Time, time.Time) {
	switch m.view {
	case viewMonth:
		cells := layout.MonthCells(m.anchor, m.firstDay())
		return cells[0].Date, dateutil.EndOfDay(cells[len(cells)-1].Date)
	case viewWeek:
		start := dateutil.StartOfWeek(m.anchor, m.firstDay())
		return start, dateutil.EndOfDay(start.AddDate(0, 0, 6))
	default:
		return dateutil.StartOfDay(m.anchor), dateutil.EndOfDay(m.anchor)
	}
}

func (m Model) firstDay() time.Weekday {
	return time.Weekday(m.config.UI.FirstDayOfWeek)
}

// occurrences expands the stored events for the active view window.
func (m Model) occurrences() []event.Occurrence {
	start, end := m.viewRange()
	start, end = recur.PadWindow(m.expandView(), start, end)
	result := recur.Expand(m.events, start, end)
	return result.Occurrences
}

// occurrencesOn returns the occurrences that start on the given day, sorted
// the way the day layout sorts them.
func (m Model) occurrencesOn(day time.Time) []event.Occurrence {
	var out []event.Occurrence
	for _, o := range m.occurrences() {
		if dateutil.SameDay(o.Start, day) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.After(out[j].End)
	})
	return out
}

// visibleOccurrences returns every occurrence in the active view, in display
// order, for selection cycling.
func (m Model) visibleOccurrences() []event.Occurrence {
	start, end := m.viewRange()
	var out []event.Occurrence
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		out = append(out, m.occurrencesOn(day)...)
	}
	return out
}

// selectedOccurrence resolves the current selection, if any.
func (m Model) selectedOccurrence() *event.Occurrence {
	if m.selectedID == "" {
		return nil
	}
	for _, o := range m.visibleOccurrences() {
		if o.ID == m.selectedID {
			occ := o
			return &occ
		}
	}
	return nil
}

// setStatus records a temporary status message.
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(3 * time.Second)
}

// Run starts the TUI.
func Run(store event.Store, cfg *config.Config) error {
	return RunWithDebug(store, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(store event.Store, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	opened := false
	if store == nil {
		s, err := openStore(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		store = s
		opened = true
	}

	p := tea.NewProgram(*New(store, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	if opened {
		_ = store.Close()
	}
	return err
}

func openStore(dbPath string) (event.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return store, nil
}
