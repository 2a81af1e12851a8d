package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"calgrid/internal/event"
	"calgrid/internal/tui/commands"
)

// handleKeyMsg dispatches key presses by interaction mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.controller.Cancel()
		m.selectedID = ""
		return m, nil

	case "m":
		m.view = viewMonth
		return m, nil

	case "w":
		m.view = viewWeek
		return m, nil

	case "d":
		m.view = viewDay
		return m, nil

	case "t":
		m.anchor = m.today()
		return m, nil

	case "h", "left":
		m.anchor = m.shiftAnchor(-1)
		return m, nil

	case "l", "right":
		m.anchor = m.shiftAnchor(1)
		return m, nil

	case "j", "down":
		m.moveSelection(1)
		return m, nil

	case "k", "up":
		m.moveSelection(-1)
		return m, nil

	case "ctrl+d":
		m.scrollOffset = clampScroll(m.scrollOffset+4, m.visibleRows())
		return m, nil

	case "ctrl+u":
		m.scrollOffset = clampScroll(m.scrollOffset-4, m.visibleRows())
		return m, nil

	case "a", "i":
		m.mode = ModePrompt
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, nil

	case "y":
		return m.yankSelected()

	case "x", "delete":
		if occ := m.selectedOccurrence(); occ != nil {
			m.mode = ModeConfirmDelete
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.prompt.Value())
		m.mode = ModeNormal
		m.prompt.Blur()
		if text == "" {
			return m, nil
		}
		return m.submitQuickAdd(text)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = ModeNormal
		occ := m.selectedOccurrence()
		if occ == nil {
			return m, nil
		}
		// Deleting an occurrence deletes its whole series.
		id := occ.ID
		if occ.RecurringInstance {
			id = occ.SourceID
		}
		return m, commands.DeleteEvent(m.store, id)

	case "n", "esc":
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

// submitQuickAdd parses the prompt text and saves the resulting event.
func (m Model) submitQuickAdd(text string) (tea.Model, tea.Cmd) {
	parsed := m.parser.Parse(text, time.Now())
	if parsed.Start == nil {
		return m, commands.Status(fmt.Sprintf("No date or time found in %q", text))
	}

	e, err := event.New(parsed.SubjectOrDefault(), *parsed.Start, *parsed.End)
	if err != nil {
		return m, commands.Status(fmt.Sprintf("Error: %v", err))
	}

	m.anchor = *parsed.Start
	return m, tea.Batch(
		commands.SaveEvent(m.store, e),
		commands.Status(fmt.Sprintf("Added %q", e.DisplayTitle())),
	)
}

// yankSelected copies the selected event's summary to the clipboard.
func (m Model) yankSelected() (tea.Model, tea.Cmd) {
	occ := m.selectedOccurrence()
	if occ == nil {
		return m, nil
	}

	layoutFmt := "15:04"
	if m.config.UI.TimeFormat == "12" {
		layoutFmt = "3:04pm"
	}

	var summary string
	if occ.AllDay {
		summary = fmt.Sprintf("%s (%s, all day)", occ.DisplayTitle(), occ.Start.Format("2006-01-02"))
	} else {
		summary = fmt.Sprintf("%s (%s %s-%s)",
			occ.DisplayTitle(),
			occ.Start.Format("2006-01-02"),
			occ.Start.Format(layoutFmt),
			occ.End.Format(layoutFmt),
		)
	}

	if err := clipboard.WriteAll(summary); err != nil {
		return m, commands.Status(fmt.Sprintf("Clipboard error: %v", err))
	}
	return m, commands.Status("Copied to clipboard")
}

// shiftAnchor moves the anchor one period in the given direction.
func (m Model) shiftAnchor(dir int) time.Time {
	switch m.view {
	case viewMonth:
		return m.anchor.AddDate(0, dir, 0)
	case viewWeek:
		return m.anchor.AddDate(0, 0, 7*dir)
	default:
		return m.anchor.AddDate(0, 0, dir)
	}
}

// moveSelection cycles the selection through the visible occurrences.
func (m *Model) moveSelection(dir int) {
	occs := m.visibleOccurrences()
	if len(occs) == 0 {
		m.selectedID = ""
		return
	}

	idx := -1
	for i, o := range occs {
		if o.ID == m.selectedID {
			idx = i
			break
		}
	}

	if idx == -1 {
		if dir > 0 {
			idx = 0
		} else {
			idx = len(occs) - 1
		}
	} else {
		idx = (idx + dir + len(occs)) % len(occs)
	}

	m.selectedID = occs[idx].ID
}

func (m Model) today() time.Time {
	return time.Date(m.now.Year(), m.now.Month(), m.now.Day(), 0, 0, 0, 0, m.now.Location())
}

// clampScroll keeps the scroll offset inside the day's rows.
func clampScroll(offset, visible int) int {
	maxOffset := 24*rowsPerHour - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
