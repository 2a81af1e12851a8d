package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"calgrid/internal/dateutil"
	"calgrid/internal/event"
	"calgrid/internal/interaction"
	"calgrid/internal/layout"
)

const (
	// timeGridTop is the first grid row: title and day headers sit above it.
	timeGridTop = 2
	gutterWidth = 6
	footerLines = 2
)

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	if m.loading {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	switch m.view {
	case viewMonth:
		b.WriteString(m.renderMonth())
	default:
		b.WriteString(m.renderTimeGrid())
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTitle() string {
	var label string
	switch m.view {
	case viewMonth:
		label = m.anchor.Format("January 2006")
	case viewWeek:
		start := dateutil.StartOfWeek(m.anchor, m.firstDay())
		end := start.AddDate(0, 0, 6)
		label = fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	default:
		label = m.anchor.Format("Monday, January 2, 2006")
	}
	return m.styles.TitleStyle.Render(label)
}

// renderMonth draws the 6x7 month grid.
func (m Model) renderMonth() string {
	cellW, cellH := m.monthCellSize()
	if cellW < 3 || cellH < 1 {
		return "Terminal too small\n"
	}

	cells := layout.MonthCells(m.anchor, m.firstDay())
	occs := m.occurrences()
	drag := m.controller.State()
	dragging := m.controller.Dragging()

	var b strings.Builder
	b.WriteString(m.renderDayHeaders(cellW, 0))
	b.WriteString("\n")

	for row := 0; row < layout.MonthRows; row++ {
		rendered := make([]string, layout.MonthCols)
		for col := 0; col < layout.MonthCols; col++ {
			cell := cells[row*layout.MonthCols+col]
			rendered[col] = m.renderMonthCell(cell, cellW, cellH, occs, drag, dragging)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMonthCell(cell layout.Cell, cellW, cellH int, occs []event.Occurrence, drag interaction.DragState, dragging bool) string {
	dayStyle := m.styles.CellStyle
	if !cell.IsCurrentMonth {
		dayStyle = m.styles.CellOutsideStyle
	}
	if dateutil.SameDay(cell.Date, m.now) {
		dayStyle = m.styles.CellTodayStyle
	}

	lines := make([]string, 0, cellH)
	lines = append(lines, dayStyle.Render(fmt.Sprintf("%2d", cell.DayNumber)))

	dayOccs := layout.EventsForDate(cell.Date, occs)
	for _, o := range dayOccs {
		if len(lines) >= cellH {
			break
		}
		if dragging && drag.Ghost != nil && o.ID == drag.EventID {
			continue // The ghost is drawn at its target cell instead.
		}
		style := m.styles.EventStyle(o.PaletteIndex())
		if o.ID == m.selectedID {
			style = m.styles.CellSelectedStyle
		}
		lines = append(lines, style.Render(clip(o.DisplayTitle(), cellW-1)))
	}

	if dragging && drag.Ghost != nil && dateutil.SameDay(drag.GhostDay, cell.Date) && len(lines) < cellH {
		lines = append(lines, m.styles.GhostStyle.Render(clip(drag.Ghost.DisplayTitle(), cellW-1)))
	}

	overflow := len(dayOccs) - (cellH - 1)
	if overflow > 0 && cellH > 1 {
		lines[cellH-1] = m.styles.HelpStyle.Render(fmt.Sprintf("+%d more", overflow))
	}

	for len(lines) < cellH {
		lines = append(lines, "")
	}
	cellStyle := lipgloss.NewStyle().Width(cellW).Height(cellH).MaxWidth(cellW)
	return cellStyle.Render(strings.Join(lines, "\n"))
}

// renderTimeGrid draws the week or day time grid with half-hour rows.
func (m Model) renderTimeGrid() string {
	cols := 7
	if m.view == viewDay {
		cols = 1
	}
	colW := m.dayColWidth()
	if colW < 4 {
		return "Terminal too small\n"
	}

	start := dateutil.StartOfWeek(m.anchor, m.firstDay())
	if m.view == viewDay {
		start = dateutil.StartOfDay(m.anchor)
	}

	days := make([]time.Time, cols)
	columns := make([][]string, cols)
	for i := 0; i < cols; i++ {
		days[i] = start.AddDate(0, 0, i)
		columns[i] = m.renderDayColumn(days[i], colW)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	b.WriteString(m.renderDayHeaders(colW, cols))
	b.WriteString("\n")

	visible := m.visibleRows()
	for r := 0; r < visible; r++ {
		row := r + m.scrollOffset
		b.WriteString(m.gutterLabel(row))
		for i := 0; i < cols; i++ {
			if row < len(columns[i]) {
				b.WriteString(columns[i][row])
			} else {
				b.WriteString(strings.Repeat(" ", colW))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// gutterLabel renders the time column label for a half-hour row.
func (m Model) gutterLabel(row int) string {
	if row%rowsPerHour != 0 {
		return m.styles.TimeColumnStyle.Render("")
	}
	hour := row / rowsPerHour
	label := fmt.Sprintf("%02d:00", hour)
	if m.config.UI.TimeFormat == "12" {
		t := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC)
		label = t.Format("3pm")
	}
	return m.styles.TimeColumnStyle.Render(label)
}

// renderDayColumn renders all 48 half-hour rows of one day.
func (m Model) renderDayColumn(day time.Time, colW int) []string {
	rows := make([]string, 24*rowsPerHour)
	for i := range rows {
		rows[i] = strings.Repeat(" ", colW)
	}

	drag := m.controller.State()
	dragging := m.controller.Dragging()

	var occs []event.Occurrence
	for _, o := range m.occurrencesOn(day) {
		if o.AllDay {
			continue
		}
		if dragging && drag.Ghost != nil && o.ID == drag.EventID {
			continue
		}
		occs = append(occs, o)
	}

	for _, p := range layout.LayoutDay(occs) {
		style := m.styles.EventStyle(p.PaletteIndex())
		if p.ID == m.selectedID {
			style = m.styles.SelectedStyle
		}
		m.paintBlock(rows, colW, p.Start, p.End, p.LeftPercent, p.WidthPercent, p.DisplayTitle(), style)
	}

	if dragging && drag.Ghost != nil && dateutil.SameDay(drag.Ghost.Start, day) {
		m.paintBlock(rows, colW, drag.Ghost.Start, drag.Ghost.End, 0, 100*0.8, drag.Ghost.DisplayTitle(), m.styles.GhostStyle)
	}

	m.paintNowMarker(rows, colW, day)
	return rows
}

// paintBlock writes an event block into the day rows, mapping percentage
// geometry onto terminal columns.
func (m Model) paintBlock(rows []string, colW int, start, end time.Time, leftPct, widthPct float64, title string, style lipgloss.Style) {
	box := m.metrics.EventBox(start, end)
	top := int(box.Top / m.pxPerRow())
	bottom := int((box.Top + box.Height) / m.pxPerRow())
	if bottom <= top {
		bottom = top + 1
	}
	if top < 0 {
		top = 0
	}
	if bottom > len(rows) {
		bottom = len(rows)
	}

	left := int(leftPct / 100 * float64(colW))
	width := int(widthPct / 100 * float64(colW))
	if width < 2 {
		width = 2
	}
	if left+width > colW {
		width = colW - left
	}
	if width <= 0 {
		return
	}

	for r := top; r < bottom; r++ {
		var text string
		if r == top {
			text = "▎" + clip(title, width-1)
		} else {
			text = "▎"
		}
		text = padTo(text, width)
		rows[r] = spliceCell(rows[r], colW, left, style.Render(text), width)
	}
}

// paintNowMarker overlays the current-time line on today's empty cells.
func (m Model) paintNowMarker(rows []string, colW int, day time.Time) {
	if !dateutil.SameDay(day, m.now) {
		return
	}
	row := int(m.metrics.NowOffset(m.now) / m.pxPerRow())
	if row < 0 || row >= len(rows) {
		return
	}
	if strings.TrimSpace(rows[row]) != "" {
		return
	}
	rows[row] = m.styles.NowMarkerStyle.Render(strings.Repeat("╌", colW))
}

// spliceCell overwrites a horizontal span of a plain-space row with styled
// content. Rows that already carry styled content are left-padded instead,
// which keeps ANSI sequences intact at the cost of exact geometry.
func spliceCell(row string, colW, left int, content string, width int) string {
	if strings.TrimSpace(row) == "" {
		return strings.Repeat(" ", left) + content + strings.Repeat(" ", maxInt(0, colW-left-width))
	}
	return row
}

func (m Model) renderDayHeaders(colW, cols int) string {
	if cols == 0 {
		// Month view: seven weekday names starting from the configured day.
		names := make([]string, 7)
		for i := 0; i < 7; i++ {
			wd := time.Weekday((m.config.UI.FirstDayOfWeek + i) % 7)
			names[i] = m.styles.DayHeaderStyle.Width(colW).Render(wd.String()[:3])
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, names...)
	}

	start := dateutil.StartOfWeek(m.anchor, m.firstDay())
	if m.view == viewDay {
		start = dateutil.StartOfDay(m.anchor)
	}

	headers := make([]string, cols)
	for i := 0; i < cols; i++ {
		day := start.AddDate(0, 0, i)
		style := m.styles.DayHeaderStyle
		if dateutil.SameDay(day, m.now) {
			style = m.styles.DayHeaderTodayStyle
		}
		label := day.Format("Mon 2")
		if n := m.allDayCount(day); n > 0 {
			label = fmt.Sprintf("%s •%d", label, n)
		}
		headers[i] = style.Width(colW).Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, headers...)
}

// allDayCount counts all-day occurrences on a day, shown as a header badge in
// time views.
func (m Model) allDayCount(day time.Time) int {
	n := 0
	for _, o := range m.occurrencesOn(day) {
		if o.AllDay {
			n++
		}
	}
	return n
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.mode == ModePrompt:
		status = m.styles.PromptStyle.Render("Quick add: " + m.prompt.View())
	case m.mode == ModeConfirmDelete:
		occ := m.selectedOccurrence()
		title := ""
		if occ != nil {
			title = occ.DisplayTitle()
		}
		status = m.styles.ErrorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", title))
	case m.statusMsg != "":
		status = m.styles.StatusStyle.Render(m.statusMsg)
	default:
		status = ""
	}

	help := m.styles.HelpStyle.Render(
		"m/w/d views  h/l move  t today  j/k select  a quick add  y copy  x delete  q quit")
	return status + "\n" + help
}

// Geometry shared with the mouse bridge.

func (m Model) visibleRows() int {
	rows := m.height - timeGridTop - footerLines
	if rows < 0 {
		rows = 0
	}
	if rows > 24*rowsPerHour {
		rows = 24 * rowsPerHour
	}
	return rows
}

func (m Model) dayColWidth() int {
	cols := 7
	if m.view == viewDay {
		cols = 1
	}
	return (m.width - gutterWidth) / cols
}

func (m Model) monthCellSize() (int, int) {
	cellW := m.width / layout.MonthCols
	cellH := (m.height - timeGridTop - footerLines) / layout.MonthRows
	return cellW, cellH
}

func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

func padTo(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
