package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/cwarden/schedule/internal/calendar"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// columnCell is one slot row of a day column.
type columnCell struct {
	eventID string
	color   string
	text    string
}

// layoutColumn paints blocks onto rows slot rows in order, so a later
// block overdraws an earlier one where they overlap. The first row of a
// block carries its title and the second its time range.
func layoutColumn(blocks []calendar.Block, rows int, twelveHour bool) []columnCell {
	cells := make([]columnCell, rows)
	for _, b := range blocks {
		for r := b.StartRow; b.Covers(r) && r < rows; r++ {
			cell := columnCell{eventID: b.ID, color: b.Color}
			switch r - b.StartRow {
			case 0:
				cell.text = b.Title
			case 1:
				cell.text = calendar.FormatClock(b.StartTime, twelveHour) + " - " +
					calendar.FormatClock(b.EndTime, twelveHour)
			}
			cells[r] = cell
		}
	}
	return cells
}

func (m *Model) viewWeek() string {
	days := calendar.WeekDays(m.view.Anchor)
	header := m.styles.Header.Render(calendar.Title(m.view.Anchor, calendar.ViewWeek))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderTimeline(days, m.width))
}

// viewDay renders one timeline column with the selected day's details
// beside it.
func (m *Model) viewDay() string {
	header := m.styles.Header.Render(calendar.Title(m.view.Anchor, calendar.ViewDay))

	timelineWidth := m.width * 2 / 3
	if timelineWidth < 30 {
		timelineWidth = 30
	}
	details := m.renderDayDetails(m.width - timelineWidth - 4)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimeline([]time.Time{m.view.Anchor}, timelineWidth),
		" ",
		details,
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *Model) gutterWidth() int {
	if m.config.TwelveHour() {
		return len("12:30 PM ")
	}
	return len("12:30 ")
}

// renderTimeline draws the slot gutter and one column per day.
func (m *Model) renderTimeline(days []time.Time, width int) string {
	gutter := m.gutterWidth()
	colWidth := (width-gutter)/len(days) - 1
	if colWidth < 4 {
		colWidth = 4
	}

	twelveHour := m.config.TwelveHour()
	now := m.now()
	today := calendar.Today(now)
	nowRow := slotRow(m.slots, calendar.ClockFromMinutes(now.Hour()*60+now.Minute()))
	selectedID := ""
	if event, ok := m.currentEvent(); ok {
		selectedID = event.ID
	}

	columns := make([][]columnCell, len(days))
	for i, day := range days {
		columns[i] = layoutColumn(calendar.ProjectDay(day, m.events, m.slots), len(m.slots), twelveHour)
	}

	var lines []string

	// Day names
	names := []string{strings.Repeat(" ", gutter)}
	for _, day := range days {
		style := m.styles.Normal
		switch {
		case calendar.SameDay(day, m.selectedDate):
			style = m.styles.Selected
		case calendar.SameDay(day, today):
			style = m.styles.Today
		case day.Weekday() == time.Saturday || day.Weekday() == time.Sunday:
			style = m.styles.Weekend
		}
		names = append(names, style.Width(colWidth).Render(day.Format("Mon 2")), " ")
	}
	lines = append(lines, strings.Join(names, ""))

	m.clampTopRow()
	end := min(m.topRow+m.visibleRows(), len(m.slots))
	for row := m.topRow; row < end; row++ {
		label := calendar.FormatClock(m.slots[row], twelveHour)
		gutterStyle := m.styles.Help
		if row == nowRow && containsDay(days, today) {
			gutterStyle = m.styles.Today
		}
		line := gutterStyle.Width(gutter).Render(label)

		for i, day := range days {
			line += m.renderCell(columns[i][row], row, colWidth, calendar.SameDay(day, today) && row == nowRow, selectedID) + " "
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderCell(cell columnCell, row, width int, isNow bool, selectedID string) string {
	if cell.eventID == "" {
		fill := " "
		if row%2 == 0 {
			fill = "·"
		}
		style := m.styles.Grid
		if isNow {
			style = m.styles.Today
			fill = "─"
		}
		return style.Render(strings.Repeat(fill, width))
	}

	color := cell.color
	if color == "" {
		color = calendar.DefaultColor
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Width(width)
	if cell.eventID == selectedID {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(truncate.StringWithTail(cell.text, uint(width), "…"))
}

// renderDayDetails lists the selected day's events, with the selected one
// expanded.
func (m *Model) renderDayDetails(width int) string {
	if width < 20 {
		width = 20
	}
	twelveHour := m.config.TwelveHour()

	var lines []string
	lines = append(lines, m.styles.Header.Render(m.selectedDate.Format(m.config.DateFormat)))
	lines = append(lines, "")

	day := m.selectedDayEvents()
	if len(day) == 0 {
		lines = append(lines, m.styles.Help.Render("(no events)"))
	}

	for i, event := range day {
		if i > 0 {
			lines = append(lines, "")
		}
		when := calendar.FormatClock(event.StartTime, twelveHour) + " - " + calendar.FormatClock(event.EndTime, twelveHour)
		marker := "  "
		if i == m.selectedEvent {
			marker = "> "
		}
		lines = append(lines, m.eventStyle(event).Render(marker+when))
		lines = append(lines, m.fitText(event.Title, width-2)...)

		if i == m.selectedEvent && event.Description != "" {
			lines = append(lines, m.styles.Help.Render(strings.Join(m.fitText(event.Description, width-2), "\n")))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return m.styles.Border.Width(width).Render(content)
}

// fitText wraps text to width when wrap_text is set and truncates it
// otherwise.
func (m *Model) fitText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	if !m.config.WrapText {
		return []string{"  " + truncate.StringWithTail(text, uint(width), "…")}
	}
	var out []string
	for _, line := range strings.Split(wordwrap.String(text, width), "\n") {
		if line != "" {
			out = append(out, "  "+line)
		}
	}
	return out
}

// slotRow is the last slot starting at or before clock.
func slotRow(slots []string, clock string) int {
	row := 0
	for i, slot := range slots {
		if slot <= clock {
			row = i
		}
	}
	return row
}

func containsDay(days []time.Time, date time.Time) bool {
	for _, day := range days {
		if calendar.SameDay(day, date) {
			return true
		}
	}
	return false
}

func (m *Model) eventSummary(event calendar.Event) string {
	twelveHour := m.config.TwelveHour()
	return fmt.Sprintf("%s %s-%s %s",
		event.Date,
		calendar.FormatClock(event.StartTime, twelveHour),
		calendar.FormatClock(event.EndTime, twelveHour),
		event.Title)
}
