package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/cwarden/schedule/internal/calendar"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Events listed in a month cell before the rest collapse into "+N more".
const maxCellEvents = 3

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// viewMonth renders the month grid for the anchor's month.
func (m *Model) viewMonth() string {
	rows := calendar.MonthRows(calendar.MonthGrid(m.view.Anchor))

	cellWidth := (m.width - 6) / 7
	if cellWidth < 6 {
		cellWidth = 6
	}
	// Title, weekday names and status bar take three lines.
	cellHeight := (m.height - 3) / max(1, len(rows))
	if cellHeight > maxCellEvents+2 {
		cellHeight = maxCellEvents + 2
	}
	if cellHeight < 2 {
		cellHeight = 2
	}

	var lines []string
	lines = append(lines, m.styles.Header.Render(calendar.Title(m.view.Anchor, calendar.ViewMonth)))

	names := make([]string, len(weekdayNames))
	for i, name := range weekdayNames {
		names[i] = m.styles.Help.Width(cellWidth).Render(name)
	}
	lines = append(lines, strings.Join(names, " "))

	today := calendar.Today(m.now())
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, date := range row {
			cells[i] = m.renderMonthCell(date, today, cellWidth, cellHeight)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, withGaps(cells)...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderMonthCell(date, today time.Time, width, height int) string {
	box := lipgloss.NewStyle().Width(width).Height(height)
	if date.IsZero() {
		return box.Render("")
	}

	dayStyle := m.styles.Normal
	switch {
	case calendar.SameDay(date, m.selectedDate):
		dayStyle = m.styles.Selected
	case calendar.SameDay(date, today):
		dayStyle = m.styles.Today
	case date.Weekday() == time.Saturday || date.Weekday() == time.Sunday:
		dayStyle = m.styles.Weekend
	}

	lines := []string{dayStyle.Render(fmt.Sprintf("%2d", date.Day()))}

	day := calendar.EventsOn(date, m.events)
	for i, line := range monthCellLines(day, height-1, width, m.config.TwelveHour()) {
		if i < len(day) && !strings.HasPrefix(line, "+") {
			lines = append(lines, m.eventStyle(day[i]).Render(line))
			continue
		}
		lines = append(lines, m.styles.Help.Render(line))
	}

	return box.Render(strings.Join(lines, "\n"))
}

// monthCellLines lists at most maxCellEvents events that fit in room lines,
// collapsing the remainder into a "+N more" line.
func monthCellLines(day []calendar.Event, room, width int, twelveHour bool) []string {
	if room <= 0 || len(day) == 0 {
		return nil
	}

	shown := len(day)
	if shown > maxCellEvents {
		shown = maxCellEvents
	}
	if shown > room {
		shown = room
	}
	if shown < len(day) && shown == room {
		// Keep a line for the overflow marker.
		shown--
	}

	lines := make([]string, 0, shown+1)
	for _, event := range day[:shown] {
		text := calendar.FormatClock(event.StartTime, twelveHour) + " " + event.Title
		lines = append(lines, truncate.StringWithTail(text, uint(width), "…"))
	}
	if rest := len(day) - shown; rest > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", rest))
	}
	return lines
}

// eventStyle paints text in the event's swatch.
func (m *Model) eventStyle(event calendar.Event) lipgloss.Style {
	color := event.Color
	if color == "" {
		color = calendar.DefaultColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func withGaps(cells []string) []string {
	out := make([]string, 0, 2*len(cells))
	for i, cell := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, cell)
	}
	return out
}
