package ui

import (
	"fmt"
	"strings"

	"github.com/cwarden/schedule/internal/calendar"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("Schedule Help"),
		"",
		m.styles.Normal.Render("Navigation:"),
		m.styles.Help.Render("  h/l ←/→   - Previous/next month, week or day"),
		m.styles.Help.Render("  j/k ↓/↑   - Next/previous day"),
		m.styles.Help.Render("  J/K       - Next/previous week"),
		m.styles.Help.Render("  t         - Today"),
		m.styles.Help.Render("  m/w/d     - Month, week or day view"),
		m.styles.Help.Render("  tab       - Select next event on the day"),
		m.styles.Help.Render("  ctrl+d/u  - Scroll the timeline"),
		"",
		m.styles.Normal.Render("Actions:"),
		m.styles.Help.Render("  n         - New event"),
		m.styles.Help.Render("  a         - Quick add (e.g. 'tomorrow 2pm Dentist')"),
		m.styles.Help.Render("  e         - Edit selected event"),
		m.styles.Help.Render("  x         - Delete selected event"),
		m.styles.Help.Render("  ?         - Toggle help"),
		m.styles.Help.Render("  q         - Quit"),
		"",
		m.styles.Normal.Render("Editor:"),
		m.styles.Help.Render("  tab/↓ shift+tab/↑ - Move between fields"),
		m.styles.Help.Render("  ctrl+n    - Next color swatch"),
		m.styles.Help.Render("  enter     - Save, esc to cancel"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) viewEventEditor() string {
	f := m.form
	var sections []string

	title := "New Event"
	if f.id != "" {
		title = "Edit Event"
	}
	sections = append(sections, m.styles.Header.Render(title), "")

	for i, in := range f.inputs {
		label := fmt.Sprintf("%-12s", fieldLabels[i]+":")
		if i == f.focus {
			label = m.styles.Today.Render(label)
		} else {
			label = m.styles.Normal.Render(label)
		}
		line := label + in.View()
		if i == fieldColor {
			line += " " + m.renderSwatch(in.Value())
		}
		sections = append(sections, line)
	}

	sections = append(sections, "")
	if f.err != "" {
		sections = append(sections, m.styles.Error.Render(f.err), "")
	}
	sections = append(sections, m.styles.Help.Render("Enter to save, Esc to cancel, ctrl+n for next color"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderSwatch(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		color = calendar.DefaultColor
	}
	if !calendar.IsSwatch(color) {
		return m.styles.Error.Render("?")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("    ")
}

func (m *Model) viewQuickAdd() string {
	sections := []string{
		m.styles.Header.Render("Quick Add"),
		"",
		m.styles.Normal.Render("Enter event (e.g., 'tomorrow 2pm Meeting with team'):"),
		m.quickInput.View(),
		"",
		m.styles.Help.Render("Enter to save, Esc to cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewConfirmDelete() string {
	event, ok := m.store.Get(m.pendingDelete)
	summary := m.pendingDelete
	if ok {
		summary = m.eventSummary(event)
	}
	sections := []string{
		m.styles.Header.Render("Delete Event"),
		"",
		m.styles.Normal.Render(summary),
		"",
		m.styles.Help.Render("Press y to delete, any other key to cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf(" %s | Events: %d",
		m.selectedDate.Format(m.config.DateFormat),
		calendar.CountOn(m.selectedDate, m.events))

	right := "h/l:" + m.view.Mode.String() + "  j/k:day  m/w/d:view  tab:event  n:new  a:quick  e:edit  x:delete  ?:help  q:quit"

	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left + middle + right)
}
