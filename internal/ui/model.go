package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwarden/schedule/internal/calendar"
	"github.com/cwarden/schedule/internal/config"
	"github.com/cwarden/schedule/internal/log"
	"github.com/cwarden/schedule/internal/parser"
	"github.com/cwarden/schedule/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenCalendar screen = iota
	screenHelp
	screenEditor
	screenQuickAdd
	screenConfirmDelete
)

// Row the timeline scrolls to when nothing is selected (08:00).
const defaultTopRow = 16

type Model struct {
	// Core components
	config *config.Config
	store  *store.Store
	parser *parser.QuickAdd
	now    func() time.Time

	// View state
	screen        screen
	view          calendar.ViewState
	selectedDate  time.Time
	selectedEvent int // index into the selected day's events, -1 for none
	events        []calendar.Event
	slots         []string
	topRow        int

	// UI state
	width   int
	height  int
	message string

	// Editor state
	form          *eventForm
	quickInput    textinput.Model
	pendingDelete string

	changes     chan []calendar.Event
	unsubscribe func()

	// Styles
	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Weekend  lipgloss.Style
	Header   lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Error    lipgloss.Style
	Grid     lipgloss.Style
	Border   lipgloss.Style
}

type Option func(*Model)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

func NewModel(cfg *config.Config, s *store.Store, opts ...Option) *Model {
	m := &Model{
		config:        cfg,
		store:         s,
		parser:        parser.NewQuickAdd(),
		now:           time.Now,
		selectedEvent: -1,
		slots:         calendar.Slots(),
		topRow:        defaultTopRow,
		changes:       make(chan []calendar.Event, 1),
		styles:        NewStyles(cfg.Colors),
	}
	for _, opt := range opts {
		opt(m)
	}

	today := calendar.Today(m.now())
	m.selectedDate = today
	m.view = calendar.ViewState{Anchor: today, Mode: cfg.View()}
	m.parser.SetDefaultDuration(cfg.DefaultDuration)
	m.events = s.All()

	// The store may notify from the watcher goroutine; only the newest
	// snapshot matters, so a full buffer is replaced.
	m.unsubscribe = s.Subscribe(func(events []calendar.Event) {
		for {
			select {
			case m.changes <- events:
				return
			default:
				select {
				case <-m.changes:
				default:
				}
			}
		}
	})

	return m
}

// NewStyles builds the styles, taking element colors from the config.
func NewStyles(colors map[string]string) Styles {
	color := func(name, fallback string) lipgloss.Color {
		if c, ok := colors[name]; ok && c != "" {
			return lipgloss.Color(c)
		}
		return lipgloss.Color(fallback)
	}

	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(color("normal", "252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(color("selected", "220")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(color("today", "220")).
			Bold(true),
		Weekend: lipgloss.NewStyle().
			Foreground(color("weekend", "39")),
		Header: lipgloss.NewStyle().
			Foreground(color("header", "220")).
			Bold(true).
			Underline(true),
		Help: lipgloss.NewStyle().
			Foreground(color("help", "241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Grid: lipgloss.NewStyle().
			Foreground(color("grid", "238")),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color("grid", "238")),
	}
}

// Close stops listening for store changes.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(changes <-chan []calendar.Event) tea.Cmd {
	return func() tea.Msg {
		events, ok := <-changes
		if !ok {
			return nil
		}
		return eventsChangedMsg{events: events}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case eventsChangedMsg:
		m.setEvents(msg.events)
		return m, waitForChange(m.changes)

	case messageTimeoutMsg:
		if msg.text == m.message {
			m.message = ""
		}
		return m, nil
	}

	return m, m.updateInputs(msg)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.screen {
	case screenHelp:
		return m.viewHelp()
	case screenEditor:
		return m.viewEventEditor()
	case screenQuickAdd:
		return m.viewQuickAdd()
	case screenConfirmDelete:
		return m.viewConfirmDelete()
	}

	var body string
	switch m.view.Mode {
	case calendar.ViewMonth:
		body = m.viewMonth()
	case calendar.ViewWeek:
		body = m.viewWeek()
	default:
		body = m.viewDay()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Mode-specific handling
	switch m.screen {
	case screenEditor:
		return m.handleEditorKeys(msg)
	case screenQuickAdd:
		return m.handleQuickAddKeys(msg)
	case screenConfirmDelete:
		return m.handleConfirmKeys(msg)
	case screenHelp:
		m.screen = screenCalendar
		return m, nil
	}

	return m.handleCalendarKeys(msg)
}

func (m *Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.config.Action(msg.String()) {
	case "quit":
		return m, tea.Quit

	case "help":
		m.screen = screenHelp

	case "today":
		today := calendar.Today(m.now())
		m.selectedDate = today
		m.view.Anchor = today
		m.selectedEvent = -1

	case "next_period":
		m.stepPeriod(1)

	case "prev_period":
		m.stepPeriod(-1)

	case "next_day":
		m.moveSelection(1)

	case "prev_day":
		m.moveSelection(-1)

	case "next_week":
		m.moveSelection(7)

	case "prev_week":
		m.moveSelection(-7)

	case "month_view":
		m.setMode(calendar.ViewMonth)

	case "week_view":
		m.setMode(calendar.ViewWeek)

	case "day_view":
		m.setMode(calendar.ViewDay)

	case "next_event":
		m.cycleEvent()

	case "scroll_down":
		m.scroll(4)

	case "scroll_up":
		m.scroll(-4)

	case "new_event":
		draft := calendar.DefaultDraft(m.selectedDate, m.now(), m.config.DefaultDuration)
		draft.Color = m.config.DefaultColor
		m.openEditor("", draft)
		return m, textinput.Blink

	case "quick_add":
		m.openQuickAdd()
		return m, textinput.Blink

	case "edit_event":
		event, ok := m.currentEvent()
		if !ok {
			m.showMessage("No event selected")
			return m, nil
		}
		m.openEditor(event.ID, event.Draft())
		return m, textinput.Blink

	case "delete_event":
		event, ok := m.currentEvent()
		if !ok {
			m.showMessage("No event selected")
			return m, nil
		}
		if m.config.ConfirmDelete {
			m.pendingDelete = event.ID
			m.screen = screenConfirmDelete
			return m, nil
		}
		return m, m.deleteEvent(event.ID)
	}

	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	m.pendingDelete = ""
	m.screen = screenCalendar

	switch msg.String() {
	case "y", "Y", "enter":
		return m, m.deleteEvent(id)
	}
	m.showMessage("Delete cancelled")
	return m, nil
}

// stepPeriod moves the view anchor by one period and selects the new anchor.
func (m *Model) stepPeriod(dir int) {
	m.view.Anchor = calendar.Step(m.view.Anchor, m.view.Mode, dir)
	m.selectedDate = m.view.Anchor
	m.selectedEvent = -1
}

// moveSelection moves the selected day, re-anchoring when it leaves the
// visible period.
func (m *Model) moveSelection(days int) {
	m.selectedDate = m.selectedDate.AddDate(0, 0, days)
	m.selectedEvent = -1
	if !m.visible(m.selectedDate) {
		m.view.Anchor = m.selectedDate
	}
}

func (m *Model) visible(date time.Time) bool {
	switch m.view.Mode {
	case calendar.ViewMonth:
		return date.Year() == m.view.Anchor.Year() && date.Month() == m.view.Anchor.Month()
	case calendar.ViewWeek:
		days := calendar.WeekDays(m.view.Anchor)
		return !date.Before(days[0]) && !date.After(days[6])
	default:
		return calendar.SameDay(date, m.view.Anchor)
	}
}

func (m *Model) setMode(mode calendar.ViewMode) {
	m.view.Mode = mode
	m.view.Anchor = m.selectedDate
}

func (m *Model) selectedDayEvents() []calendar.Event {
	return calendar.EventsOn(m.selectedDate, m.events)
}

func (m *Model) cycleEvent() {
	day := m.selectedDayEvents()
	if len(day) == 0 {
		m.selectedEvent = -1
		m.showMessage("No events on " + m.selectedDate.Format(m.config.DateFormat))
		return
	}
	m.selectedEvent = (m.selectedEvent + 1) % len(day)
	m.scrollTo(calendar.Project(day[m.selectedEvent], m.slots).StartRow)
}

func (m *Model) currentEvent() (calendar.Event, bool) {
	day := m.selectedDayEvents()
	if m.selectedEvent < 0 || m.selectedEvent >= len(day) {
		return calendar.Event{}, false
	}
	return day[m.selectedEvent], true
}

func (m *Model) setEvents(events []calendar.Event) {
	current, hadCurrent := m.currentEvent()
	m.events = events
	m.selectedEvent = -1
	if !hadCurrent {
		return
	}
	for i, event := range m.selectedDayEvents() {
		if event.ID == current.ID {
			m.selectedEvent = i
			return
		}
	}
}

func (m *Model) createEvent(draft calendar.Draft) (calendar.Event, error) {
	event, err := m.store.Create(context.Background(), draft)
	if err != nil {
		return event, err
	}
	m.setEvents(m.store.All())
	m.selectEvent(event)
	return event, nil
}

func (m *Model) updateEvent(id string, draft calendar.Draft) (calendar.Event, error) {
	event, err := m.store.Update(context.Background(), id, draft)
	if err != nil {
		return event, err
	}
	m.setEvents(m.store.All())
	m.selectEvent(event)
	return event, nil
}

func (m *Model) deleteEvent(id string) tea.Cmd {
	if err := m.store.Delete(context.Background(), id); err != nil {
		log.Error("delete event failed", err, "id", id)
		return m.showMessage(fmt.Sprintf("Error: %v", err))
	}
	m.setEvents(m.store.All())
	m.selectedEvent = -1
	return m.showMessage("Event deleted")
}

// selectEvent moves the selection to event's day and highlights it.
func (m *Model) selectEvent(event calendar.Event) {
	date, err := time.ParseInLocation(calendar.DateLayout, event.Date, m.selectedDate.Location())
	if err != nil {
		return
	}
	m.selectedDate = date
	if !m.visible(date) {
		m.view.Anchor = date
	}
	for i, e := range m.selectedDayEvents() {
		if e.ID == event.ID {
			m.selectedEvent = i
			m.scrollTo(calendar.Project(e, m.slots).StartRow)
			return
		}
	}
}

func (m *Model) visibleRows() int {
	// Header, day names, status bar and borders.
	rows := m.height - 4
	if rows < 8 {
		rows = 8
	}
	if rows > len(m.slots) {
		rows = len(m.slots)
	}
	return rows
}

func (m *Model) scroll(delta int) {
	m.topRow += delta
	m.clampTopRow()
}

func (m *Model) scrollTo(row int) {
	rows := m.visibleRows()
	if row < m.topRow || row >= m.topRow+rows {
		m.topRow = row - rows/4
	}
	m.clampTopRow()
}

func (m *Model) clampTopRow() {
	maxTop := len(m.slots) - m.visibleRows()
	if m.topRow > maxTop {
		m.topRow = maxTop
	}
	if m.topRow < 0 {
		m.topRow = 0
	}
}

func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return messageTimeoutMsg{text: msg}
	})
}

// describeError turns store errors into a line for the status bar.
func describeError(err error) string {
	var verr *calendar.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, store.ErrNotFound):
		return "Event no longer exists"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Message types
type messageTimeoutMsg struct {
	text string
}

type eventsChangedMsg struct {
	events []calendar.Event
}
