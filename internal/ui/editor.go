package ui

import (
	"errors"
	"strings"

	"github.com/cwarden/schedule/internal/calendar"
	"github.com/cwarden/schedule/internal/log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldDate
	fieldStart
	fieldEnd
	fieldDescription
	fieldColor
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Date", "Start", "End", "Description", "Color"}

// Validation error field names mapped to form inputs.
var fieldByName = map[string]int{
	"title":       fieldTitle,
	"date":        fieldDate,
	"startTime":   fieldStart,
	"endTime":     fieldEnd,
	"description": fieldDescription,
	"color":       fieldColor,
}

// eventForm edits one draft. An empty id means a new event.
type eventForm struct {
	id     string
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newEventForm(id string, draft calendar.Draft) *eventForm {
	f := &eventForm{id: id}

	values := [fieldCount]string{draft.Title, draft.Date, draft.StartTime, draft.EndTime, draft.Description, draft.Color}
	placeholders := [fieldCount]string{"What", "YYYY-MM-DD", "HH:MM", "HH:MM", "Optional notes", calendar.DefaultColor}
	limits := [fieldCount]int{120, 10, 5, 5, 500, 7}

	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = 40
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *eventForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *eventForm) draft() calendar.Draft {
	value := func(i int) string {
		return strings.TrimSpace(f.inputs[i].Value())
	}
	return calendar.Draft{
		Title:       value(fieldTitle),
		Date:        value(fieldDate),
		StartTime:   value(fieldStart),
		EndTime:     value(fieldEnd),
		Description: value(fieldDescription),
		Color:       strings.ToUpper(value(fieldColor)),
	}
}

// cycleColor replaces the color field with the next swatch.
func (f *eventForm) cycleColor() {
	current := strings.ToUpper(strings.TrimSpace(f.inputs[fieldColor].Value()))
	next := calendar.Swatches[0]
	for i, swatch := range calendar.Swatches {
		if swatch == current {
			next = calendar.Swatches[(i+1)%len(calendar.Swatches)]
			break
		}
	}
	f.inputs[fieldColor].SetValue(next)
	f.inputs[fieldColor].CursorEnd()
}

func (m *Model) openEditor(id string, draft calendar.Draft) {
	m.form = newEventForm(id, draft)
	m.screen = screenEditor
}

func (m *Model) openQuickAdd() {
	in := textinput.New()
	in.Placeholder = "tomorrow 2pm-3:30pm Dentist"
	in.CharLimit = 200
	in.Width = 50
	in.Focus()
	m.quickInput = in
	m.screen = screenQuickAdd
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "esc":
		m.form = nil
		m.screen = screenCalendar
		return m, nil

	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil

	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil

	case "ctrl+n":
		f.cycleColor()
		return m, nil

	case "enter", "ctrl+s":
		return m, m.saveForm()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// saveForm creates or updates the event. On a validation failure the form
// stays open with the offending field focused.
func (m *Model) saveForm() tea.Cmd {
	f := m.form
	draft := f.draft()

	var err error
	if f.id == "" {
		_, err = m.createEvent(draft)
	} else {
		_, err = m.updateEvent(f.id, draft)
	}

	if err != nil {
		var verr *calendar.ValidationError
		if errors.As(err, &verr) {
			f.err = verr.Error()
			if i, ok := fieldByName[verr.Field]; ok {
				f.setFocus(i)
			}
			return nil
		}
		log.Error("save event failed", err, "id", f.id)
		f.err = describeError(err)
		return nil
	}

	verb := "Event added"
	if f.id != "" {
		verb = "Event updated"
	}
	m.form = nil
	m.screen = screenCalendar
	return m.showMessage(verb)
}

func (m *Model) handleQuickAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.screen = screenCalendar
		return m, nil

	case tea.KeyEnter:
		input := m.quickInput.Value()
		m.screen = screenCalendar
		if strings.TrimSpace(input) == "" {
			return m, nil
		}

		m.parser.SetNow(m.now())
		draft, err := m.parser.Parse(input)
		if err != nil {
			return m, m.showMessage("Parse error: " + err.Error())
		}
		draft.Color = m.config.DefaultColor

		// An untitled or otherwise invalid result opens the full form.
		if draft.Validate() != nil {
			m.openEditor("", *draft)
			m.form.err = draft.Validate().Error()
			return m, textinput.Blink
		}

		if _, err := m.createEvent(*draft); err != nil {
			log.Error("quick add failed", err, "input", input)
			return m, m.showMessage(describeError(err))
		}
		return m, m.showMessage("Event added")
	}

	var cmd tea.Cmd
	m.quickInput, cmd = m.quickInput.Update(msg)
	return m, cmd
}

// updateInputs forwards non-key messages such as cursor blinks.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.screen {
	case screenEditor:
		if m.form != nil {
			m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		}
	case screenQuickAdd:
		m.quickInput, cmd = m.quickInput.Update(msg)
	}
	return cmd
}
