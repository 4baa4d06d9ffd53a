package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the layout of Event.Date.
	DateLayout = "2006-01-02"
	// TimeLayout is the layout of Event.StartTime and Event.EndTime.
	TimeLayout = "15:04"
)

// Swatches are the colors an event can be painted with.
var Swatches = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
	"#8B5CF6", "#EC4899", "#06B6D4", "#84CC16",
}

// DefaultColor is the swatch used when a draft has no color.
const DefaultColor = "#3B82F6"

// Event is a single timed entry on one calendar date.
type Event struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Date        string `json:"date" yaml:"date"`
	StartTime   string `json:"startTime" yaml:"startTime"`
	EndTime     string `json:"endTime" yaml:"endTime"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
}

// Draft holds the user-editable fields of an event.
type Draft struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Description string
	Color       string
}

// Draft returns the editable fields of e.
func (e Event) Draft() Draft {
	return Draft{
		Title:       e.Title,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
		Color:       e.Color,
	}
}

// WithID builds an Event from d. The draft should already be validated.
// The color is stored as the canonical swatch spelling.
func (d Draft) WithID(id string) Event {
	color := strings.ToUpper(d.Color)
	if color == "" {
		color = DefaultColor
	}
	return Event{
		ID:          id,
		Title:       d.Title,
		Date:        d.Date,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Description: d.Description,
		Color:       color,
	}
}

// Start returns the event start as a wall-clock time in loc.
func (e Event) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.StartTime, loc)
}

// End returns the event end as a wall-clock time in loc.
func (e Event) End(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.EndTime, loc)
}

// ViewMode selects the shape of the calendar grid and the navigation step.
type ViewMode int

const (
	ViewMonth ViewMode = iota
	ViewWeek
	ViewDay
)

func (m ViewMode) String() string {
	switch m {
	case ViewMonth:
		return "month"
	case ViewWeek:
		return "week"
	case ViewDay:
		return "day"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// ParseViewMode accepts "month", "week" or "day" (case-insensitive).
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "m":
		return ViewMonth, nil
	case "week", "w":
		return ViewWeek, nil
	case "day", "d":
		return ViewDay, nil
	}
	return ViewMonth, fmt.Errorf("unknown view mode: %q", s)
}

// ViewState is the anchor date and mode currently on screen.
type ViewState struct {
	Anchor time.Time
	Mode   ViewMode
}
