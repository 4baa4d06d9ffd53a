// Package ical converts events to and from iCalendar (RFC 5545) data.
package ical

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/cwarden/schedule/internal/calendar"
	"github.com/cwarden/schedule/internal/log"
)

const productID = "-//cwarden//schedule//EN"

const colorProperty = ics.ComponentProperty("COLOR")

// Export writes events as a single VCALENDAR. Wall-clock times are read in
// loc and written as UTC.
func Export(w io.Writer, events []calendar.Event, loc *time.Location) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	stamp := time.Now().UTC()
	for _, e := range events {
		start, err := e.Start(loc)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		end, err := e.End(loc)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Color != "" {
			ve.SetProperty(colorProperty, e.Color)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// Entry is one imported VEVENT.
type Entry struct {
	UID   string
	Draft calendar.Draft
}

// Import reads VEVENTs from r as drafts in loc. All-day events and events
// that span more than one day are skipped; the number skipped is returned.
func Import(r io.Reader, loc *time.Location) ([]Entry, int, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parse calendar: %w", err)
	}

	var entries []Entry
	skipped := 0
	for _, ve := range cal.Events() {
		draft, err := toDraft(ve, loc)
		if err != nil {
			log.Info("skipping calendar entry", "uid", uid(ve), "reason", err.Error())
			skipped++
			continue
		}
		entries = append(entries, Entry{UID: uid(ve), Draft: draft})
	}
	return entries, skipped, nil
}

var (
	errAllDay   = errors.New("all-day event")
	errMultiDay = errors.New("spans more than one day")
	errNoStart  = errors.New("missing start")
)

func toDraft(ve *ics.VEvent, loc *time.Location) (calendar.Draft, error) {
	dtStart := ve.GetProperty(ics.ComponentPropertyDtStart)
	if dtStart == nil {
		return calendar.Draft{}, errNoStart
	}
	if !strings.Contains(dtStart.Value, "T") {
		return calendar.Draft{}, errAllDay
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return calendar.Draft{}, err
	}
	start = start.In(loc)

	end, err := ve.GetEndAt()
	if err != nil {
		end = start.Add(time.Hour)
	}
	end = end.In(loc)

	endClock := end.Format(calendar.TimeLayout)
	if !calendar.SameDay(start, end) {
		// Ending exactly at the following midnight still fits the day.
		if !end.Equal(calendar.Today(start).AddDate(0, 0, 1)) {
			return calendar.Draft{}, errMultiDay
		}
		endClock = calendar.LastClock
	}

	draft := calendar.Draft{
		Date:      calendar.DateKey(start),
		StartTime: start.Format(calendar.TimeLayout),
		EndTime:   endClock,
		Color:     calendar.DefaultColor,
	}
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		draft.Title = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil {
		draft.Description = p.Value
	}
	if p := ve.GetProperty(colorProperty); p != nil && calendar.IsSwatch(p.Value) {
		draft.Color = strings.ToUpper(p.Value)
	}
	return draft, nil
}

func uid(ve *ics.VEvent) string {
	if p := ve.GetProperty(ics.ComponentPropertyUniqueId); p != nil {
		return p.Value
	}
	return ""
}
