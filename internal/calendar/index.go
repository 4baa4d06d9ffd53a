package calendar

import (
	"slices"
	"strings"
	"time"
)

// DateKey formats t as an Event.Date value using its wall clock.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// EventsOn returns the events dated on date, ordered by start time. Events
// with equal start times keep their order from events. The input slice is
// not modified.
func EventsOn(date time.Time, events []Event) []Event {
	key := DateKey(date)

	var day []Event
	for _, event := range events {
		if event.Date == key {
			day = append(day, event)
		}
	}

	slices.SortStableFunc(day, func(a, b Event) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return day
}

// CountOn returns how many events fall on date.
func CountOn(date time.Time, events []Event) int {
	key := DateKey(date)
	n := 0
	for _, event := range events {
		if event.Date == key {
			n++
		}
	}
	return n
}
