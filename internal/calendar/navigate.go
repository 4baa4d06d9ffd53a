package calendar

import (
	"fmt"
	"time"
)

// Step moves anchor one period forward (dir > 0) or backward (dir < 0).
// Month steps rely on time.AddDate normalization, so Jan 31 + 1 month
// lands in early March.
func Step(anchor time.Time, mode ViewMode, dir int) time.Time {
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		return anchor
	}

	switch mode {
	case ViewMonth:
		return anchor.AddDate(0, dir, 0)
	case ViewWeek:
		return anchor.AddDate(0, 0, 7*dir)
	default:
		return anchor.AddDate(0, 0, dir)
	}
}

// Title is the heading for the period containing anchor.
//
//	month: "March 2024"
//	week:  "March 10–16, 2024" or "March 31 – April 6, 2024"
//	day:   "Sunday, March 10, 2024"
func Title(anchor time.Time, mode ViewMode) string {
	switch mode {
	case ViewMonth:
		return anchor.Format("January 2006")
	case ViewWeek:
		days := WeekDays(anchor)
		start, end := days[0], days[6]
		if start.Month() == end.Month() {
			return fmt.Sprintf("%s %d–%d, %d", start.Month(), start.Day(), end.Day(), start.Year())
		}
		// The year shown is the year of the Sunday.
		return fmt.Sprintf("%s %d – %s %d, %d", start.Month(), start.Day(), end.Month(), end.Day(), start.Year())
	default:
		return anchor.Format("Monday, January 2, 2006")
	}
}

// Today returns midnight of now's date.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
