package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LastClock is the latest representable end time within a day.
const LastClock = "23:59"

// FormatClock renders an "HH:MM" value. With twelveHour set it follows the
// "9:00 AM" style; otherwise the value is returned unchanged.
func FormatClock(clock string, twelveHour bool) string {
	if !twelveHour {
		return clock
	}
	hours, minutes, ok := strings.Cut(clock, ":")
	if !ok {
		return clock
	}
	hour, err := strconv.Atoi(hours)
	if err != nil {
		return clock
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, minutes, ampm)
}

// NearestHalfHour rounds now to the closest half hour and returns it as
// "HH:MM". Times that would round into the next day stay at "23:30".
func NearestHalfHour(now time.Time) string {
	minutes := now.Hour()*60 + now.Minute()
	rounded := (minutes + 15) / 30 * 30
	if rounded >= 24*60 {
		rounded = 24*60 - 30
	}
	return ClockFromMinutes(rounded)
}

// ClockFromMinutes formats minutes since midnight as "HH:MM".
func ClockFromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes adds d minutes to clock, capping at LastClock so the result
// stays on the same day.
func AddMinutes(clock string, d int) string {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return clock
	}
	total := t.Hour()*60 + t.Minute() + d
	if total >= 24*60 {
		return LastClock
	}
	if total < 0 {
		total = 0
	}
	return ClockFromMinutes(total)
}

// DefaultDraft prefills a new event on date starting at the half hour
// nearest to now and lasting duration minutes.
func DefaultDraft(date, now time.Time, duration int) Draft {
	start := NearestHalfHour(now)
	return Draft{
		Date:      DateKey(date),
		StartTime: start,
		EndTime:   AddMinutes(start, duration),
		Color:     DefaultColor,
	}
}
