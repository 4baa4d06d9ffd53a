package calendar

import "fmt"

// SlotsPerDay is the number of half-hour rows in a day.
const SlotsPerDay = 48

// Slots returns the half-hour labels of a day, "00:00" through "23:30".
// Each call returns a new slice.
func Slots() []string {
	slots := make([]string, 0, SlotsPerDay)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}
