package calendar

import "time"

// MonthGrid returns the cells of the month containing anchor. The first
// cells are zero time.Time values, one per weekday before the 1st (Sunday
// first), so the 1st lands under its weekday column. One midnight date per
// day of the month follows. The final row is not padded.
func MonthGrid(anchor time.Time) []time.Time {
	year, month, _ := anchor.Date()
	loc := anchor.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)

	lead := int(first.Weekday())
	days := last.Day()

	cells := make([]time.Time, lead, lead+days)
	for day := 1; day <= days; day++ {
		cells = append(cells, time.Date(year, month, day, 0, 0, 0, 0, loc))
	}
	return cells
}

// MonthRows splits a month grid into rows of seven cells. The last row may
// be shorter.
func MonthRows(cells []time.Time) [][]time.Time {
	var rows [][]time.Time
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		rows = append(rows, cells[start:end])
	}
	return rows
}

// WeekDays returns Sunday through Saturday of the week containing anchor,
// at midnight in the anchor's location.
func WeekDays(anchor time.Time) []time.Time {
	year, month, day := anchor.Date()
	sunday := day - int(anchor.Weekday())

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = time.Date(year, month, sunday+i, 0, 0, 0, 0, anchor.Location())
	}
	return days
}

// DaysIn returns the number of days in the month containing t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
