package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestSlots(t *testing.T) {
	slots := Slots()
	if len(slots) != SlotsPerDay {
		t.Fatalf("len(Slots()) = %d, want %d", len(slots), SlotsPerDay)
	}
	if slots[0] != "00:00" || slots[1] != "00:30" || slots[47] != "23:30" {
		t.Errorf("unexpected slot labels: %s %s %s", slots[0], slots[1], slots[47])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i-1] >= slots[i] {
			t.Errorf("slots not increasing at %d: %s >= %s", i, slots[i-1], slots[i])
		}
	}

	// Callers may scribble on the result without affecting the next call.
	slots[0] = "xx"
	if Slots()[0] != "00:00" {
		t.Error("Slots shares its backing array between calls")
	}
}

func TestMonthGridLength(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		for month := time.January; month <= time.December; month++ {
			anchor := date(year, month, 15)
			cells := MonthGrid(anchor)

			lead := int(date(year, month, 1).Weekday())
			want := lead + DaysIn(anchor)
			if len(cells) != want {
				t.Errorf("%d-%02d: len = %d, want %d", year, month, len(cells), want)
			}
			for i := 0; i < lead; i++ {
				if !cells[i].IsZero() {
					t.Errorf("%d-%02d: cell %d should be blank, got %v", year, month, i, cells[i])
				}
			}
			if cells[lead].Day() != 1 || cells[lead].Weekday() != time.Weekday(lead) {
				t.Errorf("%d-%02d: first date %v misaligned", year, month, cells[lead])
			}
			if last := cells[len(cells)-1]; last.Month() != month {
				t.Errorf("%d-%02d: last cell %v spills into another month", year, month, last)
			}
		}
	}
}

func TestMonthGridScenarios(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		lead   int
		days   int
	}{
		{"leap february", date(2024, time.February, 1), 4, 29},
		{"common february", date(2023, time.February, 28), 3, 28},
		{"month starting sunday", date(2024, time.September, 30), 0, 30},
		{"december", date(2024, time.December, 31), 0, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := MonthGrid(tt.anchor)
			if len(cells) != tt.lead+tt.days {
				t.Fatalf("len = %d, want %d", len(cells), tt.lead+tt.days)
			}
			for i, cell := range cells[tt.lead:] {
				if cell.Day() != i+1 {
					t.Errorf("cell %d = %v, want day %d", tt.lead+i, cell, i+1)
				}
				if cell.Hour() != 0 || cell.Minute() != 0 {
					t.Errorf("cell %v is not at midnight", cell)
				}
			}
		})
	}
}

func TestMonthRows(t *testing.T) {
	rows := MonthRows(MonthGrid(date(2024, time.February, 1)))
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	for i, row := range rows[:4] {
		if len(row) != 7 {
			t.Errorf("row %d has %d cells, want 7", i, len(row))
		}
	}
	if len(rows[4]) != 5 {
		t.Errorf("ragged last row has %d cells, want 5", len(rows[4]))
	}
}

func TestWeekDays(t *testing.T) {
	start := date(2023, time.December, 1)
	for i := 0; i < 500; i++ {
		anchor := start.AddDate(0, 0, i)
		days := WeekDays(anchor)
		if len(days) != 7 {
			t.Fatalf("len = %d, want 7", len(days))
		}
		if days[0].Weekday() != time.Sunday {
			t.Errorf("%v: first day %v is %v", anchor, days[0], days[0].Weekday())
		}
		if days[6].Weekday() != time.Saturday {
			t.Errorf("%v: last day %v is %v", anchor, days[6], days[6].Weekday())
		}
		if days[6].Sub(days[0]) < 6*24*time.Hour-time.Hour {
			t.Errorf("%v: week %v..%v is not six days long", anchor, days[0], days[6])
		}
		found := false
		for _, d := range days {
			if SameDay(d, anchor) {
				found = true
			}
		}
		if !found {
			t.Errorf("%v: anchor missing from its own week", anchor)
		}
	}
}

func TestWeekDaysRollover(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		first  time.Time
		last   time.Time
	}{
		{"year end", date(2024, time.December, 31), date(2024, time.December, 29), date(2025, time.January, 4)},
		{"month end", date(2024, time.April, 2), date(2024, time.March, 31), date(2024, time.April, 6)},
		{"leap day", date(2024, time.February, 29), date(2024, time.February, 25), date(2024, time.March, 2)},
		{"anchor is sunday", date(2024, time.March, 10), date(2024, time.March, 10), date(2024, time.March, 16)},
		{"anchor is saturday", date(2024, time.March, 16), date(2024, time.March, 10), date(2024, time.March, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := WeekDays(tt.anchor)
			if !days[0].Equal(tt.first) {
				t.Errorf("first = %v, want %v", days[0], tt.first)
			}
			if !days[6].Equal(tt.last) {
				t.Errorf("last = %v, want %v", days[6], tt.last)
			}
		})
	}
}
