package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestProject(t *testing.T) {
	slots := Slots()

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart int
		wantSpan  int
	}{
		{"on the grid", "09:00", "10:30", 18, 3},
		{"midnight start", "00:00", "00:30", 0, 1},
		{"off-grid start rounds up", "09:15", "10:00", 19, 1},
		{"shorter than a slot", "09:05", "09:10", 19, 1},
		{"ends after last slot", "23:00", "23:59", 46, 2},
		{"starts after last slot", "23:40", "23:50", 0, 48},
		{"last slot exactly", "23:30", "23:45", 47, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(Event{Date: "2024-03-10", StartTime: tt.start, EndTime: tt.end}, slots)
			if got.StartRow != tt.wantStart || got.RowSpan != tt.wantSpan {
				t.Errorf("Project(%s-%s) = %+v, want {StartRow:%d RowSpan:%d}",
					tt.start, tt.end, got, tt.wantStart, tt.wantSpan)
			}
		})
	}
}

func TestProjectSpanNeverBelowOne(t *testing.T) {
	slots := Slots()
	for _, start := range slots {
		for _, end := range append(append([]string{}, slots...), "23:59", "00:00") {
			got := Project(Event{StartTime: start, EndTime: end}, slots)
			if got.RowSpan < 1 {
				t.Fatalf("Project(%s-%s).RowSpan = %d", start, end, got.RowSpan)
			}
		}
	}
}

func TestProjectCoarseSlots(t *testing.T) {
	var hourly []string
	for i, slot := range Slots() {
		if i%2 == 0 {
			hourly = append(hourly, slot)
		}
	}

	got := Project(Event{StartTime: "09:00", EndTime: "10:30"}, hourly)
	want := Placement{StartRow: 9, RowSpan: 2}
	if got != want {
		t.Errorf("Project on hourly slots = %+v, want %+v", got, want)
	}
}

func TestPlacementCovers(t *testing.T) {
	p := Placement{StartRow: 18, RowSpan: 3}
	if p.EndRow() != 21 {
		t.Errorf("EndRow = %d, want 21", p.EndRow())
	}
	for row, want := range map[int]bool{17: false, 18: true, 20: true, 21: false} {
		if p.Covers(row) != want {
			t.Errorf("Covers(%d) = %v, want %v", row, !want, want)
		}
	}
}

func TestProjectDay(t *testing.T) {
	events := []Event{
		{ID: "b", Date: "2024-03-10", StartTime: "10:00", EndTime: "11:00"},
		{ID: "other", Date: "2024-03-11", StartTime: "08:00", EndTime: "09:00"},
		{ID: "a", Date: "2024-03-10", StartTime: "09:00", EndTime: "10:30"},
	}

	blocks := ProjectDay(date(2024, time.March, 10), events, Slots())
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if blocks[0].ID != "a" || blocks[0].StartRow != 18 || blocks[0].RowSpan != 3 {
		t.Errorf("first block = %+v", blocks[0])
	}
	// Overlapping events keep their own rows; nothing is shifted sideways.
	if blocks[1].ID != "b" || blocks[1].StartRow != 20 || blocks[1].RowSpan != 2 {
		t.Errorf("second block = %+v", blocks[1])
	}
}

func TestEventsOn(t *testing.T) {
	events := []Event{
		{ID: "1", Date: "2024-03-10", StartTime: "14:00"},
		{ID: "2", Date: "2024-03-10", StartTime: "09:00"},
		{ID: "3", Date: "2024-03-11", StartTime: "08:00"},
		{ID: "4", Date: "2024-03-10", StartTime: "09:00"},
		{ID: "5", Date: "2024-03-10", StartTime: "00:30"},
		{ID: "6", Date: "2024-03-10", StartTime: "09:00"},
	}
	original := append([]Event(nil), events...)

	got := EventsOn(date(2024, time.March, 10), events)

	wantIDs := []string{"5", "2", "4", "6", "1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("len = %d, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].StartTime > got[i].StartTime {
			t.Errorf("not sorted at %d", i)
		}
	}
	for i := range events {
		if events[i] != original[i] {
			t.Errorf("input modified at %d: %+v", i, events[i])
		}
	}

	if n := CountOn(date(2024, time.March, 10), events); n != 5 {
		t.Errorf("CountOn = %d, want 5", n)
	}
	if got := EventsOn(date(2024, time.March, 12), events); len(got) != 0 {
		t.Errorf("expected no events on an empty day, got %d", len(got))
	}
}

func TestDraftValidate(t *testing.T) {
	valid := Draft{Title: "Standup", Date: "2024-01-01", StartTime: "09:00", EndTime: "10:00"}

	tests := []struct {
		name   string
		mutate func(*Draft)
		want   error
	}{
		{"valid", func(d *Draft) {}, nil},
		{"empty title", func(d *Draft) { d.Title = "" }, ErrTitleRequired},
		{"blank title", func(d *Draft) { d.Title = "   " }, ErrTitleRequired},
		{"missing date", func(d *Draft) { d.Date = "" }, ErrDateRequired},
		{"missing start", func(d *Draft) { d.StartTime = "" }, ErrStartRequired},
		{"missing end", func(d *Draft) { d.EndTime = "" }, ErrEndRequired},
		{"bad date", func(d *Draft) { d.Date = "2024-02-30" }, ErrInvalidDate},
		{"unpadded time", func(d *Draft) { d.StartTime = "9:00" }, ErrInvalidTime},
		{"equal times", func(d *Draft) { d.EndTime = "09:00" }, ErrEndBeforeStart},
		{"end before start", func(d *Draft) { d.EndTime = "08:30" }, ErrEndBeforeStart},
		{"swatch color", func(d *Draft) { d.Color = "#ef4444" }, nil},
		{"unknown color", func(d *Draft) { d.Color = "#000000" }, ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error %T is not a *ValidationError", err)
			}
		})
	}
}
