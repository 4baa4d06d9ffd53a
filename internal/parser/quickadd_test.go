package parser

import (
	"errors"
	"testing"
	"time"
)

func newTestParser() *QuickAdd {
	p := NewQuickAdd()
	// Friday
	p.SetNow(time.Date(2024, 3, 15, 10, 10, 0, 0, time.Local))
	return p
}

func TestParseRelativeDates(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input        string
		expectedDate string
		expectedText string
	}{
		{"today meeting with team", "2024-03-15", "meeting with team"},
		{"tomorrow 2pm dentist appointment", "2024-03-16", "dentist appointment"},
		{"tmrw gym", "2024-03-16", "gym"},
		{"yesterday catch up", "2024-03-14", "catch up"},
		{"next monday submit report", "2024-03-18", "submit report"},
		{"this friday demo", "2024-03-22", "demo"},
		{"in 3 days project deadline", "2024-03-18", "project deadline"},
		{"2 weeks from now vacation starts", "2024-03-29", "vacation starts"},
		{"in 1 month review", "2024-04-15", "review"},
		{"todays agenda", "2024-03-15", "todays agenda"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.Date != tt.expectedDate {
				t.Errorf("Date mismatch: got %s, want %s", result.Date, tt.expectedDate)
			}
			if result.Title != tt.expectedText {
				t.Errorf("Title mismatch: got %q, want %q", result.Title, tt.expectedText)
			}
		})
	}
}

func TestParseAbsoluteDates(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input        string
		expectedDate string
		expectedText string
	}{
		{"2024-02-29 leap day party", "2024-02-29", "leap day party"},
		{"3/25/2024 birthday party", "2024-03-25", "birthday party"},
		{"12-31-2024 new year's eve", "2024-12-31", "new year's eve"},
		{"4/1 april fools", "2024-04-01", "april fools"},
		{"3-20 2pm dentist", "2024-03-20", "dentist"},
		{"May 15, 2024 conference", "2024-05-15", "conference"},
		{"december 25 christmas", "2024-12-25", "christmas"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.Date != tt.expectedDate {
				t.Errorf("Date mismatch: got %s, want %s", result.Date, tt.expectedDate)
			}
			if result.Title != tt.expectedText {
				t.Errorf("Title mismatch: got %q, want %q", result.Title, tt.expectedText)
			}
		})
	}

	if _, err := parser.Parse("2/30 impossible"); err == nil {
		t.Error("expected error for February 30")
	}
}

func TestParseTimes(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input string
		start string
		end   string
		title string
	}{
		{"2pm meeting", "14:00", "15:00", "meeting"},
		{"14:30 conference call", "14:30", "15:30", "conference call"},
		{"at 9am standup", "09:00", "10:00", "standup"},
		{"12am backup", "00:00", "01:00", "backup"},
		{"12:15pm lunch", "12:15", "13:15", "lunch"},
		{"noon lunch", "12:00", "13:00", "lunch"},
		{"midnight deadline", "00:00", "01:00", "deadline"},
		{"11:30pm late call", "23:30", "23:59", "late call"},
		{"3 friends over", "10:00", "11:00", "3 friends over"},
		{"nightly build", "10:00", "11:00", "nightly build"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.StartTime != tt.start || result.EndTime != tt.end {
				t.Errorf("times = %s-%s, want %s-%s", result.StartTime, result.EndTime, tt.start, tt.end)
			}
			if result.Title != tt.title {
				t.Errorf("Title mismatch: got %q, want %q", result.Title, tt.title)
			}
		})
	}
}

func TestParseTimeRanges(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input string
		start string
		end   string
		title string
	}{
		{"2pm-4pm workshop", "14:00", "16:00", "workshop"},
		{"9:00-10:30 meeting", "09:00", "10:30", "meeting"},
		{"1pm - 2:30pm lunch break", "13:00", "14:30", "lunch break"},
		{"2-4pm review", "14:00", "16:00", "review"},
		{"11am-1pm brunch", "11:00", "13:00", "brunch"},
		{"2-4 pm Dentist", "14:00", "16:00", "Dentist"},
		{"9-10:30 standup", "09:00", "10:30", "standup"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.Date != "2024-03-15" {
				t.Errorf("Date = %s, want today", result.Date)
			}
			if result.StartTime != tt.start || result.EndTime != tt.end {
				t.Errorf("times = %s-%s, want %s-%s", result.StartTime, result.EndTime, tt.start, tt.end)
			}
			if result.Title != tt.title {
				t.Errorf("Title mismatch: got %q, want %q", result.Title, tt.title)
			}
			if err := result.Validate(); err != nil {
				t.Errorf("parsed draft invalid: %v", err)
			}
		})
	}
}

func TestParseCombinations(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input string
		date  string
		start string
		title string
	}{
		{"tomorrow at 3pm doctor appointment", "2024-03-16", "15:00", "doctor appointment"},
		{"next friday 2:30pm team meeting", "2024-03-22", "14:30", "team meeting"},
		{"May 20, 2024 at noon graduation", "2024-05-20", "12:00", "graduation"},
		{"2024-03-10 9:00-10:30 planning", "2024-03-10", "09:00", "planning"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.Date != tt.date || result.StartTime != tt.start || result.Title != tt.title {
				t.Errorf("got %+v", result)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	parser := newTestParser()

	if _, err := parser.Parse("   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Parse(blank) = %v, want ErrEmptyInput", err)
	}
	if _, err := parser.Parse("25:00 nope"); err == nil {
		t.Error("expected error for hour 25")
	}
	if _, err := parser.Parse("13pm nope"); err == nil {
		t.Error("expected error for 13pm")
	}

	// A date with no title parses; the store rejects it later.
	result, err := parser.Parse("tomorrow 9am")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Title != "" || result.Validate() == nil {
		t.Errorf("expected untitled draft that fails validation, got %+v", result)
	}
}

func TestDefaultDuration(t *testing.T) {
	parser := newTestParser()
	parser.SetDefaultDuration(30)

	result, err := parser.Parse("9am quick sync")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.EndTime != "09:30" {
		t.Errorf("EndTime = %s, want 09:30", result.EndTime)
	}
}
