package calendar

import "time"

// Placement is an event's position on a slot grid, in half-hour rows.
// Renderers own the row height and any header offset.
type Placement struct {
	StartRow int
	RowSpan  int
}

// EndRow is the first row after the event.
func (p Placement) EndRow() int {
	return p.StartRow + p.RowSpan
}

// Covers reports whether row is inside the placement.
func (p Placement) Covers(row int) bool {
	return row >= p.StartRow && row < p.EndRow()
}

// Block is an event together with its placement in one day column.
type Block struct {
	Event
	Placement
}

// Project maps the event's [start, end) interval onto slots.
//
// The start row is the first slot at or after the start time, or 0 when the
// event starts after the last slot. The end row is the first slot at or
// after the end time, or len(slots) when there is none. The span is never
// less than one row. Overlapping events are not rearranged.
func Project(event Event, slots []string) Placement {
	start := firstSlotAtOrAfter(slots, event.StartTime)
	if start < 0 {
		start = 0
	}
	end := firstSlotAtOrAfter(slots, event.EndTime)
	if end < 0 {
		end = len(slots)
	}
	return Placement{
		StartRow: start,
		RowSpan:  max(1, end-start),
	}
}

func firstSlotAtOrAfter(slots []string, clock string) int {
	for i, slot := range slots {
		if slot >= clock {
			return i
		}
	}
	return -1
}

// ProjectDay places every event on date into a single column. Week views
// call it once per day; day views call it once.
func ProjectDay(date time.Time, events []Event, slots []string) []Block {
	day := EventsOn(date, events)
	blocks := make([]Block, 0, len(day))
	for _, event := range day {
		blocks = append(blocks, Block{Event: event, Placement: Project(event, slots)})
	}
	return blocks
}
