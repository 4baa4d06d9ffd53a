package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwarden/schedule/internal/calendar"
)

// ErrEmptyInput is returned for blank quick-add text.
var ErrEmptyInput = errors.New("empty input")

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})\b`)
	dateRe      = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
	shortDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})\b`)
	// After "2-4", a suffix like " pm" or ":30" makes it a time range.
	rangeTailRe = regexp.MustCompile(`^(?::\d{2}|\s*(?:am|pm)\b)`)
	monthNameRe = regexp.MustCompile(`^(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\s+(\d{1,2})\b(?:,?\s+(\d{4})\b)?`)
	weekdayRe   = regexp.MustCompile(`^(next|this)\s+(mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday)\b`)
	inRe        = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months)\b`)
	fromNowRe   = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months)\s+from\s+(now|today)\b`)

	rangeRe  = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*-\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	ampmRe   = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	clockRe  = regexp.MustCompile(`^(\d{1,2}):(\d{2})\b`)
	namedRe  = regexp.MustCompile(`^(noon|midnight|morning|afternoon|evening|night)\b`)
	namedHrs = map[string]int{
		"noon":      12,
		"midnight":  0,
		"morning":   9,
		"afternoon": 14,
		"evening":   18,
		"night":     21,
	}
)

// QuickAdd turns one line such as "tomorrow 2pm-3:30pm Dentist" into a
// draft event.
type QuickAdd struct {
	now      time.Time
	location *time.Location
	duration int
}

func NewQuickAdd() *QuickAdd {
	return &QuickAdd{
		now:      time.Now(),
		location: time.Local,
		duration: 60,
	}
}

func (p *QuickAdd) SetNow(now time.Time) {
	p.now = now
	p.location = now.Location()
}

// SetDefaultDuration sets the length in minutes of events given only a
// start time.
func (p *QuickAdd) SetDefaultDuration(minutes int) {
	if minutes > 0 {
		p.duration = minutes
	}
}

// Parse reads an optional date, an optional time or time range, and uses
// the rest as the title. Without a date the event is today; without a time
// it starts at the half hour nearest to now.
func (p *QuickAdd) Parse(input string) (*calendar.Draft, error) {
	remaining := strings.TrimSpace(input)
	if remaining == "" {
		return nil, ErrEmptyInput
	}

	date := p.today()
	if d, rest, ok := p.parseRelativeDate(remaining); ok {
		date, remaining = d, rest
	} else if d, rest, ok, err := p.parseAbsoluteDate(remaining); err != nil {
		return nil, err
	} else if ok {
		date, remaining = d, rest
	}

	draft := calendar.DefaultDraft(date, p.now, p.duration)

	start, end, rest, ok, err := p.parseTime(remaining)
	if err != nil {
		return nil, err
	}
	if ok {
		draft.StartTime = start
		draft.EndTime = end
		if end == "" {
			draft.EndTime = calendar.AddMinutes(start, p.duration)
		}
		remaining = rest
	}

	draft.Title = strings.TrimSpace(remaining)
	return &draft, nil
}

func (p *QuickAdd) parseRelativeDate(input string) (time.Time, string, bool) {
	lower := strings.ToLower(input)

	for _, word := range []string{"today", "tomorrow", "tmrw", "yesterday"} {
		if !hasWord(lower, word) {
			continue
		}
		rest := strings.TrimSpace(input[len(word):])
		switch word {
		case "today":
			return p.today(), rest, true
		case "yesterday":
			return p.today().AddDate(0, 0, -1), rest, true
		default:
			return p.today().AddDate(0, 0, 1), rest, true
		}
	}

	if matches := weekdayRe.FindStringSubmatch(lower); matches != nil {
		date := p.findNextWeekday(parseWeekday(matches[2]), matches[1] == "next")
		return date, strings.TrimSpace(input[len(matches[0]):]), true
	}

	for _, re := range []*regexp.Regexp{inRe, fromNowRe} {
		if matches := re.FindStringSubmatch(lower); matches != nil {
			n, _ := strconv.Atoi(matches[1])
			return p.offset(n, matches[2]), strings.TrimSpace(input[len(matches[0]):]), true
		}
	}

	return time.Time{}, input, false
}

func (p *QuickAdd) offset(n int, unit string) time.Time {
	date := p.today()
	switch {
	case strings.HasPrefix(unit, "day"):
		return date.AddDate(0, 0, n)
	case strings.HasPrefix(unit, "week"):
		return date.AddDate(0, 0, n*7)
	default:
		return date.AddDate(0, n, 0)
	}
}

func (p *QuickAdd) parseAbsoluteDate(input string) (time.Time, string, bool, error) {
	var year, day int
	var month time.Month
	var matched string

	if m := isoDateRe.FindStringSubmatch(input); m != nil {
		year, month, day = atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3])
		matched = m[0]
	} else if m := dateRe.FindStringSubmatch(input); m != nil {
		month, day, year = time.Month(atoi(m[1])), atoi(m[2]), atoi(m[3])
		matched = m[0]
	} else if m := shortDateRe.FindStringSubmatch(input); m != nil && !rangeTailRe.MatchString(strings.ToLower(input[len(m[0]):])) {
		month, day, year = time.Month(atoi(m[1])), atoi(m[2]), p.now.Year()
		matched = m[0]
	} else if m := monthNameRe.FindStringSubmatch(strings.ToLower(input)); m != nil {
		month, day, year = parseMonth(m[1]), atoi(m[2]), p.now.Year()
		if m[3] != "" {
			year = atoi(m[3])
		}
		matched = m[0]
	} else {
		return time.Time{}, input, false, nil
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, p.location)
	// Reject dates that time.Date had to normalize, like 2/30.
	if date.Month() != month || date.Day() != day {
		return time.Time{}, input, false, fmt.Errorf("invalid date: %s", matched)
	}
	return date, strings.TrimSpace(input[len(matched):]), true, nil
}

// parseTime returns start and end clocks; end is empty when only a start
// was given.
func (p *QuickAdd) parseTime(input string) (string, string, string, bool, error) {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "at ") {
		lower = strings.TrimSpace(lower[3:])
		input = strings.TrimSpace(input[3:])
	}

	if m := rangeRe.FindStringSubmatch(lower); m != nil {
		endSuffix := m[6]
		startSuffix := m[3]
		// "2-4pm" means both ends are pm.
		if startSuffix == "" {
			startSuffix = endSuffix
		}
		start, err := clock(m[1], m[2], startSuffix)
		if err != nil {
			return "", "", input, false, err
		}
		end, err := clock(m[4], m[5], endSuffix)
		if err != nil {
			return "", "", input, false, err
		}
		return start, end, strings.TrimSpace(input[len(m[0]):]), true, nil
	}

	for _, re := range []*regexp.Regexp{ampmRe, clockRe} {
		if m := re.FindStringSubmatch(lower); m != nil {
			suffix := ""
			if len(m) > 3 {
				suffix = m[3]
			}
			start, err := clock(m[1], m[2], suffix)
			if err != nil {
				return "", "", input, false, err
			}
			return start, "", strings.TrimSpace(input[len(m[0]):]), true, nil
		}
	}

	if m := namedRe.FindStringSubmatch(lower); m != nil {
		start := calendar.ClockFromMinutes(namedHrs[m[1]] * 60)
		return start, "", strings.TrimSpace(input[len(m[0]):]), true, nil
	}

	return "", "", input, false, nil
}

func clock(hours, minutes, suffix string) (string, error) {
	hour := atoi(hours)
	minute := 0
	if minutes != "" {
		minute = atoi(minutes)
	}

	switch suffix {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 || (suffix != "" && atoi(hours) > 12) {
		return "", fmt.Errorf("invalid time: %s:%02d%s", hours, minute, suffix)
	}
	return calendar.ClockFromMinutes(hour*60 + minute), nil
}

func hasWord(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	return len(s) == len(word) || s[len(word)] == ' '
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseWeekday(s string) time.Weekday {
	switch s[:3] {
	case "mon":
		return time.Monday
	case "tue":
		return time.Tuesday
	case "wed":
		return time.Wednesday
	case "thu":
		return time.Thursday
	case "fri":
		return time.Friday
	case "sat":
		return time.Saturday
	default:
		return time.Sunday
	}
}

func parseMonth(s string) time.Month {
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), s[:3]) {
			return m
		}
	}
	return time.January
}

func (p *QuickAdd) findNextWeekday(target time.Weekday, skipThisWeek bool) time.Time {
	date := p.today()
	daysUntil := int(target - date.Weekday())

	if daysUntil <= 0 || skipThisWeek {
		daysUntil += 7
	}
	return date.AddDate(0, 0, daysUntil)
}

func (p *QuickAdd) today() time.Time {
	return calendar.Today(p.now.In(p.location))
}
