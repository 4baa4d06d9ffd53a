package calendar

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"
)

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrDateRequired   = errors.New("date is required")
	ErrStartRequired  = errors.New("start time is required")
	ErrEndRequired    = errors.New("end time is required")
	ErrInvalidDate    = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime    = errors.New("time must be zero-padded HH:MM")
	ErrEndBeforeStart = errors.New("end time must be after start time")
	ErrInvalidColor   = errors.New("color is not one of the swatches")
)

// ValidationError reports which draft field was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validate checks the draft against the event invariants. Time fields are
// compared as strings, which orders correctly because both are zero-padded.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrTitleRequired}
	}
	if d.Date == "" {
		return &ValidationError{Field: "date", Err: ErrDateRequired}
	}
	if d.StartTime == "" {
		return &ValidationError{Field: "startTime", Err: ErrStartRequired}
	}
	if d.EndTime == "" {
		return &ValidationError{Field: "endTime", Err: ErrEndRequired}
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	if !clockRe.MatchString(d.StartTime) {
		return &ValidationError{Field: "startTime", Err: ErrInvalidTime}
	}
	if !clockRe.MatchString(d.EndTime) {
		return &ValidationError{Field: "endTime", Err: ErrInvalidTime}
	}
	if d.StartTime >= d.EndTime {
		return &ValidationError{Field: "endTime", Err: ErrEndBeforeStart}
	}
	if d.Color != "" && !IsSwatch(d.Color) {
		return &ValidationError{Field: "color", Err: ErrInvalidColor}
	}
	return nil
}

// IsSwatch reports whether color is one of Swatches, ignoring case.
func IsSwatch(color string) bool {
	return slices.ContainsFunc(Swatches, func(s string) bool {
		return strings.EqualFold(s, color)
	})
}
