package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a (year, month, day) combination does
	// not exist or a date string is not ISO YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when a range ends before it starts.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrInvalidDirection is returned for a navigation direction other than
	// previous or next.
	ErrInvalidDirection = errors.New("invalid navigation direction")

	// ErrInvalidYearMonth is returned when a YYYY-MM string cannot be parsed.
	ErrInvalidYearMonth = errors.New("invalid year-month")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InvalidDateError describes a date the calendar cannot represent.
type InvalidDateError struct {
	Input  string // raw input when parsing, empty for NewDate
	Year   int
	Month  int
	Day    int
	Reason string
}

func (e *InvalidDateError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid date %04d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Reason)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

// IsClientError returns true if err came from bad caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrInvalidYearMonth)
}
