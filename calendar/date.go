/*
Package calendar provides the month-grid and date-range engine behind the
dashboard's calendar views.

PURPOSE:
  The interview scheduler and the workday/PTO calendar both need the same
  two things: lay a month out as a 7-column grid with records bucketed per
  day, and find which leave range (if any) covers a given day. This package
  does both, with no knowledge of interviews or leave requests.

KEY CONCEPTS:
  - Date:       A civil calendar date (year, month, day). Zero value = absent.
  - YearMonth:  A 1-indexed (year, month) pair with rollover normalization.
  - Day[T]:     One grid cell with the records that fall on it.
  - DateRange:  A closed-closed [Start, End] span of dates.

PURITY:
  Nothing here reads the clock. Callers pass "today" explicitly, so the
  same inputs always produce the same grid.

USAGE:
  days := calendar.BuildMonthGrid(calendar.YearMonth{Year: 2024, Month: 2},
      interviews, today, func(i Interview) calendar.Date {
          return calendar.DateOf(i.ScheduledAt)
      })

  leave, ok := calendar.FindRangeContaining(day, requests,
      func(r LeaveRequest) calendar.DateRange { return r.Range() })

SEE ALSO:
  - grid.go:   BuildMonthGrid, Weeks
  - month.go:  YearMonth navigation
  - period.go: DateRange and FindRangeContaining
*/
package calendar

import (
	"fmt"
	"strconv"
	"time"
)

// =============================================================================
// DATE - Civil calendar date
// =============================================================================

// ISOLayout is the wire format for dates.
const ISOLayout = "2006-01-02"

// Date is a proleptic-Gregorian calendar date without a time or zone.
// The zero value is not a valid date and stands for "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for (year, month, day) or an *InvalidDateError
// when the combination does not exist (month outside 1-12, day=32, Feb 30).
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, &InvalidDateError{Year: year, Month: int(month), Day: day, Reason: "month out of range"}
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, &InvalidDateError{Year: year, Month: int(month), Day: day, Reason: "day out of range"}
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustDate is NewDate for literals; it panics on an invalid date.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	if len(s) != len(ISOLayout) || s[4] != '-' || s[7] != '-' {
		return Date{}, &InvalidDateError{Input: s, Reason: "expected YYYY-MM-DD"}
	}
	if !isDigits(s[0:4]) || !isDigits(s[5:7]) || !isDigits(s[8:10]) {
		return Date{}, &InvalidDateError{Input: s, Reason: "non-numeric component"}
	}
	y, _ := strconv.Atoi(s[0:4])
	m, _ := strconv.Atoi(s[5:7])
	d, _ := strconv.Atoi(s[8:10])
	date, err := NewDate(y, time.Month(m), d)
	if err != nil {
		err.(*InvalidDateError).Input = s
		return Date{}, err
	}
	return date, nil
}

// isDigits reports whether s is non-empty and all ASCII digits. Atoi alone
// would let a sign through.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Comparison
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool        { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool         { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool         { return d == other }
func (d Date) BeforeOrEqual(other Date) bool { return d.Compare(other) <= 0 }
func (d Date) AfterOrEqual(other Date) bool  { return d.Compare(other) >= 0 }
func (d Date) IsZero() bool                  { return d == Date{} }

// Arithmetic
func (d Date) AddDays(n int) Date { return DateOf(d.Time(time.UTC).AddDate(0, 0, n)) }

// Properties
func (d Date) Weekday() time.Weekday { return d.Time(time.UTC).Weekday() }
func (d Date) IsWeekend() bool       { wd := d.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (d Date) YearMonth() YearMonth  { return YearMonth{Year: d.Year, Month: int(d.Month)} }

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes the date as YYYY-MM-DD (empty for the zero date).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes YYYY-MM-DD; an empty string yields the zero date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CALENDAR ARITHMETIC
// =============================================================================

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in (year, month), or 0 for an invalid month.
func DaysIn(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
