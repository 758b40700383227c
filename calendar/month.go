package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// YEAR-MONTH - The unit a calendar view pages through
// =============================================================================

// YearMonth identifies a calendar month. Month is 1-indexed (1 = January).
//
// Out-of-range months are legal and are rolled over by Normalize the same
// way time.Date does: {2024, 13} is January 2025, {2024, 0} is December
// 2023 and {2024, -11} is January 2023.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Direction selects the adjacent month for navigation.
type Direction string

const (
	Previous Direction = "previous"
	Next     Direction = "next"
)

// ParseDirection accepts "previous", "prev" or "next" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "previous", "prev":
		return Previous, nil
	case "next":
		return Next, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// ParseYearMonth parses YYYY-MM. The month must be 01-12.
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[4] != '-' {
		return YearMonth{}, fmt.Errorf("%w: %q (expected YYYY-MM)", ErrInvalidYearMonth, s)
	}
	if !isDigits(s[:4]) || !isDigits(s[5:]) {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	y, _ := strconv.Atoi(s[:4])
	m, _ := strconv.Atoi(s[5:])
	if m < 1 || m > 12 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return YearMonth{Year: y, Month: m}, nil
}

// MonthOf returns the YearMonth containing t in t's location.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// Normalize folds the month into 1-12, carrying whole years into Year.
func (ym YearMonth) Normalize() YearMonth {
	total := ym.Year*12 + (ym.Month - 1)
	year := floorDiv(total, 12)
	return YearMonth{Year: year, Month: total - year*12 + 1}
}

// Navigate returns the month adjacent to ym in the given direction.
// An unknown direction returns ym normalized.
func (ym YearMonth) Navigate(dir Direction) YearMonth {
	switch dir {
	case Previous:
		return ym.AddMonths(-1)
	case Next:
		return ym.AddMonths(1)
	default:
		return ym.Normalize()
	}
}

func (ym YearMonth) Next() YearMonth     { return ym.Navigate(Next) }
func (ym YearMonth) Previous() YearMonth { return ym.Navigate(Previous) }

// AddMonths moves n months forward (negative n moves back).
func (ym YearMonth) AddMonths(n int) YearMonth {
	return YearMonth{Year: ym.Year, Month: ym.Month + n}.Normalize()
}

// DaysInMonth returns the number of days in the (normalized) month.
func (ym YearMonth) DaysInMonth() int {
	n := ym.Normalize()
	return DaysIn(n.Year, time.Month(n.Month))
}

// FirstDay returns day 1 of the (normalized) month.
func (ym YearMonth) FirstDay() Date {
	n := ym.Normalize()
	return Date{Year: n.Year, Month: time.Month(n.Month), Day: 1}
}

// LastDay returns the final day of the (normalized) month.
func (ym YearMonth) LastDay() Date {
	n := ym.Normalize()
	return Date{Year: n.Year, Month: time.Month(n.Month), Day: n.DaysInMonth()}
}

// Range returns the month as a closed DateRange.
func (ym YearMonth) Range() DateRange {
	return DateRange{Start: ym.FirstDay(), End: ym.LastDay()}
}

// Contains reports whether d falls inside the month.
func (ym YearMonth) Contains(d Date) bool {
	n := ym.Normalize()
	return d.Year == n.Year && int(d.Month) == n.Month
}

func (ym YearMonth) String() string {
	n := ym.Normalize()
	return fmt.Sprintf("%04d-%02d", n.Year, n.Month)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
