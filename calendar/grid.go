package calendar

import "time"

// =============================================================================
// MONTH GRID - Day cells with bucketed records
// =============================================================================

// DaysPerWeek is the width of a month grid.
const DaysPerWeek = 7

// Day is one cell of a month grid. Padding cells (before day 1, or filling
// the last week) have a zero Date and no records.
type Day[T any] struct {
	Date    Date
	IsToday bool
	Records []T
}

// IsPadding reports whether the cell is a blank slot outside the month.
func (d Day[T]) IsPadding() bool { return d.Date.IsZero() }

// BuildMonthGrid lays out ym as a Sunday-first grid.
//
// The result holds LeadingPadding(ym, time.Sunday) padding cells followed by
// one cell per day of the month; trailing cells are not added (see Weeks).
// Each dated cell carries, in input order, every record whose dateOf equals
// that date, and IsToday is set on the cell equal to today. ym is normalized
// first, so {2024, 13} renders January 2025.
func BuildMonthGrid[T any](ym YearMonth, records []T, today Date, dateOf func(T) Date) []Day[T] {
	return BuildMonthGridFrom(time.Sunday, ym, records, today, dateOf)
}

// BuildMonthGridFrom is BuildMonthGrid with weekStart as the first column.
func BuildMonthGridFrom[T any](weekStart time.Weekday, ym YearMonth, records []T, today Date, dateOf func(T) Date) []Day[T] {
	ym = ym.Normalize()
	padding := LeadingPadding(ym, weekStart)
	daysInMonth := ym.DaysInMonth()

	days := make([]Day[T], padding+daysInMonth)
	first := ym.FirstDay()
	for i := 0; i < daysInMonth; i++ {
		date := Date{Year: first.Year, Month: first.Month, Day: i + 1}
		days[padding+i] = Day[T]{Date: date, IsToday: date == today}
	}

	// Single pass keeps each bucket in input order.
	for _, r := range records {
		d := dateOf(r)
		if !ym.Contains(d) || d.Day < 1 || d.Day > daysInMonth {
			continue
		}
		cell := &days[padding+d.Day-1]
		cell.Records = append(cell.Records, r)
	}
	return days
}

// LeadingPadding returns the number of blank cells before day 1 of ym when
// weeks start on weekStart. With Sunday it is the weekday index of day 1.
func LeadingPadding(ym YearMonth, weekStart time.Weekday) int {
	first := ym.FirstDay().Weekday()
	return (int(first) - int(weekStart) + DaysPerWeek) % DaysPerWeek
}

// Weeks splits a grid into rows of seven, padding the last row so every
// row is complete.
func Weeks[T any](days []Day[T]) [][]Day[T] {
	if len(days) == 0 {
		return nil
	}
	rows := (len(days) + DaysPerWeek - 1) / DaysPerWeek
	padded := make([]Day[T], rows*DaysPerWeek)
	copy(padded, days)

	weeks := make([][]Day[T], rows)
	for i := range weeks {
		weeks[i] = padded[i*DaysPerWeek : (i+1)*DaysPerWeek : (i+1)*DaysPerWeek]
	}
	return weeks
}
