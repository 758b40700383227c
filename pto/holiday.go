package pto

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"

	"github.com/warp/crm-calendar/calendar"
)

// =============================================================================
// HOLIDAY CALENDAR - Company holidays that do not count against leave
// =============================================================================

// Holiday is a company holiday. A recurring holiday falls on the same
// month and day every year. A floating holiday has an RRULE instead
// (Thanksgiving: "FREQ=YEARLY;BYMONTH=11;BYDAY=+4TH") and Date is its first
// occurrence; it does not apply before that.
type Holiday struct {
	Date      calendar.Date
	Name      string
	Recurring bool
	Rule      string
}

// Validate checks the name and, for floating holidays, the rule.
func (h Holiday) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("holiday on %s has no name", h.Date)
	}
	if h.Rule != "" {
		if _, err := rrule.StrToRRule(h.Rule); err != nil {
			return fmt.Errorf("holiday %q: invalid rule %q: %w", h.Name, h.Rule, err)
		}
	}
	return nil
}

// occurrences returns the dates h falls on in year.
func (h Holiday) occurrences(year int) []calendar.Date {
	switch {
	case h.Rule != "":
		r, err := rrule.StrToRRule(h.Rule)
		if err != nil {
			return nil
		}
		r.DTStart(h.Date.Time(time.UTC))
		from := calendar.YearMonth{Year: year, Month: 1}.FirstDay().Time(time.UTC)
		to := calendar.YearMonth{Year: year, Month: 12}.LastDay().Time(time.UTC)
		var out []calendar.Date
		for _, t := range r.Between(from, to, true) {
			out = append(out, calendar.DateOf(t))
		}
		return out
	case h.Recurring:
		// Feb 29 only recurs in leap years.
		d, err := calendar.NewDate(year, h.Date.Month, h.Date.Day)
		if err != nil {
			return nil
		}
		return []calendar.Date{d}
	case h.Date.Year == year:
		return []calendar.Date{h.Date}
	default:
		return nil
	}
}

// HolidayCalendar looks up holidays.
type HolidayCalendar interface {
	// HolidayOn returns the holiday on d, if any. One-off holidays take
	// precedence over recurring ones, which take precedence over floating
	// ones.
	HolidayOn(d calendar.Date) (Holiday, bool)

	// InYear returns all holidays in year, recurring and floating ones
	// moved to that year.
	InYear(year int) []Holiday
}

// StaticHolidays is an in-memory HolidayCalendar.
type StaticHolidays []Holiday

func (s StaticHolidays) HolidayOn(d calendar.Date) (Holiday, bool) {
	for _, h := range s {
		if !h.Recurring && h.Rule == "" && h.Date == d {
			return h, true
		}
	}
	for _, h := range s {
		if h.Recurring && h.Rule == "" && h.Date.Month == d.Month && h.Date.Day == d.Day {
			return Holiday{Date: d, Name: h.Name, Recurring: true}, true
		}
	}
	for _, h := range s {
		if h.Rule == "" || d.Before(h.Date) {
			continue
		}
		for _, occ := range h.occurrences(d.Year) {
			if occ == d {
				return Holiday{Date: d, Name: h.Name, Recurring: true, Rule: h.Rule}, true
			}
		}
	}
	return Holiday{}, false
}

func (s StaticHolidays) InYear(year int) []Holiday {
	var out []Holiday
	for _, h := range s {
		for _, d := range h.occurrences(year) {
			out = append(out, Holiday{Date: d, Name: h.Name, Recurring: h.Recurring || h.Rule != "", Rule: h.Rule})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// =============================================================================
// WORKDAY COUNTING
// =============================================================================

// IsWorkday reports whether d is a weekday that is not a holiday.
func IsWorkday(d calendar.Date, holidays HolidayCalendar) bool {
	if d.IsWeekend() {
		return false
	}
	if holidays != nil {
		if _, ok := holidays.HolidayOn(d); ok {
			return false
		}
	}
	return true
}

// CountWorkdays returns the number of working days in r.
func CountWorkdays(r calendar.DateRange, holidays HolidayCalendar) int {
	n := 0
	for _, d := range r.Days() {
		if IsWorkday(d, holidays) {
			n++
		}
	}
	return n
}

// RequestedDays converts a range into leave days: each working day counts
// hoursPerDay/8, so two half days are one day.
func RequestedDays(r calendar.DateRange, hoursPerDay float64, holidays HolidayCalendar) decimal.Decimal {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}
	perDay := decimal.NewFromFloat(hoursPerDay).Div(decimal.NewFromInt(DefaultHoursPerDay))
	return perDay.Mul(decimal.NewFromInt(int64(CountWorkdays(r, holidays))))
}
