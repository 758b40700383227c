/*
workday.go - Workday / PTO month view

PURPOSE:
  Renders one month for the leave calendar. Each day cell is shaded by the
  leave request covering it (approved, pending or denied), with weekends and
  company holidays marked.

OVERLAPS:
  Requests may overlap. The cell shows the first request in repository
  (submission) order that contains the day. Use calendar.OverlappingPairs
  to surface conflicts elsewhere.

SEE ALSO:
  - calendar/period.go: FindRangeContaining
  - service.go: how requests get into the repository
*/
package pto

import (
	"context"
	"fmt"
	"time"

	"github.com/warp/crm-calendar/calendar"
)

// WorkdayCalendar builds the leave month view.
type WorkdayCalendar struct {
	Repo      Repository
	Holidays  HolidayCalendar // optional
	WeekStart time.Weekday
}

// WorkdayMonth is a rendered leave month.
type WorkdayMonth struct {
	Month    calendar.YearMonth
	Previous calendar.YearMonth
	Next     calendar.YearMonth
	Weeks    [][]WorkdayCell

	// Leave days per status among the month's dated cells. Weekends and
	// holidays are not counted.
	LeaveDays map[Status]int
	Conflicts [][2]LeaveRequest // overlapping pairs touching this month
}

// WorkdayCell is one day of the leave calendar.
type WorkdayCell struct {
	Date      calendar.Date // zero for padding
	IsToday   bool
	IsWeekend bool
	Holiday   string        // holiday name, empty if none
	Leave     *LeaveRequest // first request covering the day
	Status    Status        // Leave.Status, empty if no leave
}

// Tone maps a cell to the color class the dashboard uses.
func (c WorkdayCell) Tone() string {
	switch {
	case c.Status == StatusApproved:
		return "approved"
	case c.Status == StatusPending:
		return "pending"
	case c.Status == StatusDenied:
		return "denied"
	case c.Holiday != "":
		return "holiday"
	case c.IsWeekend:
		return "weekend"
	default:
		return ""
	}
}

// MonthView renders ym. employeeID narrows the requests to one person;
// empty shows the whole team, earliest request winning.
func (w *WorkdayCalendar) MonthView(ctx context.Context, ym calendar.YearMonth, today calendar.Date, employeeID string) (*WorkdayMonth, error) {
	all, err := w.Repo.ListLeaveRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	requests := filterEmployee(all, employeeID)

	ym = ym.Normalize()
	month := ym.Range()

	// Only the grid shape is needed; leave is matched by range below.
	grid := calendar.BuildMonthGridFrom[LeaveRequest](w.WeekStart, ym, nil, today, nil)

	view := &WorkdayMonth{
		Month:     ym,
		Previous:  ym.Previous(),
		Next:      ym.Next(),
		LeaveDays: make(map[Status]int),
	}

	for _, week := range calendar.Weeks(grid) {
		row := make([]WorkdayCell, len(week))
		for i, day := range week {
			if day.IsPadding() {
				continue
			}
			cell := WorkdayCell{
				Date:      day.Date,
				IsToday:   day.IsToday,
				IsWeekend: day.Date.IsWeekend(),
			}
			if w.Holidays != nil {
				if h, ok := w.Holidays.HolidayOn(day.Date); ok {
					cell.Holiday = h.Name
				}
			}
			if req, ok := calendar.FindRangeContaining(day.Date, requests, LeaveRequest.Range); ok {
				cell.Leave = &req
				cell.Status = req.Status
				if !cell.IsWeekend && cell.Holiday == "" {
					view.LeaveDays[req.Status]++
				}
			}
			row[i] = cell
		}
		view.Weeks = append(view.Weeks, row)
	}

	for _, pair := range calendar.OverlappingPairs(requests, LeaveRequest.Range) {
		a, b := requests[pair[0]], requests[pair[1]]
		if shared, ok := a.Range().Intersect(b.Range()); ok && shared.Overlaps(month) {
			view.Conflicts = append(view.Conflicts, [2]LeaveRequest{a, b})
		}
	}

	return view, nil
}
