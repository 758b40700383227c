/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures the dashboard frontend consumes. Domain types
  stay free of JSON concerns; conversion happens here.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

DATES:
  Calendar dates are "YYYY-MM-DD", months "YYYY-MM", instants RFC 3339.
  Padding cells in a month grid carry an empty date.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/crm-calendar/calendar"
	"github.com/warp/crm-calendar/interview"
	"github.com/warp/crm-calendar/pto"
)

// =============================================================================
// NAVIGATION
// =============================================================================

// NavigateResponse is the result of stepping one month.
type NavigateResponse struct {
	From      string `json:"from"`
	Direction string `json:"direction"`
	Month     string `json:"month"`
	Year      int    `json:"year"`
	MonthNum  int    `json:"month_number"`
}

// =============================================================================
// INTERVIEWS
// =============================================================================

// InterviewDTO represents an interview in API responses.
type InterviewDTO struct {
	ID              string `json:"id"`
	CandidateID     string `json:"candidate_id,omitempty"`
	CandidateName   string `json:"candidate_name"`
	Position        string `json:"position,omitempty"`
	Interviewer     string `json:"interviewer,omitempty"`
	Type            string `json:"type"`
	ScheduledAt     string `json:"scheduled_at"`
	EndsAt          string `json:"ends_at"`
	DurationMinutes int    `json:"duration_minutes"`
	Location        string `json:"location,omitempty"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
}

// ScheduleInterviewRequest is the body of POST /api/interviews.
type ScheduleInterviewRequest struct {
	CandidateID     string    `json:"candidate_id"`
	CandidateName   string    `json:"candidate_name"`
	Position        string    `json:"position"`
	Interviewer     string    `json:"interviewer"`
	Type            string    `json:"type"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`
	Notes           string    `json:"notes"`
}

// UpdateStatusRequest is the body of POST /api/interviews/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// InterviewMonthDTO is the interview month grid, one slice per week row.
type InterviewMonthDTO struct {
	Month    string              `json:"month"`
	Previous string              `json:"previous"`
	Next     string              `json:"next"`
	Weeks    [][]InterviewDayDTO `json:"weeks"`
	Counts   map[string]int      `json:"counts"`
	Total    int                 `json:"total"`
}

// InterviewDayDTO is one cell of the interview grid.
type InterviewDayDTO struct {
	Date       string         `json:"date,omitempty"`
	IsToday    bool           `json:"is_today"`
	Interviews []InterviewDTO `json:"interviews"`
	More       int            `json:"more"`
}

// =============================================================================
// LEAVE
// =============================================================================

// LeaveRequestDTO represents a leave request in API responses.
type LeaveRequestDTO struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Type         string          `json:"type"`
	Start        string          `json:"start"`
	End          string          `json:"end"`
	HoursPerDay  float64         `json:"hours_per_day"`
	Days         decimal.Decimal `json:"days"`
	Status       string          `json:"status"`
	Reason       string          `json:"reason,omitempty"`
	ReviewedBy   string          `json:"reviewed_by,omitempty"`
	ReviewNote   string          `json:"review_note,omitempty"`
	ReviewedAt   *string         `json:"reviewed_at,omitempty"`
}

// SubmitLeaveRequest is the body of POST /api/pto/requests.
type SubmitLeaveRequest struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Type         string        `json:"type"`
	Start        calendar.Date `json:"start"`
	End          calendar.Date `json:"end"`
	HoursPerDay  float64       `json:"hours_per_day"`
	Reason       string        `json:"reason"`
}

// ReviewRequest is the body of approve and deny calls.
type ReviewRequest struct {
	Reviewer string `json:"reviewer"`
	Note     string `json:"note"`
}

// LeaveMonthDTO is the workday calendar for one month.
type LeaveMonthDTO struct {
	Month     string          `json:"month"`
	Previous  string          `json:"previous"`
	Next      string          `json:"next"`
	Employee  string          `json:"employee,omitempty"`
	Weeks     [][]LeaveDayDTO `json:"weeks"`
	LeaveDays map[string]int  `json:"leave_days"`
	Conflicts []ConflictDTO   `json:"conflicts"`
}

// LeaveDayDTO is one cell of the workday calendar.
type LeaveDayDTO struct {
	Date      string `json:"date,omitempty"`
	IsToday   bool   `json:"is_today"`
	IsWeekend bool   `json:"is_weekend"`
	Holiday   string `json:"holiday,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Employee  string `json:"employee,omitempty"`
	LeaveType string `json:"leave_type,omitempty"`
	Status    string `json:"status,omitempty"`
	Tone      string `json:"tone,omitempty"`
}

// ConflictDTO names two requests that cover a common day.
type ConflictDTO struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// LeaveSummaryDTO totals an employee's leave for a year.
type LeaveSummaryDTO struct {
	EmployeeID string          `json:"employee_id"`
	Year       int             `json:"year"`
	Approved   decimal.Decimal `json:"approved_days"`
	Pending    decimal.Decimal `json:"pending_days"`
	Denied     decimal.Decimal `json:"denied_days"`
	Requests   int             `json:"requests"`
}

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
	Rule      string `json:"rule,omitempty"`
}

// ErrorResponse is returned for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toInterviewDTO(iv interview.Interview, loc *time.Location) InterviewDTO {
	dur := iv.EndsAt().Sub(iv.ScheduledAt)
	return InterviewDTO{
		ID:              iv.ID,
		CandidateID:     iv.CandidateID,
		CandidateName:   iv.CandidateName,
		Position:        iv.Position,
		Interviewer:     iv.Interviewer,
		Type:            string(iv.Type),
		ScheduledAt:     iv.ScheduledAt.In(loc).Format(time.RFC3339),
		EndsAt:          iv.EndsAt().In(loc).Format(time.RFC3339),
		DurationMinutes: int(dur / time.Minute),
		Location:        iv.Location,
		Status:          string(iv.Status),
		Notes:           iv.Notes,
	}
}

func toInterviewDTOs(ivs []interview.Interview, loc *time.Location) []InterviewDTO {
	dtos := make([]InterviewDTO, len(ivs))
	for i, iv := range ivs {
		dtos[i] = toInterviewDTO(iv, loc)
	}
	return dtos
}

func toInterviewMonthDTO(v *interview.MonthView, loc *time.Location) InterviewMonthDTO {
	dto := InterviewMonthDTO{
		Month:    v.Month.String(),
		Previous: v.Previous.String(),
		Next:     v.Next.String(),
		Weeks:    make([][]InterviewDayDTO, len(v.Weeks)),
		Counts:   make(map[string]int, len(v.Counts)),
		Total:    v.Total,
	}
	for status, n := range v.Counts {
		dto.Counts[string(status)] = n
	}
	for i, week := range v.Weeks {
		row := make([]InterviewDayDTO, len(week))
		for j, day := range week {
			row[j] = InterviewDayDTO{
				Date:       day.Date.String(),
				IsToday:    day.IsToday,
				Interviews: toInterviewDTOs(day.Interviews, loc),
				More:       day.More,
			}
		}
		dto.Weeks[i] = row
	}
	return dto
}

func toLeaveRequestDTO(r pto.LeaveRequest) LeaveRequestDTO {
	dto := LeaveRequestDTO{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Type:         string(r.Type),
		Start:        r.Start.String(),
		End:          r.End.String(),
		HoursPerDay:  r.HoursPerDay,
		Days:         r.Days,
		Status:       string(r.Status),
		Reason:       r.Reason,
		ReviewedBy:   r.ReviewedBy,
		ReviewNote:   r.ReviewNote,
	}
	if r.ReviewedAt != nil {
		s := r.ReviewedAt.Format(time.RFC3339)
		dto.ReviewedAt = &s
	}
	return dto
}

func toLeaveMonthDTO(v *pto.WorkdayMonth, employee string) LeaveMonthDTO {
	dto := LeaveMonthDTO{
		Month:     v.Month.String(),
		Previous:  v.Previous.String(),
		Next:      v.Next.String(),
		Employee:  employee,
		Weeks:     make([][]LeaveDayDTO, len(v.Weeks)),
		LeaveDays: make(map[string]int, len(v.LeaveDays)),
		Conflicts: []ConflictDTO{},
	}
	for status, n := range v.LeaveDays {
		dto.LeaveDays[string(status)] = n
	}
	for i, week := range v.Weeks {
		row := make([]LeaveDayDTO, len(week))
		for j, cell := range week {
			day := LeaveDayDTO{
				Date:      cell.Date.String(),
				IsToday:   cell.IsToday,
				IsWeekend: cell.IsWeekend,
				Holiday:   cell.Holiday,
				Status:    string(cell.Status),
				Tone:      cell.Tone(),
			}
			if cell.Leave != nil {
				day.RequestID = cell.Leave.ID
				day.Employee = cell.Leave.EmployeeName
				day.LeaveType = string(cell.Leave.Type)
			}
			row[j] = day
		}
		dto.Weeks[i] = row
	}
	for _, pair := range v.Conflicts {
		dto.Conflicts = append(dto.Conflicts, ConflictDTO{First: pair[0].ID, Second: pair[1].ID})
	}
	return dto
}
