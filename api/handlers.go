/*
handlers.go - HTTP API handlers for the CRM dashboard calendars

PURPOSE:
  Exposes the interview scheduler and the workday (PTO) calendar via REST.
  Handles HTTP request/response and JSON serialization, and delegates to
  the interview and pto packages.

ENDPOINTS:
  Navigation:
    GET    /api/calendar/navigate?month=&direction=   Adjacent month

  Interviews:
    GET    /api/interviews?month=                     List (optionally one month)
    POST   /api/interviews                            Schedule
    POST   /api/interviews/{id}/status                Complete / cancel / no-show
    GET    /api/interviews/calendar?month=            Month grid
    GET    /api/interviews/day/{date}                 All interviews on a day
    GET    /api/interviews/calendar.ics?month=        iCalendar feed

  Leave:
    GET    /api/pto/requests?employee=                List
    POST   /api/pto/requests                          Submit
    POST   /api/pto/requests/{id}/approve|deny        Review
    GET    /api/pto/calendar?month=&employee=         Workday month grid
    GET    /api/pto/summary/{employee}?year=          Yearly totals
    GET    /api/holidays?year=                        Company holidays

  Mock data:
    GET    /api/mock                                  Record counts
    POST   /api/mock/reset                            Reload the seed

CLOCK:
  Handler.Now is the only place the live clock is read. The month
  parameter defaults to the current month in Location.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Invalid status transition
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/crm-calendar/calendar"
	"github.com/warp/crm-calendar/factory"
	"github.com/warp/crm-calendar/interview"
	"github.com/warp/crm-calendar/pto"
	"github.com/warp/crm-calendar/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *store.Memory
	Interviews *interview.Scheduler
	Leave      *pto.Service
	Workdays   *pto.WorkdayCalendar
	Seed       *factory.Seed // reloaded by POST /api/mock/reset
	Location   *time.Location
	Logger     *zap.Logger
	Now        func() time.Time
}

// Settings are the display options shared by both calendars.
type Settings struct {
	Location   *time.Location
	WeekStart  time.Weekday
	DisplayCap int
}

// NewHandler wires the domain services around mem.
func NewHandler(mem *store.Memory, seed *factory.Seed, settings Settings, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}

	scheduler := interview.NewScheduler(mem, logger.Named("interview"))
	scheduler.Location = loc
	scheduler.WeekStart = settings.WeekStart
	scheduler.DisplayCap = settings.DisplayCap

	h := &Handler{
		Store:      mem,
		Interviews: scheduler,
		Workdays:   &pto.WorkdayCalendar{Repo: mem, Holidays: mem, WeekStart: settings.WeekStart},
		Seed:       seed,
		Location:   loc,
		Logger:     logger,
		Now:        time.Now,
	}
	h.Leave = &pto.Service{
		Repo:     mem,
		Holidays: mem,
		Logger:   logger.Named("pto"),
		Now:      h.now,
	}
	return h
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// NAVIGATION
// =============================================================================

// NavigateMonth returns the month before or after the given one.
// GET /api/calendar/navigate?month=2024-12&direction=next
func (h *Handler) NavigateMonth(w http.ResponseWriter, r *http.Request) {
	month, err := h.monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	dir, err := calendar.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid direction", err)
		return
	}

	to := month.Navigate(dir)
	writeJSON(w, http.StatusOK, NavigateResponse{
		From:      month.String(),
		Direction: string(dir),
		Month:     to.String(),
		Year:      to.Year,
		MonthNum:  to.Month,
	})
}

// =============================================================================
// INTERVIEW HANDLERS
// =============================================================================

// ListInterviews returns all interviews, or one month's when month is set.
// GET /api/interviews
func (h *Handler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		ivs []interview.Interview
		err error
	)
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, perr := calendar.ParseYearMonth(raw)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "Invalid month", perr)
			return
		}
		ivs, err = h.Interviews.ForMonth(ctx, month)
	} else {
		ivs, err = h.Store.ListInterviews(ctx)
	}
	if err != nil {
		writeDomainError(w, "Failed to list interviews", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"interviews": toInterviewDTOs(ivs, h.Location)})
}

// ScheduleInterview creates a new interview.
// POST /api/interviews
func (h *Handler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var req ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.DurationMinutes < 0 {
		writeError(w, http.StatusBadRequest, "Invalid duration", fmt.Errorf("duration_minutes must not be negative"))
		return
	}

	iv, err := h.Interviews.Schedule(r.Context(), interview.Interview{
		CandidateID:   req.CandidateID,
		CandidateName: req.CandidateName,
		Position:      req.Position,
		Interviewer:   req.Interviewer,
		Type:          interview.Type(req.Type),
		ScheduledAt:   req.ScheduledAt,
		Duration:      time.Duration(req.DurationMinutes) * time.Minute,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainError(w, "Failed to schedule interview", err)
		return
	}

	writeJSON(w, http.StatusCreated, toInterviewDTO(*iv, h.Location))
}

// UpdateInterviewStatus moves a scheduled interview to a final status.
// POST /api/interviews/{id}/status
func (h *Handler) UpdateInterviewStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	iv, err := h.Interviews.UpdateStatus(r.Context(), id, interview.Status(req.Status))
	if err != nil {
		writeDomainError(w, "Failed to update interview", err)
		return
	}

	writeJSON(w, http.StatusOK, toInterviewDTO(*iv, h.Location))
}

// InterviewCalendar returns the month grid for the scheduler screen.
// GET /api/interviews/calendar?month=2024-02
func (h *Handler) InterviewCalendar(w http.ResponseWriter, r *http.Request) {
	month, err := h.monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	view, err := h.Interviews.MonthView(r.Context(), month, h.now())
	if err != nil {
		writeDomainError(w, "Failed to build calendar", err)
		return
	}

	writeJSON(w, http.StatusOK, toInterviewMonthDTO(view, h.Location))
}

// InterviewsOnDay returns every interview on one date (the "+N more" click).
// GET /api/interviews/day/2024-02-05
func (h *Handler) InterviewsOnDay(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	ivs, err := h.Interviews.ForDate(r.Context(), date)
	if err != nil {
		writeDomainError(w, "Failed to list interviews", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":       date.String(),
		"interviews": toInterviewDTOs(ivs, h.Location),
	})
}

// InterviewCalendarICS exports one month as an iCalendar feed.
// GET /api/interviews/calendar.ics?month=2024-02
func (h *Handler) InterviewCalendarICS(w http.ResponseWriter, r *http.Request) {
	month, err := h.monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	ivs, err := h.Interviews.ForMonth(r.Context(), month)
	if err != nil {
		writeDomainError(w, "Failed to list interviews", err)
		return
	}

	body := interview.ExportICS("Interviews "+month.String(), ivs, h.now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="interviews-%s.ics"`, month))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ListLeaveRequests returns requests in submission order.
// GET /api/pto/requests?employee=emp-4
func (h *Handler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Leave.List(r.Context(), r.URL.Query().Get("employee"))
	if err != nil {
		writeDomainError(w, "Failed to list leave requests", err)
		return
	}

	dtos := make([]LeaveRequestDTO, len(reqs))
	for i, req := range reqs {
		dtos[i] = toLeaveRequestDTO(req)
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": dtos})
}

// SubmitLeaveRequest creates a pending leave request.
// POST /api/pto/requests
func (h *Handler) SubmitLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := h.Leave.Submit(r.Context(), pto.SubmitInput{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Type:         pto.LeaveType(req.Type),
		Start:        req.Start,
		End:          req.End,
		HoursPerDay:  req.HoursPerDay,
		Reason:       req.Reason,
	})
	if err != nil {
		writeDomainError(w, "Failed to submit leave request", err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeaveRequestDTO(*created))
}

// ApproveLeaveRequest approves a pending request.
// POST /api/pto/requests/{id}/approve
func (h *Handler) ApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewLeaveRequest(w, r, h.Leave.Approve)
}

// DenyLeaveRequest denies a pending request.
// POST /api/pto/requests/{id}/deny
func (h *Handler) DenyLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewLeaveRequest(w, r, h.Leave.Deny)
}

type reviewFunc func(ctx context.Context, id, reviewer, note string) (*pto.LeaveRequest, error)

func (h *Handler) reviewLeaveRequest(w http.ResponseWriter, r *http.Request, review reviewFunc) {
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := review(r.Context(), chi.URLParam(r, "id"), req.Reviewer, req.Note)
	if err != nil {
		writeDomainError(w, "Failed to review leave request", err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaveRequestDTO(*updated))
}

// LeaveCalendar returns the workday grid for a month.
// GET /api/pto/calendar?month=2024-02&employee=emp-4
func (h *Handler) LeaveCalendar(w http.ResponseWriter, r *http.Request) {
	month, err := h.monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	employee := r.URL.Query().Get("employee")

	view, err := h.Workdays.MonthView(r.Context(), month, h.today(), employee)
	if err != nil {
		writeDomainError(w, "Failed to build calendar", err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaveMonthDTO(view, employee))
}

// LeaveSummary totals one employee's leave for a year.
// GET /api/pto/summary/{employee}?year=2024
func (h *Handler) LeaveSummary(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	sum, err := h.Leave.Summary(r.Context(), chi.URLParam(r, "employee"), year)
	if err != nil {
		writeDomainError(w, "Failed to summarize leave", err)
		return
	}

	writeJSON(w, http.StatusOK, LeaveSummaryDTO{
		EmployeeID: sum.EmployeeID,
		Year:       sum.Year,
		Approved:   sum.Approved,
		Pending:    sum.Pending,
		Denied:     sum.Denied,
		Requests:   sum.Requests,
	})
}

// ListHolidays returns the holidays observed in a year.
// GET /api/holidays?year=2024
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	holidays := h.Store.InYear(year)
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, HolidayDTO{
			Date:      hol.Date.String(),
			Name:      hol.Name,
			Recurring: hol.Recurring,
			Rule:      hol.Rule,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"year": year, "holidays": dtos})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) today() calendar.Date {
	return calendar.DateOf(h.now().In(h.Location))
}

// monthParam reads ?month=YYYY-MM, defaulting to the current month.
func (h *Handler) monthParam(r *http.Request) (calendar.YearMonth, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return calendar.MonthOf(h.now().In(h.Location)), nil
	}
	return calendar.ParseYearMonth(raw)
}

// yearParam reads ?year=YYYY, defaulting to the current year.
func (h *Handler) yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return h.now().In(h.Location).Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		return 0, fmt.Errorf("year must be between 1 and 9999, got %q", raw)
	}
	return year, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError picks the status from the error's kind.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case interview.IsClientError(err), pto.IsClientError(err):
		status = http.StatusBadRequest
	case errors.Is(err, interview.ErrNotFound), errors.Is(err, pto.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, interview.ErrInvalidTransition), errors.Is(err, pto.ErrInvalidTransition):
		status = http.StatusConflict
	}
	writeError(w, status, message, err)
}
