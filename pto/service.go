package pto

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/crm-calendar/calendar"
)

// =============================================================================
// LEAVE SERVICE - Request lifecycle
// =============================================================================

// Service submits and reviews leave requests.
type Service struct {
	Repo     Repository
	Holidays HolidayCalendar // optional
	Logger   *zap.Logger     // optional
	Now      func() time.Time
	NewID    func() string
}

// SubmitInput is what an employee fills in on the request form.
type SubmitInput struct {
	EmployeeID   string
	EmployeeName string
	Type         LeaveType
	Start        calendar.Date
	End          calendar.Date
	HoursPerDay  float64 // 0 means a full day
	Reason       string
}

// Submit validates and stores a new pending request.
//
// Overlap with the employee's other open requests is allowed. It is logged
// so a reviewer can spot it; on the calendar the earlier request wins.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*LeaveRequest, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, fmt.Errorf("%w: employee is required", ErrInvalidRequest)
	}
	typ, err := ParseLeaveType(string(in.Type))
	if err != nil {
		return nil, err
	}
	rng, err := calendar.NewDateRange(in.Start, in.End)
	if err != nil {
		return nil, err
	}
	hours := in.HoursPerDay
	if hours == 0 {
		hours = DefaultHoursPerDay
	}
	if hours < 0 || hours > 24 {
		return nil, fmt.Errorf("%w: hours per day must be in (0, 24], got %v", ErrInvalidRequest, in.HoursPerDay)
	}

	days := RequestedDays(rng, hours, s.Holidays)
	if days.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrNoWorkdays, rng)
	}

	existing, err := s.Repo.ListLeaveRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	req := LeaveRequest{
		ID:           newID(s.NewID),
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		Type:         typ,
		Start:        rng.Start,
		End:          rng.End,
		HoursPerDay:  hours,
		Days:         days,
		Status:       StatusPending,
		Reason:       in.Reason,
		CreatedAt:    s.now(),
	}

	for _, other := range existing {
		if other.EmployeeID != req.EmployeeID || other.Status == StatusDenied {
			continue
		}
		if other.Range().Overlaps(rng) {
			s.log().Warn("leave request overlaps existing request",
				zap.String("employee", req.EmployeeID),
				zap.String("request", req.ID),
				zap.String("existing", other.ID),
				zap.String("range", rng.String()),
				zap.String("existing_range", other.Range().String()))
		}
	}

	if err := s.Repo.SaveLeaveRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to save leave request: %w", err)
	}

	s.log().Info("leave request submitted",
		zap.String("id", req.ID),
		zap.String("employee", req.EmployeeID),
		zap.String("type", string(req.Type)),
		zap.String("range", rng.String()),
		zap.String("days", req.Days.String()))
	return &req, nil
}

// Approve moves a pending request to approved.
func (s *Service) Approve(ctx context.Context, id, reviewer, note string) (*LeaveRequest, error) {
	return s.review(ctx, id, reviewer, note, StatusApproved)
}

// Deny moves a pending request to denied.
func (s *Service) Deny(ctx context.Context, id, reviewer, note string) (*LeaveRequest, error) {
	return s.review(ctx, id, reviewer, note, StatusDenied)
}

func (s *Service) review(ctx context.Context, id, reviewer, note string, to Status) (*LeaveRequest, error) {
	if strings.TrimSpace(reviewer) == "" {
		return nil, fmt.Errorf("%w: reviewer is required", ErrInvalidRequest)
	}

	req, err := s.Repo.GetLeaveRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load leave request: %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, to)
	}

	at := s.now()
	req.Status = to
	req.ReviewedBy = reviewer
	req.ReviewNote = note
	req.ReviewedAt = &at

	if err := s.Repo.SaveLeaveRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("failed to save leave request: %w", err)
	}

	s.log().Info("leave request reviewed",
		zap.String("id", req.ID),
		zap.String("status", string(to)),
		zap.String("reviewer", reviewer))
	return req, nil
}

// List returns requests in submission order, optionally for one employee.
func (s *Service) List(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	all, err := s.Repo.ListLeaveRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return filterEmployee(all, employeeID), nil
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary totals an employee's leave days within one calendar year.
type Summary struct {
	EmployeeID string
	Year       int
	Approved   decimal.Decimal
	Pending    decimal.Decimal
	Denied     decimal.Decimal
	Requests   int
}

// Summary adds up the working days each request covers inside year.
// A request spanning New Year only contributes the days in year.
func (s *Service) Summary(ctx context.Context, employeeID string, year int) (*Summary, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, fmt.Errorf("%w: employee is required", ErrInvalidRequest)
	}
	all, err := s.Repo.ListLeaveRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	yearRange := calendar.DateRange{
		Start: calendar.YearMonth{Year: year, Month: 1}.FirstDay(),
		End:   calendar.YearMonth{Year: year, Month: 12}.LastDay(),
	}

	sum := &Summary{EmployeeID: employeeID, Year: year}
	for _, r := range filterEmployee(all, employeeID) {
		part, ok := intersect(r.Range(), yearRange)
		if !ok {
			continue
		}
		days := RequestedDays(part, r.HoursPerDay, s.Holidays)
		switch r.Status {
		case StatusApproved:
			sum.Approved = sum.Approved.Add(days)
		case StatusPending:
			sum.Pending = sum.Pending.Add(days)
		case StatusDenied:
			sum.Denied = sum.Denied.Add(days)
		}
		sum.Requests++
	}
	return sum, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func intersect(a, b calendar.DateRange) (calendar.DateRange, bool) {
	if !a.Overlaps(b) {
		return calendar.DateRange{}, false
	}
	out := a
	if b.Start.After(out.Start) {
		out.Start = b.Start
	}
	if b.End.Before(out.End) {
		out.End = b.End
	}
	return out, true
}

func filterEmployee(all []LeaveRequest, employeeID string) []LeaveRequest {
	if employeeID == "" {
		return all
	}
	var out []LeaveRequest
	for _, r := range all {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func newID(gen func() string) string {
	if gen == nil {
		return uuid.NewString()
	}
	return gen()
}
