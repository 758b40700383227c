// Package pto implements leave (paid time off) requests and the workday
// calendar that shades each day with the leave request covering it.
// It uses the calendar engine for month layout and range lookup.
package pto

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/crm-calendar/calendar"
)

// =============================================================================
// LEAVE TYPES
// =============================================================================

type LeaveType string

const (
	LeaveVacation LeaveType = "vacation"
	LeaveSick     LeaveType = "sick"
	LeavePersonal LeaveType = "personal"
	LeaveUnpaid   LeaveType = "unpaid"
)

func ParseLeaveType(s string) (LeaveType, error) {
	switch t := LeaveType(strings.ToLower(strings.TrimSpace(s))); t {
	case LeaveVacation, LeaveSick, LeavePersonal, LeaveUnpaid:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown leave type %q", ErrInvalidRequest, s)
	}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusDenied:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, s)
	}
}

// =============================================================================
// LEAVE REQUEST
// =============================================================================

// DefaultHoursPerDay is a full working day.
const DefaultHoursPerDay = 8

// LeaveRequest is a request to be away for every day in [Start, End].
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Type         LeaveType
	Start        calendar.Date
	End          calendar.Date
	HoursPerDay  float64         // hours off per working day (default 8)
	Days         decimal.Decimal // working days requested, scaled by HoursPerDay/8
	Status       Status
	Reason       string

	// Review tracking
	ReviewedBy string
	ReviewNote string
	ReviewedAt *time.Time

	CreatedAt time.Time
}

// Range returns the closed date range the request covers.
func (r LeaveRequest) Range() calendar.DateRange {
	return calendar.DateRange{Start: r.Start, End: r.End}
}

// =============================================================================
// REPOSITORY
// =============================================================================

// Repository stores leave requests in submission order. That order decides
// which request wins on a day covered by more than one. GetLeaveRequest
// returns (nil, nil) when the ID is unknown.
type Repository interface {
	ListLeaveRequests(ctx context.Context) ([]LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, id string) (*LeaveRequest, error)
	SaveLeaveRequest(ctx context.Context, r LeaveRequest) error
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound          = errors.New("leave request not found")
	ErrInvalidRequest    = errors.New("invalid leave request")
	ErrNoWorkdays        = errors.New("leave request covers no working days")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// IsClientError returns true if err was caused by bad input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrNoWorkdays) ||
		calendar.IsClientError(err)
}
