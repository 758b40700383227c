// Package interview implements the interview scheduler view: candidate
// interviews laid out on the month grid from the calendar package.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/warp/crm-calendar/calendar"
)

// =============================================================================
// INTERVIEW
// =============================================================================

type Type string

const (
	TypePhone     Type = "phone"
	TypeVideo     Type = "video"
	TypeOnsite    Type = "onsite"
	TypeTechnical Type = "technical"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Interview is one scheduled conversation with a candidate.
type Interview struct {
	ID            string
	CandidateID   string
	CandidateName string
	Position      string
	Interviewer   string
	Type          Type
	ScheduledAt   time.Time
	Duration      time.Duration
	Location      string
	Status        Status
	Notes         string
}

// EndsAt returns ScheduledAt + Duration (one hour if unset).
func (i Interview) EndsAt() time.Time {
	d := i.Duration
	if d <= 0 {
		d = time.Hour
	}
	return i.ScheduledAt.Add(d)
}

// Validate checks the fields the scheduler requires.
func (i Interview) Validate() error {
	if strings.TrimSpace(i.CandidateName) == "" {
		return fmt.Errorf("%w: candidate name is required", ErrInvalidInterview)
	}
	if i.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduled time is required", ErrInvalidInterview)
	}
	if _, err := ParseType(string(i.Type)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(i.Status)); err != nil {
		return err
	}
	if i.Duration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidInterview)
	}
	return nil
}

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(s)); t {
	case TypePhone, TypeVideo, TypeOnsite, TypeTechnical:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown interview type %q", ErrInvalidInterview, s)
	}
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(s)); st {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown interview status %q", ErrInvalidInterview, s)
	}
}

// =============================================================================
// REPOSITORY
// =============================================================================

// Repository stores interviews. List order is the order records were first
// saved, which is the order they appear inside a day cell. GetInterview
// returns (nil, nil) when the ID is unknown.
type Repository interface {
	ListInterviews(ctx context.Context) ([]Interview, error)
	GetInterview(ctx context.Context, id string) (*Interview, error)
	SaveInterview(ctx context.Context, i Interview) error
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound          = errors.New("interview not found")
	ErrInvalidInterview  = errors.New("invalid interview")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// IsClientError returns true if err was caused by bad input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterview) || calendar.IsClientError(err)
}
