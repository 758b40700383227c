/*
Package factory turns YAML fixtures into calendar records.

PURPOSE:
  The dashboard runs on mock data. This package parses a YAML seed file
  (interviews, leave requests, company holidays) into domain types and loads
  it into a store. An embedded default seed ships with the binary.

YAML SCHEMA:
  interviews:
    - id: iv-1
      candidate_name: Priya Raman
      type: phone                       # phone|video|onsite|technical
      scheduled_at: "2024-02-05T09:30:00Z"
      duration: 30m
      status: scheduled                 # scheduled|completed|cancelled|no_show
  leave_requests:
    - id: pto-1
      employee_id: emp-4
      type: vacation                    # vacation|sick|personal|unpaid
      start: "2024-02-12"
      end: "2024-02-16"
      hours_per_day: 8
      status: approved                  # pending|approved|denied
  holidays:
    - date: "2024-12-25"
      name: Christmas Day
      recurring: true
    - date: "2024-11-28"                # first occurrence
      name: Thanksgiving
      rule: FREQ=YEARLY;BYMONTH=11;BYDAY=+4TH

ORDER:
  List order is kept. It decides the order of interviews inside a day and
  which leave request wins on overlapping days.

USAGE:
  seed, err := factory.LoadFile("mock.yaml") // or factory.Default()
  err = seed.Apply(ctx, mem)

SEE ALSO:
  - store/memory.go: the target store
  - seed.yaml: the default fixture
*/
package factory

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/warp/crm-calendar/calendar"
	"github.com/warp/crm-calendar/interview"
	"github.com/warp/crm-calendar/pto"
	"github.com/warp/crm-calendar/store"
)

//go:embed seed.yaml
var defaultSeed []byte

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

// SeedYAML is the file layout.
type SeedYAML struct {
	Interviews    []InterviewYAML    `yaml:"interviews"`
	LeaveRequests []LeaveRequestYAML `yaml:"leave_requests"`
	Holidays      []HolidayYAML      `yaml:"holidays"`
}

type InterviewYAML struct {
	ID            string `yaml:"id"`
	CandidateID   string `yaml:"candidate_id,omitempty"`
	CandidateName string `yaml:"candidate_name"`
	Position      string `yaml:"position,omitempty"`
	Interviewer   string `yaml:"interviewer,omitempty"`
	Type          string `yaml:"type"`
	ScheduledAt   string `yaml:"scheduled_at"` // RFC 3339
	Duration      string `yaml:"duration,omitempty"`
	Location      string `yaml:"location,omitempty"`
	Status        string `yaml:"status,omitempty"`
	Notes         string `yaml:"notes,omitempty"`
}

type LeaveRequestYAML struct {
	ID           string  `yaml:"id"`
	EmployeeID   string  `yaml:"employee_id"`
	EmployeeName string  `yaml:"employee_name,omitempty"`
	Type         string  `yaml:"type"`
	Start        string  `yaml:"start"`
	End          string  `yaml:"end"`
	HoursPerDay  float64 `yaml:"hours_per_day,omitempty"`
	Status       string  `yaml:"status,omitempty"`
	Reason       string  `yaml:"reason,omitempty"`
	ReviewedBy   string  `yaml:"reviewed_by,omitempty"`
	ReviewNote   string  `yaml:"review_note,omitempty"`
}

type HolidayYAML struct {
	Date      string `yaml:"date"`
	Name      string `yaml:"name"`
	Recurring bool   `yaml:"recurring,omitempty"`
	Rule      string `yaml:"rule,omitempty"` // RRULE for floating holidays
}

// =============================================================================
// SEED
// =============================================================================

// Seed is a parsed, validated fixture.
type Seed struct {
	Interviews    []interview.Interview
	LeaveRequests []pto.LeaveRequest
	Holidays      pto.StaticHolidays
}

// Default returns the embedded mock data.
func Default() (*Seed, error) {
	return Parse(defaultSeed)
}

// LoadFile reads and parses a seed file.
func LoadFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse converts YAML into a Seed. Every record is validated; the first
// bad record fails the whole seed.
func Parse(data []byte) (*Seed, error) {
	var sy SeedYAML
	if err := yaml.Unmarshal(data, &sy); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	return FromYAML(sy)
}

// FromYAML converts the file layout into domain records.
func FromYAML(sy SeedYAML) (*Seed, error) {
	seed := &Seed{}

	// Holidays first: leave day counts depend on them.
	for i, hy := range sy.Holidays {
		h, err := parseHoliday(hy)
		if err != nil {
			return nil, fmt.Errorf("holidays[%d]: %w", i, err)
		}
		seed.Holidays = append(seed.Holidays, h)
	}

	for i, iy := range sy.Interviews {
		iv, err := parseInterview(iy)
		if err != nil {
			return nil, fmt.Errorf("interviews[%d]: %w", i, err)
		}
		seed.Interviews = append(seed.Interviews, iv)
	}

	for i, ly := range sy.LeaveRequests {
		r, err := parseLeaveRequest(ly, seed.Holidays)
		if err != nil {
			return nil, fmt.Errorf("leave_requests[%d]: %w", i, err)
		}
		seed.LeaveRequests = append(seed.LeaveRequests, r)
	}

	return seed, nil
}

// Apply writes the seed into m in one step. If any write fails, m is left
// as it was.
func (s *Seed) Apply(ctx context.Context, m *store.Memory) error {
	return m.WithTx(ctx, func(tx *store.Memory) error {
		return s.load(ctx, tx)
	})
}

// Replace swaps m's contents for the seed in one step. Readers see either
// the old records or the seeded ones, never an empty store; on error m is
// left as it was.
func (s *Seed) Replace(ctx context.Context, m *store.Memory) error {
	return m.WithTx(ctx, func(tx *store.Memory) error {
		tx.Reset()
		return s.load(ctx, tx)
	})
}

func (s *Seed) load(ctx context.Context, tx *store.Memory) error {
	for _, h := range s.Holidays {
		tx.AddHoliday(h)
	}
	for _, iv := range s.Interviews {
		if err := tx.SaveInterview(ctx, iv); err != nil {
			return fmt.Errorf("failed to save interview %s: %w", iv.ID, err)
		}
	}
	for _, r := range s.LeaveRequests {
		if err := tx.SaveLeaveRequest(ctx, r); err != nil {
			return fmt.Errorf("failed to save leave request %s: %w", r.ID, err)
		}
	}
	return nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseHoliday(hy HolidayYAML) (pto.Holiday, error) {
	d, err := calendar.ParseDate(hy.Date)
	if err != nil {
		return pto.Holiday{}, err
	}
	h := pto.Holiday{Date: d, Name: hy.Name, Recurring: hy.Recurring, Rule: hy.Rule}
	if err := h.Validate(); err != nil {
		return pto.Holiday{}, err
	}
	return h, nil
}

func parseInterview(iy InterviewYAML) (interview.Interview, error) {
	if iy.ID == "" {
		return interview.Interview{}, fmt.Errorf("%w: id is required", interview.ErrInvalidInterview)
	}
	at, err := time.Parse(time.RFC3339, iy.ScheduledAt)
	if err != nil {
		return interview.Interview{}, fmt.Errorf("%w: scheduled_at: %v", interview.ErrInvalidInterview, err)
	}
	var dur time.Duration
	if iy.Duration != "" {
		if dur, err = time.ParseDuration(iy.Duration); err != nil {
			return interview.Interview{}, fmt.Errorf("%w: duration: %v", interview.ErrInvalidInterview, err)
		}
	}
	status := interview.StatusScheduled
	if iy.Status != "" {
		if status, err = interview.ParseStatus(iy.Status); err != nil {
			return interview.Interview{}, err
		}
	}

	iv := interview.Interview{
		ID:            iy.ID,
		CandidateID:   iy.CandidateID,
		CandidateName: iy.CandidateName,
		Position:      iy.Position,
		Interviewer:   iy.Interviewer,
		Type:          interview.Type(iy.Type),
		ScheduledAt:   at,
		Duration:      dur,
		Location:      iy.Location,
		Status:        status,
		Notes:         iy.Notes,
	}
	if err := iv.Validate(); err != nil {
		return interview.Interview{}, err
	}
	iv.Type, _ = interview.ParseType(iy.Type)
	return iv, nil
}

func parseLeaveRequest(ly LeaveRequestYAML, holidays pto.HolidayCalendar) (pto.LeaveRequest, error) {
	if ly.ID == "" || ly.EmployeeID == "" {
		return pto.LeaveRequest{}, fmt.Errorf("%w: id and employee_id are required", pto.ErrInvalidRequest)
	}
	typ, err := pto.ParseLeaveType(ly.Type)
	if err != nil {
		return pto.LeaveRequest{}, err
	}
	start, err := calendar.ParseDate(ly.Start)
	if err != nil {
		return pto.LeaveRequest{}, fmt.Errorf("start: %w", err)
	}
	end, err := calendar.ParseDate(ly.End)
	if err != nil {
		return pto.LeaveRequest{}, fmt.Errorf("end: %w", err)
	}
	rng, err := calendar.NewDateRange(start, end)
	if err != nil {
		return pto.LeaveRequest{}, err
	}
	status := pto.StatusPending
	if ly.Status != "" {
		if status, err = pto.ParseStatus(ly.Status); err != nil {
			return pto.LeaveRequest{}, err
		}
	}
	hours := ly.HoursPerDay
	if hours == 0 {
		hours = pto.DefaultHoursPerDay
	}

	return pto.LeaveRequest{
		ID:           ly.ID,
		EmployeeID:   ly.EmployeeID,
		EmployeeName: ly.EmployeeName,
		Type:         typ,
		Start:        rng.Start,
		End:          rng.End,
		HoursPerDay:  hours,
		Days:         pto.RequestedDays(rng, hours, holidays),
		Status:       status,
		Reason:       ly.Reason,
		ReviewedBy:   ly.ReviewedBy,
		ReviewNote:   ly.ReviewNote,
	}, nil
}
