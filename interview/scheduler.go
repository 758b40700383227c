/*
scheduler.go - Interview calendar view model

PURPOSE:
  Turns the flat interview list into what the scheduler screen renders:
  a month grid of week rows, each day showing the first few interviews
  and a "+N more" count, plus click-through to a single day.

CLOCK:
  The scheduler never reads the clock. Callers pass "now"; it is projected
  into the display location to decide which cell is today.

DISPLAY CAP:
  calendar.BuildMonthGrid returns every interview for a day. Truncation to
  DisplayCap happens here, because it is a rendering decision.

SEE ALSO:
  - calendar/grid.go: BuildMonthGrid, Weeks
  - ics.go: iCalendar export of the same data
*/
package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/crm-calendar/calendar"
)

// DefaultDisplayCap is how many interviews a day cell shows before "+N more".
const DefaultDisplayCap = 2

// Scheduler serves the interview calendar.
type Scheduler struct {
	Repo       Repository
	Location   *time.Location // display zone; nil = UTC
	WeekStart  time.Weekday
	DisplayCap int // <= 0 shows everything
	Logger     *zap.Logger
	NewID      func() string
}

// NewScheduler returns a Scheduler with default cap, UTC and Sunday-first weeks.
func NewScheduler(repo Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		Repo:       repo,
		Location:   time.UTC,
		WeekStart:  time.Sunday,
		DisplayCap: DefaultDisplayCap,
		Logger:     logger,
		NewID:      uuid.NewString,
	}
}

// =============================================================================
// VIEW TYPES
// =============================================================================

// MonthView is a rendered month.
type MonthView struct {
	Month    calendar.YearMonth
	Previous calendar.YearMonth
	Next     calendar.YearMonth
	Weeks    [][]DayView
	Counts   map[Status]int
	Total    int
}

// DayView is one cell of the month.
type DayView struct {
	Date       calendar.Date // zero for padding
	IsToday    bool
	Interviews []Interview // at most DisplayCap
	More       int         // interviews hidden by the cap
}

// =============================================================================
// QUERIES
// =============================================================================

// MonthView renders ym with today taken from now in the display location.
func (s *Scheduler) MonthView(ctx context.Context, ym calendar.YearMonth, now time.Time) (*MonthView, error) {
	all, err := s.Repo.ListInterviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}

	ym = ym.Normalize()
	today := calendar.DateOf(now.In(s.location()))
	grid := calendar.BuildMonthGridFrom(s.WeekStart, ym, all, today, s.dateOf)

	view := &MonthView{
		Month:    ym,
		Previous: ym.Previous(),
		Next:     ym.Next(),
		Counts:   make(map[Status]int),
	}

	for _, week := range calendar.Weeks(grid) {
		row := make([]DayView, len(week))
		for i, cell := range week {
			row[i] = s.dayView(cell)
			for _, iv := range cell.Records {
				view.Counts[iv.Status]++
				view.Total++
			}
		}
		view.Weeks = append(view.Weeks, row)
	}

	s.log().Debug("interview month rendered",
		zap.String("month", ym.String()),
		zap.Int("interviews", view.Total),
		zap.Int("weeks", len(view.Weeks)))

	return view, nil
}

// ForDate returns every interview on date, in repository order.
func (s *Scheduler) ForDate(ctx context.Context, date calendar.Date) ([]Interview, error) {
	all, err := s.Repo.ListInterviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	var out []Interview
	for _, iv := range all {
		if s.dateOf(iv) == date {
			out = append(out, iv)
		}
	}
	return out, nil
}

// ForMonth returns every interview falling in ym, in repository order.
func (s *Scheduler) ForMonth(ctx context.Context, ym calendar.YearMonth) ([]Interview, error) {
	all, err := s.Repo.ListInterviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	var out []Interview
	for _, iv := range all {
		if ym.Contains(s.dateOf(iv)) {
			out = append(out, iv)
		}
	}
	return out, nil
}

// =============================================================================
// COMMANDS
// =============================================================================

// Schedule validates and stores a new interview in status scheduled.
func (s *Scheduler) Schedule(ctx context.Context, iv Interview) (*Interview, error) {
	if iv.Status == "" {
		iv.Status = StatusScheduled
	}
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	// Validate accepted both, so these only normalize case.
	iv.Type, _ = ParseType(string(iv.Type))
	iv.Status, _ = ParseStatus(string(iv.Status))
	if iv.ID == "" {
		iv.ID = newID(s.NewID)
	}
	if err := s.Repo.SaveInterview(ctx, iv); err != nil {
		return nil, fmt.Errorf("failed to save interview: %w", err)
	}

	s.log().Info("interview scheduled",
		zap.String("id", iv.ID),
		zap.String("candidate", iv.CandidateName),
		zap.Time("at", iv.ScheduledAt))
	return &iv, nil
}

// UpdateStatus moves a scheduled interview to a final status.
// Only scheduled interviews can change; final statuses are terminal.
func (s *Scheduler) UpdateStatus(ctx context.Context, id string, status Status) (*Interview, error) {
	status, err := ParseStatus(string(status))
	if err != nil {
		return nil, err
	}

	iv, err := s.Repo.GetInterview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}
	if iv == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if iv.Status != StatusScheduled || status == StatusScheduled {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, iv.Status, status)
	}

	iv.Status = status
	if err := s.Repo.SaveInterview(ctx, *iv); err != nil {
		return nil, fmt.Errorf("failed to save interview: %w", err)
	}

	s.log().Info("interview status changed", zap.String("id", id), zap.String("status", string(status)))
	return iv, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Scheduler) dateOf(iv Interview) calendar.Date {
	return calendar.DateOf(iv.ScheduledAt.In(s.location()))
}

func (s *Scheduler) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *Scheduler) dayView(cell calendar.Day[Interview]) DayView {
	dv := DayView{Date: cell.Date, IsToday: cell.IsToday, Interviews: cell.Records}
	if s.DisplayCap > 0 && len(cell.Records) > s.DisplayCap {
		dv.Interviews = cell.Records[:s.DisplayCap]
		dv.More = len(cell.Records) - s.DisplayCap
	}
	return dv
}

func (s *Scheduler) log() *zap.Logger {
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
