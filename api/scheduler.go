/*
scheduler.go - Scheduled mock data reset

PURPOSE:
  A shared demo instance drifts as people schedule interviews and submit
  leave. ResetScheduler reloads the seed on a cron schedule (for example
  "0 3 * * *", nightly at 03:00 in the display zone).

USAGE:
  s, err := NewResetScheduler(handler, "0 3 * * *", loc, logger)
  s.Start()
  defer s.Stop()

SEE ALSO:
  - mock.go: ReloadMockData and the manual POST /api/mock/reset
*/
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ResetScheduler reloads the mock data on a cron schedule.
type ResetScheduler struct {
	Handler *Handler
	Logger  *zap.Logger

	cron *cron.Cron

	mu      sync.Mutex
	lastRun time.Time
	runs    int
}

// NewResetScheduler parses spec (standard five-field cron) in loc.
func NewResetScheduler(h *Handler, spec string, loc *time.Location, logger *zap.Logger) (*ResetScheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ResetScheduler{
		Handler: h,
		Logger:  logger,
		cron:    cron.New(cron.WithLocation(loc)),
	}
	if _, err := s.cron.AddFunc(spec, s.RunNow); err != nil {
		return nil, fmt.Errorf("invalid reset schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the schedule in the background.
func (s *ResetScheduler) Start() {
	s.cron.Start()
	s.Logger.Info("mock reset scheduler started", zap.Time("next", s.Next()))
}

// Stop halts the schedule and waits for a running reset to finish.
func (s *ResetScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.Logger.Info("mock reset scheduler stopped")
}

// RunNow resets immediately.
func (s *ResetScheduler) RunNow() {
	status, err := s.Handler.ReloadMockData(context.Background())
	if err != nil {
		s.Logger.Error("scheduled mock reset failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.lastRun = s.Handler.now()
	s.runs++
	s.mu.Unlock()

	s.Logger.Debug("scheduled mock reset done",
		zap.Int("interviews", status.Interviews),
		zap.Int("leave_requests", status.LeaveRequests))
}

// Next returns when the next reset is due. It is zero until Start.
func (s *ResetScheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// LastRun returns the time of the last successful reset and the number of
// resets so far.
func (s *ResetScheduler) LastRun() (time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.runs
}
