// Package store holds the dashboard's mock data in process memory.
package store

import (
	"context"
	"sync"

	"github.com/warp/crm-calendar/calendar"
	"github.com/warp/crm-calendar/interview"
	"github.com/warp/crm-calendar/pto"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (mock data, tests)
// =============================================================================

// Memory implements interview.Repository, pto.Repository and
// pto.HolidayCalendar. Lists come back in insertion order; saving an
// existing ID replaces it in place, so a record keeps its position.
type Memory struct {
	mu         sync.RWMutex
	interviews []interview.Interview
	leave      []pto.LeaveRequest
	holidays   pto.StaticHolidays
}

var (
	_ interview.Repository = (*Memory)(nil)
	_ pto.Repository       = (*Memory)(nil)
	_ pto.HolidayCalendar  = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{}
}

// Reset drops all data.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviews = nil
	m.leave = nil
	m.holidays = nil
}

// =============================================================================
// INTERVIEWS
// =============================================================================

func (m *Memory) ListInterviews(_ context.Context) ([]interview.Interview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]interview.Interview, len(m.interviews))
	copy(result, m.interviews)
	return result, nil
}

func (m *Memory) GetInterview(_ context.Context, id string) (*interview.Interview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, iv := range m.interviews {
		if iv.ID == id {
			found := iv
			return &found, nil
		}
	}
	return nil, nil
}

func (m *Memory) SaveInterview(_ context.Context, iv interview.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviews = upsert(m.interviews, iv, func(x interview.Interview) string { return x.ID })
	return nil
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func (m *Memory) ListLeaveRequests(_ context.Context) ([]pto.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]pto.LeaveRequest, len(m.leave))
	copy(result, m.leave)
	return result, nil
}

func (m *Memory) GetLeaveRequest(_ context.Context, id string) (*pto.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.leave {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (m *Memory) SaveLeaveRequest(_ context.Context, r pto.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leave = upsert(m.leave, r, func(x pto.LeaveRequest) string { return x.ID })
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// AddHoliday registers a company holiday.
func (m *Memory) AddHoliday(h pto.Holiday) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays = append(m.holidays, h)
}

// HolidayCount returns the number of registered holidays.
func (m *Memory) HolidayCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.holidays)
}

func (m *Memory) HolidayOn(d calendar.Date) (pto.Holiday, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.holidays.HolidayOn(d)
}

func (m *Memory) InYear(year int) []pto.Holiday {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.holidays.InYear(year)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx runs fn against a copy of m and commits the copy only if fn
// succeeds. Other callers block until fn returns.
func (m *Memory) WithTx(ctx context.Context, fn func(tx *Memory) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := &Memory{
		interviews: append([]interview.Interview(nil), m.interviews...),
		leave:      append([]pto.LeaveRequest(nil), m.leave...),
		holidays:   append(pto.StaticHolidays(nil), m.holidays...),
	}

	// fn works on a private copy; m's lock stays held.
	if err := fn(snap); err != nil {
		return err
	}

	// Commit
	m.interviews = snap.interviews
	m.leave = snap.leave
	m.holidays = snap.holidays
	return nil
}

func upsert[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}
