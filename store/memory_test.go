package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/crm-calendar/calendar"
	"github.com/warp/crm-calendar/interview"
	"github.com/warp/crm-calendar/pto"
	"github.com/warp/crm-calendar/store"
)

func iv(id, name string) interview.Interview {
	return interview.Interview{
		ID:            id,
		CandidateName: name,
		Type:          interview.TypePhone,
		ScheduledAt:   time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC),
		Status:        interview.StatusScheduled,
	}
}

func TestMemory_KeepsInsertionOrderAndUpsertsInPlace(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	// GIVEN: three interviews
	for _, x := range []interview.Interview{iv("a", "Ada"), iv("b", "Ben"), iv("c", "Cy")} {
		require.NoError(t, m.SaveInterview(ctx, x))
	}

	// WHEN: the middle one is saved again
	updated := iv("b", "Ben")
	updated.Status = interview.StatusCompleted
	require.NoError(t, m.SaveInterview(ctx, updated))

	// THEN: it keeps its position
	all, err := m.ListInterviews(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, interview.StatusCompleted, all[1].Status)
}

func TestMemory_GetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	got, err := m.GetInterview(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	req, err := m.GetLeaveRequest(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestMemory_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveInterview(ctx, iv("a", "Ada")))

	list, err := m.ListInterviews(ctx)
	require.NoError(t, err)
	list[0].CandidateName = "changed"

	got, err := m.GetInterview(ctx, "a")
	require.NoError(t, err)
	got.Status = interview.StatusCancelled

	again, err := m.GetInterview(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.CandidateName)
	assert.Equal(t, interview.StatusScheduled, again.Status)
}

func TestMemory_Holidays(t *testing.T) {
	m := store.NewMemory()
	m.AddHoliday(pto.Holiday{Date: calendar.MustDate(2024, time.December, 25), Name: "Christmas Day", Recurring: true})

	assert.Equal(t, 1, m.HolidayCount())
	h, ok := m.HolidayOn(calendar.MustDate(2027, time.December, 25))
	assert.True(t, ok)
	assert.Equal(t, "Christmas Day", h.Name)
	assert.Len(t, m.InYear(2030), 1)
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	err := m.WithTx(ctx, func(tx *store.Memory) error {
		return tx.SaveInterview(ctx, iv("a", "Ada"))
	})
	require.NoError(t, err)

	all, err := m.ListInterviews(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveInterview(ctx, iv("a", "Ada")))

	boom := errors.New("boom")
	err := m.WithTx(ctx, func(tx *store.Memory) error {
		changed := iv("a", "Changed")
		if err := tx.SaveInterview(ctx, changed); err != nil {
			return err
		}
		if err := tx.SaveInterview(ctx, iv("b", "Ben")); err != nil {
			return err
		}
		tx.AddHoliday(pto.Holiday{Date: calendar.MustDate(2024, time.July, 4), Name: "Independence Day"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := m.ListInterviews(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ada", all[0].CandidateName)
	assert.Zero(t, m.HolidayCount())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveInterview(ctx, iv("a", "Ada")))
	require.NoError(t, m.SaveLeaveRequest(ctx, pto.LeaveRequest{ID: "pto-1", EmployeeID: "emp-4"}))
	m.AddHoliday(pto.Holiday{Date: calendar.MustDate(2024, time.July, 4), Name: "Independence Day"})

	m.Reset()

	ivs, _ := m.ListInterviews(ctx)
	reqs, _ := m.ListLeaveRequests(ctx)
	assert.Empty(t, ivs)
	assert.Empty(t, reqs)
	assert.Zero(t, m.HolidayCount())
}
