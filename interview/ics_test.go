package interview_test

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/crm-calendar/interview"
)

func TestExportICS_RoundTripsThroughParser(t *testing.T) {
	// GIVEN: one scheduled and one cancelled interview
	ivs := []interview.Interview{
		{
			ID:            "iv-1",
			CandidateName: "Priya Raman",
			Position:      "Backend Engineer",
			Interviewer:   "Marcus Lee",
			Type:          interview.TypeOnsite,
			ScheduledAt:   at(2024, 2, 14, 10, 0),
			Duration:      90 * time.Minute,
			Location:      "Room 4B",
			Status:        interview.StatusScheduled,
		},
		{
			ID:            "iv-2",
			CandidateName: "Jonah Kim",
			Type:          interview.TypePhone,
			ScheduledAt:   at(2024, 2, 15, 9, 0),
			Status:        interview.StatusCancelled,
		},
	}

	// WHEN: exported and parsed back
	out := interview.ExportICS("Interviews 2024-02", ivs, at(2024, 2, 1, 0, 0))
	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	// THEN: one VEVENT per interview with times, summary and status
	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "iv-1@crm-calendar", first.Id())
	start, err := first.GetStartAt()
	require.NoError(t, err)
	end, err := first.GetEndAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(at(2024, 2, 14, 10, 0)))
	assert.True(t, end.Equal(at(2024, 2, 14, 11, 30)))
	assert.Equal(t, "Interview: Priya Raman (Backend Engineer)", first.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "Room 4B", first.GetProperty(ics.ComponentPropertyLocation).Value)
	assert.Contains(t, first.GetProperty(ics.ComponentPropertyDescription).Value, "Marcus Lee")
	assert.Equal(t, string(ics.ObjectStatusConfirmed), first.GetProperty(ics.ComponentPropertyStatus).Value)

	second := events[1]
	assert.Equal(t, "Interview: Jonah Kim", second.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, string(ics.ObjectStatusCancelled), second.GetProperty(ics.ComponentPropertyStatus).Value)
	end, err = second.GetEndAt()
	require.NoError(t, err)
	assert.True(t, end.Equal(at(2024, 2, 15, 10, 0)), "default duration is one hour")
}

func TestExportICS_EmptyIsStillACalendar(t *testing.T) {
	out := interview.ExportICS("", nil, at(2024, 2, 1, 0, 0))

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "PRODID:"+interview.ProductID)
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
