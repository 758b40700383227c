package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/crm-calendar/calendar"
)

type leave struct {
	Name  string
	Range calendar.DateRange
}

func leaveRange(l leave) calendar.DateRange { return l.Range }

func span(start, end string) calendar.DateRange {
	s, err := calendar.ParseDate(start)
	if err != nil {
		panic(err)
	}
	e, err := calendar.ParseDate(end)
	if err != nil {
		panic(err)
	}
	return calendar.DateRange{Start: s, End: e}
}

func day(s string) calendar.Date {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// =============================================================================
// FIND RANGE CONTAINING
// =============================================================================

func TestFindRangeContaining_FirstMatchWins(t *testing.T) {
	// GIVEN: two overlapping ranges
	ranges := []leave{
		{Name: "first", Range: span("2024-01-01", "2024-01-10")},
		{Name: "second", Range: span("2024-01-05", "2024-01-15")},
	}

	// WHEN: looking up a day both contain
	got, ok := calendar.FindRangeContaining(day("2024-01-07"), ranges, leaveRange)

	// THEN: the first range in input order is returned
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)

	// And a day only the second covers still finds it
	got, ok = calendar.FindRangeContaining(day("2024-01-12"), ranges, leaveRange)
	require.True(t, ok)
	assert.Equal(t, "second", got.Name)
}

func TestFindRangeContaining_Miss(t *testing.T) {
	ranges := []leave{
		{Name: "first", Range: span("2024-01-01", "2024-01-10")},
		{Name: "second", Range: span("2024-01-05", "2024-01-15")},
	}

	got, ok := calendar.FindRangeContaining(day("2024-02-01"), ranges, leaveRange)

	assert.False(t, ok)
	assert.Equal(t, leave{}, got)

	_, ok = calendar.FindRangeContaining(day("2024-01-01"), []leave{}, leaveRange)
	assert.False(t, ok)
}

func TestFindRangeContaining_Inclusive(t *testing.T) {
	ranges := []leave{{Name: "only", Range: span("2024-03-04", "2024-03-08")}}

	for _, d := range []string{"2024-03-04", "2024-03-06", "2024-03-08"} {
		_, ok := calendar.FindRangeContaining(day(d), ranges, leaveRange)
		assert.True(t, ok, "%s should be inside", d)
	}
	for _, d := range []string{"2024-03-03", "2024-03-09"} {
		_, ok := calendar.FindRangeContaining(day(d), ranges, leaveRange)
		assert.False(t, ok, "%s should be outside", d)
	}
}

func TestFindRangeContaining_SingleDayAndYearCrossing(t *testing.T) {
	ranges := []leave{
		{Name: "single", Range: span("2024-07-04", "2024-07-04")},
		{Name: "holidays", Range: span("2024-12-23", "2025-01-03")},
	}

	got, ok := calendar.FindRangeContaining(day("2024-07-04"), ranges, leaveRange)
	require.True(t, ok)
	assert.Equal(t, "single", got.Name)

	got, ok = calendar.FindRangeContaining(day("2025-01-02"), ranges, leaveRange)
	require.True(t, ok)
	assert.Equal(t, "holidays", got.Name)
}

// =============================================================================
// DATE RANGE
// =============================================================================

func TestDateRange_Validate(t *testing.T) {
	_, err := calendar.NewDateRange(day("2024-01-10"), day("2024-01-01"))
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	_, err = calendar.NewDateRange(calendar.Date{}, day("2024-01-01"))
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	r, err := calendar.NewDateRange(day("2024-01-01"), day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestDateRange_Days(t *testing.T) {
	days := span("2024-02-27", "2024-03-02").Days()

	require.Len(t, days, 5)
	assert.Equal(t, calendar.MustDate(2024, time.February, 29), days[2])
	assert.Equal(t, calendar.MustDate(2024, time.March, 2), days[4])
}

func TestDateRange_Intersect(t *testing.T) {
	tests := []struct {
		name string
		a, b calendar.DateRange
		want calendar.DateRange
		ok   bool
	}{
		{"partial", span("2024-02-26", "2024-03-08"), span("2024-03-04", "2024-03-12"), span("2024-03-04", "2024-03-08"), true},
		{"nested", span("2024-02-01", "2024-02-29"), span("2024-02-12", "2024-02-16"), span("2024-02-12", "2024-02-16"), true},
		{"touching", span("2024-02-01", "2024-02-12"), span("2024-02-12", "2024-02-20"), span("2024-02-12", "2024-02-12"), true},
		{"disjoint", span("2024-02-01", "2024-02-11"), span("2024-02-12", "2024-02-20"), calendar.DateRange{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)

			swapped, _ := tt.b.Intersect(tt.a)
			assert.Equal(t, tt.want, swapped)
		})
	}
}

func TestOverlappingPairs(t *testing.T) {
	ranges := []leave{
		{Range: span("2024-01-01", "2024-01-10")},
		{Range: span("2024-01-05", "2024-01-15")},
		{Range: span("2024-01-16", "2024-01-20")},
		{Range: span("2024-01-10", "2024-01-10")},
	}

	pairs := calendar.OverlappingPairs(ranges, leaveRange)

	assert.Equal(t, [][2]int{{0, 1}, {0, 3}, {1, 3}}, pairs)
}
