package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/crm-calendar/calendar"
)

func TestNewDate_RejectsImpossibleDates(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
	}{
		{"day 32", 2024, time.January, 32},
		{"day 0", 2024, time.January, 0},
		{"feb 29 in common year", 2023, time.February, 29},
		{"feb 30 in leap year", 2024, time.February, 30},
		{"month 13", 2024, 13, 1},
		{"month 0", 2024, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calendar.NewDate(tt.year, tt.month, tt.day)

			require.Error(t, err)
			assert.ErrorIs(t, err, calendar.ErrInvalidDate)
			var dateErr *calendar.InvalidDateError
			assert.ErrorAs(t, err, &dateErr)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, calendar.MustDate(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"2023-02-29", "2024-1-5", "20240105", "2024-01-32", "yyyy-mm-dd", ""} {
		_, err := calendar.ParseDate(bad)
		assert.ErrorIs(t, err, calendar.ErrInvalidDate, "input %q", bad)
	}
}

func TestParseDate_RejectsSignedComponents(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plus year", "+024-01-05"},
		{"minus year", "-024-01-05"},
		{"plus month", "2024-+1-05"},
		{"minus month", "2024--1-05"},
		{"plus day", "2024-01-+5"},
		{"space padded", "2024-01- 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := calendar.ParseDate(tt.input)
			assert.ErrorIs(t, err, calendar.ErrInvalidDate)
			assert.True(t, d.IsZero())
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	a := calendar.MustDate(2024, time.January, 31)
	b := calendar.MustDate(2024, time.February, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, b, a.AddDays(1))
	assert.Equal(t, calendar.MustDate(2023, time.December, 31), calendar.MustDate(2024, time.January, 1).AddDays(-1))
}

func TestDateOf_UsesLocation(t *testing.T) {
	// 02:00 UTC on Mar 1 is still Feb 29 in New York.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	ts := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, calendar.MustDate(2024, time.March, 1), calendar.DateOf(ts))
	assert.Equal(t, calendar.MustDate(2024, time.February, 29), calendar.DateOf(ts.In(ny)))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		On calendar.Date `json:"on"`
	}

	out, err := json.Marshal(payload{On: calendar.MustDate(2024, time.July, 4)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2024-07-04"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"on":"2025-12-31"}`), &in))
	assert.Equal(t, calendar.MustDate(2025, time.December, 31), in.On)

	assert.Error(t, json.Unmarshal([]byte(`{"on":"2025-13-01"}`), &in))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, calendar.DaysIn(2024, time.January))
	assert.Equal(t, 30, calendar.DaysIn(2024, time.April))
	assert.Equal(t, 29, calendar.DaysIn(2000, time.February))
	assert.Equal(t, 28, calendar.DaysIn(1900, time.February))
	assert.Equal(t, 0, calendar.DaysIn(2024, 13))
}
