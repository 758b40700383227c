package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/crm-calendar/calendar"
)

func TestNavigate_YearBoundaries(t *testing.T) {
	tests := []struct {
		name string
		from calendar.YearMonth
		dir  calendar.Direction
		want calendar.YearMonth
	}{
		{"december next is january", calendar.YearMonth{Year: 2024, Month: 12}, calendar.Next, calendar.YearMonth{Year: 2025, Month: 1}},
		{"january previous is december", calendar.YearMonth{Year: 2024, Month: 1}, calendar.Previous, calendar.YearMonth{Year: 2023, Month: 12}},
		{"mid-year next", calendar.YearMonth{Year: 2024, Month: 6}, calendar.Next, calendar.YearMonth{Year: 2024, Month: 7}},
		{"mid-year previous", calendar.YearMonth{Year: 2024, Month: 6}, calendar.Previous, calendar.YearMonth{Year: 2024, Month: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Navigate(tt.dir))
		})
	}
}

func TestNavigate_RoundTrip(t *testing.T) {
	for year := 1999; year <= 2001; year++ {
		for month := 1; month <= 12; month++ {
			m := calendar.YearMonth{Year: year, Month: month}
			assert.Equal(t, m, m.Next().Previous(), "next/previous %s", m)
			assert.Equal(t, m, m.Previous().Next(), "previous/next %s", m)
		}
	}
}

func TestNavigate_UnknownDirectionNormalizes(t *testing.T) {
	assert.Equal(t, calendar.YearMonth{Year: 2025, Month: 1}, calendar.YearMonth{Year: 2024, Month: 13}.Navigate("sideways"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   calendar.YearMonth
		want calendar.YearMonth
	}{
		{calendar.YearMonth{Year: 2024, Month: 13}, calendar.YearMonth{Year: 2025, Month: 1}},
		{calendar.YearMonth{Year: 2024, Month: 0}, calendar.YearMonth{Year: 2023, Month: 12}},
		{calendar.YearMonth{Year: 2024, Month: -11}, calendar.YearMonth{Year: 2023, Month: 1}},
		{calendar.YearMonth{Year: 2024, Month: -12}, calendar.YearMonth{Year: 2022, Month: 12}},
		{calendar.YearMonth{Year: 2024, Month: 25}, calendar.YearMonth{Year: 2026, Month: 1}},
		{calendar.YearMonth{Year: 2024, Month: 7}, calendar.YearMonth{Year: 2024, Month: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestParseDirection(t *testing.T) {
	d, err := calendar.ParseDirection("Next")
	require.NoError(t, err)
	assert.Equal(t, calendar.Next, d)

	d, err = calendar.ParseDirection("prev")
	require.NoError(t, err)
	assert.Equal(t, calendar.Previous, d)

	_, err = calendar.ParseDirection("up")
	assert.ErrorIs(t, err, calendar.ErrInvalidDirection)
	assert.True(t, calendar.IsClientError(err))
}

func TestParseYearMonth(t *testing.T) {
	ym, err := calendar.ParseYearMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, calendar.YearMonth{Year: 2024, Month: 2}, ym)
	assert.Equal(t, "2024-02", ym.String())

	for _, bad := range []string{"", "2024-13", "2024-00", "24-02", "2024/02", "abcd-ef", "+024-01", "-024-01", "2024-+1", "2024--1"} {
		_, err := calendar.ParseYearMonth(bad)
		assert.ErrorIs(t, err, calendar.ErrInvalidYearMonth, "input %q", bad)
	}
}

func TestYearMonth_Bounds(t *testing.T) {
	ym := calendar.YearMonth{Year: 2024, Month: 2}

	assert.Equal(t, "2024-02-01", ym.FirstDay().String())
	assert.Equal(t, "2024-02-29", ym.LastDay().String())
	assert.Equal(t, 29, ym.Range().Len())
	assert.True(t, ym.Contains(calendar.MustDate(2024, 2, 29)))
	assert.False(t, ym.Contains(calendar.MustDate(2024, 3, 1)))
}
