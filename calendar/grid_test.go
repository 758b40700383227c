package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/crm-calendar/calendar"
)

// =============================================================================
// TEST RECORD - Anything with a date
// =============================================================================

type event struct {
	ID   string
	Date calendar.Date
}

func eventDate(e event) calendar.Date { return e.Date }

func dated(cells []calendar.Day[event]) []calendar.Day[event] {
	var out []calendar.Day[event]
	for _, c := range cells {
		if !c.IsPadding() {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// GRID SHAPE
// =============================================================================

func TestBuildMonthGrid_CellCountMatchesPaddingPlusDays(t *testing.T) {
	// GIVEN: every month from 1999 through 2101
	// THEN: cells = weekday(day 1) + days in month, cross-checked against time.Date
	for year := 1999; year <= 2101; year++ {
		for month := 1; month <= 12; month++ {
			ym := calendar.YearMonth{Year: year, Month: month}
			first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			wantPadding := int(first.Weekday())
			wantDays := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

			days := calendar.BuildMonthGrid[event](ym, nil, calendar.Date{}, eventDate)

			require.Len(t, days, wantPadding+wantDays, "month %s", ym)
			for i := 0; i < wantPadding; i++ {
				assert.True(t, days[i].IsPadding(), "cell %d of %s should be padding", i, ym)
				assert.Empty(t, days[i].Records)
			}
			assert.Equal(t, 1, days[wantPadding].Date.Day)
			assert.Equal(t, wantDays, days[len(days)-1].Date.Day)

			weeks := calendar.Weeks(days)
			assert.Len(t, weeks, (len(days)+6)/7)
			for _, w := range weeks {
				assert.Len(t, w, calendar.DaysPerWeek)
			}
		}
	}
}

func TestBuildMonthGrid_LeapYears(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		wantDays    int
		wantPadding int
	}{
		{"2024 is leap, Feb 1 is Thursday", 2024, 29, 4},
		{"2023 is not leap", 2023, 28, 3},
		{"2100 is divisible by 100, not leap", 2100, 28, 1},
		{"2000 is divisible by 400, leap", 2000, 29, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := calendar.BuildMonthGrid[event](calendar.YearMonth{Year: tt.year, Month: 2}, nil, calendar.Date{}, eventDate)

			assert.Len(t, dated(days), tt.wantDays)
			assert.Len(t, days, tt.wantPadding+tt.wantDays)
			assert.Equal(t, tt.wantDays == 29, calendar.IsLeapYear(tt.year))
		})
	}
}

func TestBuildMonthGrid_DatedCellsAreSequential(t *testing.T) {
	days := dated(calendar.BuildMonthGrid[event](calendar.YearMonth{Year: 2024, Month: 3}, nil, calendar.Date{}, eventDate))

	require.Len(t, days, 31)
	for i, d := range days {
		assert.Equal(t, calendar.MustDate(2024, time.March, i+1), d.Date)
	}
}

// =============================================================================
// RECORD BUCKETING
// =============================================================================

func TestBuildMonthGrid_BucketsRecordsInInputOrder(t *testing.T) {
	// GIVEN: two records on Jan 5 and one on Jan 31, plus one outside the month
	records := []event{
		{ID: "a", Date: calendar.MustDate(2024, time.January, 5)},
		{ID: "b", Date: calendar.MustDate(2024, time.January, 5)},
		{ID: "c", Date: calendar.MustDate(2024, time.January, 31)},
		{ID: "feb", Date: calendar.MustDate(2024, time.February, 5)},
	}

	// WHEN: building January 2024
	days := calendar.BuildMonthGrid(calendar.YearMonth{Year: 2024, Month: 1}, records, calendar.Date{}, eventDate)

	// THEN: day 5 holds a then b, day 31 holds c, every other cell is empty
	padding := calendar.LeadingPadding(calendar.YearMonth{Year: 2024, Month: 1}, time.Sunday)
	require.Equal(t, 1, padding, "Jan 1 2024 is a Monday")

	for _, d := range days {
		switch d.Date.Day {
		case 5:
			require.Len(t, d.Records, 2)
			assert.Equal(t, "a", d.Records[0].ID)
			assert.Equal(t, "b", d.Records[1].ID)
		case 31:
			require.Len(t, d.Records, 1)
			assert.Equal(t, "c", d.Records[0].ID)
		default:
			assert.Empty(t, d.Records, "cell %s should be empty", d.Date)
		}
	}
}

func TestBuildMonthGrid_DoesNotCapRecords(t *testing.T) {
	day := calendar.MustDate(2024, time.June, 14)
	var records []event
	for i := 0; i < 25; i++ {
		records = append(records, event{ID: string(rune('a' + i)), Date: day})
	}

	days := calendar.BuildMonthGrid(calendar.YearMonth{Year: 2024, Month: 6}, records, calendar.Date{}, eventDate)

	for _, d := range days {
		if d.Date == day {
			assert.Len(t, d.Records, 25)
		}
	}
}

func TestBuildMonthGrid_ProjectionDecouplesRecordShape(t *testing.T) {
	// Timestamps are bucketed by the date the projection returns.
	type meeting struct {
		At time.Time
	}
	records := []meeting{
		{At: time.Date(2024, 4, 10, 9, 30, 0, 0, time.UTC)},
		{At: time.Date(2024, 4, 10, 23, 59, 0, 0, time.UTC)},
	}

	days := calendar.BuildMonthGrid(calendar.YearMonth{Year: 2024, Month: 4}, records, calendar.Date{},
		func(m meeting) calendar.Date { return calendar.DateOf(m.At) })

	for _, d := range days {
		if d.Date.Day == 10 {
			assert.Len(t, d.Records, 2)
		}
	}
}

// =============================================================================
// TODAY FLAG
// =============================================================================

func TestBuildMonthGrid_TodayFlag(t *testing.T) {
	tests := []struct {
		name      string
		today     calendar.Date
		wantCount int
	}{
		{"today inside month", calendar.MustDate(2024, time.May, 17), 1},
		{"today in another month", calendar.MustDate(2024, time.June, 1), 0},
		{"today in same month of another year", calendar.MustDate(2023, time.May, 17), 0},
		{"no today", calendar.Date{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := calendar.BuildMonthGrid[event](calendar.YearMonth{Year: 2024, Month: 5}, nil, tt.today, eventDate)

			count := 0
			for _, d := range days {
				if d.IsToday {
					count++
					assert.Equal(t, tt.today, d.Date)
				}
			}
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

// =============================================================================
// NORMALIZATION AND WEEK START
// =============================================================================

func TestBuildMonthGrid_NormalizesOutOfRangeMonth(t *testing.T) {
	tests := []struct {
		name        string
		ym          calendar.YearMonth
		wantMonth   calendar.YearMonth
		wantPadding int
	}{
		{"month 13 rolls to next January", calendar.YearMonth{Year: 2024, Month: 13}, calendar.YearMonth{Year: 2025, Month: 1}, 3},
		{"month 0 rolls to previous December", calendar.YearMonth{Year: 2024, Month: 0}, calendar.YearMonth{Year: 2023, Month: 12}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := calendar.BuildMonthGrid[event](tt.ym, nil, calendar.Date{}, eventDate)

			assert.Len(t, days, tt.wantPadding+tt.wantMonth.DaysInMonth())
			assert.Equal(t, tt.wantMonth.FirstDay(), days[tt.wantPadding].Date)
		})
	}
}

func TestBuildMonthGridFrom_MondayFirst(t *testing.T) {
	// Feb 1 2024 is a Thursday: 3 blanks when weeks start on Monday.
	ym := calendar.YearMonth{Year: 2024, Month: 2}
	days := calendar.BuildMonthGridFrom[event](time.Monday, ym, nil, calendar.Date{}, eventDate)

	assert.Equal(t, 3, calendar.LeadingPadding(ym, time.Monday))
	assert.Len(t, days, 3+29)

	// Sep 1 2024 is a Sunday: last column with Monday-first.
	assert.Equal(t, 6, calendar.LeadingPadding(calendar.YearMonth{Year: 2024, Month: 9}, time.Monday))
	assert.Equal(t, 0, calendar.LeadingPadding(calendar.YearMonth{Year: 2024, Month: 9}, time.Sunday))
}

// =============================================================================
// WEEKS
// =============================================================================

func TestWeeks_PadsLastRow(t *testing.T) {
	days := calendar.BuildMonthGrid[event](calendar.YearMonth{Year: 2024, Month: 1}, nil, calendar.Date{}, eventDate)
	require.Len(t, days, 32)

	weeks := calendar.Weeks(days)

	require.Len(t, weeks, 5)
	for _, w := range weeks {
		assert.Len(t, w, calendar.DaysPerWeek)
	}
	assert.Equal(t, 31, weeks[4][3].Date.Day)
	assert.True(t, weeks[4][4].IsPadding())
	assert.True(t, weeks[4][6].IsPadding())
}

func TestWeeks_ExactFit(t *testing.T) {
	// Feb 2015 starts on Sunday and has 28 days: exactly four rows.
	days := calendar.BuildMonthGrid[event](calendar.YearMonth{Year: 2015, Month: 2}, nil, calendar.Date{}, eventDate)

	weeks := calendar.Weeks(days)

	assert.Len(t, days, 28)
	assert.Len(t, weeks, 4)
	assert.Nil(t, calendar.Weeks[event](nil))
}
