package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/crm-calendar/calendar"
	"github.com/warp/crm-calendar/config"
	"github.com/warp/crm-calendar/interview"
)

func gridCmd() *cobra.Command {
	var month string
	var weekStart string

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print a month grid, marking days with interviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if weekStart != "" {
				cfg.Calendar.WeekStart = weekStart
			}
			first, err := cfg.Calendar.FirstWeekday()
			if err != nil {
				return err
			}
			loc, err := cfg.Calendar.Location()
			if err != nil {
				return err
			}

			now := time.Now().In(loc)
			ym := calendar.MonthOf(now)
			if month != "" {
				if ym, err = calendar.ParseYearMonth(month); err != nil {
					return err
				}
			}

			seed, err := loadSeed(cfg.Seed.File)
			if err != nil {
				return err
			}

			dateOf := func(iv interview.Interview) calendar.Date {
				return calendar.DateOf(iv.ScheduledAt.In(loc))
			}
			grid := calendar.BuildMonthGridFrom(first, ym, seed.Interviews, calendar.DateOf(now), dateOf)
			renderGrid(cmd.OutOrStdout(), ym, first, grid)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to print as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "First column: sunday or monday (default from config)")

	return cmd
}

// renderGrid writes ym in the classic cal(1) layout. A day with records is
// followed by '*', today by '<'.
func renderGrid[T any](w io.Writer, ym calendar.YearMonth, weekStart time.Weekday, grid []calendar.Day[T]) {
	ym = ym.Normalize()
	fmt.Fprintf(w, "%s %d\n", time.Month(ym.Month), ym.Year)

	names := make([]string, calendar.DaysPerWeek)
	for i := range names {
		names[i] = (time.Weekday((int(weekStart) + i) % calendar.DaysPerWeek)).String()[:2]
	}
	fmt.Fprintln(w, strings.Join(names, "  "))

	for _, week := range calendar.Weeks(grid) {
		cells := make([]string, len(week))
		for i, day := range week {
			if day.IsPadding() {
				cells[i] = "   "
				continue
			}
			mark := " "
			switch {
			case day.IsToday:
				mark = "<"
			case len(day.Records) > 0:
				mark = "*"
			}
			cells[i] = fmt.Sprintf("%2d%s", day.Date.Day, mark)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}
