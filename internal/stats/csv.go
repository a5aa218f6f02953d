package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"rutina/internal/tracker"
)

// ExportCSV writes a full statistics report to w: a summary row per
// period, the week and month daily breakdowns, and a per-theme section
// for every period.
func ExportCSV(data *tracker.AppData, now time.Time, w io.Writer) error {
	cw := csv.NewWriter(w)

	reports := make(map[Period]*Stats, 4)
	for _, p := range Periods() {
		reports[p] = Calculate(data, p, now)
	}

	write := func(record ...string) {
		cw.Write(record)
	}

	write("PRODUCTIVITY REPORT")
	write("Generated", tracker.DateString(now))
	write()

	write("SUMMARY BY PERIOD")
	write("Period", "Total", "Completed", "Pending", "Completion")
	for _, p := range Periods() {
		s := reports[p]
		write(p.Label(),
			fmt.Sprint(s.TotalTasks),
			fmt.Sprint(s.CompletedTasks),
			fmt.Sprint(s.PendingTasks),
			fmt.Sprintf("%d%%", s.CompletionRate))
	}
	write()

	for _, p := range []Period{PeriodWeek, PeriodMonth} {
		s := reports[p]
		write(fmt.Sprintf("DAILY BREAKDOWN - %s", s.PeriodLabel))
		write("Date", "Total", "Completed", "Pending", "Completion")
		for _, day := range s.DailyBreakdown {
			write(day.Date,
				fmt.Sprint(day.TotalTasks),
				fmt.Sprint(day.CompletedTasks),
				fmt.Sprint(day.PendingTasks),
				fmt.Sprintf("%d%%", rate(day.CompletedTasks, day.TotalTasks)))
		}
		write()
	}

	for _, p := range Periods() {
		s := reports[p]
		write(fmt.Sprintf("THEMES - %s", s.PeriodLabel))
		write("Theme", "Total", "Completed", "Pending", "Completion", "Configured")
		for _, ts := range s.Themes {
			write(ts.Name,
				fmt.Sprint(ts.TotalTasks),
				fmt.Sprint(ts.CompletedTasks),
				fmt.Sprint(ts.PendingTasks),
				fmt.Sprintf("%d%%", ts.CompletionRate),
				fmt.Sprint(ts.ConfigTotalTasks))
		}
		write("TOTAL",
			fmt.Sprint(s.TotalTasks),
			fmt.Sprint(s.CompletedTasks),
			fmt.Sprint(s.PendingTasks),
			fmt.Sprintf("%d%%", s.CompletionRate),
			fmt.Sprint(s.ConfigTotalTasks))
		write()
	}

	cw.Flush()
	return cw.Error()
}
