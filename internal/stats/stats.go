// Package stats derives completion metrics from the task tree.
package stats

import (
	"math"
	"time"

	"rutina/internal/tracker"
)

// Period selects the reporting window.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
)

// Periods lists every supported period in report order.
func Periods() []Period {
	return []Period{PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth}
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// Label returns a human-readable name for the period.
func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodYesterday:
		return "Yesterday"
	case PeriodWeek:
		return "This week"
	case PeriodMonth:
		return "This month"
	}
	return "Today"
}

// DateRange is an inclusive run of calendar days.
type DateRange struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Dates []string `json:"dates"`
}

// DayStats is the per-day slice of a multi-day report.
type DayStats struct {
	Date           string `json:"date"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	PendingTasks   int    `json:"pendingTasks"`
}

// ThemeStats mirrors the global numbers scoped to one theme.
type ThemeStats struct {
	Name             string `json:"name"`
	TotalTasks       int    `json:"totalTasks"`
	CompletedTasks   int    `json:"completedTasks"`
	PendingTasks     int    `json:"pendingTasks"`
	CompletionRate   int    `json:"completionRate"`
	ConfigTotalTasks int    `json:"configTotalTasks"`
}

// Stats is a full report for one period. TotalTasks counts task-days in
// the period window (availability-filtered); ConfigTotalTasks counts
// configured tasks regardless of frequency.
type Stats struct {
	Period           Period       `json:"period"`
	PeriodLabel      string       `json:"periodLabel"`
	DateRange        DateRange    `json:"dateRange"`
	TotalTasks       int          `json:"totalTasks"`
	CompletedTasks   int          `json:"completedTasks"`
	PendingTasks     int          `json:"pendingTasks"`
	CompletionRate   int          `json:"completionRate"`
	ConfigTotalTasks int          `json:"configTotalTasks"`
	Themes           []ThemeStats `json:"themes"`
	DailyBreakdown   []DayStats   `json:"dailyBreakdown"`
}

// Calculate builds the report for the period containing now. All date
// arithmetic happens in now's location.
func Calculate(data *tracker.AppData, period Period, now time.Time) *Stats {
	if !period.Valid() {
		period = PeriodToday
	}
	r := resolveRange(period, now)
	s := &Stats{
		Period:         period,
		PeriodLabel:    period.Label(),
		DateRange:      dateRangeOf(r),
		Themes:         make([]ThemeStats, 0, len(data.Themes)),
		DailyBreakdown: make([]DayStats, 0),
	}

	if period == PeriodWeek || period == PeriodMonth {
		for _, day := range r.days {
			total, completed := dayTotals(data, day)
			s.DailyBreakdown = append(s.DailyBreakdown, DayStats{
				Date:           tracker.DateString(day),
				TotalTasks:     total,
				CompletedTasks: completed,
				PendingTasks:   total - completed,
			})
			s.TotalTasks += total
			s.CompletedTasks += completed
		}
		s.PendingTasks = s.TotalTasks - s.CompletedTasks
	} else {
		total, completed := dayTotals(data, r.days[0])
		s.TotalTasks = total
		s.CompletedTasks = completed
		s.PendingTasks = total - completed
	}

	for i := range data.Themes {
		ts := themeStats(&data.Themes[i], r)
		s.Themes = append(s.Themes, ts)
		s.ConfigTotalTasks += ts.ConfigTotalTasks
	}

	s.CompletionRate = rate(s.CompletedTasks, s.TotalTasks)
	return s
}

// window is a resolved period: each entry is a local midnight.
type window struct {
	days []time.Time
}

func resolveRange(period Period, now time.Time) window {
	today := midnight(now)
	switch period {
	case PeriodYesterday:
		return window{days: []time.Time{today.AddDate(0, 0, -1)}}
	case PeriodWeek:
		// Monday through today inclusive.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return window{days: daysBetween(start, today)}
	case PeriodMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		return window{days: daysBetween(first, last)}
	default:
		return window{days: []time.Time{today}}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func dateRangeOf(r window) DateRange {
	dates := make([]string, len(r.days))
	for i, d := range r.days {
		dates[i] = tracker.DateString(d)
	}
	return DateRange{Start: dates[0], End: dates[len(dates)-1], Dates: dates}
}

// dayTotals counts tasks available on day and how many of them were
// completed on that date.
func dayTotals(data *tracker.AppData, day time.Time) (total, completed int) {
	date := tracker.DateString(day)
	data.EachTask(func(t *tracker.Task) {
		if !t.Frequency.AvailableOn(day) {
			return
		}
		total++
		if t.DoneOn(date) {
			completed++
		}
	})
	return total, completed
}

// themeStats computes a theme's numbers over the window. Multi-day
// totals sum the per-day availability counts, the same formula as the
// global totals.
func themeStats(th *tracker.Theme, r window) ThemeStats {
	ts := ThemeStats{
		Name:             th.Name,
		ConfigTotalTasks: th.TaskCount(),
	}
	for _, day := range r.days {
		date := tracker.DateString(day)
		th.EachTask(func(t *tracker.Task) {
			if !t.Frequency.AvailableOn(day) {
				return
			}
			ts.TotalTasks++
			if t.DoneOn(date) {
				ts.CompletedTasks++
			}
		})
	}
	ts.PendingTasks = ts.TotalTasks - ts.CompletedTasks
	ts.CompletionRate = rate(ts.CompletedTasks, ts.TotalTasks)
	return ts
}

// rate is the completion percentage, rounded, 0 when total is 0.
func rate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
