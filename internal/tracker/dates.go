package tracker

import "time"

// DateLayout is the local-calendar day format used everywhere a date is
// stored or compared. Completion history, subtask completion marks, and
// the daily-reset gate all use this format.
const DateLayout = "2006-01-02"

// DateString formats t as a local-calendar YYYY-MM-DD string.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a local date at midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// Yesterday returns the calendar day before t.
func Yesterday(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}
