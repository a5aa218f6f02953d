package tracker

import "time"

// AvailableOn reports whether a task with this frequency is due on the
// given calendar date. An unrecognized frequency type counts as
// available: statistics keep charging a misconfigured task against the
// user rather than silently dropping it.
func (f Frequency) AvailableOn(date time.Time) bool {
	dow := int(date.Weekday())
	switch f.Type {
	case FreqDaily, "":
		return true
	case FreqWorkweek:
		return dow >= 1 && dow <= 5
	case FreqSixDayWeek:
		return dow >= 1 && dow <= 6
	case FreqWeekly:
		return dow == f.Day
	case FreqMonthly:
		return date.Day() == f.Day
	default:
		return true
	}
}

// DueOn is the display-filter variant of AvailableOn: an unrecognized
// frequency type is not due, so a misconfigured task is never presented
// as actionable. The two defaults intentionally differ.
func (f Frequency) DueOn(date time.Time) bool {
	switch f.Type {
	case FreqDaily, FreqWorkweek, FreqSixDayWeek, FreqWeekly, FreqMonthly, "":
		return f.AvailableOn(date)
	default:
		return false
	}
}
