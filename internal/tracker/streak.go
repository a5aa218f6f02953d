package tracker

import "time"

// Streak returns the number of consecutive calendar days present in the
// task's history, counting backwards from today. If today is not yet
// marked, a streak ending yesterday still counts (the streak survives
// until a day is truly missed). Returns 0 when neither today nor
// yesterday is present.
func (t *Task) Streak(now time.Time) int {
	if len(t.History) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(t.History))
	for _, day := range t.History {
		seen[day] = struct{}{}
	}

	anchor := now
	if _, ok := seen[DateString(anchor)]; !ok {
		anchor = Yesterday(now)
		if _, ok := seen[DateString(anchor)]; !ok {
			return 0
		}
	}

	streak := 0
	for day := anchor; ; day = Yesterday(day) {
		if _, ok := seen[DateString(day)]; !ok {
			break
		}
		streak++
	}
	return streak
}
