package tracker

import "time"

// addHistory inserts date into the task's history if absent.
func (t *Task) addHistory(date string) {
	if !t.HasHistory(date) {
		t.History = append(t.History, date)
	}
}

// removeHistory deletes date from the task's history if present.
func (t *Task) removeHistory(date string) {
	for i, d := range t.History {
		if d == date {
			t.History = append(t.History[:i], t.History[i+1:]...)
			return
		}
	}
}

// syncHistory reconciles the parent rollup after subtask changes: date is
// in History exactly when every subtask is done on date.
func (t *Task) syncHistory(date string) {
	if t.DoneOn(date) {
		t.addHistory(date)
	} else {
		t.removeHistory(date)
	}
}

// ToggleTask flips completion of a task for date. A task with subtasks
// completes or clears all of them at once and keeps its history rollup in
// sync; a plain task toggles history membership. Returns false when the
// task does not exist (lookups fail soft, nothing is mutated).
func (d *AppData) ToggleTask(taskID, date string) bool {
	t := d.FindTask(taskID)
	if t == nil {
		return false
	}
	if len(t.Subtasks) > 0 {
		completeAll := false
		for i := range t.Subtasks {
			if !t.Subtasks[i].DoneOn(date) {
				completeAll = true
				break
			}
		}
		for i := range t.Subtasks {
			if completeAll {
				day := date
				t.Subtasks[i].CompletedOn = &day
			} else {
				t.Subtasks[i].CompletedOn = nil
			}
		}
		t.syncHistory(date)
		return true
	}
	if t.HasHistory(date) {
		t.removeHistory(date)
	} else {
		t.addHistory(date)
	}
	return true
}

// ToggleSubtask flips one subtask's completion for date. A subtask holds
// a single completion slot: toggling on a day it was completed for a
// different date re-marks it for date (last write wins). The parent's
// history rollup is resynchronized afterwards. Returns false when the
// parent task or subtask does not exist.
func (d *AppData) ToggleSubtask(parentTaskID, subtaskID, date string) bool {
	t := d.FindTask(parentTaskID)
	if t == nil {
		return false
	}
	st := t.Subtask(subtaskID)
	if st == nil {
		return false
	}
	if st.DoneOn(date) {
		st.CompletedOn = nil
	} else {
		day := date
		st.CompletedOn = &day
	}
	t.syncHistory(date)
	return true
}

// DailyReset clears every subtask's completion mark once per calendar
// day, gated on LastOpened. History is the permanent ledger and is never
// touched. Returns true when a reset actually ran.
func (d *AppData) DailyReset(now time.Time) bool {
	today := DateString(now)
	if d.LastOpened == today {
		return false
	}
	d.EachTask(func(t *Task) {
		for i := range t.Subtasks {
			t.Subtasks[i].CompletedOn = nil
		}
	})
	d.LastOpened = today
	return true
}

// ResetMonthHistory removes every history entry that falls inside the
// calendar month of now, across all tasks. Returns the number of entries
// removed.
func (d *AppData) ResetMonthHistory(now time.Time) int {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	start, end := DateString(first), DateString(last)

	removed := 0
	d.EachTask(func(t *Task) {
		kept := t.History[:0]
		for _, day := range t.History {
			// Lexicographic comparison is calendar order for YYYY-MM-DD.
			if day < start || day > end {
				kept = append(kept, day)
			} else {
				removed++
			}
		}
		t.History = kept
	})
	return removed
}
