package tracker

import (
	"testing"
	"time"
)

func fixture() *AppData {
	d := &AppData{
		Version: CurrentVersion,
		Themes: []Theme{
			{
				ID:   "theme-1",
				Name: "Health",
				Tasks: []Task{
					{ID: "task-plain", Name: "Run", Frequency: Daily(), History: []string{}, Subtasks: []Subtask{}},
					{
						ID:        "task-sub",
						Name:      "Morning routine",
						Frequency: Daily(),
						History:   []string{},
						Subtasks: []Subtask{
							{ID: "subtask-a", Name: "Stretch"},
							{ID: "subtask-b", Name: "Meditate"},
						},
					},
				},
				Subthemes: []Subtheme{
					{
						ID:   "subtheme-1",
						Name: "Diet",
						Tasks: []Task{
							{ID: "task-nested", Name: "Cook", Frequency: Daily(), History: []string{}, Subtasks: []Subtask{}},
						},
					},
				},
			},
		},
		LastOpened: "2024-03-24",
	}
	return d
}

func TestTogglePlainTask(t *testing.T) {
	d := fixture()
	const day = "2024-03-25"

	if !d.ToggleTask("task-plain", day) {
		t.Fatal("toggle reported not found")
	}
	task := d.FindTask("task-plain")
	if !task.HasHistory(day) {
		t.Errorf("history should contain %s after first toggle", day)
	}

	d.ToggleTask("task-plain", day)
	if task.HasHistory(day) {
		t.Errorf("history should not contain %s after second toggle", day)
	}
	if len(task.History) != 0 {
		t.Errorf("double toggle should be a round trip, history = %v", task.History)
	}
}

func TestToggleTaskNoDuplicateHistory(t *testing.T) {
	d := fixture()
	const day = "2024-03-25"
	task := d.FindTask("task-plain")
	task.History = []string{day}

	d.ToggleTask("task-plain", day) // removes
	d.ToggleTask("task-plain", day) // adds once
	count := 0
	for _, h := range task.History {
		if h == day {
			count++
		}
	}
	if count != 1 {
		t.Errorf("date appears %d times in history, want 1", count)
	}
}

func TestToggleTaskWithSubtasks(t *testing.T) {
	d := fixture()
	const day = "2024-03-25"
	task := d.FindTask("task-sub")

	d.ToggleTask("task-sub", day)
	for i := range task.Subtasks {
		if !task.Subtasks[i].DoneOn(day) {
			t.Errorf("subtask %s should be completed for %s", task.Subtasks[i].ID, day)
		}
	}
	if !task.HasHistory(day) {
		t.Error("parent history should contain the date when all subtasks complete")
	}

	d.ToggleTask("task-sub", day)
	for i := range task.Subtasks {
		if task.Subtasks[i].CompletedOn != nil {
			t.Errorf("subtask %s should be cleared", task.Subtasks[i].ID)
		}
	}
	if task.HasHistory(day) {
		t.Error("parent history should be cleared when subtasks are cleared")
	}
}

func TestToggleTaskCompletesRemainingSubtasks(t *testing.T) {
	d := fixture()
	const day = "2024-03-25"
	task := d.FindTask("task-sub")

	// One subtask already done: toggling the task completes the rest.
	d.ToggleSubtask("task-sub", "subtask-a", day)
	if task.HasHistory(day) {
		t.Fatal("partial completion must not appear in history")
	}
	d.ToggleTask("task-sub", day)
	if !task.DoneOn(day) || !task.HasHistory(day) {
		t.Error("toggling with a pending subtask should complete all of them")
	}
}

func TestToggleSubtaskParentSync(t *testing.T) {
	d := fixture()
	const day = "2024-03-25"
	task := d.FindTask("task-sub")

	d.ToggleSubtask("task-sub", "subtask-a", day)
	d.ToggleSubtask("task-sub", "subtask-b", day)
	if !task.HasHistory(day) {
		t.Fatal("completing every subtask should add the date to parent history")
	}

	d.ToggleSubtask("task-sub", "subtask-b", day)
	if task.HasHistory(day) {
		t.Error("un-completing one subtask should remove the date from parent history")
	}
}

func TestToggleSubtaskLastWriteWins(t *testing.T) {
	d := fixture()
	task := d.FindTask("task-sub")

	d.ToggleSubtask("task-sub", "subtask-a", "2024-03-24")
	// Toggling for a different date re-marks rather than clears.
	d.ToggleSubtask("task-sub", "subtask-a", "2024-03-25")
	st := task.Subtask("subtask-a")
	if st.CompletedOn == nil || *st.CompletedOn != "2024-03-25" {
		t.Errorf("completedOn = %v, want 2024-03-25", st.CompletedOn)
	}
}

func TestToggleNotFoundIsNoOp(t *testing.T) {
	d := fixture()
	if d.ToggleTask("task-missing", "2024-03-25") {
		t.Error("toggling a missing task should report false")
	}
	if d.ToggleSubtask("task-sub", "subtask-missing", "2024-03-25") {
		t.Error("toggling a missing subtask should report false")
	}
	if d.ToggleSubtask("task-missing", "subtask-a", "2024-03-25") {
		t.Error("toggling under a missing parent should report false")
	}
}

func TestDailyReset(t *testing.T) {
	d := fixture()
	now := date(2024, time.March, 25)
	const yesterday = "2024-03-24"

	d.ToggleSubtask("task-sub", "subtask-a", yesterday)
	d.ToggleTask("task-plain", yesterday)
	d.LastOpened = yesterday

	if !d.DailyReset(now) {
		t.Fatal("reset should run on a new day")
	}
	task := d.FindTask("task-sub")
	for i := range task.Subtasks {
		if task.Subtasks[i].CompletedOn != nil {
			t.Errorf("subtask %s not cleared by reset", task.Subtasks[i].ID)
		}
	}
	if !d.FindTask("task-plain").HasHistory(yesterday) {
		t.Error("reset must not touch history")
	}
	if d.LastOpened != "2024-03-25" {
		t.Errorf("lastOpened = %s, want 2024-03-25", d.LastOpened)
	}

	// Second run on the same calendar day is a no-op.
	d.ToggleSubtask("task-sub", "subtask-a", "2024-03-25")
	if d.DailyReset(now) {
		t.Error("reset should not run twice on the same day")
	}
	if !task.Subtask("subtask-a").DoneOn("2024-03-25") {
		t.Error("same-day reset must leave subtask completion alone")
	}
}

func TestResetMonthHistory(t *testing.T) {
	d := fixture()
	task := d.FindTask("task-plain")
	task.History = []string{"2024-02-29", "2024-03-01", "2024-03-15", "2024-03-31", "2024-04-01"}

	removed := d.ResetMonthHistory(date(2024, time.March, 10))
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	want := []string{"2024-02-29", "2024-04-01"}
	if len(task.History) != len(want) {
		t.Fatalf("history = %v, want %v", task.History, want)
	}
	for i := range want {
		if task.History[i] != want[i] {
			t.Errorf("history[%d] = %s, want %s", i, task.History[i], want[i])
		}
	}
}
