package ui

import (
	"testing"
	"time"

	"rutina/internal/tracker"
)

// monday is 2024-03-25, so the weekly Wednesday task is not due.
var monday = time.Date(2024, 3, 25, 9, 0, 0, 0, time.Local)

func fixture() *tracker.AppData {
	data := &tracker.AppData{
		Themes: []tracker.Theme{
			{
				ID:   "theme-1",
				Name: "Health",
				Tasks: []tracker.Task{
					{
						ID:        "task-daily",
						Name:      "Stretch",
						Frequency: tracker.Daily(),
						History:   []string{"2024-03-25"},
					},
					{
						ID:        "task-weekly",
						Name:      "Long run",
						Frequency: tracker.Weekly(3),
					},
				},
				Subthemes: []tracker.Subtheme{
					{
						ID:   "subtheme-1",
						Name: "Diet",
						Tasks: []tracker.Task{
							{
								ID:        "task-nested",
								Name:      "Meal prep",
								Frequency: tracker.Daily(),
								Subtasks: []tracker.Subtask{
									{ID: "subtask-a", Name: "Shop"},
								},
							},
						},
					},
				},
			},
		},
		LastOpened: "2024-03-25",
	}
	data.Normalize()
	return data
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

func TestBuildRowsCollapsedByDefault(t *testing.T) {
	rows := buildRows(fixture(), monday, false)
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want single collapsed theme row", ids(rows))
	}
	if rows[0].kind != rowTheme || rows[0].id != "theme-1" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
}

func TestBuildRowsExpandedFiltersDueTasks(t *testing.T) {
	data := fixture()
	data.SetExpanded("theme-1", true)

	rows := buildRows(data, monday, false)
	got := ids(rows)
	// Weekly Wednesday task is hidden, subtheme stays collapsed.
	want := []string{"theme-1", "task-daily", "subtheme-1"}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
	if !rows[1].done {
		t.Error("task-daily should be marked done for today")
	}
}

func TestBuildRowsShowAllIncludesOffDayTasks(t *testing.T) {
	data := fixture()
	data.SetExpanded("theme-1", true)
	data.SetExpanded("subtheme-1", true)

	rows := buildRows(data, monday, true)
	got := ids(rows)
	want := []string{"theme-1", "task-daily", "task-weekly", "subtheme-1", "task-nested", "subtask-a"}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}

	for _, r := range rows {
		if r.id == "task-weekly" && r.due {
			t.Error("weekly Wednesday task should not be due on Monday")
		}
		if r.id == "subtask-a" {
			if r.parentID != "task-nested" {
				t.Errorf("subtask parent = %q, want task-nested", r.parentID)
			}
			if r.indent != 3 {
				t.Errorf("subtask indent = %d, want 3", r.indent)
			}
		}
	}
}

func TestToggleThroughModel(t *testing.T) {
	data := fixture()
	data.SetExpanded("theme-1", true)

	saved := 0
	m := newModel(data, monday, func(*tracker.AppData) error {
		saved++
		return nil
	})

	// Cursor starts on the theme row; move to the daily task and toggle.
	m.cursor = 1
	m.toggleCurrent()

	if data.FindTask("task-daily").DoneOn("2024-03-25") {
		t.Error("toggling a done task should clear today's history")
	}
	if saved != 1 {
		t.Errorf("save called %d times, want 1", saved)
	}
}

func TestCollapseThroughModel(t *testing.T) {
	data := fixture()
	data.SetExpanded("theme-1", true)

	m := newModel(data, monday, func(*tracker.AppData) error { return nil })
	if len(m.rows) != 3 {
		t.Fatalf("expected 3 rows before collapse, got %v", ids(m.rows))
	}

	m.cursor = 0
	m.collapseCurrent()
	if data.Expanded("theme-1") {
		t.Error("theme should be collapsed")
	}
	if len(m.rows) != 1 {
		t.Errorf("expected 1 row after collapse, got %v", ids(m.rows))
	}
}
