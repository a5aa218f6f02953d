// Package tracker holds the task tree and the rules for recurrence,
// completion, and streaks.
package tracker

import "time"

// CurrentVersion is the persisted data format version.
const CurrentVersion = "2.0"

// Frequency type tags.
const (
	FreqDaily      = "daily"
	FreqWorkweek   = "workweek"
	FreqSixDayWeek = "sixdayweek"
	FreqWeekly     = "weekly"
	FreqMonthly    = "monthly"
)

// Frequency is a task's recurrence rule. Day is a weekday (0=Sunday..6)
// for weekly tasks and a day of month (1-31) for monthly tasks; it is
// ignored for the other types.
type Frequency struct {
	Type string `json:"type"`
	Day  int    `json:"day"`
}

// Weekly returns a weekly frequency for the given weekday (0=Sunday).
func Weekly(day int) Frequency { return Frequency{Type: FreqWeekly, Day: day} }

// Monthly returns a monthly frequency for the given day of month.
func Monthly(day int) Frequency { return Frequency{Type: FreqMonthly, Day: day} }

// Daily returns the daily frequency.
func Daily() Frequency { return Frequency{Type: FreqDaily} }

// Subtask is a non-recurring checklist item under a task. CompletedOn
// holds at most one date; completing it again overwrites the prior value,
// and the daily reset clears it.
type Subtask struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CompletedOn *string `json:"completedOn"`
}

// DoneOn reports whether the subtask is marked complete for date.
func (s *Subtask) DoneOn(date string) bool {
	return s.CompletedOn != nil && *s.CompletedOn == date
}

// Task is a recurring unit of work. History is the set of dates the task
// was completed on; for tasks with subtasks it is a rollup kept in sync
// by the toggle operations.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Frequency Frequency `json:"frequency"`
	History   []string  `json:"history"`
	Subtasks  []Subtask `json:"subtasks"`
}

// HasHistory reports whether date is in the task's completion history.
func (t *Task) HasHistory(date string) bool {
	for _, d := range t.History {
		if d == date {
			return true
		}
	}
	return false
}

// DoneOn reports whether the task counts as completed for date: all
// subtasks done on that date when it has subtasks, otherwise membership
// in History.
func (t *Task) DoneOn(date string) bool {
	if len(t.Subtasks) > 0 {
		for i := range t.Subtasks {
			if !t.Subtasks[i].DoneOn(date) {
				return false
			}
		}
		return true
	}
	return t.HasHistory(date)
}

// Subtask returns the subtask with the given id, or nil.
func (t *Task) Subtask(id string) *Subtask {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return &t.Subtasks[i]
		}
	}
	return nil
}

// Subtheme is a single level of grouping inside a theme.
type Subtheme struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Theme is a top-level task category.
type Theme struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Tasks     []Task     `json:"tasks"`
	Subthemes []Subtheme `json:"subthemes"`
}

// TaskCount returns the number of tasks configured under the theme,
// including subtheme tasks, regardless of frequency.
func (th *Theme) TaskCount() int {
	n := len(th.Tasks)
	for i := range th.Subthemes {
		n += len(th.Subthemes[i].Tasks)
	}
	return n
}

// Preferences holds user-level settings persisted with the data.
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

// AppData is the root of the persisted tree. UIState is an optional
// expand/collapse side-table keyed by entity id, written only by the
// presentation layer; the core never reads it.
type AppData struct {
	Version         string          `json:"version"`
	UserPreferences Preferences     `json:"userPreferences"`
	Themes          []Theme         `json:"themes"`
	LastOpened      string          `json:"lastOpened"`
	UIState         map[string]bool `json:"uiState,omitempty"`
}

// Theme returns the theme with the given id, or nil.
func (d *AppData) Theme(id string) *Theme {
	for i := range d.Themes {
		if d.Themes[i].ID == id {
			return &d.Themes[i]
		}
	}
	return nil
}

// Subtheme returns the subtheme with the given id and its owning theme,
// or nils if not found.
func (d *AppData) Subtheme(id string) (*Theme, *Subtheme) {
	for i := range d.Themes {
		for j := range d.Themes[i].Subthemes {
			if d.Themes[i].Subthemes[j].ID == id {
				return &d.Themes[i], &d.Themes[i].Subthemes[j]
			}
		}
	}
	return nil, nil
}

// FindTask returns the task with the given id wherever it lives in the
// tree, or nil.
func (d *AppData) FindTask(id string) *Task {
	for i := range d.Themes {
		th := &d.Themes[i]
		for j := range th.Tasks {
			if th.Tasks[j].ID == id {
				return &th.Tasks[j]
			}
		}
		for j := range th.Subthemes {
			st := &th.Subthemes[j]
			for k := range st.Tasks {
				if st.Tasks[k].ID == id {
					return &st.Tasks[k]
				}
			}
		}
	}
	return nil
}

// EachTask calls fn for every task in the tree, direct theme tasks first,
// then subtheme tasks, in declaration order.
func (d *AppData) EachTask(fn func(t *Task)) {
	for i := range d.Themes {
		d.Themes[i].EachTask(fn)
	}
}

// EachTask calls fn for every task under the theme.
func (th *Theme) EachTask(fn func(t *Task)) {
	for i := range th.Tasks {
		fn(&th.Tasks[i])
	}
	for i := range th.Subthemes {
		st := &th.Subthemes[i]
		for j := range st.Tasks {
			fn(&st.Tasks[j])
		}
	}
}

// TaskCount returns the number of configured tasks across all themes.
func (d *AppData) TaskCount() int {
	n := 0
	for i := range d.Themes {
		n += d.Themes[i].TaskCount()
	}
	return n
}

// Normalize fills in missing optional fields after a load: nil slices
// become empty, a missing frequency becomes daily, and the version is
// stamped. Tree-shape deviations are recoverable, never errors.
func (d *AppData) Normalize() {
	if d.Version == "" {
		d.Version = CurrentVersion
	}
	if d.Themes == nil {
		d.Themes = []Theme{}
	}
	for i := range d.Themes {
		th := &d.Themes[i]
		if th.Tasks == nil {
			th.Tasks = []Task{}
		}
		if th.Subthemes == nil {
			th.Subthemes = []Subtheme{}
		}
		for j := range th.Tasks {
			normalizeTask(&th.Tasks[j])
		}
		for j := range th.Subthemes {
			st := &th.Subthemes[j]
			if st.Tasks == nil {
				st.Tasks = []Task{}
			}
			for k := range st.Tasks {
				normalizeTask(&st.Tasks[k])
			}
		}
	}
}

func normalizeTask(t *Task) {
	if t.Frequency.Type == "" {
		t.Frequency = Daily()
	}
	if t.History == nil {
		t.History = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
}

// Seed returns the starter dataset used on first run and after a corrupt
// blob is discarded.
func Seed(now time.Time) *AppData {
	return &AppData{
		Version: CurrentVersion,
		Themes: []Theme{
			{
				ID:   "theme-1",
				Name: "Exercise",
				Tasks: []Task{
					{ID: "task-1", Name: "Go to the gym", Frequency: Daily(), History: []string{}, Subtasks: []Subtask{}},
				},
				Subthemes: []Subtheme{},
			},
			{
				ID:   "theme-2",
				Name: "Work",
				Tasks: []Task{
					{ID: "task-2", Name: "Post on LinkedIn", Frequency: Frequency{Type: FreqWorkweek}, History: []string{}, Subtasks: []Subtask{}},
				},
				Subthemes: []Subtheme{},
			},
			{
				ID:    "theme-3",
				Name:  "Side project",
				Tasks: []Task{},
				Subthemes: []Subtheme{
					{
						ID:   "subtheme-1",
						Name: "Website",
						Tasks: []Task{
							{
								ID:        "task-3",
								Name:      "Publish update",
								Frequency: Weekly(3), // Wednesday
								History:   []string{},
								Subtasks: []Subtask{
									{ID: "subtask-1", Name: "Design"},
									{ID: "subtask-2", Name: "Blog article"},
								},
							},
						},
					},
				},
			},
		},
		LastOpened: DateString(now),
	}
}
