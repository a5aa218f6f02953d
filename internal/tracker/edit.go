package tracker

// Entity creation and editing. Every mutation takes the target id and the
// new values explicitly; lookups that miss return nil or false and leave
// the tree untouched.

// AddTheme appends a new empty theme and returns it.
func (d *AppData) AddTheme(name string) *Theme {
	d.Themes = append(d.Themes, Theme{
		ID:        NewID("theme"),
		Name:      name,
		Tasks:     []Task{},
		Subthemes: []Subtheme{},
	})
	return &d.Themes[len(d.Themes)-1]
}

// AddSubtheme appends a new subtheme to the given theme. Returns nil when
// the theme does not exist.
func (d *AppData) AddSubtheme(themeID, name string) *Subtheme {
	th := d.Theme(themeID)
	if th == nil {
		return nil
	}
	th.Subthemes = append(th.Subthemes, Subtheme{
		ID:    NewID("subtheme"),
		Name:  name,
		Tasks: []Task{},
	})
	return &th.Subthemes[len(th.Subthemes)-1]
}

// AddTask creates a task under a theme, or under one of its subthemes
// when subthemeID is non-empty. Returns nil when the owner is not found.
func (d *AppData) AddTask(themeID, subthemeID, name string, freq Frequency) *Task {
	th := d.Theme(themeID)
	if th == nil {
		return nil
	}
	task := Task{
		ID:        NewID("task"),
		Name:      name,
		Frequency: freq,
		History:   []string{},
		Subtasks:  []Subtask{},
	}
	if subthemeID == "" {
		th.Tasks = append(th.Tasks, task)
		return &th.Tasks[len(th.Tasks)-1]
	}
	for i := range th.Subthemes {
		if th.Subthemes[i].ID == subthemeID {
			st := &th.Subthemes[i]
			st.Tasks = append(st.Tasks, task)
			return &st.Tasks[len(st.Tasks)-1]
		}
	}
	return nil
}

// AddSubtask appends a new subtask to the given task. Returns nil when
// the task does not exist.
func (d *AppData) AddSubtask(taskID, name string) *Subtask {
	t := d.FindTask(taskID)
	if t == nil {
		return nil
	}
	t.Subtasks = append(t.Subtasks, Subtask{ID: NewID("subtask"), Name: name})
	return &t.Subtasks[len(t.Subtasks)-1]
}

// Rename changes the name of whichever entity owns the id, searching
// themes, subthemes, tasks, and subtasks in that order.
func (d *AppData) Rename(id, name string) bool {
	if th := d.Theme(id); th != nil {
		th.Name = name
		return true
	}
	if _, st := d.Subtheme(id); st != nil {
		st.Name = name
		return true
	}
	if t := d.FindTask(id); t != nil {
		t.Name = name
		return true
	}
	found := false
	d.EachTask(func(t *Task) {
		if found {
			return
		}
		if st := t.Subtask(id); st != nil {
			st.Name = name
			found = true
		}
	})
	return found
}

// SetTaskFrequency replaces a task's recurrence rule.
func (d *AppData) SetTaskFrequency(taskID string, freq Frequency) bool {
	t := d.FindTask(taskID)
	if t == nil {
		return false
	}
	t.Frequency = freq
	return true
}

// DeleteTheme removes a theme and everything under it.
func (d *AppData) DeleteTheme(themeID string) bool {
	for i := range d.Themes {
		if d.Themes[i].ID == themeID {
			d.Themes = append(d.Themes[:i], d.Themes[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteSubtheme removes a subtheme and its tasks from its theme.
func (d *AppData) DeleteSubtheme(subthemeID string) bool {
	th, _ := d.Subtheme(subthemeID)
	if th == nil {
		return false
	}
	for i := range th.Subthemes {
		if th.Subthemes[i].ID == subthemeID {
			th.Subthemes = append(th.Subthemes[:i], th.Subthemes[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteTask removes a task (and its subtasks) wherever it lives.
func (d *AppData) DeleteTask(taskID string) bool {
	removeFrom := func(tasks []Task) ([]Task, bool) {
		for i := range tasks {
			if tasks[i].ID == taskID {
				return append(tasks[:i], tasks[i+1:]...), true
			}
		}
		return tasks, false
	}
	for i := range d.Themes {
		th := &d.Themes[i]
		var ok bool
		if th.Tasks, ok = removeFrom(th.Tasks); ok {
			return true
		}
		for j := range th.Subthemes {
			st := &th.Subthemes[j]
			if st.Tasks, ok = removeFrom(st.Tasks); ok {
				return true
			}
		}
	}
	return false
}

// DeleteSubtask removes a subtask from its parent task.
func (d *AppData) DeleteSubtask(parentTaskID, subtaskID string) bool {
	t := d.FindTask(parentTaskID)
	if t == nil {
		return false
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleDarkMode flips the persisted dark-mode preference and returns the
// new value.
func (d *AppData) ToggleDarkMode() bool {
	d.UserPreferences.DarkMode = !d.UserPreferences.DarkMode
	return d.UserPreferences.DarkMode
}

// SetExpanded records expand/collapse state for an entity id in the
// uiState side-table. Collapsed entries are dropped so the absent state
// stays the default.
func (d *AppData) SetExpanded(id string, expanded bool) {
	if d.UIState == nil {
		if !expanded {
			return
		}
		d.UIState = make(map[string]bool)
	}
	if expanded {
		d.UIState[id] = true
	} else {
		delete(d.UIState, id)
	}
}

// Expanded reports the recorded expand/collapse state for an entity id;
// absent means collapsed.
func (d *AppData) Expanded(id string) bool {
	return d.UIState[id]
}
