package tracker

import "github.com/google/uuid"

// NewID returns a fresh collision-resistant identifier with the given
// entity prefix, e.g. "task-6f1c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// EnsureUniqueIDs walks the whole tree and replaces any id that is empty
// or already taken with a freshly generated one. Themes, subthemes, tasks,
// and subtasks share a single namespace for collision checks. Returns the
// number of ids that were replaced.
func (d *AppData) EnsureUniqueIDs() int {
	used := make(map[string]struct{})
	replaced := 0

	unique := func(id, prefix string) string {
		if id != "" {
			if _, taken := used[id]; !taken {
				used[id] = struct{}{}
				return id
			}
		}
		next := NewID(prefix)
		for {
			if _, taken := used[next]; !taken {
				break
			}
			next = NewID(prefix)
		}
		used[next] = struct{}{}
		replaced++
		return next
	}

	fixTask := func(t *Task) {
		t.ID = unique(t.ID, "task")
		for i := range t.Subtasks {
			t.Subtasks[i].ID = unique(t.Subtasks[i].ID, "subtask")
		}
	}

	for i := range d.Themes {
		th := &d.Themes[i]
		th.ID = unique(th.ID, "theme")
		for j := range th.Tasks {
			fixTask(&th.Tasks[j])
		}
		for j := range th.Subthemes {
			st := &th.Subthemes[j]
			st.ID = unique(st.ID, "subtheme")
			for k := range st.Tasks {
				fixTask(&st.Tasks[k])
			}
		}
	}
	return replaced
}
