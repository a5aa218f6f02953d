// Package ui provides the interactive checklist interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rutina/internal/tracker"
)

// Saver persists the tree after each mutation in the TUI.
type Saver func(*tracker.AppData) error

// RunTUI starts the interactive checklist on top of an already loaded tree.
func RunTUI(ctx context.Context, data *tracker.AppData, now time.Time, save Saver) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	initial := newModel(data, now, save)
	program := tea.NewProgram(initial, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*model); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

type rowKind int

const (
	rowTheme rowKind = iota
	rowSubtheme
	rowTask
	rowSubtask
)

// row is one visible line of the checklist. Task and subtask rows keep
// the ids needed to toggle them; theme and subtheme rows only collapse.
type row struct {
	kind     rowKind
	id       string
	parentID string // owning task id for subtask rows
	name     string
	indent   int
	done     bool
	due      bool
	streak   int
	detail   string
}

type model struct {
	data    *tracker.AppData
	now     time.Time
	save    Saver
	rows    []row
	cursor  int
	showAll bool
	saveErr error
	status  string
	styles  styles
}

type styles struct {
	theme    lipgloss.Style
	subtheme lipgloss.Style
	done     lipgloss.Style
	cursor   lipgloss.Style
	dim      lipgloss.Style
	status   lipgloss.Style
}

func newStyles(dark bool) styles {
	accent := lipgloss.Color("5")
	muted := lipgloss.Color("8")
	if dark {
		accent = lipgloss.Color("13")
		muted = lipgloss.Color("7")
	}
	return styles{
		theme:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		subtheme: lipgloss.NewStyle().Foreground(accent),
		done:     lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		cursor:   lipgloss.NewStyle().Reverse(true),
		dim:      lipgloss.NewStyle().Foreground(muted),
		status:   lipgloss.NewStyle().Italic(true).Foreground(muted),
	}
}

func newModel(data *tracker.AppData, now time.Time, save Saver) *model {
	m := &model{
		data:   data,
		now:    now,
		save:   save,
		styles: newStyles(data.UserPreferences.DarkMode),
	}
	m.rebuild()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case " ":
			m.toggleCurrent()
		case "enter", "tab":
			m.collapseCurrent()
		case "a":
			m.showAll = !m.showAll
			m.rebuild()
		case "d":
			m.data.ToggleDarkMode()
			m.styles = newStyles(m.data.UserPreferences.DarkMode)
			m.persist()
		}
	}
	return m, nil
}

func (m *model) toggleCurrent() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	date := tracker.DateString(m.now)
	var changed bool
	switch r.kind {
	case rowTask:
		changed = m.data.ToggleTask(r.id, date)
	case rowSubtask:
		changed = m.data.ToggleSubtask(r.parentID, r.id, date)
	default:
		m.collapseCurrent()
		return
	}
	if changed {
		m.persist()
		m.rebuild()
	}
}

func (m *model) collapseCurrent() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if r.kind != rowTheme && r.kind != rowSubtheme {
		return
	}
	m.data.SetExpanded(r.id, !m.data.Expanded(r.id))
	m.persist()
	m.rebuild()
}

func (m *model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.data); err != nil {
		m.saveErr = err
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = ""
}

func (m *model) rebuild() {
	m.rows = buildRows(m.data, m.now, m.showAll)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// buildRows flattens the tree into the visible checklist. Collapsed
// themes and subthemes contribute a single row; tasks not due today are
// hidden unless showAll is set.
func buildRows(data *tracker.AppData, now time.Time, showAll bool) []row {
	today := tracker.DateString(now)
	var rows []row

	appendTask := func(t *tracker.Task, indent int) {
		due := t.Frequency.DueOn(now)
		if !showAll && !due {
			return
		}
		rows = append(rows, row{
			kind:   rowTask,
			id:     t.ID,
			name:   t.Name,
			indent: indent,
			done:   t.DoneOn(today),
			due:    due,
			streak: t.Streak(now),
		})
		for i := range t.Subtasks {
			st := &t.Subtasks[i]
			rows = append(rows, row{
				kind:     rowSubtask,
				id:       st.ID,
				parentID: t.ID,
				name:     st.Name,
				indent:   indent + 1,
				done:     st.DoneOn(today),
				due:      due,
			})
		}
	}

	for i := range data.Themes {
		th := &data.Themes[i]
		expanded := data.Expanded(th.ID)
		rows = append(rows, row{
			kind:   rowTheme,
			id:     th.ID,
			name:   th.Name,
			detail: fmt.Sprintf("%d tasks", th.TaskCount()),
		})
		if !expanded {
			continue
		}
		for j := range th.Tasks {
			appendTask(&th.Tasks[j], 1)
		}
		for j := range th.Subthemes {
			st := &th.Subthemes[j]
			rows = append(rows, row{
				kind:   rowSubtheme,
				id:     st.ID,
				name:   st.Name,
				indent: 1,
			})
			if !data.Expanded(st.ID) {
				continue
			}
			for k := range st.Tasks {
				appendTask(&st.Tasks[k], 2)
			}
		}
	}
	return rows
}

func (m *model) View() string {
	var b strings.Builder

	title := "rutina - " + tracker.DateString(m.now)
	b.WriteString(m.styles.theme.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString(m.styles.dim.Render("No themes yet. Add one with: rutina add theme <name>") + "\n")
	}

	for i, r := range m.rows {
		line := m.renderRow(r)
		if i == m.cursor {
			line = m.styles.cursor.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.status.Render(m.status) + "\n")
	}
	help := "space toggle | enter collapse | a all tasks | d dark mode | q quit"
	b.WriteString(m.styles.dim.Render(help) + "\n")
	return b.String()
}

func (m *model) renderRow(r row) string {
	pad := strings.Repeat("  ", r.indent)
	switch r.kind {
	case rowTheme:
		marker := "-"
		if !m.data.Expanded(r.id) {
			marker = "+"
		}
		label := fmt.Sprintf("%s %s", marker, r.name)
		if r.detail != "" {
			return m.styles.theme.Render(label) + m.styles.dim.Render("  ("+r.detail+")")
		}
		return m.styles.theme.Render(label)
	case rowSubtheme:
		marker := "-"
		if !m.data.Expanded(r.id) {
			marker = "+"
		}
		return pad + m.styles.subtheme.Render(fmt.Sprintf("%s %s", marker, r.name))
	default:
		mark := "[ ]"
		if r.done {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", pad, mark, r.name)
		if r.done {
			line = pad + mark + " " + m.styles.done.Render(r.name)
		}
		if !r.due {
			line += m.styles.dim.Render("  (not due today)")
		}
		if r.streak > 1 {
			line += m.styles.dim.Render(fmt.Sprintf("  %d day streak", r.streak))
		}
		return line
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
