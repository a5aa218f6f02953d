package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"rutina/internal/config"
	"rutina/internal/stats"
	"rutina/internal/tracker"
)

func cmdList(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	all := fs.Bool("all", false, "Include tasks not due today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	today := s.today()
	fmt.Printf("Tasks for %s\n", today)
	for i := range s.data.Themes {
		th := &s.data.Themes[i]
		fmt.Printf("\n%s  [%s]\n", th.Name, th.ID)
		printTasks(th.Tasks, s, *all, "  ")
		for j := range th.Subthemes {
			st := &th.Subthemes[j]
			fmt.Printf("  %s  [%s]\n", st.Name, st.ID)
			printTasks(st.Tasks, s, *all, "    ")
		}
	}
	return nil
}

func printTasks(tasks []tracker.Task, s *session, all bool, indent string) {
	today := s.today()
	for i := range tasks {
		t := &tasks[i]
		if !all && !t.Frequency.DueOn(s.now) {
			continue
		}
		mark := " "
		if t.DoneOn(today) {
			mark = "x"
		}
		line := fmt.Sprintf("%s[%s] %s  (%s)  [%s]", indent, mark, t.Name, frequencyLabel(t.Frequency), t.ID)
		if streak := t.Streak(s.now); streak > 1 {
			line += fmt.Sprintf("  🔥 %d", streak)
		}
		fmt.Println(line)
		for j := range t.Subtasks {
			st := &t.Subtasks[j]
			mark := " "
			if st.DoneOn(today) {
				mark = "x"
			}
			fmt.Printf("%s  [%s] %s  [%s]\n", indent, mark, st.Name, st.ID)
		}
	}
}

func frequencyLabel(f tracker.Frequency) string {
	switch f.Type {
	case tracker.FreqDaily, "":
		return "daily"
	case tracker.FreqWorkweek:
		return "Mon-Fri"
	case tracker.FreqSixDayWeek:
		return "Mon-Sat"
	case tracker.FreqWeekly:
		if f.Day >= 0 && f.Day <= 6 {
			return weekdayNames[f.Day]
		}
		return fmt.Sprintf("weekly:%d", f.Day)
	case tracker.FreqMonthly:
		return fmt.Sprintf("day %d", f.Day)
	default:
		return f.Type
	}
}

var weekdayNames = [7]string{"Sundays", "Mondays", "Tuesdays", "Wednesdays", "Thursdays", "Fridays", "Saturdays"}

func cmdToggle(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("toggle", flag.ContinueOnError)
	dateFlag := fs.String("date", "", "Date to toggle (YYYY-MM-DD, default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()
	if len(ids) < 1 || len(ids) > 2 {
		return fmt.Errorf("usage: rutina toggle <task-id> [subtask-id]")
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	date, err := parseDateFlag(*dateFlag, s.now)
	if err != nil {
		return err
	}

	var changed bool
	if len(ids) == 2 {
		changed = s.data.ToggleSubtask(ids[0], ids[1], date)
	} else {
		changed = s.data.ToggleTask(ids[0], date)
	}
	if !changed {
		logger.Warn("nothing matched, no change", "id", strings.Join(ids, "/"))
		return nil
	}
	return s.save()
}

func cmdStats(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	periodFlag := fs.String("period", "today", "Period: today, yesterday, week, month")
	asJSON := fs.Bool("json", false, "Emit the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	period := stats.Period(*periodFlag)
	if !period.Valid() {
		return fmt.Errorf("unknown period %q", *periodFlag)
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	report := stats.Calculate(s.data, period, s.now)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("%s (%s to %s)\n", report.PeriodLabel, report.DateRange.Start, report.DateRange.End)
	fmt.Printf("  completed %d of %d (%d%%), %d pending, %d configured\n",
		report.CompletedTasks, report.TotalTasks, report.CompletionRate,
		report.PendingTasks, report.ConfigTotalTasks)

	if len(report.Themes) > 0 {
		fmt.Println("\nThemes:")
		for _, ts := range report.Themes {
			fmt.Printf("  %-24s %d/%d (%d%%)\n", ts.Name, ts.CompletedTasks, ts.TotalTasks, ts.CompletionRate)
		}
	}
	if len(report.DailyBreakdown) > 0 {
		fmt.Println("\nDaily:")
		for _, day := range report.DailyBreakdown {
			fmt.Printf("  %s  %d/%d\n", day.Date, day.CompletedTasks, day.TotalTasks)
		}
	}
	return nil
}

func cmdExport(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", `Output file (default rutina-stats-<date>.csv, "-" for stdout)`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	if *out == "-" {
		return stats.ExportCSV(s.data, s.now, os.Stdout)
	}
	path := *out
	if path == "" {
		path = fmt.Sprintf("rutina-stats-%s.csv", s.today())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	if err := stats.ExportCSV(s.data, s.now, f); err != nil {
		return err
	}
	logger.Info("exported statistics", "file", path)
	return nil
}

func cmdAdd(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rutina add <theme|subtheme|task|subtask> ...")
	}
	kind := args[0]

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	freqSpec := fs.String("freq", "daily", "Task frequency (tasks only)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: rutina add <theme|subtheme|task|subtask> ...")
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	switch kind {
	case "theme":
		th := s.data.AddTheme(strings.Join(rest, " "))
		fmt.Println(th.ID)
	case "subtheme":
		if len(rest) < 2 {
			return fmt.Errorf("usage: rutina add subtheme <theme-id> <name>")
		}
		st := s.data.AddSubtheme(rest[0], strings.Join(rest[1:], " "))
		if st == nil {
			return fmt.Errorf("theme %q not found", rest[0])
		}
		fmt.Println(st.ID)
	case "task":
		if len(rest) < 2 {
			return fmt.Errorf("usage: rutina add task <theme-id>[/<subtheme-id>] <name>")
		}
		freq, err := parseFrequency(*freqSpec)
		if err != nil {
			return err
		}
		themeID, subthemeID, _ := strings.Cut(rest[0], "/")
		t := s.data.AddTask(themeID, subthemeID, strings.Join(rest[1:], " "), freq)
		if t == nil {
			return fmt.Errorf("owner %q not found", rest[0])
		}
		fmt.Println(t.ID)
	case "subtask":
		if len(rest) < 2 {
			return fmt.Errorf("usage: rutina add subtask <task-id> <name>")
		}
		st := s.data.AddSubtask(rest[0], strings.Join(rest[1:], " "))
		if st == nil {
			return fmt.Errorf("task %q not found", rest[0])
		}
		fmt.Println(st.ID)
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	return s.save()
}

func cmdRename(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rutina rename <id> <name>")
	}
	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	if !s.data.Rename(args[0], strings.Join(args[1:], " ")) {
		logger.Warn("nothing matched, no change", "id", args[0])
		return nil
	}
	return s.save()
}

func cmdRemove(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: rutina rm <id> | rutina rm <task-id> <subtask-id>")
	}
	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	var removed bool
	if len(args) == 2 {
		removed = s.data.DeleteSubtask(args[0], args[1])
	} else {
		id := args[0]
		removed = s.data.DeleteTheme(id) || s.data.DeleteSubtheme(id) || s.data.DeleteTask(id)
	}
	if !removed {
		logger.Warn("nothing matched, no change", "id", strings.Join(args, "/"))
		return nil
	}
	return s.save()
}

func cmdSetFrequency(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rutina set-frequency <task-id> <freq>")
	}
	freq, err := parseFrequency(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	if !s.data.SetTaskFrequency(args[0], freq) {
		logger.Warn("nothing matched, no change", "id", args[0])
		return nil
	}
	return s.save()
}

func cmdResetMonth(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("reset-month", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Confirm erasing this month's history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("this erases the current month's completion history; re-run with -yes to confirm")
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	removed := s.data.ResetMonthHistory(s.now)
	logger.Info("monthly history reset", "entries", removed)
	return s.save()
}

func cmdDarkMode(cfg *config.Config, logger *log.Logger, args []string) error {
	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	if s.data.ToggleDarkMode() {
		fmt.Println("dark mode on")
	} else {
		fmt.Println("dark mode off")
	}
	return s.save()
}

func cmdValidate(cfg *config.Config, logger *log.Logger, args []string) error {
	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	result := s.data.Validate()
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			logger.Error(e.Error())
		}
		return fmt.Errorf("data file is invalid (%d errors)", len(result.Errors))
	}
	fmt.Println("ok")
	return nil
}
