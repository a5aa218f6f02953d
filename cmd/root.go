// Package cmd implements the CLI command structure for rutina.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"rutina/internal/config"
	"rutina/internal/logging"
	"rutina/internal/tracker"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the rutina CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rutina", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		fmt.Println(Version)
		return nil
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:           logging.ParseLevel(cfg.LogLevel),
		Formatter:       logging.ParseFormatter(cfg.LogFormat),
		ReportTimestamp: cfg.LogTimestamps,
	})

	rest := fs.Args()
	command := "list"
	if len(rest) > 0 {
		command = rest[0]
		rest = rest[1:]
	}

	switch command {
	case "list":
		return cmdList(cfg, logger, rest)
	case "toggle":
		return cmdToggle(cfg, logger, rest)
	case "stats":
		return cmdStats(cfg, logger, rest)
	case "export":
		return cmdExport(cfg, logger, rest)
	case "add":
		return cmdAdd(cfg, logger, rest)
	case "rename":
		return cmdRename(cfg, logger, rest)
	case "rm":
		return cmdRemove(cfg, logger, rest)
	case "set-frequency":
		return cmdSetFrequency(cfg, logger, rest)
	case "reset-month":
		return cmdResetMonth(cfg, logger, rest)
	case "darkmode":
		return cmdDarkMode(cfg, logger, rest)
	case "validate":
		return cmdValidate(cfg, logger, rest)
	case "tui":
		return cmdTUI(ctx, cfg, logger, rest)
	case "version":
		fmt.Println(Version)
		return nil
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprint(w, `rutina - personal recurring-task tracker

Usage:
  rutina [flags] <command> [arguments]

Commands:
  list                        Show tasks due today (default)
  toggle <task> [subtask]     Toggle completion for today (-date for another day)
  stats                       Show completion statistics (-period today|yesterday|week|month)
  export                      Export a full CSV report (-o file, "-" for stdout)
  add theme <name>            Create a theme
  add subtheme <theme> <name> Create a subtheme under a theme
  add task <theme>[/<subtheme>] <name>   Create a task (-freq)
  add subtask <task> <name>   Create a subtask under a task
  rename <id> <name>          Rename any entity by id
  rm <id>                     Delete a theme, subtheme, or task (cascades)
  rm <task> <subtask>         Delete a subtask
  set-frequency <task> <freq> Change a task's recurrence
  reset-month                 Erase this month's history (-yes to confirm)
  darkmode                    Toggle the dark-mode preference
  validate                    Check the stored data against the schema
  tui                         Interactive checklist
  version                     Print the version

Frequencies:
  daily, workweek, sixdayweek, weekly:<0-6> (0=Sunday), monthly:<1-31>

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// parseFrequency turns a CLI frequency spec into a Frequency value.
func parseFrequency(spec string) (tracker.Frequency, error) {
	kind, dayStr, hasDay := strings.Cut(spec, ":")
	switch kind {
	case tracker.FreqDaily, tracker.FreqWorkweek, tracker.FreqSixDayWeek:
		if hasDay {
			return tracker.Frequency{}, fmt.Errorf("frequency %q takes no day", kind)
		}
		return tracker.Frequency{Type: kind}, nil
	case tracker.FreqWeekly, tracker.FreqMonthly:
		if !hasDay {
			return tracker.Frequency{}, fmt.Errorf("frequency %q needs a day, e.g. %s:1", kind, kind)
		}
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			return tracker.Frequency{}, fmt.Errorf("invalid day %q: %w", dayStr, err)
		}
		return tracker.Frequency{Type: kind, Day: day}, nil
	default:
		return tracker.Frequency{}, fmt.Errorf("unknown frequency %q", spec)
	}
}

// parseDateFlag validates an explicit -date value, defaulting to today.
func parseDateFlag(value string, now time.Time) (string, error) {
	if value == "" {
		return tracker.DateString(now), nil
	}
	if _, err := tracker.ParseDate(value); err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return value, nil
}
