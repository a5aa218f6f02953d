package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"rutina/internal/tracker"
)

// envelope covers both the current shape ({themes: [...]}) and the
// legacy v1 shape ({data: [...]}) so one unmarshal serves both.
type envelope struct {
	Version         string               `json:"version"`
	Data            []tracker.Theme      `json:"data"`
	Themes          []tracker.Theme      `json:"themes"`
	UserPreferences *tracker.Preferences `json:"userPreferences"`
	LastOpened      string               `json:"lastOpened"`
	UIState         map[string]bool      `json:"uiState"`
}

// Open loads the persisted tree, migrating and repairing as needed, and
// always persists the result back so first runs and migrations are
// durable immediately. A missing or unparsable blob yields the seed
// dataset; a stored version below 2.0 is migrated from the legacy shape.
func Open(s Store, now time.Time, logger *log.Logger) (*tracker.AppData, error) {
	blob, err := s.Load()
	if err != nil {
		return nil, err
	}

	data := decode(blob, now, logger)
	data.Normalize()
	if replaced := data.EnsureUniqueIDs(); replaced > 0 {
		logger.Warn("replaced colliding or empty ids", "count", replaced)
	}

	if err := Persist(s, data); err != nil {
		return nil, err
	}
	return data, nil
}

func decode(blob []byte, now time.Time, logger *log.Logger) *tracker.AppData {
	if blob == nil {
		logger.Info("no stored data, seeding defaults")
		return tracker.Seed(now)
	}

	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		logger.Warn("stored data unparsable, reseeding", "err", err)
		return tracker.Seed(now)
	}

	if env.Version == "" || env.Version < tracker.CurrentVersion {
		logger.Info("migrating stored data", "from", env.Version, "to", tracker.CurrentVersion)
		return migrateV1(&env, now)
	}

	data := &tracker.AppData{
		Version:    env.Version,
		Themes:     env.Themes,
		LastOpened: env.LastOpened,
		UIState:    env.UIState,
	}
	if env.UserPreferences != nil {
		data.UserPreferences = *env.UserPreferences
	}
	return data
}

// migrateV1 lifts the legacy {data: Theme[]} shape into the current
// structure, preserving preferences and lastOpened where present and
// discarding everything else.
func migrateV1(env *envelope, now time.Time) *tracker.AppData {
	data := &tracker.AppData{
		Version:    tracker.CurrentVersion,
		Themes:     []tracker.Theme{},
		LastOpened: tracker.DateString(now),
	}
	for _, old := range env.Data {
		th := old
		if th.Name == "" {
			th.Name = "Untitled theme"
		}
		data.Themes = append(data.Themes, th)
	}
	if env.UserPreferences != nil {
		data.UserPreferences = *env.UserPreferences
	}
	if env.LastOpened != "" {
		data.LastOpened = env.LastOpened
	}
	return data
}

// Persist marshals the tree and saves it with 2-space indentation and a
// trailing newline.
func Persist(s Store, data *tracker.AppData) error {
	blob, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	blob = append(blob, '\n')
	return s.Save(blob)
}
