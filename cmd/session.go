package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"rutina/internal/config"
	"rutina/internal/store"
	"rutina/internal/tracker"
)

// session bundles the open store and the loaded tree for one command
// invocation. Opening runs migration and the daily-reset gate; every
// mutating command calls save before closing.
type session struct {
	store store.Store
	data  *tracker.AppData
	now   time.Time
}

func openSession(cfg *config.Config, logger *log.Logger) (*session, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	data, err := store.Open(st, now, logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	s := &session{store: st, data: data, now: now}
	if data.DailyReset(now) {
		logger.Debug("daily reset", "date", tracker.DateString(now))
		if err := s.save(); err != nil {
			st.Close()
			return nil, err
		}
	}
	return s, nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case "sqlite":
		s, err := store.OpenSQLite(cfg.DBFile)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	default:
		return store.NewFileStore(cfg.DataFile), nil
	}
}

func (s *session) save() error {
	return store.Persist(s.store, s.data)
}

func (s *session) close() {
	s.store.Close()
}

// today returns the current local-calendar date string.
func (s *session) today() string {
	return tracker.DateString(s.now)
}
