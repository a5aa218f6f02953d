package cmd

import (
	"context"

	"github.com/charmbracelet/log"

	"rutina/internal/config"
	"rutina/internal/store"
	"rutina/internal/tracker"
	"rutina/internal/ui"
)

func cmdTUI(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	save := func(data *tracker.AppData) error {
		return store.Persist(s.store, data)
	}
	return ui.RunTUI(ctx, s.data, s.now, save)
}
